package defs

// AdvisorType identifies one of the five council advisors every player has.
type AdvisorType string

const (
	AdvisorGeneral   AdvisorType = "general"
	AdvisorTreasurer AdvisorType = "treasurer"
	AdvisorPriest    AdvisorType = "priest"
	AdvisorScholar   AdvisorType = "scholar"
	AdvisorTribune   AdvisorType = "tribune"
)

// AllAdvisors lists the five advisor types in council order.
var AllAdvisors = [5]AdvisorType{
	AdvisorGeneral,
	AdvisorTreasurer,
	AdvisorPriest,
	AdvisorScholar,
	AdvisorTribune,
}
