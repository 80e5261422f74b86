package game

// settlementNames is the fixed pool cycled by index when settlements are
// founded. The cursor resets on every Create.
var settlementNames = [20]string{
	"Ashfall", "Brindlemark", "Caldera", "Duskwatch", "Emberhold",
	"Fenwick", "Gloamstead", "Hollowvale", "Ironreach", "Junipers",
	"Kestrel Rock", "Lowmere", "Mistral", "Northgate", "Oakenshore",
	"Palecliff", "Quarrytown", "Ravenspire", "Stonewade", "Thornfield",
}

// NextSettlementName returns the next name from the pool, cycling.
func (s *State) NextSettlementName() string {
	name := settlementNames[s.nameCursor%len(settlementNames)]
	s.nameCursor++
	return name
}
