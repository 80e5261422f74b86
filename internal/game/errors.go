package game

import "errors"

// Error taxonomy surfaced by core procedures. Handlers match these with
// errors.Is; validation failures never mutate state, with the single
// documented exception of ProposeLaw's culture deduction.
var (
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrConflict   = errors.New("conflict")
	ErrBadRequest = errors.New("bad request")
	ErrEliminated = errors.New("player eliminated")
)
