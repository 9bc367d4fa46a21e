package sieve

// State is the life cycle state of a filter unit.
type State int

//go:generate go tool stringer -linecomment -type=State
const (
	AWAITING_FIRST_SURVIVOR = State(0) // awaiting
	FORWARDING              = State(1) // forwarding
	DRAINING                = State(2) // draining
	TERMINATED              = State(3) // terminated
)
