package apportion

import "errors"

var (
	// ErrInvalidCapacity is returned when capacity is below 1.
	ErrInvalidCapacity = errors.New("capacity must be at least 1")

	// ErrUnknownStrategy is returned by Lookup for unregistered strategy names.
	ErrUnknownStrategy = errors.New("unknown apportionment strategy")

	// ErrNegativeLeftover signals that floored shares exceeded capacity.
	// Unreachable for well-formed tallies; surfaced instead of padding.
	ErrNegativeLeftover = errors.New("floored shares exceed capacity")

	// ErrEmptyPool is returned when allocation is attempted over zero occurrences.
	ErrEmptyPool = errors.New("no occurrences to allocate")
)
