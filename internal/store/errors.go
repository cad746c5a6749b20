package store

import "errors"

var (
	// ErrSlotTaken is the loser's outcome of two concurrent inserts for
	// the same (barber, date, time).
	ErrSlotTaken = errors.New("slot already taken")

	ErrNotFound = errors.New("not found")

	ErrDuplicateEmail = errors.New("email already registered")
)
