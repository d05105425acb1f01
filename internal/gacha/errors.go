package gacha

import "errors"

var (
	// ErrInvalidPool reports a malformed or incomplete reward table.
	ErrInvalidPool = errors.New("invalid pool")
	// ErrInvalidArgument reports a rejected call argument (negative draw count, chunk size <= 0, bad rules).
	ErrInvalidArgument = errors.New("invalid argument")
)
