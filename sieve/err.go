package sieve

import (
	"github.com/ezrec/primes/translate"
)

var f = translate.From

// ErrBound reports a bound expression that is not a usable integer.
type ErrBound string

func (err ErrBound) Error() string {
	return f("'%v' is not a valid bound", string(err))
}

// ErrFatal reports the failure that aborted a run.
type ErrFatal struct {
	Pid     int
	Divisor int
	Err     error
}

func (err *ErrFatal) Error() string {
	if err.Divisor == 0 {
		return f("source (pid %d): %v", err.Pid, err.Err)
	}
	return f("filter %d (pid %d): %v", err.Divisor, err.Pid, err.Err)
}

func (err *ErrFatal) Unwrap() error {
	return err.Err
}
