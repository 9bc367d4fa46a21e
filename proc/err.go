package proc

import (
	"errors"

	"github.com/ezrec/primes/translate"
)

var f = translate.From

var (
	// Unit errors
	ErrNoChildren = errors.New(f("no children"))
)

// ErrUnitFailed records the failure of a unit.
type ErrUnitFailed struct {
	Pid  int
	Name string
	Err  error
}

func (err *ErrUnitFailed) Error() string {
	return f("pid %d (%v): %v", err.Pid, err.Name, err.Err)
}

func (err *ErrUnitFailed) Unwrap() error {
	return err.Err
}
