package pipe

import (
	"errors"

	"github.com/ezrec/primes/translate"
)

var f = translate.From

var (
	// Pipe errors
	ErrChannelCreation = errors.New(f("cannot create pipe"))
	ErrClosedChannel   = errors.New(f("write to pipe with no readers"))
	ErrClosedEndpoint  = errors.New(f("endpoint closed"))
	ErrPartialMessage  = errors.New(f("partial message"))
)

// ErrTableFull reports a pipe creation refused by the table limit.
type ErrTableFull int

func (err ErrTableFull) Error() string {
	return f("pipe table full (%d pipes)", int(err))
}

func (err ErrTableFull) Unwrap() error {
	return ErrChannelCreation
}
