package sieve

import (
	"fmt"
	"io"
	"slices"
	"sync"
)

// Console serializes announcement lines onto a single writer.
type Console struct {
	Output io.Writer

	mutex  sync.Mutex
	primes []int
}

// Announce writes "prime <p>" as one line.
func (con *Console) Announce(prime int) (err error) {
	con.mutex.Lock()
	defer con.mutex.Unlock()

	con.primes = append(con.primes, prime)
	if con.Output != nil {
		_, err = fmt.Fprintf(con.Output, "prime %d\n", prime)
	}

	return
}

// Primes returns the announced primes, in announcement order.
func (con *Console) Primes() (primes []int) {
	con.mutex.Lock()
	defer con.mutex.Unlock()

	primes = slices.Clone(con.primes)
	return
}
