// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package sieve computes the primes up to a bound with a self extending
// chain of filter units.
//
// The source unit writes the candidates into a pipe read by the first
// filter. Every filter announces its divisor, drops its multiples, and
// spawns the next filter on the first value that survives, passing every
// later survivor down to it. End-of-stream flows down the chain; each
// filter closes its downstream before waiting for its child, so units
// terminate tail first.
package sieve

import (
	"errors"
	"io"
	"log"

	"github.com/ezrec/primes/pipe"
	"github.com/ezrec/primes/proc"
)

// Result of a sieve run.
type Result struct {
	Primes []int   // Announced primes, in announcement order.
	Units  int     // Filter units spawned.
	Open   int     // Endpoint handles left open after the run.
	Events []Event // Trace of the run.
}

// Sieve runs the filter chain for a configuration.
// A Sieve runs one chain at a time.
type Sieve struct {
	Config

	pipes   *pipe.Table
	procs   *proc.Table
	console *Console
	trace   *Trace
}

// NewSieve creates a new sieve.
func NewSieve(config Config) (s *Sieve) {
	s = &Sieve{
		Config: config,
	}

	return
}

// reset prepares fresh tables for a run.
func (s *Sieve) reset() {
	output := s.Output
	if output == nil {
		output = io.Discard
	}

	s.pipes = &pipe.Table{
		Verbose:  s.Verbose,
		MaxPipes: s.MaxPipes,
		Capacity: s.Capacity,
	}
	s.procs = &proc.Table{Verbose: s.Verbose}
	s.console = &Console{Output: output}
	s.trace = &Trace{}
}

// Run feeds the candidates through the chain and waits for every unit
// to terminate. On a fatal error the partial result is returned with it.
func (s *Sieve) Run() (result *Result, err error) {
	err = s.Validate()
	if err != nil {
		return
	}

	s.reset()

	root := s.procs.Init("source")

	_ = s.source(root)

	// Reap until no unit is left.
	for {
		child, err := root.Wait()
		if errors.Is(err, proc.ErrNoChildren) {
			break
		}
		s.trace.Record(Event{Kind: EVENT_JOIN, Pid: root.Pid, Id: root.Id, Peer: child.Pid})
	}

	root.Exit(nil)
	s.trace.Record(Event{Kind: EVENT_EXIT, Pid: root.Pid, Id: root.Id})

	result = &Result{
		Primes: s.console.Primes(),
		Units:  s.procs.Spawned(),
		Open:   s.pipes.Open(),
		Events: s.trace.Events(),
	}

	if s.Verbose {
		log.Printf("sieve: %d primes, %d units, %d open endpoints", len(result.Primes), result.Units, result.Open)
	}

	err = s.procs.Err()

	return
}
