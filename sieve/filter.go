// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package sieve

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/ezrec/primes/pipe"
	"github.com/ezrec/primes/proc"
)

// Filter is a unit holding one prime divisor. It drops the multiples of
// its divisor, and passes every other value to the next filter, which it
// spawns on the first survivor.
type Filter struct {
	Divisor int   // Divisor, fixed for the life of the filter.
	State   State // Current life cycle state.

	sieve      *Sieve
	unit       *proc.Unit
	upstream   *pipe.ReadEnd
	downstream *pipe.WriteEnd
	child      *proc.Unit
}

// filterMain returns the unit body of a filter owning upstream.
func (s *Sieve) filterMain(divisor int, upstream *pipe.ReadEnd) func(u *proc.Unit) error {
	return func(u *proc.Unit) error {
		filter := &Filter{
			Divisor:  divisor,
			State:    AWAITING_FIRST_SURVIVOR,
			sieve:    s,
			unit:     u,
			upstream: upstream,
		}
		return filter.Run()
	}
}

func (ft *Filter) setState(state State) {
	if ft.sieve.Verbose {
		log.Printf("filter %d (pid %d): %v -> %v", ft.Divisor, ft.unit.Pid, ft.State, state)
	}
	ft.State = state
}

func (ft *Filter) record(kind EventKind, peer int) {
	ft.sieve.trace.Record(Event{
		Kind:    kind,
		Pid:     ft.unit.Pid,
		Id:      ft.unit.Id,
		Divisor: ft.Divisor,
		Peer:    peer,
	})
}

// fatal latches err as the failure of the run.
func (ft *Filter) fatal(err error) error {
	err = &ErrFatal{Pid: ft.unit.Pid, Divisor: ft.Divisor, Err: err}
	ft.sieve.procs.Abort(err)
	return err
}

// Run announces the divisor, filters the upstream until end-of-stream,
// then shuts down: downstream first, then the child, then the upstream.
func (ft *Filter) Run() (err error) {
	ft.record(EVENT_ANNOUNCE, 0)
	err = ft.sieve.console.Announce(ft.Divisor)
	if err != nil {
		err = ft.fatal(err)
	}

	for err == nil && ft.State != DRAINING {
		err = ft.step()
		if err != nil {
			err = ft.fatal(err)
		}
	}

	ft.drain()

	return
}

// step handles one upstream message.
func (ft *Filter) step() (err error) {
	value, err := ft.upstream.ReadInt()
	if errors.Is(err, io.EOF) {
		ft.setState(DRAINING)
		err = nil
		return
	}
	if err != nil {
		return
	}

	if value%ft.Divisor == 0 {
		return
	}

	switch ft.State {
	case AWAITING_FIRST_SURVIVOR:
		err = ft.spawn(value)
		if err == nil {
			ft.setState(FORWARDING)
		}
	case FORWARDING:
		err = ft.downstream.WriteInt(value)
	}

	return
}

// spawn creates the downstream pipe and a child filter owning its read side.
func (ft *Filter) spawn(divisor int) (err error) {
	r, w, err := ft.sieve.pipes.Create()
	if err != nil {
		return
	}

	upstream, err := r.Move()
	if err != nil {
		_ = w.Close()
		return
	}

	ft.downstream = w
	ft.child = ft.unit.Spawn(fmt.Sprintf("filter %d", divisor), ft.sieve.filterMain(divisor, upstream), upstream)
	ft.record(EVENT_SPAWN, ft.child.Pid)

	return
}

// drain propagates end-of-stream, waits for the child and releases the
// upstream.
func (ft *Filter) drain() {
	if ft.State != DRAINING {
		ft.setState(DRAINING)
	}
	ft.record(EVENT_DRAIN, 0)

	if ft.downstream != nil {
		_ = ft.downstream.Close()
	}

	if ft.child != nil {
		for {
			child, err := ft.unit.Wait()
			if err != nil {
				break
			}
			ft.record(EVENT_JOIN, child.Pid)
		}
	}

	_ = ft.upstream.Close()

	ft.setState(TERMINATED)
	ft.record(EVENT_EXIT, 0)
}
