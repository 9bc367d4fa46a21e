package sieve

import (
	"fmt"

	"github.com/ezrec/primes/internal"
	"github.com/ezrec/primes/pipe"
	"github.com/ezrec/primes/proc"
)

// source feeds the candidates [FIRST_CANDIDATE, Bound] to the first filter,
// which it spawns with the first candidate as its divisor.
func (s *Sieve) source(root *proc.Unit) (err error) {
	var w *pipe.WriteEnd

	for value := range internal.Span(FIRST_CANDIDATE, s.Bound) {
		if w == nil {
			var r, upstream *pipe.ReadEnd
			r, w, err = s.pipes.Create()
			if err != nil {
				break
			}
			upstream, err = r.Move()
			if err != nil {
				break
			}
			root.Adopt(w)
			child := root.Spawn(fmt.Sprintf("filter %d", value), s.filterMain(value, upstream), upstream)
			s.trace.Record(Event{Kind: EVENT_SPAWN, Pid: root.Pid, Id: root.Id, Peer: child.Pid})
		}

		err = w.WriteInt(value)
		if err != nil {
			break
		}
	}

	if w != nil {
		_ = w.Close()
	}

	if err != nil {
		err = &ErrFatal{Pid: root.Pid, Err: err}
		s.procs.Abort(err)
	}

	return
}
