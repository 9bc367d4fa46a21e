package sieve

import (
	"slices"
	"sync"

	"github.com/google/uuid"
)

// EventKind is the type of a trace event.
type EventKind int

//go:generate go tool stringer -linecomment -type=EventKind
const (
	EVENT_SPAWN    = EventKind(0) // spawn
	EVENT_ANNOUNCE = EventKind(1) // announce
	EVENT_DRAIN    = EventKind(2) // drain
	EVENT_JOIN     = EventKind(3) // join
	EVENT_EXIT     = EventKind(4) // exit
)

// Event is one step in the life of a unit.
type Event struct {
	Kind    EventKind
	Pid     int       // Unit recording the event.
	Id      uuid.UUID // Unit id recording the event.
	Divisor int       // Divisor of the unit, 0 for the source.
	Peer    int       // Spawned or joined child pid, for EVENT_SPAWN and EVENT_JOIN.
}

// Trace is an ordered, concurrency safe event log.
type Trace struct {
	mutex  sync.Mutex
	events []Event
}

// Record appends an event.
func (tr *Trace) Record(event Event) {
	tr.mutex.Lock()
	defer tr.mutex.Unlock()

	tr.events = append(tr.events, event)
}

// Events returns a copy of the recorded events.
func (tr *Trace) Events() (events []Event) {
	tr.mutex.Lock()
	defer tr.mutex.Unlock()

	events = slices.Clone(tr.events)
	return
}
