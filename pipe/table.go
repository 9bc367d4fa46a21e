package pipe

import (
	"log"
	"sync"
)

// Table tracks the live pipes and endpoint handles of one run.
type Table struct {
	Verbose  bool // If set, logs pipe creation and release.
	MaxPipes int  // Maximum live pipes, 0 for no limit.
	Capacity int  // Ring capacity of new pipes, 0 for PIPE_SIZE.

	mutex   sync.Mutex
	nextId  int
	pipes   int
	handles int
	created int
}

// Create makes a new pipe and returns its read and write handles.
func (t *Table) Create() (r *ReadEnd, w *WriteEnd, err error) {
	t.mutex.Lock()
	if t.MaxPipes > 0 && t.pipes >= t.MaxPipes {
		t.mutex.Unlock()
		err = ErrTableFull(t.MaxPipes)
		return
	}
	t.nextId++
	id := t.nextId
	t.pipes++
	t.created++
	t.handles += 2
	t.mutex.Unlock()

	p := newPipe(t, id, t.Capacity)
	r = &ReadEnd{endpoint{pipe: p, side: SIDE_READ}}
	w = &WriteEnd{endpoint{pipe: p, side: SIDE_WRITE}}

	if t.Verbose {
		log.Printf("pipe %d: created (%d bytes)", id, p.Capacity)
	}

	return
}

func (t *Table) held(p *Pipe, side Side) {
	t.mutex.Lock()
	t.handles++
	t.mutex.Unlock()

	if t.Verbose {
		log.Printf("pipe %d: dup %v", p.Id, side)
	}
}

func (t *Table) released(p *Pipe, side Side, free bool) {
	t.mutex.Lock()
	t.handles--
	if free {
		t.pipes--
	}
	t.mutex.Unlock()

	if t.Verbose {
		log.Printf("pipe %d: close %v", p.Id, side)
		if free {
			log.Printf("pipe %d: freed", p.Id)
		}
	}
}

// Pipes returns the number of pipes with at least one open handle.
func (t *Table) Pipes() (count int) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	count = t.pipes
	return
}

// Open returns the number of open endpoint handles.
func (t *Table) Open() (count int) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	count = t.handles
	return
}

// Created returns the number of pipes ever created by the table.
func (t *Table) Created() (count int) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	count = t.created
	return
}
