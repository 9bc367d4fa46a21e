// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package pipe provides unidirectional byte channels with independently
// closable read and write endpoints.
//
// A Pipe is a bounded ring of bytes. Writers block while the ring is full,
// readers block while it is empty. Once every write handle is closed and
// the ring has drained, reads report io.EOF. Once every read handle is
// closed, writes fail with ErrClosedChannel.
//
// Each ReadEnd or WriteEnd is one holder's handle. Dup creates another
// holder of the same side, and every holder must close its own handle:
// a forgotten write handle keeps the read side from ever seeing io.EOF.
// Move hands a handle to a new owner and leaves the old handle closed.
package pipe

import (
	"io"
	"sync"
)

const (
	PIPE_SIZE    = 512 // Default ring capacity in bytes.
	MESSAGE_SIZE = 4   // Width of an integer message in bytes.
)

// Side identifies one end of a pipe.
type Side int

//go:generate go tool stringer -linecomment -type=Side
const (
	SIDE_READ  = Side(0) // read
	SIDE_WRITE = Side(1) // write
)

// Pipe is the storage shared by the endpoints of a channel.
type Pipe struct {
	Id       int // Table slot of the pipe.
	Capacity int // Ring capacity in bytes.

	table *Table
	mutex sync.Mutex
	cond  sync.Cond

	data       []byte
	readIndex  int
	writeIndex int
	size       int
	holders    [2]int // Open handles per side.
}

func newPipe(table *Table, id int, capacity int) (p *Pipe) {
	if capacity <= 0 {
		capacity = PIPE_SIZE
	}

	p = &Pipe{
		Id:       id,
		Capacity: capacity,
		table:    table,
		data:     make([]byte, capacity),
		holders:  [2]int{1, 1},
	}
	p.cond.L = &p.mutex

	return
}

// read copies buffered bytes into buf, blocking while the ring is empty
// and a writer remains.
func (p *Pipe) read(buf []byte) (n int, err error) {
	if len(buf) == 0 {
		return
	}

	p.mutex.Lock()
	defer p.mutex.Unlock()

	for p.size == 0 && p.holders[SIDE_WRITE] > 0 {
		p.cond.Wait()
	}

	if p.size == 0 {
		err = io.EOF
		return
	}

	for n < len(buf) && p.size > 0 {
		buf[n] = p.data[p.readIndex]
		p.readIndex++
		if p.readIndex == p.Capacity {
			p.readIndex = 0
		}
		p.size--
		n++
	}

	p.cond.Broadcast()

	return
}

// write copies all of buf into the ring, blocking while it is full.
func (p *Pipe) write(buf []byte) (n int, err error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	for n < len(buf) {
		if p.holders[SIDE_READ] == 0 {
			err = ErrClosedChannel
			break
		}

		if p.size == p.Capacity {
			p.cond.Broadcast()
			p.cond.Wait()
			continue
		}

		p.data[p.writeIndex] = buf[n]
		p.writeIndex++
		if p.writeIndex == p.Capacity {
			p.writeIndex = 0
		}
		p.size++
		n++
	}

	p.cond.Broadcast()

	return
}

// hold registers another holder of side.
func (p *Pipe) hold(side Side) {
	p.mutex.Lock()
	p.holders[side]++
	p.mutex.Unlock()

	p.table.held(p, side)
}

// release drops one holder of side, and frees the pipe storage once no
// holder of either side remains.
func (p *Pipe) release(side Side) {
	p.mutex.Lock()
	p.holders[side]--
	free := p.holders[SIDE_READ] == 0 && p.holders[SIDE_WRITE] == 0
	if free {
		p.data = nil
	}
	p.cond.Broadcast()
	p.mutex.Unlock()

	p.table.released(p, side, free)
}

// Holders returns the number of open handles on side.
func (p *Pipe) Holders(side Side) (count int) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	count = p.holders[side]
	return
}

// Buffered returns the number of bytes waiting to be read.
func (p *Pipe) Buffered() (size int) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	size = p.size
	return
}
