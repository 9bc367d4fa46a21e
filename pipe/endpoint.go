package pipe

import (
	"encoding/binary"
	"errors"
	"io"
	"sync/atomic"
)

// endpoint is one holder's handle on a side of a pipe.
type endpoint struct {
	pipe   *Pipe
	side   Side
	closed atomic.Bool
}

// Pipe returns the pipe behind the handle.
func (ep *endpoint) Pipe() *Pipe {
	return ep.pipe
}

// Side returns the side of the pipe the handle holds.
func (ep *endpoint) Side() Side {
	return ep.side
}

// Closed is true once this handle was closed or moved.
func (ep *endpoint) Closed() bool {
	return ep.closed.Load()
}

// Close releases this handle. Closing an already closed handle does nothing.
func (ep *endpoint) Close() (err error) {
	if ep.closed.CompareAndSwap(false, true) {
		ep.pipe.release(ep.side)
	}
	return
}

func (ep *endpoint) dup() (err error) {
	if ep.closed.Load() {
		err = ErrClosedEndpoint
		return
	}

	ep.pipe.hold(ep.side)
	return
}

func (ep *endpoint) move() (err error) {
	if !ep.closed.CompareAndSwap(false, true) {
		err = ErrClosedEndpoint
	}
	return
}

// ReadEnd is a holder's handle on the read side of a pipe.
type ReadEnd struct {
	endpoint
}

var _ io.ReadCloser = (*ReadEnd)(nil)

// Read reads up to len(buf) bytes. It blocks until data is available, and
// returns io.EOF once every write handle is closed and the pipe drained.
func (r *ReadEnd) Read(buf []byte) (n int, err error) {
	if r.closed.Load() {
		err = ErrClosedEndpoint
		return
	}

	return r.pipe.read(buf)
}

// ReadInt reads one integer message. At end-of-stream it returns io.EOF;
// a stream that ends inside a message returns ErrPartialMessage.
func (r *ReadEnd) ReadInt() (value int, err error) {
	var msg [MESSAGE_SIZE]byte

	_, err = io.ReadFull(r, msg[:])
	if errors.Is(err, io.ErrUnexpectedEOF) {
		err = ErrPartialMessage
	}
	if err != nil {
		return
	}

	value = int(int32(binary.LittleEndian.Uint32(msg[:])))
	return
}

// Dup returns another handle on the read side. Both handles must be closed.
func (r *ReadEnd) Dup() (dup *ReadEnd, err error) {
	err = r.dup()
	if err != nil {
		return
	}

	dup = &ReadEnd{endpoint{pipe: r.pipe, side: SIDE_READ}}
	return
}

// Move hands the read side to a new handle, closing r without releasing it.
func (r *ReadEnd) Move() (moved *ReadEnd, err error) {
	err = r.move()
	if err != nil {
		return
	}

	moved = &ReadEnd{endpoint{pipe: r.pipe, side: SIDE_READ}}
	return
}

// WriteEnd is a holder's handle on the write side of a pipe.
type WriteEnd struct {
	endpoint
}

var _ io.WriteCloser = (*WriteEnd)(nil)

// Write writes all of buf, blocking while the pipe is full. It fails with
// ErrClosedChannel once every read handle is closed.
func (w *WriteEnd) Write(buf []byte) (n int, err error) {
	if w.closed.Load() {
		err = ErrClosedEndpoint
		return
	}

	return w.pipe.write(buf)
}

// WriteInt writes one integer message.
func (w *WriteEnd) WriteInt(value int) (err error) {
	var msg [MESSAGE_SIZE]byte

	binary.LittleEndian.PutUint32(msg[:], uint32(int32(value)))
	_, err = w.Write(msg[:])

	return
}

// Dup returns another handle on the write side. Both handles must be
// closed before the reader sees end-of-stream.
func (w *WriteEnd) Dup() (dup *WriteEnd, err error) {
	err = w.dup()
	if err != nil {
		return
	}

	dup = &WriteEnd{endpoint{pipe: w.pipe, side: SIDE_WRITE}}
	return
}

// Move hands the write side to a new handle, closing w without releasing it.
func (w *WriteEnd) Move() (moved *WriteEnd, err error) {
	err = w.move()
	if err != nil {
		return
	}

	moved = &WriteEnd{endpoint{pipe: w.pipe, side: SIDE_WRITE}}
	return
}
