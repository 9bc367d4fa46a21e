package sieve

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/primes/pipe"
)

// runFilter runs a single filter with divisor over values, and returns the
// events of the run.
func runFilter(t *testing.T, s *Sieve, divisor int, values ...int) (events []Event) {
	assert := assert.New(t)

	s.reset()
	root := s.procs.Init("test")

	r, w, err := s.pipes.Create()
	assert.NoError(err)
	for _, value := range values {
		assert.NoError(w.WriteInt(value))
	}
	assert.NoError(w.Close())

	root.Spawn("filter", s.filterMain(divisor, r), r)

	for {
		_, err := root.Wait()
		if err != nil {
			break
		}
	}

	events = s.trace.Events()
	return
}

func kinds(events []Event, pid int) (list []EventKind) {
	for _, event := range events {
		if event.Pid == pid {
			list = append(list, event.Kind)
		}
	}
	return
}

func TestFilter_Leaf(t *testing.T) {
	assert := assert.New(t)

	s := NewSieve(Config{})
	events := runFilter(t, s, 2, 2, 4, 6, 8)

	assert.Equal([]int{2}, s.console.Primes())
	assert.Equal([]EventKind{EVENT_ANNOUNCE, EVENT_DRAIN, EVENT_EXIT}, kinds(events, 2))
	assert.Equal(1, s.procs.Spawned())
	assert.Equal(0, s.pipes.Open())
}

func TestFilter_EmptyUpstream(t *testing.T) {
	assert := assert.New(t)

	s := NewSieve(Config{})
	events := runFilter(t, s, 7)

	assert.Equal([]int{7}, s.console.Primes())
	assert.Equal([]EventKind{EVENT_ANNOUNCE, EVENT_DRAIN, EVENT_EXIT}, kinds(events, 2))
	assert.Equal(0, s.pipes.Open())
}

func TestFilter_ForwardsInOrder(t *testing.T) {
	assert := assert.New(t)

	s := NewSieve(Config{})
	events := runFilter(t, s, 3, 5, 6, 7, 9, 11, 12, 13)

	// 5 becomes the child's divisor; 7, 11 and 13 flow down the chain.
	assert.Equal([]int{3, 5, 7, 11, 13}, s.console.Primes())
	assert.Equal(5, s.procs.Spawned())
	assert.Equal([]EventKind{EVENT_ANNOUNCE, EVENT_SPAWN, EVENT_DRAIN, EVENT_JOIN, EVENT_EXIT}, kinds(events, 2))
	assert.Equal(0, s.pipes.Open())
}

func TestFilter_ChannelCreationFailed(t *testing.T) {
	assert := assert.New(t)

	s := NewSieve(Config{MaxPipes: 1})
	events := runFilter(t, s, 2, 3, 5)

	assert.Equal([]int{2}, s.console.Primes())
	assert.ErrorIs(s.procs.Err(), pipe.ErrChannelCreation)
	assert.Equal([]EventKind{EVENT_ANNOUNCE, EVENT_DRAIN, EVENT_EXIT}, kinds(events, 2))
	assert.Equal(0, s.pipes.Open())
}

func TestFilter_PartialMessage(t *testing.T) {
	assert := assert.New(t)

	s := NewSieve(Config{})
	s.reset()
	root := s.procs.Init("test")

	r, w, err := s.pipes.Create()
	assert.NoError(err)
	_, err = w.Write([]byte{3, 0})
	assert.NoError(err)
	assert.NoError(w.Close())

	root.Spawn("filter", s.filterMain(2, r), r)
	_, err = root.Wait()
	assert.NoError(err)

	assert.ErrorIs(s.procs.Err(), pipe.ErrPartialMessage)
	assert.Equal(0, s.pipes.Open())
}

func TestState_String(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("awaiting", AWAITING_FIRST_SURVIVOR.String())
	assert.Equal("forwarding", FORWARDING.String())
	assert.Equal("draining", DRAINING.String())
	assert.Equal("terminated", TERMINATED.String())
	assert.Equal("State(9)", State(9).String())
	assert.Equal("join", EVENT_JOIN.String())
}
