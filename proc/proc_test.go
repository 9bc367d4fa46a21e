package proc

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type closer struct {
	closed atomic.Int32
}

func (c *closer) Close() error {
	c.closed.Add(1)
	return nil
}

func TestTable_Init(t *testing.T) {
	assert := assert.New(t)

	table := &Table{}
	root := table.Init("root")
	assert.Equal(ROOT_PID, root.Pid)
	assert.Nil(root.Parent())
	assert.Same(root, table.Init("again"))
	assert.Equal(0, table.Spawned())

	_, err := root.Wait()
	assert.ErrorIs(err, ErrNoChildren)
}

func TestUnit_SpawnWait(t *testing.T) {
	assert := assert.New(t)

	table := &Table{}
	root := table.Init("root")

	release := make(chan struct{})
	child := root.Spawn("child", func(u *Unit) error {
		<-release
		return nil
	})
	assert.Equal(2, child.Pid)
	assert.Same(root, child.Parent())
	assert.NotEqual(root.Id, child.Id)
	assert.False(child.Exited())

	close(release)

	reaped, err := root.Wait()
	assert.NoError(err)
	assert.Same(child, reaped)
	assert.True(reaped.Exited())
	assert.Equal(EXIT_SUCCESS, reaped.Status())
	assert.NoError(reaped.Err())

	_, err = root.Wait()
	assert.ErrorIs(err, ErrNoChildren)
	assert.Equal(1, table.Spawned())
}

func TestUnit_ExitFailure(t *testing.T) {
	assert := assert.New(t)

	table := &Table{}
	root := table.Init("root")

	boom := errors.New("boom")
	root.Spawn("bad", func(u *Unit) error {
		return boom
	})

	child, err := root.Wait()
	assert.NoError(err)
	assert.Equal(EXIT_FAILURE, child.Status())
	assert.ErrorIs(child.Err(), boom)

	var failed *ErrUnitFailed
	assert.ErrorAs(table.Err(), &failed)
	assert.Equal(child.Pid, failed.Pid)
	assert.Equal("bad", failed.Name)
}

func TestTable_Abort(t *testing.T) {
	assert := assert.New(t)

	table := &Table{}
	table.Init("root")

	first := errors.New("first")
	assert.False(table.Abort(nil))
	assert.True(table.Abort(first))
	assert.False(table.Abort(errors.New("second")))
	assert.Same(first, table.Err())
}

func TestUnit_ExitClosesFiles(t *testing.T) {
	assert := assert.New(t)

	table := &Table{}
	root := table.Init("root")

	a, b := &closer{}, &closer{}
	root.Spawn("files", func(u *Unit) error {
		return nil
	}, a, b)

	_, err := root.Wait()
	assert.NoError(err)
	assert.Equal(int32(1), a.closed.Load())
	assert.Equal(int32(1), b.closed.Load())
}

func TestUnit_WaitMany(t *testing.T) {
	assert := assert.New(t)

	table := &Table{}
	root := table.Init("root")

	const count = 8
	for range count {
		root.Spawn("worker", func(u *Unit) error {
			time.Sleep(time.Millisecond)
			return nil
		})
	}

	reaped := 0
	for {
		_, err := root.Wait()
		if errors.Is(err, ErrNoChildren) {
			break
		}
		assert.NoError(err)
		reaped++
	}
	assert.Equal(count, reaped)
}

// Children of a unit that exits without waiting are collected by the root.
func TestUnit_Reparent(t *testing.T) {
	assert := assert.New(t)

	table := &Table{}
	root := table.Init("root")

	release := make(chan struct{})
	spawned := make(chan *Unit, 1)
	parent := root.Spawn("parent", func(u *Unit) error {
		spawned <- u.Spawn("orphan", func(u *Unit) error {
			<-release
			return nil
		})
		return nil
	})

	orphan := <-spawned

	reaped, err := root.Wait()
	assert.NoError(err)
	assert.Same(parent, reaped)
	assert.Same(root, orphan.Parent())

	close(release)

	reaped, err = root.Wait()
	assert.NoError(err)
	assert.Same(orphan, reaped)

	_, err = root.Wait()
	assert.ErrorIs(err, ErrNoChildren)
	assert.Equal(2, table.Spawned())
}
