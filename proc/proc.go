// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package proc runs concurrent units of execution in a parent/child tree.
//
// A unit is spawned by its parent and runs its main function on its own
// goroutine. When main returns, the unit closes every file it adopted,
// hands its remaining children to the root unit and becomes a zombie
// until its parent collects it with Wait.
package proc

import (
	"io"
	"log"
	"slices"
	"sync"

	"github.com/google/uuid"
)

const (
	ROOT_PID = 1 // Pid of the root unit.

	EXIT_SUCCESS = 0
	EXIT_FAILURE = -1
)

// Unit is one unit of execution.
type Unit struct {
	Pid  int       // Process id, unique in the table.
	Id   uuid.UUID // Globally unique unit id.
	Name string    // Name for diagnostics.

	table  *Table
	parent *Unit
	files  []io.Closer

	// Guarded by table.mutex
	kids   []*Unit
	exited bool
	status int
	err    error
}

// Table holds the units of a run.
type Table struct {
	Verbose bool // If set, logs spawns, exits and reaps.

	mutex   sync.Mutex
	cond    sync.Cond
	nextPid int
	root    *Unit
	spawned int
	fatal   error
}

func (t *Table) newUnit(parent *Unit, name string) (u *Unit) {
	if t.cond.L == nil {
		t.cond.L = &t.mutex
	}

	t.nextPid++
	u = &Unit{
		Pid:    t.nextPid,
		Id:     uuid.New(),
		Name:   name,
		table:  t,
		parent: parent,
	}

	return
}

// Init creates the root unit, which runs on the calling goroutine.
func (t *Table) Init(name string) (root *Unit) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if t.root != nil {
		root = t.root
		return
	}

	root = t.newUnit(nil, name)
	t.root = root

	if t.Verbose {
		log.Printf("proc %d (%v): init", root.Pid, root.Name)
	}

	return
}

// Spawned returns the number of units spawned, not counting the root.
func (t *Table) Spawned() (count int) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	count = t.spawned
	return
}

// Abort latches err as the fatal error of the run. Only the first error
// is kept; ok is true if err was the first.
func (t *Table) Abort(err error) (ok bool) {
	if err == nil {
		return
	}

	t.mutex.Lock()
	defer t.mutex.Unlock()

	if t.fatal == nil {
		t.fatal = err
		ok = true
	}

	return
}

// Err returns the fatal error of the run, if any.
func (t *Table) Err() (err error) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	err = t.fatal
	return
}

// Parent returns the current parent of the unit.
func (u *Unit) Parent() (parent *Unit) {
	u.table.mutex.Lock()
	defer u.table.mutex.Unlock()

	parent = u.parent
	return
}

// Adopt hands files to the unit. Any still open when the unit exits are
// closed then.
func (u *Unit) Adopt(files ...io.Closer) {
	u.files = append(u.files, files...)
}

// Spawn starts a child unit running main. The child adopts files.
func (u *Unit) Spawn(name string, main func(child *Unit) error, files ...io.Closer) (child *Unit) {
	t := u.table

	t.mutex.Lock()
	child = t.newUnit(u, name)
	child.files = files
	u.kids = append(u.kids, child)
	t.spawned++
	t.mutex.Unlock()

	if t.Verbose {
		log.Printf("proc %d (%v): spawned by %d", child.Pid, child.Name, u.Pid)
	}

	go func() {
		child.Exit(main(child))
	}()

	return
}

// Exit terminates the unit with the result of its main function.
func (u *Unit) Exit(err error) {
	t := u.table

	for _, file := range u.files {
		_ = file.Close()
	}
	u.files = nil

	t.mutex.Lock()
	defer t.mutex.Unlock()

	u.exited = true
	u.status = EXIT_SUCCESS
	if err != nil {
		u.status = EXIT_FAILURE
		u.err = &ErrUnitFailed{Pid: u.Pid, Name: u.Name, Err: err}
		if t.fatal == nil {
			t.fatal = u.err
		}
	}

	// Orphans go to the root.
	if t.root != nil && u != t.root {
		for _, kid := range u.kids {
			kid.parent = t.root
			t.root.kids = append(t.root.kids, kid)
		}
		u.kids = nil
	}

	if t.Verbose {
		log.Printf("proc %d (%v): exit %d", u.Pid, u.Name, u.status)
	}

	t.cond.Broadcast()
}

// Wait blocks until any child of the unit has exited, and collects it.
// Once the unit has no children left, Wait returns ErrNoChildren.
func (u *Unit) Wait() (child *Unit, err error) {
	t := u.table

	t.mutex.Lock()
	defer t.mutex.Unlock()

	for {
		if len(u.kids) == 0 {
			err = ErrNoChildren
			return
		}

		index := slices.IndexFunc(u.kids, func(kid *Unit) bool { return kid.exited })
		if index >= 0 {
			child = u.kids[index]
			u.kids = slices.Delete(u.kids, index, index+1)
			if t.Verbose {
				log.Printf("proc %d (%v): reaped %d", u.Pid, u.Name, child.Pid)
			}
			return
		}

		t.cond.Wait()
	}
}

// Exited is true once the unit has terminated.
func (u *Unit) Exited() (exited bool) {
	u.table.mutex.Lock()
	defer u.table.mutex.Unlock()

	exited = u.exited
	return
}

// Status returns the exit status of a terminated unit.
func (u *Unit) Status() (status int) {
	u.table.mutex.Lock()
	defer u.table.mutex.Unlock()

	status = u.status
	return
}

// Err returns the failure of a terminated unit, if any.
func (u *Unit) Err() (err error) {
	u.table.mutex.Lock()
	defer u.table.mutex.Unlock()

	err = u.err
	return
}
