// Package engine implements the CAR (Complementary Approximate
// Reachability) model-checking core: the forward/backward approximate
// reachability sequences, the three SAT-oracle wrappers that drive them
// (Main, Start and Invariant solvers), and the main fixpoint loop.
package engine

import "github.com/xDarkicex/car/core"

// StateID indexes a State inside an arena. It replaces the original
// implementation's parent-pointer reference-counted state graph: instead
// of each State owning a pointer to its parent (and the lifetime puzzle
// that brings in a garbage-collected language with no destructors to
// hook cleanup into), every state the engine ever builds lives in one
// arena for the whole run and is addressed by this small integer, so
// lifetime is exactly the run's lifetime and a Trace can walk parent
// links by cheap index lookups.
type StateID int

// NoState is the sentinel StateID meaning "no parent" (the root of a
// trace). It is -1, not the zero value, since index 0 is a valid state.
const NoState StateID = -1

// State is one state discovered during the search: the cube of latch
// values that describes it (possibly partial, since CAR reasons about
// sets of states), the depth it was found at, and a back-link to the
// state it was reached from, for counterexample reconstruction.
type State struct {
	Cube   core.Cube
	Depth  int
	Parent StateID

	// Inputs holds the input assignment the solver returned together
	// with this state, nil for a root state until it is filled in. It is
	// set when the state is discovered, not at trace reconstruction.
	Inputs core.Cube
}

// Arena owns every State discovered during one run, addressed by
// StateID. Zero value is ready to use.
type Arena struct {
	states []State
}

// New adds a state to the arena and returns its id.
func (a *Arena) New(cube core.Cube, depth int, parent StateID) StateID {
	a.states = append(a.states, State{Cube: cube, Depth: depth, Parent: parent})
	return StateID(len(a.states) - 1)
}

// Get returns a pointer to the state with the given id, so callers can
// fill in Inputs after the fact without a second arena lookup.
func (a *Arena) Get(id StateID) *State {
	return &a.states[id]
}

// Len reports how many states the arena currently holds.
func (a *Arena) Len() int {
	return len(a.states)
}
