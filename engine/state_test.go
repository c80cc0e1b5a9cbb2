package engine

import (
	"testing"

	"github.com/xDarkicex/car/core"
)

func TestArenaNewAndGet(t *testing.T) {
	var a Arena
	root := a.New(core.Cube{1, 2}, 0, NoState)
	child := a.New(core.Cube{-1}, 1, root)

	if a.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", a.Len())
	}
	if got := a.Get(root); got.Parent != NoState {
		t.Errorf("root.Parent = %v, want NoState", got.Parent)
	}
	if got := a.Get(child); got.Parent != root {
		t.Errorf("child.Parent = %v, want %v", got.Parent, root)
	}
	if got := a.Get(child); got.Depth != 1 {
		t.Errorf("child.Depth = %d, want 1", got.Depth)
	}
}

func TestArenaGetMutatesInPlace(t *testing.T) {
	var a Arena
	id := a.New(core.Cube{1}, 0, NoState)
	a.Get(id).Inputs = core.Cube{2}
	if got := a.Get(id).Inputs; len(got) != 1 || got[0] != 2 {
		t.Errorf("Inputs = %v, want [2]", got)
	}
}
