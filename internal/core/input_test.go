package core

import "testing"

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	if f.Has(ActionMove) {
		t.Error("New frame should have no actions")
	}

	f.Set(ActionMove)
	f.Set(ActionMove)
	f.Set(ActionRestart)

	if f.Count(ActionMove) != 2 {
		t.Errorf("Count(Move) = %d, expected 2", f.Count(ActionMove))
	}
	if !f.Has(ActionRestart) {
		t.Error("Has(Restart) should be true")
	}

	f.Clear()
	if f.Has(ActionMove) || f.Has(ActionRestart) {
		t.Error("Clear should remove all actions")
	}

	var zero InputFrame
	if zero.Has(ActionQuit) {
		t.Error("Zero frame should report no actions")
	}
	zero.Set(ActionQuit)
	if !zero.Has(ActionQuit) {
		t.Error("Set on zero frame should allocate")
	}
}
