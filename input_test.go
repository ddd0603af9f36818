package recycler_test

import (
	"testing"

	"github.com/go-theft-auto/recycler"
)

func TestInputMouseEdges(t *testing.T) {
	in := recycler.NewInputState()
	in.SetMouseButton(recycler.MouseButtonLeft, true)
	if !in.MouseClicked(recycler.MouseButtonLeft) || !in.MouseDown(recycler.MouseButtonLeft) {
		t.Error("expected click and down")
	}
	in.Reset()
	if in.MouseClicked(recycler.MouseButtonLeft) {
		t.Error("click must last one frame")
	}
	in.SetMouseButton(recycler.MouseButtonLeft, false)
	if !in.MouseReleased(recycler.MouseButtonLeft) {
		t.Error("expected release")
	}
	if in.MouseDown(recycler.MouseButtonCount) {
		t.Error("out-of-range button must report false")
	}
}

func TestInputPressKey(t *testing.T) {
	in := recycler.NewInputState()
	in.PressKey(recycler.KeyPageDown)
	if !in.KeyPressed(recycler.KeyPageDown) || !in.KeyRepeated(recycler.KeyPageDown) {
		t.Error("expected press")
	}
	if in.KeyDown(recycler.KeyPageDown) {
		t.Error("PressKey must release the key")
	}
	in.Reset()
	if in.KeyPressed(recycler.KeyPageDown) {
		t.Error("press must last one frame")
	}
}

func TestInputKeyRepeat(t *testing.T) {
	in := recycler.NewInputState()
	in.SetKey(recycler.KeyDown, true)
	in.Reset()

	in.UpdateKeyRepeat(0.2)
	if in.KeyRepeated(recycler.KeyDown) {
		t.Error("must not repeat before the delay")
	}
	repeats := 0
	for i := 0; i < 30; i++ {
		in.UpdateKeyRepeat(0.016)
		if in.KeyRepeated(recycler.KeyDown) {
			repeats++
		}
	}
	if repeats == 0 {
		t.Error("expected repeats after the delay")
	}
}

func TestKeyName(t *testing.T) {
	if recycler.KeyName(recycler.KeyPageDown) != "PgDn" {
		t.Errorf("unexpected %q", recycler.KeyName(recycler.KeyPageDown))
	}
	if recycler.KeyName(recycler.KeyCount) != "?" {
		t.Errorf("unexpected %q", recycler.KeyName(recycler.KeyCount))
	}
}
