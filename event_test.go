package recycler_test

import (
	"testing"

	"github.com/go-theft-auto/recycler"
)

func TestEventSubscribeEmit(t *testing.T) {
	var ev recycler.Event[int]
	var got []int
	ev.Subscribe(func(v int) { got = append(got, v) })
	ev.Subscribe(func(v int) { got = append(got, v*10) })

	ev.Emit(2)

	if len(got) != 2 || got[0] != 2 || got[1] != 20 {
		t.Errorf("expected [2 20], got %v", got)
	}
}

func TestEventUnsubscribe(t *testing.T) {
	var ev recycler.Event[string]
	calls := 0
	unsubscribe := ev.Subscribe(func(string) { calls++ })
	ev.Emit("a")
	unsubscribe()
	ev.Emit("b")
	unsubscribe()

	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
	if ev.Len() != 0 {
		t.Errorf("expected no handlers, got %d", ev.Len())
	}
}

func TestEventUnsubscribeDuringEmit(t *testing.T) {
	var ev recycler.Event[int]
	calls := 0
	var unsubscribe func()
	unsubscribe = ev.Subscribe(func(int) {
		calls++
		unsubscribe()
	})
	ev.Subscribe(func(int) { calls++ })

	ev.Emit(1)
	ev.Emit(1)

	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestEventNilHandlerAndClear(t *testing.T) {
	var ev recycler.Event[int]
	ev.Subscribe(nil)()
	ev.Subscribe(func(int) {})
	ev.Clear()
	ev.Emit(1)
	if ev.Len() != 0 {
		t.Errorf("expected cleared event, got %d handlers", ev.Len())
	}
}
