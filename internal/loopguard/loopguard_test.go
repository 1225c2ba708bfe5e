package loopguard

import (
	"encoding/json"
	"testing"

	"github.com/vtcode/vtcode/pkg/vtmodels"
)

func call(name, argsJSON string) vtmodels.ToolCall {
	return vtmodels.ToolCall{Name: name, Input: json.RawMessage(argsJSON)}
}

func TestObserveTripsOnRepeat(t *testing.T) {
	g := New(Config{WindowSize: 10, RepeatThreshold: 3})

	tripped := false
	for i := 0; i < 3; i++ {
		tripped = g.Observe("s1", call("read_file", `{"path":"a.txt"}`))
	}
	if !tripped {
		t.Fatal("expected guard to trip after 3 identical calls")
	}
}

func TestObserveIgnoresKeyOrder(t *testing.T) {
	g := New(Config{WindowSize: 10, RepeatThreshold: 2})
	g.Observe("s1", call("edit", `{"a":1,"b":2}`))
	tripped := g.Observe("s1", call("edit", `{"b":2,"a":1}`))
	if !tripped {
		t.Fatal("expected signature to be order-independent")
	}
}

func TestObserveDistinctCallsDoNotTrip(t *testing.T) {
	g := New(Config{WindowSize: 10, RepeatThreshold: 3})
	tripped := false
	for i := 0; i < 5; i++ {
		tripped = g.Observe("s1", call("read_file", `{"path":"`+string(rune('a'+i))+`.txt"}`)) || tripped
	}
	if tripped {
		t.Fatal("distinct calls should not trip the guard")
	}
}

func TestResetClearsHistory(t *testing.T) {
	g := New(Config{WindowSize: 10, RepeatThreshold: 2})
	g.Observe("s1", call("x", `{}`))
	g.Reset("s1")
	tripped := g.Observe("s1", call("x", `{}`))
	if tripped {
		t.Fatal("expected fresh history after reset")
	}
}
