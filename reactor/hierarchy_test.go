package reactor

import "testing"

// singleEvent is the Testable Properties scenario 4 fixture: a reactor
// that writes a fixed parameter to its output once, at startup.
type singleEvent struct {
	*Reactor
	Param int
	o     *Port[int]
}

func newSingleEvent(container *Reactor, param int) *singleEvent {
	se := &singleEvent{Param: param}
	se.Reactor = NewReactor(container, se)
	se.o = NewOutputPort[int](se.Reactor)

	se.AddReaction([]Triggerable{se.Startup}, []Argument{Write(se.o)}, func(sb *Sandbox) {
		w, _ := se.o.AsWritable(se.Reactor)
		w.Set(se.Param)
	})
	return se
}

// logger is the sibling that receives and records whatever SingleEvent
// sends.
type logger struct {
	*Reactor
	i        *Port[int]
	received int
	logged   bool
}

func newLogger(container *Reactor) *logger {
	lg := &logger{}
	lg.Reactor = NewReactor(container, lg)
	lg.i = NewInputPort[int](lg.Reactor)

	lg.AddReaction([]Triggerable{lg.i}, []Argument{Read(lg.i)}, func(sb *Sandbox) {
		v, _ := lg.i.Get()
		lg.received = v
		lg.logged = true
	})
	return lg
}

func TestHierarchicalSingleEventScenario(t *testing.T) {
	app := NewApp(Config{Fast: true})
	se := newSingleEvent(app.Reactor, 42)
	lg := newLogger(app.Reactor)

	if err := app.Reactor.canConnect(se.o, lg.i); err != nil {
		t.Fatalf("canConnect(outer.o, inner.i) should be true for two depth-1 siblings under the same container: %v", err)
	}

	if err := Connect(app.Reactor, se.o, lg.i); err != nil {
		t.Fatalf("Connect error: %v", err)
	}

	if err := app.Run(); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if !lg.logged || lg.received != 42 {
		t.Fatalf("logger received=%d logged=%v, want 42 true", lg.received, lg.logged)
	}
}

func TestCanConnectRejectsInputToOutput(t *testing.T) {
	app := NewApp(Config{})
	a := newSingleEvent(app.Reactor, 1)
	b := newLogger(app.Reactor)

	if err := Connect(app.Reactor, b.i, a.o); err == nil {
		t.Fatal("connecting an input to an output should be illegal regardless of scope")
	}
}

func TestCanConnectRejectsSecondSourceForSamePort(t *testing.T) {
	app := NewApp(Config{})
	se := newSingleEvent(app.Reactor, 1)
	lg1 := newLogger(app.Reactor)
	lg2 := newLogger(app.Reactor)

	if err := Connect(app.Reactor, se.o, lg1.i); err != nil {
		t.Fatalf("first connect should succeed: %v", err)
	}

	other := newSingleEvent(app.Reactor, 2)
	if err := Connect(app.Reactor, other.o, lg1.i); err == nil {
		t.Fatal("a second source for an already-sourced destination should be rejected")
	}
	_ = lg2
}
