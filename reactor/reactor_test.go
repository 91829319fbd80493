package reactor

import (
	"testing"

	"github.com/arborlang/reactorcore/timeval"
)

// adder is the Testable Properties scenario 1 fixture: two input ports
// receive 2 and 1 at the same tag, and a reaction sums them into an
// output.
type adder struct {
	*Reactor
	in1, in2   *Port[int]
	out        *Port[int]
	sum        int
	sumPresent bool
}

func newAdder(container *Reactor) *adder {
	a := &adder{}
	a.Reactor = NewReactor(container, a)
	a.in1 = NewInputPort[int](a.Reactor)
	a.in2 = NewInputPort[int](a.Reactor)
	a.out = NewOutputPort[int](a.Reactor)

	a.AddReaction([]Triggerable{a.Startup}, nil, func(sb *Sandbox) {
		w1, _ := a.in1.AsWritable(a.Reactor)
		w2, _ := a.in2.AsWritable(a.Reactor)
		w1.Set(2)
		w2.Set(1)
	})

	a.AddReaction([]Triggerable{a.in1, a.in2},
		[]Argument{Read(a.in1), Read(a.in2), Write(a.out)},
		func(sb *Sandbox) {
			v1, _ := a.in1.Get()
			v2, _ := a.in2.Get()
			w, _ := a.out.AsWritable(a.Reactor)
			w.Set(v1 + v2)
			a.sum, a.sumPresent = a.out.Get()
		})

	return a
}

func TestAdderScenario(t *testing.T) {
	app := NewApp(Config{Fast: true})
	a := newAdder(app.Reactor)

	if err := app.Run(); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	// The run ends one microstep after the sum is written, so out is read
	// back inside the reaction that set it.
	got, present := a.sum, a.sumPresent
	if !present {
		t.Fatal("out.Get() not present at the tag the sum was written")
	}
	if got != 3 {
		t.Fatalf("out.Get() = %d, want 3", got)
	}
}

// sequencer runs three reactions, recording the order they fired in, used
// to check declaration-order sequencing within one reactor (invariant 5)
// and priority-respecting dispatch more generally.
type sequencer struct {
	*Reactor
	trigger *Action[struct{}]
	order   []string
}

func newSequencer(container *Reactor) *sequencer {
	s := &sequencer{}
	s.Reactor = NewReactor(container, s)
	s.trigger = NewAction[struct{}](s.Reactor, LogicalOrigin)

	s.AddReaction([]Triggerable{s.trigger}, nil, func(sb *Sandbox) {
		s.order = append(s.order, "first")
	})
	s.AddReaction([]Triggerable{s.trigger}, nil, func(sb *Sandbox) {
		s.order = append(s.order, "second")
	})
	s.AddReaction([]Triggerable{s.trigger}, nil, func(sb *Sandbox) {
		s.order = append(s.order, "third")
	})

	s.AddReaction([]Triggerable{s.Startup}, nil, func(sb *Sandbox) {
		sched, _ := s.trigger.Schedulable(s.Reactor)
		_ = sched.Schedule(timeval.TimeValue{}, struct{}{})
	})

	return s
}

func TestReactionsRunInDeclarationOrder(t *testing.T) {
	app := NewApp(Config{Fast: true})
	s := newSequencer(app.Reactor)

	if err := app.Run(); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	want := []string{"first", "second", "third"}
	if len(s.order) != len(want) {
		t.Fatalf("order = %v, want %v", s.order, want)
	}
	for i := range want {
		if s.order[i] != want[i] {
			t.Fatalf("order = %v, want %v", s.order, want)
		}
	}
}

// adderHolder gives an *adder a named field in its own container, so
// Component.Name can resolve it by introspection instead of falling back
// to the type name.
type adderHolder struct {
	*Reactor
	Sum *adder
}

func TestFullyQualifiedNameUsesFieldNames(t *testing.T) {
	app := NewApp(Config{})
	h := &adderHolder{}
	h.Reactor = NewReactor(app.Reactor, h)
	h.Sum = newAdder(h.Reactor)

	if got := h.Sum.Name(); got != "Sum" {
		t.Fatalf("Name() = %q, want %q", got, "Sum")
	}
	if got := h.Sum.in1.FullyQualifiedName(); got != "adderHolder.Sum.in1" {
		t.Fatalf("FullyQualifiedName() = %q, want %q", got, "adderHolder.Sum.in1")
	}
}

// startupProbe is the fixture for the startup-microstep invariant: every
// reaction triggered by a startup action must execute at microstep 0.
type startupProbe struct {
	*Reactor
	microstep uint32
	ran       bool
}

func newStartupProbe(container *Reactor) *startupProbe {
	p := &startupProbe{}
	p.Reactor = NewReactor(container, p)
	p.AddReaction([]Triggerable{p.Startup}, nil, func(sb *Sandbox) {
		p.microstep = sb.CurrentTag().Microstep
		p.ran = true
	})
	return p
}

func TestStartupReactionsRunAtMicrostepZero(t *testing.T) {
	app := NewApp(Config{Fast: true})
	p := newStartupProbe(app.Reactor)

	if err := app.Run(); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if !p.ran {
		t.Fatal("startup reaction never ran")
	}
	if p.microstep != 0 {
		t.Fatalf("microstep at startup-triggered dispatch = %d, want 0", p.microstep)
	}
}
