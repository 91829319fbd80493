package reactor

import (
	"errors"
	"testing"
)

// cyclic is the Testable Properties scenario 6 fixture: three reactions
// whose read/write edges form a→b→c→a, rejected by the precedence
// analyzer before the engine ever starts its main loop.
type cyclic struct {
	*Reactor
	pAB, pBC, pCA *Port[int]
}

func newCyclic(container *Reactor) *cyclic {
	c := &cyclic{}
	c.Reactor = NewReactor(container, c)
	c.pAB = NewOutputPort[int](c.Reactor)
	c.pBC = NewOutputPort[int](c.Reactor)
	c.pCA = NewOutputPort[int](c.Reactor)

	c.AddReaction([]Triggerable{c.pCA}, []Argument{Read(c.pCA), Write(c.pAB)}, func(sb *Sandbox) {})
	c.AddReaction([]Triggerable{c.pAB}, []Argument{Read(c.pAB), Write(c.pBC)}, func(sb *Sandbox) {})
	c.AddReaction([]Triggerable{c.pBC}, []Argument{Read(c.pBC), Write(c.pCA)}, func(sb *Sandbox) {})
	return c
}

func TestCycleDetectionScenario(t *testing.T) {
	app := NewApp(Config{Fast: true})
	newCyclic(app.Reactor)

	err := app.Run()
	if err == nil {
		t.Fatal("Run() should refuse to start on a cyclic dependency graph")
	}
	if !errors.Is(err, ErrCycle) {
		t.Fatalf("Run() error = %v, want ErrCycle", err)
	}
}

// chain is a two-reaction, non-cyclic fixture for the priority-ordering
// invariant: for every edge (A -> B) in the reaction graph, priority(A) <
// priority(B) once updatePriorities has run.
type chain struct {
	*Reactor
	p        *Port[int]
	producer *Reaction
	consumer *Reaction
}

func newChain(container *Reactor) *chain {
	c := &chain{}
	c.Reactor = NewReactor(container, c)
	c.p = NewOutputPort[int](c.Reactor)

	c.producer, _ = c.AddReaction([]Triggerable{c.Startup}, []Argument{Write(c.p)}, func(sb *Sandbox) {
		w, _ := c.p.AsWritable(c.Reactor)
		w.Set(1)
	})
	c.consumer, _ = c.AddReaction([]Triggerable{c.p}, []Argument{Read(c.p)}, func(sb *Sandbox) {})
	return c
}

func TestPriorityRespectsDependencyEdges(t *testing.T) {
	app := NewApp(Config{Fast: true})
	c := newChain(app.Reactor)

	if err := app.analyzeDependencies(); err != nil {
		t.Fatalf("analyzeDependencies error: %v", err)
	}

	if !(c.producer.Priority() < c.consumer.Priority()) {
		t.Fatalf("producer.Priority()=%d, consumer.Priority()=%d; producer must precede consumer",
			c.producer.Priority(), c.consumer.Priority())
	}
}
