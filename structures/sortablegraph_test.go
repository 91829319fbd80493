package structures

import "testing"

func TestUpdatePrioritiesOrdersByDependency(t *testing.T) {
	g := NewSortableDependencyGraph[string]()
	g.AddEdge("c", "b")
	g.AddEdge("b", "a")

	if !g.UpdatePriorities(DefaultPrioritySpacing) {
		t.Fatal("expected UpdatePriorities to succeed on a DAG")
	}

	pa, _ := g.PriorityOf("a")
	pb, _ := g.PriorityOf("b")
	pc, _ := g.PriorityOf("c")

	if !(pa < pb && pb < pc) {
		t.Fatalf("expected priority(a) < priority(b) < priority(c), got a=%d b=%d c=%d", pa, pb, pc)
	}
}

func TestUpdatePrioritiesStrictlyIncreasingAcrossSameLayer(t *testing.T) {
	g := NewSortableDependencyGraph[string]()
	g.AddNode("x")
	g.AddNode("y")

	if !g.UpdatePriorities(DefaultPrioritySpacing) {
		t.Fatal("expected UpdatePriorities to succeed")
	}

	px, _ := g.PriorityOf("x")
	py, _ := g.PriorityOf("y")
	if px == py {
		t.Fatalf("expected distinct priorities within the same layer, got x=%d y=%d", px, py)
	}
}

func TestUpdatePrioritiesFailsOnCycle(t *testing.T) {
	g := NewSortableDependencyGraph[string]()
	g.AddEdge("a", "b")
	g.AddEdge("b", "c")
	g.AddEdge("c", "a")

	if g.UpdatePriorities(DefaultPrioritySpacing) {
		t.Fatal("expected UpdatePriorities to fail on a cycle")
	}
}

func TestFromPrecedenceGraphCollapsesThroughPorts(t *testing.T) {
	full := NewDependencyGraph[string]()
	// r1 writes port p, r2 reads port p: r2 depends on p depends on r1.
	full.AddEdge("p", "r1")
	full.AddEdge("r2", "p")

	isReaction := func(n string) bool { return n == "r1" || n == "r2" }

	collapsed := FromPrecedenceGraph(full, isReaction)

	ups, found := collapsed.graph.UpstreamOf("r2")
	if !found {
		t.Fatal("expected r2 to be present in the collapsed graph")
	}
	if _, ok := ups["r1"]; !ok {
		t.Fatalf("expected r2 to depend on r1 through port p, got %v", ups)
	}
	if _, ok := ups["p"]; ok {
		t.Fatal("port p must not appear in the reaction-only graph")
	}
}

func TestFromPrecedenceGraphStopsAtIntermediateReaction(t *testing.T) {
	full := NewDependencyGraph[string]()
	// r3 depends on r2 (directly), r2 depends on r1: r3 must NOT get a
	// flattened direct edge to r1, only to r2.
	full.AddEdge("r3", "r2")
	full.AddEdge("r2", "r1")

	isReaction := func(string) bool { return true }
	collapsed := FromPrecedenceGraph(full, isReaction)

	ups, _ := collapsed.graph.UpstreamOf("r3")
	if len(ups) != 1 {
		t.Fatalf("expected r3 to have exactly one direct upstream reaction, got %v", ups)
	}
	if _, ok := ups["r2"]; !ok {
		t.Fatalf("expected r3 -> r2, got %v", ups)
	}
}
