package structures

// DefaultPrioritySpacing is the gap left between consecutive priority
// levels by UpdatePriorities, matching the reference spacing of 100 used
// throughout the precedence analyzer.
const DefaultPrioritySpacing = 100

// SortableDependencyGraph wraps a DependencyGraph with Kahn's algorithm to
// assign a total, strictly increasing execution priority to every node,
// consistent with the dependency edges (an edge down → up requires
// priority(up) < priority(down): up must run first).
type SortableDependencyGraph[N comparable] struct {
	graph      *DependencyGraph[N]
	priorities map[N]int
}

// NewSortableDependencyGraph returns an empty sortable graph.
func NewSortableDependencyGraph[N comparable]() *SortableDependencyGraph[N] {
	return &SortableDependencyGraph[N]{
		graph:      NewDependencyGraph[N](),
		priorities: make(map[N]int),
	}
}

// AddNode adds node with no edges if not already present.
func (s *SortableDependencyGraph[N]) AddNode(node N) bool {
	return s.graph.AddNode(node)
}

// AddEdge records that down depends on up.
func (s *SortableDependencyGraph[N]) AddEdge(down, up N) {
	s.graph.AddEdge(down, up)
}

// Nodes returns the nodes in insertion order.
func (s *SortableDependencyGraph[N]) Nodes() []N {
	return s.graph.Nodes()
}

// HasCycle reports whether the underlying graph currently contains a cycle.
func (s *SortableDependencyGraph[N]) HasCycle() bool {
	return s.graph.HasCycle()
}

// PriorityOf returns the priority last assigned to node by UpdatePriorities,
// and whether one has been assigned.
func (s *SortableDependencyGraph[N]) PriorityOf(node N) (int, bool) {
	p, found := s.priorities[node]
	return p, found
}

// UpdatePriorities runs Kahn's algorithm over a working copy of the graph,
// assigning priorities 0, spacing, 2*spacing, … in topological order. Nodes
// with no remaining upstream dependency are peeled off one layer at a time,
// each receiving a distinct, strictly increasing priority (ties are
// impossible by construction even within a layer). It returns false,
// leaving priorities unchanged, if a cycle prevents full topological
// ordering.
func (s *SortableDependencyGraph[N]) UpdatePriorities(spacing int) bool {
	if spacing <= 0 {
		spacing = DefaultPrioritySpacing
	}

	working := s.graph.Clone()
	assigned := make(map[N]int, len(working.Nodes()))
	next := 0

	remaining := len(working.Nodes())
	for remaining > 0 {
		sources := working.GetSourceNodes()
		if len(sources) == 0 {
			// Remaining nodes form (or are reachable only through) a cycle.
			return false
		}

		for _, n := range sources {
			assigned[n] = next
			next += spacing
			working.RemoveNode(n)
			remaining--
		}
	}

	s.priorities = assigned
	return true
}

// FromPrecedenceGraph collapses a mixed graph of reaction-like and
// non-reaction nodes (e.g. ports) into a reaction-only SortableDependencyGraph:
// a reaction R1 receives an edge to reaction R2 iff there is an upstream
// path of zero or more non-reaction nodes from R1 to R2 in full. isReaction
// classifies a node as belonging to the reaction-only output graph.
func FromPrecedenceGraph[N comparable](full *DependencyGraph[N], isReaction func(N) bool) *SortableDependencyGraph[N] {
	result := NewSortableDependencyGraph[N]()

	for _, n := range full.Nodes() {
		if !isReaction(n) {
			continue
		}
		result.AddNode(n)

		for _, up := range reachableReactions(full, n, isReaction) {
			result.AddEdge(n, up)
		}
	}

	return result
}

// reachableReactions walks upstream from start through zero or more
// non-reaction nodes, returning every reaction node reached. A path that
// passes through another reaction node stops there: that reaction's own
// upstream reactions are reached via its own edge, not flattened into
// start's edge set.
func reachableReactions[N comparable](full *DependencyGraph[N], start N, isReaction func(N) bool) []N {
	var result []N
	seen := map[N]bool{start: true}

	frontier, _ := full.UpstreamOf(start)
	queue := sortedByInsertion(frontier, full.order)

	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]

		if seen[node] {
			continue
		}
		seen[node] = true

		if isReaction(node) {
			result = append(result, node)
			continue
		}

		ups, found := full.UpstreamOf(node)
		if !found {
			continue
		}
		queue = append(queue, sortedByInsertion(ups, full.order)...)
	}

	return result
}
