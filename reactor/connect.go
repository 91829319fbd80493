package reactor

import "github.com/arborlang/reactorcore/structures"

type dependencyGraphString = structures.DependencyGraph[string]

// depthRelativeTo reports target's containment depth relative to r: 0 if
// target is directly owned by r, 1 if target is owned by one of r's
// direct children, -1 otherwise.
func depthRelativeTo(r *Reactor, target owned) int {
	container := target.Container()
	if container == r {
		return 0
	}
	if container != nil && container.Container() == r {
		return 1
	}
	return -1
}

// canConnect applies the scope rules of spec.md §4.6 relative to r, the
// reactor performing the connection: OUT→IN only between two different
// depth-1 children (siblings); OUT→OUT only from a depth-1 child's output
// up to r's own output; IN→IN only from r's own input down to a depth-1
// child's input; IN→OUT is always rejected.
func (r *Reactor) canConnect(src, dst connectable) error {
	if src.ID() == dst.ID() {
		return ErrIllegalConnection
	}
	if dst.HasSource() {
		return ErrIllegalConnection
	}

	sd, dd := depthRelativeTo(r, src), depthRelativeTo(r, dst)
	if sd < 0 || dd < 0 {
		return ErrIllegalConnection
	}

	switch {
	case src.direction() == dirOut && dst.direction() == dirIn:
		if sd == 1 && dd == 1 && src.Container() != dst.Container() {
			return r.checkRuntimeConnection(src, dst)
		}
	case src.direction() == dirOut && dst.direction() == dirOut:
		if sd == 1 && dd == 0 {
			return r.checkRuntimeConnection(src, dst)
		}
	case src.direction() == dirIn && dst.direction() == dirIn:
		if sd == 0 && dd == 1 {
			return r.checkRuntimeConnection(src, dst)
		}
	}
	return ErrIllegalConnection
}

// checkRuntimeConnection performs the additional checks spec.md §4.6
// requires once the engine is already running: a tentative merge of the
// local graph with contained reactors' causality interfaces must remain
// acyclic, and the new edge must not introduce new reachability from one
// of r's own outputs back to one of r's own inputs.
func (r *Reactor) checkRuntimeConnection(src, dst connectable) error {
	if r.app == nil || !r.app.active {
		return nil
	}

	before := r.localGraph.Clone()
	for _, child := range r.children {
		before.Merge(child.causalityGraph)
	}
	tentative := before.Clone()
	tentative.AddEdge(dst.ID(), src.ID())

	if tentative.HasCycle() {
		return ErrCycle
	}

	for _, out := range r.ownOutputIDs() {
		for _, in := range r.ownInputIDs() {
			if reaches(tentative, out, in) && !reaches(before, out, in) {
				return ErrZeroDelayFeedback
			}
		}
	}

	return nil
}

func (r *Reactor) ownInputIDs() []string {
	var ids []string
	for _, p := range r.ownPorts {
		if p.direction() == dirIn {
			ids = append(ids, p.ID())
		}
	}
	return ids
}

func (r *Reactor) ownOutputIDs() []string {
	var ids []string
	for _, p := range r.ownPorts {
		if p.direction() == dirOut {
			ids = append(ids, p.ID())
		}
	}
	return ids
}

// reaches reports whether there is an upstream path from start to target
// in g (start depends, transitively, on target).
func reaches(g *dependencyGraphString, start, target string) bool {
	visited := map[string]bool{}
	var walk func(string) bool
	walk = func(n string) bool {
		if n == target {
			return true
		}
		if visited[n] {
			return false
		}
		visited[n] = true
		ups, ok := g.UpstreamOf(n)
		if !ok {
			return false
		}
		for up := range ups {
			if walk(up) {
				return true
			}
		}
		return false
	}
	return walk(start)
}

// Connect wires an ordinary port-to-port connection: src's value
// propagates to dst going forward. r must be the common container
// relative to which src and dst satisfy canConnect's scope rules.
func Connect[T any](r *Reactor, src, dst *Port[T]) error {
	if err := r.canConnect(src, dst); err != nil {
		return err
	}

	mgr, err := src.GetManager(r)
	if err != nil {
		return err
	}
	mgr.AddReceiver(dst)

	r.localGraph.AddEdge(dst.ID(), src.ID())
	r.causalityGraph.AddEdge(dst.ID(), src.ID())

	if r.app != nil && r.app.active {
		if v, ok := src.Get(); ok {
			dst.update(r.app.currentTag, v)
		}
	}
	return nil
}

// ConnectRPC binds caller to callee for synchronous invocation, per
// spec.md §4.6.
func ConnectRPC[TArgs, TRet any](caller *CallerPort[TArgs, TRet], callee *CalleePort[TArgs, TRet]) {
	caller.remote = callee
	callee.lastCaller = caller
}
