package reactor

import "github.com/arborlang/reactorcore/structures"

// firstReaction returns the first declared Reaction (not a Mutation), if
// any.
func (r *Reactor) firstReaction() (*Reaction, bool) {
	for _, rxn := range r.declared {
		if !rxn.IsMutation() {
			return rxn, true
		}
	}
	return nil, false
}

// lastMutation returns the last declared Mutation, if any.
func (r *Reactor) lastMutation() (*Reaction, bool) {
	var last *Reaction
	for _, rxn := range r.declared {
		if rxn.IsMutation() {
			last = rxn
		}
	}
	return last, last != nil
}

// allReactors returns r and every reactor contained in it, recursively, in
// declaration order.
func (r *Reactor) allReactors() []*Reactor {
	result := []*Reactor{r}
	for _, c := range r.children {
		result = append(result, c.allReactors()...)
	}
	return result
}

// analyzeDependencies runs the precedence analyzer (spec.md §4.7): merge
// every local graph, add implicit mutation-ordering edges, collapse to a
// reaction-only graph, and assign priorities via Kahn's algorithm. It
// returns ErrCycle if no full topological order exists.
func (a *App) analyzeDependencies() error {
	reactors := a.allReactors()

	global := structures.NewDependencyGraph[string]()
	byID := make(map[string]*Reaction)

	for _, r := range reactors {
		global.Merge(r.localGraph)
		for _, rxn := range r.declared {
			byID[rxn.ID()] = rxn
		}
	}

	for _, r := range reactors {
		if last, ok := r.lastMutation(); ok {
			if first, ok := r.firstReaction(); ok {
				global.AddEdge(first.ID(), last.ID())
			}
			for _, child := range r.children {
				if childFirst, ok := child.firstReaction(); ok {
					global.AddEdge(childFirst.ID(), last.ID())
				}
			}
		}
	}

	isReaction := func(id string) bool {
		_, ok := byID[id]
		return ok
	}

	sortable := structures.FromPrecedenceGraph(global, isReaction)
	if !sortable.UpdatePriorities(structures.DefaultPrioritySpacing) {
		return ErrCycle
	}

	for id, rxn := range byID {
		if p, ok := sortable.PriorityOf(id); ok {
			rxn.priority = p
		}
	}

	return nil
}
