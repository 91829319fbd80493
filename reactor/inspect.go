package reactor

// Reactions returns the reactions and mutations declared directly on r, in
// declaration order.
func (r *Reactor) Reactions() []*Reaction {
	return append([]*Reaction(nil), r.declared...)
}

// Children returns r's direct child reactors, in construction order.
func (r *Reactor) Children() []*Reactor {
	return append([]*Reactor(nil), r.children...)
}

// Reactors returns the App's reactor itself and every reactor it contains,
// recursively, in declaration order — the same traversal analyzeDependencies
// walks to build the global precedence graph.
func (a *App) Reactors() []*Reactor {
	return a.allReactors()
}

// Check runs the precedence analyzer without starting the main loop: a
// cycle surfaces the same ErrCycle Run would return, before any reaction
// fires. It is what the CLI's graph subcommand uses to validate and
// describe a topology without executing it.
func (a *App) Check() error {
	return a.analyzeDependencies()
}
