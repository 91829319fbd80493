package reactor

import "github.com/arborlang/reactorcore/structures"

// portDirection is the internal scope-rule tag behind Port.direction; it is
// unexported because canConnect only ever needs it as an opaque label.
type portDirection int

const (
	dirIn portDirection = iota
	dirOut
)

// owned is implemented by every component kind: it exposes the container
// needed for capability scoping.
type owned interface {
	Container() *Reactor
}

// connectable is implemented by Port: the subset canConnect needs to judge
// scope, already-sourced, and self-loop violations without depending on
// the port's element type.
type connectable interface {
	owned
	graphNode
	direction() portDirection
	HasSource() bool
}

// bindable is implemented by CalleePort: binding a procedure is the one
// operation addReaction performs on a trigger that is not already exposed
// through the Triggerable interface.
type bindable interface {
	BindProcedure(r *Reaction) error
}

// startupMarker is implemented by Action: whether it is a reactor's own
// startup action, which makes any reaction triggered by it immediate.
type startupMarker interface {
	isStartupAction() bool
}

func (a *Action[T]) isStartupAction() bool { return a.isStartup }

// zeroOffsetMarker is implemented by Timer: a zero-offset timer also makes
// reactions triggered by it immediate.
type zeroOffsetMarker interface {
	hasZeroOffset() bool
}

func (t *Timer) hasZeroOffset() bool { return t.Offset.IsNever() }

// Triggerable is what AddReaction/AddMutation accept as a trigger: a port,
// action, timer, caller port, or callee port.
type Triggerable interface {
	graphNode
	registerReaction(r *Reaction)
}

// Reactor aggregates triggers, ports, reactions, and mutations under one
// container, and owns the local dependency and causality graphs the
// precedence analyzer merges at startup (spec.md §3, §4.6).
type Reactor struct {
	Component
	app            *App
	keychain       map[any]Key
	localGraph     *structures.DependencyGraph[string]
	causalityGraph *structures.DependencyGraph[string]
	declared       []*Reaction // reactions and mutations, declaration order
	lastSequential string      // id of the most recently declared reaction/mutation
	timers         []*Timer
	ownPorts       []connectable
	children       []*Reactor
	bankIndex      int
	active         bool
	markedDeleted  bool

	Startup  *Action[struct{}]
	Shutdown *Action[struct{}]
}

// NewReactor declares a reactor owned by container; self is the concrete
// embedding struct (e.g. *Adder), used for naming both this reactor within
// its container and this reactor's own children within itself. A nil
// container is only valid when constructing the App.
func NewReactor(container *Reactor, self any) *Reactor {
	r := &Reactor{
		keychain:       make(map[any]Key),
		localGraph:     structures.NewDependencyGraph[string](),
		causalityGraph: structures.NewDependencyGraph[string](),
		bankIndex:      -1,
	}
	r.Component = newComponent(container, self)
	if container != nil {
		r.app = container.app
		container.children = append(container.children, r)
	}

	r.Startup = NewAction[struct{}](r, LogicalOrigin)
	r.Startup.isStartup = true
	r.Shutdown = NewAction[struct{}](r, LogicalOrigin)

	return r
}

func (r *Reactor) adopt(self any, key Key) {
	r.keychain[self] = key
}

func (r *Reactor) registerTimer(t *Timer) {
	r.timers = append(r.timers, t)
}

func (r *Reactor) registerPort(p connectable) {
	r.ownPorts = append(r.ownPorts, p)
}

// KeyFor returns the capability key for target, if requester (this
// reactor) holds it: target must be requester's own direct child, or the
// direct child of one of requester's own direct children (one hierarchy
// level of delegation). Actions are never delegated across a hierarchy
// level at all (spec.md §3 invariant 2).
func (r *Reactor) KeyFor(target owned, isAction bool) (Key, error) {
	container := target.Container()
	if container == nil {
		return Key{}, ErrCapability
	}

	if container == r {
		if k, ok := r.keychain[target]; ok {
			return k, nil
		}
		return Key{}, ErrCapability
	}

	if isAction {
		return Key{}, ErrCapability
	}

	if container.Container() == r {
		if k, ok := container.keychain[target]; ok {
			return k, nil
		}
	}
	return Key{}, ErrCapability
}

// BankIndex returns this reactor's position within its bank, or -1 if it
// is not a bank member.
func (r *Reactor) BankIndex() int {
	return r.bankIndex
}

// wireReaction records the sequential-order edge (invariant 5), registers
// the reaction on each trigger, and wires argument read/write/schedule
// edges plus causality edges, per spec.md §4.6.
func (r *Reactor) wireReaction(rxn *Reaction, trigs []Triggerable, args []Argument) error {
	if r.lastSequential != "" {
		r.localGraph.AddEdge(rxn.ID(), r.lastSequential)
	} else {
		r.localGraph.AddNode(rxn.ID())
	}
	r.lastSequential = rxn.ID()
	r.declared = append(r.declared, rxn)

	immediate := false
	for _, t := range trigs {
		t.registerReaction(rxn)
		r.localGraph.AddEdge(rxn.ID(), t.ID())

		if sm, ok := t.(startupMarker); ok && sm.isStartupAction() {
			immediate = true
		}
		if zm, ok := t.(zeroOffsetMarker); ok && zm.hasZeroOffset() {
			immediate = true
		}
	}
	rxn.immediate = immediate

	if len(trigs) == 1 {
		if b, ok := trigs[0].(bindable); ok {
			if err := b.BindProcedure(rxn); err != nil {
				return err
			}
		}
	}

	var sources []string
	for _, a := range args {
		switch a.kind {
		case argRead, argReadMulti, argCallerRef:
			for _, id := range a.ids {
				r.localGraph.AddEdge(rxn.ID(), id)
			}
			if a.kind == argRead || a.kind == argReadMulti {
				sources = append(sources, a.ids...)
			}
		case argWrite, argWriteMulti, argSched:
			for _, id := range a.ids {
				r.localGraph.AddEdge(id, rxn.ID())
			}
		case argCalleeRef:
			for _, id := range a.ids {
				r.localGraph.AddEdge(rxn.ID(), id)
			}
		}
	}

	for _, a := range args {
		if a.kind != argWrite && a.kind != argWriteMulti {
			continue
		}
		for _, effect := range a.ids {
			for _, src := range sources {
				r.causalityGraph.AddEdge(effect, src)
			}
		}
	}

	return nil
}

// AddReaction declares a reaction triggered by trigs, reading/writing/
// scheduling args, running react when staged.
func (r *Reactor) AddReaction(trigs []Triggerable, args []Argument, react func(*Sandbox)) (*Reaction, error) {
	rxn := &Reaction{reactor: r, react: react, active: true, bankIndex: r.bankIndex}
	rxn.Component = newComponent(r, rxn)
	for _, t := range trigs {
		rxn.trigs = append(rxn.trigs, t)
	}
	rxn.args = args
	if err := r.wireReaction(rxn, trigs, args); err != nil {
		return nil, err
	}
	return rxn, nil
}

// AddMutation declares a mutation: a reaction whose body may alter
// topology. Mutations are wired identically to reactions; their ordering
// relative to the reactor's other reactions/mutations follows purely from
// declaration order (invariant 5).
func (r *Reactor) AddMutation(trigs []Triggerable, args []Argument, mutate func(*MutationSandbox)) (*Reaction, error) {
	rxn := &Reaction{reactor: r, mutate: mutate, active: true, bankIndex: r.bankIndex}
	rxn.Component = newComponent(r, rxn)
	for _, t := range trigs {
		rxn.trigs = append(rxn.trigs, t)
	}
	rxn.args = args
	if err := r.wireReaction(rxn, trigs, args); err != nil {
		return nil, err
	}
	return rxn, nil
}

// MarkDeleted flags this reactor for removal at the end of the current
// execution step (spec.md §3 Lifecycle).
func (r *Reactor) MarkDeleted() {
	r.markedDeleted = true
}
