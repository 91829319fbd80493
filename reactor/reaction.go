package reactor

import "github.com/arborlang/reactorcore/timeval"

// graphNode is implemented by every trigger and port kind: it exposes the
// globally-unique id (the component's own key token) used as a node
// identity in dependency and causality graphs, which are keyed by plain
// strings rather than by the heterogeneous, generically-typed Go values
// themselves.
type graphNode interface {
	ID() string
}

// multiPortNode is implemented by MultiPort: its members contribute one
// graph node each.
type multiPortNode interface {
	MemberIDs() []string
}

// ID returns the component's globally-unique node identity.
func (c Component) ID() string {
	return c.key.token
}

type argKind int

const (
	argRead argKind = iota
	argWrite
	argReadMulti
	argWriteMulti
	argSched
	argCallerRef
	argCalleeRef
)

// Argument is a tagged description of how a reaction uses one of its
// arguments — read, write, or schedule — used only to wire the dependency
// and causality graphs in addReaction/addMutation. It carries no value: the
// reaction body itself closures directly over the concrete, typed
// *Port[T]/*Action[T] Go values, which is the idiomatic replacement for the
// source's duck-typed variable-argument list (spec.md §9).
type Argument struct {
	kind argKind
	ids  []string
}

// Read declares a reaction reads from p.
func Read(p graphNode) Argument { return Argument{kind: argRead, ids: []string{p.ID()}} }

// Write declares a reaction writes to p.
func Write(p graphNode) Argument { return Argument{kind: argWrite, ids: []string{p.ID()}} }

// ReadMulti declares a reaction reads from every member of m.
func ReadMulti(m multiPortNode) Argument { return Argument{kind: argReadMulti, ids: m.MemberIDs()} }

// WriteMulti declares a reaction writes to every member of m.
func WriteMulti(m multiPortNode) Argument { return Argument{kind: argWriteMulti, ids: m.MemberIDs()} }

// Sched declares a reaction schedules a (its sole privilege over an
// action it does not also read/write as a trigger).
func Sched(a graphNode) Argument { return Argument{kind: argSched, ids: []string{a.ID()}} }

// CallerRef declares a reaction holds a caller-port argument.
func CallerRef(c graphNode) Argument { return Argument{kind: argCallerRef, ids: []string{c.ID()}} }

// CalleeRef declares a reaction holds a callee-port argument.
func CalleeRef(c graphNode) Argument { return Argument{kind: argCalleeRef, ids: []string{c.ID()}} }

// Reaction is an executable unit triggered by events on its declared
// triggers. A Reaction with a non-nil mutate function is a Mutation
// (spec.md glossary: "reaction authorized to alter topology"); the two
// share a single type so they can live in the same priority-ordered
// reaction queue and have their relative ordering settled entirely by the
// dependency graph and assigned priorities, per spec.md §4.6.
type Reaction struct {
	Component
	reactor   *Reactor
	trigs     []graphNode
	args      []Argument
	react     func(*Sandbox)
	mutate    func(*MutationSandbox)
	late      func(*Sandbox)
	deadline  *timeval.TimeValue
	priority  int
	active    bool
	immediate bool
	bankIndex int
}

// WithDeadline attaches an optional deadline and late handler, returning
// the reaction for chaining. If currentTag+deadline is exceeded by
// physical time at dispatch, late runs instead of the normal body
// (spec.md §3).
func (r *Reaction) WithDeadline(deadline timeval.TimeValue, late func(*Sandbox)) *Reaction {
	r.deadline = &deadline
	r.late = late
	return r
}

// IsMutation reports whether this Reaction is a Mutation.
func (r *Reaction) IsMutation() bool {
	return r.mutate != nil
}

// Priority returns the priority assigned by the precedence analyzer.
func (r *Reaction) Priority() int {
	return r.priority
}

// SetActive toggles whether this reaction is staged when its triggers fire.
func (r *Reaction) SetActive(active bool) {
	r.active = active
}

// HasPriorityOver implements structures.PrioritySetElement: reactions with
// a lower assigned priority value run first.
func (r *Reaction) HasPriorityOver(other *Reaction) bool {
	return r.priority < other.priority
}

// UpdateIfDuplicateOf implements structures.PrioritySetElement: a reaction
// is only ever the same logical entry as itself (pointer identity), so
// re-pushing an already-staged reaction collapses to a no-op.
func (r *Reaction) UpdateIfDuplicateOf(existing *Reaction) bool {
	return r == existing
}
