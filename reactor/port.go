package reactor

import "github.com/arborlang/reactorcore/timeval"

// Direction distinguishes an input from an output port; it governs the
// scope rules Reactor.canConnect enforces.
type Direction int

const (
	Input Direction = iota
	Output
)

// Port is a typed carrier of at most one value per logical instant.
type Port[T any] struct {
	Trigger
	Dir       Direction
	tag       timeval.Tag
	value     T
	hasSource bool
	receivers []*Port[T]

	// multiOwner and multiIndex are set by NewMultiPort for a port built as
	// one of its members; multiOwner is nil for an ordinary port.
	multiOwner any
	multiIndex int
}

// multiportSlot implements multiportMember.
func (p *Port[T]) multiportSlot() (any, int) {
	return p.multiOwner, p.multiIndex
}

// NewPort declares a port owned by container, named by introspection.
func NewPort[T any](container *Reactor, self *Port[T], dir Direction) *Port[T] {
	self.Dir = dir
	self.Trigger = newTrigger(container, self)
	if container != nil {
		container.registerPort(self)
	}
	return self
}

// NewInputPort declares an input port owned by container.
func NewInputPort[T any](container *Reactor) *Port[T] {
	return NewPort(container, &Port[T]{}, Input)
}

// NewOutputPort declares an output port owned by container.
func NewOutputPort[T any](container *Reactor) *Port[T] {
	return NewPort(container, &Port[T]{}, Output)
}

func (p *Port[T]) direction() portDirection {
	if p.Dir == Output {
		return dirOut
	}
	return dirIn
}

// IsPresent reports whether this port carries a value at the engine's
// current tag.
func (p *Port[T]) IsPresent() bool {
	app := p.app()
	return app != nil && p.tag.Equal(app.currentTag)
}

// Get returns the port's value and whether it is present at the current
// tag; the zero value of T is returned when absent.
func (p *Port[T]) Get() (T, bool) {
	if p.IsPresent() {
		return p.value, true
	}
	var zero T
	return zero, false
}

func (p *Port[T]) app() *App {
	if p.Container() == nil {
		return nil
	}
	return p.Container().app
}

// update stores v at tag and stages every reaction registered on this
// port, mirroring the in-place update applied to a dequeued trigger and
// the propagation step of Writable.Set.
func (p *Port[T]) update(tag timeval.Tag, v T) {
	p.tag = tag
	p.value = v
	if app := p.app(); app != nil {
		p.stage(app.reactions)
	}
}

// AsWritable returns a writable view of this port, if requester holds the
// capability to obtain it: requester must be this port's own container, or
// that container's direct container (one hierarchy level of delegation;
// spec.md §3 invariant 2).
func (p *Port[T]) AsWritable(requester *Reactor) (*Writable[T], error) {
	if _, err := requester.KeyFor(p, false); err != nil {
		return nil, err
	}
	return &Writable[T]{port: p}, nil
}

// GetManager returns a management view of this port, gated the same way as
// AsWritable.
func (p *Port[T]) GetManager(requester *Reactor) (*PortManager[T], error) {
	if _, err := requester.KeyFor(p, false); err != nil {
		return nil, err
	}
	return &PortManager[T]{port: p}, nil
}

// HasSource reports whether some upstream port already sources this one
// (invariant 3 of spec.md §3: at most one upstream source per port).
func (p *Port[T]) HasSource() bool {
	return p.hasSource
}

// Writable is the privileged view of a Port through which reactions (and
// connect's value propagation) set its value.
type Writable[T any] struct {
	port *Port[T]
}

// Set updates the port's value at the engine's current tag, propagates the
// value synchronously to every registered receiver port, and stages every
// reaction registered on the port and on each receiver.
func (w *Writable[T]) Set(v T) {
	app := w.port.app()
	if app == nil {
		return
	}
	w.port.update(app.currentTag, v)
	for _, recv := range w.port.receivers {
		recv.update(app.currentTag, v)
	}
}

// PortManager is the privileged view through which a port's container adds
// receivers and registers reactions.
type PortManager[T any] struct {
	port *Port[T]
}

// AddReceiver records dst as a propagation target of this port and marks
// dst as sourced. Scope and cycle checks happen in Reactor.canConnect
// before this is called.
func (m *PortManager[T]) AddReceiver(dst *Port[T]) {
	dst.hasSource = true
	m.port.receivers = append(m.port.receivers, dst)
}

// AddReaction registers r to be staged when this port becomes present.
func (m *PortManager[T]) AddReaction(r *Reaction) {
	m.port.registerReaction(r)
}
