package reactor

// MultiPort is a fixed-width array of identically-typed ports, exposing
// aggregate present-if-any semantics and an aggregate writable view.
type MultiPort[T any] struct {
	ports []*Port[T]
}

// NewMultiPort builds a MultiPort of width ports, each owned by container
// and named by its position (Component.Name falls back to the MultiPort's
// own field name plus index when no matching container field holds the
// member port directly — see Port.multiportSlot).
func NewMultiPort[T any](container *Reactor, width int, dir Direction) *MultiPort[T] {
	m := &MultiPort[T]{ports: make([]*Port[T], width)}
	for i := range m.ports {
		self := &Port[T]{multiOwner: m, multiIndex: i}
		m.ports[i] = NewPort(container, self, dir)
	}
	return m
}

// Width returns the number of member ports.
func (m *MultiPort[T]) Width() int {
	return len(m.ports)
}

// At returns the i-th member port.
func (m *MultiPort[T]) At(i int) *Port[T] {
	return m.ports[i]
}

// MemberIDs implements multiPortNode for graph wiring.
func (m *MultiPort[T]) MemberIDs() []string {
	ids := make([]string, len(m.ports))
	for i, p := range m.ports {
		ids[i] = p.ID()
	}
	return ids
}

// IsPresent reports whether any member port is present at the current tag.
func (m *MultiPort[T]) IsPresent() bool {
	for _, p := range m.ports {
		if p.IsPresent() {
			return true
		}
	}
	return false
}

// WritableMultiPort is the aggregate writable view over every member of a
// MultiPort.
type WritableMultiPort[T any] struct {
	members []*Writable[T]
}

// AsWritable returns an aggregate writable view, gated the same way as a
// single Port.AsWritable for every member.
func (m *MultiPort[T]) AsWritable(requester *Reactor) (*WritableMultiPort[T], error) {
	members := make([]*Writable[T], len(m.ports))
	for i, p := range m.ports {
		w, err := p.AsWritable(requester)
		if err != nil {
			return nil, err
		}
		members[i] = w
	}
	return &WritableMultiPort[T]{members: members}, nil
}

// Set writes v to the i-th member.
func (w *WritableMultiPort[T]) Set(i int, v T) {
	w.members[i].Set(v)
}

// Width returns the number of members.
func (w *WritableMultiPort[T]) Width() int {
	return len(w.members)
}
