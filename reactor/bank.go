package reactor

// reactorLike is implemented by any pointer-to-struct that embeds *Reactor,
// via method promotion, letting NewBank recover the embedded Reactor after
// a bank member is constructed.
type reactorLike interface {
	asReactor() *Reactor
}

func (r *Reactor) asReactor() *Reactor { return r }

// NewBankMember is NewReactor plus a fixed bank index, assigned before the
// member's own constructor declares any reactions (bankIndex must already
// be set by the time AddReaction captures it for Sandbox.BankIndex).
func NewBankMember(container *Reactor, self any, index int) *Reactor {
	r := NewReactor(container, self)
	r.bankIndex = index
	return r
}

// NewBank builds n sibling reactor instances sharing container, each
// constructed by factory with its bank index in hand (Testable Properties
// scenario 5: a 3-member bank assigned to a slice field b of container's own
// self struct is named b[0], b[1], b[2] by Component.Name's slice-index
// fallback, qualified by container's own fully-qualified name). factory is expected to build its reactor with
// NewBankMember rather than NewReactor, so the index is already recorded
// before any of the member's own reactions are declared.
func NewBank[T reactorLike](container *Reactor, n int, factory func(container *Reactor, index int) T) []T {
	members := make([]T, n)
	for i := 0; i < n; i++ {
		members[i] = factory(container, i)
	}
	return members
}
