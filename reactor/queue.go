package reactor

import (
	"github.com/arborlang/reactorcore/structures"
	"github.com/arborlang/reactorcore/timeval"
)

// reactionQueue is the priority-ordered queue of staged reactions and
// mutations, backed directly by structures.PrioritySet since *Reaction
// already implements structures.PrioritySetElement.
type reactionQueue = structures.PrioritySet[*Reaction]

// taggedEvent is a trigger-update event pending on the event queue. apply
// performs the type-specific update (storing the value on the concrete
// *Port[T]/*Action[T] and staging its reactions); wrapping it in a closure
// lets the event queue stay non-generic despite triggers being generic.
type taggedEvent struct {
	trigger graphNode
	tag     timeval.Tag
	apply   func()
}

// HasPriorityOver implements structures.PrioritySetElement: earlier tags
// run first.
func (e *taggedEvent) HasPriorityOver(other *taggedEvent) bool {
	return e.tag.Before(other.tag)
}

// UpdateIfDuplicateOf implements structures.PrioritySetElement: a second
// push for the same (trigger, tag) pair overwrites the first's pending
// update in place rather than inserting a second entry (spec.md §4.4).
func (e *taggedEvent) UpdateIfDuplicateOf(existing *taggedEvent) bool {
	if e.trigger.ID() == existing.trigger.ID() && e.tag.Equal(existing.tag) {
		existing.apply = e.apply
		return true
	}
	return false
}

// eventQueue is the priority-ordered queue of pending tagged events.
type eventQueue = structures.PrioritySet[*taggedEvent]
