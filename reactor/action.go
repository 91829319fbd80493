package reactor

import "github.com/arborlang/reactorcore/timeval"

// Origin distinguishes a logical action, whose base time is the engine's
// current logical tag, from a physical action, whose base time is the wall
// clock.
type Origin int

const (
	LogicalOrigin Origin = iota
	PhysicalOrigin
)

// Action is a self-scheduled trigger. Scheduling it enqueues a TaggedEvent
// at a tag computed from its origin, minDelay, and the extra delay passed
// to Schedule, per spec.md §3.
type Action[T any] struct {
	Trigger
	Origin          Origin
	MinDelay        timeval.TimeValue
	MinInterArrival timeval.TimeValue
	isStartup       bool
	value           T
	tag             timeval.Tag
}

// NewAction declares an action owned by container. MinDelay defaults to
// zero and MinInterArrival to one nanosecond, matching spec.md §3; either
// may be overridden on the returned value before use.
func NewAction[T any](container *Reactor, origin Origin) *Action[T] {
	a := &Action[T]{
		Origin:          origin,
		MinInterArrival: timeval.TimeValue{Seconds: 0, Nanos: 1},
	}
	a.Trigger = newTrigger(container, a)
	return a
}

func (a *Action[T]) app() *App {
	if a.Container() == nil {
		return nil
	}
	return a.Container().app
}

// IsPresent reports whether this action carries a value at the current
// tag.
func (a *Action[T]) IsPresent() bool {
	app := a.app()
	return app != nil && a.tag.Equal(app.currentTag)
}

// Get returns the action's value and whether it is present at the current
// tag.
func (a *Action[T]) Get() (T, bool) {
	if a.IsPresent() {
		return a.value, true
	}
	var zero T
	return zero, false
}

func (a *Action[T]) update(tag timeval.Tag, v T) {
	a.tag = tag
	a.value = v
	if app := a.app(); app != nil {
		a.stage(app.reactions)
	}
}

// Schedulable is the privileged view through which a reaction schedules an
// action it does not otherwise hold as a read/write argument.
type Schedulable[T any] struct {
	action *Action[T]
}

// Schedulable returns a schedulable view of this action, gated exactly like
// Port.AsWritable except that it is never granted across a hierarchy level:
// only the action's own container may obtain it (spec.md §3 invariant 2).
func (a *Action[T]) Schedulable(requester *Reactor) (*Schedulable[T], error) {
	if _, err := requester.KeyFor(a, true); err != nil {
		return nil, err
	}
	return &Schedulable[T]{action: a}, nil
}

// Schedule computes the tag per spec.md §3 and enqueues a TaggedEvent for
// this action with value v.
func (s *Schedulable[T]) Schedule(extraDelay timeval.TimeValue, v T) error {
	a := s.action
	app := a.app()
	if app == nil {
		return nil
	}

	delay := a.MinDelay.Add(extraDelay)

	var tag timeval.Tag
	if a.Origin == PhysicalOrigin {
		tag = timeval.NewTag(app.currentPhysicalTime()).GetLaterTag(delay)
	} else {
		tag = app.currentTag.GetLaterTag(delay)
	}

	if a.Origin == LogicalOrigin && !a.isStartup {
		tag = tag.GetMicroStepsLater(1)
	}

	app.events.Push(&taggedEvent{
		trigger: a,
		tag:     tag,
		apply:   func() { a.update(tag, v) },
	})
	return nil
}
