package reactor

import "errors"

// Error taxonomy matching spec.md §7: topology violations, graph
// violations, tag violations, and deadline misses are all structural and
// never recovered locally.
var (
	// ErrAlreadyRegistered is raised by one-shot component registration
	// when a component is adopted by a second container.
	ErrAlreadyRegistered = errors.New("reactor: component already has a container")

	// ErrCapability is raised when a key presented to a privileged
	// operation (AsWritable, GetManager, Schedulable) does not match, or
	// was requested across more than one hierarchy level, or for an
	// Action belonging to another reactor at all.
	ErrCapability = errors.New("reactor: capability key rejected")

	// ErrIllegalConnection is raised by canConnect / Connect for
	// self-loops, an already-sourced destination, or a scope violation.
	ErrIllegalConnection = errors.New("reactor: illegal connection")

	// ErrCycle is raised when the precedence analyzer finds a cycle that
	// survives topological sort, or when a runtime connection would
	// introduce one.
	ErrCycle = errors.New("reactor: dependency cycle")

	// ErrZeroDelayFeedback is raised by canConnect when a runtime
	// connection would create new direct port-to-port reachability
	// between one of a reactor's own outputs and its own inputs.
	ErrZeroDelayFeedback = errors.New("reactor: zero-delay feedback")

	// ErrTagMismatch is raised when an event dequeued from the event
	// queue does not carry the current tag at update time.
	ErrTagMismatch = errors.New("reactor: event tag does not match current tag")

	// ErrProcedureAlreadyBound is raised connecting a second procedure
	// to a CalleePort that already has one bound.
	ErrProcedureAlreadyBound = errors.New("reactor: callee port already has a bound procedure")

	// ErrTimeOverflow is raised by time conversions that would exceed
	// the representable range.
	ErrTimeOverflow = errors.New("reactor: time value overflow")
)
