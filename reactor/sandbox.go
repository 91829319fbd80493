package reactor

import "github.com/arborlang/reactorcore/timeval"

// Sandbox is the set of utilities exposed to a reaction body (spec.md §6):
// time queries and the stop/error-stop/report-error requests. It is built
// fresh for each dispatch rather than exposing the App directly, so
// reaction bodies only ever see an immutable snapshot of engine state.
type Sandbox struct {
	app      *App
	reaction *Reaction
}

func newSandbox(app *App, r *Reaction) *Sandbox {
	return &Sandbox{app: app, reaction: r}
}

// CurrentTag returns the engine's current superdense tag.
func (s *Sandbox) CurrentTag() timeval.Tag { return s.app.currentTag }

// CurrentLogicalTime returns the time component of the current tag.
func (s *Sandbox) CurrentLogicalTime() timeval.TimeValue { return s.app.currentTag.Time }

// CurrentPhysicalTime returns the wall-clock time.
func (s *Sandbox) CurrentPhysicalTime() timeval.TimeValue { return s.app.currentPhysicalTime() }

// ElapsedLogicalTime returns the logical time elapsed since start.
func (s *Sandbox) ElapsedLogicalTime() timeval.TimeValue {
	elapsed, err := s.app.currentTag.Time.Subtract(s.app.startOfExecution)
	if err != nil {
		return timeval.NEVER
	}
	return elapsed
}

// ElapsedPhysicalTime returns the physical time elapsed since start.
func (s *Sandbox) ElapsedPhysicalTime() timeval.TimeValue {
	elapsed, err := s.app.currentPhysicalTime().Subtract(s.app.startOfExecution)
	if err != nil {
		return timeval.NEVER
	}
	return elapsed
}

// RequestStop schedules a clean shutdown one microstep from now.
func (s *Sandbox) RequestStop() { s.app.RequestStop() }

// RequestErrorStop schedules a shutdown and records msg as the run's error.
func (s *Sandbox) RequestErrorStop(msg string) { s.app.RequestErrorStop(msg) }

// ReportError logs msg without stopping the run.
func (s *Sandbox) ReportError(msg string) {
	if s.app.Logger != nil {
		s.app.Logger.Error(msg)
	}
}

// BankIndex returns this reaction's reactor's position within its bank, or
// -1 if it is not a bank member.
func (s *Sandbox) BankIndex() int {
	if s.reaction == nil {
		return -1
	}
	return s.reaction.bankIndex
}

// MutationSandbox extends Sandbox with the topology-altering operations
// available only to a Mutation's body (spec.md §6).
type MutationSandbox struct {
	*Sandbox
}

func newMutationSandbox(app *App, r *Reaction) *MutationSandbox {
	return &MutationSandbox{Sandbox: newSandbox(app, r)}
}

// GetReactor returns the reactor that declared the running mutation; pass
// it as the first argument to Connect to wire ports in scope of this
// mutation's container.
func (m *MutationSandbox) GetReactor() *Reactor {
	return m.reaction.reactor
}

// Delete marks r for removal at the end of the current execution step.
func (m *MutationSandbox) Delete(r *Reactor) {
	r.MarkDeleted()
}
