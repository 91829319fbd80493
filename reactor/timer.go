package reactor

import "github.com/arborlang/reactorcore/timeval"

// Timer is a periodic self-scheduled trigger with an offset and a period.
// It carries no value: its presence alone is the signal.
type Timer struct {
	Trigger
	Offset timeval.TimeValue
	Period timeval.TimeValue
	tag    timeval.Tag
}

// NewTimer declares a timer owned by container and registers it so App.start
// schedules its initial event.
func NewTimer(container *Reactor, offset, period timeval.TimeValue) *Timer {
	t := &Timer{Offset: offset, Period: period}
	t.Trigger = newTrigger(container, t)
	if container != nil {
		container.registerTimer(t)
	}
	return t
}

func (t *Timer) app() *App {
	if t.Container() == nil {
		return nil
	}
	return t.Container().app
}

// IsPresent reports whether this timer fired at the current tag.
func (t *Timer) IsPresent() bool {
	app := t.app()
	return app != nil && t.tag.Equal(app.currentTag)
}

func (t *Timer) update(tag timeval.Tag) {
	t.tag = tag
	if app := t.app(); app != nil {
		t.stage(app.reactions)
	}
}

// Periodic reports whether this timer reschedules itself after firing.
func (t *Timer) Periodic() bool {
	return !t.Period.IsNever()
}

// initialEvent is the event due at startOfExecution + Offset, at microstep
// 0 if Offset is nonzero, else microstep 1 (spec.md §3: this distinguishes
// a zero-offset timer's first firing from the startup tag itself).
func (t *Timer) initialEvent(startOfExecution timeval.TimeValue) *taggedEvent {
	tag := timeval.NewTag(startOfExecution.Add(t.Offset))
	if t.Offset.IsNever() {
		tag = tag.MicroStepLater()
	}
	return &taggedEvent{trigger: t, tag: tag, apply: func() { t.update(tag) }}
}

// nextEvent is the following periodic occurrence, one Period after current.
func (t *Timer) nextEvent(current timeval.Tag) *taggedEvent {
	tag := timeval.NewTag(current.Time.Add(t.Period))
	return &taggedEvent{trigger: t, tag: tag, apply: func() { t.update(tag) }}
}
