package reactor

import (
	"fmt"
	"time"

	"github.com/arborlang/reactorcore/alarm"
	"github.com/arborlang/reactorcore/structures"
	"github.com/arborlang/reactorcore/timeval"
	"github.com/sirupsen/logrus"
)

// Config holds the options App recognizes at construction, matching the
// table in spec.md §6.
type Config struct {
	// ExecutionTimeout, if set, schedules a shutdown at start+timeout.
	ExecutionTimeout *timeval.TimeValue
	// KeepAlive, if true, makes empty queues snooze rather than shut down.
	KeepAlive bool
	// Fast, if true, skips waiting for physical time to catch up.
	Fast bool
	// Success is invoked on clean termination.
	Success func()
	// Failure is invoked on erroneous termination.
	Failure func()
	// Logger receives deadline-miss warnings and the messages reactions
	// pass to Sandbox.ReportError. A nil Logger disables logging.
	Logger *logrus.Logger
}

// App is the top-level reactor: it is its own container, and houses the
// event queue, reaction queue, and main loop (spec.md §4.8).
type App struct {
	*Reactor

	currentTag       timeval.Tag
	startOfExecution timeval.TimeValue
	endOfExecution   *timeval.Tag
	fast             bool
	keepAlive        bool
	done             bool
	errored          bool
	errorMsg         string

	executionTimeout *timeval.TimeValue
	reactions        *structures.PrioritySet[*Reaction]
	events           *structures.PrioritySet[*taggedEvent]
	alarmTimer       *alarm.Alarm
	wake             chan struct{}
	onSuccess        func()
	onFailure        func()

	Logger *logrus.Logger
	snooze *Action[struct{}]
}

// NewApp builds an App ready for Start, backed by a fresh Alarm.
func NewApp(cfg Config) *App {
	app := &App{
		fast:             cfg.Fast,
		keepAlive:        cfg.KeepAlive,
		executionTimeout: cfg.ExecutionTimeout,
		reactions:        structures.NewPrioritySet[*Reaction](),
		events:           structures.NewPrioritySet[*taggedEvent](),
		alarmTimer:       alarm.New(),
		wake:             make(chan struct{}, 1),
		onSuccess:        cfg.Success,
		onFailure:        cfg.Failure,
		Logger:           cfg.Logger,
	}
	app.Reactor = NewReactor(nil, app)
	app.Reactor.app = app
	app.snooze = NewAction[struct{}](app.Reactor, LogicalOrigin)
	return app
}

func (a *App) currentPhysicalTime() timeval.TimeValue {
	return timeval.FromNanos(uint64(time.Now().UnixNano()))
}

// Run drives the engine to completion: Start, then repeatedly wait for the
// alarm (or other physical stimuli) to signal and re-enter next, until the
// run finishes or errors.
func (a *App) Run() error {
	if err := a.start(); err != nil {
		// finish already recorded failure and invoked the callback once,
		// for errors surfaced after the run reached its end-of-execution
		// tag (e.g. RequestErrorStop); only genuinely unhandled errors
		// (a startup-time cycle, for instance) still need fail's bookkeeping.
		if a.done {
			return err
		}
		return a.fail(err)
	}
	for !a.done {
		<-a.wake
		if err := a.next(); err != nil {
			if a.done {
				return err
			}
			return a.fail(err)
		}
	}
	if a.errored {
		return fmt.Errorf("%s", a.errorMsg)
	}
	return nil
}

func (a *App) fail(err error) error {
	a.errored = true
	a.errorMsg = err.Error()
	a.done = true
	if a.onFailure != nil {
		a.onFailure()
	}
	return err
}

// start implements App.start() from spec.md §4.8.
func (a *App) start() error {
	if err := a.analyzeDependencies(); err != nil {
		return err
	}

	a.startOfExecution = a.currentPhysicalTime()
	a.currentTag = timeval.NewTag(a.startOfExecution)

	for _, r := range a.allReactors() {
		r.active = true
		startTag := a.currentTag
		a.events.Push(&taggedEvent{
			trigger: r.Startup,
			tag:     startTag,
			apply:   func() { r.Startup.update(startTag, struct{}{}) },
		})
		for _, t := range r.timers {
			a.events.Push(t.initialEvent(a.startOfExecution))
		}
	}

	if a.executionTimeout != nil {
		endTag := timeval.NewTag(a.startOfExecution.Add(*a.executionTimeout))
		a.endOfExecution = &endTag
		a.events.Push(&taggedEvent{
			trigger: a.Shutdown,
			tag:     endTag,
			apply:   func() { a.Shutdown.update(endTag, struct{}{}) },
		})
	}

	if err := a.react(); err != nil {
		return err
	}
	return a.next()
}

// next implements App.next() from spec.md §4.8. Work that handleEmptyQueue
// schedules for the current instant (a stop request, a snoozed keep-alive
// action) is picked up by looping back to the top rather than returning, so
// it runs without waiting on a wake signal that would never arrive.
func (a *App) next() error {
	for {
		head, ok := a.events.Peek()
		if !ok {
			if err := a.handleEmptyQueue(); err != nil {
				return err
			}
			if a.done {
				return nil
			}
			continue
		}

		if !a.fast && head.tag.Time.After(a.currentPhysicalTime()) {
			a.armAlarm(head.tag.Time)
			return nil
		}

		a.currentTag = head.tag
		a.drainCurrentTag()

		if err := a.react(); err != nil {
			return err
		}
		a.removeDeletedReactors()
		if a.done {
			return nil
		}
		if a.endOfExecution != nil && !a.currentTag.Before(*a.endOfExecution) {
			return a.finish()
		}

		nextHead, ok := a.events.Peek()
		if ok && nextHead.tag.Time.Equal(a.currentTag.Time) && nextHead.tag.Microstep > a.currentTag.Microstep {
			a.currentTag = a.currentTag.MicroStepLater()
		}
	}
}

// drainCurrentTag pops and applies every event sharing currentTag,
// rescheduling periodic timers as they fire.
func (a *App) drainCurrentTag() {
	for {
		ev, ok := a.events.Peek()
		if !ok || !ev.tag.Equal(a.currentTag) {
			return
		}
		a.events.Pop()
		if t, isTimer := ev.trigger.(*Timer); isTimer && t.Periodic() {
			a.events.Push(t.nextEvent(ev.tag))
		}
		ev.apply()
	}
}

func (a *App) handleEmptyQueue() error {
	if a.endOfExecution != nil && !a.currentTag.Before(*a.endOfExecution) {
		return a.finish()
	}
	if a.keepAlive {
		a.armSnooze()
		return nil
	}
	a.RequestStop()
	return nil
}

func (a *App) armAlarm(due timeval.TimeValue) {
	delay, err := due.Subtract(a.currentPhysicalTime())
	if err != nil {
		delay = timeval.NEVER
	}
	d := time.Duration(delay.ToNanos())
	a.alarmTimer.Set(d, func(time.Duration) {
		select {
		case a.wake <- struct{}{}:
		default:
		}
	})
}

// armSnooze schedules the keep-alive action for one second out; the next
// loop iteration's ordinary event-queue peek arms the real alarm for it.
func (a *App) armSnooze() {
	if s, err := a.snooze.Schedulable(a.Reactor); err == nil {
		_ = s.Schedule(timeval.TimeValue{Seconds: 1, Nanos: 0}, struct{}{})
	}
}

// react drains the reaction queue in priority order (spec.md §4.8 step 5).
// A panicking reaction body is the idiomatic Go stand-in for the source's
// uncaught exception: it propagates up and terminates the run with
// failure.
func (a *App) react() error {
	for {
		rxn, ok := a.reactions.Pop()
		if !ok {
			return nil
		}
		if !rxn.active {
			continue
		}
		if err := a.dispatch(rxn); err != nil {
			a.errored = true
			a.errorMsg = err.Error()
			a.cancelNext()
			a.done = true
			if a.onFailure != nil {
				a.onFailure()
			}
			return err
		}
	}
}

func (a *App) dispatch(rxn *Reaction) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("reaction %s: %v", rxn.FullyQualifiedName(), p)
		}
	}()

	if rxn.deadline != nil {
		limit := a.currentTag.Time.Add(*rxn.deadline)
		if a.currentPhysicalTime().After(limit) {
			if rxn.late != nil {
				rxn.late(newSandbox(a, rxn))
			} else if a.Logger != nil {
				a.Logger.Warnf("deadline missed for reaction %s", rxn.FullyQualifiedName())
			}
			return nil
		}
	}

	if rxn.IsMutation() {
		rxn.mutate(newMutationSandbox(a, rxn))
	} else if rxn.react != nil {
		rxn.react(newSandbox(a, rxn))
	}
	return nil
}

func (a *App) removeDeletedReactors() {
	for _, r := range a.allReactors() {
		if r == a.Reactor {
			continue
		}
		if r.markedDeleted {
			r.removeFromParent()
		}
	}
}

func (r *Reactor) removeFromParent() {
	parent := r.Container()
	if parent == nil {
		return
	}
	kept := parent.children[:0]
	for _, c := range parent.children {
		if c != r {
			kept = append(kept, c)
		}
	}
	parent.children = kept
}

// RequestStop implements spec.md §5 requestStop: schedules a clean
// shutdown one microstep from now.
func (a *App) RequestStop() {
	end := a.currentTag.MicroStepLater()
	if a.endOfExecution != nil && !end.Before(*a.endOfExecution) {
		return
	}
	a.endOfExecution = &end
	a.events.Push(&taggedEvent{
		trigger: a.Shutdown,
		tag:     end,
		apply:   func() { a.Shutdown.update(end, struct{}{}) },
	})
}

// RequestErrorStop implements spec.md §5 requestErrorStop: records msg and
// additionally flips the post-run errored flag, then behaves like
// RequestStop.
func (a *App) RequestErrorStop(msg string) {
	a.errored = true
	a.errorMsg = msg
	a.RequestStop()
}

// finish marks the run complete and invokes the success/failure callback.
func (a *App) finish() error {
	a.done = true
	a.active = false
	if a.errored {
		if a.onFailure != nil {
			a.onFailure()
		}
		return fmt.Errorf("%s", a.errorMsg)
	}
	if a.onSuccess != nil {
		a.onSuccess()
	}
	return nil
}

// cancelNext implements spec.md §4.8 cancelNext: unset the alarm and empty
// the event queue.
func (a *App) cancelNext() {
	a.alarmTimer.Unset()
	a.events = structures.NewPrioritySet[*taggedEvent]()
}
