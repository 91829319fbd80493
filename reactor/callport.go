package reactor

// CalleePort is the synchronous remote-procedure target: at most one
// procedure (a Reaction whose sole trigger is the callee port itself) may
// be bound to it.
type CalleePort[TArgs, TRet any] struct {
	Trigger
	procedure  *Reaction
	lastCaller *CallerPort[TArgs, TRet]
	args       TArgs
	ret        TRet
}

// NewCalleePort declares a callee port owned by container.
func NewCalleePort[TArgs, TRet any](container *Reactor) *CalleePort[TArgs, TRet] {
	c := &CalleePort[TArgs, TRet]{}
	c.Trigger = newTrigger(container, c)
	return c
}

// BindProcedure binds r as the single procedure invoked by Set on any
// connected caller. A second bind attempt fails.
func (c *CalleePort[TArgs, TRet]) BindProcedure(r *Reaction) error {
	if c.procedure != nil {
		return ErrProcedureAlreadyBound
	}
	c.procedure = r
	return nil
}

func (c *CalleePort[TArgs, TRet]) app() *App {
	if c.Container() == nil {
		return nil
	}
	return c.Container().app
}

// Args returns the arguments most recently delivered by a caller, for use
// inside the bound procedure's body.
func (c *CalleePort[TArgs, TRet]) Args() TArgs {
	return c.args
}

// SetReturn records the value a caller's Set will read back, for use
// inside the bound procedure's body.
func (c *CalleePort[TArgs, TRet]) SetReturn(v TRet) {
	c.ret = v
}

// CallerPort supports synchronous remote-procedure invocation against a
// single bound CalleePort.
type CallerPort[TArgs, TRet any] struct {
	Trigger
	remote *CalleePort[TArgs, TRet]
}

// NewCallerPort declares a caller port owned by container.
func NewCallerPort[TArgs, TRet any](container *Reactor) *CallerPort[TArgs, TRet] {
	c := &CallerPort[TArgs, TRet]{}
	c.Trigger = newTrigger(container, c)
	return c
}

// Set invokes the remote callee's bound procedure directly: no queueing,
// no tag advance. It updates the callee's argument value, runs the
// procedure body, and returns the callee's return value.
func (c *CallerPort[TArgs, TRet]) Set(args TArgs) (TRet, error) {
	var zero TRet
	if c.remote == nil || c.remote.procedure == nil {
		return zero, ErrIllegalConnection
	}

	c.remote.args = args
	app := c.remote.app()
	sandbox := newSandbox(app, c.remote.procedure)
	c.remote.procedure.react(sandbox)
	return c.remote.ret, nil
}
