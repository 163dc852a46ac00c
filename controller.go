package chipscript

// State is the execution state of the Controller.
type State int

const (
	// StateIdle is the initial state and the terminal state of a clean run.
	StateIdle State = iota
	// StateRunning is only visible while a trigger is being handled.
	StateRunning
	// StateError is the terminal state of a failed run. It is cleared by
	// the next trigger.
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateError:
		return "error"
	}
	return "unknown"
}

// Snapshot is the read-only view of the current run state handed to
// presentation collaborators. All slices are copies, a consumer can hold on
// to them across runs.
type Snapshot struct {
	State           State
	Outputs         []string
	Variables       []Variable
	LastOutputValue int16
	Error           string
}

// Controller ties the Loader and the Interpreter to an external trigger
// source. It owns the per-run containers exclusively and resets them at the
// start of every trigger.
//
// The controller performs no locking of its own: like the rest of the core
// it assumes a single logical thread of control, driven by an external
// scheduler delivering one callback at a time.
type Controller struct {
	loader *Loader

	state      State
	vars       *VariableTable
	log        *OutputLog
	rec        *ErrorRecord
	lastOutput int16
}

// NewController creates a Controller in StateIdle.
func NewController(loader *Loader) *Controller {
	return &Controller{
		loader: loader,
		state:  StateIdle,
		vars:   NewVariableTable(),
		log:    NewOutputLog(),
		rec:    &ErrorRecord{},
	}
}

// Trigger handles one external run request: it resets all per-run state,
// loads the program and interprets it to completion or first error, all
// synchronously within this call. A trigger received while a run is in
// flight has no effect and returns false.
func (c *Controller) Trigger() bool {
	if c.state == StateRunning {
		return false
	}

	c.vars.Reset()
	c.log.Reset()
	c.rec.Reset()
	c.lastOutput = 0
	c.state = StateRunning

	program := c.loader.Load()

	interp := NewInterpreter(c.vars, c.log, c.rec)
	interp.Run(program)
	c.lastOutput = interp.LastOutput()

	if c.rec.IsSet() {
		c.state = StateError
	} else {
		c.state = StateIdle
	}

	return true
}

// State returns the current execution state.
func (c *Controller) State() State {
	return c.state
}

// Snapshot returns a copy of the current run state. It may be taken at any
// time, also mid-run from a host callback, and then reflects whatever has
// been committed so far.
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		State:           c.state,
		Outputs:         c.log.Entries(),
		Variables:       c.vars.Variables(),
		LastOutputValue: c.lastOutput,
		Error:           c.rec.Message(),
	}
}
