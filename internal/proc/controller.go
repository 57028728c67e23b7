package proc

import (
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/go-ps"
)

// ErrToggleFailed indicates a managed process could not be stopped or
// launched. Toggle failures are non-fatal to a theme apply: the caller logs
// them and moves on to the next process.
var ErrToggleFailed = errors.New("process toggle failed")

// ManagedProcess describes one long-running consumer process. Liveness is
// checked by exact executable name match against the process table.
type ManagedProcess struct {
	Name    string   `mapstructure:"name"`
	Command string   `mapstructure:"command"`
	Args    []string `mapstructure:"args"`
}

// State is the observed liveness of a managed process.
type State int

const (
	// Stopped means no process with the managed name is in the process table.
	Stopped State = iota
	// Running means at least one matching process exists.
	Running
)

// String returns the state name.
func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "stopped"
}

// Lister enumerates the process table. It exists so tests can substitute a
// fake table for the real one provided by go-ps.
type Lister interface {
	Processes() ([]ps.Process, error)
}

// systemLister backs Lister with the live process table.
type systemLister struct{}

func (systemLister) Processes() ([]ps.Process, error) {
	return ps.Processes()
}

// Controller reports liveness and flips managed processes between the
// Stopped and Running states.
//
// Toggle is a state transition with no atomicity between the liveness check
// and the act: a process that starts or exits in that window can make the
// transition a no-op or a double-stop. This race is a known limitation of
// name-based process management and is accepted rather than locked around.
type Controller struct {
	lister Lister
	logger hclog.Logger

	// Signalling and launching are swappable so tests can observe a stop
	// without sending real signals.
	stop  func(pids []int) error
	start func(command string, args []string) error
}

// NewController creates a Controller backed by the live process table.
func NewController(logger hclog.Logger) *Controller {
	return NewControllerWithLister(systemLister{}, logger)
}

// NewControllerWithLister creates a Controller with a custom process lister.
func NewControllerWithLister(lister Lister, logger hclog.Logger) *Controller {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Controller{
		lister: lister,
		logger: logger.Named("proc"),
		stop:   terminate,
		start:  launchDetached,
	}
}

// Pids returns the PIDs of all processes whose executable name matches name
// exactly.
func (c *Controller) Pids(name string) ([]int, error) {
	processes, err := c.lister.Processes()
	if err != nil {
		return nil, fmt.Errorf("failed to get process list: %w", err)
	}

	var pids []int
	for _, p := range processes {
		if p.Executable() == name {
			pids = append(pids, p.Pid())
		}
	}

	return pids, nil
}

// CurrentState returns the observed state of the named process.
func (c *Controller) CurrentState(name string) (State, error) {
	pids, err := c.Pids(name)
	if err != nil {
		return Stopped, err
	}
	if len(pids) > 0 {
		return Running, nil
	}
	return Stopped, nil
}

// IsRunning reports whether at least one process with the given executable
// name is in the process table.
func (c *Controller) IsRunning(name string) (bool, error) {
	state, err := c.CurrentState(name)
	if err != nil {
		return false, err
	}
	return state == Running, nil
}

// WaitFor polls the process table until the named process reaches the wanted
// state or the timeout elapses. SIGTERM delivery is asynchronous, so callers
// sequencing a stop before a start need this to avoid acting on a process
// that is still shutting down.
func (c *Controller) WaitFor(name string, want State, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		state, err := c.CurrentState(name)
		if err != nil {
			return err
		}
		if state == want {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("timed out waiting for %s to become %s", name, want)
		}
		time.Sleep(50 * time.Millisecond)
	}
}

// Toggle flips the managed process to the opposite state: if running, all
// matching instances are terminated and the process is not relaunched; if
// stopped, the launch command is started as a detached background process.
// It returns the state the process was transitioned into.
//
// This is intentionally a flip, not a restart. Callers that need a fresh
// instance regardless of prior state sequence two calls (stop, then start).
func (c *Controller) Toggle(mp ManagedProcess) (State, error) {
	state, err := c.CurrentState(mp.Name)
	if err != nil {
		return Stopped, fmt.Errorf("%w: %s: %v", ErrToggleFailed, mp.Name, err)
	}

	switch state {
	case Running:
		pids, err := c.Pids(mp.Name)
		if err != nil {
			return Running, fmt.Errorf("%w: %s: %v", ErrToggleFailed, mp.Name, err)
		}
		c.logger.Debug("stopping process", "name", mp.Name, "pids", pids)
		if err := c.stop(pids); err != nil {
			return Running, fmt.Errorf("%w: %s: %v", ErrToggleFailed, mp.Name, err)
		}
		return Stopped, nil

	default:
		c.logger.Debug("starting process", "name", mp.Name, "command", mp.Command, "args", mp.Args)
		if err := c.start(mp.Command, mp.Args); err != nil {
			return Stopped, fmt.Errorf("%w: %s: %v", ErrToggleFailed, mp.Name, err)
		}
		return Running, nil
	}
}
