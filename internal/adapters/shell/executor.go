// Package shell spawns task processes.
package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/creack/pty"
	"go.trai.ch/crossbow/internal/core/domain"
	"go.trai.ch/crossbow/internal/core/ports"
	"go.trai.ch/zerr"
)

// TerminateGrace is how long a process may take to exit after SIGTERM before it is killed.
const TerminateGrace = 5 * time.Second

var _ ports.Executor = (*Executor)(nil)

// Executor implements ports.Executor using os/exec, optionally attached to a PTY.
type Executor struct {
	logger ports.Logger
	usePTY bool

	mu   sync.Mutex
	live map[*process]struct{}
}

// NewExecutor creates a new Executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{
		logger: logger,
		live:   make(map[*process]struct{}),
	}
}

// WithPTY makes processes run attached to a pseudo terminal, which keeps
// colored output from tools that check isatty. Stdout and stderr are merged.
func (e *Executor) WithPTY(enable bool) *Executor {
	e.usePTY = enable
	return e
}

// Start launches cmd. The process is tracked until it exits.
func (e *Executor) Start(ctx context.Context, cmd ports.Command, stdout, stderr io.Writer) (ports.Process, error) {
	if cmd.Name == "" {
		return nil, zerr.Wrap(domain.ErrCommandStartFailed, "empty command")
	}
	env := resolveEnvironment(os.Environ(), cmd.Env)

	executable := cmd.Name
	if !strings.ContainsRune(cmd.Name, os.PathSeparator) {
		if lp, err := lookPath(cmd.Name, env); err == nil {
			executable = lp
		}
	}

	c := exec.CommandContext(ctx, executable, cmd.Args...) //nolint:gosec // user provided command
	c.Args[0] = cmd.Name
	c.Dir = cmd.Dir
	c.Env = env
	c.Cancel = func() error {
		return c.Process.Signal(syscall.SIGTERM)
	}
	c.WaitDelay = TerminateGrace

	e.logger.Debug("exec " + strings.Join(append([]string{cmd.Name}, cmd.Args...), " "))

	p := &process{cmd: c, done: make(chan struct{})}

	if e.usePTY {
		ptmx, err := pty.Start(c)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrCommandStartFailed.Error()), "command", cmd.Name)
		}
		out := stdout
		if out == nil {
			out = io.Discard
		}
		ioDone := make(chan struct{})
		go func() {
			defer close(ioDone)
			_, _ = io.Copy(out, ptmx)
		}()
		p.ptmx = ptmx
		p.ioDone = ioDone
	} else {
		// Nil writers leave the descriptors on the null device so no copy
		// goroutine outlives the process.
		if stdout != nil {
			c.Stdout = stdout
		}
		if stderr != nil {
			c.Stderr = stderr
		}
		if err := c.Start(); err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrCommandStartFailed.Error()), "command", cmd.Name)
		}
	}

	e.track(p)
	go p.wait(func() { e.untrack(p) })

	return p, nil
}

// Execute runs cmd and waits for it to exit.
func (e *Executor) Execute(ctx context.Context, cmd ports.Command, stdout, stderr io.Writer) error {
	proc, err := e.Start(ctx, cmd, stdout, stderr)
	if err != nil {
		return err
	}
	return proc.Wait()
}

// TerminateAll sends SIGTERM to every live process, kills the ones still
// running after TerminateGrace, and waits for all of them to exit.
func (e *Executor) TerminateAll() {
	e.mu.Lock()
	procs := make([]*process, 0, len(e.live))
	for p := range e.live {
		procs = append(procs, p)
	}
	e.mu.Unlock()

	var wg sync.WaitGroup
	for _, p := range procs {
		wg.Go(func() {
			p.terminate(TerminateGrace)
		})
	}
	wg.Wait()
}

// Live returns the number of tracked processes.
func (e *Executor) Live() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.live)
}

func (e *Executor) track(p *process) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.live[p] = struct{}{}
}

func (e *Executor) untrack(p *process) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.live, p)
}

type process struct {
	cmd    *exec.Cmd
	ptmx   *os.File
	ioDone chan struct{}

	done chan struct{}
	err  error
}

func (p *process) Pid() int {
	if p.cmd.Process == nil {
		return 0
	}
	return p.cmd.Process.Pid
}

// Wait blocks until the process has exited and its output has been copied.
func (p *process) Wait() error {
	<-p.done
	return p.err
}

func (p *process) wait(onExit func()) {
	err := p.cmd.Wait()
	if p.ptmx != nil {
		// The PTY copy loop ends with EIO once the child side is gone.
		<-p.ioDone
		_ = p.ptmx.Close()
	}
	p.err = exitError(err)
	onExit()
	close(p.done)
}

func (p *process) terminate(grace time.Duration) {
	select {
	case <-p.done:
		return
	default:
	}

	_ = p.cmd.Process.Signal(syscall.SIGTERM)

	select {
	case <-p.done:
	case <-time.After(grace):
		_ = p.cmd.Process.Kill()
		<-p.done
	}
}

// exitError converts a Wait error, attaching the exit status when the process
// exited on its own with a non-zero code.
func exitError(err error) error {
	if err == nil {
		return nil
	}

	var ee *exec.ExitError
	if errors.As(err, &ee) && ee.ExitCode() > 0 {
		code := ee.ExitCode()
		return &domain.ExitError{
			Code: code,
			Err:  zerr.With(zerr.Wrap(err, domain.ErrCommandFailed.Error()), "exit_code", code),
		}
	}

	return zerr.Wrap(err, domain.ErrCommandFailed.Error())
}
