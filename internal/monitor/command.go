package monitor

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// Command is a child process started in its own process group. The child is
// reaped by a background waiter so that Exited can be polled without blocking.
type Command struct {
	Args   []string
	Dir    string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	cmd       *exec.Cmd
	started   bool
	startedAt time.Time
	done      chan struct{}
	waitErr   error
}

func (c *Command) Start() error {
	if c.started {
		panic("process should not be started twice")
	}
	c.started = true

	if len(c.Args) == 0 {
		return errors.New("empty command line")
	}

	c.cmd = exec.Command(c.Args[0], c.Args[1:]...)
	c.cmd.Dir = c.Dir
	c.cmd.Stdin = c.Stdin
	c.cmd.Stdout = c.Stdout
	c.cmd.Stderr = c.Stderr
	c.cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	if err := c.cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", c.Args[0], err)
	}
	c.startedAt = time.Now()

	c.done = make(chan struct{})
	go func() {
		c.waitErr = c.cmd.Wait()
		close(c.done)
	}()
	return nil
}

func (c *Command) Pid() int {
	if !c.started || c.cmd.Process == nil {
		panic("process should be started before retrieving pid")
	}
	return c.cmd.Process.Pid
}

func (c *Command) StartedAt() time.Time {
	return c.startedAt
}

func (c *Command) Exited() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// Kill sends SIGKILL to the whole process group of the child.
func (c *Command) Kill() error {
	pid := c.Pid()
	err := unix.Kill(-pid, unix.SIGKILL)
	if err == nil || errors.Is(err, unix.ESRCH) {
		return nil
	}
	if perr := c.cmd.Process.Kill(); perr != nil && !c.Exited() {
		return fmt.Errorf("failed to kill process %d: %w", pid, errors.Join(err, perr))
	}
	return nil
}

// Wait blocks until the child is reaped and returns its exit code. A child
// terminated by a signal reports -1.
func (c *Command) Wait() (int, error) {
	if !c.started {
		panic("process should be started before waiting")
	}
	<-c.done

	if c.waitErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(c.waitErr, &exitErr) {
			return -1, c.waitErr
		}
	}
	return c.cmd.ProcessState.ExitCode(), nil
}

// CPUTime is the user and system time of a reaped child.
func (c *Command) CPUTime() time.Duration {
	if !c.Exited() || c.cmd.ProcessState == nil {
		return 0
	}
	return c.cmd.ProcessState.UserTime() + c.cmd.ProcessState.SystemTime()
}
