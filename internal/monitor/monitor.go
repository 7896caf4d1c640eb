// Package monitor supervises a running submission and reports the moment it
// crosses its time or memory limit.
package monitor

import (
	"context"
	"log/slog"
	"time"

	"github.com/programme-lv/minijudge/api"
)

const (
	DefaultPollInterval  = 500 * time.Microsecond
	DefaultIdleThreshold = 50.0
)

// Process is a started child process that can be polled and killed.
type Process interface {
	Pid() int
	StartedAt() time.Time
	Exited() bool
	Kill() error
}

// Usage is one reading of a process' resource counters.
type Usage struct {
	MemoryKiB int64
	CPUTime   time.Duration
}

// Sampler reads resource counters of a live process. An error means the
// counters are unavailable, which in practice means the process is gone.
type Sampler interface {
	Sample(pid int) (Usage, error)
}

type Kind int

const (
	// Exited means the process finished on its own and still has to be reaped.
	Exited Kind = iota
	// Breach means a limit was crossed and the process has been killed.
	Breach
)

type Result struct {
	Kind    Kind
	Verdict api.Verdict // TL, ML or IL when Kind is Breach

	ElapsedMs  int64
	MemoryKiB  int64
	CPUPercent float64
}

type Monitor struct {
	Limits        api.Limits
	PollInterval  time.Duration
	IdleThreshold float64

	Sampler Sampler
	Now     func() time.Time
	Logger  *slog.Logger
}

func New(limits api.Limits, sampler Sampler, logger *slog.Logger) *Monitor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Monitor{
		Limits:        limits,
		PollInterval:  DefaultPollInterval,
		IdleThreshold: DefaultIdleThreshold,
		Sampler:       sampler,
		Now:           time.Now,
		Logger:        logger,
	}
}

// Watch polls p until it exits or breaches a limit. The time limit is checked
// before the memory limit on every tick. On breach p is killed before Watch
// returns. A cancelled ctx also kills p and returns ctx's error.
func (m *Monitor) Watch(ctx context.Context, p Process) (Result, error) {
	var res Result
	for {
		if p.Exited() {
			res.Kind = Exited
			return res, nil
		}

		elapsed := m.now().Sub(p.StartedAt()).Milliseconds()
		usage, err := m.Sampler.Sample(p.Pid())
		if err != nil {
			// the process most likely finished between the two checks
			time.Sleep(m.PollInterval)
			if p.Exited() {
				m.Logger.Debug("resource sample unavailable", slog.Int("pid", p.Pid()), slog.Any("error", err))
			} else {
				m.Logger.Warn("cannot sample a live process, limits are no longer enforced",
					slog.Int("pid", p.Pid()), slog.Any("error", err))
			}
			res.Kind = Exited
			res.ElapsedMs = elapsed
			return res, nil
		}
		res.ElapsedMs = elapsed
		res.MemoryKiB = usage.MemoryKiB
		res.CPUPercent = cpuPercent(usage.CPUTime, elapsed)

		if elapsed >= m.Limits.TimeMs {
			res.Kind = Breach
			res.Verdict = api.TL
			if res.CPUPercent < m.IdleThreshold {
				res.Verdict = api.IL
			}
			return res, m.kill(p, res)
		}
		if usage.MemoryKiB >= m.Limits.MemoryKiB {
			res.Kind = Breach
			res.Verdict = api.ML
			return res, m.kill(p, res)
		}

		if err := ctx.Err(); err != nil {
			if kerr := p.Kill(); kerr != nil {
				m.Logger.Warn("failed to kill process", slog.Int("pid", p.Pid()), slog.Any("error", kerr))
			}
			return res, err
		}
		time.Sleep(m.PollInterval)
	}
}

func (m *Monitor) kill(p Process, res Result) error {
	m.Logger.Debug("limit breached",
		slog.Int("pid", p.Pid()),
		slog.String("verdict", string(res.Verdict)),
		slog.Int64("elapsed_ms", res.ElapsedMs),
		slog.Int64("memory_kib", res.MemoryKiB),
		slog.Float64("cpu_percent", res.CPUPercent))
	return p.Kill()
}

func (m *Monitor) now() time.Time {
	if m.Now == nil {
		return time.Now()
	}
	return m.Now()
}

func cpuPercent(cpu time.Duration, elapsedMs int64) float64 {
	if elapsedMs <= 0 {
		return 0
	}
	return float64(cpu.Milliseconds()) / float64(elapsedMs) * 100
}
