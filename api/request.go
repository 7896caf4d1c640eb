package api

import (
	"errors"
	"fmt"
	"strings"
)

const (
	DefaultMemoryLimitKiB = 131072
	DefaultTimeLimitMs    = 2000
)

var ErrNonPositiveLimits = errors.New("limits must be positive")

// Limits are fixed for the whole session.
type Limits struct {
	TimeMs    int64 `json:"time_ms" toml:"time_ms"`
	MemoryKiB int64 `json:"memory_kib" toml:"memory_kib"`
}

func (l Limits) Validate() error {
	if l.TimeMs <= 0 || l.MemoryKiB <= 0 {
		return fmt.Errorf("%w: time=%dms memory=%dKiB", ErrNonPositiveLimits, l.TimeMs, l.MemoryKiB)
	}
	return nil
}

// Mode selects the halting policy of a session.
type Mode int

const (
	// ACM stops at the first failed test and records a session outcome.
	ACM Mode = iota
	// IOI runs every test and never records a session outcome.
	IOI
)

func (m Mode) String() string {
	if m == IOI {
		return "ioi"
	}
	return "acm"
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "acm", "icpc", "":
		return ACM, nil
	case "ioi":
		return IOI, nil
	}
	return ACM, fmt.Errorf("unknown execution mode %q", s)
}
