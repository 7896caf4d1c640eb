package monitor

import (
	"fmt"
	"time"

	"github.com/prometheus/procfs"
)

// ProcSampler reads /proc/<pid>/stat.
type ProcSampler struct {
	fs procfs.FS
}

func NewProcSampler() (*ProcSampler, error) {
	fs, err := procfs.NewDefaultFS()
	if err != nil {
		return nil, fmt.Errorf("failed to open procfs: %w", err)
	}
	return &ProcSampler{fs: fs}, nil
}

func (s *ProcSampler) Sample(pid int) (Usage, error) {
	proc, err := s.fs.Proc(pid)
	if err != nil {
		return Usage{}, err
	}
	stat, err := proc.Stat()
	if err != nil {
		return Usage{}, err
	}
	return Usage{
		MemoryKiB: int64(stat.ResidentMemory() / 1024),
		CPUTime:   time.Duration(stat.CPUTime() * float64(time.Second)),
	}, nil
}
