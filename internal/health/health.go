// Package health checks that the host can judge submissions: the process
// sampler must work and every configured compiler must be installed.
package health

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/fatih/color"
	"github.com/google/shlex"
	"github.com/programme-lv/minijudge/internal/compiler"
	"github.com/programme-lv/minijudge/internal/monitor"
)

type Status int

const (
	Okay Status = iota
	Warning
	Failure
)

func (s Status) String() string {
	switch s {
	case Okay:
		return "OKAY"
	case Warning:
		return "WARN"
	default:
		return "ERROR"
	}
}

// Row is one line of the health report.
type Row struct {
	Unit    string
	Status  Status
	Message string
}

// LookPath resolves a program name, exec.LookPath in production.
type LookPath func(file string) (string, error)

// CheckSampler reads the counters of the current process through procfs.
func CheckSampler() Row {
	row := Row{Unit: "procfs"}
	sampler, err := monitor.NewProcSampler()
	if err != nil {
		row.Status = Failure
		row.Message = err.Error()
		return row
	}
	usage, err := sampler.Sample(os.Getpid())
	if err != nil {
		row.Status = Failure
		row.Message = fmt.Sprintf("failed to sample own process: %v", err)
		return row
	}
	row.Message = fmt.Sprintf("resident %d KB, cpu %s", usage.MemoryKiB, usage.CPUTime)
	return row
}

// CheckRules verifies that the program each rule starts can be found.
func CheckRules(rules compiler.Rules, lookPath LookPath) []Row {
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	if len(rules) == 0 {
		return []Row{{Unit: "compilers", Status: Warning, Message: "no compilers configured"}}
	}

	res := make([]Row, 0, len(rules))
	for _, rule := range rules {
		row := Row{Unit: rule.Name}
		template := rule.Options
		if template == "" {
			template = rule.Runtime
		}
		words, err := shlex.Split(template)
		switch {
		case err != nil:
			row.Status = Failure
			row.Message = fmt.Sprintf("failed to split %q: %v", template, err)
		case len(words) == 0:
			row.Status = Failure
			row.Message = "empty command"
		case strings.HasPrefix(words[0], "{"):
			row.Message = "runs the submission directly"
		default:
			path, err := lookPath(words[0])
			if err != nil {
				row.Status = Failure
				row.Message = err.Error()
			} else {
				row.Message = path
			}
		}
		res = append(res, row)
	}
	return res
}

// Worst returns the most severe status among rows.
func Worst(rows []Row) Status {
	worst := Okay
	for _, r := range rows {
		if r.Status > worst {
			worst = r.Status
		}
	}
	return worst
}

// Print writes one coloured line per row.
func Print(w io.Writer, rows []Row) {
	width := len("Unit")
	for _, r := range rows {
		width = max(width, len(r.Unit))
	}
	for _, r := range rows {
		c := color.New(color.FgGreen)
		switch r.Status {
		case Warning:
			c = color.New(color.FgYellow)
		case Failure:
			c = color.New(color.FgRed)
		}
		fmt.Fprintf(w, "%-*s  ", width, r.Unit)
		c.Fprintf(w, "%-5s", r.Status)
		fmt.Fprintf(w, "  %s\n", r.Message)
	}
}
