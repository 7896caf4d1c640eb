package respbuilder

import (
	"testing"
	"time"

	"github.com/programme-lv/minijudge/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func steppingClock(step time.Duration) func() time.Time {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	return func() time.Time {
		now = now.Add(step)
		return now
	}
}

func TestSummaryOfHaltedACMSession(t *testing.T) {
	b := New("s-1")
	b.now = steppingClock(250 * time.Millisecond)

	b.StartJob("linux x86_64", api.ACM, api.Limits{TimeMs: 1000, MemoryKiB: 65536})
	b.StartCompile()
	b.FinishCompile(&api.RuntimeData{ExitCode: 0, WallMillis: 120})
	b.ReachTest(1, nil, nil)
	b.FinishTest(1, api.TestOutcome{Code: api.OK, TimeMs: 3, MemoryKiB: 900})
	b.ReachTest(2, nil, nil)
	b.FinishTest(2, api.TestOutcome{Code: api.RE, TimeMs: 2, MemoryKiB: 800})
	b.IgnoreTest(3)
	b.FinishNoError(&api.Outcome{Code: api.RE, Test: 2})

	s := b.Summary()
	assert.Equal(t, "s-1", s.SessionUuid)
	assert.Equal(t, api.Finished, s.Status)
	assert.Equal(t, "acm", s.Mode)
	assert.True(t, s.Compilation.Success)
	require.Len(t, s.TestResults, 3)
	assert.Equal(t, api.RE, s.TestResults[1].Outcome.Code)
	assert.True(t, s.TestResults[2].Ignored)
	assert.Nil(t, s.TestResults[2].Outcome)
	assert.Equal(t, &api.Outcome{Code: api.RE, Test: 2}, s.Outcome)
	assert.Equal(t, int64(250), s.TotalTimeMs)
	require.NotNil(t, s.SystemInfo)
	assert.Nil(t, s.ErrorMessage)
}

func TestSummaryOfCompileError(t *testing.T) {
	b := New("s-2")

	b.StartJob("", api.IOI, api.Limits{TimeMs: 1, MemoryKiB: 1})
	b.FinishCompile(&api.RuntimeData{ExitCode: 1, Stderr: "error: expected ';'"})
	b.CompileError("error: expected ';'")

	s := b.Summary()
	assert.Equal(t, api.CompileFailed, s.Status)
	assert.False(t, s.Compilation.Success)
	require.NotNil(t, s.Compilation.ExitCode)
	assert.Equal(t, int64(1), *s.Compilation.ExitCode)
	assert.Equal(t, &api.Outcome{Code: api.CE, Test: 1}, s.Outcome)
	assert.Empty(t, s.TestResults)
	assert.Nil(t, s.SystemInfo)
}

func TestSummaryOfInternalError(t *testing.T) {
	b := New("s-3")
	b.FinishCompile(nil)
	b.InternalError("checker exited with unexpected code 3")

	s := b.Summary()
	assert.Equal(t, api.InternalFail, s.Status)
	assert.True(t, s.Compilation.Success)
	require.NotNil(t, s.ErrorMessage)
	assert.Contains(t, *s.ErrorMessage, "unexpected code 3")
}
