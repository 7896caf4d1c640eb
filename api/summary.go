package api

// Status is how a session ended.
type Status string

const (
	Finished      Status = "finished"
	CompileFailed Status = "compile_error"
	InternalFail  Status = "internal_error"
)

// CompileResult describes the compile step of a session.
type CompileResult struct {
	Success    bool    `json:"success"`
	ExitCode   *int64  `json:"exit_code,omitempty"`
	WallMillis *int64  `json:"wall_ms,omitempty"`
	Error      *string `json:"error,omitempty"`
}

// TestResult is one test as seen in the event stream. Ignored tests have no
// outcome.
type TestResult struct {
	TestId  int          `json:"test_id"`
	Ignored bool         `json:"ignored,omitempty"`
	Outcome *TestOutcome `json:"outcome,omitempty"`
}

// Summary is a full account of a session, richer than Report: it also
// carries the compile step, skipped tests, timing and failure messages.
type Summary struct {
	SessionUuid  string        `json:"session_uuid"`
	Status       Status        `json:"status"`
	Mode         string        `json:"mode"`
	Limits       Limits        `json:"limits"`
	Compilation  CompileResult `json:"compilation"`
	TestResults  []TestResult  `json:"test_results"`
	Outcome      *Outcome      `json:"outcome,omitempty"`
	ErrorMessage *string       `json:"error_message,omitempty"`
	StartTime    string        `json:"start_time"`
	FinishTime   string        `json:"finish_time"`
	TotalTimeMs  int64         `json:"total_time_ms"`
	SystemInfo   *string       `json:"system_info,omitempty"`
}
