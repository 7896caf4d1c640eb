package api

import "time"

// MsgType is a message type for streaming responses
type MsgType string

// Streaming message type constants
const (
	StartJobMsg      MsgType = "job_start"
	StartCompileMsg  MsgType = "compile_start"
	FinishCompileMsg MsgType = "compile_finish"
	ReachTestMsg     MsgType = "test_reach"
	IgnoreTestMsg    MsgType = "test_ignore"
	FinishTestMsg    MsgType = "test_finish"
	FinishJobMsg     MsgType = "job_finish"
)

// Runtime data size constraints for streaming
const (
	MaxRuntimeDataHeight = 40
	MaxRuntimeDataWidth  = 80
)

// Header is the common header for all streaming response messages
type Header struct {
	SessionUuid string  `json:"session_uuid"`
	MsgType     MsgType `json:"msg_type"`
}

// StartJob message sent when a session begins
type StartJob struct {
	Header
	SystemInfo  string `json:"system_info"`
	Mode        string `json:"mode"`
	Limits      Limits `json:"limits"`
	StartedTime string `json:"started_time"`
}

// StartCompile message sent when compilation begins
type StartCompile struct {
	Header
}

// FinishCompile message sent when compilation completes
type FinishCompile struct {
	Header
	RuntimeData *RuntimeData `json:"runtime_data"`
}

// ReachTest message sent when a test is reached
type ReachTest struct {
	Header
	TestId int     `json:"test_id"`
	Input  *string `json:"input"`
	Answer *string `json:"answer"`
}

// IgnoreTest message sent for tests skipped after an ACM halt
type IgnoreTest struct {
	Header
	TestId int `json:"test_id"`
}

// FinishTest message sent when a test completes
type FinishTest struct {
	Header
	TestId  int         `json:"test_id"`
	Outcome TestOutcome `json:"outcome"`
}

// FinishJob message sent when the session completes
type FinishJob struct {
	Header
	Outcome       *Outcome `json:"outcome"`
	ErrorMessage  *string  `json:"error_message"`
	CompileError  bool     `json:"compile_error"`
	InternalError bool     `json:"internal_error"`
}

func NewHeader(sessionUuid string, msgType MsgType) Header {
	return Header{
		SessionUuid: sessionUuid,
		MsgType:     msgType,
	}
}

func NewStartJob(sessionUuid, systemInfo string, mode Mode, limits Limits) StartJob {
	return StartJob{
		Header:      NewHeader(sessionUuid, StartJobMsg),
		SystemInfo:  systemInfo,
		Mode:        mode.String(),
		Limits:      limits,
		StartedTime: time.Now().Format(time.RFC3339),
	}
}

func NewStartCompile(sessionUuid string) StartCompile {
	return StartCompile{
		Header: NewHeader(sessionUuid, StartCompileMsg),
	}
}

func NewFinishCompile(sessionUuid string, runtimeData *RuntimeData) FinishCompile {
	return FinishCompile{
		Header:      NewHeader(sessionUuid, FinishCompileMsg),
		RuntimeData: runtimeData,
	}
}

func NewReachTest(sessionUuid string, testId int, input, answer *string) ReachTest {
	return ReachTest{
		Header: NewHeader(sessionUuid, ReachTestMsg),
		TestId: testId,
		Input:  input,
		Answer: answer,
	}
}

func NewIgnoreTest(sessionUuid string, testId int) IgnoreTest {
	return IgnoreTest{
		Header: NewHeader(sessionUuid, IgnoreTestMsg),
		TestId: testId,
	}
}

func NewFinishTest(sessionUuid string, testId int, outcome TestOutcome) FinishTest {
	return FinishTest{
		Header:  NewHeader(sessionUuid, FinishTestMsg),
		TestId:  testId,
		Outcome: outcome,
	}
}

func NewFinishJob(sessionUuid string, outcome *Outcome, errorMessage *string, compileError, internalError bool) FinishJob {
	return FinishJob{
		Header:        NewHeader(sessionUuid, FinishJobMsg),
		Outcome:       outcome,
		ErrorMessage:  errorMessage,
		CompileError:  compileError,
		InternalError: internalError,
	}
}
