package api

import "encoding/json"

// NoFailingTest is the Outcome.Test value of a session in which every test passed.
const NoFailingTest = -1

// TestOutcome is the result of one executed test.
type TestOutcome struct {
	Code      Verdict `json:"code"`
	TimeMs    int64   `json:"time"`
	MemoryKiB int64   `json:"memory"`
}

// Outcome is the session level verdict. Test is the 1-based index of the
// first failed test or NoFailingTest.
type Outcome struct {
	Code Verdict `json:"code"`
	Test int     `json:"test"`
}

// Report is the sole artifact of a judging session.
type Report struct {
	TestData []TestOutcome `json:"test_data,omitempty"`
	Outcome  *Outcome      `json:"outcome,omitempty"`
}

// MarshalJSON omits test_data only when no test was ever started, as on a
// compile error. A session that ran over an empty corpus still carries
// "test_data": [].
func (r Report) MarshalJSON() ([]byte, error) {
	var wire struct {
		TestData *[]TestOutcome `json:"test_data,omitempty"`
		Outcome  *Outcome       `json:"outcome,omitempty"`
	}
	if r.TestData != nil {
		wire.TestData = &r.TestData
	}
	wire.Outcome = r.Outcome
	return json.Marshal(wire)
}

// Passed tells whether the session ended without a failing test. In IOI mode
// there is no outcome, so every recorded test has to be OK.
func (r Report) Passed() bool {
	if r.Outcome != nil {
		return r.Outcome.Code == OK
	}
	for _, t := range r.TestData {
		if t.Code != OK {
			return false
		}
	}
	return true
}
