package api_test

import (
	"encoding/json"
	"testing"

	"github.com/programme-lv/minijudge/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportRoundTripKeepsOrderAndOutcome(t *testing.T) {
	report := api.Report{
		TestData: []api.TestOutcome{
			{Code: api.OK, TimeMs: 12, MemoryKiB: 1024},
			{Code: api.TL, TimeMs: 2000, MemoryKiB: 2048},
			{Code: api.WA, TimeMs: 7, MemoryKiB: 900},
		},
		Outcome: &api.Outcome{Code: api.TL, Test: 2},
	}

	b, err := json.Marshal(report)
	require.NoError(t, err)

	var decoded api.Report
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, report, decoded)
}

func TestReportWithoutOutcomeOmitsKey(t *testing.T) {
	report := api.Report{
		TestData: []api.TestOutcome{{Code: api.OK}, {Code: api.WA}},
	}

	b, err := json.Marshal(report)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(b, &raw))
	assert.NotContains(t, raw, "outcome")

	var decoded api.Report
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Nil(t, decoded.Outcome)
	assert.Equal(t, report, decoded)
}

func TestCompileErrorReportShape(t *testing.T) {
	report := api.Report{Outcome: &api.Outcome{Code: api.CE, Test: 1}}

	b, err := json.Marshal(report)
	require.NoError(t, err)
	assert.JSONEq(t, `{"outcome":{"code":"CE","test":1}}`, string(b))
}

func TestVerdictRejectsUnknownCode(t *testing.T) {
	var o api.TestOutcome
	err := json.Unmarshal([]byte(`{"code":"XX","time":1,"memory":1}`), &o)
	require.Error(t, err)
}

func TestReportPassed(t *testing.T) {
	assert.True(t, api.Report{Outcome: &api.Outcome{Code: api.OK, Test: api.NoFailingTest}}.Passed())
	assert.False(t, api.Report{Outcome: &api.Outcome{Code: api.CE, Test: 1}}.Passed())
	assert.True(t, api.Report{TestData: []api.TestOutcome{{Code: api.OK}}}.Passed())
	assert.False(t, api.Report{TestData: []api.TestOutcome{{Code: api.OK}, {Code: api.RE}}}.Passed())
}

func TestLimitsValidate(t *testing.T) {
	require.NoError(t, api.Limits{TimeMs: 1, MemoryKiB: 1}.Validate())
	require.ErrorIs(t, api.Limits{TimeMs: 0, MemoryKiB: 1}.Validate(), api.ErrNonPositiveLimits)
	require.ErrorIs(t, api.Limits{TimeMs: 10, MemoryKiB: -5}.Validate(), api.ErrNonPositiveLimits)
}

func TestParseMode(t *testing.T) {
	m, err := api.ParseMode("IOI")
	require.NoError(t, err)
	assert.Equal(t, api.IOI, m)

	m, err = api.ParseMode("acm")
	require.NoError(t, err)
	assert.Equal(t, api.ACM, m)

	_, err = api.ParseMode("codeforces")
	require.Error(t, err)
}

func TestReportEmptyTestDataSurvivesRoundTrip(t *testing.T) {
	ran := api.Report{TestData: []api.TestOutcome{}}
	raw, err := json.Marshal(ran)
	require.NoError(t, err)
	assert.JSONEq(t, `{"test_data":[]}`, string(raw))

	var back api.Report
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.NotNil(t, back.TestData)
	assert.Empty(t, back.TestData)

	ce := api.Report{Outcome: &api.Outcome{Code: api.CE, Test: 1}}
	raw, err = json.Marshal(ce)
	require.NoError(t, err)
	assert.JSONEq(t, `{"outcome":{"code":"CE","test":1}}`, string(raw))

	raw, err = json.Marshal(&ran)
	require.NoError(t, err)
	assert.JSONEq(t, `{"test_data":[]}`, string(raw))
}
