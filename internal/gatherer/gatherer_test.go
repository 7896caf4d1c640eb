package gatherer_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/programme-lv/minijudge/api"
	"github.com/programme-lv/minijudge/internal/gatherer"
	"github.com/programme-lv/minijudge/internal/gatherer/mocks"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestTrimToRect(t *testing.T) {
	assert.Equal(t, "", gatherer.TrimToRect("", 2, 3))
	assert.Equal(t, "ab\ncd", gatherer.TrimToRect("ab\ncd", 2, 3))
	assert.Equal(t, "abc[...]\nd", gatherer.TrimToRect("abcdef\nd", 2, 3))
	assert.Equal(t, "a\nb\n[...]", gatherer.TrimToRect("a\nb\nc\nd", 2, 3))
	assert.Equal(t, "abc[...]\n[...]", gatherer.TrimToRect("abcdef\nx\ny", 1, 3))
}

func TestTrimToRectKeepsRunesWhole(t *testing.T) {
	got := gatherer.TrimToRect("aĀĀ", 1, 2)
	assert.Equal(t, "a[...]", got)
	assert.True(t, utf8.ValidString(got))

	got = gatherer.TrimToRect(strings.Repeat("ž", 100), 1, api.MaxRuntimeDataWidth)
	assert.True(t, utf8.ValidString(got))
	assert.LessOrEqual(t, len(got), api.MaxRuntimeDataWidth+len("[...]"))
}

func TestTrimRuntimeDataKeepsNumbers(t *testing.T) {
	data := &api.RuntimeData{Stderr: strings.Repeat("x", 200), ExitCode: 1, WallMillis: 12}

	got := gatherer.TrimRuntimeData(data)
	assert.Equal(t, int64(1), got.ExitCode)
	assert.Equal(t, int64(12), got.WallMillis)
	assert.Len(t, got.Stderr, api.MaxRuntimeDataWidth+len("[...]"))
	assert.Len(t, data.Stderr, 200, "original untouched")

	assert.Nil(t, gatherer.TrimRuntimeData(nil))
	assert.Nil(t, gatherer.TrimBytes(nil))
}

func TestMultiForwardsToAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	a := mocks.NewMockResultGatherer(ctrl)
	b := mocks.NewMockResultGatherer(ctrl)
	outcome := api.TestOutcome{Code: api.OK, TimeMs: 3, MemoryKiB: 100}

	for _, g := range []*mocks.MockResultGatherer{a, b} {
		g.EXPECT().StartCompile()
		g.EXPECT().FinishTest(2, outcome)
		g.EXPECT().FinishNoError(nil)
	}

	m := gatherer.Multi{a, b}
	m.StartCompile()
	m.FinishTest(2, outcome)
	m.FinishNoError(nil)
}
