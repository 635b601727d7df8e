package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"qaengine/internal/config"
	"qaengine/internal/knowledge"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	cfg := config.Default()
	e := New(cfg, nil, zap.NewNop())
	_, err := e.Store().Insert(knowledge.ComputerScience, "javascript closures",
		"JavaScript closures capture variables from their enclosing lexical scope.", nil)
	require.NoError(t, err)
	return e
}

func TestSubmitQueryReturnsAnAnswer(t *testing.T) {
	e := newTestEngine(t)
	answer, err := e.SubmitQuery(context.Background(), "javascript closures")
	require.NoError(t, err)
	assert.NotEmpty(t, answer)
}

func TestSubmitBackgroundReturnsTaskID(t *testing.T) {
	e := newTestEngine(t)
	id := e.SubmitBackground("javascript closures", "session-1")
	assert.NotEmpty(t, id)

	task, ok := e.GetTask(id)
	require.True(t, ok)
	assert.Equal(t, id, task.ID)
}

func TestGetStatsReflectsStoreContents(t *testing.T) {
	e := newTestEngine(t)
	stats := e.GetStats()
	assert.Equal(t, 1, stats.Knowledge.TotalNodes)
}

func TestRunBenchmarksReturnsAReport(t *testing.T) {
	e := newTestEngine(t)
	report, err := e.RunBenchmarks(context.Background())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, report.OverallScore, 0.0)
}
