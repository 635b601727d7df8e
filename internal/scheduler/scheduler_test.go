package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestTaskQueueOrdersByPriorityThenAge(t *testing.T) {
	q := NewTaskQueue()
	low := NewTask(KnowledgeGathering, Low, "low")
	high := NewTask(SelfImprovement, High, "high")
	critical := NewTask(HumanRequest, Critical, "critical")

	q.Push(low)
	q.Push(high)
	q.Push(critical)

	first, ok := q.Pop()
	require.True(t, ok)
	assert.Equal(t, critical.ID, first.ID)

	second, ok := q.Pop()
	require.True(t, ok)
	assert.Equal(t, high.ID, second.ID)

	third, ok := q.Pop()
	require.True(t, ok)
	assert.Equal(t, low.ID, third.ID)
}

func TestTaskQueueOlderTaskFirstAtSamePriority(t *testing.T) {
	q := NewTaskQueue()
	first := NewTask(KnowledgeGathering, Medium, "first")
	time.Sleep(time.Millisecond)
	second := NewTask(KnowledgeGathering, Medium, "second")

	q.Push(second)
	q.Push(first)

	popped, ok := q.Pop()
	require.True(t, ok)
	assert.Equal(t, first.ID, popped.ID)
}

func TestSchedulerProcessesSubmittedTask(t *testing.T) {
	handlers := map[Kind]Handler{
		HumanRequest: func(_ context.Context, task *Task) (string, error) {
			return "answered: " + task.Payload, nil
		},
	}
	s := New(2, handlers, DefaultSafetyConstraints(), zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	go s.Start(ctx)
	defer cancel()

	result, err := s.SubmitHumanRequest(ctx, "hello", "session-1", time.Second)
	require.NoError(t, err)
	assert.Equal(t, Completed, result.Status)
	assert.Equal(t, "answered: hello", result.Result)
}

func TestSafetyConstraintsAllowedDirectory(t *testing.T) {
	c := DefaultSafetyConstraints()
	assert.True(t, c.IsDirectoryAllowed("/tmp/scratch"))
	assert.False(t, c.IsDirectoryAllowed("/etc/passwd"))
}

func TestSafetyConstraintsForbiddenProcess(t *testing.T) {
	c := DefaultSafetyConstraints()
	assert.True(t, c.IsProcessForbidden("sudo"))
	assert.False(t, c.IsProcessForbidden("myworker"))
}

func TestRateLimitersEnforceBudget(t *testing.T) {
	limiters := NewRateLimiters()
	allowed := 0
	for i := 0; i < 15; i++ {
		if limiters.Allow(ProcessSpawn) {
			allowed++
		}
	}
	assert.LessOrEqual(t, allowed, 10)
}

func TestSafetyConstraintsValidateAcceptsDefaults(t *testing.T) {
	assert.NoError(t, DefaultSafetyConstraints().Validate())
}

func TestSafetyConstraintsValidateRejectsEmptyAllowList(t *testing.T) {
	c := DefaultSafetyConstraints()
	c.AllowedDirectories = nil
	require.ErrorIs(t, c.Validate(), ErrSafetyViolation)
}

func TestSafetyConstraintsValidateRejectsNonPositiveMemory(t *testing.T) {
	c := DefaultSafetyConstraints()
	c.MaxMemoryMB = 0
	require.ErrorIs(t, c.Validate(), ErrSafetyViolation)
}
