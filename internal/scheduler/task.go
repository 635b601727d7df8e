// Package scheduler implements the autonomous task scheduler: a
// priority-ordered queue of background and human-triggered work, a
// fixed worker pool, rate-limited safety guards, and periodic
// self-improvement/knowledge-gathering/system-monitor ticks.
package scheduler

import (
	"time"

	"github.com/google/uuid"
)

// Priority orders tasks for the scheduler's max-heap: a human request
// always preempts background work.
type Priority int

const (
	Low Priority = iota + 1
	Medium
	High
	Critical
)

// Kind identifies what a Task actually does when it runs.
type Kind int

const (
	HumanRequest Kind = iota
	SelfImprovement
	KnowledgeGathering
	SystemOptimization
	PatternAnalysis
	CodeGeneration
)

// Status is a Task's lifecycle stage.
type Status int

const (
	Pending Status = iota
	Running
	Completed
	Failed
	Cancelled
)

// Task is one unit of scheduled work.
type Task struct {
	ID          string
	Kind        Kind
	Priority    Priority
	Payload     string
	SessionID   string
	CreatedAt   time.Time
	StartedAt   time.Time
	CompletedAt time.Time
	Status      Status
	Result      string
	Err         error
}

// NewTask allocates a Task with a fresh UUID and the current time as its
// creation timestamp.
func NewTask(kind Kind, priority Priority, payload string) *Task {
	return &Task{
		ID:        uuid.NewString(),
		Kind:      kind,
		Priority:  priority,
		Payload:   payload,
		CreatedAt: time.Now(),
		Status:    Pending,
	}
}
