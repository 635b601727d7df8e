package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	selfImprovementInterval  = 5 * time.Minute
	knowledgeGatheringInterval = 10 * time.Minute
	systemMonitorInterval    = time.Minute
	completedTaskRetention   = time.Hour
)

// Handler executes one task's payload and returns its result text.
type Handler func(ctx context.Context, task *Task) (string, error)

// Scheduler owns the priority queue, a fixed worker pool, rate-limited
// safety guards, and the background loops that keep feeding the queue
// with self-improvement and knowledge-gathering work.
type Scheduler struct {
	queue       *TaskQueue
	handlers    map[Kind]Handler
	constraints SafetyConstraints
	limiters    *RateLimiters
	log         *zap.Logger

	mu      sync.Mutex
	tasks   map[string]*Task
	cond    *sync.Cond
	closed  bool

	workerCount int
}

// New returns a Scheduler with workerCount workers, ready to Start.
func New(workerCount int, handlers map[Kind]Handler, constraints SafetyConstraints, log *zap.Logger) *Scheduler {
	s := &Scheduler{
		queue:       NewTaskQueue(),
		handlers:    handlers,
		constraints: constraints,
		limiters:    NewRateLimiters(),
		log:         log,
		tasks:       make(map[string]*Task),
		workerCount: workerCount,
	}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// Submit enqueues task and returns immediately; the caller can poll
// GetTask for its eventual outcome.
func (s *Scheduler) Submit(task *Task) {
	s.mu.Lock()
	s.tasks[task.ID] = task
	s.queue.Push(task)
	s.mu.Unlock()
	s.cond.Signal()
}

// ErrStillProcessing is returned by SubmitHumanRequest when the task has
// not completed by the given deadline; the caller should poll GetTask.
var ErrStillProcessing = fmt.Errorf("scheduler: task still processing")

// SubmitHumanRequest enqueues a Critical-priority task and blocks up to
// timeout for it to complete, returning ErrStillProcessing if it hasn't
// by then.
func (s *Scheduler) SubmitHumanRequest(ctx context.Context, query, sessionID string, timeout time.Duration) (*Task, error) {
	task := NewTask(HumanRequest, Critical, query)
	task.SessionID = sessionID
	s.Submit(task)

	deadline := time.After(timeout)
	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return task, ctx.Err()
		case <-deadline:
			return task, ErrStillProcessing
		case <-ticker.C:
			if t, ok := s.GetTask(task.ID); ok && (t.Status == Completed || t.Status == Failed) {
				return t, nil
			}
		}
	}
}

// GetTask returns a copy of the task's current state.
func (s *Scheduler) GetTask(id string) (*Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	task, ok := s.tasks[id]
	if !ok {
		return nil, false
	}
	copied := *task
	return &copied, true
}

// Start launches the fixed worker pool and the background ticker loops.
// It blocks until ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	var wg sync.WaitGroup
	for i := 0; i < s.workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.runWorker(ctx)
		}()
	}

	go s.selfImprovementLoop(ctx)
	go s.knowledgeGatheringLoop(ctx)
	go s.systemMonitorLoop(ctx)

	<-ctx.Done()
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.cond.Broadcast()
	wg.Wait()
}

func (s *Scheduler) runWorker(ctx context.Context) {
	for {
		task, ok := s.nextTask(ctx)
		if !ok {
			return
		}
		s.process(ctx, task)
	}
}

func (s *Scheduler) nextTask(ctx context.Context) (*Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for s.queue.Len() == 0 && !s.closed {
		if ctx.Err() != nil {
			return nil, false
		}
		s.cond.Wait()
	}
	if s.closed && s.queue.Len() == 0 {
		return nil, false
	}
	task, _ := s.queue.Pop()
	return task, true
}

func (s *Scheduler) process(ctx context.Context, task *Task) {
	s.mu.Lock()
	task.StartedAt = time.Now()
	task.Status = Running
	s.mu.Unlock()

	handler, ok := s.handlers[task.Kind]
	if !ok {
		s.mu.Lock()
		task.Status = Failed
		task.Err = fmt.Errorf("scheduler: no handler registered for task kind %d", task.Kind)
		task.CompletedAt = time.Now()
		s.mu.Unlock()
		return
	}

	result, err := handler(ctx, task)

	s.mu.Lock()
	defer s.mu.Unlock()
	task.CompletedAt = time.Now()
	if err != nil {
		task.Status = Failed
		task.Err = err
		s.log.Warn("task failed", zap.String("task_id", task.ID), zap.Error(err))
		return
	}
	task.Status = Completed
	task.Result = result
}

func (s *Scheduler) selfImprovementLoop(ctx context.Context) {
	ticker := time.NewTicker(selfImprovementInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Submit(NewTask(SelfImprovement, High, "periodic self-improvement sweep"))
		}
	}
}

func (s *Scheduler) knowledgeGatheringLoop(ctx context.Context) {
	ticker := time.NewTicker(knowledgeGatheringInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Submit(NewTask(KnowledgeGathering, Medium, "periodic knowledge gathering sweep"))
		}
	}
}

// systemMonitorLoop both submits a low-priority monitoring task and
// garbage-collects tasks that finished more than completedTaskRetention
// ago, keeping the in-memory task map bounded.
func (s *Scheduler) systemMonitorLoop(ctx context.Context) {
	ticker := time.NewTicker(systemMonitorInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Submit(NewTask(SystemOptimization, Low, "system-monitor"))
			s.gcCompleted()
		}
	}
}

func (s *Scheduler) gcCompleted() {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-completedTaskRetention)
	for id, task := range s.tasks {
		if (task.Status == Completed || task.Status == Failed) && task.CompletedAt.Before(cutoff) {
			delete(s.tasks, id)
		}
	}
}

// CheckRateLimit reports whether action is currently allowed under the
// scheduler's safety rate limits.
func (s *Scheduler) CheckRateLimit(action Action) bool {
	return s.limiters.Allow(action)
}

// Constraints returns the scheduler's active safety constraints.
func (s *Scheduler) Constraints() SafetyConstraints {
	return s.constraints
}

// QueueDepth reports the number of tasks waiting to run.
func (s *Scheduler) QueueDepth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Len()
}
