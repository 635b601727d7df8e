// Package engine wires the KnowledgeStore, CandidateGenerator,
// RelevanceScorer, Selector, SelfEvaluator, BenchmarkRunner, Trainer,
// and Scheduler into the six external operations the rest of the system
// exposes: submit_query, submit_background, get_task, get_stats,
// run_benchmarks, and start_training.
package engine

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"qaengine/internal/benchmark"
	"qaengine/internal/candidates"
	"qaengine/internal/config"
	"qaengine/internal/evaluator"
	"qaengine/internal/knowledge"
	"qaengine/internal/oracle"
	"qaengine/internal/scheduler"
	"qaengine/internal/selector"
	"qaengine/internal/trainer"
)

const submitQueryTimeout = 3 * time.Second

// Engine owns the full component DAG described for the system: the
// scheduler at the top, the trainer and benchmark runner beneath it, the
// evaluator and selector beneath that, and the store/generator/scorer at
// the base.
type Engine struct {
	store     *knowledge.Store
	generator *candidates.Generator
	sel       *selector.Selector
	eval      *evaluator.Evaluator
	runner    *benchmark.Runner
	train     *trainer.Trainer
	sched     *scheduler.Scheduler
	log       *zap.Logger
}

// New builds the full DAG from cfg and an optional TextOracle (nil is
// fine — the AnalogicalReasoning strategy simply stays dormant).
func New(cfg config.Config, textOracle oracle.TextOracle, log *zap.Logger) *Engine {
	store := knowledge.New()
	generator := candidates.New(store, textOracle)
	sel := selector.New(store, generator)

	e := &Engine{store: store, generator: generator, sel: sel, log: log}

	e.eval = evaluator.New(store, answererAdapter{e}, log)
	e.runner = benchmark.New(queryOnlyAdapter{e}, log)
	e.train = trainer.New(e.runner, focusedTrainerAdapter{e}, trainer.Config{
		TargetScores:                cfg.SuiteTargets,
		TrainingCyclesPerEvaluation: 5,
		MinImprovementThreshold:     0.01,
		MaxTrainingCycles:           100,
		MaxSessionsPerDay:           cfg.MaxTrainingSessionsPerDay,
	}, log)

	handlers := map[scheduler.Kind]scheduler.Handler{
		scheduler.HumanRequest: func(ctx context.Context, task *scheduler.Task) (string, error) {
			return e.Answer(ctx, task.Payload)
		},
		scheduler.SelfImprovement: func(ctx context.Context, task *scheduler.Task) (string, error) {
			e.eval.StartBackground(ctx)
			return "self-improvement cycle triggered", nil
		},
		scheduler.KnowledgeGathering: func(_ context.Context, task *scheduler.Task) (string, error) {
			return "knowledge-gathering cycle executed", nil
		},
		scheduler.SystemOptimization: func(_ context.Context, task *scheduler.Task) (string, error) {
			return fmt.Sprintf("queue depth at check time: %d", e.sched.QueueDepth()), nil
		},
	}
	e.sched = scheduler.New(cfg.WorkerPoolSize, handlers, cfg.Safety, log)

	return e
}

// Store exposes the underlying KnowledgeStore for snapshot import/export
// and direct inspection.
func (e *Engine) Store() *knowledge.Store { return e.store }

// Start launches the evaluator's background loops and the scheduler's
// worker pool; it blocks until ctx is cancelled.
func (e *Engine) Start(ctx context.Context) {
	e.eval.StartBackground(ctx)
	e.sched.Start(ctx)
}

// Answer infers a domain for query and returns the selector's chosen
// answer text, the operation behind submit_query.
func (e *Engine) Answer(ctx context.Context, query string) (string, error) {
	domain := candidates.InferDomain(e.store, query)
	selection, err := e.sel.Answer(ctx, query, domain)
	if err != nil {
		return "", err
	}
	return selection.Answer.Content, nil
}

// AnswerWithDomain is the same as Answer but with a caller-supplied
// domain, used by the evaluator when it already knows which domain a
// self-generated question targets.
func (e *Engine) AnswerWithDomain(ctx context.Context, query string, domain knowledge.Domain) (string, error) {
	selection, err := e.sel.Answer(ctx, query, domain)
	if err != nil {
		return "", err
	}
	return selection.Answer.Content, nil
}

// SubmitQuery answers a query synchronously, bounded by a short timeout
// so a caller never blocks indefinitely on a misbehaving oracle.
func (e *Engine) SubmitQuery(ctx context.Context, query string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, submitQueryTimeout)
	defer cancel()
	return e.Answer(ctx, query)
}

// SubmitBackground enqueues query as a Critical-priority scheduler task
// and returns its ID immediately without waiting for completion.
func (e *Engine) SubmitBackground(query, sessionID string) string {
	task := scheduler.NewTask(scheduler.HumanRequest, scheduler.Critical, query)
	task.SessionID = sessionID
	e.sched.Submit(task)
	return task.ID
}

// GetTask reports a previously submitted task's current state.
func (e *Engine) GetTask(id string) (*scheduler.Task, bool) {
	return e.sched.GetTask(id)
}

// Stats aggregates counters across every component for the get_stats
// operation.
type Stats struct {
	Knowledge  knowledge.Stats
	Evaluation evaluator.Stats
	QueueDepth int
}

// GetStats returns the current aggregate stats.
func (e *Engine) GetStats() Stats {
	return Stats{
		Knowledge:  e.store.Stats(),
		Evaluation: e.eval.EvaluationStats(),
		QueueDepth: e.sched.QueueDepth(),
	}
}

// RunBenchmarks runs one comprehensive benchmark evaluation.
func (e *Engine) RunBenchmarks(ctx context.Context) (benchmark.Report, error) {
	return e.runner.RunComprehensive(ctx)
}

// StartTraining kicks off one benchmark-driven training session.
func (e *Engine) StartTraining(ctx context.Context) (trainer.Session, error) {
	return e.train.StartSession(ctx)
}

// answererAdapter lets Engine satisfy evaluator.Answerer.
type answererAdapter struct{ e *Engine }

func (a answererAdapter) Answer(ctx context.Context, query string, domain knowledge.Domain) (string, error) {
	return a.e.AnswerWithDomain(ctx, query, domain)
}

// queryOnlyAdapter lets Engine satisfy benchmark.Answerer.
type queryOnlyAdapter struct{ e *Engine }

func (a queryOnlyAdapter) Answer(ctx context.Context, query string) (string, error) {
	return a.e.Answer(ctx, query)
}

// focusedTrainerAdapter lets Engine satisfy trainer.FocusedTrainer by
// translating a weak benchmark suite into practice questions against the
// knowledge domains that suite exercises and answering them through the
// selector, whose online-learning hook can write well-grounded answers
// back into the store.
type focusedTrainerAdapter struct{ e *Engine }

var suiteDomains = map[benchmark.Suite][]knowledge.Domain{
	benchmark.MMLU:       {knowledge.Mathematics, knowledge.Physics, knowledge.History, knowledge.ComputerScience},
	benchmark.HellaSwag:  {knowledge.Psychology, knowledge.Sociology},
	benchmark.ARC:        {knowledge.Physics, knowledge.Chemistry, knowledge.Biology},
	benchmark.TruthfulQA: {knowledge.Philosophy, knowledge.Medicine, knowledge.General},
	benchmark.GSM8K:      {knowledge.Mathematics},
	benchmark.HumanEval:  {knowledge.ComputerScience, knowledge.Engineering},
	benchmark.BIGBench:   {knowledge.Philosophy, knowledge.Linguistics},
}

// InjectKnowledge inserts each curated bundle into the store so a weak
// suite's subsequent TrainFocused cycle has fresh nodes to practice
// against, even when the suite's domains started out empty. Insert is
// content-addressed and idempotent, so repeated sessions never
// duplicate a bundle already present.
func (a focusedTrainerAdapter) InjectKnowledge(ctx context.Context, bundles []trainer.Bundle) error {
	for _, b := range bundles {
		if _, err := a.e.store.Insert(b.Domain, b.Topic, b.Content, b.Related); err != nil {
			return fmt.Errorf("engine: inject curated knowledge %s/%s: %w", b.Domain, b.Topic, err)
		}
	}
	return nil
}

func (a focusedTrainerAdapter) TrainFocused(ctx context.Context, suite benchmark.Suite) error {
	for _, domain := range suiteDomains[suite] {
		for _, node := range a.e.store.QueryByDomain(domain) {
			question := fmt.Sprintf("What is %s?", node.Topic)
			if _, err := a.e.AnswerWithDomain(ctx, question, domain); err != nil {
				return fmt.Errorf("engine: focused training on %s: %w", suite, err)
			}
		}
	}
	return nil
}

func (a focusedTrainerAdapter) TrainGeneral(ctx context.Context) error {
	for _, domain := range knowledge.AllDomains() {
		for _, node := range a.e.store.QueryByDomain(domain) {
			question := fmt.Sprintf("What is %s?", node.Topic)
			if _, err := a.e.AnswerWithDomain(ctx, question, domain); err != nil {
				return fmt.Errorf("engine: general training: %w", err)
			}
		}
	}
	return nil
}
