// Package trainer implements the benchmark-driven Trainer: it runs a
// baseline evaluation, focuses successive training cycles on whichever
// suites lag furthest behind their target score, and re-evaluates
// periodically until every target is met or improvement dries up.
package trainer

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"qaengine/internal/benchmark"
)

// Config tunes one Trainer.
type Config struct {
	TargetScores               map[benchmark.Suite]float64
	TrainingCyclesPerEvaluation int
	MinImprovementThreshold    float64
	MaxTrainingCycles          int
	MaxSessionsPerDay          int
}

// DefaultConfig mirrors the target scores and cadence the engine was
// modeled on: MMLU/HellaSwag/ARC need to be solidly above the others,
// TruthfulQA's target stays low because it is the hardest suite.
func DefaultConfig() Config {
	return Config{
		TargetScores: map[benchmark.Suite]float64{
			benchmark.MMLU:       0.80,
			benchmark.HellaSwag:  0.85,
			benchmark.ARC:        0.85,
			benchmark.TruthfulQA: 0.50,
			benchmark.GSM8K:      0.75,
			benchmark.HumanEval:  0.60,
			benchmark.BIGBench:   0.70,
		},
		TrainingCyclesPerEvaluation: 5,
		MinImprovementThreshold:     0.01,
		MaxTrainingCycles:           100,
		MaxSessionsPerDay:           4,
	}
}

// Session records the before/after state of one training run.
type Session struct {
	ID                 string
	StartTime          time.Time
	EndTime            time.Time
	InitialScores      map[benchmark.Suite]float64
	FinalScores        map[benchmark.Suite]float64
	ScoreImprovements  map[benchmark.Suite]float64
	TotalTrainingCycles int
	EvaluationRounds   int
	TargetsAchieved    bool
	OverallImprovement float64
}

// FocusedTrainer performs one training cycle concentrated on a suite,
// or a general cycle when no suite is singled out.
type FocusedTrainer interface {
	TrainGeneral(ctx context.Context) error
	TrainFocused(ctx context.Context, suite benchmark.Suite) error
	InjectKnowledge(ctx context.Context, bundles []Bundle) error
}

// Trainer coordinates benchmark evaluation with focused training cycles.
type Trainer struct {
	runner  *benchmark.Runner
	trainer FocusedTrainer
	config  Config
	log     *zap.Logger

	mu             sync.Mutex
	history        []Session
	sessionsToday  int
	lastSessionDay string
}

// New returns a Trainer wired to runner and a FocusedTrainer
// implementation.
func New(runner *benchmark.Runner, focused FocusedTrainer, config Config, log *zap.Logger) *Trainer {
	return &Trainer{runner: runner, trainer: focused, config: config, log: log}
}

// ErrDailyQuotaExhausted is returned by StartSession when the engine has
// already run its allotted training sessions for the current day.
var ErrDailyQuotaExhausted = fmt.Errorf("trainer: daily training session quota exhausted")

// StartSession runs a baseline evaluation, then focused training cycles
// until targets are met, improvement is exhausted, or the cycle cap is
// reached. The day's quota resets the first time a session starts on a
// new calendar day.
func (t *Trainer) StartSession(ctx context.Context) (Session, error) {
	if !t.takeQuota() {
		return Session{}, ErrDailyQuotaExhausted
	}

	baseline, err := t.runner.RunComprehensive(ctx)
	if err != nil {
		return Session{}, fmt.Errorf("trainer: baseline evaluation: %w", err)
	}

	session := Session{
		ID:               fmt.Sprintf("session_%d", time.Now().Unix()),
		StartTime:        time.Now(),
		InitialScores:    extractScores(baseline),
		EvaluationRounds: 1,
	}

	lastScores := session.InitialScores
	cyclesCompleted := 0

	for cyclesCompleted < t.config.MaxTrainingCycles {
		select {
		case <-ctx.Done():
			return t.finish(ctx, session)
		default:
		}

		weakAreas := t.identifyWeakAreas(lastScores)
		if err := t.runFocusedTraining(ctx, weakAreas); err != nil {
			return Session{}, fmt.Errorf("trainer: focused training cycle: %w", err)
		}
		cyclesCompleted++
		session.TotalTrainingCycles = cyclesCompleted

		if cyclesCompleted%t.config.TrainingCyclesPerEvaluation != 0 {
			continue
		}

		report, err := t.runner.RunComprehensive(ctx)
		if err != nil {
			return Session{}, fmt.Errorf("trainer: periodic evaluation: %w", err)
		}
		currentScores := extractScores(report)
		improvement := calculateImprovement(lastScores, currentScores)
		session.EvaluationRounds++

		t.log.Info("training cycle evaluated",
			zap.Int("cycles_completed", cyclesCompleted),
			zap.Float64("improvement", improvement))

		if t.targetsAchieved(currentScores) {
			session.TargetsAchieved = true
			lastScores = currentScores
			break
		}
		lastScores = currentScores
		if improvement < t.config.MinImprovementThreshold {
			t.log.Warn("improvement below threshold, training strategy exhausted")
			break
		}
	}

	return t.finishWithScores(session, lastScores)
}

func (t *Trainer) finish(ctx context.Context, session Session) (Session, error) {
	report, err := t.runner.RunComprehensive(ctx)
	if err != nil {
		return Session{}, fmt.Errorf("trainer: final evaluation: %w", err)
	}
	return t.finishWithScores(session, extractScores(report))
}

func (t *Trainer) finishWithScores(session Session, finalScores map[benchmark.Suite]float64) (Session, error) {
	session.EndTime = time.Now()
	session.FinalScores = finalScores
	session.ScoreImprovements = make(map[benchmark.Suite]float64, len(finalScores))
	for suite, final := range finalScores {
		if initial, ok := session.InitialScores[suite]; ok {
			session.ScoreImprovements[suite] = final - initial
		}
	}
	session.OverallImprovement = calculateImprovement(session.InitialScores, finalScores)

	t.mu.Lock()
	t.history = append(t.history, session)
	t.mu.Unlock()

	return session, nil
}

func (t *Trainer) runFocusedTraining(ctx context.Context, weakAreas []benchmark.Suite) error {
	if len(weakAreas) == 0 {
		return t.trainer.TrainGeneral(ctx)
	}
	for _, suite := range weakAreas {
		if bundles := CuratedBundles(suite); len(bundles) > 0 {
			if err := t.trainer.InjectKnowledge(ctx, bundles); err != nil {
				return fmt.Errorf("trainer: inject curated knowledge for %s: %w", suite, err)
			}
		}
		if err := t.trainer.TrainFocused(ctx, suite); err != nil {
			return err
		}
	}
	return nil
}

// identifyWeakAreas returns every suite currently below its target,
// ordered from most deficient to least.
func (t *Trainer) identifyWeakAreas(scores map[benchmark.Suite]float64) []benchmark.Suite {
	var weak []benchmark.Suite
	for suite, target := range t.config.TargetScores {
		if scores[suite] < target {
			weak = append(weak, suite)
		}
	}
	sort.Slice(weak, func(i, j int) bool {
		deficitI := t.config.TargetScores[weak[i]] - scores[weak[i]]
		deficitJ := t.config.TargetScores[weak[j]] - scores[weak[j]]
		return deficitI > deficitJ
	})
	return weak
}

func (t *Trainer) targetsAchieved(scores map[benchmark.Suite]float64) bool {
	for suite, target := range t.config.TargetScores {
		if scores[suite] < target {
			return false
		}
	}
	return true
}

func extractScores(report benchmark.Report) map[benchmark.Suite]float64 {
	out := make(map[benchmark.Suite]float64, len(report.Results))
	for suite, result := range report.Results {
		out[suite] = result.Accuracy
	}
	return out
}

func calculateImprovement(old, new map[benchmark.Suite]float64) float64 {
	var total float64
	var count int
	for suite, newScore := range new {
		if oldScore, ok := old[suite]; ok {
			total += newScore - oldScore
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return total / float64(count)
}

// takeQuota reports whether a new session is allowed today, resetting
// the per-day counter on calendar rollover.
func (t *Trainer) takeQuota() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	today := time.Now().Format("2006-01-02")
	if today != t.lastSessionDay {
		t.lastSessionDay = today
		t.sessionsToday = 0
	}
	if t.sessionsToday >= t.config.MaxSessionsPerDay {
		return false
	}
	t.sessionsToday++
	return true
}

// History returns every completed training session, oldest first.
func (t *Trainer) History() []Session {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Session, len(t.history))
	copy(out, t.history)
	return out
}
