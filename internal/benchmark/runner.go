package benchmark

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Answerer is the subset of the engine's query surface the benchmark
// runner needs to exercise against each suite's questions.
type Answerer interface {
	Answer(ctx context.Context, query string) (string, error)
}

// Result is one suite's outcome: accuracy and the number of questions
// answered correctly out of the total asked.
type Result struct {
	Suite    Suite
	Accuracy float64
	Correct  int
	Total    int
}

// Report is the output of one comprehensive evaluation across every
// suite with a non-empty question bank.
type Report struct {
	OverallScore      float64
	Results           map[Suite]Result
	Strengths         []string
	Weaknesses        []string
	Recommendations   []string
	SOTAComparison    map[Suite]float64
	Timestamp         time.Time
}

// PerformanceTrend classifies the direction of change since the last
// report.
type PerformanceTrend int

const (
	Stable PerformanceTrend = iota
	Improving
	Declining
	Volatile
)

func (t PerformanceTrend) String() string {
	switch t {
	case Improving:
		return "improving"
	case Declining:
		return "declining"
	case Volatile:
		return "volatile"
	default:
		return "stable"
	}
}

// TrendAnalysis compares the latest report against history.
type TrendAnalysis struct {
	PerformanceTrend PerformanceTrend
	ScoreChanges     map[Suite]float64
	ImprovementRate  float64
	StabilityScore   float64
	AreasOfConcern   []string
	AreasOfStrength  []string
}

const trainingTriggerThreshold = 0.05

// Runner evaluates the fixed question bank against an Answerer and keeps
// a bounded history of past reports for trend analysis.
type Runner struct {
	answerer Answerer
	log      *zap.Logger

	mu      sync.Mutex
	history []Report
}

// New returns a Runner wired to answerer.
func New(answerer Answerer, log *zap.Logger) *Runner {
	return &Runner{answerer: answerer, log: log}
}

// RunComprehensive evaluates every suite with questions, computes the
// weighted overall score, and returns the full report.
func (r *Runner) RunComprehensive(ctx context.Context) (Report, error) {
	results := make(map[Suite]Result)
	var totalWeighted, totalWeight float64

	for _, suite := range AllSuites() {
		questions := QuestionsFor(suite)
		if len(questions) == 0 {
			continue
		}

		result, err := r.evaluateSuite(ctx, suite, questions)
		if err != nil {
			return Report{}, fmt.Errorf("benchmark: evaluate suite %s: %w", suite, err)
		}
		results[suite] = result

		weight := suite.Weight()
		totalWeighted += result.Accuracy * weight
		totalWeight += weight
	}

	overall := 0.0
	if totalWeight > 0 {
		overall = totalWeighted / totalWeight
	}

	strengths, weaknesses := analyzePerformance(results)
	recommendations := generateSuiteRecommendations(results)
	sotaComparison := compareToSOTA(results)

	report := Report{
		OverallScore:    overall,
		Results:         results,
		Strengths:       strengths,
		Weaknesses:      weaknesses,
		Recommendations: recommendations,
		SOTAComparison:  sotaComparison,
		Timestamp:       time.Now(),
	}

	r.mu.Lock()
	r.history = append(r.history, report)
	r.mu.Unlock()

	return report, nil
}

func (r *Runner) evaluateSuite(ctx context.Context, suite Suite, questions []Question) (Result, error) {
	correct := 0
	for _, q := range questions {
		answer, err := r.answerer.Answer(ctx, q.Prompt)
		if err != nil {
			r.log.Warn("benchmark answer failed", zap.String("suite", suite.String()), zap.Error(err))
			continue
		}
		if isCorrect(suite, answer, q.CorrectAnswer) {
			correct++
		}
	}
	return Result{Suite: suite, Accuracy: float64(correct) / float64(len(questions)), Correct: correct, Total: len(questions)}, nil
}

func analyzePerformance(results map[Suite]Result) (strengths, weaknesses []string) {
	for suite, result := range results {
		ratio := result.Accuracy / SOTA(suite)
		switch {
		case ratio > 0.9:
			strengths = append(strengths, fmt.Sprintf("%s: excellent performance (%.1f%% vs %.1f%% SOTA)",
				suite.Description(), result.Accuracy*100, SOTA(suite)*100))
		case ratio < 0.7:
			weaknesses = append(weaknesses, fmt.Sprintf("%s: needs improvement (%.1f%% vs %.1f%% SOTA)",
				suite.Description(), result.Accuracy*100, SOTA(suite)*100))
		}
	}
	return strengths, weaknesses
}

func generateSuiteRecommendations(results map[Suite]Result) []string {
	var recs []string
	for suite, result := range results {
		if result.Accuracy >= 0.7 {
			continue
		}
		switch suite {
		case MMLU:
			recs = append(recs, "Expand knowledge base across STEM and humanities domains")
		case HellaSwag:
			recs = append(recs, "Improve commonsense reasoning training")
		case ARC:
			recs = append(recs, "Enhance scientific reasoning capabilities")
		case TruthfulQA:
			recs = append(recs, "Focus on factual accuracy and avoiding misinformation")
		case GSM8K:
			recs = append(recs, "Strengthen mathematical problem-solving skills")
		case HumanEval:
			recs = append(recs, "Improve code generation and programming logic")
		case BIGBench:
			recs = append(recs, "Diversify reasoning training across multiple domains")
		}
	}
	if len(recs) == 0 {
		recs = append(recs, "Continue current training approach - performance is strong across all benchmarks")
	}
	return recs
}

func compareToSOTA(results map[Suite]Result) map[Suite]float64 {
	out := make(map[Suite]float64, len(results))
	for suite, result := range results {
		out[suite] = result.Accuracy / SOTA(suite)
	}
	return out
}

// HealthScore folds the overall benchmark score together with how close
// that score is to the SOTA average, clipped at 1.0 so beating SOTA
// never inflates health above perfect.
func HealthScore(report Report) float64 {
	if len(report.SOTAComparison) == 0 {
		return clamp(report.OverallScore)
	}

	var sum float64
	for _, ratio := range report.SOTAComparison {
		sum += ratio
	}
	sotaAverage := sum / float64(len(report.SOTAComparison))

	score := report.OverallScore * math.Min(sotaAverage, 1.0)
	return clamp(score)
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// AnalyzeTrends compares the latest two reports in history. With fewer
// than two reports it returns a neutral, stable trend.
func (r *Runner) AnalyzeTrends() TrendAnalysis {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.history) < 2 {
		return TrendAnalysis{PerformanceTrend: Stable, ScoreChanges: map[Suite]float64{}, StabilityScore: 1.0}
	}

	current := r.history[len(r.history)-1]
	previous := r.history[len(r.history)-2]

	scoreChanges := make(map[Suite]float64)
	var totalChange float64
	var changeCount int
	for suite, currentResult := range current.Results {
		if previousResult, ok := previous.Results[suite]; ok {
			change := currentResult.Accuracy - previousResult.Accuracy
			scoreChanges[suite] = change
			totalChange += change
			changeCount++
		}
	}

	averageChange := 0.0
	if changeCount > 0 {
		averageChange = totalChange / float64(changeCount)
	}

	volatility := r.recentVolatility()

	var trend PerformanceTrend
	switch {
	case volatility > 0.1:
		trend = Volatile
	case averageChange > 0.02:
		trend = Improving
	case averageChange < -0.02:
		trend = Declining
	default:
		trend = Stable
	}

	improvementRate := 0.0
	if len(r.history) >= 2 {
		days := current.Timestamp.Sub(r.history[0].Timestamp).Hours() / 24.0
		if days > 0 {
			improvementRate = averageChange / days
		}
	}

	stability := clamp(1.0 - math.Min(volatility, 1.0))

	var concerns, strengthNotes []string
	for suite, change := range scoreChanges {
		switch {
		case change < -0.05:
			concerns = append(concerns, fmt.Sprintf("%s performance declined by %.1f%%", suite, change*100))
		case change > 0.05:
			strengthNotes = append(strengthNotes, fmt.Sprintf("%s performance improved by %.1f%%", suite, change*100))
		}
	}

	return TrendAnalysis{
		PerformanceTrend: trend,
		ScoreChanges:     scoreChanges,
		ImprovementRate:  improvementRate,
		StabilityScore:   stability,
		AreasOfConcern:   concerns,
		AreasOfStrength:  strengthNotes,
	}
}

// recentVolatility averages the standard deviation of each suite's score
// over the last three reports. With fewer than three reports it returns 0.
func (r *Runner) recentVolatility() float64 {
	if len(r.history) < 3 {
		return 0
	}
	recent := r.history[len(r.history)-3:]

	var volatilitySum float64
	var suiteCount int
	for _, suite := range AllSuites() {
		var scores []float64
		for i := len(recent) - 1; i >= 0; i-- {
			if result, ok := recent[i].Results[suite]; ok {
				scores = append(scores, result.Accuracy)
			}
		}
		if len(scores) >= 2 {
			volatilitySum += stddev(scores)
			suiteCount++
		}
	}
	if suiteCount == 0 {
		return 0
	}
	return volatilitySum / float64(suiteCount)
}

func stddev(scores []float64) float64 {
	var mean float64
	for _, s := range scores {
		mean += s
	}
	mean /= float64(len(scores))

	var variance float64
	for _, s := range scores {
		variance += (s - mean) * (s - mean)
	}
	variance /= float64(len(scores))

	return math.Sqrt(variance)
}

// ShouldTriggerTraining reports whether the trend/health state warrants
// kicking off a new training session.
func ShouldTriggerTraining(trends TrendAnalysis, health float64) bool {
	if trends.PerformanceTrend == Declining {
		return true
	}
	if health < 0.75 {
		return true
	}
	for _, change := range trends.ScoreChanges {
		if change < -trainingTriggerThreshold {
			return true
		}
	}
	return false
}

// RunAutomationLoop runs a comprehensive evaluation on a fixed interval
// until ctx is cancelled, logging the outcome and health score each
// cycle.
func (r *Runner) RunAutomationLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			report, err := r.RunComprehensive(ctx)
			if err != nil {
				r.log.Error("benchmark evaluation cycle failed", zap.Error(err))
				continue
			}
			health := HealthScore(report)
			trends := r.AnalyzeTrends()
			r.log.Info("benchmark evaluation cycle complete",
				zap.Float64("overall_score", report.OverallScore),
				zap.Float64("health_score", health),
				zap.String("trend", trends.PerformanceTrend.String()),
				zap.Bool("should_train", ShouldTriggerTraining(trends, health)))
		}
	}
}

// History returns a copy of the recorded reports, oldest first.
func (r *Runner) History() []Report {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Report, len(r.history))
	copy(out, r.history)
	return out
}
