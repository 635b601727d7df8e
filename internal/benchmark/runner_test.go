package benchmark

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mapAnswerer struct {
	answers map[string]string
}

func (a mapAnswerer) Answer(_ context.Context, query string) (string, error) {
	if ans, ok := a.answers[query]; ok {
		return ans, nil
	}
	return "", nil
}

func TestIsCorrectTextSimilarityExactMatch(t *testing.T) {
	assert.True(t, isCorrect(MMLU, "1945", "1945"))
}

func TestIsCorrectTextSimilarityNumericSubstring(t *testing.T) {
	assert.True(t, isCorrect(GSM8K, "the answer is 30", "30"))
}

func TestIsCorrectTextSimilarityShortAnswerRequiresAllWords(t *testing.T) {
	assert.False(t, isCorrect(ARC, "ice is frozen water", "ice less dense"))
}

func TestIsCorrectCodeRequiresReturnAndLoop(t *testing.T) {
	userCode := "def f(nums):\n    total = 0\n    for n in nums:\n        total += n\n    return total"
	correctCode := "def sum_list(nums):\n    total = 0\n    for n in nums:\n        total += n\n    return total"
	assert.True(t, isCorrect(HumanEval, userCode, correctCode))
}

func TestIsCorrectCodeRejectsMissingReturn(t *testing.T) {
	assert.False(t, isCorrect(HumanEval, "def f(nums): pass", "def f(nums):\n    return sum(nums)"))
}

func TestRunComprehensiveComputesWeightedOverallScore(t *testing.T) {
	answers := map[string]string{
		"What is the time complexity of binary search in a sorted array?": "O(log n)",
		"What is the speed of light in vacuum?":                           "3.0 x 10^8 m/s",
	}
	runner := New(mapAnswerer{answers: answers}, zap.NewNop())

	report, err := runner.RunComprehensive(context.Background())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, report.OverallScore, 0.0)
	assert.LessOrEqual(t, report.OverallScore, 1.0)
	assert.Contains(t, report.Results, MMLU)
}

func TestHealthScoreClippedAtOne(t *testing.T) {
	report := Report{
		OverallScore:   1.0,
		SOTAComparison: map[Suite]float64{MMLU: 1.2, ARC: 1.1},
	}
	assert.Equal(t, 1.0, HealthScore(report))
}

func TestAnalyzeTrendsStableWithLessThanTwoReports(t *testing.T) {
	runner := New(mapAnswerer{}, zap.NewNop())
	trends := runner.AnalyzeTrends()
	assert.Equal(t, Stable, trends.PerformanceTrend)
}

func TestShouldTriggerTrainingOnLowHealth(t *testing.T) {
	assert.True(t, ShouldTriggerTraining(TrendAnalysis{PerformanceTrend: Stable}, 0.5))
}

func TestShouldTriggerTrainingOnDecliningTrend(t *testing.T) {
	assert.True(t, ShouldTriggerTraining(TrendAnalysis{PerformanceTrend: Declining}, 0.95))
}
