package evaluator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"qaengine/internal/knowledge"
)

type stubAnswerer struct {
	answer string
	err    error
}

func (a stubAnswerer) Answer(_ context.Context, _ string, _ knowledge.Domain) (string, error) {
	return a.answer, a.err
}

func TestRelevanceScoreRewardsTermOverlap(t *testing.T) {
	q := SelfQuestion{Question: "What is recursion?", ExpectedAnswerType: Definition}
	score := relevanceScore(q, "Recursion is a function calling itself to solve smaller subproblems.")
	assert.Greater(t, score, 0.5)
}

func TestRelevanceScoreNeutralWithNoKeyTerms(t *testing.T) {
	q := SelfQuestion{Question: "What is it?"}
	score := relevanceScore(q, "Some unrelated answer text.")
	assert.Equal(t, 0.5, score)
}

func TestCompletenessScorePenalizesEmptyAnswer(t *testing.T) {
	q := SelfQuestion{ComplexityLevel: 3}
	assert.Equal(t, 0.0, completenessScore(q, ""))
}

func TestActionabilityScoreLowerForProblemQuestions(t *testing.T) {
	answer := "Use this approach: try the technique, apply the method, consider the example."
	problem := actionabilityScore(SelfQuestion{ExpectedAnswerType: Problem}, answer)
	definition := actionabilityScore(SelfQuestion{ExpectedAnswerType: Definition}, answer)
	assert.Less(t, problem, definition)
}

func TestFactualAccuracyPenalizesUncertainty(t *testing.T) {
	certain := factualAccuracyScore("The algorithm is a sorting method that contains comparisons.")
	uncertain := factualAccuracyScore("I'm not sure, but it might possibly be unclear.")
	assert.Greater(t, certain, uncertain)
}

func TestEvaluateWeightsSubscoresCorrectly(t *testing.T) {
	q := SelfQuestion{Question: "What is recursion?", ComplexityLevel: 3, ExpectedAnswerType: Definition}
	quality := evaluate(q, "Recursion is a function that calls itself repeatedly to solve a problem.")
	expected := quality.RelevanceScore*0.25 + quality.CompletenessScore*0.20 +
		quality.ActionabilityScore*0.25 + quality.ClarityScore*0.15 + quality.FactualAccuracy*0.15
	assert.InDelta(t, expected, quality.OverallScore, 0.0001)
}

func TestEvaluateOneEnqueuesFollowUpOnLowScore(t *testing.T) {
	store := knowledge.New()
	ev := New(store, stubAnswerer{answer: "no."}, zap.NewNop())

	q := SelfQuestion{Question: "What is quantum entanglement?", ComplexityLevel: 8, ExpectedAnswerType: Explanation}
	ev.evaluateOne(context.Background(), q)

	assert.NotEmpty(t, ev.queue)
	assert.Len(t, ev.History(), 1)
}

func TestImprovementSuggestionsAllClearWhenQualityGood(t *testing.T) {
	quality := ResponseQuality{
		RelevanceScore: 0.9, CompletenessScore: 0.9, ActionabilityScore: 0.9,
		ClarityScore: 0.9, FactualAccuracy: 0.9,
	}
	suggestions := improvementSuggestions(SelfQuestion{}, quality)
	assert.Len(t, suggestions, 1)
}
