package selector

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qaengine/internal/candidates"
	"qaengine/internal/knowledge"
)

type stubGenerator struct {
	candidates []candidates.AnswerCandidate
}

func (g stubGenerator) Generate(_ context.Context, _ string) []candidates.AnswerCandidate {
	return g.candidates
}

func TestAnswerPicksArgmax(t *testing.T) {
	store := knowledge.New()
	gen := stubGenerator{candidates: []candidates.AnswerCandidate{
		{Content: "javascript closures capture scope", Confidence: 1.0, Strategy: candidates.DirectMatch},
		{Content: "irrelevant filler text about nothing", Confidence: 1.0, Strategy: candidates.FallbackGeneric},
	}}
	sel := New(store, gen)

	result, err := sel.Answer(context.Background(), "javascript closures", knowledge.ComputerScience)
	require.NoError(t, err)
	assert.Equal(t, candidates.DirectMatch, result.Answer.Strategy)
}

func TestAnswerFallsBackBelowFloor(t *testing.T) {
	store := knowledge.New()
	gen := stubGenerator{candidates: []candidates.AnswerCandidate{
		{Content: "totally unrelated content", Confidence: 0.01, Strategy: candidates.CrossDomainSearch},
		{Content: "I don't have a precise answer for that.", Confidence: 1.0, Strategy: candidates.FallbackGeneric},
	}}
	sel := New(store, gen)

	result, err := sel.Answer(context.Background(), "javascript closures", knowledge.ComputerScience)
	require.NoError(t, err)
	assert.Equal(t, candidates.FallbackGeneric, result.Answer.Strategy)
}

func TestAnswerErrorsOnNoCandidates(t *testing.T) {
	store := knowledge.New()
	sel := New(store, stubGenerator{})

	_, err := sel.Answer(context.Background(), "anything", knowledge.General)
	assert.Error(t, err)
}

func TestHistoryIsBounded(t *testing.T) {
	store := knowledge.New()
	gen := stubGenerator{candidates: []candidates.AnswerCandidate{
		{Content: "javascript closures capture scope", Confidence: 1.0, Strategy: candidates.DirectMatch},
	}}
	sel := New(store, gen)

	for i := 0; i < historyCapacity+10; i++ {
		_, err := sel.Answer(context.Background(), "javascript closures", knowledge.ComputerScience)
		require.NoError(t, err)
	}
	assert.Len(t, sel.History(), historyCapacity)
}

func TestMaybeLearnWritesBackHighConfidenceAnswers(t *testing.T) {
	store := knowledge.New()
	gen := stubGenerator{candidates: []candidates.AnswerCandidate{
		{Content: "javascript closures capture variables from scope", Confidence: 1.0, Strategy: candidates.DirectMatch},
	}}
	sel := New(store, gen)

	before := store.Stats().TotalNodes
	_, err := sel.Answer(context.Background(), "javascript closures", knowledge.ComputerScience)
	require.NoError(t, err)
	after := store.Stats().TotalNodes
	assert.Greater(t, after, before)
}
