package candidates

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qaengine/internal/knowledge"
)

func newTestStore(t *testing.T) *knowledge.Store {
	t.Helper()
	store := knowledge.New()
	_, err := store.Insert(knowledge.ComputerScience, "javascript closures",
		"JavaScript closures capture variables from their enclosing lexical scope.", nil)
	require.NoError(t, err)
	_, err = store.Insert(knowledge.ComputerScience, "python generators",
		"Python generators yield values lazily using the yield keyword.", nil)
	require.NoError(t, err)
	_, err = store.Insert(knowledge.Psychology, "love and attachment",
		"Love is a complex emotion tied to attachment and intimacy between people.", nil)
	require.NoError(t, err)
	return store
}

func TestGenerateProducesFallbackEvenWithNoMatches(t *testing.T) {
	store := knowledge.New()
	gen := New(store, nil)
	out := gen.Generate(context.Background(), "completely unrelated gibberish query")
	require.NotEmpty(t, out)

	foundFallback := false
	for _, c := range out {
		if c.Strategy == FallbackGeneric {
			foundFallback = true
		}
	}
	assert.True(t, foundFallback)
}

func TestDirectMatchReturnsTopHits(t *testing.T) {
	store := newTestStore(t)
	gen := New(store, nil)
	out := gen.directMatch("javascript closures")
	require.NotEmpty(t, out)
	assert.Equal(t, DirectMatch, out[0].Strategy)
	assert.Contains(t, out[0].Content, "closures")
}

func TestAnalogicalReasoningRequiresOracle(t *testing.T) {
	store := newTestStore(t)
	gen := New(store, nil)
	out := gen.analogicalReasoning(context.Background(), "explain recursion")
	assert.Empty(t, out)
}

func TestCrossDomainSearchUsesRelatedDomains(t *testing.T) {
	store := newTestStore(t)
	gen := New(store, nil)
	out := gen.crossDomainSearch("love and relationships")
	for _, c := range out {
		assert.Equal(t, CrossDomainSearch, c.Strategy)
	}
}

func TestGenerateCapsAtTenCandidates(t *testing.T) {
	store := newTestStore(t)
	gen := New(store, nil)
	out := gen.Generate(context.Background(), "javascript python love")
	assert.LessOrEqual(t, len(out), 10)
}
