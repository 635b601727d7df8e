// Package selector implements the Selector: argmax over scored
// candidates, with a floor below which only FallbackGeneric survives,
// plus the bounded selection history that feeds the engine's online
// learning loop.
package selector

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"qaengine/internal/candidates"
	"qaengine/internal/knowledge"
	"qaengine/internal/scoring"
)

// relevanceFloor is the minimum score a non-fallback candidate must clear
// to be selectable at all.
const relevanceFloor = 0.05

// historyCapacity bounds the in-memory selection log; past this, the
// oldest record is evicted to make room for the newest.
const historyCapacity = 1000

// learnRelevanceThreshold and learnConceptMatchThreshold gate which
// selections are fed back into the store as reinforcement: only
// selections confident enough, and grounded enough in the source
// content, are worth learning from.
const (
	learnRelevanceThreshold    = 0.3
	learnConceptMatchThreshold = 0.5
)

// Selection is one recorded query/answer outcome.
type Selection struct {
	Query     string
	Answer    candidates.AnswerCandidate
	Score     float64
	AllScored []ScoredCandidate
}

// ScoredCandidate pairs a candidate with its computed relevance score.
type ScoredCandidate struct {
	Candidate candidates.AnswerCandidate
	Score     float64
}

// Generator is the subset of candidates.Generator the Selector needs.
type Generator interface {
	Generate(ctx context.Context, query string) []candidates.AnswerCandidate
}

// Selector picks the best candidate for a query and records the outcome.
type Selector struct {
	store     *knowledge.Store
	generator Generator

	mu      sync.Mutex
	history []Selection
}

// New returns a Selector wired to store and generator.
func New(store *knowledge.Store, generator Generator) *Selector {
	return &Selector{store: store, generator: generator}
}

// Answer generates candidates for query, scores them, and selects the
// argmax, substituting the fallback candidate when nothing clears the
// relevance floor. The chosen selection is appended to history and, when
// it is confident and well grounded, fed back into the store.
func (s *Selector) Answer(ctx context.Context, query string, domain knowledge.Domain) (Selection, error) {
	generated := s.generator.Generate(ctx, query)
	if len(generated) == 0 {
		return Selection{}, fmt.Errorf("selector: no candidates generated for query %q", query)
	}

	scored := make([]ScoredCandidate, 0, len(generated))
	for _, c := range generated {
		c.RelevanceScore = scoring.Score(query, c, domain)
		scored = append(scored, ScoredCandidate{Candidate: c, Score: c.RelevanceScore})
	}

	best := argmax(scored)
	if best.Score < relevanceFloor && best.Candidate.Strategy != candidates.FallbackGeneric {
		if fb, ok := findFallback(scored); ok {
			best = fb
		}
	}

	selection := Selection{Query: query, Answer: best.Candidate, Score: best.Score, AllScored: scored}
	s.record(selection)
	s.maybeLearn(domain, selection)

	return selection, nil
}

func argmax(scored []ScoredCandidate) ScoredCandidate {
	best := scored[0]
	for _, c := range scored[1:] {
		if c.Score > best.Score {
			best = c
		}
	}
	return best
}

func findFallback(scored []ScoredCandidate) (ScoredCandidate, bool) {
	for _, c := range scored {
		if c.Candidate.Strategy == candidates.FallbackGeneric {
			return c, true
		}
	}
	return ScoredCandidate{}, false
}

func (s *Selector) record(sel Selection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, sel)
	if len(s.history) > historyCapacity {
		s.history = s.history[len(s.history)-historyCapacity:]
	}
}

// maybeLearn writes the selected answer back into the store as a new
// node when it is confident enough and grounded enough in its own
// content to be worth remembering, closing the self-improvement loop
// described for the engine's online learning hook.
func (s *Selector) maybeLearn(domain knowledge.Domain, sel Selection) {
	if sel.Score < learnRelevanceThreshold {
		return
	}
	if conceptMatchRatio(sel.Query, sel.Answer.Content) < learnConceptMatchThreshold {
		return
	}
	_, _ = s.store.InsertWithConfidence(domain, sel.Query, sel.Answer.Content, nil, sel.Score)
}

// conceptMatchRatio is the fraction of query words literally present in
// the answer content, used as a cheap groundedness check before writing
// a learned node back into the store.
func conceptMatchRatio(query, content string) float64 {
	queryWords := strings.Fields(strings.ToLower(query))
	if len(queryWords) == 0 {
		return 0
	}
	contentLower := strings.ToLower(content)
	matches := 0
	for _, w := range queryWords {
		if strings.Contains(contentLower, w) {
			matches++
		}
	}
	return float64(matches) / float64(len(queryWords))
}

// History returns a copy of the bounded selection log, oldest first.
func (s *Selector) History() []Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Selection, len(s.history))
	copy(out, s.history)
	return out
}
