// Package candidates implements the CandidateGenerator: up to ten answer
// candidates per query from the strategies in Enumeration, each strategy
// independent, side-effect free, and yielding zero or more candidates.
package candidates

import (
	"context"
	"fmt"
	"strings"

	"qaengine/internal/knowledge"
	"qaengine/internal/oracle"
)

const analogicalMinLength = 50

// Generator produces candidates from a KnowledgeStore, optionally handing
// off to a TextOracle for the AnalogicalReasoning strategy.
type Generator struct {
	store  *knowledge.Store
	oracle oracle.TextOracle
}

// New returns a Generator. oracle may be nil, in which case
// AnalogicalReasoning yields no candidates.
func New(store *knowledge.Store, textOracle oracle.TextOracle) *Generator {
	return &Generator{store: store, oracle: textOracle}
}

// Generate applies every strategy in Enumeration order and returns the
// concatenation of their candidates, capped at ten total.
func (g *Generator) Generate(ctx context.Context, query string) []AnswerCandidate {
	var out []AnswerCandidate

	for _, strategy := range Enumeration {
		select {
		case <-ctx.Done():
			return out
		default:
		}

		var produced []AnswerCandidate
		switch strategy {
		case DirectMatch:
			produced = g.directMatch(query)
		case SemanticMatch:
			produced = g.semanticMatch(query)
		case ConceptExpansion:
			produced = g.conceptExpansion(query)
		case DomainSearch:
			produced = g.domainSearch(query)
		case KeywordFusion:
			produced = g.keywordFusion(query)
		case ContextualInference:
			produced = g.contextualInference(query)
		case AnalogicalReasoning:
			produced = g.analogicalReasoning(ctx, query)
		case CrossDomainSearch:
			produced = g.crossDomainSearch(query)
		case SyntheticGeneration:
			produced = g.syntheticGeneration(query)
		case FallbackGeneric:
			produced = []AnswerCandidate{g.fallbackGeneric(query)}
		}
		out = append(out, produced...)
	}

	if len(out) > 10 {
		out = out[:10]
	}
	return out
}

func nodeSourceCandidate(node *knowledge.Node, confidence float64, strategy Strategy) AnswerCandidate {
	return AnswerCandidate{
		Content:    node.Content,
		SourceIDs:  []string{node.ID},
		Confidence: confidence,
		Strategy:   strategy,
	}
}

// directMatch takes the top-3 exact lookups from the store.
func (g *Generator) directMatch(query string) []AnswerCandidate {
	results, err := g.store.Query(query)
	if err != nil || len(results) == 0 {
		return nil
	}
	if len(results) > 3 {
		results = results[:3]
	}
	out := make([]AnswerCandidate, 0, len(results))
	for i, r := range results {
		node, ok := g.store.Get(r.ID)
		if !ok {
			continue
		}
		out = append(out, nodeSourceCandidate(node, 0.9-float64(i)*0.1, DirectMatch))
	}
	return out
}

// semanticMatch broadens the query with related concepts from the top
// direct hit and takes the top-2.
func (g *Generator) semanticMatch(query string) []AnswerCandidate {
	results, err := g.store.Query(query)
	if err != nil || len(results) == 0 {
		return nil
	}

	broadened := query
	if node, ok := g.store.Get(results[0].ID); ok && len(node.RelatedConcepts) > 0 {
		broadened = query + " " + strings.Join(node.RelatedConcepts, " ")
	}

	broadResults, err := g.store.Query(broadened)
	if err != nil || len(broadResults) == 0 {
		return nil
	}
	if len(broadResults) > 2 {
		broadResults = broadResults[:2]
	}

	out := make([]AnswerCandidate, 0, len(broadResults))
	for i, r := range broadResults {
		node, ok := g.store.Get(r.ID)
		if !ok {
			continue
		}
		out = append(out, nodeSourceCandidate(node, 0.8-float64(i)*0.1, SemanticMatch))
	}
	return out
}

// conceptExpansion re-queries for each extracted key concept and wraps the
// result with "Regarding X: ...".
func (g *Generator) conceptExpansion(query string) []AnswerCandidate {
	var out []AnswerCandidate
	for _, concept := range ExtractKeyConcepts(query) {
		results, err := g.store.Query(concept)
		if err != nil || len(results) == 0 {
			continue
		}
		node, ok := g.store.Get(results[0].ID)
		if !ok {
			continue
		}
		out = append(out, AnswerCandidate{
			Content:    fmt.Sprintf("Regarding %s: %s", concept, node.Content),
			SourceIDs:  []string{node.ID},
			Confidence: 0.7,
			Strategy:   ConceptExpansion,
		})
	}
	return out
}

// domainSearch classifies the query to a domain and pulls the most
// relevant node from that domain.
func (g *Generator) domainSearch(query string) []AnswerCandidate {
	domain := InferDomain(g.store, query)
	nodes := g.store.QueryByDomain(domain)
	if len(nodes) == 0 {
		return nil
	}

	best := nodes[0]
	bestScore := -1.0
	for _, n := range nodes {
		score := relevanceOverlap(query, n.Content)
		if score > bestScore {
			bestScore = score
			best = n
		}
	}
	return []AnswerCandidate{nodeSourceCandidate(best, 0.6, DomainSearch)}
}

// keywordFusion re-queries with each individual keyword and takes the
// first hit.
func (g *Generator) keywordFusion(query string) []AnswerCandidate {
	for _, kw := range ExtractKeywords(query) {
		results, err := g.store.Query(kw)
		if err != nil || len(results) == 0 {
			continue
		}
		node, ok := g.store.Get(results[0].ID)
		if !ok {
			continue
		}
		return []AnswerCandidate{nodeSourceCandidate(node, 0.5, KeywordFusion)}
	}
	return nil
}

var questionFormPrefixes = []string{"what is ", "what's ", "how does ", "how do ", "explain "}

// contextualInference normalises question forms, re-queries, and falls
// back to trying each token separately if there is no direct match.
func (g *Generator) contextualInference(query string) []AnswerCandidate {
	normalized := strings.ToLower(query)
	for _, prefix := range questionFormPrefixes {
		normalized = strings.TrimPrefix(normalized, prefix)
	}
	normalized = strings.TrimSuffix(strings.TrimSpace(normalized), "?")
	normalized = strings.TrimSuffix(strings.TrimSpace(normalized), "work")
	normalized = strings.TrimSpace(normalized)

	if results, err := g.store.Query(normalized); err == nil && len(results) > 0 {
		node, ok := g.store.Get(results[0].ID)
		if ok {
			confidence := 0.6
			if contentMatchesConcept(node.Content, normalized) {
				confidence = 0.8
			}
			return []AnswerCandidate{nodeSourceCandidate(node, confidence, ContextualInference)}
		}
	}

	for _, tok := range strings.Fields(normalized) {
		if results, err := g.store.Query(tok); err == nil && len(results) > 0 {
			node, ok := g.store.Get(results[0].ID)
			if ok {
				return []AnswerCandidate{nodeSourceCandidate(node, 0.6, ContextualInference)}
			}
		}
	}
	return nil
}

// contentMatchesConcept reports whether at least half of concept's words
// appear in content.
func contentMatchesConcept(content, concept string) bool {
	conceptWords := strings.Fields(strings.ToLower(concept))
	if len(conceptWords) == 0 {
		return false
	}
	contentLower := strings.ToLower(content)
	matching := 0
	for _, w := range conceptWords {
		if strings.Contains(contentLower, w) {
			matching++
		}
	}
	return float64(matching)/float64(len(conceptWords)) >= 0.5
}

// analogicalReasoning hands off to the TextOracle; it accepts the
// response only if it returns more than analogicalMinLength characters.
func (g *Generator) analogicalReasoning(ctx context.Context, query string) []AnswerCandidate {
	if g.oracle == nil || !oracle.Supports(g.oracle, oracle.CapabilityGeneral) {
		return nil
	}
	response, err := g.oracle.Continue(ctx, fmt.Sprintf("Explain using an analogy: %s", query))
	if err != nil || len(response) <= analogicalMinLength {
		return nil
	}
	return []AnswerCandidate{{
		Content:    response,
		SourceIDs:  nil,
		Confidence: 0.7,
		Strategy:   AnalogicalReasoning,
	}}
}

// crossDomainSearch queries the related domains of the inferred domain.
func (g *Generator) crossDomainSearch(query string) []AnswerCandidate {
	domain := InferDomain(g.store, query)
	var out []AnswerCandidate
	for _, related := range knowledge.RelatedDomains(domain) {
		nodes := g.store.QueryByDomain(related)
		if len(nodes) == 0 {
			continue
		}
		out = append(out, nodeSourceCandidate(nodes[0], 0.4, CrossDomainSearch))
	}
	return out
}

// syntheticGeneration concatenates the first sentences of two or more
// nodes that share the query's domain and at least one query keyword.
func (g *Generator) syntheticGeneration(query string) []AnswerCandidate {
	domain := InferDomain(g.store, query)
	nodes := g.store.QueryByDomain(domain)
	keywords := ExtractKeywords(query)

	var matching []*knowledge.Node
	for _, n := range nodes {
		contentLower := strings.ToLower(n.Content)
		for _, kw := range keywords {
			if strings.Contains(contentLower, kw) {
				matching = append(matching, n)
				break
			}
		}
	}
	if len(matching) < 2 {
		return nil
	}

	var sentences []string
	var sources []string
	for _, n := range matching {
		sentences = append(sentences, firstSentence(n.Content))
		sources = append(sources, n.ID)
	}

	return []AnswerCandidate{{
		Content:    strings.Join(sentences, ". "),
		SourceIDs:  sources,
		Confidence: 0.6,
		Strategy:   SyntheticGeneration,
	}}
}

func firstSentence(content string) string {
	if idx := strings.IndexByte(content, '.'); idx >= 0 {
		return strings.TrimSpace(content[:idx])
	}
	return strings.TrimSpace(content)
}

// fallbackGeneric is always produced. It names the inferred domain and
// suggests nearby concepts.
func (g *Generator) fallbackGeneric(query string) AnswerCandidate {
	domain := InferDomain(g.store, query)
	nodes := g.store.QueryByDomain(domain)

	var suggestion string
	if len(nodes) > 0 {
		suggestion = fmt.Sprintf(" You might look into %q.", nodes[0].Topic)
	}

	return AnswerCandidate{
		Content:    fmt.Sprintf("I don't have a precise answer for that, but it looks related to %s.%s", domain, suggestion),
		SourceIDs:  nil,
		Confidence: 0.2,
		Strategy:   FallbackGeneric,
	}
}

// relevanceOverlap is a lightweight lexical-overlap helper shared by
// strategies that need to pick the best of several same-domain nodes.
func relevanceOverlap(query, content string) float64 {
	queryWords := strings.Fields(strings.ToLower(query))
	contentLower := strings.ToLower(content)
	if len(queryWords) == 0 {
		return 0
	}
	matches := 0
	for _, w := range queryWords {
		if strings.Contains(contentLower, w) {
			matches++
		}
	}
	return float64(matches) / float64(len(queryWords))
}
