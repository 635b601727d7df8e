package candidates

import (
	"strings"

	"qaengine/internal/knowledge"
)

// domainKeywordRule is one clause of the deterministic domain classifier:
// if the query contains any of Keywords, it infers Domain. Rules are tried
// in order; the first match wins.
type domainKeywordRule struct {
	keywords []string
	domain   knowledge.Domain
}

var domainClassifier = []domainKeywordRule{
	{[]string{"javascript", "python", "react", "programming", "code", "computer", "software", "algorithm", "node.js", "rust", "go ", "c++"}, knowledge.ComputerScience},
	{[]string{"quantum", "physics", "energy", "relativity", "einstein", "gravity", "mechanics", "thermodynamics"}, knowledge.Physics},
	{[]string{"sun", "star", "space", "planet", "black hole", "galaxy", "universe", "solar", "nebula"}, knowledge.Astronomy},
	{[]string{"math", "calculus", "algebra", "geometry", "statistics", "equation"}, knowledge.Mathematics},
	{[]string{"war", "history", "hitler", "napoleon", "empire", "ancient"}, knowledge.History},
	{[]string{"love", "emotion", "feeling", "relationship", "psychology", "mental health", "happiness", "sadness", "attachment", "romance", "intimacy"}, knowledge.Psychology},
	{[]string{"consciousness", "mind", "thinking", "philosophy", "ethics", "meaning"}, knowledge.Philosophy},
	{[]string{"music", "compose", "song", "art", "painting", "sculpture"}, knowledge.Music},
	{[]string{"economics", "market", "business", "finance", "money", "trade"}, knowledge.Economics},
	{[]string{"biology", "cell", "dna", "evolution", "medicine", "health"}, knowledge.Biology},
	{[]string{"chemistry", "molecule", "atom", "element", "compound", "reaction"}, knowledge.Chemistry},
}

// InferDomain classifies a query to a single domain via the deterministic
// keyword table. If no rule fires, it falls back to the top store hit's
// domain, and if the store has nothing either, defaults to
// ComputerScience.
func InferDomain(store *knowledge.Store, query string) knowledge.Domain {
	lower := strings.ToLower(query)
	for _, rule := range domainClassifier {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.domain
			}
		}
	}

	if store != nil {
		if results, err := store.Query(query); err == nil && len(results) > 0 {
			if node, ok := store.Get(results[0].ID); ok {
				return node.Domain
			}
		}
	}

	return knowledge.ComputerScience
}

// ExtractKeyConcepts returns query tokens of length > 3, excluding
// wh-words and articles, lowercased.
func ExtractKeyConcepts(query string) []string {
	excluded := map[string]struct{}{
		"what": {}, "how": {}, "why": {}, "when": {}, "where": {},
		"the": {}, "a": {}, "an": {},
	}
	var out []string
	for _, w := range strings.Fields(query) {
		lw := strings.ToLower(w)
		if len(lw) <= 3 {
			continue
		}
		if _, skip := excluded[lw]; skip {
			continue
		}
		out = append(out, lw)
	}
	return out
}

// ExtractKeywords returns every query token of length > 2, lowercased.
func ExtractKeywords(query string) []string {
	var out []string
	for _, w := range strings.Fields(query) {
		lw := strings.ToLower(w)
		if len(lw) > 2 {
			out = append(out, lw)
		}
	}
	return out
}
