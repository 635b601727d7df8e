// Package scoring implements the RelevanceScorer: a pure function from
// (query, candidate) to a relevance score in [0, 1], including the
// cross-domain contamination penalty that keeps e.g. a physics node from
// scoring well against a history query just because both mention "energy".
package scoring

import (
	"strings"

	"qaengine/internal/candidates"
	"qaengine/internal/knowledge"
)

// contaminationPenalty is applied when two domains' keyword sets collide
// but the content is not actually about the query's subject.
const contaminationPenalty = 0.1

// Score computes base_relevance * keyword_ratio * method_bonus *
// confidence for one candidate against one query, with a hard zero when
// no query keyword appears in the candidate content at all.
func Score(query string, candidate candidates.AnswerCandidate, domain knowledge.Domain) float64 {
	queryWords := keywordsOf(query)
	if len(queryWords) == 0 {
		return 0
	}

	matches := 0
	for _, w := range queryWords {
		if strings.Contains(strings.ToLower(candidate.Content), w) {
			matches++
		}
	}
	if matches == 0 {
		return 0
	}

	keywordRatio := float64(matches) / float64(len(queryWords))
	baseRelevance := contentRelevance(queryWords, candidate.Content)
	methodBonus := candidate.Strategy.Prior()

	score := baseRelevance * keywordRatio * methodBonus * candidate.Confidence

	if seemsUnrelated(query, candidate.Content, domain) {
		score *= contaminationPenalty
	}

	return score
}

// keywordsOf lowercases and splits on whitespace, dropping stopwords.
func keywordsOf(s string) []string {
	var out []string
	for _, w := range strings.Fields(s) {
		lw := strings.ToLower(w)
		if isStopword(lw) {
			continue
		}
		out = append(out, lw)
	}
	return out
}

// contentRelevance is the mean, over query words, of the best per-word
// match against content: 1.0 for an exact word match, 0.5 for a
// substring match in either direction, 0 otherwise.
func contentRelevance(queryWords []string, content string) float64 {
	contentWords := strings.Fields(strings.ToLower(content))
	contentLower := strings.ToLower(content)

	var total float64
	for _, qw := range queryWords {
		best := 0.0
		for _, cw := range contentWords {
			if cw == qw {
				best = 1.0
				break
			}
		}
		if best < 1.0 && (strings.Contains(contentLower, qw) || strings.Contains(qw, contentLower)) {
			best = 0.5
		}
		total += best
	}
	return total / float64(len(queryWords))
}

// domainPair is an unordered pair of conflicting domains used by
// seemsUnrelated's hardcoded contamination rules.
type domainPair struct {
	a, b []string
}

var contaminationRules = []domainPair{
	{[]string{"programming", "code", "javascript", "python", "algorithm"}, []string{"history", "war", "napoleon", "hitler", "ancient"}},
	{[]string{"physics", "quantum", "relativity"}, []string{"chemistry", "molecule", "compound"}},
	{[]string{"computer", "software", "programming"}, []string{"hitler", "napoleon", "war"}},
	{[]string{"javascript", "python", "programming"}, []string{"thermodynamics", "mechanics"}},
}

// seemsUnrelated reports whether the query and content belong to
// colliding keyword families that usually signal contamination rather
// than a genuine cross-domain match. Psychology-vs-literature ("love")
// gets its own escape hatch via isDirectlyRelevantLoveContent, mirroring
// the source's special case for romantic content that genuinely is about
// love rather than merely mentioning it.
func seemsUnrelated(query, content string, domain knowledge.Domain) bool {
	lowerQuery := strings.ToLower(query)
	lowerContent := strings.ToLower(content)

	if domain == knowledge.Chemistry && strings.Contains(lowerQuery, "atom") {
		return false
	}

	for _, rule := range contaminationRules {
		queryHitsA := anyContains(lowerQuery, rule.a)
		contentHitsB := anyContains(lowerContent, rule.b)
		queryHitsB := anyContains(lowerQuery, rule.b)
		contentHitsA := anyContains(lowerContent, rule.a)
		if (queryHitsA && contentHitsB) || (queryHitsB && contentHitsA) {
			return true
		}
	}

	psychologyWords := []string{"love", "emotion", "feeling", "relationship", "attachment", "romance"}
	literatureWords := []string{"shakespeare", "sonnet", "poem", "novel", "play", "literature"}
	if (anyContains(lowerQuery, psychologyWords) && anyContains(lowerContent, literatureWords)) ||
		(anyContains(lowerQuery, literatureWords) && anyContains(lowerContent, psychologyWords)) {
		return !isDirectlyRelevantLoveContent(lowerContent)
	}

	return false
}

// isDirectlyRelevantLoveContent special-cases Shakespeare-style content:
// a summary that merely lists love among several "themes include" is not
// directly relevant, but content that actually analyses or defines love
// is.
func isDirectlyRelevantLoveContent(lowerContent string) bool {
	if strings.Contains(lowerContent, "themes include") {
		return false
	}
	phrases := []string{"love is", "love represents", "analysis of love", "explores love"}
	return anyContains(lowerContent, phrases)
}

func anyContains(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}
