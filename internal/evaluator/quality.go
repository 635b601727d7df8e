package evaluator

import (
	"strings"
)

// ResponseQuality is the five sub-scores plus their weighted overall
// score, each in [0, 1].
type ResponseQuality struct {
	RelevanceScore    float64
	CompletenessScore float64
	ActionabilityScore float64
	ClarityScore      float64
	FactualAccuracy   float64
	OverallScore      float64
}

var questionStopwords = map[string]struct{}{
	"what": {}, "how": {}, "why": {}, "when": {}, "where": {},
	"does": {}, "can": {}, "will": {}, "would": {}, "should": {},
}

// evaluate scores one answer against the question that prompted it,
// weighing relevance 0.25, completeness 0.20, actionability 0.25,
// clarity 0.15, and factual accuracy 0.15.
func evaluate(question SelfQuestion, answer string) ResponseQuality {
	relevance := relevanceScore(question, answer)
	completeness := completenessScore(question, answer)
	actionability := actionabilityScore(question, answer)
	clarity := clarityScore(answer)
	accuracy := factualAccuracyScore(answer)

	overall := relevance*0.25 + completeness*0.20 + actionability*0.25 + clarity*0.15 + accuracy*0.15

	return ResponseQuality{
		RelevanceScore:     relevance,
		CompletenessScore:  completeness,
		ActionabilityScore: actionability,
		ClarityScore:       clarity,
		FactualAccuracy:    accuracy,
		OverallScore:       overall,
	}
}

func relevanceScore(question SelfQuestion, answer string) float64 {
	answerLower := strings.ToLower(answer)

	var terms []string
	for _, w := range strings.Fields(strings.ToLower(question.Question)) {
		w = strings.Trim(w, "?.,!;:")
		if len(w) <= 3 {
			continue
		}
		if _, skip := questionStopwords[w]; skip {
			continue
		}
		terms = append(terms, w)
	}
	if len(terms) == 0 {
		return 0.5
	}

	matches := 0
	for _, t := range terms {
		if strings.Contains(answerLower, t) {
			matches++
		}
	}
	base := float64(matches) / float64(len(terms))

	bonus := 0.0
	if strings.HasPrefix(answerLower, terms[0]) ||
		strings.Contains(answerLower, "is a") ||
		strings.Contains(answerLower, "refers to") ||
		strings.Contains(answerLower, "involves") {
		bonus = 0.2
	}

	return clamp01(base + bonus)
}

func completenessScore(question SelfQuestion, answer string) float64 {
	wordCount := len(strings.Fields(answer))
	sentenceCount := len(strings.Split(answer, "."))

	expectedWords := 150
	switch {
	case question.ComplexityLevel <= 3:
		expectedWords = 30
	case question.ComplexityLevel <= 6:
		expectedWords = 60
	case question.ComplexityLevel <= 8:
		expectedWords = 100
	}

	var lengthScore float64
	switch {
	case wordCount == 0:
		lengthScore = 0
	case wordCount < expectedWords/2:
		lengthScore = float64(wordCount) / (float64(expectedWords) / 2.0)
	case wordCount > expectedWords*2:
		lengthScore = 0.8
	default:
		lengthScore = 1.0
	}

	structureBonus := 0.0
	if sentenceCount > 1 {
		structureBonus = 0.1
	}

	return clamp01(lengthScore + structureBonus)
}

var actionableIndicators = []string{
	"use", "apply", "implement", "try", "consider", "practice",
	"step", "method", "approach", "technique", "strategy",
	"example", "instance", "case", "application", "helpful",
	"useful", "practical", "real-world", "can", "will",
}

func actionabilityScore(question SelfQuestion, answer string) float64 {
	answerLower := strings.ToLower(answer)

	count := 0
	for _, indicator := range actionableIndicators {
		if strings.Contains(answerLower, indicator) {
			count++
		}
	}

	var expected float64
	switch question.ExpectedAnswerType {
	case Application:
		expected = 0.8
	case Problem:
		expected = 0.9
	case Explanation:
		expected = 0.6
	case Definition:
		expected = 0.3
	case Comparison:
		expected = 0.4
	case Analysis:
		expected = 0.5
	default:
		expected = 0.5
	}

	base := minFloat(float64(count)*0.1, 0.8)
	return minFloat(base/expected, 1.0)
}

func clarityScore(answer string) float64 {
	words := strings.Fields(answer)
	if len(words) == 0 {
		return 0
	}

	totalLen := 0
	for _, w := range words {
		totalLen += len(w)
	}
	avgWordLen := float64(totalLen) / float64(len(words))

	var sentences []string
	for _, s := range strings.Split(answer, ".") {
		if strings.TrimSpace(s) != "" {
			sentences = append(sentences, s)
		}
	}
	avgSentenceLen := float64(len(words))
	if len(sentences) > 0 {
		avgSentenceLen = float64(len(words)) / float64(len(sentences))
	}

	wordClarity := 1.0 - (avgWordLen-4.0)/8.0
	if avgWordLen > 8.0 {
		wordClarity = 0.5
	}
	sentenceClarity := 1.0 - (avgSentenceLen-10.0)/20.0
	if avgSentenceLen > 20.0 {
		sentenceClarity = 0.5
	}

	structureBonus := 0.0
	if strings.Contains(answer, "First") || strings.Contains(answer, "Additionally") || strings.Contains(answer, "Furthermore") {
		structureBonus = 0.1
	}

	return clamp01(wordClarity*0.4 + sentenceClarity*0.6 + structureBonus)
}

var uncertaintyIndicators = []string{"approximately", "about", "roughly", "estimated", "likely", "probably", "may", "might"}
var confidenceIndicators = []string{"is", "are", "was", "were", "consists", "contains", "includes"}
var problematicPatterns = []string{"i don't know", "i'm not sure", "unclear", "uncertain"}

func factualAccuracyScore(answer string) float64 {
	answerLower := strings.ToLower(answer)

	uncertainCount := countContains(answerLower, uncertaintyIndicators)
	confidentCount := countContains(answerLower, confidenceIndicators)
	problematicCount := countContains(answerLower, problematicPatterns)

	var base float64
	if confidentCount+uncertainCount == 0 {
		base = 0.7
	} else {
		base = float64(confidentCount) / float64(confidentCount+uncertainCount*2)
	}

	penalty := float64(problematicCount) * 0.2

	specificityBonus := 0.0
	if len(answer) > 100 && (strings.Contains(answerLower, "research") || strings.Contains(answerLower, "study")) {
		specificityBonus = 0.1
	}

	score := base - penalty + specificityBonus
	if score > 1.0 {
		return 1.0
	}
	if score < 0.1 {
		return 0.1
	}
	return score
}

func countContains(haystack string, needles []string) int {
	n := 0
	for _, needle := range needles {
		if strings.Contains(haystack, needle) {
			n++
		}
	}
	return n
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// improvementSuggestions mirrors the fixed-threshold suggestion rules:
// one line per sub-score that fell short, or a single all-clear line
// when nothing did.
func improvementSuggestions(question SelfQuestion, quality ResponseQuality) []string {
	var suggestions []string

	if quality.RelevanceScore < 0.6 {
		suggestions = append(suggestions, "Improve relevance: ensure the answer directly addresses the question asked")
	}
	if quality.CompletenessScore < 0.5 {
		suggestions = append(suggestions, "Improve completeness: provide more comprehensive information")
	}
	if quality.ActionabilityScore < 0.4 && (question.ExpectedAnswerType == Application || question.ExpectedAnswerType == Problem) {
		suggestions = append(suggestions, "Improve actionability: include practical steps or examples")
	}
	if quality.ClarityScore < 0.6 {
		suggestions = append(suggestions, "Improve clarity: use simpler language and shorter sentences")
	}
	if quality.FactualAccuracy < 0.7 {
		suggestions = append(suggestions, "Improve accuracy: verify facts and reduce uncertain language")
	}

	if len(suggestions) == 0 {
		suggestions = append(suggestions, "Response quality is good - continue current approach")
	}
	return suggestions
}
