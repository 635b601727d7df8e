package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"qaengine/internal/candidates"
	"qaengine/internal/knowledge"
)

func TestScoreZeroOnNoKeywordOverlap(t *testing.T) {
	c := candidates.AnswerCandidate{
		Content:    "The mitochondria is the powerhouse of the cell.",
		Confidence: 1.0,
		Strategy:   candidates.DirectMatch,
	}
	score := Score("javascript closures", c, knowledge.ComputerScience)
	assert.Zero(t, score)
}

func TestScoreRewardsExactMatch(t *testing.T) {
	c := candidates.AnswerCandidate{
		Content:    "JavaScript closures capture variables from their enclosing scope.",
		Confidence: 1.0,
		Strategy:   candidates.DirectMatch,
	}
	score := Score("javascript closures", c, knowledge.ComputerScience)
	assert.Greater(t, score, 0.5)
}

func TestScorePenalizesCrossDomainContamination(t *testing.T) {
	programming := candidates.AnswerCandidate{
		Content:    "Napoleon's code of programming conquest shaped French war history.",
		Confidence: 1.0,
		Strategy:   candidates.DirectMatch,
	}
	contaminated := Score("programming algorithm", programming, knowledge.ComputerScience)

	clean := candidates.AnswerCandidate{
		Content:    "Programming algorithms describe step by step computation.",
		Confidence: 1.0,
		Strategy:   candidates.DirectMatch,
	}
	cleanScore := Score("programming algorithm", clean, knowledge.ComputerScience)

	assert.Less(t, contaminated, cleanScore)
}

func TestSeemsUnrelatedLoveVsShakespeareSummary(t *testing.T) {
	summary := "Romeo and Juliet is a play by Shakespeare. Themes include love, fate, and family conflict."
	assert.True(t, seemsUnrelated("love relationship", summary, knowledge.Literature))
}

func TestSeemsUnrelatedLoveAnalysisIsDirectlyRelevant(t *testing.T) {
	analysis := "This analysis of love examines how attachment forms between partners."
	assert.False(t, seemsUnrelated("love attachment", analysis, knowledge.Psychology))
}

func TestSeemsUnrelatedChemistryAtomEscapeHatch(t *testing.T) {
	content := "Quantum physics describes relativity and gravity at small scales."
	assert.False(t, seemsUnrelated("atom structure", content, knowledge.Chemistry))
}

func TestContentRelevanceAveragesPerWordBestMatch(t *testing.T) {
	score := contentRelevance([]string{"love", "xyz123"}, "Love is a complex emotion.")
	assert.InDelta(t, 0.5, score, 0.01)
}
