package candidates

// AnswerCandidate is one proposed answer produced by a single strategy.
type AnswerCandidate struct {
	Content        string
	SourceIDs      []string
	Confidence     float64
	RelevanceScore float64
	Strategy       Strategy
}
