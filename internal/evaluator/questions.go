package evaluator

import (
	"fmt"

	"qaengine/internal/knowledge"
)

// QuestionType classifies the kind of answer a SelfQuestion expects,
// which in turn tunes how heavily actionability should weigh in its
// quality score.
type QuestionType int

const (
	Definition QuestionType = iota
	Explanation
	Comparison
	Application
	Problem
	Analysis
)

// SelfQuestion is one question the evaluator poses to the engine about
// its own knowledge base.
type SelfQuestion struct {
	Question           string
	Domain             knowledge.Domain
	ComplexityLevel    int
	ExpectedAnswerType QuestionType
}

// questionsForNode generates the definition/explanation/application
// triple for every node, plus a comparison question when the node has a
// related concept to contrast against.
func questionsForNode(node *knowledge.Node, domain knowledge.Domain) []SelfQuestion {
	questions := []SelfQuestion{
		{Question: fmt.Sprintf("What is %s?", node.Topic), Domain: domain, ComplexityLevel: 3, ExpectedAnswerType: Definition},
		{Question: fmt.Sprintf("How does %s work?", node.Topic), Domain: domain, ComplexityLevel: 5, ExpectedAnswerType: Explanation},
		{Question: fmt.Sprintf("How can I use %s in practice?", node.Topic), Domain: domain, ComplexityLevel: 6, ExpectedAnswerType: Application},
	}
	if len(node.RelatedConcepts) > 0 {
		questions = append(questions, SelfQuestion{
			Question:           fmt.Sprintf("What is the difference between %s and %s?", node.Topic, node.RelatedConcepts[0]),
			Domain:             domain,
			ComplexityLevel:    7,
			ExpectedAnswerType: Comparison,
		})
	}
	return questions
}

// metaQuestions are fixed questions about the engine itself, not tied to
// any particular knowledge node.
func metaQuestions() []SelfQuestion {
	return []SelfQuestion{
		{Question: "How many knowledge domains do I have?", Domain: knowledge.Philosophy, ComplexityLevel: 2, ExpectedAnswerType: Definition},
		{Question: "What is my primary function?", Domain: knowledge.Philosophy, ComplexityLevel: 2, ExpectedAnswerType: Definition},
	}
}

// startupQuestions builds the minimal question set used on the first
// boot phase: one definition question per domain (first five domains
// only) plus the meta-questions, so the evaluator has something to chew
// on immediately without waiting on a full knowledge-base sweep.
func startupQuestions(store *knowledge.Store) []SelfQuestion {
	var out []SelfQuestion
	domains := knowledge.AllDomains()
	if len(domains) > 5 {
		domains = domains[:5]
	}
	for _, d := range domains {
		nodes := store.QueryByDomain(d)
		if len(nodes) == 0 {
			continue
		}
		out = append(out, SelfQuestion{
			Question:           fmt.Sprintf("What is %s?", nodes[0].Topic),
			Domain:             d,
			ComplexityLevel:    3,
			ExpectedAnswerType: Definition,
		})
	}
	out = append(out, metaQuestions()...)
	return out
}

// fullQuestionSet builds the comprehensive question set used by the
// second boot phase: the per-node question set for up to two nodes in
// every domain, plus meta-questions.
func fullQuestionSet(store *knowledge.Store) []SelfQuestion {
	var out []SelfQuestion
	for _, d := range knowledge.AllDomains() {
		nodes := store.QueryByDomain(d)
		if len(nodes) > 2 {
			nodes = nodes[:2]
		}
		for _, n := range nodes {
			out = append(out, questionsForNode(n, d)...)
		}
	}
	out = append(out, metaQuestions()...)
	return out
}
