// Package evaluator implements the SelfEvaluator: the engine asks itself
// questions about its own knowledge base, scores its own answers, and
// enqueues follow-up questions when a score falls short, closing a
// continuous self-critique loop.
package evaluator

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"qaengine/internal/knowledge"
)

const (
	historyCapacity    = 1000
	followUpThreshold  = 0.6
	fullSetBootDelay   = 10 * time.Second
	evaluationInterval = 5 * time.Second
)

// Answerer is the subset of the engine's query surface the evaluator
// needs: given a question, produce the text it would show a user.
type Answerer interface {
	Answer(ctx context.Context, query string, domain knowledge.Domain) (string, error)
}

// Record is one evaluated question/answer pair.
type Record struct {
	Question    SelfQuestion
	Answer      string
	Quality     ResponseQuality
	Timestamp   time.Time
	Suggestions []string
}

// Evaluator runs the continuous self-evaluation loop described for the
// engine: it pulls questions off an internal queue, answers them via the
// wired Answerer, scores the answer, records the outcome, and pushes a
// follow-up question back onto the queue when quality is low.
type Evaluator struct {
	store    *knowledge.Store
	answerer Answerer
	log      *zap.Logger

	mu        sync.Mutex
	queue     []SelfQuestion
	history   []Record
	running   bool
	topicGain map[string]float64
}

// New returns an Evaluator wired to store and answerer.
func New(store *knowledge.Store, answerer Answerer, log *zap.Logger) *Evaluator {
	return &Evaluator{
		store:     store,
		answerer:  answerer,
		log:       log,
		topicGain: make(map[string]float64),
	}
}

// StartBackground seeds the question queue with the lightweight startup
// set, launches the full-question-set generation after a short delay,
// and starts the continuous evaluation loop. It is idempotent: a second
// call while already running is a no-op.
func (e *Evaluator) StartBackground(ctx context.Context) {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return
	}
	e.running = true
	e.mu.Unlock()

	e.enqueue(startupQuestions(e.store)...)
	e.log.Info("self-evaluator started", zap.Int("startup_questions", len(e.queue)))

	go func() {
		select {
		case <-ctx.Done():
			return
		case <-time.After(fullSetBootDelay):
		}
		full := fullQuestionSet(e.store)
		e.enqueue(full...)
		e.log.Info("self-evaluator expanded question set", zap.Int("total_questions", len(full)))
	}()

	go e.continuousEvaluationLoop(ctx)
}

func (e *Evaluator) enqueue(questions ...SelfQuestion) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.queue = append(e.queue, questions...)
}

func (e *Evaluator) dequeue() (SelfQuestion, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.queue) == 0 {
		return SelfQuestion{}, false
	}
	q := e.queue[0]
	e.queue = e.queue[1:]
	return q, true
}

// continuousEvaluationLoop drains the question queue on a fixed tick,
// evaluating one question per tick so the work stays O(1) per cycle
// rather than bursting.
func (e *Evaluator) continuousEvaluationLoop(ctx context.Context) {
	ticker := time.NewTicker(evaluationInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			question, ok := e.dequeue()
			if !ok {
				continue
			}
			e.evaluateOne(ctx, question)
		}
	}
}

func (e *Evaluator) evaluateOne(ctx context.Context, question SelfQuestion) {
	answer, err := e.answerer.Answer(ctx, question.Question, question.Domain)
	if err != nil {
		e.log.Warn("self-evaluation answer failed", zap.String("question", question.Question), zap.Error(err))
		return
	}

	quality := evaluate(question, answer)
	suggestions := improvementSuggestions(question, quality)

	record := Record{
		Question:    question,
		Answer:      answer,
		Quality:     quality,
		Timestamp:   time.Now(),
		Suggestions: suggestions,
	}
	e.record(record)

	if quality.OverallScore < followUpThreshold {
		e.enqueue(SelfQuestion{
			Question:           question.Question,
			Domain:              question.Domain,
			ComplexityLevel:     question.ComplexityLevel,
			ExpectedAnswerType:  question.ExpectedAnswerType,
		})
	}

	e.trackImprovement(question.Question, quality.OverallScore)
}

func (e *Evaluator) record(r Record) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.history = append(e.history, r)
	if len(e.history) > historyCapacity {
		e.history = e.history[len(e.history)-historyCapacity:]
	}
}

// trackImprovement records the latest overall score for a question text
// in topicGain. It keeps no earlier score and computes no delta, and no
// other component reads topicGain.
func (e *Evaluator) trackImprovement(topic string, score float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, seen := e.topicGain[topic]; !seen {
		e.topicGain[topic] = score
		return
	}
	e.topicGain[topic] = score
}

// History returns a copy of the bounded evaluation log, oldest first.
func (e *Evaluator) History() []Record {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Record, len(e.history))
	copy(out, e.history)
	return out
}

// Stats summarises the evaluation history for the engine's get_stats
// operation.
type Stats struct {
	TotalEvaluations int
	AverageScore     float64
	QueueDepth       int
}

// EvaluationStats computes aggregate numbers over the bounded history.
func (e *Evaluator) EvaluationStats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.history) == 0 {
		return Stats{QueueDepth: len(e.queue)}
	}

	var total float64
	for _, r := range e.history {
		total += r.Quality.OverallScore
	}

	return Stats{
		TotalEvaluations: len(e.history),
		AverageScore:     total / float64(len(e.history)),
		QueueDepth:       len(e.queue),
	}
}
