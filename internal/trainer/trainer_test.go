package trainer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"qaengine/internal/benchmark"
)

type stubAnswerer struct{}

func (stubAnswerer) Answer(_ context.Context, _ string) (string, error) { return "yes", nil }

type stubFocusedTrainer struct {
	generalCalls    int
	focusedCalls    []benchmark.Suite
	injectedBundles []Bundle
}

func (s *stubFocusedTrainer) TrainGeneral(_ context.Context) error {
	s.generalCalls++
	return nil
}

func (s *stubFocusedTrainer) TrainFocused(_ context.Context, suite benchmark.Suite) error {
	s.focusedCalls = append(s.focusedCalls, suite)
	return nil
}

func (s *stubFocusedTrainer) InjectKnowledge(_ context.Context, bundles []Bundle) error {
	s.injectedBundles = append(s.injectedBundles, bundles...)
	return nil
}

func TestIdentifyWeakAreasOrdersByDeficit(t *testing.T) {
	tr := &Trainer{config: Config{TargetScores: map[benchmark.Suite]float64{
		benchmark.MMLU:      0.8,
		benchmark.HellaSwag: 0.9,
	}}}
	scores := map[benchmark.Suite]float64{benchmark.MMLU: 0.7, benchmark.HellaSwag: 0.5}
	weak := tr.identifyWeakAreas(scores)
	require.Len(t, weak, 2)
	assert.Equal(t, benchmark.HellaSwag, weak[0])
}

func TestCalculateImprovementAveragesDeltas(t *testing.T) {
	old := map[benchmark.Suite]float64{benchmark.MMLU: 0.5, benchmark.ARC: 0.6}
	new := map[benchmark.Suite]float64{benchmark.MMLU: 0.6, benchmark.ARC: 0.7}
	assert.InDelta(t, 0.1, calculateImprovement(old, new), 0.0001)
}

func TestTargetsAchievedFalseWhenAnyBelowTarget(t *testing.T) {
	tr := &Trainer{config: Config{TargetScores: map[benchmark.Suite]float64{benchmark.MMLU: 0.8}}}
	assert.False(t, tr.targetsAchieved(map[benchmark.Suite]float64{benchmark.MMLU: 0.7}))
	assert.True(t, tr.targetsAchieved(map[benchmark.Suite]float64{benchmark.MMLU: 0.9}))
}

func TestStartSessionRespectsDailyQuota(t *testing.T) {
	runner := benchmark.New(stubAnswerer{}, zap.NewNop())
	focused := &stubFocusedTrainer{}
	config := DefaultConfig()
	config.MaxSessionsPerDay = 1
	config.MaxTrainingCycles = 1
	config.TrainingCyclesPerEvaluation = 1

	tr := New(runner, focused, config, zap.NewNop())

	_, err := tr.StartSession(context.Background())
	require.NoError(t, err)

	_, err = tr.StartSession(context.Background())
	assert.ErrorIs(t, err, ErrDailyQuotaExhausted)
}

func TestStartSessionRunsFocusedTrainingOnWeakAreas(t *testing.T) {
	runner := benchmark.New(stubAnswerer{}, zap.NewNop())
	focused := &stubFocusedTrainer{}
	config := DefaultConfig()
	config.MaxTrainingCycles = 1
	config.TrainingCyclesPerEvaluation = 1

	tr := New(runner, focused, config, zap.NewNop())
	session, err := tr.StartSession(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, session.TotalTrainingCycles)
}

func TestRunFocusedTrainingInjectsCuratedBundlesForWeakSuites(t *testing.T) {
	focused := &stubFocusedTrainer{}
	tr := &Trainer{trainer: focused}

	err := tr.runFocusedTraining(context.Background(), []benchmark.Suite{benchmark.GSM8K})
	require.NoError(t, err)

	assert.Equal(t, CuratedBundles(benchmark.GSM8K), focused.injectedBundles)
	assert.Equal(t, []benchmark.Suite{benchmark.GSM8K}, focused.focusedCalls)
}
