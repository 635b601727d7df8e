// Package config loads the engine's top-level configuration: timing
// intervals, training targets, and safety constraints, read from an
// optional .env file with environment-variable overrides.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"qaengine/internal/benchmark"
	"qaengine/internal/scheduler"
)

// Config is the engine's full runtime configuration.
type Config struct {
	EvaluationInterval           time.Duration
	BenchmarkEvaluationFrequency time.Duration
	TrainingTriggerThreshold     float64
	MaxTrainingSessionsPerDay    int
	AutoTrainingEnabled          bool
	PerformanceMonitoringEnabled bool
	WorkerPoolSize               int
	QueueCapacity                int
	ResultCacheCapacity          int
	SuiteTargets                 map[benchmark.Suite]float64
	Safety                       scheduler.SafetyConstraints
}

// Default returns the engine's built-in defaults.
func Default() Config {
	return Config{
		EvaluationInterval:           6 * time.Hour,
		BenchmarkEvaluationFrequency: time.Hour,
		TrainingTriggerThreshold:     0.05,
		MaxTrainingSessionsPerDay:    4,
		AutoTrainingEnabled:          true,
		PerformanceMonitoringEnabled: true,
		WorkerPoolSize:               4,
		QueueCapacity:                1000,
		ResultCacheCapacity:          1000,
		SuiteTargets: map[benchmark.Suite]float64{
			benchmark.MMLU:       0.80,
			benchmark.HellaSwag:  0.85,
			benchmark.ARC:        0.85,
			benchmark.TruthfulQA: 0.50,
			benchmark.GSM8K:      0.75,
			benchmark.HumanEval:  0.60,
			benchmark.BIGBench:   0.70,
		},
		Safety: scheduler.DefaultSafetyConstraints(),
	}
}

// Load reads envFilePath (if it exists) into the process environment via
// godotenv, then builds a Config from defaults overridden by any
// recognised environment variables. A missing env file is not an error:
// the engine falls back to its built-in defaults.
func Load(envFilePath string) (Config, error) {
	if envFilePath != "" {
		if _, err := os.Stat(envFilePath); err == nil {
			if err := godotenv.Load(envFilePath); err != nil {
				return Config{}, err
			}
		}
	}

	cfg := Default()

	if v, ok := durationFromEnv("EVALUATION_INTERVAL"); ok {
		cfg.EvaluationInterval = v
	}
	if v, ok := durationFromEnv("BENCHMARK_EVALUATION_FREQUENCY"); ok {
		cfg.BenchmarkEvaluationFrequency = v
	}
	if v, ok := floatFromEnv("TRAINING_TRIGGER_THRESHOLD"); ok {
		cfg.TrainingTriggerThreshold = v
	}
	if v, ok := intFromEnv("MAX_TRAINING_SESSIONS_PER_DAY"); ok {
		cfg.MaxTrainingSessionsPerDay = v
	}
	if v, ok := boolFromEnv("AUTO_TRAINING_ENABLED"); ok {
		cfg.AutoTrainingEnabled = v
	}
	if v, ok := boolFromEnv("PERFORMANCE_MONITORING_ENABLED"); ok {
		cfg.PerformanceMonitoringEnabled = v
	}
	if v, ok := intFromEnv("WORKER_POOL_SIZE"); ok {
		cfg.WorkerPoolSize = v
	}
	if v, ok := intFromEnv("QUEUE_CAPACITY"); ok {
		cfg.QueueCapacity = v
	}
	if v, ok := intFromEnv("RESULT_CACHE_CAPACITY"); ok {
		cfg.ResultCacheCapacity = v
	}

	return cfg, nil
}

func durationFromEnv(key string) (time.Duration, bool) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return 0, false
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, false
	}
	return d, true
}

func floatFromEnv(key string) (float64, bool) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func intFromEnv(key string) (int, bool) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func boolFromEnv(key string) (bool, bool) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
