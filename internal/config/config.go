// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// #region config
// Config is the full process configuration for the evaluation pipeline.
type Config struct {
	DBPath     string `env:"PIPELINE_DB" envDefault:"evaluation.db"`
	PipelineID string `env:"PIPELINE_ID" envDefault:"default"`

	ScorerBaseURL string        `env:"SCORER_BASE_URL"`
	ScorerAPIKey  string        `env:"SCORER_API_KEY"`
	ScorerModel   string        `env:"SCORER_MODEL" envDefault:"gpt-4o-mini"`
	ScorerTimeout time.Duration `env:"SCORER_TIMEOUT" envDefault:"60s"`

	MaxRetries  int           `env:"MAX_STEP_RETRIES" envDefault:"3"`
	Concurrency int           `env:"SESSION_CONCURRENCY" envDefault:"4"`
	TraceTTL    time.Duration `env:"TRACE_TTL" envDefault:"720h"`

	Debug bool `env:"DEBUG" envDefault:"false"`
}
// #endregion config

// #region load
// Load parses configuration from the environment with defaults applied.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env config: %w", err)
	}
	return cfg, nil
}
// #endregion load
