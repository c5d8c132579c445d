package config

import (
	"github.com/kelseyhightower/envconfig"
)

var singleConfig *Config = nil

type Config struct {
	Service     *svcConfig
	LLM         *llmConfig
	Checkpoints *checkpointConfig
}

type svcConfig struct {
	Address        string `envconfig:"RESUME_ANALYZER_ADDRESS" default:":8080"`
	MetricsAddress string `envconfig:"RESUME_ANALYZER_METRICS_ADDRESS" default:":8081"`
	LogLevel       string `envconfig:"RESUME_ANALYZER_LOG_LEVEL" default:"info"`
}

type llmConfig struct {
	APIKey      string  `envconfig:"OPENAI_API_KEY" default:""`
	BaseURL     string  `envconfig:"RESUME_ANALYZER_LLM_BASE_URL" default:""`
	Model       string  `envconfig:"RESUME_ANALYZER_LLM_MODEL" default:"gpt-4o"`
	Temperature float64 `envconfig:"RESUME_ANALYZER_LLM_TEMPERATURE" default:"0.2"`
	MaxTokens   int64   `envconfig:"RESUME_ANALYZER_LLM_MAX_TOKENS" default:"2000"`
}

type checkpointConfig struct {
	// Empty means a per-process directory under the system temp root.
	Directory string `envconfig:"RESUME_ANALYZER_CHECKPOINT_DIR" default:""`
}

func New() (*Config, error) {
	if singleConfig == nil {
		singleConfig = new(Config)
		if err := envconfig.Process("", singleConfig); err != nil {
			return nil, err
		}
	}
	return singleConfig, nil
}
