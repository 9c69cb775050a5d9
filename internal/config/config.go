package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv    = "VENTII_CONFIG"
	openAIAPIKeyEnv  = "OPENAI_API_KEY"
	openAIModelEnv   = "VENTII_MODEL"
	runHistoryDirEnv = "VENTII_RUN_HISTORY_DIR"
	logLevelEnv      = "VENTII_LOG_LEVEL"
)

// Config holds high-level settings required across the application.
type Config struct {
	OpenAI   OpenAIConfig   `yaml:"openai"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Storage  StorageConfig  `yaml:"storage"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// OpenAIConfig defines how to contact the vision model API.
type OpenAIConfig struct {
	Endpoint    string  `yaml:"endpoint"`
	Model       string  `yaml:"model"`
	APIKey      string  `yaml:"apiKey"`
	Temperature float64 `yaml:"temperature"`
}

// PipelineConfig tunes orchestration behavior.
type PipelineConfig struct {
	// Attempts is the per-stage retry budget.
	Attempts int `yaml:"attempts"`
	// ReferenceDate overrides the "today" date (ISO "YYYY-MM-DD") used
	// for relative-time resolution. Empty means wall clock.
	ReferenceDate string `yaml:"referenceDate"`
}

// StorageConfig locates the run-history tree and its index.
type StorageConfig struct {
	RunHistoryDir string `yaml:"runHistoryDir"`
	IndexPath     string `yaml:"indexPath"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(openAIAPIKeyEnv); v != "" {
		c.OpenAI.APIKey = v
	}

	if v := os.Getenv(openAIModelEnv); v != "" {
		c.OpenAI.Model = v
	}

	if v := os.Getenv(runHistoryDirEnv); v != "" {
		c.Storage.RunHistoryDir = v
	}

	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.OpenAI.Endpoint != "" {
		base.OpenAI.Endpoint = override.OpenAI.Endpoint
	}
	if override.OpenAI.Model != "" {
		base.OpenAI.Model = override.OpenAI.Model
	}
	if override.OpenAI.APIKey != "" {
		base.OpenAI.APIKey = override.OpenAI.APIKey
	}
	if override.OpenAI.Temperature != 0 {
		base.OpenAI.Temperature = override.OpenAI.Temperature
	}

	if override.Pipeline.Attempts != 0 {
		base.Pipeline.Attempts = override.Pipeline.Attempts
	}
	if override.Pipeline.ReferenceDate != "" {
		base.Pipeline.ReferenceDate = override.Pipeline.ReferenceDate
	}

	if override.Storage.RunHistoryDir != "" {
		base.Storage.RunHistoryDir = override.Storage.RunHistoryDir
	}
	if override.Storage.IndexPath != "" {
		base.Storage.IndexPath = override.Storage.IndexPath
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	return base
}

func defaultConfig() Config {
	return Config{
		OpenAI: OpenAIConfig{
			Endpoint:    "https://api.openai.com/v1/chat/completions",
			Model:       "gpt-4o",
			APIKey:      "",
			Temperature: 0,
		},
		Pipeline: PipelineConfig{
			Attempts: 3,
		},
		Storage: StorageConfig{
			RunHistoryDir: "run_history",
			IndexPath:     "run_history/runs.db",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
