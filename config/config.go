/**
 * Copyright (c) 2018, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

// Package config loads the configuration of the schemadiff service and CLI.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/botobag/schemadiff/diff"
	"github.com/botobag/schemadiff/graphql"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Environment variables that override values from the configuration file
const (
	EnvAddr       = "SCHEMADIFF_ADDR"
	EnvLogLevel   = "SCHEMADIFF_LOG_LEVEL"
	EnvAPIKey     = "OPENAI_API_KEY"
	EnvModel      = "OPENAI_MODEL"
	EnvBaseURL    = "OPENAI_BASE_URL"
	EnvSecretFile = "OPENAI_API_KEY_FILE"
)

// DefaultSecretFile is read for the API key when neither the configuration nor the environment
// provides one.
const DefaultSecretFile = "/run/secrets/openai_api_key"

// Config is the complete configuration.
type Config struct {
	Server   Server   `yaml:"server"`
	LLM      LLM      `yaml:"llm"`
	Logging  Logging  `yaml:"logging"`
	Defaults Defaults `yaml:"defaults"`
}

// Server configures the HTTP service.
type Server struct {
	Addr         string        `yaml:"addr" validate:"required"`
	ReadTimeout  time.Duration `yaml:"read_timeout" validate:"gt=0"`
	WriteTimeout time.Duration `yaml:"write_timeout" validate:"gt=0"`

	// MaxBodyBytes limits the size of request bodies.
	MaxBodyBytes int64 `yaml:"max_body_bytes" validate:"gt=0"`
}

// LLM configures the language-model collaborators.
type LLM struct {
	// APIKey may be empty; the language-model techniques are unavailable then.
	APIKey     string `yaml:"api_key"`
	SecretFile string `yaml:"secret_file"`
	BaseURL    string `yaml:"base_url" validate:"omitempty,url"`
	Model      string `yaml:"model" validate:"required"`

	DetectorTemperature   float32 `yaml:"detector_temperature" validate:"gte=0,lte=2"`
	SummarizerTemperature float32 `yaml:"summarizer_temperature" validate:"gte=0,lte=2"`
	MaxTokens             int     `yaml:"max_tokens" validate:"gt=0"`

	// RequestTimeout bounds every attempt of a request.
	RequestTimeout time.Duration `yaml:"request_timeout" validate:"gt=0"`
	MaxRetries     uint          `yaml:"max_retries" validate:"lte=10"`
	InitialBackoff time.Duration `yaml:"initial_backoff" validate:"gt=0"`
	MaxBackoff     time.Duration `yaml:"max_backoff" validate:"gtefield=InitialBackoff"`

	RequestsPerSecond float64 `yaml:"requests_per_second" validate:"gt=0"`
	Burst             int     `yaml:"burst" validate:"gt=0"`
}

// Enabled returns true if an API key is available.
func (llm LLM) Enabled() bool {
	return len(llm.APIKey) > 0
}

// Logging configures log/slog.
type Logging struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

// Defaults selects the techniques used when a request names none.
type Defaults struct {
	DiffTechnique    diff.Technique `yaml:"diff_technique" validate:"oneof=algorithmic llm"`
	SummaryTechnique diff.Technique `yaml:"summary_technique" validate:"oneof=algorithmic llm"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Server: Server{
			Addr:         ":8000",
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 2 * time.Minute,
			MaxBodyBytes: 1 << 20,
		},
		LLM: LLM{
			Model:                 "gpt-3.5-turbo",
			DetectorTemperature:   0,
			SummarizerTemperature: 0.3,
			MaxTokens:             4096,
			RequestTimeout:        60 * time.Second,
			MaxRetries:            3,
			InitialBackoff:        500 * time.Millisecond,
			MaxBackoff:            10 * time.Second,
			RequestsPerSecond:     2,
			Burst:                 2,
		},
		Logging: Logging{
			Level:  "info",
			Format: "text",
		},
		Defaults: Defaults{
			DiffTechnique:    diff.Algorithmic,
			SummaryTechnique: diff.Algorithmic,
		},
	}
}

var validate = validator.New()

// Load reads the configuration from the YAML file at path over the defaults, applies environment
// overrides and validates the result. An empty path skips the file.
func Load(path string) (Config, error) {
	config := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return config, graphql.NewError("cannot read configuration file", err, graphql.Op("config.Load"))
		}
		if err := yaml.Unmarshal(data, &config); err != nil {
			return config, graphql.NewError(fmt.Sprintf("cannot parse configuration file %s", path), err,
				graphql.Op("config.Load"))
		}
	}

	config.applyEnv(os.LookupEnv)
	config.LLM.loadSecret()

	if err := config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

// Validate checks the configuration.
func (config *Config) Validate() error {
	if err := validate.Struct(config); err != nil {
		return graphql.NewError("invalid configuration", err, graphql.Op("config.Validate"))
	}
	return nil
}

func (config *Config) applyEnv(lookup func(string) (string, bool)) {
	overrides := []struct {
		name   string
		target *string
	}{
		{EnvAddr, &config.Server.Addr},
		{EnvLogLevel, &config.Logging.Level},
		{EnvAPIKey, &config.LLM.APIKey},
		{EnvModel, &config.LLM.Model},
		{EnvBaseURL, &config.LLM.BaseURL},
		{EnvSecretFile, &config.LLM.SecretFile},
	}
	for _, override := range overrides {
		if value, ok := lookup(override.name); ok && value != "" {
			*override.target = value
		}
	}
}

// loadSecret reads the API key from the secret file when none is configured.
func (llm *LLM) loadSecret() {
	if llm.APIKey != "" {
		return
	}
	path := llm.SecretFile
	if path == "" {
		path = DefaultSecretFile
	}
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Debug("no API key for the language-model service", "secret_file", path)
		return
	}
	llm.APIKey = strings.TrimSpace(string(data))
	slog.Info("read the API key of the language-model service from a secret file", "secret_file", path)
}

// NewLogger creates a logger from the logging configuration.
func (logging Logging) NewLogger(w io.Writer) *slog.Logger {
	var level slog.Level
	switch logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	options := &slog.HandlerOptions{Level: level}
	if logging.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, options))
	}
	return slog.New(slog.NewTextHandler(w, options))
}
