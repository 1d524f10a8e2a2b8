package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/staffmatch/internal/ai"
	"github.com/spigell/staffmatch/internal/ai/gemini"
	"github.com/spigell/staffmatch/internal/generator"
	"github.com/spigell/staffmatch/internal/logger"
	"github.com/spigell/staffmatch/internal/matching"
	"github.com/spigell/staffmatch/internal/secrets"
	"github.com/spigell/staffmatch/internal/staff"
)

// setup builds the logger and reads the configuration shared by all commands.
func setup() (*zap.Logger, *Config) {
	l, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		l.Fatal("getting a config", zap.Error(err))
	}

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(redacted(config), "", "  ")
	l.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	return l, config
}

func redacted(config *Config) Config {
	out := *config
	if config.AI != nil && config.AI.Gemini != nil && config.AI.Gemini.APIKey != "" {
		aiCfg := *config.AI
		gem := *config.AI.Gemini
		gem.APIKey = "***"
		aiCfg.Gemini = &gem
		out.AI = &aiCfg
	}
	return out
}

// loadDataset reads the dataset file, or generates a synthetic one when no path is set.
func loadDataset(path string, l *zap.Logger) (*staff.Dataset, error) {
	if strings.TrimSpace(path) == "" {
		dataset := generator.NewSeeded(0).Dataset(generator.DefaultEmployees, generator.DefaultProjects)
		l.Info("no dataset configured, using generated data",
			zap.Int("employees", dataset.Employees.Len()),
			zap.Int("projects", dataset.Projects.Len()),
		)
		return dataset, nil
	}

	dataset, err := staff.LoadDataset(path)
	if err != nil {
		return nil, err
	}

	l.Info("dataset loaded",
		zap.String("filename", path),
		zap.Int("employees", dataset.Employees.Len()),
		zap.Int("projects", dataset.Projects.Len()),
	)
	return dataset, nil
}

// newAssistant returns the AI fallback policy. A missing or unusable provider
// yields a fallback without assistant rather than an error.
func newAssistant(ctx context.Context, cfg *AIConfig, l *zap.Logger) *ai.Fallback {
	assistant, err := newGeminiAssistant(ctx, cfg, l)
	if err != nil {
		l.Warn("ai features are disabled", zap.Error(err))
		return ai.NewFallback(nil, l)
	}
	return ai.NewFallback(assistant, l)
}

func newGeminiAssistant(ctx context.Context, cfg *AIConfig, l *zap.Logger) (ai.Assistant, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("ai is disabled in the configuration")
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != gemini.Provider {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	if cfg.Gemini == nil {
		cfg.Gemini = &GeminiConfig{}
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		File:  cfg.Gemini.APIKeyFile,
		Env:   []string{"GEMINI_API_KEY", "API_KEY"},
		Value: cfg.Gemini.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set GEMINI_API_KEY, GEMINI_API_KEY_FILE or ai.gemini.api-key-file)", err)
	}

	gen, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, l)
	if err != nil {
		return nil, err
	}

	assistantLogger := logger.WithCommonFields(l, gemini.Provider, gen.Model())
	return gemini.NewAssistant(gen, assistantLogger, cfg.Gemini.MaxLogLength), nil
}

func logResults(l *zap.Logger, project staff.Project, results []matching.Result) {
	l.Info("ranked employees",
		append(logger.ProjectFields(project.ID, project.Name),
			zap.Strings("required_skills", project.RequiredSkills),
			zap.Stringer("required_level", project.RequiredLevel),
			zap.Int("count", len(results)),
		)...,
	)

	for i, r := range results {
		l.Info("match", logger.ResultFields(i+1, r)...)
	}
}
