package cmd

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/swipe-recommender/internal/ai"
	"github.com/spigell/swipe-recommender/internal/ai/gemini"
	"github.com/spigell/swipe-recommender/internal/logger"
	"github.com/spigell/swipe-recommender/internal/matching"
	"github.com/spigell/swipe-recommender/internal/recommend"
	"github.com/spigell/swipe-recommender/internal/secrets"
	"github.com/spigell/swipe-recommender/internal/swipe"
)

type source interface {
	recommend.JobSource
	recommend.WorkerSource
}

// setup builds the logger and config shared by every command.
func setup() (*zap.Logger, *Config) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Debug("starting with config", zap.Any("config", config))

	return logger, config
}

func newService(ctx context.Context, config *Config, log *zap.Logger) (*recommend.Service, error) {
	src, err := newSource(config.Upstream, log)
	if err != nil {
		return nil, err
	}

	filters := matching.DefaultFilters(log)
	for _, name := range config.Matching.DisabledFilters {
		matching.DisableByName(filters, strings.TrimSpace(name), "disabled in configuration")
	}
	for _, status := range matching.Describe(filters) {
		log.Info("filter", zap.String("name", status.Name), zap.Bool("enabled", status.Enabled), zap.String("reason", status.Reason))
	}

	opts := []recommend.Option{recommend.WithEngine(matching.NewEngine(log, filters...))}
	if config.AI.Enabled {
		pitcher, err := newPitcher(ctx, config.AI, log)
		if err != nil {
			log.Warn("skipping AI pitch", zap.Error(err))
		} else {
			opts = append(opts, recommend.WithPitcher(pitcher))
		}
	}

	return recommend.NewService(log, src, src, opts...), nil
}

func newSource(cfg *UpstreamConfig, log *zap.Logger) (source, error) {
	if dir := strings.TrimSpace(cfg.DataDir); dir != "" {
		log.Info("reading snapshots from disk", zap.String("dir", dir))
		return swipe.NewFileSource(log, dir), nil
	}

	token, err := secrets.Optional(secrets.Source{
		Name: "upstream token",
		File: cfg.TokenFile,
		Env:  envPrefix + "_UPSTREAM_TOKEN",
	})
	if err != nil {
		return nil, err
	}

	client := swipe.New(log, cfg.URL, token, cfg.Timeout)
	if cfg.UserAgent != "" {
		client.UserAgent = cfg.UserAgent
	}

	log.Info("using upstream api", zap.String("url", client.APIURL))
	return client, nil
}

func newPitcher(ctx context.Context, cfg *AIConfig, log *zap.Logger) (ai.Pitcher, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.Gemini.APIKeyFile,
		Env:  "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY)", err)
	}

	aiLogger := logger.WithCommonFields(log, "gemini", cfg.Gemini.Model)

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries,
		aiLogger.With(zap.Int("ai_max_retries", cfg.Gemini.MaxRetries)))
	if err != nil {
		return nil, err
	}

	aiLogger.Info("ai pitches enabled", zap.String("model", generator.Model()))

	return gemini.NewPitcher(generator, aiLogger, cfg.Gemini.MaxLogLength), nil
}
