package main

import (
	"fmt"

	"openkey/internal/repository"
	"openkey/internal/service"

	"github.com/sirupsen/logrus"
)

// app wires the catalog, AI client and search service from the loaded
// configuration.
type app struct {
	catalog  repository.Catalog
	postgres *repository.PostgresRepository
	aiClient *service.OpenAIClient
	search   *service.SearchService
}

func newApp() (*app, error) {
	a := &app{}

	if cfg.UsePostgres() {
		repo, err := repository.NewPostgresRepository(cfg.PostgreSQL)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		a.postgres = repo
		a.catalog = repo
		logger.Info("Serving catalog from PostgreSQL")
	} else {
		static, err := repository.LoadStaticCatalog(cfg.Catalog.Path)
		if err != nil {
			return nil, fmt.Errorf("load catalog: %w", err)
		}
		a.catalog = static
		logger.WithFields(logrus.Fields{
			"path":     catalogSource(),
			"projects": static.Len(),
		}).Info("Serving static catalog")
	}

	a.aiClient = service.NewOpenAIClient(&cfg.OpenAI, logger)
	if cfg.OpenAI.Enabled {
		logger.WithFields(logrus.Fields{
			"api_base":        cfg.OpenAI.APIBase,
			"chat_model":      cfg.OpenAI.ChatModel,
			"embedding_model": cfg.OpenAI.EmbeddingModel,
		}).Info("OpenAI client initialized")
	} else {
		logger.Warn("OpenAI is disabled, queries use the rule-based parser. Set OPENAI_API_KEY to enable it")
	}

	a.search = service.NewSearchService(
		a.catalog,
		service.NewIntentParser(a.aiClient, logger),
		service.NewRanker(cfg.Search.Workers),
		a.aiClient,
		cfg.Search,
		logger,
	)
	return a, nil
}

func (a *app) Close() {
	if a.postgres != nil {
		if err := a.postgres.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close database")
		}
	}
}

func (a *app) requirePostgres(command string) error {
	if a.postgres == nil {
		return fmt.Errorf("%s needs PostgreSQL: set DATABASE_URL", command)
	}
	return nil
}

func catalogSource() string {
	if cfg.Catalog.Path == "" {
		return "embedded"
	}
	return cfg.Catalog.Path
}
