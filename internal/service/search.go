package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"openkey/internal/config"
	"openkey/internal/model"
	"openkey/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ErrEmptyPrompt is returned when a search or parse request has no text
var ErrEmptyPrompt = errors.New("prompt is required")

// SearchService handles search business logic
type SearchService struct {
	catalog  repository.Catalog
	intent   *IntentParser
	ranker   *Ranker
	aiClient AIClient
	cfg      config.SearchConfig
	logger   *logrus.Logger
}

// NewSearchService creates a new search service. aiClient is only needed
// for EmbedCatalog and may be nil.
func NewSearchService(
	catalog repository.Catalog,
	intentParser *IntentParser,
	ranker *Ranker,
	aiClient AIClient,
	cfg config.SearchConfig,
	logger *logrus.Logger,
) *SearchService {
	return &SearchService{
		catalog:  catalog,
		intent:   intentParser,
		ranker:   ranker,
		aiClient: aiClient,
		cfg:      cfg,
		logger:   logger,
	}
}

// Search parses the prompt, ranks the whole catalog against it, and returns
// the top results
func (s *SearchService) Search(ctx context.Context, req *model.SearchRequest) (*model.SearchResponse, error) {
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return nil, ErrEmptyPrompt
	}
	startTime := time.Now()

	intent := s.intent.Parse(ctx, prompt)

	projects, err := s.catalog.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	results := s.ranker.Rank(projects, intent)
	if limit := s.limit(req.Limit); len(results) > limit {
		results = results[:limit]
	}

	searchID := uuid.NewString()
	took := time.Since(startTime).Milliseconds()

	s.logger.WithFields(logrus.Fields{
		"search_id": searchID,
		"results":   len(results),
		"areas":     len(intent.PreferredAreas),
		"took_ms":   took,
	}).Info("Search completed")

	if searchLog, ok := s.catalog.(repository.SearchLogger); ok {
		entry := repository.SearchLogEntry{
			SearchID:   searchID,
			Query:      prompt,
			Intent:     intent,
			ProjectIDs: make([]string, len(results)),
			TookMs:     took,
		}
		for i, r := range results {
			entry.ProjectIDs[i] = r.ID
		}
		// non-blocking; the request context may be gone by the time this runs
		go func() {
			if err := searchLog.LogSearch(context.Background(), entry); err != nil {
				s.logger.WithError(err).WithField("search_id", entry.SearchID).Warn("Failed to log search")
			}
		}()
	}

	return &model.SearchResponse{
		SearchID: searchID,
		Intent:   intent,
		Results:  results,
		Took:     took,
	}, nil
}

// ParseIntent extracts an intent without ranking
func (s *SearchService) ParseIntent(ctx context.Context, prompt string) (*model.UserIntent, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, ErrEmptyPrompt
	}
	return s.intent.Parse(ctx, prompt), nil
}

// GetProject retrieves a single project by id
func (s *SearchService) GetProject(ctx context.Context, id string) (*model.Project, error) {
	return s.catalog.GetProject(ctx, id)
}

// SimilarProjects returns the nearest neighbours of a project by description
// embedding
func (s *SearchService) SimilarProjects(ctx context.Context, id string, limit int) ([]model.SimilarProject, error) {
	vs, ok := s.catalog.(repository.VectorStore)
	if !ok {
		return nil, repository.ErrUnsupported
	}
	return vs.SimilarProjects(ctx, id, s.limit(limit))
}

// UpdateEmbeddings stores externally computed embeddings
func (s *SearchService) UpdateEmbeddings(ctx context.Context, items []model.EmbeddingItem) (int, []string, error) {
	vs, ok := s.catalog.(repository.VectorStore)
	if !ok {
		return 0, nil, repository.ErrUnsupported
	}
	success, errs := vs.BatchUpdateEmbeddings(ctx, items)
	return success, errs, nil
}

// EmbedCatalog computes description embeddings for every project with the
// AI client and stores them
func (s *SearchService) EmbedCatalog(ctx context.Context) (int, []string, error) {
	vs, ok := s.catalog.(repository.VectorStore)
	if !ok {
		return 0, nil, repository.ErrUnsupported
	}
	if s.aiClient == nil || !s.aiClient.IsEnabled() {
		return 0, nil, ErrAIDisabled
	}

	projects, err := s.catalog.ListProjects(ctx)
	if err != nil {
		return 0, nil, fmt.Errorf("list projects: %w", err)
	}

	texts := make([]string, len(projects))
	for i, p := range projects {
		texts[i] = p.Name + ". " + p.Description()
	}

	vectors, err := s.aiClient.CreateEmbeddings(ctx, texts)
	if err != nil {
		return 0, nil, fmt.Errorf("create embeddings: %w", err)
	}
	if len(vectors) != len(projects) {
		return 0, nil, fmt.Errorf("expected %d embeddings, got %d", len(projects), len(vectors))
	}

	items := make([]model.EmbeddingItem, len(projects))
	for i, p := range projects {
		items[i] = model.EmbeddingItem{ProjectID: p.ID, Embedding: vectors[i]}
	}

	success, errs := vs.BatchUpdateEmbeddings(ctx, items)
	s.logger.WithFields(logrus.Fields{
		"success": success,
		"failed":  len(errs),
	}).Info("Catalog embeddings updated")
	return success, errs, nil
}

func (s *SearchService) limit(requested int) int {
	if requested <= 0 {
		return s.cfg.DefaultLimit
	}
	if requested > s.cfg.MaxLimit {
		return s.cfg.MaxLimit
	}
	return requested
}
