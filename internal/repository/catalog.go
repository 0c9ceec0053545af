package repository

import (
	"context"
	"errors"

	"openkey/internal/model"
)

var (
	// ErrNotFound is returned when a project id is not in the catalog
	ErrNotFound = errors.New("project not found")
	// ErrUnsupported is returned when the active store lacks a capability,
	// such as vector search on the static catalog
	ErrUnsupported = errors.New("operation not supported by this catalog")
)

// Catalog is the read side every store provides
type Catalog interface {
	ListProjects(ctx context.Context) ([]model.Project, error)
	GetProject(ctx context.Context, id string) (*model.Project, error)
}

// SearchLogger records completed searches
type SearchLogger interface {
	LogSearch(ctx context.Context, entry SearchLogEntry) error
}

// VectorStore keeps description embeddings and answers nearest-neighbour
// queries over them
type VectorStore interface {
	BatchUpdateEmbeddings(ctx context.Context, items []model.EmbeddingItem) (int, []string)
	SimilarProjects(ctx context.Context, id string, limit int) ([]model.SimilarProject, error)
}

// SearchLogEntry is one row of the search log. Scores are not stored.
type SearchLogEntry struct {
	SearchID   string
	Query      string
	Intent     *model.UserIntent
	ProjectIDs []string
	TookMs     int64
}
