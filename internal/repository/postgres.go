package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"openkey/internal/config"
	"openkey/internal/model"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

//go:embed schema.sql
var schemaSQL string

const projectColumns = `id, name, developer, lat, lon, price_aed, size_sqm, handover_month,
	amenities, key_highlights, short_desc, thumbnail_url, docs, nearby, geocode_precision`

// PostgresRepository serves the catalog from PostgreSQL and keeps project
// embeddings in a pgvector column
type PostgresRepository struct {
	db *sqlx.DB
}

var (
	_ Catalog      = (*PostgresRepository)(nil)
	_ SearchLogger = (*PostgresRepository)(nil)
	_ VectorStore  = (*PostgresRepository)(nil)
)

// NewPostgresRepository connects and configures the pool
func NewPostgresRepository(cfg config.PostgreSQLConfig) (*PostgresRepository, error) {
	db, err := sqlx.Connect("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(cfg.MaxIdleConnections)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(2 * time.Minute)

	return NewPostgresRepositoryFromDB(db), nil
}

// NewPostgresRepositoryFromDB wraps an existing handle
func NewPostgresRepositoryFromDB(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

// EnsureSchema creates the tables when they do not exist
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// ListProjects returns every project in insertion order
func (r *PostgresRepository) ListProjects(ctx context.Context) ([]model.Project, error) {
	var projects []model.Project
	query := `SELECT ` + projectColumns + ` FROM projects ORDER BY position`
	if err := r.db.SelectContext(ctx, &projects, query); err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// GetProject retrieves a single project by id
func (r *PostgresRepository) GetProject(ctx context.Context, id string) (*model.Project, error) {
	var p model.Project
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`
	if err := r.db.GetContext(ctx, &p, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get project %s: %w", id, err)
	}
	return &p, nil
}

// UpsertProjects inserts or replaces projects in one transaction
func (r *PostgresRepository) UpsertProjects(ctx context.Context, projects []model.Project) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareNamedContext(ctx, `
		INSERT INTO projects (`+projectColumns+`)
		VALUES (:id, :name, :developer, :lat, :lon, :price_aed, :size_sqm, :handover_month,
			:amenities, :key_highlights, :short_desc, :thumbnail_url, :docs, :nearby, :geocode_precision)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name, developer = EXCLUDED.developer,
			lat = EXCLUDED.lat, lon = EXCLUDED.lon,
			price_aed = EXCLUDED.price_aed, size_sqm = EXCLUDED.size_sqm,
			handover_month = EXCLUDED.handover_month, amenities = EXCLUDED.amenities,
			key_highlights = EXCLUDED.key_highlights, short_desc = EXCLUDED.short_desc,
			thumbnail_url = EXCLUDED.thumbnail_url, docs = EXCLUDED.docs,
			nearby = EXCLUDED.nearby, geocode_precision = EXCLUDED.geocode_precision,
			updated_at = NOW()`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, p := range projects {
		if _, err := stmt.ExecContext(ctx, p); err != nil {
			return 0, fmt.Errorf("project %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return len(projects), nil
}

// BatchUpdateEmbeddings stores embeddings, reporting per-item failures
// without aborting the batch
func (r *PostgresRepository) BatchUpdateEmbeddings(ctx context.Context, items []model.EmbeddingItem) (int, []string) {
	success := 0
	var errs []string

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, []string{fmt.Sprintf("failed to start transaction: %v", err)}
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx, `UPDATE projects SET embedding = $1, updated_at = NOW() WHERE id = $2`)
	if err != nil {
		return 0, []string{fmt.Sprintf("failed to prepare statement: %v", err)}
	}
	defer stmt.Close()

	for _, item := range items {
		res, err := stmt.ExecContext(ctx, pgvector.NewVector(item.Embedding), item.ProjectID)
		if err != nil {
			errs = append(errs, fmt.Sprintf("project_id %s: %v", item.ProjectID, err))
			continue
		}
		if n, _ := res.RowsAffected(); n == 0 {
			errs = append(errs, fmt.Sprintf("project_id %s: %v", item.ProjectID, ErrNotFound))
			continue
		}
		success++
	}

	if err := tx.Commit(); err != nil {
		return 0, append(errs, fmt.Sprintf("failed to commit transaction: %v", err))
	}
	return success, errs
}

// SimilarProjects returns the projects whose embeddings are closest to the
// given project's, by cosine distance
func (r *PostgresRepository) SimilarProjects(ctx context.Context, id string, limit int) ([]model.SimilarProject, error) {
	var anchor pgvector.Vector
	err := r.db.GetContext(ctx, &anchor, `SELECT embedding FROM projects WHERE id = $1 AND embedding IS NOT NULL`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load embedding for %s: %w", id, err)
	}

	query := `SELECT ` + projectColumns + `, embedding <=> $1 AS distance
		FROM projects
		WHERE id <> $2 AND embedding IS NOT NULL
		ORDER BY distance
		LIMIT $3`

	var out []model.SimilarProject
	if err := r.db.SelectContext(ctx, &out, query, anchor, id, limit); err != nil {
		return nil, fmt.Errorf("failed to query similar projects: %w", err)
	}
	return out, nil
}

// LogSearch records a completed search
func (r *PostgresRepository) LogSearch(ctx context.Context, entry SearchLogEntry) error {
	intent, err := json.Marshal(entry.Intent)
	if err != nil {
		return fmt.Errorf("failed to encode intent: %w", err)
	}
	ids, err := json.Marshal(entry.ProjectIDs)
	if err != nil {
		return fmt.Errorf("failed to encode project ids: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO search_logs (search_id, query, intent, returned_project_ids, response_time_ms)
		VALUES ($1, $2, $3, $4, $5)`,
		entry.SearchID, entry.Query, intent, ids, entry.TookMs)
	if err != nil {
		return fmt.Errorf("failed to log search: %w", err)
	}
	return nil
}
