package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"learnplay/internal/domain"
	"github.com/jackc/pgx/v4/pgxpool"
)

// ProjectDoc is the JSONB shape of one catalog_projects row.
type ProjectDoc struct {
	Project  domain.Project   `json:"project"`
	Segments []domain.Segment `json:"segments"`
	Quiz     *domain.Quiz     `json:"quiz,omitempty"`
}

// CatalogLoader assembles the catalog from JSONB rows in Postgres.
type CatalogLoader struct {
	pool *pgxpool.Pool
}

func NewCatalogLoader(pool *pgxpool.Pool) *CatalogLoader {
	return &CatalogLoader{pool: pool}
}

func (l *CatalogLoader) LoadCatalog(ctx context.Context) (domain.Catalog, error) {
	var catalog domain.Catalog

	rows, err := l.pool.Query(ctx, `SELECT data FROM catalog_projects ORDER BY id`)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("load projects: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return domain.Catalog{}, fmt.Errorf("scan project: %w", err)
		}
		var doc ProjectDoc
		if err := json.Unmarshal(raw, &doc); err != nil {
			return domain.Catalog{}, fmt.Errorf("unmarshal project: %w", err)
		}
		catalog.Projects = append(catalog.Projects, doc.Project)
		catalog.Segments = append(catalog.Segments, doc.Segments...)
		if doc.Quiz != nil {
			catalog.Quizzes = append(catalog.Quizzes, *doc.Quiz)
		}
	}
	if err := rows.Err(); err != nil {
		return domain.Catalog{}, fmt.Errorf("iterate projects: %w", err)
	}
	if len(catalog.Projects) == 0 {
		return domain.Catalog{}, domain.ErrCatalogNotFound
	}

	rosterRows, err := l.pool.Query(ctx, `SELECT data FROM leaderboard_roster ORDER BY id`)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("load roster: %w", err)
	}
	defer rosterRows.Close()
	for rosterRows.Next() {
		var raw []byte
		if err := rosterRows.Scan(&raw); err != nil {
			return domain.Catalog{}, fmt.Errorf("scan roster entry: %w", err)
		}
		var entry domain.LeaderboardEntry
		if err := json.Unmarshal(raw, &entry); err != nil {
			return domain.Catalog{}, fmt.Errorf("unmarshal roster entry: %w", err)
		}
		catalog.Roster = append(catalog.Roster, entry)
	}
	if err := rosterRows.Err(); err != nil {
		return domain.Catalog{}, fmt.Errorf("iterate roster: %w", err)
	}

	if err := catalog.Validate(); err != nil {
		return domain.Catalog{}, fmt.Errorf("validate catalog: %w", err)
	}
	return catalog, nil
}
