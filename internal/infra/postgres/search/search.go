package infra_postgres_search

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/cinemind/gateway/internal/model"
)

type Repository struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

type searchStatDB struct {
	Term       string `db:"term"`
	Count      int64  `db:"count"`
	MovieID    int64  `db:"movie_id"`
	MovieTitle string `db:"movie_title"`
	PosterPath string `db:"poster_path"`
}

func (s searchStatDB) ToDomain() model.SearchStat {
	return model.SearchStat{
		Term:       s.Term,
		Count:      s.Count,
		MovieID:    s.MovieID,
		MovieTitle: s.MovieTitle,
		PosterPath: s.PosterPath,
	}
}

// Record bumps the counter for a search term and remembers the movie
// that matched it last.
func (r *Repository) Record(ctx context.Context, term string, movie model.Movie) error {
	query := `
		INSERT INTO search_stats (term, count, movie_id, movie_title, poster_path)
		VALUES (:term, 1, :movie_id, :movie_title, :poster_path)
		ON CONFLICT (term) DO UPDATE SET
			count = search_stats.count + 1,
			movie_id = EXCLUDED.movie_id,
			movie_title = EXCLUDED.movie_title,
			poster_path = EXCLUDED.poster_path
	`

	_, err := r.db.NamedExecContext(ctx, query, searchStatDB{
		Term:       term,
		MovieID:    movie.ID,
		MovieTitle: movie.Title,
		PosterPath: movie.PosterPath,
	})
	if err != nil {
		return fmt.Errorf("failed to record search: %w", err)
	}
	return nil
}

func (r *Repository) Top(ctx context.Context, limit int) ([]model.SearchStat, error) {
	query := `
		SELECT term, count, movie_id, movie_title, poster_path
		FROM search_stats
		ORDER BY count DESC
		LIMIT $1
	`

	var statsDB []searchStatDB
	if err := r.db.SelectContext(ctx, &statsDB, query, limit); err != nil {
		return nil, fmt.Errorf("failed to query search stats: %w", err)
	}

	stats := make([]model.SearchStat, len(statsDB))
	for i, s := range statsDB {
		stats[i] = s.ToDomain()
	}
	return stats, nil
}
