package usecase_catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	cache_query "github.com/cinemind/gateway/internal/cache/query"
	"github.com/cinemind/gateway/internal/model"
)

var (
	ErrFailedToSearch      = errors.New("failed to search movies")
	ErrFailedToLoadDetail  = errors.New("failed to load movie detail")
	ErrFailedToLoadTrends  = errors.New("failed to load trending movies")
	ErrFailedToRecord      = errors.New("failed to record search")
	ErrFailedToLoadRecords = errors.New("failed to load search stats")
)

type CatalogClient interface {
	Search(ctx context.Context, query string, page int) (model.SearchPage, error)
	Detail(ctx context.Context, id model.MovieID) (model.MovieDetail, error)
	Trending(ctx context.Context) ([]model.Movie, error)
}

type SearchStatsRepository interface {
	Record(ctx context.Context, term string, movie model.Movie) error
	Top(ctx context.Context, limit int) ([]model.SearchStat, error)
}

type Usecase struct {
	client CatalogClient
	stats  SearchStatsRepository
	cache  *cache_query.Cache
	ttl    time.Duration
}

func New(
	client CatalogClient,
	stats SearchStatsRepository,
	cache *cache_query.Cache,
	ttl time.Duration,
) *Usecase {
	return &Usecase{
		client: client,
		stats:  stats,
		cache:  cache,
		ttl:    ttl,
	}
}

// Search proxies the catalog search. Page bounds are not validated here;
// the catalog decides what an out-of-range page means.
func (u *Usecase) Search(ctx context.Context, query string, page int) (model.SearchPage, error) {
	result, err := cache_query.Lookup(ctx, u.cache, cache_query.SearchKey(query, page), u.ttl,
		func(ctx context.Context) (model.SearchPage, error) {
			return u.client.Search(ctx, query, page)
		})
	if err != nil {
		return model.SearchPage{}, fmt.Errorf("%w: %w", ErrFailedToSearch, err)
	}
	return result, nil
}

func (u *Usecase) Detail(ctx context.Context, id model.MovieID) (model.MovieDetail, error) {
	detail, err := cache_query.Lookup(ctx, u.cache, cache_query.MovieDetailKey(id), u.ttl,
		func(ctx context.Context) (model.MovieDetail, error) {
			return u.client.Detail(ctx, id)
		})
	if err != nil {
		return model.MovieDetail{}, fmt.Errorf("%w: %w", ErrFailedToLoadDetail, err)
	}
	return detail, nil
}

func (u *Usecase) Trending(ctx context.Context) ([]model.Movie, error) {
	movies, err := cache_query.Lookup(ctx, u.cache, cache_query.TrendingKey(), u.ttl,
		func(ctx context.Context) ([]model.Movie, error) {
			return u.client.Trending(ctx)
		})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToLoadTrends, err)
	}
	return movies, nil
}

func (u *Usecase) RecordSearch(ctx context.Context, term string, movie model.Movie) error {
	if term == "" {
		return fmt.Errorf("%w: empty term", ErrFailedToRecord)
	}
	if err := u.stats.Record(ctx, term, movie); err != nil {
		return fmt.Errorf("%w: %w", ErrFailedToRecord, err)
	}
	return nil
}

func (u *Usecase) TopSearches(ctx context.Context, limit int) ([]model.SearchStat, error) {
	stats, err := u.stats.Top(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToLoadRecords, err)
	}
	return stats, nil
}
