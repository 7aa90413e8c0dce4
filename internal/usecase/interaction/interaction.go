package usecase_interaction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	cache_query "github.com/cinemind/gateway/internal/cache/query"
	"github.com/cinemind/gateway/internal/model"
)

var (
	ErrFailedToToggleSave  = errors.New("failed to toggle save")
	ErrFailedToRate        = errors.New("failed to rate movie")
	ErrFailedToLoadSaved   = errors.New("failed to load saved movies")
	ErrFailedToGetRelation = errors.New("failed to get interaction")
)

// detailFetchers caps parallel detail lookups when hydrating the saved
// list.
const detailFetchers = 8

type InteractionClient interface {
	ToggleSave(ctx context.Context, credential string, movieID model.MovieID) (bool, error)
	Rate(ctx context.Context, credential string, movieID model.MovieID, rating int) (int, error)
	Interaction(ctx context.Context, credential string, movieID model.MovieID) (model.Interaction, error)
	SavedMovieIDs(ctx context.Context, credential string) ([]model.MovieID, error)
}

type DetailProvider interface {
	Detail(ctx context.Context, id model.MovieID) (model.MovieDetail, error)
}

type Usecase struct {
	client  InteractionClient
	details DetailProvider
	cache   *cache_query.Cache
	ttl     time.Duration
}

func New(
	client InteractionClient,
	details DetailProvider,
	cache *cache_query.Cache,
	ttl time.Duration,
) *Usecase {
	return &Usecase{
		client:  client,
		details: details,
		cache:   cache,
		ttl:     ttl,
	}
}

// ToggleSave flips the saved state and invalidates the user's saved-list
// cache so the next read refetches instead of serving a stale list.
func (u *Usecase) ToggleSave(ctx context.Context, session model.Session, movieID model.MovieID) (bool, error) {
	if session.Guest() {
		return false, model.ErrNoCredential
	}

	saved, err := u.client.ToggleSave(ctx, session.Credential, movieID)
	if err != nil {
		if errors.Is(err, model.ErrUnauthorized) {
			return false, err
		}
		return false, fmt.Errorf("%w: %w", ErrFailedToToggleSave, err)
	}

	u.cache.Invalidate(cache_query.SavedMoviesKey(session.Identity.ID))
	return saved, nil
}

func (u *Usecase) Rate(ctx context.Context, session model.Session, movieID model.MovieID, rating int) (int, error) {
	if session.Guest() {
		return 0, model.ErrNoCredential
	}

	applied, err := u.client.Rate(ctx, session.Credential, movieID, rating)
	if err != nil {
		if errors.Is(err, model.ErrUnauthorized) {
			return 0, err
		}
		return 0, fmt.Errorf("%w: %w", ErrFailedToRate, err)
	}
	return applied, nil
}

func (u *Usecase) Interaction(ctx context.Context, session model.Session, movieID model.MovieID) (model.Interaction, error) {
	if session.Guest() {
		return model.Interaction{}, nil
	}

	relation, err := u.client.Interaction(ctx, session.Credential, movieID)
	if err != nil {
		if errors.Is(err, model.ErrUnauthorized) {
			return model.Interaction{}, err
		}
		return model.Interaction{}, fmt.Errorf("%w: %w", ErrFailedToGetRelation, err)
	}
	return relation, nil
}

// Saved returns the user's saved movies, hydrated with catalog details.
// The list is cached per user and evicted on every save/unsave and on
// logout.
func (u *Usecase) Saved(ctx context.Context, session model.Session) ([]model.MovieDetail, error) {
	if session.Guest() {
		return nil, model.ErrNoCredential
	}

	key := cache_query.SavedMoviesKey(session.Identity.ID)
	movies, err := cache_query.Lookup(ctx, u.cache, key, u.ttl,
		func(ctx context.Context) ([]model.MovieDetail, error) {
			return u.loadSaved(ctx, session.Credential)
		})
	if err != nil {
		if errors.Is(err, model.ErrUnauthorized) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrFailedToLoadSaved, err)
	}
	return movies, nil
}

func (u *Usecase) loadSaved(ctx context.Context, credential string) ([]model.MovieDetail, error) {
	ids, err := u.client.SavedMovieIDs(ctx, credential)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []model.MovieDetail{}, nil
	}

	movies := make([]model.MovieDetail, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(detailFetchers)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			detail, err := u.details.Detail(gctx, id)
			if err != nil {
				return err
			}
			movies[i] = detail
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return movies, nil
}
