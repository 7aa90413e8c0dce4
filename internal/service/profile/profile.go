package service_profile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"github.com/cinemind/gateway/internal/model"
)

var ErrFailedToFetchProfile = errors.New("failed to fetch profile")

type Client interface {
	Profile(ctx context.Context, credential string) (model.User, error)
}

// Fetcher performs the authoritative profile lookup. Concurrent
// verifications for the same session share a single upstream call; the
// per-cycle state machine (idle, fetching, resolved/rejected) is carried
// by the singleflight group.
type Fetcher struct {
	client Client
	group  singleflight.Group
	logger *slog.Logger
}

func New(client Client) *Fetcher {
	return &Fetcher{
		client: client,
		logger: slog.Default(),
	}
}

// Fetch verifies a credential against the upstream profile endpoint.
// The error is always classified: model.ErrUnauthorized means the
// credential is dead, model.ErrTransient means the answer is unknown
// and the last cached identity stays valid.
func (f *Fetcher) Fetch(ctx context.Context, sid model.SessionID, credential string) (model.User, error) {
	v, err, shared := f.group.Do(sid, func() (any, error) {
		return f.client.Profile(ctx, credential)
	})
	if err != nil {
		switch {
		case errors.Is(err, model.ErrUnauthorized):
			return model.User{}, model.ErrUnauthorized
		case errors.Is(err, model.ErrTransient):
			return model.User{}, fmt.Errorf("%w: %w", ErrFailedToFetchProfile, err)
		default:
			return model.User{}, fmt.Errorf("%w: %w: %w", ErrFailedToFetchProfile, model.ErrTransient, err)
		}
	}

	if shared {
		f.logger.Debug("profile fetch deduplicated", slog.String("sid", sid))
	}

	user, ok := v.(model.User)
	if !ok {
		return model.User{}, fmt.Errorf("%w: %w", ErrFailedToFetchProfile, model.ErrTransient)
	}
	return user, nil
}
