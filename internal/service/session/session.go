package service_session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	cache_query "github.com/cinemind/gateway/internal/cache/query"
	infra_session_store "github.com/cinemind/gateway/internal/infra/redis/session"
	"github.com/cinemind/gateway/internal/model"
)

var (
	ErrFailedToLoadSession    = errors.New("failed to load session")
	ErrFailedToPersistSession = errors.New("failed to persist session")
)

type SessionRepository interface {
	Load(sid model.SessionID) (model.Session, error)
	Save(session model.Session) error
	Delete(sid model.SessionID) error
}

type ProfileFetcher interface {
	Fetch(ctx context.Context, sid model.SessionID, credential string) (model.User, error)
}

// Store is the single source of truth for "who is the current user".
// Every consumer (route guard, profile handler, interaction handlers)
// reads through Resolve; only SetIdentity and Clear write the canonical
// value, so concurrent writers cannot race each other into divergent
// copies of the same identity.
type Store struct {
	repo     SessionRepository
	profiles ProfileFetcher
	cache    *cache_query.Cache
	ttl      time.Duration
	logger   *slog.Logger
}

func New(
	repo SessionRepository,
	profiles ProfileFetcher,
	cache *cache_query.Cache,
	ttl time.Duration,
) *Store {
	return &Store{
		repo:     repo,
		profiles: profiles,
		cache:    cache,
		ttl:      ttl,
		logger:   slog.Default(),
	}
}

func guestSession(sid model.SessionID) model.Session {
	return model.Session{ID: sid}
}

// Resolve returns the current session without ever blocking a caller
// that holds a usable identity.
//
// No session cookie or no credential marker resolves to guest with zero
// upstream calls. A fresh cached identity short-circuits. A stale one is
// returned immediately while a background revalidation runs. Only an
// unresolved identity behind a present credential marker blocks on
// verification.
//
// A model.ErrUnauthorized return means the session was just cleared and
// the client must be redirected to login. A model.ErrTransient return is
// non-fatal: the returned session is the last known state.
func (s *Store) Resolve(ctx context.Context, sid model.SessionID) (model.Session, error) {
	if sid == model.EmptySessionID {
		return guestSession(sid), nil
	}

	key := cache_query.AuthUserKey(sid)
	if v, ok := s.cache.Peek(key); ok {
		if session, ok := v.(model.Session); ok {
			return session, nil
		}
	}

	record, err := s.repo.Load(sid)
	if err != nil {
		if errors.Is(err, infra_session_store.ErrSessionNotFound) {
			return guestSession(sid), nil
		}
		return guestSession(sid), fmt.Errorf("%w: %w: %w", ErrFailedToLoadSession, model.ErrTransient, err)
	}

	if !record.CredentialPresent || record.Credential == "" {
		return guestSession(sid), nil
	}

	if record.Fresh(s.ttl) {
		s.cache.Set(key, record, s.ttl-time.Since(record.FetchedAt))
		return record, nil
	}

	if record.Identity != nil {
		// Stale but usable. Serve it now, refresh off the request path;
		// the refresh must outlive this request's context.
		go s.revalidate(context.WithoutCancel(ctx), sid)
		return record, nil
	}

	return s.verify(ctx, sid, record)
}

// verify runs the authoritative lookup and applies the classification
// contract: Unauthorized clears, Transient preserves.
func (s *Store) verify(ctx context.Context, sid model.SessionID, record model.Session) (model.Session, error) {
	user, err := s.profiles.Fetch(ctx, sid, record.Credential)
	switch {
	case err == nil:
		session, serr := s.SetIdentity(ctx, sid, user, record.Credential)
		if serr != nil {
			return record, serr
		}
		return session, nil

	case errors.Is(err, model.ErrUnauthorized):
		if cerr := s.Clear(ctx, sid); cerr != nil {
			s.logger.Error("failed to clear rejected session",
				slog.String("sid", sid),
				slog.String("error", cerr.Error()))
		}
		return guestSession(sid), model.ErrUnauthorized

	default:
		// Transient: the last known identity stays. A network blip must
		// not bounce a logged-in user to the login page.
		return record, err
	}
}

func (s *Store) revalidate(ctx context.Context, sid model.SessionID) {
	record, err := s.repo.Load(sid)
	if err != nil {
		if !errors.Is(err, infra_session_store.ErrSessionNotFound) {
			s.logger.Warn("revalidation skipped", slog.String("sid", sid), slog.String("error", err.Error()))
		}
		return
	}
	if !record.CredentialPresent || record.Credential == "" {
		return
	}

	if _, err := s.verify(ctx, sid, record); err != nil && !errors.Is(err, model.ErrUnauthorized) {
		s.logger.Warn("revalidation failed, keeping last known identity",
			slog.String("sid", sid),
			slog.String("error", err.Error()))
	}
}

// SetIdentity overwrites the canonical identity, marks the credential
// present and the record fresh from now, and writes through the shared
// cache key so every consumer observes the same value immediately.
func (s *Store) SetIdentity(ctx context.Context, sid model.SessionID, user model.User, credential string) (model.Session, error) {
	session := model.Session{
		ID:                sid,
		Identity:          &user,
		Credential:        credential,
		CredentialPresent: true,
		FetchedAt:         time.Now(),
	}

	if err := s.repo.Save(session); err != nil {
		return model.Session{}, fmt.Errorf("%w: %w", ErrFailedToPersistSession, err)
	}

	s.cache.Set(cache_query.AuthUserKey(sid), session, s.ttl)
	s.cache.Invalidate(cache_query.SavedMoviesKey(user.ID))
	return session, nil
}

// Clear drops identity and credential marker and evicts every
// session-scoped cache entry, so no consumer can read a stale identity
// after logout.
func (s *Store) Clear(ctx context.Context, sid model.SessionID) error {
	if record, err := s.repo.Load(sid); err == nil && record.Identity != nil {
		s.cache.InvalidatePrefix(cache_query.SavedMoviesKey(record.Identity.ID))
	}

	if err := s.repo.Delete(sid); err != nil {
		return fmt.Errorf("%w: %w", ErrFailedToPersistSession, err)
	}

	s.cache.Invalidate(cache_query.AuthUserKey(sid))
	return nil
}

// Run periodically re-verifies the sessions that are hot in the cache,
// so a server-side credential revocation is noticed without waiting for
// the next navigation. Cancelling ctx stops the sweep.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	prefix := cache_query.BuildKey("auth", "user") + "/"
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, key := range s.cache.Keys(prefix) {
				sid := strings.TrimPrefix(key, prefix)
				s.revalidate(ctx, sid)
			}
		}
	}
}
