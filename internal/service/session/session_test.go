//go:build !integration
// +build !integration

package service_session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	cache_query "github.com/cinemind/gateway/internal/cache/query"
	infra_session_store "github.com/cinemind/gateway/internal/infra/redis/session"
	"github.com/cinemind/gateway/internal/model"
	mocks "github.com/cinemind/gateway/internal/service/session/mocks"
)

const profileTTL = 5 * time.Minute

type SessionStoreSuite struct {
	suite.Suite

	repo     *mocks.SessionRepository
	profiles *mocks.ProfileFetcher
	cache    *cache_query.Cache
	store    *Store
	ctx      context.Context
}

func (s *SessionStoreSuite) BeforeEach(t provider.T) {
	s.repo = mocks.NewSessionRepository(t)
	s.profiles = mocks.NewProfileFetcher(t)
	s.cache = cache_query.New(time.Hour)
	s.store = New(s.repo, s.profiles, s.cache, profileTTL)
	s.ctx = context.Background()
}

func validUser() model.User {
	return model.User{
		ID:       42,
		Email:    "viewer@example.com",
		Username: "viewer",
	}
}

func freshRecord(sid model.SessionID) model.Session {
	user := validUser()
	return model.Session{
		ID:                sid,
		Identity:          &user,
		Credential:        "tok-abc",
		CredentialPresent: true,
		FetchedAt:         time.Now(),
	}
}

func staleRecord(sid model.SessionID) model.Session {
	record := freshRecord(sid)
	record.FetchedAt = time.Now().Add(-2 * profileTTL)
	return record
}

func unresolvedRecord(sid model.SessionID) model.Session {
	return model.Session{
		ID:                sid,
		Credential:        "tok-abc",
		CredentialPresent: true,
	}
}

func (s *SessionStoreSuite) TestResolveEmptySessionID(t provider.T) {
	session, err := s.store.Resolve(s.ctx, model.EmptySessionID)

	assert.NoError(t, err)
	assert.True(t, session.Guest())
	s.repo.AssertNotCalled(t, "Load", mock.Anything)
}

func (s *SessionStoreSuite) TestResolveCacheHitSkipsRepository(t provider.T) {
	record := freshRecord("sid-1")
	s.cache.Set(cache_query.AuthUserKey("sid-1"), record, profileTTL)

	session, err := s.store.Resolve(s.ctx, "sid-1")

	assert.NoError(t, err)
	assert.Equal(t, record.Identity, session.Identity)
	s.repo.AssertNotCalled(t, "Load", mock.Anything)
}

func (s *SessionStoreSuite) TestResolveUnknownSessionIsGuest(t provider.T) {
	s.repo.On("Load", model.SessionID("sid-1")).
		Return(model.Session{}, infra_session_store.ErrSessionNotFound).Once()

	session, err := s.store.Resolve(s.ctx, "sid-1")

	assert.NoError(t, err)
	assert.True(t, session.Guest())
}

func (s *SessionStoreSuite) TestResolveRepositoryFailureIsTransient(t provider.T) {
	s.repo.On("Load", model.SessionID("sid-1")).
		Return(model.Session{}, errors.New("redis gone")).Once()

	session, err := s.store.Resolve(s.ctx, "sid-1")

	assert.ErrorIs(t, err, model.ErrTransient)
	assert.ErrorIs(t, err, ErrFailedToLoadSession)
	assert.True(t, session.Guest())
}

func (s *SessionStoreSuite) TestResolveWithoutCredentialNeverCallsUpstream(t provider.T) {
	s.repo.On("Load", model.SessionID("sid-1")).
		Return(model.Session{ID: "sid-1"}, nil).Once()

	session, err := s.store.Resolve(s.ctx, "sid-1")

	assert.NoError(t, err)
	assert.True(t, session.Guest())
	s.profiles.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything, mock.Anything)
}

func (s *SessionStoreSuite) TestResolveFreshRecordShortCircuits(t provider.T) {
	record := freshRecord("sid-1")
	s.repo.On("Load", model.SessionID("sid-1")).Return(record, nil).Once()

	session, err := s.store.Resolve(s.ctx, "sid-1")

	assert.NoError(t, err)
	assert.Equal(t, record.Identity, session.Identity)
	s.profiles.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything, mock.Anything)

	// The record is now hot; a second resolve must not touch the repo.
	session, err = s.store.Resolve(s.ctx, "sid-1")
	assert.NoError(t, err)
	assert.Equal(t, record.Identity, session.Identity)
	s.repo.AssertNumberOfCalls(t, "Load", 1)
}

func (s *SessionStoreSuite) TestResolveStaleIdentityServedWhileRevalidating(t provider.T) {
	record := staleRecord("sid-1")
	revalidated := make(chan struct{})

	s.repo.On("Load", model.SessionID("sid-1")).Return(record, nil)
	s.profiles.On("Fetch", mock.Anything, model.SessionID("sid-1"), "tok-abc").
		Return(validUser(), nil).Once()
	s.repo.On("Save", mock.AnythingOfType("model.Session")).
		Return(nil).Once().
		Run(func(args mock.Arguments) { close(revalidated) })

	session, err := s.store.Resolve(s.ctx, "sid-1")

	assert.NoError(t, err)
	assert.Equal(t, record.Identity, session.Identity, "the stale identity is served immediately")

	select {
	case <-revalidated:
	case <-time.After(time.Second):
		t.Errorf("background revalidation never persisted the refreshed identity")
	}
}

func (s *SessionStoreSuite) TestResolveUnresolvedIdentityBlocksOnVerification(t provider.T) {
	record := unresolvedRecord("sid-1")
	user := validUser()

	s.repo.On("Load", model.SessionID("sid-1")).Return(record, nil).Once()
	s.profiles.On("Fetch", mock.Anything, model.SessionID("sid-1"), "tok-abc").
		Return(user, nil).Once()
	s.repo.On("Save", mock.AnythingOfType("model.Session")).Return(nil).Once()

	session, err := s.store.Resolve(s.ctx, "sid-1")

	assert.NoError(t, err)
	assert.False(t, session.Guest())
	assert.Equal(t, user.ID, session.Identity.ID)
	assert.True(t, session.CredentialPresent)
}

func (s *SessionStoreSuite) TestResolveRejectedCredentialClearsSession(t provider.T) {
	record := unresolvedRecord("sid-1")

	s.repo.On("Load", model.SessionID("sid-1")).Return(record, nil)
	s.profiles.On("Fetch", mock.Anything, model.SessionID("sid-1"), "tok-abc").
		Return(model.User{}, model.ErrUnauthorized).Once()
	s.repo.On("Delete", model.SessionID("sid-1")).Return(nil).Once()

	session, err := s.store.Resolve(s.ctx, "sid-1")

	assert.ErrorIs(t, err, model.ErrUnauthorized)
	assert.True(t, session.Guest())

	_, cached := s.cache.Peek(cache_query.AuthUserKey("sid-1"))
	assert.False(t, cached, "a cleared session must not linger in the cache")
}

func (s *SessionStoreSuite) TestResolveTransientFailurePreservesIdentity(t provider.T) {
	record := unresolvedRecord("sid-1")

	s.repo.On("Load", model.SessionID("sid-1")).Return(record, nil).Once()
	s.profiles.On("Fetch", mock.Anything, model.SessionID("sid-1"), "tok-abc").
		Return(model.User{}, model.ErrTransient).Once()

	session, err := s.store.Resolve(s.ctx, "sid-1")

	assert.ErrorIs(t, err, model.ErrTransient)
	assert.Equal(t, record.Credential, session.Credential, "the last known state is preserved")
	assert.True(t, session.CredentialPresent)
	s.repo.AssertNotCalled(t, "Delete", mock.Anything)
}

func (s *SessionStoreSuite) TestSetIdentityLastWriteWins(t provider.T) {
	first := validUser()
	second := validUser()
	second.Username = "renamed"

	s.repo.On("Save", mock.AnythingOfType("model.Session")).Return(nil).Twice()

	_, err := s.store.SetIdentity(s.ctx, "sid-1", first, "tok-1")
	assert.NoError(t, err)
	_, err = s.store.SetIdentity(s.ctx, "sid-1", second, "tok-2")
	assert.NoError(t, err)

	v, ok := s.cache.Peek(cache_query.AuthUserKey("sid-1"))
	assert.True(t, ok)
	session := v.(model.Session)
	assert.Equal(t, "renamed", session.Identity.Username)
	assert.Equal(t, "tok-2", session.Credential)
}

func (s *SessionStoreSuite) TestSetIdentityInvalidatesSavedMovies(t provider.T) {
	user := validUser()
	s.cache.Set(cache_query.SavedMoviesKey(user.ID), []model.MovieDetail{}, time.Minute)

	s.repo.On("Save", mock.AnythingOfType("model.Session")).Return(nil).Once()

	_, err := s.store.SetIdentity(s.ctx, "sid-1", user, "tok-1")

	assert.NoError(t, err)
	_, ok := s.cache.Peek(cache_query.SavedMoviesKey(user.ID))
	assert.False(t, ok)
}

func (s *SessionStoreSuite) TestSetIdentityPersistFailure(t provider.T) {
	s.repo.On("Save", mock.AnythingOfType("model.Session")).
		Return(errors.New("redis gone")).Once()

	_, err := s.store.SetIdentity(s.ctx, "sid-1", validUser(), "tok-1")

	assert.ErrorIs(t, err, ErrFailedToPersistSession)
	_, ok := s.cache.Peek(cache_query.AuthUserKey("sid-1"))
	assert.False(t, ok, "a failed persist must not leave a cached identity")
}

func (s *SessionStoreSuite) TestClearEvictsEverySessionScopedEntry(t provider.T) {
	record := freshRecord("sid-1")
	s.cache.Set(cache_query.AuthUserKey("sid-1"), record, profileTTL)
	s.cache.Set(cache_query.SavedMoviesKey(record.Identity.ID), []model.MovieDetail{}, time.Minute)

	s.repo.On("Load", model.SessionID("sid-1")).Return(record, nil).Once()
	s.repo.On("Delete", model.SessionID("sid-1")).Return(nil).Once()

	err := s.store.Clear(s.ctx, "sid-1")

	assert.NoError(t, err)
	_, ok := s.cache.Peek(cache_query.AuthUserKey("sid-1"))
	assert.False(t, ok)
	_, ok = s.cache.Peek(cache_query.SavedMoviesKey(record.Identity.ID))
	assert.False(t, ok)
}

func (s *SessionStoreSuite) TestClearDeleteFailure(t provider.T) {
	s.repo.On("Load", model.SessionID("sid-1")).
		Return(model.Session{}, infra_session_store.ErrSessionNotFound).Once()
	s.repo.On("Delete", model.SessionID("sid-1")).
		Return(errors.New("redis gone")).Once()

	err := s.store.Clear(s.ctx, "sid-1")

	assert.ErrorIs(t, err, ErrFailedToPersistSession)
}

func TestSessionStoreSuite(t *testing.T) {
	suite.RunSuite(t, new(SessionStoreSuite))
}
