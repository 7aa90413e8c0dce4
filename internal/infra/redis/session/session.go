package infra_session_store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis"

	"github.com/cinemind/gateway/internal/model"
)

var ErrSessionNotFound = errors.New("session not found")

// Store persists session records so any gateway instance can resolve a
// browser's csid cookie. The record is the cached belief, not the source
// of truth: the remote profile endpoint stays authoritative.
type Store struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func New(client *redis.Client, prefix string, ttl time.Duration) *Store {
	return &Store{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

type recordDTO struct {
	Identity          *userDTO  `json:"identity,omitempty"`
	Credential        string    `json:"credential,omitempty"`
	CredentialPresent bool      `json:"credential_present"`
	FetchedAt         time.Time `json:"fetched_at"`
}

type userDTO struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	AvatarURL string `json:"avatar_url"`
}

func (s *Store) Load(sid model.SessionID) (model.Session, error) {
	raw, err := s.client.Get(s.fullKey(sid)).Result()
	if err != nil {
		if err == redis.Nil {
			return model.Session{}, ErrSessionNotFound
		}
		return model.Session{}, fmt.Errorf("failed to load session: %w", err)
	}

	var dto recordDTO
	if err := json.Unmarshal([]byte(raw), &dto); err != nil {
		return model.Session{}, fmt.Errorf("failed to decode session: %w", err)
	}

	session := model.Session{
		ID:                sid,
		Credential:        dto.Credential,
		CredentialPresent: dto.CredentialPresent,
		FetchedAt:         dto.FetchedAt,
	}
	if dto.Identity != nil {
		session.Identity = &model.User{
			ID:        dto.Identity.ID,
			Email:     dto.Identity.Email,
			Username:  dto.Identity.Username,
			FirstName: dto.Identity.FirstName,
			LastName:  dto.Identity.LastName,
			AvatarURL: dto.Identity.AvatarURL,
		}
	}
	return session, nil
}

func (s *Store) Save(session model.Session) error {
	dto := recordDTO{
		Credential:        session.Credential,
		CredentialPresent: session.CredentialPresent,
		FetchedAt:         session.FetchedAt,
	}
	if session.Identity != nil {
		dto.Identity = &userDTO{
			ID:        session.Identity.ID,
			Email:     session.Identity.Email,
			Username:  session.Identity.Username,
			FirstName: session.Identity.FirstName,
			LastName:  session.Identity.LastName,
			AvatarURL: session.Identity.AvatarURL,
		}
	}

	raw, err := json.Marshal(dto)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := s.client.Set(s.fullKey(session.ID), string(raw), s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *Store) Delete(sid model.SessionID) error {
	if err := s.client.Del(s.fullKey(sid)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (s *Store) fullKey(sid model.SessionID) string {
	if s.prefix != "" {
		return s.prefix + ":" + sid
	}
	return sid
}
