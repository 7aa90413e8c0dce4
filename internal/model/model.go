package model

import "time"

type SessionID = string

const EmptySessionID SessionID = ""

// Session is the client's current belief about who is logged in.
// Identity may be stale while CredentialPresent still says "was logged in";
// the reverse never holds.
type Session struct {
	ID                SessionID
	Identity          *User
	Credential        string
	CredentialPresent bool
	FetchedAt         time.Time
}

func (s Session) Guest() bool {
	return s.Identity == nil
}

// Fresh reports whether the cached identity is still inside its
// staleness window and can be trusted without re-verification.
func (s Session) Fresh(ttl time.Duration) bool {
	if s.FetchedAt.IsZero() {
		return false
	}
	return time.Since(s.FetchedAt) < ttl
}
