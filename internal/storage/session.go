package storage

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/aliskhannn/place-onboarding-bot/internal/onboarding"
)

// Session is one chat's onboarding in progress.
type Session struct {
	UserID      int64
	ChatID      int64
	ID          uint64 // distinguishes successive sessions of one chat
	MessageID   int    // message showing the current question, 0 until sent
	Flow        *onboarding.Flow
	Credentials onboarding.Credentials
}

// SessionStorage keeps sessions by chat ID in memory. It is bounded in size and
// sessions not touched within the TTL are discarded.
type SessionStorage struct {
	sessions *expirable.LRU[int64, *Session]
}

// NewSessionStorage creates a SessionStorage. onEvict, if not nil, is called
// with every session that leaves the storage, including through Delete.
func NewSessionStorage(size int, ttl time.Duration, onEvict func(chatID int64, s *Session)) *SessionStorage {
	return &SessionStorage{
		sessions: expirable.NewLRU[int64, *Session](size, onEvict, ttl),
	}
}

// Store saves the session for chatID and restarts its TTL.
func (s *SessionStorage) Store(chatID int64, session *Session) {
	s.sessions.Add(chatID, session)
}

// Get retrieves the session for chatID.
func (s *SessionStorage) Get(chatID int64) (*Session, bool) {
	return s.sessions.Get(chatID)
}

// Delete removes the session for chatID.
func (s *SessionStorage) Delete(chatID int64) {
	s.sessions.Remove(chatID)
}

// Len returns the number of live sessions.
func (s *SessionStorage) Len() int {
	return s.sessions.Len()
}

// Key routes coordinator results back to this session.
func (s *Session) Key() onboarding.Key {
	return onboarding.Key{Owner: s.ChatID, Flow: s.ID}
}
