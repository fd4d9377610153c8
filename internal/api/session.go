package api

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/piwi3910/cantocalc/internal/model"
)

// Session identification: an explicit header wins over the cookie.
const (
	SessionHeader = "X-Session-ID"
	SessionCookie = "cantocalc_session"
)

type sessionKey struct{}

// Session owns one calculation history. The mutex serialises every access
// to History.
type Session struct {
	ID string

	mu      sync.Mutex
	history *model.History

	lastSeen time.Time // Guarded by the registry lock
}

// WithHistory runs fn while holding the session lock.
func (s *Session) WithHistory(fn func(h *model.History)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.history)
}

// Entries returns a snapshot of the session history.
func (s *Session) Entries() []model.HistoryEntry {
	var entries []model.HistoryEntry
	s.WithHistory(func(h *model.History) {
		entries = h.Entries()
	})
	return entries
}

// SessionRegistry maps session IDs to their histories. Sessions idle for
// longer than idleTTL are dropped, and once maxSessions are held the least
// recently used one makes room for a new ID. Zero disables either limit.
type SessionRegistry struct {
	mu          sync.Mutex
	sessions    map[string]*Session
	maxSessions int
	idleTTL     time.Duration
	now         func() time.Time
}

// NewSessionRegistry creates an empty registry.
func NewSessionRegistry(maxSessions int, idleTTL time.Duration) *SessionRegistry {
	return &SessionRegistry{
		sessions:    make(map[string]*Session),
		maxSessions: maxSessions,
		idleTTL:     idleTTL,
		now:         time.Now,
	}
}

// Get returns the session with id, creating it on first use.
func (r *SessionRegistry) Get(id string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if s, ok := r.sessions[id]; ok && !r.expired(s, now) {
		s.lastSeen = now
		return s
	}

	r.evict(now)
	s := &Session{ID: id, history: model.NewHistory(), lastSeen: now}
	r.sessions[id] = s
	return s
}

// Len returns the number of known sessions.
func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *SessionRegistry) expired(s *Session, now time.Time) bool {
	return r.idleTTL > 0 && now.Sub(s.lastSeen) > r.idleTTL
}

// evict drops idle sessions, then the oldest ones until a new session fits.
// Callers hold r.mu.
func (r *SessionRegistry) evict(now time.Time) {
	for id, s := range r.sessions {
		if r.expired(s, now) {
			delete(r.sessions, id)
		}
	}
	if r.maxSessions <= 0 {
		return
	}
	for len(r.sessions) >= r.maxSessions {
		var oldest *Session
		for _, s := range r.sessions {
			if oldest == nil || s.lastSeen.Before(oldest.lastSeen) {
				oldest = s
			}
		}
		delete(r.sessions, oldest.ID)
	}
}

// sessionID reads the client's session ID from the header or cookie.
func sessionID(r *http.Request) string {
	if id := strings.TrimSpace(r.Header.Get(SessionHeader)); id != "" {
		return id
	}
	if c, err := r.Cookie(SessionCookie); err == nil {
		return strings.TrimSpace(c.Value)
	}
	return ""
}

// sessionMiddleware resolves the caller's session, issuing a new ID when the
// request carries none. The ID is echoed back in the header and cookie.
func (s *Server) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := sessionID(r)
		if id == "" {
			id = uuid.New().String()
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		w.Header().Set(SessionHeader, id)

		ctx := context.WithValue(r.Context(), sessionKey{}, s.sessions.Get(id))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionFrom returns the session attached by sessionMiddleware.
func sessionFrom(ctx context.Context) *Session {
	s, _ := ctx.Value(sessionKey{}).(*Session)
	return s
}
