package auth

import (
	"log/slog"
	"sync"
	"time"

	"github.com/bu6wer8/student-services-V2/internals/logging"
	"github.com/bu6wer8/student-services-V2/internals/utils"
)

// SessionTTL is the absolute lifetime of an admin session. Activity refreshes
// LastActivity but never pushes ExpiresAt out.
const SessionTTL = 8 * time.Hour

type session struct {
	principal    string
	ip           string
	createdAt    time.Time
	lastActivity time.Time
	expiresAt    time.Time
}

// SessionView is the caller-visible copy of a verified session.
type SessionView struct {
	Principal    string
	IP           string
	CreatedAt    time.Time
	LastActivity time.Time
	ExpiresAt    time.Time
}

// SessionRegistry issues and verifies opaque admin session tokens. Sessions
// expire absolutely at issuance time + SessionTTL; expired entries are
// deleted lazily on verification and in bulk by SweepExpired.
type SessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*session
	now      Clock
	log      *slog.Logger
}

func NewSessionRegistry(now Clock, log *slog.Logger) *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[string]*session),
		now:      now,
		log:      log,
	}
}

// Issue creates a session for principal observed from ip and returns the
// session id to be carried in the admin cookie.
func (r *SessionRegistry) Issue(principal, ip string) string {
	id := utils.SecureToken(32)
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[id] = &session{
		principal:    principal,
		ip:           ip,
		createdAt:    now,
		lastActivity: now,
		expiresAt:    now.Add(SessionTTL),
	}
	return id
}

// Verify resolves a session id presented from ip. Expired sessions are
// deleted on sight. A mismatch between the stored IP and the presented one is
// logged but does not invalidate the session; admins switching networks keep
// their session.
func (r *SessionRegistry) Verify(id, ip string) (SessionView, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return SessionView{}, false
	}

	now := r.now()
	if now.After(s.expiresAt) {
		delete(r.sessions, id)
		return SessionView{}, false
	}

	if s.ip != ip {
		r.log.Warn("session IP mismatch",
			"session_id", logging.RedactToken(id),
			"bound_ip", s.ip,
			"observed_ip", ip,
		)
	}

	s.lastActivity = now

	return SessionView{
		Principal:    s.principal,
		IP:           s.ip,
		CreatedAt:    s.createdAt,
		LastActivity: s.lastActivity,
		ExpiresAt:    s.expiresAt,
	}, true
}

// Revoke deletes the session. Revoking an unknown id is a no-op.
func (r *SessionRegistry) Revoke(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// SweepExpired removes every session past its expiry and returns how many
// were dropped. It is cheap when nothing has expired and is safe to call on
// every request.
func (r *SessionRegistry) SweepExpired() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	removed := 0
	for id, s := range r.sessions {
		if now.After(s.expiresAt) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// Active reports the number of live sessions.
func (r *SessionRegistry) Active() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
