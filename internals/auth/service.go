package auth

import (
	"crypto/subtle"
	"fmt"
	"log/slog"

	"github.com/bu6wer8/student-services-V2/internals/logging"
)

// LoginStatus is the outcome of a login attempt, in gate order.
type LoginStatus int

const (
	LoginOK LoginStatus = iota
	LoginRateLimited
	LoginBadCaptcha
	LoginBadCredentials
	LoginError
)

// LoginRequest carries everything the login form submits plus the resolved
// client IP.
type LoginRequest struct {
	Username      string
	Password      string
	CaptchaToken  string
	CaptchaAnswer string
	IP            string
}

// LoginResult reports the gateway's decision. SessionID is set only on
// LoginOK; LockoutSeconds only on LoginRateLimited.
type LoginResult struct {
	Status         LoginStatus
	SessionID      string
	LockoutSeconds int
}

// Service gates access to the admin surface. A login attempt runs through the
// rate limiter, the CAPTCHA store and the credential check in that order, and
// only a pass through all three yields a session.
type Service struct {
	Captcha  *CaptchaStore
	Attempts *AttemptTracker
	Sessions *SessionRegistry
	Tokens   *TokenIssuer

	adminUsername     string
	adminPasswordHash string

	audit *slog.Logger
	log   *slog.Logger
}

// Config carries the credentials and loggers the gateway needs. The audit
// logger receives the security-event stream; log is the regular app logger.
type Config struct {
	AdminUsername     string
	AdminPasswordHash string
	SecretKey         string
	Audit             *slog.Logger
	Log               *slog.Logger
	Now               Clock
}

func NewService(cfg Config) *Service {
	now := cfg.Now
	if now == nil {
		now = SystemClock
	}

	return &Service{
		Captcha:           NewCaptchaStore(now),
		Attempts:          NewAttemptTracker(now),
		Sessions:          NewSessionRegistry(now, cfg.Log),
		Tokens:            NewTokenIssuer(cfg.SecretKey, now),
		adminUsername:     cfg.AdminUsername,
		adminPasswordHash: cfg.AdminPasswordHash,
		audit:             cfg.Audit,
		log:               cfg.Log,
	}
}

// Login runs the full gate for one login attempt. It never returns an error:
// every expected failure maps to a status, and anything unexpected is logged
// and reported as LoginError without advancing limiter or session state.
func (s *Service) Login(req LoginRequest) (res LoginResult) {
	defer func() {
		if r := recover(); r != nil {
			s.LogEvent("login_error", req.IP,
				"username", req.Username,
				"error", fmt.Sprint(r),
			)
			res = LoginResult{Status: LoginError}
		}
	}()

	if s.Attempts.IsLockedOut(req.IP) {
		remaining, _ := s.Attempts.LockoutRemaining(req.IP)
		seconds := int(remaining.Seconds())
		s.LogEvent("rate_limited_login", req.IP,
			"username", req.Username,
			"lockout_time", seconds,
		)
		return LoginResult{Status: LoginRateLimited, LockoutSeconds: seconds}
	}

	if !s.Captcha.Verify(req.CaptchaToken, req.CaptchaAnswer) {
		s.Attempts.RecordAttempt(req.IP, false)
		s.LogEvent("invalid_captcha", req.IP, "username", req.Username)
		return LoginResult{Status: LoginBadCaptcha}
	}

	if !s.Authenticate(req.Username, req.Password) {
		s.Attempts.RecordAttempt(req.IP, false)
		s.LogEvent("failed_login", req.IP, "username", req.Username)
		return LoginResult{Status: LoginBadCredentials}
	}

	s.Attempts.RecordAttempt(req.IP, true)
	sessionID := s.Sessions.Issue(req.Username, req.IP)

	s.LogEvent("successful_login", req.IP,
		"username", req.Username,
		"session_id", logging.RedactToken(sessionID),
	)

	return LoginResult{Status: LoginOK, SessionID: sessionID}
}

// Authenticate verifies the admin credentials. The password hash is always
// checked, even for a wrong username, so the two failure modes take the same
// effort and stay indistinguishable to the caller.
func (s *Service) Authenticate(username, password string) bool {
	usernameOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.adminUsername)) == 1
	passwordOK := VerifyPassword(password, s.adminPasswordHash)
	return usernameOK && passwordOK
}

// Logout revokes the session and records the event. Unknown session ids are
// revoked silently; logout must never fail.
func (s *Service) Logout(sessionID, ip string) {
	s.Sessions.Revoke(sessionID)
	s.LogEvent("logout", ip, "session_id", logging.RedactToken(sessionID))
}

// VerifySession resolves a session cookie value for the request guard.
func (s *Service) VerifySession(sessionID, ip string) (SessionView, bool) {
	return s.Sessions.Verify(sessionID, ip)
}

// LogEvent records a security event with its kind, source IP and detail
// pairs. Session identifiers must be redacted by the caller before they reach
// this sink.
func (s *Service) LogEvent(kind, ip string, details ...any) {
	args := append([]any{"event", kind, "ip", ip}, details...)
	s.audit.Warn("security event", args...)
}
