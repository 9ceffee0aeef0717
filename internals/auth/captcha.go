package auth

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/bu6wer8/student-services-V2/internals/utils"
)

const (
	captchaTTL         = 5 * time.Minute
	captchaMaxAttempts = 3
	captchaSweepEvery  = 5 * time.Minute
)

type challenge struct {
	answer    int
	expiresAt time.Time
	attempts  int
}

// CaptchaStore holds pending math challenges for the login form. Challenges
// are single-use: the first correct answer consumes them, and so does the
// third wrong one.
type CaptchaStore struct {
	mu         sync.Mutex
	challenges map[string]*challenge
	now        Clock
	lastSweep  time.Time
}

// ChallengePayload is what the login form receives for a fresh challenge.
type ChallengePayload struct {
	Token     string `json:"token"`
	Question  string `json:"question"`
	ExpiresIn int    `json:"expires_in"`
}

func NewCaptchaStore(now Clock) *CaptchaStore {
	return &CaptchaStore{
		challenges: make(map[string]*challenge),
		now:        now,
		lastSweep:  now(),
	}
}

// Generate creates a new math challenge and returns its token, the question
// to display, and the TTL in seconds. Expired challenges are swept as a side
// effect, at most once per sweep interval.
func (s *CaptchaStore) Generate() ChallengePayload {
	a := rand.IntN(10) + 1
	b := rand.IntN(10) + 1

	var answer int
	var question string
	switch rand.IntN(3) {
	case 0:
		answer = a + b
		question = fmt.Sprintf("%d + %d", a, b)
	case 1:
		// Keep the result non-negative
		if a < b {
			a, b = b, a
		}
		answer = a - b
		question = fmt.Sprintf("%d - %d", a, b)
	default:
		answer = a * b
		question = fmt.Sprintf("%d × %d", a, b)
	}

	token := utils.SecureToken(32)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepLocked()

	s.challenges[token] = &challenge{
		answer:    answer,
		expiresAt: s.now().Add(captchaTTL),
	}

	return ChallengePayload{
		Token:     token,
		Question:  fmt.Sprintf("What is %s?", question),
		ExpiresIn: int(captchaTTL.Seconds()),
	}
}

// Verify checks a submitted answer against the challenge identified by token.
// Unknown tokens, expired challenges, exhausted attempt budgets and
// non-numeric answers all report false. A correct answer consumes the
// challenge; a wrong one leaves it in place until the attempt cap.
func (s *CaptchaStore) Verify(token, submitted string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch, ok := s.challenges[token]
	if !ok {
		return false
	}

	if s.now().After(ch.expiresAt) {
		delete(s.challenges, token)
		return false
	}

	ch.attempts++
	if ch.attempts > captchaMaxAttempts {
		delete(s.challenges, token)
		return false
	}

	answer, err := strconv.Atoi(strings.TrimSpace(submitted))
	if err != nil {
		return false
	}

	if answer == ch.answer {
		delete(s.challenges, token)
		return true
	}

	return false
}

// Sweep purges expired challenges. Callers may invoke it on any cadence; the
// store itself throttles the actual work to once per sweep interval.
func (s *CaptchaStore) Sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
}

// Pending reports the number of live challenges.
func (s *CaptchaStore) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.challenges)
}

func (s *CaptchaStore) sweepLocked() {
	now := s.now()
	if now.Sub(s.lastSweep) < captchaSweepEvery {
		return
	}

	for token, ch := range s.challenges {
		if now.After(ch.expiresAt) {
			delete(s.challenges, token)
		}
	}

	s.lastSweep = now
}
