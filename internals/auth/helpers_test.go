package auth

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"
)

// fakeClock is a hand-driven clock for the stores under test.
type fakeClock struct {
	mu  sync.Mutex
	cur time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{cur: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cur
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cur = c.cur.Add(d)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// solveChallenge computes the answer to a generated question of the form
// "What is A op B?".
func solveChallenge(t *testing.T, question string) int {
	t.Helper()

	var a, b int
	var op string
	if _, err := fmt.Sscanf(question, "What is %d %s %d?", &a, &op, &b); err != nil {
		t.Fatalf("unexpected question format %q: %v", question, err)
	}

	switch op {
	case "+":
		return a + b
	case "-":
		return a - b
	case "×":
		return a * b
	}
	t.Fatalf("unexpected operator %q in %q", op, question)
	return 0
}
