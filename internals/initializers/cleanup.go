package initializers

import (
	"log/slog"
	"time"

	"github.com/bu6wer8/student-services-V2/internals/auth"
)

// StartJanitor sweeps the in-memory auth stores on a fixed cadence so stale
// entries are purged even when no requests arrive. The stores also sweep
// opportunistically on their own read paths; this ticker is the backstop.
func StartJanitor(svc *auth.Service, interval time.Duration, log *slog.Logger) {
	ticker := time.NewTicker(interval)

	go func() {
		for range ticker.C {
			expired := svc.Sessions.SweepExpired()
			svc.Captcha.Sweep()
			svc.Attempts.Sweep()

			if expired > 0 {
				log.Info("janitor: purged expired sessions", "count", expired)
			}
		}
	}()
}
