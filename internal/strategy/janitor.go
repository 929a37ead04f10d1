package strategy

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Sweep removes sessions idle for longer than the session TTL. Sessions with
// a call in flight are kept.
func (s *Service) Sweep() int {
	cutoff := s.now().Add(-s.opts.SessionTTL)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		sess.mu.Lock()
		expired := sess.lastSeen.Before(cutoff) && !sess.mixing && !sess.evaluating
		sess.mu.Unlock()
		if expired {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps expired sessions until ctx is done.
func (s *Service) Run(ctx context.Context) {
	interval := s.opts.SessionTTL / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := s.Sweep(); removed > 0 {
				s.logger.Info("Expired sessions removed", zap.Int("count", removed))
			}
		}
	}
}
