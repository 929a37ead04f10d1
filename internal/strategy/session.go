package strategy

import (
	"sync"
	"time"

	"github.com/BerylCAtieno/fondue-strategy-agent/internal/models"
	"github.com/BerylCAtieno/fondue-strategy-agent/internal/selection"
)

// Session is one user's decision path. All fields are guarded by mu.
type Session struct {
	ID string

	mu         sync.Mutex
	state      *selection.State
	mixing     bool
	evaluating bool
	evaluation *models.EvaluationResult
	lastSeen   time.Time
}

func newSession(id string, now time.Time) *Session {
	return &Session{ID: id, state: selection.New(), lastSeen: now}
}

// Snapshot is a read-only view of a session for rendering.
type Snapshot struct {
	SessionID  string                   `json:"sessionId"`
	Channel    *models.ChannelInfo      `json:"channel,omitempty"`
	Audiences  []string                 `json:"audiences"`
	Active     selection.ActiveProfile  `json:"active"`
	CanMix     bool                     `json:"canMix"`
	Mixing     bool                     `json:"mixing"`
	Evaluating bool                     `json:"evaluating"`
	Evaluation *models.EvaluationResult `json:"evaluation,omitempty"`
}

// clearLocked drops results tied to the previous selection.
func (s *Session) clearLocked() {
	s.evaluation = nil
}
