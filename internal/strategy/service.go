// Package strategy coordinates per-user selection sessions and the external
// mix and evaluate calls made on their behalf.
package strategy

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/BerylCAtieno/fondue-strategy-agent/internal/catalog"
	"github.com/BerylCAtieno/fondue-strategy-agent/internal/models"
	"github.com/BerylCAtieno/fondue-strategy-agent/internal/profiler"
	"github.com/BerylCAtieno/fondue-strategy-agent/internal/selection"
	"github.com/google/uuid"
	"github.com/sourcegraph/conc/panics"
	"go.uber.org/zap"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrUnknownChannel  = errors.New("unknown channel")
	ErrUnknownAudience = errors.New("unknown audience")
)

// ProfileMixer blends two audience profiles.
type ProfileMixer interface {
	Mix(ctx context.Context, a, b models.AudienceProfile) (*models.AudienceProfile, error)
}

// IdeaEvaluator scores a campaign idea.
type IdeaEvaluator interface {
	Evaluate(ctx context.Context, in profiler.EvaluationInput) (*models.EvaluationResult, error)
}

// Outcome says what became of a mix or evaluate request.
type Outcome string

const (
	// OutcomeSkipped: preconditions not met or a call is already in flight; nothing was sent.
	OutcomeSkipped Outcome = "skipped"
	// OutcomeApplied: the response was applied to the session.
	OutcomeApplied Outcome = "applied"
	// OutcomeStale: the selection changed while the call was in flight; the response was dropped.
	OutcomeStale Outcome = "stale"
	// OutcomeFailed: the call or its response failed; the session is unchanged.
	OutcomeFailed Outcome = "failed"
)

// Result of a mix or evaluate request. Err is set only for OutcomeFailed.
type Result struct {
	Outcome  Outcome
	Snapshot Snapshot
	Err      error
}

type Options struct {
	CallTimeout time.Duration
	SessionTTL  time.Duration
}

const (
	defaultCallTimeout = 45 * time.Second
	defaultSessionTTL  = 2 * time.Hour
)

type Service struct {
	catalog   *catalog.Catalog
	mixer     ProfileMixer
	evaluator IdeaEvaluator
	opts      Options
	logger    *zap.Logger
	now       func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewService(cat *catalog.Catalog, mixer ProfileMixer, evaluator IdeaEvaluator, opts Options, logger *zap.Logger) *Service {
	if opts.CallTimeout <= 0 {
		opts.CallTimeout = defaultCallTimeout
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = defaultSessionTTL
	}
	return &Service{
		catalog:   cat,
		mixer:     mixer,
		evaluator: evaluator,
		opts:      opts,
		logger:    logger,
		now:       time.Now,
		sessions:  make(map[string]*Session),
	}
}

func (s *Service) Catalog() *catalog.Catalog {
	return s.catalog
}

func (s *Service) CreateSession() Snapshot {
	sess := newSession(uuid.New().String(), s.now())

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	s.logger.Info("Session created", zap.String("session_id", sess.ID))

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.snapshotLocked(sess)
}

func (s *Service) Get(id string) (Snapshot, error) {
	return s.withSession(id, func(*Session) {})
}

func (s *Service) SelectChannel(id string, channel models.Channel) (Snapshot, error) {
	if _, ok := s.catalog.Channel(channel); !ok {
		return Snapshot{}, ErrUnknownChannel
	}
	return s.withSession(id, func(sess *Session) {
		sess.state.SelectChannel(channel)
		sess.clearLocked()
	})
}

func (s *Service) ToggleAudience(id, audienceID string) (Snapshot, error) {
	audience, ok := s.catalog.Audience(audienceID)
	if !ok {
		return Snapshot{}, ErrUnknownAudience
	}
	return s.withSession(id, func(sess *Session) {
		sess.state.ToggleAudience(audience)
		sess.clearLocked()
	})
}

func (s *Service) Reset(id string) (Snapshot, error) {
	return s.withSession(id, func(sess *Session) {
		sess.state.Reset()
		sess.clearLocked()
	})
}

// Mix synthesizes a profile from the two held audiences. The call is tagged
// with the selection generation and its answer is dropped if the selection
// moved on in the meantime.
func (s *Service) Mix(ctx context.Context, id string) (Result, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return Result{}, err
	}

	sess.mu.Lock()
	if sess.mixing || !sess.state.CanMix() {
		snap := s.snapshotLocked(sess)
		sess.mu.Unlock()
		return Result{Outcome: OutcomeSkipped, Snapshot: snap}, nil
	}
	held := sess.state.Audiences()
	token := sess.state.Generation()
	sess.mixing = true
	sess.mu.Unlock()

	s.logger.Info("Mixing audiences",
		zap.String("session_id", id),
		zap.String("first", held[0].ID),
		zap.String("second", held[1].ID),
	)

	var mixed *models.AudienceProfile
	callErr := s.call(ctx, func(ctx context.Context) error {
		var err error
		mixed, err = s.mixer.Mix(ctx, held[0], held[1])
		return err
	})

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.mixing = false
	sess.lastSeen = s.now()

	result := Result{Outcome: OutcomeApplied}
	switch {
	case callErr != nil:
		s.logger.Error("Mixing failed", zap.String("session_id", id), zap.Error(callErr))
		result = Result{Outcome: OutcomeFailed, Err: callErr}
	case mixed == nil:
		s.logger.Error("Mixing failed", zap.String("session_id", id), zap.Error(profiler.ErrEmptyResponse))
		result = Result{Outcome: OutcomeFailed, Err: profiler.ErrEmptyResponse}
	case sess.state.Generation() != token:
		s.logger.Warn("Discarding stale mix response", zap.String("session_id", id), zap.String("profile_id", mixed.ID))
		result = Result{Outcome: OutcomeStale}
	default:
		if err := sess.state.SetMixed(*mixed); err != nil {
			s.logger.Error("Mixing failed", zap.String("session_id", id), zap.Error(err))
			result = Result{Outcome: OutcomeFailed, Err: err}
		}
	}
	result.Snapshot = s.snapshotLocked(sess)
	return result, nil
}

// Evaluate scores idea against the session's channel and active profile.
// A blank idea, a missing channel or profile, or an evaluation already in
// flight is a silent no-op.
func (s *Service) Evaluate(ctx context.Context, id, idea string) (Result, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return Result{}, err
	}

	idea = strings.TrimSpace(idea)

	sess.mu.Lock()
	channel, hasChannel := sess.state.Channel()
	active := selection.Resolve(sess.state)
	if idea == "" || !hasChannel || !active.Present() || sess.evaluating {
		snap := s.snapshotLocked(sess)
		sess.mu.Unlock()
		return Result{Outcome: OutcomeSkipped, Snapshot: snap}, nil
	}
	token := sess.state.Generation()
	sess.evaluating = true
	sess.mu.Unlock()

	s.logger.Info("Evaluating idea",
		zap.String("session_id", id),
		zap.String("channel", string(channel)),
		zap.String("profile_id", active.Profile.ID),
		zap.Int("idea_length", len(idea)),
	)

	var evaluation *models.EvaluationResult
	callErr := s.call(ctx, func(ctx context.Context) error {
		var err error
		evaluation, err = s.evaluator.Evaluate(ctx, profiler.EvaluationInput{
			Idea:    idea,
			Channel: channel,
			Profile: active.Profile,
		})
		return err
	})

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.evaluating = false
	sess.lastSeen = s.now()

	result := Result{Outcome: OutcomeApplied}
	switch {
	case callErr != nil:
		s.logger.Error("Evaluation failed", zap.String("session_id", id), zap.Error(callErr))
		result = Result{Outcome: OutcomeFailed, Err: callErr}
	case evaluation == nil:
		s.logger.Error("Evaluation failed", zap.String("session_id", id), zap.Error(profiler.ErrEmptyResponse))
		result = Result{Outcome: OutcomeFailed, Err: profiler.ErrEmptyResponse}
	case sess.state.Generation() != token:
		s.logger.Warn("Discarding stale evaluation", zap.String("session_id", id))
		result = Result{Outcome: OutcomeStale}
	default:
		sess.evaluation = evaluation
		s.logger.Info("Evaluation applied", zap.String("session_id", id), zap.Float64("score", evaluation.Score))
	}
	result.Snapshot = s.snapshotLocked(sess)
	return result, nil
}

// call runs an external request to completion. The caller's cancellation is
// not propagated; only the per-call timeout bounds it. Panics become errors.
func (s *Service) call(ctx context.Context, fn func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.opts.CallTimeout)
	defer cancel()

	var err error
	var catcher panics.Catcher
	catcher.Try(func() { err = fn(ctx) })
	if recovered := catcher.Recovered(); recovered != nil {
		return recovered.AsError()
	}
	return err
}

func (s *Service) lookup(id string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

func (s *Service) withSession(id string, fn func(*Session)) (Snapshot, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return Snapshot{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	fn(sess)
	sess.lastSeen = s.now()
	return s.snapshotLocked(sess), nil
}

func (s *Service) snapshotLocked(sess *Session) Snapshot {
	snap := Snapshot{
		SessionID:  sess.ID,
		Audiences:  sess.state.AudienceIDs(),
		Active:     selection.Resolve(sess.state),
		CanMix:     sess.state.CanMix(),
		Mixing:     sess.mixing,
		Evaluating: sess.evaluating,
	}
	if ch, ok := sess.state.Channel(); ok {
		if info, found := s.catalog.Channel(ch); found {
			snap.Channel = &info
		}
	}
	if sess.evaluation != nil {
		evaluation := *sess.evaluation
		snap.Evaluation = &evaluation
	}
	return snap
}
