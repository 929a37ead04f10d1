package profiler

import (
	"context"
	"fmt"

	"github.com/BerylCAtieno/fondue-strategy-agent/internal/models"
	"go.uber.org/zap"
)

// MixCache stores synthesized profiles by the ordered pair of source ids.
type MixCache interface {
	GetMix(ctx context.Context, firstID, secondID string) (*models.AudienceProfile, error)
	PutMix(ctx context.Context, firstID, secondID string, p models.AudienceProfile) error
}

// Mixer asks the generative service to blend two audience profiles.
type Mixer struct {
	gen    Generator
	cache  MixCache
	logger *zap.Logger
}

func NewMixer(gen Generator, logger *zap.Logger) *Mixer {
	return &Mixer{gen: gen, logger: logger}
}

// WithCache enables the mixed-profile cache. Cache failures never fail a mix.
func (m *Mixer) WithCache(cache MixCache) *Mixer {
	m.cache = cache
	return m
}

type mixedProfileWire struct {
	ID             *string   `json:"id"`
	Title          *string   `json:"title"`
	Description    *string   `json:"description"`
	Profile        *string   `json:"profile"`
	AvgAge         *string   `json:"avgAge"`
	DecisionTime   *string   `json:"decisionTime"`
	Interests      *[]string `json:"interests"`
	BestVisitTimes *[]string `json:"bestVisitTimes"`
	PeakOnlineTime *[]string `json:"peakOnlineTime"`
	Expectation    *string   `json:"expectation"`
}

// Mix returns the blended profile of a and b. The title is forced to the
// "Mixed: A & B" pattern and the icon is always models.MixIcon.
func (m *Mixer) Mix(ctx context.Context, a, b models.AudienceProfile) (*models.AudienceProfile, error) {
	if m.cache != nil {
		cached, err := m.cache.GetMix(ctx, a.ID, b.ID)
		if err != nil {
			m.logger.Warn("Mix cache lookup failed", zap.String("first", a.ID), zap.String("second", b.ID), zap.Error(err))
		} else if cached != nil {
			m.logger.Debug("Mix cache hit", zap.String("first", a.ID), zap.String("second", b.ID))
			return cached, nil
		}
	}

	text, err := m.gen.GenerateJSON(ctx, Request{
		System: mixSystemInstruction,
		Prompt: buildMixPrompt(a, b),
		Schema: audienceProfileSchema,
	})
	if err != nil {
		return nil, fmt.Errorf("mix %s and %s: %w", a.ID, b.ID, err)
	}

	profile, err := parseMixedProfile(text, a, b)
	if err != nil {
		m.logger.Error("Failed to parse mixed profile",
			zap.String("provider", m.gen.Name()),
			zap.String("response_preview", preview(text)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("mix %s and %s: %w", a.ID, b.ID, err)
	}

	if m.cache != nil {
		if err := m.cache.PutMix(ctx, a.ID, b.ID, *profile); err != nil {
			m.logger.Warn("Mix cache store failed", zap.String("first", a.ID), zap.String("second", b.ID), zap.Error(err))
		}
	}
	return profile, nil
}

func parseMixedProfile(text string, a, b models.AudienceProfile) (*models.AudienceProfile, error) {
	var wire mixedProfileWire
	if err := decodeJSON(text, &wire); err != nil {
		return nil, err
	}

	var missing missingFields
	p := models.AudienceProfile{
		ID:             missing.str("id", wire.ID),
		Title:          missing.str("title", wire.Title),
		Description:    missing.str("description", wire.Description),
		Profile:        missing.str("profile", wire.Profile),
		AvgAge:         missing.str("avgAge", wire.AvgAge),
		DecisionTime:   missing.str("decisionTime", wire.DecisionTime),
		Interests:      missing.list("interests", wire.Interests),
		BestVisitTimes: missing.list("bestVisitTimes", wire.BestVisitTimes),
		PeakOnlineTime: missing.list("peakOnlineTime", wire.PeakOnlineTime),
		Expectation:    missing.str("expectation", wire.Expectation),
	}
	if err := missing.err(); err != nil {
		return nil, err
	}

	if p.ID == "" {
		p.ID = "mixed-" + a.ID + "-" + b.ID
	}
	p.Title = MixedTitle(a, b)
	p.Icon = models.MixIcon
	return &p, nil
}
