// Package catalog holds the fixed channel and audience lists and the brand
// guidelines used to score campaign ideas.
package catalog

import (
	"slices"
	"sync"

	"github.com/BerylCAtieno/fondue-strategy-agent/internal/models"
)

// Catalog is an immutable lookup over channels and audience profiles.
// Every accessor returns copies so callers cannot mutate the shared data.
type Catalog struct {
	channels     []models.ChannelInfo
	audiences    []models.AudienceProfile
	channelByID  map[models.Channel]int
	audienceByID map[string]int
	guidelines   models.BrandGuidelines
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the process-wide catalog, built on first use.
func Default() *Catalog {
	defaultOnce.Do(func() {
		defaultCatalog = New(channels, audiences, models.BrandGuidelines{
			KeySentences: keySentences,
			Keywords:     keywords,
		})
	})
	return defaultCatalog
}

// New builds a catalog from the given entries. Later duplicates of an id are ignored.
func New(chs []models.ChannelInfo, auds []models.AudienceProfile, g models.BrandGuidelines) *Catalog {
	c := &Catalog{
		channelByID:  make(map[models.Channel]int, len(chs)),
		audienceByID: make(map[string]int, len(auds)),
		guidelines: models.BrandGuidelines{
			KeySentences: slices.Clone(g.KeySentences),
			Keywords:     slices.Clone(g.Keywords),
		},
	}
	for _, ch := range chs {
		if _, dup := c.channelByID[ch.ID]; dup {
			continue
		}
		c.channelByID[ch.ID] = len(c.channels)
		c.channels = append(c.channels, ch)
	}
	for _, a := range auds {
		if _, dup := c.audienceByID[a.ID]; dup {
			continue
		}
		c.audienceByID[a.ID] = len(c.audiences)
		c.audiences = append(c.audiences, CloneProfile(a))
	}
	return c
}

func (c *Catalog) Channels() []models.ChannelInfo {
	return slices.Clone(c.channels)
}

func (c *Catalog) Channel(id models.Channel) (models.ChannelInfo, bool) {
	i, ok := c.channelByID[id]
	if !ok {
		return models.ChannelInfo{}, false
	}
	return c.channels[i], true
}

func (c *Catalog) Audiences() []models.AudienceProfile {
	out := make([]models.AudienceProfile, len(c.audiences))
	for i, a := range c.audiences {
		out[i] = CloneProfile(a)
	}
	return out
}

func (c *Catalog) Audience(id string) (models.AudienceProfile, bool) {
	i, ok := c.audienceByID[id]
	if !ok {
		return models.AudienceProfile{}, false
	}
	return CloneProfile(c.audiences[i]), true
}

func (c *Catalog) Guidelines() models.BrandGuidelines {
	return models.BrandGuidelines{
		KeySentences: slices.Clone(c.guidelines.KeySentences),
		Keywords:     slices.Clone(c.guidelines.Keywords),
	}
}

// CloneProfile deep-copies the list fields of a profile.
func CloneProfile(p models.AudienceProfile) models.AudienceProfile {
	p.Interests = slices.Clone(p.Interests)
	p.BestVisitTimes = slices.Clone(p.BestVisitTimes)
	p.PeakOnlineTime = slices.Clone(p.PeakOnlineTime)
	return p
}
