// Package selection implements the channel/audience selection state machine
// and the active profile resolver.
package selection

import (
	"errors"

	"github.com/BerylCAtieno/fondue-strategy-agent/internal/catalog"
	"github.com/BerylCAtieno/fondue-strategy-agent/internal/models"
)

// ErrNotMixable is returned when a mixed profile is offered while the
// selection does not hold exactly two audiences.
var ErrNotMixable = errors.New("mixed profile requires exactly two selected audiences")

// State holds one user's selection. It is not safe for concurrent use.
//
// Every selection change advances Generation, so callers can tag an external
// request with the generation it was issued for and drop late responses.
type State struct {
	channel    models.Channel
	audiences  Pair
	mixed      *models.AudienceProfile
	generation uint64
}

func New() *State {
	return &State{}
}

// SelectChannel starts a fresh decision path on channel c.
func (s *State) SelectChannel(c models.Channel) {
	s.channel = c
	s.audiences.Clear()
	s.mixed = nil
	s.generation++
}

// ToggleAudience removes a if it is held, otherwise adds it, evicting the
// oldest of two held audiences when necessary.
func (s *State) ToggleAudience(a models.AudienceProfile) {
	if !s.audiences.Remove(a.ID) {
		s.audiences.Push(catalog.CloneProfile(a))
	}
	s.mixed = nil
	s.generation++
}

func (s *State) Reset() {
	s.channel = ""
	s.audiences.Clear()
	s.mixed = nil
	s.generation++
}

// SetMixed installs a synthesized profile for the current pair. It does not
// count as a selection change.
func (s *State) SetMixed(p models.AudienceProfile) error {
	if s.audiences.Len() != 2 {
		return ErrNotMixable
	}
	mixed := catalog.CloneProfile(p)
	s.mixed = &mixed
	return nil
}

// Channel returns the selected channel, if any.
func (s *State) Channel() (models.Channel, bool) {
	return s.channel, s.channel != ""
}

func (s *State) Audiences() []models.AudienceProfile {
	return s.audiences.Items()
}

func (s *State) AudienceIDs() []string {
	return s.audiences.IDs()
}

func (s *State) Mixed() (models.AudienceProfile, bool) {
	if s.mixed == nil {
		return models.AudienceProfile{}, false
	}
	return catalog.CloneProfile(*s.mixed), true
}

// CanMix reports whether two audiences are held and not yet mixed.
func (s *State) CanMix() bool {
	return s.audiences.Len() == 2 && s.mixed == nil
}

func (s *State) Generation() uint64 {
	return s.generation
}
