package selection

import "github.com/BerylCAtieno/fondue-strategy-agent/internal/models"

// ActiveKind tags which case of the active profile is present.
type ActiveKind int

const (
	ActiveNone ActiveKind = iota
	ActiveSingle
	ActiveMixed
)

func (k ActiveKind) String() string {
	switch k {
	case ActiveSingle:
		return "single"
	case ActiveMixed:
		return "mixed"
	default:
		return "none"
	}
}

func (k ActiveKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ActiveProfile is the profile shown to the user. Profile is only meaningful
// when Kind is not ActiveNone.
type ActiveProfile struct {
	Kind    ActiveKind             `json:"kind"`
	Profile models.AudienceProfile `json:"profile"`
}

func (a ActiveProfile) Present() bool {
	return a.Kind != ActiveNone
}

// Resolve derives the active profile: a mixed profile wins over a single
// selected audience; two unmixed audiences resolve to none.
func Resolve(s *State) ActiveProfile {
	mixed, hasMixed := s.Mixed()
	held := s.Audiences()

	switch {
	case hasMixed:
		return ActiveProfile{Kind: ActiveMixed, Profile: mixed}
	case len(held) == 1:
		return ActiveProfile{Kind: ActiveSingle, Profile: held[0]}
	default:
		return ActiveProfile{Kind: ActiveNone}
	}
}
