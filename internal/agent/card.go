package agent

import (
	"encoding/json"
	"sync"
)

type Capabilities struct {
	Streaming         bool `json:"streaming"`
	PushNotifications bool `json:"pushNotifications"`
}

type Skill struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Methods     []string `json:"methods"`
}

type Card struct {
	Name               string            `json:"name"`
	Description        string            `json:"description"`
	Version            string            `json:"version"`
	URL                string            `json:"url"`
	Capabilities       Capabilities      `json:"capabilities"`
	Endpoints          map[string]string `json:"endpoints"`
	DefaultInputModes  []string          `json:"defaultInputModes"`
	DefaultOutputModes []string          `json:"defaultOutputModes"`
	Skills             []Skill           `json:"skills"`
}

const Version = "1.0.0"

// BaseURL is advertised in the agent card; set it before the first LoadAgentCard call.
var BaseURL = "http://localhost:8080"

// AgentCardData holds the serialized card once LoadAgentCard succeeds.
var AgentCardData []byte

var (
	loadOnce sync.Once
	loadErr  error
)

func NewCard(baseURL string) Card {
	return Card{
		Name:        "Fondue Chalet Strategy Agent",
		Description: "Pick a channel and up to two audience segments, mix them into a blended profile, and score campaign ideas against the Fondue Chalet brand guidelines.",
		Version:     Version,
		URL:         baseURL + "/a2a/strategy",
		Capabilities: Capabilities{
			Streaming:         false,
			PushNotifications: false,
		},
		Endpoints: map[string]string{
			"a2a":     baseURL + "/a2a/strategy",
			"catalog": baseURL + "/catalog",
			"card":    baseURL + "/sessions/{sessionId}/card",
			"health":  baseURL + "/health",
		},
		DefaultInputModes:  []string{"text"},
		DefaultOutputModes: []string{"text", "data"},
		Skills: []Skill{
			{
				ID:          "audience-selection",
				Name:        "Audience selection",
				Description: "Select a channel and toggle up to two audience profiles.",
				Methods:     []string{"session/create", "session/get", "channel/select", "audience/toggle", "session/reset"},
			},
			{
				ID:          "audience-mix",
				Name:        "Mixed audience profile",
				Description: "Blend the two selected audiences into one generated profile.",
				Methods:     []string{"profile/mix"},
			},
			{
				ID:          "idea-evaluation",
				Name:        "Campaign idea evaluation",
				Description: "Score a campaign idea 0-100 against the active profile, channel and brand guidelines.",
				Methods:     []string{"idea/evaluate", "message/send"},
			},
		},
	}
}

// LoadAgentCard serializes the card for BaseURL once.
func LoadAgentCard() error {
	loadOnce.Do(func() {
		AgentCardData, loadErr = json.MarshalIndent(NewCard(BaseURL), "", "  ")
	})
	return loadErr
}
