package models

// Channel is the marketing medium a strategy is planned for.
type Channel string

const (
	ChannelPhoto      Channel = "Photo"
	ChannelVideo      Channel = "Video"
	ChannelPost       Channel = "Post"
	ChannelAd         Channel = "Ad"
	ChannelEDM        Channel = "EDM"
	ChannelInfluencer Channel = "Influencer"
)

// ChannelInfo is a catalog entry for a channel.
type ChannelInfo struct {
	ID    Channel `json:"id"`
	Label string  `json:"label"`
	Icon  string  `json:"icon"`
}

// MixIcon is attached to every synthesized profile.
const MixIcon = "sparkles"

// AudienceProfile describes a target customer segment.
type AudienceProfile struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Profile        string   `json:"profile"`
	AvgAge         string   `json:"avgAge"`
	DecisionTime   string   `json:"decisionTime"`
	Interests      []string `json:"interests"`
	BestVisitTimes []string `json:"bestVisitTimes"`
	PeakOnlineTime []string `json:"peakOnlineTime"`
	Expectation    string   `json:"expectation"`
	Icon           string   `json:"icon"`
}

// KeywordCheck reports which mandatory brand keywords an idea uses.
type KeywordCheck struct {
	Found   []string `json:"found"`
	Missing []string `json:"missing"`
	Count   int      `json:"count"`
}

// EvaluationResult is the scored alignment of a campaign idea.
type EvaluationResult struct {
	Score             float64      `json:"score"`
	Reasoning         string       `json:"reasoning"`
	ImprovementTip    string       `json:"improvementTip"`
	VisualSuggestions []string     `json:"visualSuggestions"`
	KeywordCheck      KeywordCheck `json:"keywordCheck"`
}

// BrandGuidelines is the fixed scoring context sent with every evaluation.
type BrandGuidelines struct {
	KeySentences []string `json:"keySentences"`
	Keywords     []string `json:"keywords"`
}
