package profiler

import (
	"fmt"
	"strings"

	"github.com/BerylCAtieno/fondue-strategy-agent/internal/models"
)

const brandName = "Fondue Chalet Melbourne"

const mixSystemInstruction = `You are a senior marketing strategist. Create a 'Mixed Audience Profile' that blends the characteristics, interests, and expectations of two segments. Return a JSON object matching the AudienceProfile schema (id, title, description, profile, avgAge, decisionTime, interests[], bestVisitTimes[], peakOnlineTime[], expectation). The title should be 'Mixed: [Title 1] & [Title 2]'.`

const evaluateSystemInstruction = `You are a senior marketing strategist. Evaluate ideas based on their alignment with the specific audience, channel, and brand guidelines. Return a JSON object with 'score' (number 0-100), 'reasoning' (string, max 2 sentences), 'improvementTip' (string, a specific tip on how to reach 100% alignment), 'visualSuggestions' (string array), and 'keywordCheck' (object with 'found' array, 'missing' array, and 'count' number). IMPORTANT: Be objective and consistent. If the user incorporates your previous 'improvementTip' or more brand keywords, the score MUST increase.`

// MixedTitle is the literal title every mixed profile carries.
func MixedTitle(a, b models.AudienceProfile) string {
	return fmt.Sprintf("Mixed: %s & %s", a.Title, b.Title)
}

func buildMixPrompt(a, b models.AudienceProfile) string {
	return fmt.Sprintf(`Create a mixed audience profile for %s by combining these two segments:
Segment 1: %s (%s)
Segment 2: %s (%s)
The title must be exactly "%s".`,
		brandName, a.Title, a.Description, b.Title, b.Description, MixedTitle(a, b))
}

func buildEvaluatePrompt(in EvaluationInput, g models.BrandGuidelines) string {
	p := in.Profile
	return fmt.Sprintf(`Evaluate this marketing idea for %s.
Channel: %s
Audience: %s
Audience Context: %s
Demographics: %s, Age: %s
Core Expectation: %s

BRAND GUIDELINES:
Key Sentences: %s
Mandatory Keywords: %s

Idea: %s`,
		brandName,
		in.Channel,
		p.Title,
		p.Description,
		p.Profile, p.AvgAge,
		p.Expectation,
		strings.Join(g.KeySentences, " | "),
		strings.Join(g.Keywords, ", "),
		strings.TrimSpace(in.Idea),
	)
}

var audienceProfileSchema = &Schema{
	Type: TypeObject,
	Properties: map[string]*Schema{
		"id":             {Type: TypeString},
		"title":          {Type: TypeString},
		"description":    {Type: TypeString},
		"profile":        {Type: TypeString},
		"avgAge":         {Type: TypeString},
		"decisionTime":   {Type: TypeString},
		"interests":      stringArray(),
		"bestVisitTimes": stringArray(),
		"peakOnlineTime": stringArray(),
		"expectation":    {Type: TypeString},
	},
	Required: []string{"id", "title", "description", "profile", "avgAge", "decisionTime", "interests", "bestVisitTimes", "peakOnlineTime", "expectation"},
}

var evaluationSchema = &Schema{
	Type: TypeObject,
	Properties: map[string]*Schema{
		"score":             {Type: TypeNumber},
		"reasoning":         {Type: TypeString},
		"improvementTip":    {Type: TypeString},
		"visualSuggestions": stringArray(),
		"keywordCheck": {
			Type: TypeObject,
			Properties: map[string]*Schema{
				"found":   stringArray(),
				"missing": stringArray(),
				"count":   {Type: TypeNumber},
			},
			Required: []string{"found", "missing", "count"},
		},
	},
	Required: []string{"score", "reasoning", "improvementTip", "visualSuggestions", "keywordCheck"},
}
