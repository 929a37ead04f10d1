// Package render turns session snapshots into the profile card and
// evaluation panel shown to users.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/BerylCAtieno/fondue-strategy-agent/internal/models"
	"github.com/BerylCAtieno/fondue-strategy-agent/internal/strategy"
	"github.com/yuin/goldmark"
)

const (
	HintMix      = "Click 'Generate Mixed Angle' to combine your selections."
	HintComplete = "Complete the decision bracket on the left to reveal the deep-dive audience profile."

	// missingKeywordLimit caps how many missing keywords the panel lists.
	missingKeywordLimit = 5
)

// Hint is the placeholder text shown when no profile card is available.
func Hint(snap strategy.Snapshot) string {
	if snap.CanMix {
		return HintMix
	}
	return HintComplete
}

// ProfileMarkdown renders the active profile card, or the hint when the
// channel or active profile is missing.
func ProfileMarkdown(snap strategy.Snapshot) string {
	if snap.Channel == nil || !snap.Active.Present() {
		return fmt.Sprintf("_%s_\n", Hint(snap))
	}

	p := snap.Active.Profile
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("# %s\n\n", p.Title))
	builder.WriteString(fmt.Sprintf("**%s Strategy** · Target Audience Profile (%s)\n\n", snap.Channel.ID, snap.Active.Kind))

	builder.WriteString("**The Angle:**\n\n")
	builder.WriteString(fmt.Sprintf("> %s\n\n", p.Description))

	builder.WriteString("**Demographics:**\n")
	builder.WriteString(fmt.Sprintf("- Profile: %s\n", p.Profile))
	builder.WriteString(fmt.Sprintf("- Avg Age: %s\n", p.AvgAge))

	writeList(&builder, "Interests", p.Interests)

	builder.WriteString("\n**Logistics & Timing:**\n")
	builder.WriteString(fmt.Sprintf("- Decision Window: %s\n", p.DecisionTime))
	if len(p.BestVisitTimes) > 0 {
		builder.WriteString(fmt.Sprintf("- Best Visit Times: %s\n", strings.Join(p.BestVisitTimes, ", ")))
	}
	if len(p.PeakOnlineTime) > 0 {
		builder.WriteString(fmt.Sprintf("- Peak Online Activity: %s\n", strings.Join(p.PeakOnlineTime, ", ")))
	}

	builder.WriteString("\n**Core Expectation:**\n\n")
	builder.WriteString(p.Expectation)
	builder.WriteString("\n")

	return builder.String()
}

// EvaluationMarkdown renders the evaluation panel. It returns "" for nil.
func EvaluationMarkdown(result *models.EvaluationResult) string {
	if result == nil {
		return ""
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("## Alignment Score: %.0f%%\n\n", result.Score))
	builder.WriteString(result.Reasoning)
	builder.WriteString("\n\n")
	builder.WriteString(fmt.Sprintf("**Improvement Tip:** %s\n", result.ImprovementTip))

	writeList(&builder, "Visual Suggestions", result.VisualSuggestions)

	builder.WriteString(fmt.Sprintf("\n**Keywords Used (%d):** ", result.KeywordCheck.Count))
	if len(result.KeywordCheck.Found) > 0 {
		builder.WriteString(strings.Join(result.KeywordCheck.Found, ", "))
	} else {
		builder.WriteString("none")
	}
	builder.WriteString("\n")

	if missing := result.KeywordCheck.Missing; len(missing) > 0 {
		more := ""
		if len(missing) > missingKeywordLimit {
			more = fmt.Sprintf(" (+%d more)", len(missing)-missingKeywordLimit)
			missing = missing[:missingKeywordLimit]
		}
		builder.WriteString(fmt.Sprintf("\n**Try Adding:** %s%s\n", strings.Join(missing, ", "), more))
	}

	return builder.String()
}

func writeList(builder *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	builder.WriteString(fmt.Sprintf("\n**%s:**\n", heading))
	for _, item := range items {
		builder.WriteString(fmt.Sprintf("- %s\n", strings.TrimSpace(item)))
	}
}

// SnapshotMarkdown is the full card: profile plus evaluation panel.
func SnapshotMarkdown(snap strategy.Snapshot) string {
	md := ProfileMarkdown(snap)
	if eval := EvaluationMarkdown(snap.Evaluation); eval != "" {
		md += "\n---\n\n" + eval
	}
	return md
}

var pageTemplate = template.Must(template.New("card").Parse(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body>
<header><h1>Fondue Chalet</h1><p>Melbourne Strategy Tool</p></header>
<main>{{.Body}}</main>
</body>
</html>
`))

// CardHTML converts the card markdown to a standalone HTML page.
func CardHTML(snap strategy.Snapshot) ([]byte, error) {
	var body bytes.Buffer
	if err := goldmark.Convert([]byte(SnapshotMarkdown(snap)), &body); err != nil {
		return nil, fmt.Errorf("render card: %w", err)
	}

	title := "Strategy Tool"
	if snap.Active.Present() {
		title = snap.Active.Profile.Title
	}

	var page bytes.Buffer
	err := pageTemplate.Execute(&page, struct {
		Title string
		Body  template.HTML
	}{
		Title: title,
		Body:  template.HTML(body.String()),
	})
	if err != nil {
		return nil, fmt.Errorf("render card: %w", err)
	}
	return page.Bytes(), nil
}
