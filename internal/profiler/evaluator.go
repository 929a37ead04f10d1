package profiler

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/BerylCAtieno/fondue-strategy-agent/internal/models"
	"go.uber.org/zap"
)

// ErrEmptyIdea is returned for blank idea text; no request is sent.
var ErrEmptyIdea = errors.New("idea text is empty")

// EvaluationInput is the context an idea is scored against.
type EvaluationInput struct {
	Idea    string
	Channel models.Channel
	Profile models.AudienceProfile
}

// Evaluator scores campaign ideas against the brand guidelines.
type Evaluator struct {
	gen        Generator
	guidelines models.BrandGuidelines
	logger     *zap.Logger
}

func NewEvaluator(gen Generator, guidelines models.BrandGuidelines, logger *zap.Logger) *Evaluator {
	return &Evaluator{gen: gen, guidelines: guidelines, logger: logger}
}

type keywordCheckWire struct {
	Found   *[]string `json:"found"`
	Missing *[]string `json:"missing"`
	Count   *float64  `json:"count"`
}

type evaluationWire struct {
	Score             *float64          `json:"score"`
	Reasoning         *string           `json:"reasoning"`
	ImprovementTip    *string           `json:"improvementTip"`
	VisualSuggestions *[]string         `json:"visualSuggestions"`
	KeywordCheck      *keywordCheckWire `json:"keywordCheck"`
}

func (e *Evaluator) Evaluate(ctx context.Context, in EvaluationInput) (*models.EvaluationResult, error) {
	if strings.TrimSpace(in.Idea) == "" {
		return nil, ErrEmptyIdea
	}

	text, err := e.gen.GenerateJSON(ctx, Request{
		System: evaluateSystemInstruction,
		Prompt: buildEvaluatePrompt(in, e.guidelines),
		Schema: evaluationSchema,
	})
	if err != nil {
		return nil, fmt.Errorf("evaluate idea: %w", err)
	}

	result, err := parseEvaluation(text, len(e.guidelines.Keywords))
	if err != nil {
		e.logger.Error("Failed to parse evaluation",
			zap.String("provider", e.gen.Name()),
			zap.String("response_preview", preview(text)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("evaluate idea: %w", err)
	}
	return result, nil
}

// parseEvaluation decodes and validates an evaluation. The keyword count may
// not exceed maxKeywords.
func parseEvaluation(text string, maxKeywords int) (*models.EvaluationResult, error) {
	var wire evaluationWire
	if err := decodeJSON(text, &wire); err != nil {
		return nil, err
	}

	var missing missingFields
	if wire.Score == nil {
		missing = append(missing, "score")
	}
	result := models.EvaluationResult{
		Reasoning:         missing.str("reasoning", wire.Reasoning),
		ImprovementTip:    missing.str("improvementTip", wire.ImprovementTip),
		VisualSuggestions: missing.list("visualSuggestions", wire.VisualSuggestions),
	}
	if wire.KeywordCheck == nil {
		missing = append(missing, "keywordCheck")
	} else {
		result.KeywordCheck.Found = missing.list("keywordCheck.found", wire.KeywordCheck.Found)
		result.KeywordCheck.Missing = missing.list("keywordCheck.missing", wire.KeywordCheck.Missing)
		if wire.KeywordCheck.Count == nil {
			missing = append(missing, "keywordCheck.count")
		}
	}
	if err := missing.err(); err != nil {
		return nil, err
	}

	count := *wire.KeywordCheck.Count
	if count < 0 || count > float64(maxKeywords) || count != math.Trunc(count) {
		return nil, fmt.Errorf("%w: keyword count %v outside [0,%d]", ErrInvalidResponse, count, maxKeywords)
	}
	result.KeywordCheck.Count = int(count)

	if *wire.Score < 0 || *wire.Score > 100 {
		return nil, fmt.Errorf("%w: score %v outside [0,100]", ErrInvalidResponse, *wire.Score)
	}
	result.Score = *wire.Score
	return &result, nil
}
