package profiler

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"
)

// stripFences removes a markdown code fence some models wrap around JSON.
func stripFences(text string) string {
	cleaned := strings.TrimSpace(text)
	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimSpace(strings.TrimPrefix(cleaned, "```json"))
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimSpace(strings.TrimPrefix(cleaned, "```"))
	}
	if strings.HasSuffix(cleaned, "```") {
		cleaned = strings.TrimSpace(strings.TrimSuffix(cleaned, "```"))
	}
	return cleaned
}

func decodeJSON(text string, dest any) error {
	cleaned := stripFences(text)
	if cleaned == "" {
		return ErrEmptyResponse
	}
	if err := json.Unmarshal([]byte(cleaned), dest); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}

func preview(text string) string {
	const limit = 200
	if len(text) <= limit {
		return text
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}

// missingFields collects the names of required fields that were absent.
type missingFields []string

func (m *missingFields) str(name string, v *string) string {
	if v == nil {
		*m = append(*m, name)
		return ""
	}
	return strings.TrimSpace(*v)
}

func (m *missingFields) list(name string, v *[]string) []string {
	if v == nil {
		*m = append(*m, name)
		return nil
	}
	out := make([]string, 0, len(*v))
	for _, item := range *v {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func (m missingFields) err() error {
	if len(m) == 0 {
		return nil
	}
	return fmt.Errorf("%w: missing required fields %s", ErrInvalidResponse, strings.Join(m, ", "))
}
