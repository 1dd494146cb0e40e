package analyses

import (
	"encoding/json"
	"strings"

	"resumelens-backend/internal/shared/apperror"
)

// looseResult mirrors AnalysisResult with untyped fields so that
// near-miss model output (float scores, scalar sections, missing keys)
// can be coerced instead of rejected.
type looseResult struct {
	OverallScore   any `json:"overallScore"`
	JobMatch       any `json:"jobMatch"`
	Sections       any `json:"sections"`
	KeywordMatches any `json:"keywordMatches"`
	RawText        any `json:"rawText"`
}

// NormalizeResult coerces a recovered payload into the output contract.
// Missing overallScore defaults to 0; sections always contains at least
// one entry after normalization.
func NormalizeResult(payload json.RawMessage) (AnalysisResult, error) {
	var loose looseResult
	if err := json.Unmarshal(payload, &loose); err != nil {
		return AnalysisResult{}, apperror.Parse("model response is not an analysis object", excerpt(payload), err)
	}

	result := AnalysisResult{
		OverallScore:   clampScore(toInt(loose.OverallScore)),
		Sections:       toSections(loose.Sections),
		KeywordMatches: toKeywordMatches(loose.KeywordMatches),
	}

	if jm, ok := loose.JobMatch.(float64); ok {
		v := clampScore(int(jm))
		result.JobMatch = &v
	}
	if raw, ok := loose.RawText.(string); ok {
		result.RawText = raw
	}

	if len(result.Sections) == 0 {
		result.Sections = []Section{{
			Name:         "General",
			Score:        result.OverallScore,
			Feedback:     []string{"The analysis did not return structured section feedback."},
			Improvements: []string{},
		}}
	}
	return result, nil
}

func toSections(v any) []Section {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	sections := make([]Section, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		name, _ := m["name"].(string)
		if strings.TrimSpace(name) == "" {
			name = "General"
		}
		sections = append(sections, Section{
			Name:         name,
			Score:        clampScore(toInt(m["score"])),
			Feedback:     toStringSlice(m["feedback"]),
			Improvements: toStringSlice(m["improvements"]),
		})
	}
	return sections
}

func toKeywordMatches(v any) []KeywordMatch {
	items, ok := v.([]any)
	if !ok {
		return []KeywordMatch{}
	}
	matches := make([]KeywordMatch, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		keyword, _ := m["keyword"].(string)
		if keyword == "" {
			continue
		}
		found, _ := m["found"].(bool)
		matches = append(matches, KeywordMatch{Keyword: keyword, Found: found})
	}
	return matches
}

func toStringSlice(v any) []string {
	switch t := v.(type) {
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		if strings.TrimSpace(t) == "" {
			return []string{}
		}
		return []string{t}
	default:
		return []string{}
	}
}

func toInt(v any) int {
	switch t := v.(type) {
	case float64:
		return int(t)
	case string:
		var n int
		for _, r := range t {
			if r < '0' || r > '9' {
				return 0
			}
			n = n*10 + int(r-'0')
		}
		return n
	default:
		return 0
	}
}

func clampScore(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}

func excerpt(payload json.RawMessage) string {
	const max = 500
	s := string(payload)
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
