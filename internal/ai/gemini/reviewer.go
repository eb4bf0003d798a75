package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/councilops/grantwriter/internal/ai"
	"github.com/councilops/grantwriter/internal/logger"
	"go.uber.org/zap"
)

// Reviewer scores drafted sections against the funder criteria with Gemini.
type Reviewer struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

//go:embed prompts/review.md
var reviewTemplate string

func NewReviewer(generator contentGenerator, logger *zap.Logger, maxLogLength int) *Reviewer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Reviewer{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

func (r *Reviewer) Review(ctx context.Context, section, draft, criteria string) (*ai.Review, error) {
	if strings.TrimSpace(draft) == "" {
		return nil, fmt.Errorf("draft text is required")
	}

	prompt := buildReviewPrompt(section, draft, criteria)

	r.logger.Debug("gemini review request",
		zap.String("section", section),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, r.maxLogLen)),
	)

	raw, err := r.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("gemini review response",
		zap.String("section", section),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, r.maxLogLen)),
	)

	review := parseReview(raw)
	review.Raw = raw
	return review, nil
}

func buildReviewPrompt(section, draft, criteria string) string {
	template := reviewTemplate
	if strings.TrimSpace(template) == "" {
		template = "Section: {{SECTION}}\nCriteria:\n{{CRITERIA}}\n\nDraft:\n{{DRAFT}}\n\nJSON Response:"
	}
	prompt := strings.ReplaceAll(template, "{{SECTION}}", section)
	prompt = strings.ReplaceAll(prompt, "{{CRITERIA}}", criteria)
	prompt = strings.ReplaceAll(prompt, "{{DRAFT}}", draft)
	return prompt
}

// parseReview never fails: an unparseable response becomes a zero-score
// review with the problem recorded as a gap.
func parseReview(raw string) *ai.Review {
	cleaned := extractJSON(strings.TrimSpace(raw))

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return &ai.Review{Gaps: []string{"Parse error"}}
	}

	score := coerceFloat(data["score"])
	if math.IsNaN(score) {
		score = 0
	}
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return &ai.Review{
		Score:       int(math.Round(score)),
		Strengths:   coerceStrings(data["strengths"]),
		Gaps:        coerceStrings(data["gaps"]),
		Suggestions: coerceStrings(data["suggestions"]),
	}
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func coerceFloat(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case string:
		trimmed := strings.TrimSpace(val)
		if trimmed == "" {
			return math.NaN()
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

func coerceStrings(v any) []string {
	switch val := v.(type) {
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s := coerceString(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		if trimmed := strings.TrimSpace(val); trimmed != "" {
			return []string{trimmed}
		}
		return nil
	default:
		return nil
	}
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	default:
		if v == nil {
			return ""
		}
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}
