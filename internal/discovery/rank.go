package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

const (
	relevancePerHit = 10
	relevanceCap    = 90
)

// ContentGenerator is the model call the ranker needs, satisfied by the
// Gemini generator.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Ranker scores grants against the council's focus keywords and regions. With
// a generator attached it additionally asks the model to refine relevance and
// explain each match, falling back to the keyword heuristic when that fails.
type Ranker struct {
	keywords  []string
	regions   []string
	generator ContentGenerator
	logger    *zap.Logger
}

func NewRanker(keywords, regions []string, generator ContentGenerator, logger *zap.Logger) *Ranker {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Ranker{
		keywords:  lowerAll(keywords),
		regions:   lowerAll(regions),
		generator: generator,
		logger:    logger,
	}
}

// RankAll scores every grant in place, filling Relevance, Why, Deadline and Amount.
func (r *Ranker) RankAll(ctx context.Context, grants *Grants) {
	for _, grant := range grants.Items {
		r.rank(grant)
	}

	if r.generator == nil || grants.Len() == 0 {
		return
	}

	if err := r.refine(ctx, grants); err != nil {
		r.logger.Warn("model ranking failed, keeping keyword scores", zap.Error(err))
	}
}

func (r *Ranker) rank(grant *Grant) {
	text := strings.ToLower(grant.Title + "\n" + grant.Summary)

	var hits []string
	for _, term := range r.keywords {
		if strings.Contains(text, term) {
			hits = append(hits, term)
		}
	}
	for _, region := range r.regions {
		if strings.Contains(text, region) {
			hits = append(hits, region)
		}
	}

	score := len(hits) * relevancePerHit
	if score > relevanceCap {
		score = relevanceCap
	}

	grant.Relevance = score
	if len(hits) > 0 {
		grant.Why = "matches " + strings.Join(hits, ", ")
	}
	grant.Deadline = ExtractDeadline(grant.Summary)
	grant.Amount = ExtractAmount(grant.Summary)
}

type rankOverride struct {
	Relevance int    `mapstructure:"relevance"`
	Why       string `mapstructure:"why"`
	Deadline  string `mapstructure:"deadline"`
	Amount    string `mapstructure:"amount"`
}

func (r *Ranker) refine(ctx context.Context, grants *Grants) error {
	prompt := r.buildPrompt(grants)

	raw, err := r.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return err
	}

	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")

	var data map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(cleaned)), &data); err != nil {
		return fmt.Errorf("parse ranking response: %w", err)
	}

	for uid, value := range data {
		grant := grants.FindByUID(uid)
		if grant == nil {
			continue
		}

		var override rankOverride
		if err := mapstructure.WeakDecode(value, &override); err != nil {
			r.logger.Debug("skipping malformed ranking entry",
				zap.String("uid", uid),
				zap.Error(err),
			)
			continue
		}

		if override.Relevance < 0 || override.Relevance > 100 {
			continue
		}

		grant.Relevance = override.Relevance
		if override.Why != "" {
			grant.Why = override.Why
		}
		if override.Deadline != "" {
			grant.Deadline = override.Deadline
		}
		if override.Amount != "" {
			grant.Amount = override.Amount
		}
	}

	return nil
}

func (r *Ranker) buildPrompt(grants *Grants) string {
	var b strings.Builder
	b.WriteString("Score each grant opportunity 0-100 for relevance to an Australian local council")
	if len(r.keywords) > 0 {
		b.WriteString(" focused on: " + strings.Join(r.keywords, ", "))
	}
	if len(r.regions) > 0 {
		b.WriteString(". Eligible regions: " + strings.Join(r.regions, ", "))
	}
	b.WriteString(".\n\nOpportunities:\n")
	for _, grant := range grants.Items {
		fmt.Fprintf(&b, "- uid=%s title=%q summary=%q\n", grant.UID, grant.Title, grant.Summary)
	}
	b.WriteString("\nRespond with a JSON object only, keyed by uid: ")
	b.WriteString(`{"<uid>": {"relevance": <0-100>, "why": "<one sentence>"}}`)
	return b.String()
}

func lowerAll(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, term := range terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term != "" {
			out = append(out, term)
		}
	}
	return out
}
