package gemini

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/councilops/grantwriter/internal/logger"
	"github.com/councilops/grantwriter/internal/project"
	"go.uber.org/zap"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// cachingGenerator is implemented by generators that can park the project
// brief server-side and reference it from follow-up prompts.
type cachingGenerator interface {
	EnsureProjectCache(ctx context.Context, key, payload string) (string, error)
	GenerateContentWithCache(ctx context.Context, prompt, cacheName string) (string, error)
}

// Drafter generates grant application sections with Gemini.
type Drafter struct {
	generator contentGenerator
	org       string
	logger    *zap.Logger
	maxLogLen int
}

//go:embed prompts/draft.md
var draftTemplate string

const defaultMaxLogLength = 200

func NewDrafter(generator contentGenerator, org string, logger *zap.Logger, maxLogLength int) *Drafter {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Drafter{
		generator: generator,
		org:       org,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

// Draft writes one narrative section for the project against the pasted
// funder criteria. When the underlying generator supports content caching the
// project brief is uploaded once and reused across sections.
func (d *Drafter) Draft(ctx context.Context, section string, p *project.Project, criteria string) (string, error) {
	if p == nil {
		return "", fmt.Errorf("project is required")
	}
	if strings.TrimSpace(section) == "" {
		return "", fmt.Errorf("section name is required")
	}

	projectJSON, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal project payload: %w", err)
	}

	prompt := buildDraftPrompt(d.org, section, criteria, string(projectJSON))

	d.logger.Debug("gemini draft request",
		zap.String("section", section),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, d.maxLogLen)),
	)

	raw, err := d.generate(ctx, d.org, section, criteria, prompt, string(projectJSON))
	if err != nil {
		return "", err
	}

	d.logger.Debug("gemini draft response",
		zap.String("section", section),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, d.maxLogLen)),
	)

	return strings.TrimSpace(raw), nil
}

// cachedBriefNote replaces the inline project payload when the brief already
// lives in a cached content resource, so it is never sent twice.
const cachedBriefNote = "(provided as the attached project brief)"

func (d *Drafter) generate(ctx context.Context, org, section, criteria, prompt, projectJSON string) (string, error) {
	caching, ok := d.generator.(cachingGenerator)
	if !ok {
		return d.generator.GenerateContent(ctx, prompt)
	}

	key := fmt.Sprintf("%x", sha256.Sum256([]byte(projectJSON)))[:16]
	cacheName, err := caching.EnsureProjectCache(ctx, key, projectJSON)
	if err != nil {
		d.logger.Debug("project cache unavailable, sending full prompt", zap.Error(err))
		return d.generator.GenerateContent(ctx, prompt)
	}

	cachedPrompt := buildDraftPrompt(org, section, criteria, cachedBriefNote)
	return caching.GenerateContentWithCache(ctx, cachedPrompt, cacheName)
}

func buildDraftPrompt(org, section, criteria, projectJSON string) string {
	template := draftTemplate
	if strings.TrimSpace(template) == "" {
		template = "Organisation: {{ORG_NAME}}\nSection: {{SECTION}}\nCriteria:\n{{CRITERIA}}\n\nProject:\n{{PROJECT_JSON}}\n"
	}
	prompt := strings.ReplaceAll(template, "{{ORG_NAME}}", org)
	prompt = strings.ReplaceAll(prompt, "{{SECTION}}", section)
	prompt = strings.ReplaceAll(prompt, "{{CRITERIA}}", criteria)
	prompt = strings.ReplaceAll(prompt, "{{PROJECT_JSON}}", projectJSON)
	return prompt
}
