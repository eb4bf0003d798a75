package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/councilops/grantwriter/internal/ai"
	"github.com/councilops/grantwriter/internal/ai/gemini"
	"github.com/councilops/grantwriter/internal/logger"
	"github.com/councilops/grantwriter/internal/project"
	"github.com/councilops/grantwriter/internal/secrets"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	PromptAccept = "Accept"
	PromptRedo   = "Redo"
	PromptSkip   = "Skip"
	PromptStop   = "Stop"
)

var errExit = errors.New("exit requested")

var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Draft narrative sections with Gemini and save them into the project bundle",
	Run: func(cmd *cobra.Command, _ []string) {
		runDraft(cmd)
	},
}

func init() {
	rootCmd.AddCommand(draftCmd)

	draftCmd.Flags().StringP("section", "s", "", "draft a single section instead of all of them")
	draftCmd.Flags().BoolP("review", "r", false, "score each accepted draft against the criteria")
	draftCmd.Flags().BoolP("auto-approve", "y", false, "accept every draft without confirmation")
}

func runDraft(cmd *cobra.Command) {
	ctx := context.Background()

	logger := newLogger()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	bundle := loadBundle(config, logger)
	if strings.TrimSpace(bundle.Criteria) == "" {
		logger.Warn("no funder criteria in the bundle",
			zap.String("hint", "drafts will not be steered towards the assessment rubric"),
		)
	}

	drafter, reviewer, err := newAssistant(ctx, config, logger)
	if err != nil {
		logger.Fatal("building ai assistant", zap.Error(err))
	}

	sections := bundle.SectionList()
	if single := cmd.Flag("section").Value.String(); single != "" {
		sections = []string{single}
	}

	autoApprove := cmd.Flag("auto-approve").Value.String() == "true"
	review := cmd.Flag("review").Value.String() == "true"

	for _, section := range sections {
		if err := draftSection(ctx, section, bundle, drafter, reviewer, review, autoApprove, logger); err != nil {
			if errors.Is(err, errExit) {
				break
			}
			logger.Fatal("drafting failed", zap.String("section", section), zap.Error(err))
		}
	}

	path := resolveProjectFile(config)
	if err := bundle.Save(path); err != nil {
		logger.Fatal("saving project bundle", zap.Error(err))
	}
	logger.Info("saved project bundle", zap.String("filename", path), zap.Int("drafts", len(bundle.Drafts)))
}

func draftSection(ctx context.Context, section string, bundle *project.Bundle, drafter ai.Drafter, reviewer ai.Reviewer, review, autoApprove bool, logger *zap.Logger) error {
	for {
		draft, err := drafter.Draft(ctx, section, bundle.Project, bundle.Criteria)
		if err != nil {
			return err
		}

		fmt.Printf("\n--- %s ---\n%s\n\n", section, draft)

		if review && reviewer != nil {
			rev, err := reviewer.Review(ctx, section, draft, bundle.Criteria)
			if err != nil {
				logger.Warn("review failed", zap.String("section", section), zap.Error(err))
			} else {
				logger.Info("draft review",
					zap.String("section", section),
					zap.Int("score", rev.Score),
					zap.Strings("gaps", rev.Gaps),
					zap.Strings("suggestions", rev.Suggestions),
				)
			}
		}

		action := PromptAccept
		if !autoApprove {
			prompt := promptui.Select{
				Label: fmt.Sprintf("Keep this draft for %q?", section),
				Items: []string{PromptAccept, PromptRedo, PromptSkip, PromptStop},
			}
			if _, action, err = prompt.Run(); err != nil {
				return err
			}
		}

		switch action {
		case PromptAccept:
			if bundle.Drafts == nil {
				bundle.Drafts = make(map[string]string)
			}
			bundle.Drafts[section] = draft
			return nil
		case PromptRedo:
			continue
		case PromptSkip:
			return nil
		case PromptStop:
			return errExit
		default:
			return fmt.Errorf("invalid action: %s", action)
		}
	}
}

func newAssistant(ctx context.Context, config *Config, log *zap.Logger) (ai.Drafter, ai.Reviewer, error) {
	if config.AI == nil || !config.AI.Enabled {
		return nil, nil, errors.New("ai is not enabled in the configuration")
	}

	provider := strings.TrimSpace(strings.ToLower(config.AI.Provider))
	if provider != "" && provider != "gemini" {
		return nil, nil, fmt.Errorf("unsupported ai provider: %s", config.AI.Provider)
	}

	if config.AI.Gemini == nil {
		return nil, nil, errors.New("gemini configuration is required when ai is enabled")
	}

	generator, err := newGenerator(ctx, config.AI.Gemini, log)
	if err != nil {
		return nil, nil, err
	}

	aiLogger := logger.WithCommonFields(log, "gemini", generator.Model())
	drafter := gemini.NewDrafter(generator, config.Organisation, aiLogger, config.AI.Gemini.MaxLogLength)
	reviewer := gemini.NewReviewer(generator, aiLogger, config.AI.Gemini.MaxLogLength)

	return drafter, reviewer, nil
}

func newGenerator(ctx context.Context, cfg *GeminiConfig, log *zap.Logger) (*gemini.Generator, error) {
	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	genLogger := log.With(
		zap.String("provider", "gemini"),
		zap.String("model", cfg.Model),
		zap.Int("ai_retry_attempts", cfg.MaxRetries),
	)

	return gemini.NewGenerator(ctx, apiKey, cfg.Model, cfg.MaxRetries, genLogger)
}
