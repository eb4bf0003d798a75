package cmd

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/councilops/grantwriter/internal/discovery"
	"github.com/councilops/grantwriter/internal/export"
	"github.com/councilops/grantwriter/internal/secrets"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	PromptSendSlack   = "Send to Slack"
	PromptMarkSeen    = "Mark all as seen"
	PromptWriteDigest = "Write Markdown digest"
	PromptDumpToFile  = "Dump grants to file"
	PromptExit        = "Exit"
)

var discoverPrompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptSendSlack, PromptMarkSeen, PromptWriteDigest, PromptDumpToFile, PromptExit},
}

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Scan funder feeds for new grant opportunities and rank them",
	Run: func(cmd *cobra.Command, _ []string) {
		runDiscover(cmd)
	},
}

func init() {
	rootCmd.AddCommand(discoverCmd)

	discoverCmd.Flags().String("digest-file", "grants_digest.md", "file for the Markdown digest")
	discoverCmd.Flags().Int("min-relevance", -1, "minimum relevance score to keep. Overrides the config value.")
}

func runDiscover(cmd *cobra.Command) {
	ctx := context.Background()

	logger := newLogger()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	disc := config.Discovery
	if disc == nil || len(disc.Feeds) == 0 {
		logger.Fatal("no feeds configured",
			zap.String("hint", "set 'discovery.feeds' in the configuration file"),
		)
	}

	grants := discovery.NewFetcher(logger).Fetch(ctx, disc.Feeds)
	logger.Info("fetched feeds", zap.Int("feeds", len(disc.Feeds)), zap.Int("grants", grants.Len()))
	if grants.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no grants found"))
		return
	}

	ranker := discovery.NewRanker(disc.Keywords, disc.Regions, newRankGenerator(ctx, config, logger), logger)
	ranker.RankAll(ctx, grants)

	minRelevance := disc.MinRelevance
	if override, err := cmd.Flags().GetInt("min-relevance"); err == nil && override >= 0 {
		minRelevance = override
	}

	filters := []discovery.Filter{
		discovery.NewSeenFilter(seenFilePath(disc)),
		discovery.NewMinRelevanceFilter(minRelevance),
	}

	grants, err = discovery.Run(ctx, logger, filters, grants)
	if err != nil {
		logger.Fatal("filtering failed", zap.Error(err))
	}

	if grants.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no new grants left after filters"))
		return
	}

	sort.SliceStable(grants.Items, func(i, j int) bool {
		return grants.Items[i].Relevance > grants.Items[j].Relevance
	})

	for _, grant := range grants.Items {
		logger.Info("grant opportunity",
			zap.String("title", grant.Title),
			zap.String("source", grant.Source),
			zap.Int("relevance", grant.Relevance),
			zap.String("deadline", grant.Deadline),
			zap.String("amount", grant.Amount),
			zap.String("link", grant.Link),
		)
	}

	for {
		_, action, err := discoverPrompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if done := handleDiscoverAction(ctx, cmd, action, disc, grants, logger); done {
			return
		}
	}
}

func handleDiscoverAction(ctx context.Context, cmd *cobra.Command, action string, disc *DiscoveryConfig, grants *discovery.Grants, logger *zap.Logger) bool {
	switch action {
	case PromptSendSlack:
		if err := notifySlack(ctx, disc, grants, logger); err != nil {
			logger.Error("sending to slack", zap.Error(err))
		}
	case PromptMarkSeen:
		if err := markSeen(disc, grants, logger); err != nil {
			logger.Error("marking grants as seen", zap.Error(err))
		}
	case PromptWriteDigest:
		path := cmd.Flag("digest-file").Value.String()
		if err := writeFile(path, export.Digest("Grant opportunities", grants)); err != nil {
			logger.Error("writing digest", zap.Error(err))
			return false
		}
		logger.Info("wrote digest", zap.String("filename", path))
	case PromptDumpToFile:
		filename, err := grants.DumpToTmpFile()
		if err != nil {
			logger.Error("dump grants to file", zap.Error(err))
			return false
		}
		logger.Info("dumped grants to file", zap.String("filename", filename))
	case PromptExit:
		return true
	default:
		logger.Error("invalid action", zap.String("action", action))
	}
	return false
}

func notifySlack(ctx context.Context, disc *DiscoveryConfig, grants *discovery.Grants, logger *zap.Logger) error {
	webhook, err := secrets.Load(secrets.Source{
		Name: "slack webhook",
		File: disc.SlackWebhookFile,
	})
	if err != nil {
		return fmt.Errorf("%w (set discovery.slack-webhook-file)", err)
	}

	return discovery.NewNotifier(webhook, logger).Notify(ctx, grants)
}

func markSeen(disc *DiscoveryConfig, grants *discovery.Grants, logger *zap.Logger) error {
	path := seenFilePath(disc)
	if path == "" {
		return fmt.Errorf("seen file is not configured (set discovery.seen-file)")
	}

	seen, err := discovery.LoadSeen(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return err
		}
		seen = &discovery.SeenGrants{}
	}

	seen.Append(grants.ToSeen())
	if err := seen.ToFile(path); err != nil {
		return err
	}

	logger.Info("marked grants as seen", zap.String("filename", path), zap.Int("count", grants.Len()))
	return nil
}

func seenFilePath(disc *DiscoveryConfig) string {
	if disc == nil {
		return ""
	}
	return disc.SeenFile
}

func newRankGenerator(ctx context.Context, config *Config, logger *zap.Logger) discovery.ContentGenerator {
	if config.AI == nil || !config.AI.Enabled || config.AI.Gemini == nil {
		return nil
	}

	generator, err := newGenerator(ctx, config.AI.Gemini, logger)
	if err != nil {
		logger.Warn("model ranking unavailable, using keyword scores only", zap.Error(err))
		return nil
	}
	return generator
}
