package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/councilops/grantwriter/internal/assess"
	"github.com/councilops/grantwriter/internal/export"
	"github.com/councilops/grantwriter/internal/logger"
	"github.com/councilops/grantwriter/internal/project"
	"github.com/councilops/grantwriter/internal/rubric"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Parse the funder criteria into a rubric and score the project's coverage",
	Run: func(cmd *cobra.Command, _ []string) {
		runAssess(cmd)
	},
}

func init() {
	rootCmd.AddCommand(assessCmd)

	assessCmd.Flags().StringP("criteria-file", "c", "", "read criteria from a text file instead of the project bundle")
	assessCmd.Flags().String("summary-json", "", "write the assessment result as JSON to this file")
	assessCmd.Flags().String("summary-md", "", "write the assessment summary as Markdown to this file")
	assessCmd.Flags().StringP("project-file", "p", "", "project bundle file. Overrides the config value.")

	viper.BindPFlag("project-file", assessCmd.Flags().Lookup("project-file"))
}

func runAssess(cmd *cobra.Command) {
	logger := newLogger()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	bundle := loadBundle(config, logger)

	criteria := bundle.Criteria
	if path := cmd.Flag("criteria-file").Value.String(); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Fatal("reading criteria file", zap.Error(err))
		}
		criteria = string(data)
	}

	items := rubric.NewBuilder(rubric.PartialRatio).Build(criteria)
	if len(items) == 0 {
		logger.Warn("no criteria lines parsed",
			zap.String("hint", "paste the funder criteria into the bundle or pass --criteria-file"),
		)
	}

	result := assess.New(rubric.PartialRatio).Assess(bundle.AssessableSections(), items)

	for _, row := range result.Rows() {
		logger.Info("criterion coverage",
			zap.String("criterion", row.Criterion),
			zap.Float64("weight", row.Weight),
			zap.Float64("coverage", row.Coverage),
			zap.Float64("weighted", row.Weighted),
			zap.Strings("hints", row.Hints),
		)
	}
	logger.Info("overall coverage", zap.Float64("score", result.Overall))

	if path := cmd.Flag("summary-json").Value.String(); path != "" {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			logger.Fatal("marshal assessment result", zap.Error(err))
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			logger.Fatal("writing summary json", zap.Error(err))
		}
		logger.Info("wrote assessment json", zap.String("filename", path))
	}

	if path := cmd.Flag("summary-md").Value.String(); path != "" {
		if err := os.WriteFile(path, []byte(export.Summary(result)), 0o644); err != nil {
			logger.Fatal("writing summary markdown", zap.Error(err))
		}
		logger.Info("wrote assessment markdown", zap.String("filename", path))
	}
}

func newLogger() *zap.Logger {
	l, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	return l
}

func loadBundle(config *Config, logger *zap.Logger) *project.Bundle {
	if config == nil {
		logger.Fatal("config is required")
	}

	path := resolveProjectFile(config)
	if path == "" {
		logger.Fatal("project bundle file is not configured",
			zap.String("hint", "set the 'project-file' key in the configuration file or pass --project-file"),
		)
	}

	bundle, err := project.LoadBundle(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info("starting a new project bundle", zap.String("filename", path))
			return &project.Bundle{Project: &project.Project{}, Drafts: make(map[string]string)}
		}
		logger.Fatal("loading project bundle", zap.Error(err))
	}

	return bundle
}

func resolveProjectFile(config *Config) string {
	path := strings.TrimSpace(viper.GetString("project-file"))
	if path == "" {
		path = strings.TrimSpace(config.ProjectFile)
	}
	return path
}

func writeFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
