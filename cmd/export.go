package cmd

import (
	"os"

	"github.com/councilops/grantwriter/internal/assess"
	"github.com/councilops/grantwriter/internal/export"
	"github.com/councilops/grantwriter/internal/rubric"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the application as Markdown or DOCX",
	Run: func(cmd *cobra.Command, _ []string) {
		runExport(cmd)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("format", "f", "md", "export format: md or docx")
	exportCmd.Flags().StringP("output", "o", "", "output file (default grant_application.<format>)")
	exportCmd.Flags().Bool("with-summary", false, "include the criteria coverage summary")
}

func runExport(cmd *cobra.Command) {
	logger := newLogger()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	bundle := loadBundle(config, logger)

	// Drafted sections replace the raw project notes on export.
	sections := bundle.Project.SectionTexts()
	for name, draft := range bundle.Drafts {
		sections[name] = draft
	}

	meta := export.Meta{
		Title:     bundle.Project.Title,
		Funder:    config.Funder,
		Applicant: config.Organisation,
		Amount:    config.Amount,
	}

	var result *assess.Result
	if cmd.Flag("with-summary").Value.String() == "true" {
		items := rubric.NewBuilder(rubric.PartialRatio).Build(bundle.Criteria)
		result = assess.New(rubric.PartialRatio).Assess(bundle.AssessableSections(), items)
	}

	format := cmd.Flag("format").Value.String()
	output := cmd.Flag("output").Value.String()

	switch format {
	case "md":
		if output == "" {
			output = "grant_application.md"
		}
		if err := writeFile(output, export.Markdown(sections, meta, nil, result)); err != nil {
			logger.Fatal("writing markdown export", zap.Error(err))
		}
	case "docx":
		if output == "" {
			output = "grant_application.docx"
		}
		file, err := os.Create(output)
		if err != nil {
			logger.Fatal("creating docx file", zap.Error(err))
		}
		defer file.Close()

		if err := export.DOCX(file, sections, meta, nil, result); err != nil {
			logger.Fatal("writing docx export", zap.Error(err))
		}
	default:
		logger.Fatal("unsupported format", zap.String("format", format))
	}

	logger.Info("exported application", zap.String("filename", output), zap.String("format", format))
}
