package export

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/councilops/grantwriter/internal/assess"
	"github.com/fumiama/go-docx"
)

var paragraphSplitRe = regexp.MustCompile(`\n\n+`)

const (
	headingSize = "28"
	bodySize    = "22"
)

// DOCX renders the sections as a Word document in export order and writes it
// to w. Layout mirrors the Markdown export: cover, optional assessment
// summary, then body sections with empty ones skipped.
func DOCX(w io.Writer, sections map[string]string, meta Meta, order []string, result *assess.Result) error {
	if len(order) == 0 {
		order = DefaultOrder
	}

	title := strings.TrimSpace(meta.Title)
	if title == "" {
		title = "Grant Application"
	}

	doc := docx.New().WithDefaultTheme()

	cover := doc.AddParagraph()
	cover.AddText(title).Size(headingSize).Bold()
	cover.Justification("center")

	var coverBits []string
	if meta.Funder != "" {
		coverBits = append(coverBits, "Funder: "+meta.Funder)
	}
	if meta.Applicant != "" {
		coverBits = append(coverBits, "Applicant: "+meta.Applicant)
	}
	if meta.Amount != "" {
		coverBits = append(coverBits, "Amount requested: "+meta.Amount)
	}
	if len(coverBits) > 0 {
		subtitle := doc.AddParagraph()
		subtitle.AddText(strings.Join(coverBits, " | ")).Size(bodySize)
		subtitle.Justification("center")
	}
	doc.AddParagraph()

	if result != nil {
		writeSummaryDOCX(doc, result)
	}

	normalized := normalize(sections)
	for _, section := range order {
		content := strings.TrimSpace(normalized[section])
		if content == "" {
			continue
		}

		doc.AddParagraph().AddText(section).Size(headingSize).Bold()
		for _, para := range paragraphSplitRe.Split(content, -1) {
			doc.AddParagraph().AddText(strings.TrimSpace(para)).Size(bodySize)
		}
		doc.AddParagraph()
	}

	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("write docx: %w", err)
	}
	return nil
}

func writeSummaryDOCX(doc *docx.Docx, result *assess.Result) {
	doc.AddParagraph().AddText("Assessment Summary").Size(headingSize).Bold()
	doc.AddParagraph().AddText(fmt.Sprintf("Overall coverage score (weighted): %d%%", int(result.Overall*100+0.5))).Size(bodySize)

	for _, row := range result.Rows() {
		hints := row.Hints
		if len(hints) > 3 {
			hints = hints[:3]
		}

		line := fmt.Sprintf("%s: weight %d%%, coverage %d%%", row.Criterion, int(row.Weight*100+0.5), int(row.Coverage*100+0.5))
		if len(hints) > 0 {
			line += ". " + strings.Join(hints, " ")
		}
		doc.AddParagraph().AddText(line).Size(bodySize)
	}
	doc.AddParagraph()
}
