package export

import (
	"fmt"
	"strings"

	"github.com/councilops/grantwriter/internal/assess"
	"github.com/councilops/grantwriter/internal/discovery"
)

// Meta carries cover details for an exported application.
type Meta struct {
	Title     string
	Funder    string
	Applicant string
	Amount    string
}

// Markdown renders the sections as a Markdown document in export order,
// skipping empty sections. When result is non-nil an assessment summary is
// included after the cover.
func Markdown(sections map[string]string, meta Meta, order []string, result *assess.Result) string {
	if len(order) == 0 {
		order = DefaultOrder
	}

	title := strings.TrimSpace(meta.Title)
	if title == "" {
		title = "Grant Application"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)

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
		b.WriteString(strings.Join(coverBits, " | ") + "\n\n")
	}

	if result != nil {
		writeSummaryMarkdown(&b, result)
	}

	normalized := normalize(sections)
	for _, section := range order {
		content := strings.TrimSpace(normalized[section])
		if content == "" {
			continue
		}
		fmt.Fprintf(&b, "## %s\n\n%s\n\n", section, content)
	}

	return b.String()
}

// Summary renders only the assessment summary table as Markdown.
func Summary(result *assess.Result) string {
	var b strings.Builder
	writeSummaryMarkdown(&b, result)
	return b.String()
}

func writeSummaryMarkdown(b *strings.Builder, result *assess.Result) {
	b.WriteString("## Assessment Summary\n\n")
	fmt.Fprintf(b, "Overall coverage score (weighted): %d%%\n\n", int(result.Overall*100+0.5))

	b.WriteString("| Criterion | Weight | Coverage | Hints |\n")
	b.WriteString("| --- | --- | --- | --- |\n")
	for _, row := range result.Rows() {
		hints := row.Hints
		if len(hints) > 3 {
			hints = hints[:3]
		}
		fmt.Fprintf(b, "| %s | %d%% | %d%% | %s |\n",
			row.Criterion,
			int(row.Weight*100+0.5),
			int(row.Coverage*100+0.5),
			strings.Join(hints, "; "),
		)
	}
	b.WriteString("\n")
}

// Digest renders discovered grant opportunities as a Markdown list.
func Digest(title string, grants *discovery.Grants) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)

	for _, grant := range grants.Items {
		fmt.Fprintf(&b, "- [%s](%s) (%s), relevance %d", grant.Title, grant.Link, grant.Source, grant.Relevance)
		if grant.Deadline != "" {
			b.WriteString(", deadline " + grant.Deadline)
		}
		if grant.Amount != "" {
			b.WriteString(", " + grant.Amount)
		}
		if grant.Why != "" {
			b.WriteString("\n  " + grant.Why)
		}
		b.WriteString("\n")
	}

	return b.String()
}
