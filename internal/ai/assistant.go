package ai

import (
	"context"

	"github.com/councilops/grantwriter/internal/project"
)

// Review is an LLM assessment of one drafted section against the funder
// criteria, scored 0-100.
type Review struct {
	Score       int
	Strengths   []string
	Gaps        []string
	Suggestions []string
	Raw         string
}

// Drafter produces a narrative section from the project details and the
// criteria pasted verbatim.
type Drafter interface {
	Draft(ctx context.Context, section string, p *project.Project, criteria string) (string, error)
}

// Reviewer scores a drafted section against the criteria.
type Reviewer interface {
	Review(ctx context.Context, section, draft, criteria string) (*Review, error)
}
