package discovery

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
)

// Filter represents a single filtering step applied to discovered grants.
type Filter interface {
	Name() string
	Apply(ctx context.Context, g *Grants) (*Grants, Step, error)
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Run executes the supplied filters sequentially, returning the remaining grants.
func Run(ctx context.Context, logger *zap.Logger, filters []Filter, g *Grants) (*Grants, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	for _, filter := range filters {
		next, info, err := filter.Apply(ctx, g)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filter.Name(), err)
		}

		logger.Info("filter step",
			zap.String("name", filter.Name()),
			zap.Int("initial", info.Initial),
			zap.Int("dropped", info.Dropped),
			zap.Int("left", info.Left),
		)

		g = next
	}

	return g, nil
}

type seenFilter struct {
	path string
}

// NewSeenFilter creates a filter that removes grants recorded in the seen store.
func NewSeenFilter(path string) Filter {
	return &seenFilter{path: path}
}

func (f *seenFilter) Name() string { return "seen_store" }

func (f *seenFilter) Apply(_ context.Context, g *Grants) (*Grants, Step, error) {
	initial := g.Len()
	if f.path == "" {
		return g, Step{Initial: initial, Left: g.Len()}, nil
	}

	seen, err := LoadSeen(f.path)
	if err != nil {
		// Nothing was marked seen yet on a fresh setup.
		if os.IsNotExist(err) {
			return g, Step{Initial: initial, Left: g.Len()}, nil
		}
		return g, Step{}, fmt.Errorf("loading seen grants from file: %w", err)
	}

	removed := g.Exclude(seen.UIDs())

	return g, Step{Initial: initial, Dropped: len(removed), Left: g.Len()}, nil
}

type minRelevanceFilter struct {
	min int
}

// NewMinRelevanceFilter creates a filter that drops grants below the relevance threshold.
func NewMinRelevanceFilter(min int) Filter {
	return &minRelevanceFilter{min: min}
}

func (f *minRelevanceFilter) Name() string { return "min_relevance" }

func (f *minRelevanceFilter) Apply(_ context.Context, g *Grants) (*Grants, Step, error) {
	initial := g.Len()
	if f.min <= 0 {
		return g, Step{Initial: initial, Left: g.Len()}, nil
	}

	kept := &Grants{}
	for _, grant := range g.Items {
		if grant.Relevance >= f.min {
			kept.Items = append(kept.Items, grant)
		}
	}

	return kept, Step{Initial: initial, Dropped: initial - kept.Len(), Left: kept.Len()}, nil
}
