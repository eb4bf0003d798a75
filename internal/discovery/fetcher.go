package discovery

import (
	"context"
	"crypto/sha256"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"go.uber.org/zap"
)

// Fetcher pulls grant listings from funder RSS/Atom feeds.
type Fetcher struct {
	parser *gofeed.Parser
	logger *zap.Logger
}

func NewFetcher(logger *zap.Logger) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}

	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: 30 * time.Second}

	return &Fetcher{
		parser: parser,
		logger: logger,
	}
}

// Fetch downloads and parses every feed URL. A failing feed is logged and
// skipped so one broken funder site does not sink the whole run.
func (f *Fetcher) Fetch(ctx context.Context, feeds []string) *Grants {
	grants := &Grants{}

	for _, url := range feeds {
		url = strings.TrimSpace(url)
		if url == "" {
			continue
		}

		feed, err := f.parser.ParseURLWithContext(url, ctx)
		if err != nil {
			f.logger.Warn("skipping feed",
				zap.String("url", url),
				zap.Error(err),
			)
			continue
		}

		source := strings.TrimSpace(feed.Title)
		if source == "" {
			source = url
		}

		for _, item := range feed.Items {
			if item == nil {
				continue
			}
			grants.Items = append(grants.Items, &Grant{
				UID:       itemUID(item),
				Source:    source,
				Title:     strings.TrimSpace(item.Title),
				Link:      strings.TrimSpace(item.Link),
				Summary:   strings.TrimSpace(item.Description),
				Published: strings.TrimSpace(item.Published),
			})
		}

		f.logger.Debug("fetched feed",
			zap.String("url", url),
			zap.String("source", source),
			zap.Int("items", len(feed.Items)),
		)
	}

	return grants
}

// itemUID derives a stable identifier from the feed item so the seen store
// survives feeds that omit GUIDs.
func itemUID(item *gofeed.Item) string {
	basis := item.GUID
	if basis == "" {
		basis = item.Link
	}
	if basis == "" {
		basis = item.Title
	}
	sum := sha256.Sum256([]byte(basis))
	return fmt.Sprintf("%x", sum[:])[:16]
}
