package discovery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const maxSlackItems = 10

// Notifier posts new opportunities to a Slack incoming webhook.
type Notifier struct {
	webhookURL string
	client     *http.Client
	logger     *zap.Logger
}

func NewNotifier(webhookURL string, logger *zap.Logger) *Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Notifier{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 15 * time.Second},
		logger:     logger,
	}
}

// Notify sends a Block Kit digest of the grants, at most ten per message.
func (n *Notifier) Notify(ctx context.Context, grants *Grants) error {
	if n.webhookURL == "" {
		return fmt.Errorf("slack webhook url is not configured")
	}
	if grants.Len() == 0 {
		return nil
	}

	payload, err := json.Marshal(buildBlocks(grants))
	if err != nil {
		return fmt.Errorf("marshal slack payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("post to slack: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("slack webhook returned status %d", resp.StatusCode)
	}

	n.logger.Info("sent slack digest", zap.Int("grants", min(grants.Len(), maxSlackItems)))
	return nil
}

func buildBlocks(grants *Grants) map[string]any {
	blocks := []map[string]any{
		{
			"type": "header",
			"text": map[string]any{
				"type": "plain_text",
				"text": fmt.Sprintf("New grant opportunities (%d)", grants.Len()),
			},
		},
	}

	for idx, grant := range grants.Items {
		if idx == maxSlackItems {
			break
		}

		text := fmt.Sprintf("*<%s|%s>*\nRelevance: %d", grant.Link, grant.Title, grant.Relevance)
		if grant.Deadline != "" {
			text += " | Deadline: " + grant.Deadline
		}
		if grant.Amount != "" {
			text += " | Amount: " + grant.Amount
		}
		if grant.Why != "" {
			text += "\n" + grant.Why
		}

		blocks = append(blocks, map[string]any{
			"type": "section",
			"text": map[string]any{
				"type": "mrkdwn",
				"text": text,
			},
		})
	}

	return map[string]any{"blocks": blocks}
}
