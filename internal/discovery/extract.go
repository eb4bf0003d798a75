package discovery

import (
	"regexp"
	"strings"

	"github.com/araddon/dateparse"
)

var (
	amountRe   = regexp.MustCompile(`\$\s?[0-9][\d,]*(?:\.\d{2})?`)
	deadlineRe = regexp.MustCompile(`(?i)(?:deadline|closes?|closing(?:\s+date)?|due)\s*[:\-]?\s*([A-Za-z0-9,\-/ ]{4,40})`)
)

// ExtractAmount returns the first dollar figure mentioned in text, or "".
func ExtractAmount(text string) string {
	return strings.TrimSpace(amountRe.FindString(text))
}

// ExtractDeadline finds a closing date mention in text and normalizes it to
// YYYY-MM-DD when the date parses, otherwise returns the raw phrase.
func ExtractDeadline(text string) string {
	match := deadlineRe.FindStringSubmatch(text)
	if match == nil {
		return ""
	}

	raw := strings.TrimSpace(match[1])
	if raw == "" {
		return ""
	}

	// The capture is greedy, so retry with trailing words dropped until a
	// parseable date remains.
	words := strings.Fields(raw)
	for end := len(words); end > 0; end-- {
		candidate := strings.Join(words[:end], " ")
		parsed, err := dateparse.ParseAny(candidate)
		if err != nil {
			continue
		}
		return parsed.Format("2006-01-02")
	}

	return raw
}
