// Package discovery finds grant opportunities in funder RSS/Atom feeds,
// ranks them against the council's focus areas, and notifies staff.
package discovery

import (
	"encoding/json"
	"os"
	"time"
)

// Grants is a mutable list of discovered grant opportunities.
type Grants struct {
	Items []*Grant
}

// Grant is one opportunity pulled from a funder feed.
type Grant struct {
	UID       string `json:"uid"`
	Source    string `json:"source"`
	Title     string `json:"title"`
	Link      string `json:"link"`
	Summary   string `json:"summary,omitempty"`
	Published string `json:"published,omitempty"`
	Relevance int    `json:"relevance"`
	Deadline  string `json:"deadline,omitempty"`
	Amount    string `json:"amount,omitempty"`
	Why       string `json:"why,omitempty"`
}

func (g *Grants) Len() int {
	return len(g.Items)
}

func (g *Grants) FindByUID(uid string) *Grant {
	for _, grant := range g.Items {
		if grant.UID == uid {
			return grant
		}
	}
	return nil
}

// Exclude removes grants whose UID appears in targets and returns the removed UIDs.
func (g *Grants) Exclude(targets []string) []string {
	var excluded []string
	for _, target := range targets {
		for idx, grant := range g.Items {
			if grant.UID == target {
				g.RemoveByIndex(idx)
				excluded = append(excluded, grant.UID)
				break
			}
		}
	}
	return excluded
}

// RemoveByIndex removes a grant from the list by index. Does not preserve order.
func (g *Grants) RemoveByIndex(idx int) {
	g.Items[idx] = g.Items[len(g.Items)-1]
	g.Items = g.Items[:len(g.Items)-1]
}

// DumpToTmpFile writes the list as indented JSON to a temp file for inspection.
func (g *Grants) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "grants_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// ToSeen converts the list into seen records stamped with the current time.
func (g *Grants) ToSeen() *SeenGrants {
	seen := &SeenGrants{}
	for _, grant := range g.Items {
		seen.Items = append(seen.Items, &SeenGrant{
			UID:    grant.UID,
			Link:   grant.Link,
			Source: grant.Source,
			SeenAt: time.Now().UTC(),
		})
	}
	return seen
}
