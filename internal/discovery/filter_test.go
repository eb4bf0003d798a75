package discovery

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func sampleGrants() *Grants {
	return &Grants{Items: []*Grant{
		{UID: "a", Title: "Safety Fund", Relevance: 40},
		{UID: "b", Title: "Arts Fund", Relevance: 10},
		{UID: "c", Title: "Parks Fund", Relevance: 70},
	}}
}

func TestSeenFilter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seen.json")

	seen := (&Grants{Items: []*Grant{{UID: "b", Link: "https://example.org/b"}}}).ToSeen()
	if err := seen.ToFile(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	grants, err := Run(context.Background(), zap.NewNop(), []Filter{NewSeenFilter(path)}, sampleGrants())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if grants.Len() != 2 {
		t.Fatalf("expected 2 grants, got %d", grants.Len())
	}
	if grants.FindByUID("b") != nil {
		t.Fatal("expected seen grant to be dropped")
	}
}

func TestSeenFilterEmptyPath(t *testing.T) {
	grants, err := Run(context.Background(), zap.NewNop(), []Filter{NewSeenFilter("")}, sampleGrants())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if grants.Len() != 3 {
		t.Fatalf("expected all grants kept, got %d", grants.Len())
	}
}

func TestSeenFilterMissingFileKeepsAllGrants(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.json")

	grants, err := Run(context.Background(), zap.NewNop(), []Filter{NewSeenFilter(path)}, sampleGrants())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if grants.Len() != 3 {
		t.Fatalf("expected all grants kept on a fresh setup, got %d", grants.Len())
	}
}

func TestSeenFilterUnreadableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seen.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := Run(context.Background(), zap.NewNop(), []Filter{NewSeenFilter(path)}, sampleGrants()); err == nil {
		t.Fatal("expected an error for a corrupt seen store")
	}
}

func TestMinRelevanceFilter(t *testing.T) {
	grants, err := Run(context.Background(), zap.NewNop(), []Filter{NewMinRelevanceFilter(30)}, sampleGrants())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if grants.Len() != 2 {
		t.Fatalf("expected 2 grants, got %d", grants.Len())
	}
	if grants.FindByUID("b") != nil {
		t.Fatal("expected low-relevance grant to be dropped")
	}
}

func TestMinRelevanceFilterDisabled(t *testing.T) {
	grants, err := Run(context.Background(), zap.NewNop(), []Filter{NewMinRelevanceFilter(0)}, sampleGrants())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if grants.Len() != 3 {
		t.Fatalf("expected all grants kept, got %d", grants.Len())
	}
}

func TestFilterChain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seen.json")
	seen := (&Grants{Items: []*Grant{{UID: "c"}}}).ToSeen()
	if err := seen.ToFile(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	filters := []Filter{NewSeenFilter(path), NewMinRelevanceFilter(30)}
	grants, err := Run(context.Background(), zap.NewNop(), filters, sampleGrants())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if grants.Len() != 1 || grants.Items[0].UID != "a" {
		t.Fatalf("expected only grant a, got %+v", grants.Items)
	}
}
