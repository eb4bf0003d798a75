package export

import (
	"bytes"
	"testing"

	"github.com/councilops/grantwriter/internal/project"
)

func TestDOCXWritesArchive(t *testing.T) {
	sections := map[string]string{
		project.SectionNeed:   "After-dark incidents are rising.\n\nBaseline data collected in 2025.",
		project.SectionBudget: "Total $180,000.",
	}

	var buf bytes.Buffer
	err := DOCX(&buf, sections, Meta{Title: "Safer Streets", Applicant: "Greenfield Shire Council"}, nil, sampleResult())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if buf.Len() == 0 {
		t.Fatal("expected document bytes")
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("PK")) {
		t.Fatal("expected a zip archive")
	}
}

func TestDOCXEmptyProject(t *testing.T) {
	var buf bytes.Buffer
	if err := DOCX(&buf, nil, Meta{}, nil, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("expected document bytes")
	}
}
