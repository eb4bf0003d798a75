package project

import (
	"encoding/json"
	"os"
)

// Bundle is the on-disk save format: project details, the funder criteria
// pasted verbatim, the section list in use, and any generated drafts.
type Bundle struct {
	Project  *Project          `json:"project"`
	Criteria string            `json:"criteria"`
	Sections []string          `json:"sections,omitempty"`
	Drafts   map[string]string `json:"drafts,omitempty"`
}

// LoadBundle reads a saved bundle from path. Missing fields are tolerated so
// bundles written by older versions keep loading.
func LoadBundle(path string) (*Bundle, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return &Bundle{Project: &Project{}}, nil
	}

	var bundle Bundle
	if err := json.NewDecoder(file).Decode(&bundle); err != nil {
		return nil, err
	}

	if bundle.Project == nil {
		bundle.Project = &Project{}
	}
	if bundle.Drafts == nil {
		bundle.Drafts = make(map[string]string)
	}

	return &bundle, nil
}

// Save writes the bundle to path, creating or truncating the file.
func (b *Bundle) Save(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(b)
}

// AssessableSections returns the project content keyed by canonical section
// name, with drafted sections replacing the raw notes they were written from.
// Drafts whose name maps to no canonical section are left out.
func (b *Bundle) AssessableSections() map[string]string {
	sections := b.Project.SectionTexts()
	for name, draft := range b.Drafts {
		target, ok := DraftTargets[name]
		if !ok {
			if _, known := sections[name]; !known {
				continue
			}
			target = name
		}
		sections[target] = draft
	}
	return sections
}

// SectionList returns the configured draft sections, defaulting to the full
// document order.
func (b *Bundle) SectionList() []string {
	if len(b.Sections) > 0 {
		return b.Sections
	}
	return DraftSections
}
