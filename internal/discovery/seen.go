package discovery

import (
	"encoding/json"
	"os"
	"time"
)

// SeenGrants records opportunities already shown to staff so repeat runs
// surface only new ones.
type SeenGrants struct {
	Items []*SeenGrant
}

type SeenGrant struct {
	UID    string
	Link   string
	Source string
	SeenAt time.Time
}

// LoadSeen reads the seen store from path. An empty file yields an empty store.
func LoadSeen(path string) (*SeenGrants, error) {
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
		return &SeenGrants{}, nil
	}

	var seen SeenGrants
	if err := json.NewDecoder(file).Decode(&seen); err != nil {
		return nil, err
	}
	return &seen, nil
}

func (s *SeenGrants) Append(other *SeenGrants) {
	s.Items = append(s.Items, other.Items...)
}

func (s *SeenGrants) UIDs() []string {
	uids := make([]string, 0, len(s.Items))
	for _, item := range s.Items {
		uids = append(uids, item.UID)
	}
	return uids
}

// ToFile writes the store to path, creating or truncating the file.
func (s *SeenGrants) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
