package feed

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/oklog/ulid/v2"
	"gopkg.in/yaml.v3"
)

// Region is one reporting unit of a results file.
type Region struct {
	Name  string `yaml:"name" json:"name"`
	Votes Tally  `yaml:"votes" json:"votes"`
}

// Snapshot is one full read of a results file. IDs are ULIDs, so later
// snapshots sort after earlier ones.
type Snapshot struct {
	ID      ulid.ULID `yaml:"-" json:"id"`
	Regions []Region  `yaml:"regions" json:"regions"`
}

// Names returns region names in file order.
func (s Snapshot) Names() []string {
	names := make([]string, len(s.Regions))
	for i, r := range s.Regions {
		names[i] = r.Name
	}
	return names
}

// Decode reads a YAML or JSON snapshot and stamps it with a fresh ID.
func Decode(r io.Reader) (Snapshot, error) {
	var snap Snapshot
	if err := yaml.NewDecoder(r).Decode(&snap); err != nil {
		if errors.Is(err, io.EOF) {
			return Snapshot{}, ErrEmptySnapshot
		}
		return Snapshot{}, fmt.Errorf("feed: decode snapshot: %w", err)
	}
	if err := snap.validate(); err != nil {
		return Snapshot{}, err
	}
	snap.ID = ulid.Make()
	return snap, nil
}

// Load reads the snapshot at path.
func Load(path string) (Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("feed: open %s: %w", path, err)
	}
	defer f.Close()

	snap, err := Decode(f)
	if err != nil {
		return Snapshot{}, fmt.Errorf("feed: load %s: %w", path, err)
	}
	return snap, nil
}

func (s Snapshot) validate() error {
	if len(s.Regions) == 0 {
		return ErrEmptySnapshot
	}
	seen := make(map[string]struct{}, len(s.Regions))
	for _, r := range s.Regions {
		if _, dup := seen[r.Name]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateRegion, r.Name)
		}
		seen[r.Name] = struct{}{}
		for candidate, v := range r.Votes {
			if v < 0 {
				return fmt.Errorf("%w: %s/%s", ErrNegativeVotes, r.Name, candidate)
			}
		}
	}
	return nil
}

func formatVotes(v int64) string {
	return strconv.FormatInt(v, 10)
}
