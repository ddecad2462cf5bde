// Package feed turns results files into live publishers.
//
// A Board holds one publisher per region. Region totals are folded into a
// Ledger with state.MapReduce, so applying a snapshot that changes one region costs one
// retract and one add regardless of how many regions exist.
package feed

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/oklog/ulid/v2"

	"github.com/odvcencio/furry-tally/state"
)

// Standing is one candidate's place in the overall totals.
type Standing struct {
	Candidate string  `json:"candidate"`
	Votes     int64   `json:"votes"`
	Share     float64 `json:"share"`
}

// Board publishes live tallies for a fixed set of regions.
type Board struct {
	names     []string
	regions   map[string]*state.Publisher[Tally]
	totals    *state.Publisher[Tally]
	standings *state.Publisher[[]Standing]
	revision  *state.Publisher[ulid.ULID]
	logger    *slog.Logger
}

// NewBoard creates a board whose regions are those of initial.
func NewBoard(initial Snapshot, opts ...Option) *Board {
	s := newSettings(opts)
	b := &Board{
		names:    initial.Names(),
		regions:  make(map[string]*state.Publisher[Tally], len(initial.Regions)),
		revision: state.NewSeededPublisher(initial.ID),
		logger:   s.logger,
	}
	sources := make([]state.Readable[Tally], 0, len(initial.Regions))
	for _, r := range initial.Regions {
		pub := state.NewSeededPublisher(r.Votes)
		pub.SetEqualFunc(Tally.Equal)
		b.regions[r.Name] = pub
		sources = append(sources, pub)
	}
	ledger := state.MapReduce(sources, Ledger{}, Ledger.Post, Ledger.Retract)
	b.totals = state.Map(ledger, Ledger.Tally)
	b.standings = state.Map(b.totals, Standings)
	return b
}

// Regions returns region names in the order of the initial snapshot.
func (b *Board) Regions() []string {
	return slices.Clone(b.names)
}

// Region returns the publisher for name.
func (b *Board) Region(name string) (state.Readable[Tally], bool) {
	pub, ok := b.regions[name]
	if !ok {
		return nil, false
	}
	return pub, true
}

// Totals publishes the sum of every region.
func (b *Board) Totals() state.Readable[Tally] {
	return b.totals
}

// Standings publishes candidates ordered by total votes.
func (b *Board) Standings() state.Readable[[]Standing] {
	return b.standings
}

// Revision publishes the ID of the last applied snapshot.
func (b *Board) Revision() state.Readable[ulid.ULID] {
	return b.revision
}

// Focus follows the region named by selected. Names that are not on the
// board produce no values until a known name is selected.
func (b *Board) Focus(selected state.Readable[string]) state.Readable[Tally] {
	return state.Compose(selected, func(name string) state.Readable[Tally] {
		pub, ok := b.regions[name]
		if !ok {
			return nil
		}
		return pub
	})
}

// Apply submits each region of snap. Regions whose tally did not change are
// not republished. Regions missing from the board are skipped and reported
// as ErrUnknownRegion.
func (b *Board) Apply(snap Snapshot) error {
	var errs []error
	changed := 0
	for _, r := range snap.Regions {
		pub, ok := b.regions[r.Name]
		if !ok {
			b.logger.Warn("feed: unknown region", "region", r.Name, "revision", snap.ID)
			errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownRegion, r.Name))
			continue
		}
		if pub.Submit(r.Votes) {
			changed++
		}
	}
	b.revision.Submit(snap.ID)
	b.logger.Debug("feed: snapshot applied", "revision", snap.ID, "changed", changed)
	return errors.Join(errs...)
}

// ApplyFile loads path and applies it.
func (b *Board) ApplyFile(path string) error {
	snap, err := Load(path)
	if err != nil {
		return err
	}
	return b.Apply(snap)
}

// Standings orders the candidates of t by votes, then by name.
func Standings(t Tally) []Standing {
	total := t.Total()
	out := make([]Standing, 0, len(t))
	for name, v := range t {
		s := Standing{Candidate: name, Votes: v}
		if total > 0 {
			s.Share = float64(v) / float64(total)
		}
		out = append(out, s)
	}
	slices.SortFunc(out, func(a, b Standing) int {
		if c := cmp.Compare(b.Votes, a.Votes); c != 0 {
			return c
		}
		return cmp.Compare(a.Candidate, b.Candidate)
	})
	return out
}
