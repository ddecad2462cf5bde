package feed

import (
	"maps"
	"slices"
	"strings"
)

// Tally maps a candidate to a vote count. Tallies handed to publishers are
// never mutated; every operation returns a fresh map.
type Tally map[string]int64

// Total sums every candidate's votes.
func (t Tally) Total() int64 {
	var total int64
	for _, v := range t {
		total += v
	}
	return total
}

// Equal reports whether both tallies hold the same counts.
func (t Tally) Equal(other Tally) bool {
	return maps.Equal(t, other)
}

// Candidates returns candidate names in sorted order.
func (t Tally) Candidates() []string {
	return slices.Sorted(maps.Keys(t))
}

func (t Tally) String() string {
	var sb strings.Builder
	for i, name := range t.Candidates() {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(name)
		sb.WriteString("=")
		sb.WriteString(formatVotes(t[name]))
	}
	return sb.String()
}

// AddTally returns acc plus t.
func AddTally(acc, t Tally) Tally {
	out := maps.Clone(acc)
	if out == nil {
		out = Tally{}
	}
	for name, v := range t {
		out[name] += v
	}
	return out
}

// SubTally returns acc minus t. Candidates are never removed, so SubTally
// undoes AddTally exactly.
func SubTally(acc, t Tally) Tally {
	out := maps.Clone(acc)
	if out == nil {
		out = Tally{}
	}
	for name, v := range t {
		out[name] -= v
	}
	return out
}

// Ledger is a running sum of tallies that also counts how many of them
// mention each candidate. A candidate reported at zero stays listed; one
// that no summed tally mentions is dropped.
type Ledger struct {
	Votes    Tally
	mentions map[string]int
}

// Post adds t to the ledger.
func (l Ledger) Post(t Tally) Ledger {
	out := Ledger{Votes: AddTally(l.Votes, t), mentions: maps.Clone(l.mentions)}
	if out.mentions == nil {
		out.mentions = make(map[string]int, len(t))
	}
	for name := range t {
		out.mentions[name]++
	}
	return out
}

// Retract removes a tally previously posted to the ledger.
func (l Ledger) Retract(t Tally) Ledger {
	out := Ledger{Votes: SubTally(l.Votes, t), mentions: maps.Clone(l.mentions)}
	if out.mentions == nil {
		out.mentions = make(map[string]int)
	}
	for name := range t {
		out.mentions[name]--
		if out.mentions[name] <= 0 {
			delete(out.mentions, name)
			delete(out.Votes, name)
		}
	}
	return out
}

// Tally returns the summed votes.
func (l Ledger) Tally() Tally {
	if l.Votes == nil {
		return Tally{}
	}
	return l.Votes
}
