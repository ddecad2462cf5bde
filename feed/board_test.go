package feed

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/furry-tally/state"
)

func decode(t *testing.T, body string) Snapshot {
	t.Helper()
	snap, err := Decode(strings.NewReader(body))
	require.NoError(t, err)
	return snap
}

type recorder[T any] struct {
	mu     sync.Mutex
	values []T
}

func record[T any](src state.Readable[T]) *recorder[T] {
	r := &recorder[T]{}
	state.SubscribeFunc(src, func(v T) {
		r.mu.Lock()
		r.values = append(r.values, v)
		r.mu.Unlock()
	})
	return r
}

func (r *recorder[T]) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.values)
}

func TestBoard_InitialTotals(t *testing.T) {
	t.Parallel()

	board := NewBoard(decode(t, sampleYAML))

	totals, ok := board.Totals().Current()
	require.True(t, ok)
	assert.Equal(t, Tally{"RED": 160, "BLUE": 175, "GREEN": 5}, totals)
	assert.Equal(t, []string{"North", "South"}, board.Regions())

	standings, ok := board.Standings().Current()
	require.True(t, ok)
	require.Len(t, standings, 3)
	assert.Equal(t, "BLUE", standings[0].Candidate)
}

func TestBoard_ApplyUpdatesTotals(t *testing.T) {
	t.Parallel()

	board := NewBoard(decode(t, sampleYAML))
	next := decode(t, `
regions:
  - name: North
    votes: {RED: 150, BLUE: 98}
  - name: South
    votes: {RED: 40, BLUE: 77, GREEN: 5}
`)
	require.NoError(t, board.Apply(next))

	totals, _ := board.Totals().Current()
	assert.Equal(t, Tally{"RED": 190, "BLUE": 175, "GREEN": 5}, totals)

	revision, _ := board.Revision().Current()
	assert.Equal(t, next.ID, revision)
}

func TestBoard_ZeroReportKeepsCandidate(t *testing.T) {
	t.Parallel()

	board := NewBoard(decode(t, `
regions:
  - name: A
    votes: {Y: 3}
  - name: B
    votes: {Y: 0}
`))
	require.NoError(t, board.Apply(decode(t, `
regions:
  - name: A
    votes: {Z: 1}
`)))

	totals, _ := board.Totals().Current()
	assert.Equal(t, Tally{"Y": 0, "Z": 1}, totals, "totals should equal a fresh sum of A{Z:1} and B{Y:0}")

	standings, _ := board.Standings().Current()
	require.Len(t, standings, 2)
	assert.Equal(t, Standing{Candidate: "Y", Votes: 0, Share: 0}, standings[1])

	require.NoError(t, board.Apply(decode(t, `
regions:
  - name: B
    votes: {Z: 2}
`)))
	totals, _ = board.Totals().Current()
	assert.Equal(t, Tally{"Z": 3}, totals, "a candidate no region reports is dropped")
}

func TestBoard_UnchangedRegionsAreNotRepublished(t *testing.T) {
	t.Parallel()

	board := NewBoard(decode(t, sampleYAML))
	south, ok := board.Region("South")
	require.True(t, ok)
	southSeen := record(south)
	totalsSeen := record(board.Totals())

	require.NoError(t, board.Apply(decode(t, `
regions:
  - name: North
    votes: {RED: 121, BLUE: 98}
  - name: South
    votes: {RED: 40, BLUE: 77, GREEN: 5}
`)))

	assert.Equal(t, 1, southSeen.len(), "only the replay should reach the unchanged region")
	assert.Equal(t, 2, totalsSeen.len(), "one replay plus one update")
}

func TestBoard_UnknownRegion(t *testing.T) {
	t.Parallel()

	board := NewBoard(decode(t, sampleYAML))
	err := board.Apply(decode(t, `
regions:
  - name: North
    votes: {RED: 1}
  - name: West
    votes: {RED: 1000}
`))
	require.ErrorIs(t, err, ErrUnknownRegion)
	assert.Contains(t, err.Error(), "West")

	totals, _ := board.Totals().Current()
	assert.Equal(t, Tally{"RED": 41, "BLUE": 77, "GREEN": 5}, totals, "known regions are still applied")

	_, ok := board.Region("West")
	assert.False(t, ok)
}

func TestBoard_FocusFollowsSelection(t *testing.T) {
	t.Parallel()

	board := NewBoard(decode(t, sampleYAML))
	selected := state.NewSeededPublisher("North")
	focus := board.Focus(selected)

	got, ok := focus.Current()
	require.True(t, ok)
	assert.Equal(t, int64(120), got["RED"])

	selected.Submit("South")
	got, _ = focus.Current()
	assert.Equal(t, int64(40), got["RED"])

	require.NoError(t, board.Apply(decode(t, `
regions:
  - name: North
    votes: {RED: 500}
  - name: South
    votes: {RED: 41}
`)))
	got, _ = focus.Current()
	assert.Equal(t, int64(41), got["RED"], "focus ignores the deselected region")
}

func TestBoard_ConcurrentApply(t *testing.T) {
	t.Parallel()

	board := NewBoard(decode(t, sampleYAML))
	snap := decode(t, sampleYAML)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50 && ctx.Err() == nil; j++ {
				_ = board.Apply(snap)
			}
		}()
	}
	wg.Wait()

	totals, _ := board.Totals().Current()
	assert.Equal(t, Tally{"RED": 160, "BLUE": 175, "GREEN": 5}, totals)
}
