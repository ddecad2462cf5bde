package feed

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPoller_InvalidSchedule(t *testing.T) {
	t.Parallel()

	_, err := NewPoller("results.yaml", "not a schedule", NewBoard(Snapshot{}))
	assert.Error(t, err)
}

func TestPoller_PollApplies(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), sampleYAML)
	snap, err := Load(path)
	require.NoError(t, err)
	board := NewBoard(snap)

	p, err := NewPoller(path, "@every 1m", board, WithLogger(quietLogger()))
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte(`
regions:
  - name: South
    votes: {RED: 0, BLUE: 0}
`), 0o600))
	p.poll()

	totals, _ := board.Totals().Current()
	assert.Equal(t, Tally{"RED": 120, "BLUE": 98}, totals)
}

func TestPoller_RunStopsWithContext(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), sampleYAML)
	snap, err := Load(path)
	require.NoError(t, err)

	p, err := NewPoller(path, "@every 1s", NewBoard(snap), WithLogger(quietLogger()))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 1500*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, p.Run(ctx), context.DeadlineExceeded)
}
