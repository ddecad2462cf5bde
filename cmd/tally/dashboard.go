package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/oklog/ulid/v2"

	"github.com/odvcencio/furry-tally/backend"
	"github.com/odvcencio/furry-tally/feed"
	"github.com/odvcencio/furry-tally/runtime"
	"github.com/odvcencio/furry-tally/state"
	"github.com/odvcencio/furry-tally/widgets"
)

var palette = []tcell.Color{
	tcell.ColorRed,
	tcell.ColorBlue,
	tcell.ColorGreen,
	tcell.ColorYellow,
	tcell.ColorFuchsia,
	tcell.ColorAqua,
}

// dashboard is the watch screen: a headline, the overall standings chart,
// the focused region, the revision age and a key hint.
type dashboard struct {
	*widgets.Column
	board    *feed.Board
	regions  []string
	selected *state.Publisher[string]
	clock    *state.Publisher[time.Time]
	index    int
}

func newDashboard(board *feed.Board) *dashboard {
	regions := board.Regions()
	d := &dashboard{
		board:    board,
		regions:  regions,
		selected: state.NewPublisher[string](),
		clock:    state.NewSeededPublisher(time.Now()),
	}
	d.selected.SetEqualFunc(state.EqualComparable[string])
	if len(regions) > 0 {
		d.selected.Submit(regions[0])
	}

	headline := widgets.NewLabel(state.Merge(board.Revision(), board.Totals(), headlineText))
	chart := widgets.NewBarChart(state.Map(board.Standings(), standingBars))
	focus := widgets.NewLabel(state.Merge(d.selected, board.Focus(d.selected), regionText))
	age := widgets.NewLabel(state.Merge(board.Revision(), d.clock, ageText))
	age.SetAlignment(widgets.AlignRight)
	hint := widgets.NewLabel(state.Just("tab: next region   pgup/pgdn: scroll   q: quit"))
	hint.SetStyle(backend.DefaultStyle().Dim(true))

	d.Column = widgets.NewColumn(headline, chart, focus, age, hint)
	d.Column.SetFlex(1)
	return d
}

// Bind starts the clock that ages the last revision.
func (d *dashboard) Bind(services runtime.Services) {
	services.Every(time.Second, func(now time.Time) runtime.Message {
		d.clock.Submit(now)
		return nil
	})
}

func (d *dashboard) HandleMessage(msg runtime.Message) runtime.HandleResult {
	key, ok := msg.(runtime.KeyMsg)
	if !ok {
		return d.Column.HandleMessage(msg)
	}
	switch {
	case key.Key == backend.KeyEscape, key.Key == backend.KeyRune && key.Rune == 'q':
		return runtime.WithCommand(runtime.Quit{})
	case key.Key == backend.KeyTab:
		d.cycle(1)
		return runtime.Handled()
	case key.Key == backend.KeyRune && key.Rune == 'j', key.Key == backend.KeyDown:
		d.cycle(1)
		return runtime.Handled()
	case key.Key == backend.KeyRune && key.Rune == 'k', key.Key == backend.KeyUp:
		d.cycle(-1)
		return runtime.Handled()
	}
	return d.Column.HandleMessage(msg)
}

func (d *dashboard) cycle(step int) {
	if len(d.regions) == 0 {
		return
	}
	d.index = (d.index + step + len(d.regions)) % len(d.regions)
	d.selected.Submit(d.regions[d.index])
}

func headlineText(revision ulid.ULID, totals feed.Tally) string {
	return fmt.Sprintf("%d votes  rev %s  %s",
		totals.Total(), revision.String(), ulid.Time(revision.Time()).Format("15:04:05"))
}

func ageText(revision ulid.ULID, now time.Time) string {
	age := max(0, now.Sub(ulid.Time(revision.Time()))).Truncate(time.Second)
	return fmt.Sprintf("updated %s ago", age)
}

func regionText(name string, tally feed.Tally) string {
	var sb strings.Builder
	sb.WriteString(name)
	sb.WriteString(": ")
	sb.WriteString(tally.String())
	return sb.String()
}

func standingBars(standings []feed.Standing) []widgets.Bar {
	bars := make([]widgets.Bar, len(standings))
	for i, s := range standings {
		bars[i] = widgets.Bar{
			Label: fmt.Sprintf("%s %4.1f%%", s.Candidate, s.Share*100),
			Value: s.Votes,
			Style: backend.DefaultStyle().Foreground(palette[i%len(palette)]),
		}
	}
	return bars
}
