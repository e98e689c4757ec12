package cli

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/fatih/color"
	"github.com/felixmde/beeline/internal/beeminder"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all goals",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	client, _, err := newClient()
	if err != nil {
		return err
	}

	goals, err := client.Goals(cmd.Context())
	if err != nil {
		return err
	}

	now := time.Now()
	sortGoals(goals, now, time.Local)
	for _, g := range goals {
		fmt.Fprintln(cmd.OutOrStdout(), formatGoal(g, now, time.Local))
	}
	return nil
}

// sortGoals orders goals so the ones still needing attention come first:
// no entry today before entry today, then by safety buffer ascending.
func sortGoals(goals []beeminder.Goal, now time.Time, loc *time.Location) {
	slices.SortStableFunc(goals, func(a, b beeminder.Goal) int {
		ae, be := hasEntryToday(a, now, loc), hasEntryToday(b, now, loc)
		if ae != be {
			if !ae {
				return -1
			}
			return 1
		}
		return cmp.Compare(a.Safebuf, b.Safebuf)
	})
}

// hasEntryToday reports whether the goal's latest datapoint falls on the
// current calendar day in loc.
func hasEntryToday(g beeminder.Goal, now time.Time, loc *time.Location) bool {
	y1, m1, d1 := now.In(loc).Date()
	y2, m2, d2 := g.LastdayTime().In(loc).Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func formatGoal(g beeminder.Goal, now time.Time, loc *time.Location) string {
	mark := " "
	if hasEntryToday(g, now, loc) {
		mark = "✓"
	}
	line := fmt.Sprintf("%s %-20s [%s]", mark, g.Slug, g.Limsum)
	return safebufColor(g.Safebuf).Sprint(line)
}

// safebufColor maps days of slack to urgency coloring.
func safebufColor(safebuf int) *color.Color {
	switch safebuf {
	case 0:
		return color.New(color.FgRed)
	case 1:
		return color.New(color.FgYellow)
	case 2:
		return color.New(color.FgBlue)
	case 3, 4, 5, 6:
		return color.New(color.FgGreen)
	default:
		return color.New(color.FgWhite)
	}
}
