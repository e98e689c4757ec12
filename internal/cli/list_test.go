package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/felixmde/beeline/internal/beeminder"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 15, 14, 0, 0, 0, time.UTC)

func goal(slug string, safebuf int, lastday time.Time) beeminder.Goal {
	return beeminder.Goal{Slug: slug, Safebuf: safebuf, Limsum: "+1 in 1 day", Lastday: lastday.Unix()}
}

func TestHasEntryToday(t *testing.T) {
	today := goal("g", 0, testNow.Add(-2*time.Hour))
	yesterday := goal("g", 0, testNow.Add(-24*time.Hour))

	require.True(t, hasEntryToday(today, testNow, time.UTC))
	require.False(t, hasEntryToday(yesterday, testNow, time.UTC))
}

func TestHasEntryToday_ZoneMatters(t *testing.T) {
	// 23:30 UTC yesterday is already today in a +2h zone when "now" is
	// 00:30 UTC.
	now := time.Date(2025, 6, 15, 0, 30, 0, 0, time.UTC)
	g := goal("g", 0, time.Date(2025, 6, 14, 23, 30, 0, 0, time.UTC))

	require.False(t, hasEntryToday(g, now, time.UTC))
	require.True(t, hasEntryToday(g, now, time.FixedZone("EET", 2*60*60)))
}

func TestSortGoals_NeedyFirstThenSafebuf(t *testing.T) {
	done := goal("done", 5, testNow)
	urgent := goal("urgent", 0, testNow.Add(-24*time.Hour))
	soon := goal("soon", 2, testNow.Add(-24*time.Hour))

	goals := []beeminder.Goal{done, soon, urgent}
	sortGoals(goals, testNow, time.UTC)

	require.Equal(t, []string{"urgent", "soon", "done"}, []string{goals[0].Slug, goals[1].Slug, goals[2].Slug})
}

func TestFormatGoal_MarkAndPadding(t *testing.T) {
	old := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = old })

	slug := "pushups" + strings.Repeat(" ", 20-len("pushups"))

	done := goal("pushups", 3, testNow)
	require.Equal(t, "✓ "+slug+" [+1 in 1 day]", formatGoal(done, testNow, time.UTC))

	pending := goal("pushups", 3, testNow.Add(-24*time.Hour))
	require.Equal(t, "  "+slug+" [+1 in 1 day]", formatGoal(pending, testNow, time.UTC))
}

func TestSafebufColor_Thresholds(t *testing.T) {
	tests := []struct {
		safebuf int
		want    color.Attribute
	}{
		{0, color.FgRed},
		{1, color.FgYellow},
		{2, color.FgBlue},
		{3, color.FgGreen},
		{6, color.FgGreen},
		{7, color.FgWhite},
		{-1, color.FgWhite},
	}
	for _, tc := range tests {
		require.Equal(t, color.New(tc.want), safebufColor(tc.safebuf), "safebuf %d", tc.safebuf)
	}
}
