package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustWindow(t *testing.T, start, end string) Window {
	t.Helper()
	s, err := time.Parse(DateFormat, start)
	require.NoError(t, err)
	e, err := time.Parse(DateFormat, end)
	require.NoError(t, err)
	return Window{Start: s, End: e}
}

func TestDefaultWindow(t *testing.T) {
	now := time.Date(2025, time.March, 15, 10, 30, 0, 0, time.UTC)
	w := DefaultWindow(now)

	assert.Equal(t, time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC), w.End)
}

func TestDefaultWindow_YearBoundary(t *testing.T) {
	now := time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC)
	w := DefaultWindow(now)

	assert.Equal(t, time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2025, time.April, 30, 0, 0, 0, 0, time.UTC), w.End)
}

func TestMonths(t *testing.T) {
	w := DefaultWindow(time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC))
	months := w.Months()

	require.Len(t, months, 5)
	assert.Equal(t, time.February, months[0].Month())
	assert.Equal(t, time.June, months[4].Month())
	for _, m := range months {
		assert.Equal(t, 1, m.Day())
	}
}

func TestBarPosition_FullSpan(t *testing.T) {
	w := mustWindow(t, "2024-10-01", "2025-01-31")

	bar, ok := BarPosition(w, "2024-10-01", "2025-01-23")
	require.True(t, ok)
	assert.Equal(t, 0.0, bar.LeftPercent)
	// 114 of 122 days visible.
	assert.InDelta(t, 93.44, bar.WidthPercent, 0.01)
}

func TestBarPosition_EntirelyBeforeWindow(t *testing.T) {
	w := mustWindow(t, "2025-02-01", "2025-06-30")

	_, ok := BarPosition(w, "2024-09-01", "2024-12-15")
	assert.False(t, ok, "interval ending before the window must not render")
}

func TestBarPosition_EntirelyAfterWindow(t *testing.T) {
	w := mustWindow(t, "2025-02-01", "2025-06-30")

	_, ok := BarPosition(w, "2025-07-01", "2025-09-01")
	assert.False(t, ok)
}

func TestBarPosition_ClipsLeftEdge(t *testing.T) {
	w := mustWindow(t, "2025-02-01", "2025-06-30")

	bar, ok := BarPosition(w, "2025-01-01", "2025-03-01")
	require.True(t, ok)
	assert.Equal(t, 0.0, bar.LeftPercent)
	assert.Greater(t, bar.WidthPercent, 0.0)
	// Only the in-window part of the interval contributes to width.
	days := 28.0 // Feb 1 .. Mar 1
	total := 149.0
	assert.InDelta(t, days/total*100, bar.WidthPercent, 0.01)
}

func TestBarPosition_ClipsRightEdge(t *testing.T) {
	w := mustWindow(t, "2025-02-01", "2025-06-30")

	bar, ok := BarPosition(w, "2025-06-01", "2025-09-30")
	require.True(t, ok)
	assert.InDelta(t, 100.0, bar.LeftPercent+bar.WidthPercent, 0.0001)
	assert.Less(t, bar.LeftPercent, 100.0)
}

func TestBarPosition_SpansWholeWindow(t *testing.T) {
	w := mustWindow(t, "2025-02-01", "2025-06-30")

	bar, ok := BarPosition(w, "2024-01-01", "2026-01-01")
	require.True(t, ok)
	assert.Equal(t, 0.0, bar.LeftPercent)
	assert.InDelta(t, 100.0, bar.WidthPercent, 0.0001)
}

func TestBarPosition_SuppressesDegenerateIntervals(t *testing.T) {
	w := mustWindow(t, "2025-02-01", "2025-06-30")

	tests := []struct {
		name       string
		start, end string
	}{
		{"zero duration", "2025-03-01", "2025-03-01"},
		{"inverted", "2025-04-01", "2025-03-01"},
		{"unparseable start", "not-a-date", "2025-03-01"},
		{"unparseable end", "2025-03-01", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := BarPosition(w, tt.start, tt.end)
			assert.False(t, ok)
		})
	}
}

// Every rendered bar stays inside the window regardless of how the
// interval overlaps it.
func TestBarPosition_ClampInvariant(t *testing.T) {
	w := mustWindow(t, "2025-02-01", "2025-06-30")

	intervals := [][2]string{
		{"2024-12-01", "2025-02-02"},
		{"2025-01-15", "2025-08-15"},
		{"2025-02-01", "2025-06-30"},
		{"2025-03-10", "2025-03-11"},
		{"2025-06-29", "2025-12-31"},
		{"2024-06-01", "2025-02-01"},
	}
	for _, iv := range intervals {
		bar, ok := BarPosition(w, iv[0], iv[1])
		if !ok {
			continue
		}
		assert.GreaterOrEqual(t, bar.LeftPercent, 0.0, "interval %v", iv)
		assert.LessOrEqual(t, bar.LeftPercent, 100.0, "interval %v", iv)
		assert.GreaterOrEqual(t, bar.WidthPercent, 0.0, "interval %v", iv)
		assert.LessOrEqual(t, bar.LeftPercent+bar.WidthPercent, 100.0, "interval %v", iv)
	}
}
