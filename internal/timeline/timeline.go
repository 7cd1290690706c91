// Package timeline maps product version date intervals onto a
// percentage-based display window for roadmap rendering.
package timeline

import "time"

// DateFormat is the wire format for all plan dates.
const DateFormat = "2006-01-02"

// Window is the visible date range of the roadmap. Bars are clipped to
// it and intervals outside it are not rendered at all.
type Window struct {
	Start time.Time
	End   time.Time
}

// DefaultWindow returns the roadmap's rolling window relative to now:
// the first day of the previous calendar month through the last day of
// the month three months ahead (a five-month span).
func DefaultWindow(now time.Time) Window {
	y, m, _ := now.Date()
	start := time.Date(y, m-1, 1, 0, 0, 0, 0, now.Location())
	// Day zero of month m+4 is the last day of month m+3.
	end := time.Date(y, m+4, 0, 0, 0, 0, 0, now.Location())
	return Window{Start: start, End: end}
}

// Months returns the first day of each calendar month covered by the
// window, in order. Used for header columns and grid lines.
func (w Window) Months() []time.Time {
	var months []time.Time
	cur := time.Date(w.Start.Year(), w.Start.Month(), 1, 0, 0, 0, 0, w.Start.Location())
	for !cur.After(w.End) {
		months = append(months, cur)
		cur = cur.AddDate(0, 1, 0)
	}
	return months
}

// Bar is a horizontal bar position within the window, in percent of the
// window width.
type Bar struct {
	LeftPercent  float64
	WidthPercent float64
}

// BarPosition projects the [startDate, endDate] interval onto the
// window. The second return value is false when no bar should be drawn:
// the interval misses the window entirely, a date fails to parse, or
// the interval is empty or inverted (endDate <= startDate). Such
// records are suppressed rather than drawn as zero-width bars.
//
// Whenever a bar is returned, 0 <= LeftPercent and
// LeftPercent+WidthPercent <= 100: bars never extend past either edge.
func BarPosition(w Window, startDate, endDate string) (Bar, bool) {
	start, err := time.Parse(DateFormat, startDate)
	if err != nil {
		return Bar{}, false
	}
	end, err := time.Parse(DateFormat, endDate)
	if err != nil {
		return Bar{}, false
	}
	if !end.After(start) {
		return Bar{}, false
	}
	if end.Before(w.Start) || start.After(w.End) {
		return Bar{}, false
	}

	total := float64(w.End.Sub(w.Start))
	if total <= 0 {
		return Bar{}, false
	}

	left := float64(start.Sub(w.Start)) / total * 100
	width := float64(end.Sub(start)) / total * 100

	// Clip to the visible window.
	if left < 0 {
		width += left
		left = 0
	}
	if left+width > 100 {
		width = 100 - left
	}
	if width < 0 {
		width = 0
	}

	return Bar{LeftPercent: left, WidthPercent: width}, true
}
