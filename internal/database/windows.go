// Shelfwatch - Sales Coverage and Availability Analytics
// Copyright 2026 The Shelfwatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shelfwatch/shelfwatch

package database

import "time"

// Window is a half-open interval [Start, End) over invoice dates.
//
// Boundaries are normalized to day precision because invoice_date is a DATE
// column: Start truncates to midnight, End rounds up to the next midnight so
// a mid-day asOf still covers its own calendar day. Windows derived from the
// same asOf therefore tile exactly: the historical band ends where the
// recent band begins, no gap and no overlap.
type Window struct {
	Start time.Time
	End   time.Time
}

// ResolveAsOf substitutes the current time for a zero asOf. Every engine
// operation accepts a zero reference date meaning "now".
func ResolveAsOf(asOf time.Time) time.Time {
	if asOf.IsZero() {
		return time.Now()
	}
	return asOf
}

// MonthsWindow returns the trailing window of months calendar months ending
// at asOf: [asOf-months, asOf), day-normalized.
func MonthsWindow(asOf time.Time, months int) Window {
	end := ceilDay(ResolveAsOf(asOf))
	return Window{Start: end.AddDate(0, -months, 0), End: end}
}

// DaysWindow returns the trailing window of days calendar days ending at
// asOf: [asOf-days, asOf), day-normalized.
func DaysWindow(asOf time.Time, days int) Window {
	end := ceilDay(ResolveAsOf(asOf))
	return Window{Start: end.AddDate(0, 0, -days), End: end}
}

// Span builds a window from explicit bounds, normalized to day precision.
func Span(start, end time.Time) Window {
	return Window{Start: truncateDay(start), End: ceilDay(end)}
}

// SplitAt splits w at cut into the older band [Start, cut) and the newer
// band [cut, End). The availability detector uses this to carve the recent
// days out of the trailing year.
func (w Window) SplitAt(cut time.Time) (older, newer Window) {
	cut = truncateDay(cut)
	if cut.Before(w.Start) {
		cut = w.Start
	}
	if cut.After(w.End) {
		cut = w.End
	}
	return Window{Start: w.Start, End: cut}, Window{Start: cut, End: w.End}
}

// Contains reports whether d falls inside the half-open window.
func (w Window) Contains(d time.Time) bool {
	return !d.Before(w.Start) && d.Before(w.End)
}

// Days returns the window length in whole days.
func (w Window) Days() int {
	return int(w.End.Sub(w.Start) / (24 * time.Hour))
}

// IsZero reports whether the window is unset.
func (w Window) IsZero() bool {
	return w.Start.IsZero() && w.End.IsZero()
}

// DaysBetween returns the whole days from a to b at date precision.
// Negative when b is before a.
func DaysBetween(a, b time.Time) int {
	return int(truncateDay(b).Sub(truncateDay(a)) / (24 * time.Hour))
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func ceilDay(t time.Time) time.Time {
	d := truncateDay(t)
	if d.Equal(t) {
		return d
	}
	return d.AddDate(0, 0, 1)
}
