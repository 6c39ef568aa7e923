package news

import (
	"fmt"
	"strings"
	"time"

	"fx-decision-bot/internal/types"
)

// Calendar rows express time in either 12-hour ("2:30pm") or 24-hour
// ("14:30") form, plus a handful of special tokens that carry no clock time.
var specialTimeTokens = map[string]bool{
	"Day 1":     true,
	"Day 2":     true,
	"Tentative": true,
	"All Day":   true,
}

var clockLayouts = []string{"3:04pm", "3:04PM", "15:04"}

// ParseClockTime parses a calendar time cell. Special tokens normalize to
// midnight.
func ParseClockTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if specialTimeTokens[raw] {
		raw = "00:00"
	}
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", raw)
}

// ParseImpact maps the calendar's impact icon title onto the impact enum.
func ParseImpact(title string) (types.Impact, bool) {
	switch title {
	case "Low Impact Expected":
		return types.ImpactLow, true
	case "Medium Impact Expected":
		return types.ImpactMedium, true
	case "High Impact Expected":
		return types.ImpactHigh, true
	}
	return "", false
}

// CombineEventTime builds the event timestamp from the calendar's date cell
// (e.g. "WedNov 27", no year) and time cell, attaching the given year.
func CombineEventTime(year int, dateText, timeText string) (time.Time, error) {
	date, err := time.Parse("2006 MonJan 2", fmt.Sprintf("%d %s", year, strings.TrimSpace(dateText)))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", dateText, err)
	}
	clock, err := ParseClockTime(timeText)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), 0, 0, time.UTC), nil
}
