package daterange

import (
	"strings"
	"time"
)

type Preset string

const (
	PresetToday   Preset = "today"
	PresetWeek    Preset = "week"
	PresetMonth   Preset = "month"
	PresetQuarter Preset = "quarter"
	PresetYear    Preset = "year"
)

// ForPreset returns the range ending today that a named preset covers.
// Weeks start on Sunday.
func ForPreset(preset Preset, now time.Time) (Range, error) {
	today := truncateDay(now)

	var start time.Time
	switch preset {
	case PresetToday:
		start = today
	case PresetWeek:
		start = today.AddDate(0, 0, -int(today.Weekday()))
	case PresetMonth:
		start = time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	case PresetQuarter:
		firstMonth := time.Month((int(today.Month())-1)/3*3 + 1)
		start = time.Date(today.Year(), firstMonth, 1, 0, 0, 0, 0, time.UTC)
	case PresetYear:
		start = time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	default:
		return Range{}, ErrInvalidPreset
	}

	return Range{Start: &start, End: &today}, nil
}

// Resolve turns raw query values into a Range. Explicit bounds win; a preset
// only applies when neither bound is given.
func Resolve(start, end, preset string, now time.Time) (Range, error) {
	r, err := Parse(start, end)
	if err != nil {
		return Range{}, err
	}
	if !r.IsZero() {
		return r, nil
	}

	name := strings.ToLower(strings.TrimSpace(preset))
	if name == "" {
		return All, nil
	}
	return ForPreset(Preset(name), now)
}
