package store

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/i474232898/season-manager/internal/common"
	"github.com/i474232898/season-manager/internal/season"
)

// Format selects the snapshot file shape written by FileStore. Both shapes
// are always readable.
type Format int

const (
	// FormatHemisphere writes enabled,signed_day,winter,spring,summer,fall.
	// A leading '-' on the day marks the southern hemisphere.
	FormatHemisphere Format = iota
	// FormatCompact writes enabled,day with -1 for an unknown day.
	FormatCompact
)

const (
	compactFields    = 2
	hemisphereFields = 6
	compactNoDay     = -1
)

// ParseFormat maps a config value onto a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hemisphere", "":
		return FormatHemisphere, nil
	case "compact":
		return FormatCompact, nil
	}
	return FormatHemisphere, fmt.Errorf("unknown snapshot format %q", s)
}

func (f Format) String() string {
	if f == FormatCompact {
		return "compact"
	}
	return "hemisphere"
}

// Encode renders snap in the given shape.
func Encode(snap season.Snapshot, f Format) string {
	enabled := common.Itoa01(snap.Enabled)

	if f == FormatCompact {
		day := snap.Day
		if !season.ValidDay(day) {
			day = compactNoDay
		}
		return enabled + "," + strconv.Itoa(day)
	}

	day := snap.Day
	if !season.ValidDay(day) {
		day = season.UnknownDay
	}
	sign := ""
	if snap.Hemisphere == season.South {
		sign = "-"
	}

	in := snap.Indicators
	return strings.Join([]string{
		enabled,
		sign + strconv.Itoa(day),
		common.Itoa01(in.Winter),
		common.Itoa01(in.Spring),
		common.Itoa01(in.Summer),
		common.Itoa01(in.Fall),
	}, ",")
}

// Decode parses either snapshot shape, telling them apart by field count.
func Decode(data string) (season.Snapshot, error) {
	fields := common.SplitFields(data)

	switch len(fields) {
	case compactFields:
		return decodeCompact(fields)
	case hemisphereFields:
		return decodeHemisphere(fields)
	}
	return season.Snapshot{}, fmt.Errorf("%w: %d fields", season.ErrSnapshotParse, len(fields))
}

func decodeCompact(fields []string) (season.Snapshot, error) {
	snap := season.Snapshot{Hemisphere: season.North}

	enabled, err := common.AtoiFlag(fields[0])
	if err != nil {
		return season.Snapshot{}, fmt.Errorf("%w: enabled: %v", season.ErrSnapshotParse, err)
	}
	snap.Enabled = enabled

	day, err := strconv.Atoi(fields[1])
	if err != nil {
		return season.Snapshot{}, fmt.Errorf("%w: day: %v", season.ErrSnapshotParse, err)
	}
	switch {
	case day == compactNoDay, day == season.UnknownDay:
		snap.Day = season.UnknownDay
	case season.ValidDay(day):
		snap.Day = day
	default:
		return season.Snapshot{}, fmt.Errorf("%w: day %d", season.ErrSnapshotParse, day)
	}
	return snap, nil
}

func decodeHemisphere(fields []string) (season.Snapshot, error) {
	snap := season.Snapshot{Hemisphere: season.North, HasIndicators: true}

	enabled, err := common.AtoiFlag(fields[0])
	if err != nil {
		return season.Snapshot{}, fmt.Errorf("%w: enabled: %v", season.ErrSnapshotParse, err)
	}
	snap.Enabled = enabled

	dayField := fields[1]
	if strings.HasPrefix(dayField, "-") {
		snap.Hemisphere = season.South
		dayField = dayField[1:]
	}
	day, err := strconv.Atoi(dayField)
	if err != nil || strings.HasPrefix(dayField, "-") || strings.HasPrefix(dayField, "+") {
		return season.Snapshot{}, fmt.Errorf("%w: day %q", season.ErrSnapshotParse, fields[1])
	}
	if day != season.UnknownDay && !season.ValidDay(day) {
		return season.Snapshot{}, fmt.Errorf("%w: day %d", season.ErrSnapshotParse, day)
	}
	snap.Day = day

	for i, s := range season.Seasons {
		v, err := common.AtoiFlag(fields[2+i])
		if err != nil {
			return season.Snapshot{}, fmt.Errorf("%w: %s: %v", season.ErrSnapshotParse, s, err)
		}
		snap.Indicators.Set(s, v)
	}
	return snap, nil
}
