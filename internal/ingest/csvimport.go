package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/misterclayt0n/tribase/internal/models"
)

type DurationUnit string

const (
	Seconds DurationUnit = "seconds"
	Minutes DurationUnit = "minutes"
)

type DistanceUnit string

const (
	Meters     DistanceUnit = "meters"
	Kilometers DistanceUnit = "kilometers"
	Miles      DistanceUnit = "miles"
	Yards      DistanceUnit = "yards"
)

const (
	metersPerMile = 1609.34
	metersPerYard = 0.9144
)

// ImportOptions controls how a CSV export from another tracker is mapped.
// Empty column names are guessed from the header.
type ImportOptions struct {
	DateColumn     string
	SportColumn    string
	DurationColumn string
	DistanceColumn string
	DurationUnit   DurationUnit
	DistanceUnit   DistanceUnit
	Intensity      int
}

type ImportResult struct {
	Sessions []models.WorkoutSession
	Skipped  int
	Options  ImportOptions
}

func guessColumn(fields []string, options ...string) string {
	for _, option := range options {
		for _, field := range fields {
			if strings.Contains(strings.ToLower(field), option) {
				return field
			}
		}
	}
	return ""
}

// GuessColumns fills the empty column names of opts from fields, preferring
// the names Strava and Garmin exports use.
func GuessColumns(fields []string, opts ImportOptions) ImportOptions {
	if opts.DateColumn == "" {
		opts.DateColumn = guessColumn(fields, "activity date", "start date", "date")
	}
	if opts.SportColumn == "" {
		opts.SportColumn = guessColumn(fields, "activity type", "sport", "type")
	}
	if opts.DurationColumn == "" {
		opts.DurationColumn = guessColumn(fields, "moving time", "elapsed time", "duration", "time")
	}
	if opts.DistanceColumn == "" {
		opts.DistanceColumn = guessColumn(fields, "distance")
	}
	if opts.DurationUnit == "" {
		opts.DurationUnit = Seconds
	}
	if opts.DistanceUnit == "" {
		opts.DistanceUnit = Meters
	}
	if opts.Intensity == 0 {
		opts.Intensity = 5
	}
	return opts
}

var nonNumeric = regexp.MustCompile(`[^0-9.\-]`)

// looseNumber keeps digits, dot and minus, and returns 0 for anything
// that still does not parse.
func looseNumber(value string) float64 {
	cleaned := nonNumeric.ReplaceAllString(value, "")
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0
	}
	return f
}

// ParseDurationValue returns minutes. Clock notation (h:m:s or m:s) wins
// over unit; a bare number is read in unit.
func ParseDurationValue(value string, unit DurationUnit) float64 {
	v := strings.TrimSpace(value)
	if v == "" {
		return 0
	}
	if strings.Contains(v, ":") {
		parts := strings.Split(v, ":")
		nums := make([]float64, len(parts))
		for i, p := range parts {
			f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil {
				return 0
			}
			nums[i] = f
		}
		switch len(nums) {
		case 3:
			return nums[0]*60 + nums[1] + nums[2]/60
		case 2:
			return nums[0] + nums[1]/60
		}
	}
	n := looseNumber(v)
	if unit == Seconds {
		return n / 60
	}
	return n
}

// ConvertDistance returns yards for swims, miles for everything else, and
// zero for strength work.
func ConvertDistance(distance float64, unit DistanceUnit, d models.Discipline) float64 {
	if distance == 0 || d == models.Strength {
		return 0
	}
	meters := distance
	switch unit {
	case Kilometers:
		meters = distance * 1000
	case Miles:
		meters = distance * metersPerMile
	case Yards:
		meters = distance * metersPerYard
	}
	if d == models.Swim {
		return meters / metersPerYard
	}
	return meters / metersPerMile
}

// NormalizeDiscipline maps free-form activity labels to a discipline.
func NormalizeDiscipline(label string) (models.Discipline, bool) {
	l := strings.ToLower(label)
	contains := func(subs ...string) bool {
		for _, s := range subs {
			if strings.Contains(l, s) {
				return true
			}
		}
		return false
	}
	switch {
	case contains("swim"):
		return models.Swim, true
	case contains("ride", "bike", "cycle"):
		return models.Bike, true
	case contains("run", "walk", "hike"):
		return models.Run, true
	case contains("strength", "weight", "gym", "workout"):
		return models.Strength, true
	}
	return "", false
}

var importDateLayouts = []string{
	"Jan 2, 2006, 3:04:05 PM",
	"Jan 2, 2006 3:04:05 PM",
	"Jan 2, 2006",
	"2006-01-02 15:04:05 -0700",
}

func parseImportDate(value string) (time.Time, bool) {
	if t, err := ParseDate(value); err == nil {
		return t, true
	}
	v := strings.TrimSpace(value)
	for _, layout := range importDateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ImportCSV reads a header-first CSV and converts each row into a session.
// Rows without a usable date or activity type are counted as skipped.
func ImportCSV(r io.Reader, opts ImportOptions) (ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	fields, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return ImportResult{Options: opts}, nil
		}
		return ImportResult{}, fmt.Errorf("reading csv header: %w", err)
	}
	opts = GuessColumns(fields, opts)

	index := make(map[string]int, len(fields))
	for i, f := range fields {
		index[f] = i
	}
	for _, required := range []string{opts.DateColumn, opts.SportColumn, opts.DurationColumn} {
		if _, ok := index[required]; !ok || required == "" {
			return ImportResult{}, fmt.Errorf("%w: %q", ErrMissingColumn, required)
		}
	}
	cell := func(row []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	result := ImportResult{Options: opts}
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return result, fmt.Errorf("reading csv row: %w", err)
		}
		if isBlank(row) {
			continue
		}

		date, ok := parseImportDate(cell(row, opts.DateColumn))
		if !ok {
			result.Skipped++
			continue
		}
		discipline, ok := NormalizeDiscipline(cell(row, opts.SportColumn))
		if !ok {
			result.Skipped++
			continue
		}

		duration := ParseDurationValue(cell(row, opts.DurationColumn), opts.DurationUnit)
		var raw float64
		if opts.DistanceColumn != "" {
			raw = looseNumber(cell(row, opts.DistanceColumn))
		}
		distance := math.Max(0, round2(ConvertDistance(raw, opts.DistanceUnit, discipline)))

		result.Sessions = append(result.Sessions, models.WorkoutSession{
			Date:            date,
			Discipline:      discipline,
			DurationMinutes: math.Max(1, math.Round(duration)),
			Distance:        &distance,
			Intensity:       opts.Intensity,
		})
	}

	return result, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
