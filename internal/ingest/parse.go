package ingest

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/misterclayt0n/tribase/internal/models"
)

// Layouts accepted for a session date. The first one is canonical; the rest
// cover what spreadsheets and older dumps tend to render.
var dateLayouts = []string{
	models.DateLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"1/2/2006",
	"1/2/2006 15:04:05",
}

// ParseDate returns the civil date at UTC midnight.
func ParseDate(value string) (time.Time, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return time.Time{}, fieldErr("date", value, ErrInvalidDate)
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, v)
		if err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fieldErr("date", value, ErrInvalidDate)
}

// ParseNumeric returns nil for an empty cell. A trailing percent sign is
// tolerated, and "NaN" is treated as an empty cell because that is how
// dataframe exports spell a missing value.
func ParseNumeric(value string) (*float64, error) {
	v := strings.TrimSpace(value)
	v = strings.TrimSpace(strings.TrimSuffix(v, "%"))
	if v == "" || strings.EqualFold(v, "nan") {
		return nil, nil
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", ""), 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return nil, fieldErr("numeric", value, ErrInvalidNumeric)
	}
	return &f, nil
}

// ParseIntensity returns 0 for an empty cell. Whole floats such as "7.0"
// are accepted since spreadsheets often render integers that way.
func ParseIntensity(value string) (int, error) {
	f, err := ParseNumeric(value)
	if err != nil {
		return 0, fieldErr("intensity", value, ErrInvalidNumeric)
	}
	if f == nil {
		return 0, nil
	}
	if *f != math.Trunc(*f) || *f < 1 || *f > 10 {
		return 0, fieldErr("intensity", value, ErrInvalidNumeric)
	}
	return int(*f), nil
}

func ParseDiscipline(value string) (models.Discipline, error) {
	v := strings.TrimSpace(value)
	for _, d := range models.Disciplines {
		if strings.EqualFold(v, string(d)) {
			return d, nil
		}
	}
	return "", fieldErr("discipline", value, ErrInvalidDiscipline)
}

// FormatNumeric is the inverse of ParseNumeric.
func FormatNumeric(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// FromRecord converts a dump record back into a session.
func FromRecord(r models.SessionRecord) (models.WorkoutSession, error) {
	date, err := ParseDate(r.Date)
	if err != nil {
		return models.WorkoutSession{}, err
	}
	discipline, err := ParseDiscipline(r.Discipline)
	if err != nil {
		return models.WorkoutSession{}, err
	}
	return models.WorkoutSession{
		ID:              r.ID,
		Date:            date,
		Discipline:      discipline,
		Type:            r.Type,
		DurationMinutes: r.DurationMinutes,
		Distance:        r.Distance,
		Intensity:       r.Intensity,
		AvgHeartRate:    r.AvgHeartRate,
		AvgOutput:       r.AvgOutput,
		DecouplingPct:   r.DecouplingPct,
		RecordedEF:      r.RecordedEF,
	}, nil
}
