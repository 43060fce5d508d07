package ingest

import (
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/multierr"

	"github.com/misterclayt0n/tribase/internal/models"
)

type Column int

const (
	ColUnknown Column = iota
	ColID
	ColDate
	ColDiscipline
	ColType
	ColDuration
	ColDistance
	ColIntensity
	ColHeartRate
	ColOutput
	ColDecoupling
	ColEF
	// ColLoad is written for readability in shared sheets and never read back.
	ColLoad
)

var columnAliases = map[string]Column{
	"id":                ColID,
	"date":              ColDate,
	"day":               ColDate,
	"discipline":        ColDiscipline,
	"sport":             ColDiscipline,
	"type":              ColType,
	"workout type":      ColType,
	"category":          ColType,
	"duration":          ColDuration,
	"duration minutes":  ColDuration,
	"minutes":           ColDuration,
	"distance":          ColDistance,
	"intensity":         ColIntensity,
	"rpe":               ColIntensity,
	"avg hr":            ColHeartRate,
	"avg heart rate":    ColHeartRate,
	"heart rate":        ColHeartRate,
	"hr":                ColHeartRate,
	"avg output":        ColOutput,
	"output":            ColOutput,
	"avg power":         ColOutput,
	"power":             ColOutput,
	"decoupling":        ColDecoupling,
	"decoupling pct":    ColDecoupling,
	"drift":             ColDecoupling,
	"ef":                ColEF,
	"efficiency factor": ColEF,
	"efficiency":        ColEF,
	"load":              ColLoad,
}

// DefaultColumns is the header written to an empty store.
var DefaultColumns = []string{
	"ID", "Date", "Discipline", "Type", "Duration", "Distance", "Intensity",
	"Avg HR", "Avg Output", "Decoupling", "EF", "Load",
}

var (
	unitSuffix = regexp.MustCompile(`\s*\(.*\)\s*$`)
	separators = strings.NewReplacer("_", " ", "-", " ", ".", " ")
)

// NormalizeColumn folds a header cell to its lookup key: lowercase, unit
// suffix dropped, separators collapsed to single spaces.
func NormalizeColumn(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	n = unitSuffix.ReplaceAllString(n, "")
	n = separators.Replace(n)
	return strings.Join(strings.Fields(n), " ")
}

func LookupColumn(name string) Column {
	return columnAliases[NormalizeColumn(name)]
}

// Header maps known columns to their position in a row. Unknown columns
// are kept in Names so rows can be written back in the same shape.
type Header struct {
	Names []string
	index map[Column]int
}

func NewHeader(names []string) Header {
	h := Header{Names: names, index: make(map[Column]int)}
	for i, name := range names {
		col := LookupColumn(name)
		if col == ColUnknown {
			continue
		}
		if _, seen := h.index[col]; !seen {
			h.index[col] = i
		}
	}
	return h
}

func (h Header) Has(col Column) bool {
	_, ok := h.index[col]
	return ok
}

// ColumnName is the name a column gets when it is added to a header.
func ColumnName(col Column) string {
	if col <= ColUnknown || int(col) > len(DefaultColumns) {
		return ""
	}
	return DefaultColumns[col-1]
}

// MissingFor lists the columns h lacks to hold every value s carries,
// named as in DefaultColumns. Load is derived and never required.
func (h Header) MissingFor(s models.WorkoutSession) []string {
	needed := []Column{ColID, ColDate, ColDiscipline, ColDuration}
	if s.Type != "" {
		needed = append(needed, ColType)
	}
	if s.Distance != nil {
		needed = append(needed, ColDistance)
	}
	if s.Intensity > 0 {
		needed = append(needed, ColIntensity)
	}
	if s.AvgHeartRate != nil {
		needed = append(needed, ColHeartRate)
	}
	if s.AvgOutput != nil {
		needed = append(needed, ColOutput)
	}
	if s.DecouplingPct != nil {
		needed = append(needed, ColDecoupling)
	}
	if s.RecordedEF != nil {
		needed = append(needed, ColEF)
	}

	var missing []string
	for _, col := range needed {
		if !h.Has(col) {
			missing = append(missing, ColumnName(col))
		}
	}
	return missing
}

// Extend returns a header with names appended to the right.
func (h Header) Extend(names ...string) Header {
	all := make([]string, 0, len(h.Names)+len(names))
	all = append(all, h.Names...)
	return NewHeader(append(all, names...))
}

func (h Header) cell(cells []string, col Column) string {
	i, ok := h.index[col]
	if !ok || i >= len(cells) {
		return ""
	}
	return cells[i]
}

// ParseRecord builds a session from one row. Every failing field is
// reported; the caller drops the row when err is non-nil.
func ParseRecord(h Header, cells []string) (models.WorkoutSession, error) {
	var (
		s    models.WorkoutSession
		errs error
	)

	s.ID = strings.TrimSpace(h.cell(cells, ColID))
	s.Type = strings.TrimSpace(h.cell(cells, ColType))

	date, err := ParseDate(h.cell(cells, ColDate))
	errs = multierr.Append(errs, err)
	s.Date = date

	discipline, err := ParseDiscipline(h.cell(cells, ColDiscipline))
	errs = multierr.Append(errs, err)
	s.Discipline = discipline

	duration, err := ParseNumeric(h.cell(cells, ColDuration))
	errs = multierr.Append(errs, err)
	if duration != nil {
		if *duration < 0 {
			errs = multierr.Append(errs, fieldErr("duration", h.cell(cells, ColDuration), ErrInvalidNumeric))
		} else {
			s.DurationMinutes = *duration
		}
	}

	intensity, err := ParseIntensity(h.cell(cells, ColIntensity))
	errs = multierr.Append(errs, err)
	s.Intensity = intensity

	optional := []struct {
		col Column
		dst **float64
	}{
		{ColDistance, &s.Distance},
		{ColHeartRate, &s.AvgHeartRate},
		{ColOutput, &s.AvgOutput},
		{ColDecoupling, &s.DecouplingPct},
		{ColEF, &s.RecordedEF},
	}
	for _, o := range optional {
		v, err := ParseNumeric(h.cell(cells, o.col))
		errs = multierr.Append(errs, err)
		*o.dst = v
	}

	return s, errs
}

// FormatRecord renders a session in the column order of h.
func FormatRecord(h Header, s models.WorkoutSession) []string {
	row := make([]string, len(h.Names))
	for i, name := range h.Names {
		switch LookupColumn(name) {
		case ColID:
			row[i] = s.ID
		case ColDate:
			row[i] = s.DateString()
		case ColDiscipline:
			row[i] = string(s.Discipline)
		case ColType:
			row[i] = s.Type
		case ColDuration:
			row[i] = strconv.FormatFloat(s.DurationMinutes, 'f', -1, 64)
		case ColDistance:
			row[i] = FormatNumeric(s.Distance)
		case ColIntensity:
			if s.Intensity > 0 {
				row[i] = strconv.Itoa(s.Intensity)
			}
		case ColHeartRate:
			row[i] = FormatNumeric(s.AvgHeartRate)
		case ColOutput:
			row[i] = FormatNumeric(s.AvgOutput)
		case ColDecoupling:
			row[i] = FormatNumeric(s.DecouplingPct)
		case ColEF:
			row[i] = FormatNumeric(s.RecordedEF)
		case ColLoad:
			if s.Intensity > 0 {
				row[i] = strconv.FormatFloat(s.Load(), 'f', -1, 64)
			}
		}
	}
	return row
}
