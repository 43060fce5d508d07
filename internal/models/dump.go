package models

// SessionRecord is the flat, string-dated form used by the TOML dump.
type SessionRecord struct {
	ID              string   `toml:"id"`
	Date            string   `toml:"date"`
	Discipline      string   `toml:"discipline"`
	Type            string   `toml:"type,omitempty"`
	DurationMinutes float64  `toml:"duration_minutes"`
	Distance        *float64 `toml:"distance,omitempty"`
	Intensity       int      `toml:"intensity,omitempty"`
	AvgHeartRate    *float64 `toml:"avg_heart_rate,omitempty"`
	AvgOutput       *float64 `toml:"avg_output,omitempty"`
	DecouplingPct   *float64 `toml:"decoupling_pct,omitempty"`
	RecordedEF      *float64 `toml:"ef,omitempty"`
}

type SessionDump struct {
	Sessions []SessionRecord `toml:"sessions"`
}

func (s WorkoutSession) Record() SessionRecord {
	return SessionRecord{
		ID:              s.ID,
		Date:            s.DateString(),
		Discipline:      string(s.Discipline),
		Type:            s.Type,
		DurationMinutes: s.DurationMinutes,
		Distance:        s.Distance,
		Intensity:       s.Intensity,
		AvgHeartRate:    s.AvgHeartRate,
		AvgOutput:       s.AvgOutput,
		DecouplingPct:   s.DecouplingPct,
		RecordedEF:      s.RecordedEF,
	}
}
