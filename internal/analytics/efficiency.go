package analytics

import (
	"math"

	"github.com/misterclayt0n/tribase/internal/models"
)

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}

// SessionEfficiency is output over heart rate, rounded to 4 places. It is
// undefined without both values or with a non-positive heart rate.
func SessionEfficiency(s models.WorkoutSession) (float64, bool) {
	if s.AvgHeartRate == nil || *s.AvgHeartRate <= 0 || s.AvgOutput == nil {
		return 0, false
	}
	return round4(*s.AvgOutput / *s.AvgHeartRate), true
}

// EfficiencyOf prefers the value derived from raw fields and falls back to
// an EF recorded directly on the session.
func EfficiencyOf(s models.WorkoutSession) (float64, bool) {
	if ef, ok := SessionEfficiency(s); ok {
		return ef, true
	}
	if s.RecordedEF != nil && !math.IsNaN(*s.RecordedEF) {
		return *s.RecordedEF, true
	}
	return 0, false
}
