package analytics

// Thresholds holds every rule boundary the engine uses. The zero value is
// not useful; start from DefaultThresholds and override fields.
type Thresholds struct {
	// DeloadEvery forces a deload verdict whenever the number of weekly
	// buckets is a positive multiple of it. It is checked before any
	// delta rule. Zero or negative disables it.
	DeloadEvery int `toml:"deload_every"`

	SpikePct    float64 `toml:"spike_pct"`
	PushingPct  float64 `toml:"pushing_pct"`
	RecoveryPct float64 `toml:"recovery_pct"`

	// Decoupling upper bounds, both inclusive.
	StableDecoupling  float64 `toml:"stable_decoupling"`
	CautionDecoupling float64 `toml:"caution_decoupling"`
	// TableCautionDecoupling replaces CautionDecoupling in the per-session
	// status table.
	TableCautionDecoupling float64 `toml:"table_caution_decoupling"`

	// FatigueDrop is the drop ratio below which recovery EF counts as fatigued.
	FatigueDrop float64 `toml:"fatigue_drop"`
}

const (
	DeloadVolumeChange = -30.0
	SpikeVolumeChange  = -40.0
)

const CautionDecouplingNarrow = 8.0

func DefaultThresholds() Thresholds {
	return Thresholds{
		DeloadEvery:       4,
		SpikePct:          25,
		PushingPct:        15,
		RecoveryPct:       -20,
		StableDecoupling:  5,
		CautionDecoupling: 10,

		TableCautionDecoupling: CautionDecouplingNarrow,
		FatigueDrop:            -0.05,
	}
}

// ForTable returns a copy using the table's Caution bound.
func (th Thresholds) ForTable() Thresholds {
	if th.TableCautionDecoupling > 0 {
		th.CautionDecoupling = th.TableCautionDecoupling
	}
	return th
}
