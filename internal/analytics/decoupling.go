package analytics

type DecouplingStatus int

const (
	Stable DecouplingStatus = iota
	Caution
	HighFatigue
)

func (s DecouplingStatus) String() string {
	switch s {
	case Stable:
		return "Stable"
	case Caution:
		return "Caution"
	default:
		return "High Fatigue"
	}
}

// Advice is the coaching action attached to a decoupling status.
func (s DecouplingStatus) Advice() string {
	switch s {
	case Stable:
		return "Increase duration or intensity by 10-15%"
	case Caution:
		return "Hold volume"
	default:
		return "Reduce duration or intensity"
	}
}

// ClassifyDecoupling uses inclusive upper bounds: a value equal to
// StableDecoupling is Stable, equal to CautionDecoupling is Caution.
func ClassifyDecoupling(pct float64, th Thresholds) DecouplingStatus {
	switch {
	case pct <= th.StableDecoupling:
		return Stable
	case pct <= th.CautionDecoupling:
		return Caution
	default:
		return HighFatigue
	}
}
