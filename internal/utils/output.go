package utils

// RunPaceToOutput turns a run pace in minutes and seconds per mile into the
// speed figure used as run output: 1000 over the decimal pace. A zero pace
// has no output.
func RunPaceToOutput(minutes, seconds int) float64 {
	pace := float64(minutes) + float64(seconds)/60
	if pace <= 0 {
		return 0
	}
	return 1000 / pace
}
