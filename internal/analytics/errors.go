package analytics

import "errors"

// ErrInsufficientData marks a result computed from too little history.
// Results carry it as a variant; it is never a failure of the call.
var ErrInsufficientData = errors.New("not enough data yet")
