package domain

import "errors"

// error kinds returned by the cycle detector and the simulator. callers
// should match with errors.Is, concrete errors wrap one of these
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrInsufficientData = errors.New("insufficient data")
	ErrArithmeticGuard  = errors.New("arithmetic guard")
)

var (
	ErrIngestInProgress = errors.New("ingest already in progress")
	ErrNotFound         = errors.New("not found")
)
