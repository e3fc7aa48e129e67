package sim

import "errors"

var (
	ErrNoStopCondition = errors.New("no stop-when-hit prize configured, break cannot terminate")
	ErrInvalidCount    = errors.New("count must be >= 1")
)
