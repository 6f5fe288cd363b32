package usage

import "errors"

// ErrLimitReached indicates the user exceeded their usage limit.
var ErrLimitReached = errors.New("limit reached")

// ErrUnknownPlan is returned by SetPlan for an unrecognised plan.
var ErrUnknownPlan = errors.New("unknown plan")

// LimitError carries the usage snapshot at the moment the limit was hit.
type LimitError struct {
	Usage Usage
}

func (e *LimitError) Error() string { return ErrLimitReached.Error() }

func (e *LimitError) Unwrap() error { return ErrLimitReached }
