package domain

import "errors"

var (
	ErrInsufficientSelection = errors.New("at least 2 attractions must be selected")
	ErrInvalidTimeRange      = errors.New("end time must be after start time")
	ErrDuplicateOrder        = errors.New("selection order values must be unique")
	ErrPlanCancelled         = errors.New("plan cancelled")
)
