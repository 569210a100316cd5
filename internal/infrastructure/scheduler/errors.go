package scheduler

import "errors"

var (
	// ErrInvalidSchedule is returned for cron expressions outside the "minute hour * * *" form
	ErrInvalidSchedule = errors.New("invalid cron schedule")

	// ErrInvalidConfig is returned when trigger configuration is invalid
	ErrInvalidConfig = errors.New("invalid scheduler configuration")
)
