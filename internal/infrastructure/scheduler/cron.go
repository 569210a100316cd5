package scheduler

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DailySchedule is a time of day a job fires at
type DailySchedule struct {
	Hour   int
	Minute int
}

// ParseDailySchedule parses a five-field cron expression of the form "minute hour * * *".
// Only fixed minute and hour values are supported.
func ParseDailySchedule(expr string) (DailySchedule, error) {
	fields := strings.Fields(expr)
	if len(fields) != 5 {
		return DailySchedule{}, fmt.Errorf("%w: %q needs 5 fields", ErrInvalidSchedule, expr)
	}
	for _, f := range fields[2:] {
		if f != "*" {
			return DailySchedule{}, fmt.Errorf("%w: %q must run every day", ErrInvalidSchedule, expr)
		}
	}

	minute, err := strconv.Atoi(fields[0])
	if err != nil || minute < 0 || minute > 59 {
		return DailySchedule{}, fmt.Errorf("%w: minute %q", ErrInvalidSchedule, fields[0])
	}
	hour, err := strconv.Atoi(fields[1])
	if err != nil || hour < 0 || hour > 23 {
		return DailySchedule{}, fmt.Errorf("%w: hour %q", ErrInvalidSchedule, fields[1])
	}
	return DailySchedule{Hour: hour, Minute: minute}, nil
}

// At returns the scheduled instant on the day of t, in t's location
func (s DailySchedule) At(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), s.Hour, s.Minute, 0, 0, t.Location())
}

// Due reports whether now falls inside [scheduled, scheduled+window)
func (s DailySchedule) Due(now time.Time, window time.Duration) bool {
	if window < time.Minute {
		window = time.Minute
	}
	at := s.At(now)
	return !now.Before(at) && now.Before(at.Add(window))
}

func (s DailySchedule) String() string {
	return fmt.Sprintf("%d %d * * *", s.Minute, s.Hour)
}
