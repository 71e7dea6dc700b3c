package utils

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// ParseDateRange reads optional YYYY-MM-DD bounds. The upper bound is moved
// to the start of the following day so filters can use "created_at < to".
func ParseDateRange(from, to string) (*time.Time, *time.Time, error) {
	var start, end *time.Time
	if from != "" {
		t, err := time.ParseInLocation(DateLayout, from, time.Local)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid date format: %s", from)
		}
		start = &t
	}
	if to != "" {
		t, err := time.ParseInLocation(DateLayout, to, time.Local)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid date format: %s", to)
		}
		t = t.AddDate(0, 0, 1)
		end = &t
	}
	if start != nil && end != nil && !start.Before(*end) {
		return nil, nil, fmt.Errorf("from must not be after to")
	}
	return start, end, nil
}
