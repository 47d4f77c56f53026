package booking

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/salon-booking/internal/httperr"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// ParseDate parses a booking date in YYYY-MM-DD form.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, httperr.ErrBusiness("invalid_date_or_time")
	}
	return d, nil
}

// EndTime derives the end of a slot from its start and a duration in
// minutes, both as HH:MM strings.
func EndTime(start string, durationMin int) (string, error) {
	t, err := time.Parse(timeLayout, start)
	if err != nil {
		return "", httperr.ErrBusiness("invalid_date_or_time")
	}
	end := t.Add(time.Duration(durationMin) * time.Minute)
	return fmt.Sprintf("%02d:%02d", end.Hour(), end.Minute()), nil
}
