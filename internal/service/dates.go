package service

import "time"

const dateLayout = "2006-01-02"

// dateRange expands [start, end) into its YYYY-MM-DD nights. End is
// exclusive, so a two-night stay yields two dates.
func dateRange(start, end string) ([]string, error) {
	from, err := time.Parse(dateLayout, start)
	if err != nil {
		return nil, ErrInvalidDates
	}
	to, err := time.Parse(dateLayout, end)
	if err != nil {
		return nil, ErrInvalidDates
	}
	if !to.After(from) {
		return nil, ErrInvalidDates
	}

	var dates []string
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(dateLayout))
	}
	return dates, nil
}
