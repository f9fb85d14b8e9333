package shared

import "time"

// EarliestDate returns the earliest non-nil date from the given values.
// The second return is false when every value is nil.
func EarliestDate(dates ...*time.Time) (time.Time, bool) {
	var earliest time.Time
	found := false
	for _, d := range dates {
		if d == nil {
			continue
		}
		if !found || d.Before(earliest) {
			earliest = *d
			found = true
		}
	}
	return earliest, found
}

// LatestDate returns the latest non-nil date from the given values.
// The second return is false when every value is nil.
func LatestDate(dates ...*time.Time) (time.Time, bool) {
	var latest time.Time
	found := false
	for _, d := range dates {
		if d == nil {
			continue
		}
		if !found || d.After(latest) {
			latest = *d
			found = true
		}
	}
	return latest, found
}
