package reservation

import (
	"errors"
	"time"
)

var (
	ErrInvalidInterval = errors.New("start time must be before end time")
	ErrSlotConflict    = errors.New("court is already reserved during the selected time period")
)

// ValidateInterval enforces that start is strictly before end.
func ValidateInterval(start, end time.Time) error {
	if !start.Before(end) {
		return ErrInvalidInterval
	}
	return nil
}

// RejectIfOverlapping fails when the conflict set is non-empty.
func RejectIfOverlapping(overlaps []Reservation) error {
	if len(overlaps) > 0 {
		return ErrSlotConflict
	}
	return nil
}

// ExcludeSelf removes the reservation being updated from a conflict set.
// Matching is by identity, not by interval equality.
func ExcludeSelf(overlaps []Reservation, id int64) []Reservation {
	filtered := overlaps[:0]
	for _, r := range overlaps {
		if r.ID != id {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
