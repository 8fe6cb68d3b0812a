package reservation

import "time"

// Quote computes the total price of a reservation. Billing is by whole
// minute: the duration is truncated, then multiplied by the surface's
// per-minute rate and, for doubles, by the configured multiplier.
func Quote(start, end time.Time, pricePerMinute float64, isDoubles bool, doublesMultiplier float64) (float64, error) {
	if !start.Before(end) {
		return 0, ErrInvalidInterval
	}

	minutes := int64(end.Sub(start) / time.Minute)

	multiplier := 1.0
	if isDoubles {
		multiplier = doublesMultiplier
	}

	return float64(minutes) * pricePerMinute * multiplier, nil
}
