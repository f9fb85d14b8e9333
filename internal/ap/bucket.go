package ap

import "time"

// classifyAging returns the aging bucket for a due date relative to the
// report's as-of date. The four rules partition every possible due date, so
// an invoice that passed the open/reopen test always lands in exactly one
// bucket.
func classifyAging(due, asOf time.Time) AgingBucket {
	switch {
	case !due.After(asOf):
		return BucketCurrent
	case due.Before(asOf.AddDate(0, 0, 31)):
		return BucketOneToThirty
	case due.Before(asOf.AddDate(0, 0, 61)):
		return BucketThirtyOneToSixty
	default:
		return BucketOverSixty
	}
}

// classifyRange assigns a date to one of the five configured ranges. Every
// range is tested in sequence, so when ranges overlap the last matching
// range wins. Ranges with a missing bound are skipped.
func classifyRange(d time.Time, ranges [5]DateRange) RangeBucket {
	bucket := RangeNone
	for i, r := range ranges {
		if r.Contains(d) {
			bucket = RangeBucket(i + 1)
		}
	}
	return bucket
}
