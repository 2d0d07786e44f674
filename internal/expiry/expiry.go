package expiry

import (
	"fmt"
	"sort"
	"time"

	"famick/internal/model"
)

// Bucket classifies how close a stock entry is to its expiry date.
type Bucket int

const (
	BucketNone Bucket = iota // no expiry date set
	BucketExpired
	BucketToday
	BucketTomorrow
	BucketWithinWeek
	BucketLater
)

// BucketFor classifies expiry relative to now. Comparison is by calendar day
// in now's location, not by instant, so "today" means the same calendar date.
func BucketFor(now time.Time, expiryDate *time.Time) Bucket {
	if expiryDate == nil {
		return BucketNone
	}

	days := daysBetween(now, *expiryDate)

	switch {
	case days < 0:
		return BucketExpired
	case days == 0:
		return BucketToday
	case days == 1:
		return BucketTomorrow
	case days <= 7:
		return BucketWithinWeek
	default:
		return BucketLater
	}
}

// DisplayText renders the expiry the way the apps show it: "Expired", "Today",
// "Tomorrow", "N days" within a week, otherwise the plain date. Entries
// without an expiry render as an empty string.
func DisplayText(now time.Time, expiryDate *time.Time) string {
	switch BucketFor(now, expiryDate) {
	case BucketNone:
		return ""
	case BucketExpired:
		return "Expired"
	case BucketToday:
		return "Today"
	case BucketTomorrow:
		return "Tomorrow"
	case BucketWithinWeek:
		return fmt.Sprintf("%d days", daysBetween(now, *expiryDate))
	default:
		return expiryDate.In(now.Location()).Format("2006-01-02")
	}
}

// SortFEFO orders stock entries first-expired-first-out: ascending by expiry
// date with nil expiries last. Ties keep the earlier-created entry first so
// the sort is stable across reloads.
func SortFEFO(entries []model.StockEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].ExpiryDate, entries[j].ExpiryDate
		switch {
		case a == nil && b == nil:
			return entries[i].CreatedAt.Before(entries[j].CreatedAt)
		case a == nil:
			return false
		case b == nil:
			return true
		case a.Equal(*b):
			return entries[i].CreatedAt.Before(entries[j].CreatedAt)
		default:
			return a.Before(*b)
		}
	})
}

// daysBetween counts whole calendar days from now's date to the expiry date,
// both read in now's location. The dates are re-anchored at UTC midnight
// before subtracting so a DST transition inside the span cannot shave an hour
// off and truncate the day count.
func daysBetween(now, exp time.Time) int {
	exp = exp.In(now.Location())
	a := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(exp.Year(), exp.Month(), exp.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
