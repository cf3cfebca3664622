package utils

import (
	"fmt"
	"time"
)

// FormatExpirationDateTime renders t as the order API expects it for
// GoodTillDate orders: no zero padding and the seconds always 00,
// e.g. 2020-3-20T14:5:00.
func FormatExpirationDateTime(t time.Time) string {
	return fmt.Sprintf("%d-%d-%dT%d:%d:00", t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute())
}

// ExpirationFrom returns now plus the given number of calendar days with the
// seconds and sub-second part cleared.
func ExpirationFrom(now time.Time, days int) time.Time {
	t := now.AddDate(0, 0, days)
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, t.Location())
}
