package analytics

import (
	"time"

	"github.com/arunasjusas/invoicing/internal/entity"
)

const chartMonths = 12

// MonthBucket carries cumulative status counts up to the end of Month:
// every active invoice dated in that month or earlier is included. The
// cumulative variant was chosen so the chart reads as a running total.
type MonthBucket struct {
	Month   time.Time
	Paid    int
	Unpaid  int
	Pending int
}

// MonthlyBuckets rolls the active snapshot into the trailing 12 calendar
// months ending at now's month.
func MonthlyBuckets(active []entity.Invoice, now time.Time) []MonthBucket {
	buckets := make([]MonthBucket, 0, chartMonths)

	first := monthStart(now).AddDate(0, -(chartMonths - 1), 0)

	for i := 0; i < chartMonths; i++ {
		month := first.AddDate(0, i, 0)
		cutoff := month.AddDate(0, 1, 0)

		bucket := MonthBucket{Month: month}

		for _, invoice := range active {
			if !invoice.Date.Before(cutoff) {
				continue
			}

			switch invoice.Status {
			case entity.StatusPaid:
				bucket.Paid++
			case entity.StatusUnpaid:
				bucket.Unpaid++
			case entity.StatusPending:
				bucket.Pending++
			}
		}

		buckets = append(buckets, bucket)
	}

	return buckets
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
