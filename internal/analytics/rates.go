package analytics

import (
	"time"

	"github.com/arunasjusas/invoicing/internal/entity"
)

// Click-through and conversion are fixed proportions of the open rate.
// They are presentation placeholders, not measured quantities.
const (
	clickThroughShare = 64
	conversionShare   = 29
)

type Rates struct {
	OpenRate         int `json:"openedRate"`
	ClickThroughRate int `json:"clickThroughRate"`
	ConversionRate   int `json:"conversionRate"`
}

func ComputeRates(messages []entity.Message) Rates {
	if len(messages) == 0 {
		return Rates{}
	}

	var opened int

	for _, m := range messages {
		if m.Status == entity.MessageOpened {
			opened++
		}
	}

	total := len(messages)

	return Rates{
		OpenRate:         capped(roundedShare(opened, total, 100)),
		ClickThroughRate: capped(roundedShare(opened, total, clickThroughShare)),
		ConversionRate:   capped(roundedShare(opened, total, conversionShare)),
	}
}

func roundedShare(part, total, scale int) int {
	return (part*scale + total/2) / total
}

func capped(v int) int {
	if v > 100 {
		return 100
	}

	return v
}

// ActivityBucket counts reminder activity for one calendar month.
type ActivityBucket struct {
	Month  time.Time
	Sent   int
	Opened int
}

// SendingActivity rolls messages into the trailing 12 calendar months. Sent
// counts every message dated in the month, Opened the OPENED subset.
func SendingActivity(messages []entity.Message, now time.Time) []ActivityBucket {
	buckets := make([]ActivityBucket, 0, chartMonths)

	first := monthStart(now).AddDate(0, -(chartMonths - 1), 0)

	for i := 0; i < chartMonths; i++ {
		month := first.AddDate(0, i, 0)
		next := month.AddDate(0, 1, 0)

		bucket := ActivityBucket{Month: month}

		for _, m := range messages {
			if m.Date.Before(month) || !m.Date.Before(next) {
				continue
			}

			bucket.Sent++

			if m.Status == entity.MessageOpened {
				bucket.Opened++
			}
		}

		buckets = append(buckets, bucket)
	}

	return buckets
}
