package analytics_test

import (
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/require"

	"github.com/arunasjusas/invoicing/internal/analytics"
	"github.com/arunasjusas/invoicing/internal/entity"
)

func message(status entity.MessageStatus, sent time.Time) entity.Message {
	id := uuid.Must(uuid.NewV4())

	return entity.Message{
		ID:        "msg-" + id.String() + "-1",
		Date:      sent,
		Step:      entity.StepOne,
		Client:    "UAB Statyba",
		Status:    status,
		InvoiceID: id,
	}
}

func TestComputeRates(t *testing.T) {
	t.Parallel()

	sent := date(2026, time.March, 1)

	messages := []entity.Message{
		message(entity.MessageOpened, sent),
		message(entity.MessageOpened, sent),
		message(entity.MessageSent, sent),
		message(entity.MessageSent, sent),
	}

	rates := analytics.ComputeRates(messages)

	require.Equal(t, 50, rates.OpenRate)
	require.Equal(t, 32, rates.ClickThroughRate)
	require.Equal(t, 15, rates.ConversionRate)
}

func TestComputeRates_Empty(t *testing.T) {
	t.Parallel()

	require.Equal(t, analytics.Rates{}, analytics.ComputeRates(nil))
}

func TestComputeRates_AllOpenedCapsAtHundred(t *testing.T) {
	t.Parallel()

	sent := date(2026, time.March, 1)

	messages := []entity.Message{
		message(entity.MessageOpened, sent),
		message(entity.MessageOpened, sent),
	}

	rates := analytics.ComputeRates(messages)

	require.Equal(t, 100, rates.OpenRate)
	require.Equal(t, 64, rates.ClickThroughRate)
	require.Equal(t, 29, rates.ConversionRate)
}

func TestSendingActivity(t *testing.T) {
	t.Parallel()

	now := date(2026, time.June, 10)

	messages := []entity.Message{
		message(entity.MessageOpened, date(2026, time.May, 3)),
		message(entity.MessageSent, date(2026, time.May, 20)),
		message(entity.MessageSent, date(2026, time.June, 1)),
		// outside the trailing window
		message(entity.MessageSent, date(2024, time.January, 1)),
	}

	buckets := analytics.SendingActivity(messages, now)
	require.Len(t, buckets, 12)

	byMonth := make(map[time.Time]analytics.ActivityBucket, len(buckets))
	for _, b := range buckets {
		byMonth[b.Month] = b
	}

	may := byMonth[date(2026, time.May, 1)]
	require.Equal(t, 2, may.Sent)
	require.Equal(t, 1, may.Opened)

	june := byMonth[date(2026, time.June, 1)]
	require.Equal(t, 1, june.Sent)
	require.Equal(t, 0, june.Opened)

	april := byMonth[date(2026, time.April, 1)]
	require.Equal(t, 0, april.Sent)
}
