package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/arunasjusas/invoicing/internal/entity"
)

// Reminder step thresholds in days overdue. A step is synthesized once its
// threshold is reached and marked OPENED once the next threshold elapses;
// the last step stays SENT.
const (
	stepOneAfterDays   = 1
	stepTwoAfterDays   = 3
	stepThreeAfterDays = 5

	pendingReminderWindowDays = 3
)

// SynthesizeMessages derives the reminder sequence from the active invoice
// snapshot. Output is deterministic for a given snapshot and now: ids encode
// the invoice and step, dates are offsets from the due date.
func SynthesizeMessages(active []entity.Invoice, now time.Time) []entity.Message {
	var messages []entity.Message

	for _, invoice := range active {
		switch {
		case invoice.IsOverdue(now):
			messages = append(messages, overdueSequence(invoice, now)...)
		case invoice.Status == entity.StatusPending:
			daysUntilDue := int(invoice.DueDate.Sub(now).Hours() / 24)
			if daysUntilDue > 0 && daysUntilDue <= pendingReminderWindowDays {
				messages = append(messages, entity.Message{
					ID:        fmt.Sprintf("msg-%s-reminder", invoice.ID),
					Date:      invoice.Date,
					Step:      entity.StepOne,
					Client:    invoice.ClientName,
					Status:    entity.MessageSent,
					InvoiceID: invoice.ID,
				})
			}
		}
	}

	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].Date.After(messages[j].Date)
	})

	return messages
}

func overdueSequence(invoice entity.Invoice, now time.Time) []entity.Message {
	daysOverdue := int(now.Sub(invoice.DueDate).Hours() / 24)

	var messages []entity.Message

	if daysOverdue >= stepOneAfterDays {
		status := entity.MessageSent
		if daysOverdue >= stepTwoAfterDays {
			status = entity.MessageOpened
		}

		messages = append(messages, stepMessage(invoice, 1, entity.StepOne, stepOneAfterDays, status))
	}

	if daysOverdue >= stepTwoAfterDays {
		status := entity.MessageSent
		if daysOverdue >= stepThreeAfterDays {
			status = entity.MessageOpened
		}

		messages = append(messages, stepMessage(invoice, 2, entity.StepTwo, stepTwoAfterDays, status))
	}

	if daysOverdue >= stepThreeAfterDays {
		messages = append(messages, stepMessage(invoice, 3, entity.StepThree, stepThreeAfterDays, entity.MessageSent))
	}

	return messages
}

func stepMessage(invoice entity.Invoice, n int, step entity.MessageStep, offsetDays int, status entity.MessageStatus) entity.Message {
	return entity.Message{
		ID:        fmt.Sprintf("msg-%s-%d", invoice.ID, n),
		Date:      invoice.DueDate.AddDate(0, 0, offsetDays),
		Step:      step,
		Client:    invoice.ClientName,
		Status:    status,
		InvoiceID: invoice.ID,
	}
}
