package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/arunasjusas/invoicing/internal/entity"
)

// KPI is a rollup over the active invoice snapshot. Unpaid figures count
// every UNPAID invoice; Overdue figures count only UNPAID invoices past
// their due date. The two predicates are never mixed.
type KPI struct {
	TotalRevenue     decimal.Decimal
	TotalInvoices    int
	UnpaidCount      int
	UnpaidTotal      decimal.Decimal
	OverdueCount     int
	AverageDelayDays int
}

func ComputeKPI(active []entity.Invoice, now time.Time) KPI {
	kpi := KPI{
		TotalRevenue:  decimal.Zero,
		UnpaidTotal:   decimal.Zero,
		TotalInvoices: len(active),
	}

	var delayDays int

	for _, invoice := range active {
		if invoice.Status == entity.StatusPaid {
			kpi.TotalRevenue = kpi.TotalRevenue.Add(invoice.Amount)
		}

		if invoice.IsUnpaid() {
			kpi.UnpaidCount++
			kpi.UnpaidTotal = kpi.UnpaidTotal.Add(invoice.Amount)
		}

		if invoice.IsOverdue(now) {
			kpi.OverdueCount++
			delayDays += daysBetween(invoice.DueDate, now)
		}
	}

	if kpi.OverdueCount > 0 {
		kpi.AverageDelayDays = (delayDays + kpi.OverdueCount/2) / kpi.OverdueCount
	}

	return kpi
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
