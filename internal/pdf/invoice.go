package pdf

import (
	"fmt"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/arunasjusas/invoicing/internal/entity"
)

const vatRate = "1.21"

// The built-in PDF fonts cannot render Lithuanian diacritics, so labels and
// field values are folded to ASCII.
var lithuanianFold = strings.NewReplacer(
	"ą", "a", "č", "c", "ę", "e", "ė", "e", "į", "i", "š", "s", "ų", "u", "ū", "u", "ž", "z",
	"Ą", "A", "Č", "C", "Ę", "E", "Ė", "E", "Į", "I", "Š", "S", "Ų", "U", "Ū", "U", "Ž", "Z",
)

var statusLabels = map[entity.InvoiceStatus]string{
	entity.StatusPaid:    "Apmoketa",
	entity.StatusUnpaid:  "Pradelsta",
	entity.StatusPending: "Terminas nepasibaiges",
}

// RenderInvoice builds the printable invoice document: header, meta table,
// 21% VAT breakdown and the partial payment state.
func RenderInvoice(invoice entity.Invoice) ([]byte, error) {
	m := maroto.New(config.NewBuilder().Build())

	m.AddRow(12, text.NewCol(12, "Saskaita faktura", props.Text{
		Size:  18,
		Style: fontstyle.Bold,
		Align: align.Center,
	}))

	m.AddRow(8, text.NewCol(12, fold(invoice.Number), props.Text{
		Size:  12,
		Align: align.Center,
	}))

	m.AddRow(4, line.NewCol(12))

	addMetaRow(m, "Data", invoice.Date.Format("2006-01-02"))
	addMetaRow(m, "Klientas", fold(invoice.ClientName))
	addMetaRow(m, "Mokejimo terminas", invoice.DueDate.Format("2006-01-02"))
	addMetaRow(m, "Statusas", statusLabel(invoice.Status))

	m.AddRow(4, line.NewCol(12))

	net := invoice.Amount.Div(decimal.RequireFromString(vatRate)).Round(2)
	vat := invoice.Amount.Sub(net)

	addMetaRow(m, "Suma be PVM", formatEUR(net))
	addMetaRow(m, "PVM (21%)", formatEUR(vat))
	addMetaRow(m, "Bendra suma", formatEUR(invoice.Amount))

	if invoice.PaidAmount.IsPositive() {
		addMetaRow(m, "Apmoketa suma", formatEUR(invoice.PaidAmount))
		addMetaRow(m, "Liko apmoketi", formatEUR(invoice.Remaining()))
	}

	if invoice.Notes != "" {
		m.AddRow(4, line.NewCol(12))
		m.AddRow(6, text.NewCol(12, "Pastabos", props.Text{Style: fontstyle.Bold}))
		m.AddRow(6, text.NewCol(12, fold(invoice.Notes)))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate pdf: %w", err)
	}

	return doc.GetBytes(), nil
}

func addMetaRow(m core.Maroto, label, value string) {
	m.AddRow(6,
		text.NewCol(4, label, props.Text{Style: fontstyle.Bold}),
		text.NewCol(8, value),
	)
}

func statusLabel(status entity.InvoiceStatus) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}

	return fold(string(status))
}

func formatEUR(amount decimal.Decimal) string {
	return "EUR " + amount.StringFixed(2)
}

func fold(s string) string {
	return lithuanianFold.Replace(s)
}
