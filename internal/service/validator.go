package service

import (
	"fmt"

	"github.com/arunasjusas/invoicing/internal/entity"
)

func ValidateCreateInvoiceParams(p CreateInvoiceParams) error {
	if p.Date.IsZero() || p.DueDate.IsZero() {
		return fmt.Errorf("%w: date and dueDate are required", entity.ErrValidation)
	}

	if p.DueDate.Before(p.Date) {
		return fmt.Errorf("%w: dueDate before date", entity.ErrValidation)
	}

	if !p.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", entity.ErrValidation)
	}

	if p.PaidAmount.IsNegative() {
		return fmt.Errorf("%w: paidAmount must not be negative", entity.ErrValidation)
	}

	if !p.Status.IsValid() {
		return fmt.Errorf("%w: unknown status %q", entity.ErrValidation, p.Status)
	}

	if p.ClientID.IsNil() && p.ClientName == "" {
		return fmt.Errorf("%w: client is required", entity.ErrValidation)
	}

	return nil
}

func ValidateInvoicePatch(patch entity.InvoicePatch) error {
	if patch.IsZero() {
		return fmt.Errorf("%w: empty patch", entity.ErrValidation)
	}

	if patch.Number != nil && *patch.Number == "" {
		return fmt.Errorf("%w: number must not be empty", entity.ErrValidation)
	}

	if patch.Amount != nil && !patch.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", entity.ErrValidation)
	}

	if patch.PaidAmount != nil && patch.PaidAmount.IsNegative() {
		return fmt.Errorf("%w: paidAmount must not be negative", entity.ErrValidation)
	}

	if patch.Status != nil && !patch.Status.IsValid() {
		return fmt.Errorf("%w: unknown status %q", entity.ErrValidation, *patch.Status)
	}

	if patch.Date != nil && patch.DueDate != nil && patch.DueDate.Before(*patch.Date) {
		return fmt.Errorf("%w: dueDate before date", entity.ErrValidation)
	}

	return nil
}

// validatePatchDates checks the due-date invariant against the stored record
// when the patch moves only one of the two dates.
func validatePatchDates(current entity.Invoice, patch entity.InvoicePatch) error {
	date := current.Date
	if patch.Date != nil {
		date = *patch.Date
	}

	dueDate := current.DueDate
	if patch.DueDate != nil {
		dueDate = *patch.DueDate
	}

	if dueDate.Before(date) {
		return fmt.Errorf("%w: dueDate before date", entity.ErrValidation)
	}

	return nil
}

func ValidateCreateClientParams(p CreateClientParams) error {
	if p.Name == "" || p.Email == "" || p.Phone == "" {
		return fmt.Errorf("%w: name, email and phone are required", entity.ErrValidation)
	}

	return nil
}

func ValidateClientPatch(patch entity.ClientPatch) error {
	if patch.IsZero() {
		return fmt.Errorf("%w: empty patch", entity.ErrValidation)
	}

	if patch.Name != nil && *patch.Name == "" {
		return fmt.Errorf("%w: name must not be empty", entity.ErrValidation)
	}

	return nil
}
