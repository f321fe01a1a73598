package contract

import (
	"errors"
	"sort"
	"time"

	"github.com/ImmoNova/api-portal/internal/payment"
)

var (
	// ErrInvalidAmount rejects non-positive payment amounts.
	ErrInvalidAmount = errors.New("payment amount must be positive")
	// ErrExceedsTotal rejects a completed payment that would push PaidAmount
	// past TotalAmount.
	ErrExceedsTotal = errors.New("payment would exceed the contract total")
	// ErrPaidExceedsTotal reports a contract whose stored amounts already
	// violate the paid <= total invariant.
	ErrPaidExceedsTotal = errors.New("paid amount exceeds contract total")
)

// InstallmentView is an installment annotated with its derived read-time
// status. Overdue is recomputed on every read, never stored.
type InstallmentView struct {
	Installment
	Overdue       bool   `json:"overdue"`
	DerivedStatus string `json:"derivedStatus"`
}

// Progress returns the paid ratio in [0,1]. A zero-total contract is
// degenerate and reports 0.
func Progress(c Contract) float64 {
	if c.TotalAmount == 0 {
		return 0
	}
	return c.PaidAmount / c.TotalAmount
}

// Remaining returns what is still owed. Negative values mean the stored
// amounts violate the invariant; CheckInvariants surfaces that.
func Remaining(c Contract) float64 {
	return c.TotalAmount - c.PaidAmount
}

// CheckInvariants reports stored-state violations without repairing them.
func CheckInvariants(c Contract) error {
	if c.PaidAmount < 0 || c.PaidAmount > c.TotalAmount {
		return ErrPaidExceedsTotal
	}
	return nil
}

// IsOverdue derives the overdue flag for one installment at the given time.
func IsOverdue(i Installment, now time.Time) bool {
	return i.Status != InstallmentPaid && i.DueDate.Before(now)
}

// byPosition orders installments by stored position, lower id first on ties.
func byPosition(installments []Installment) []Installment {
	ordered := make([]Installment, len(installments))
	copy(ordered, installments)
	sort.SliceStable(ordered, func(a, b int) bool {
		if ordered[a].Position != ordered[b].Position {
			return ordered[a].Position < ordered[b].Position
		}
		return ordered[a].ID < ordered[b].ID
	})
	return ordered
}

// PendingInstallments returns every unpaid installment in stored order, each
// annotated with the derived overdue flag.
func PendingInstallments(c Contract, now time.Time) []InstallmentView {
	views := make([]InstallmentView, 0, len(c.Installments))
	for _, i := range byPosition(c.Installments) {
		if i.Status == InstallmentPaid {
			continue
		}
		v := InstallmentView{Installment: i, DerivedStatus: InstallmentPending}
		if IsOverdue(i, now) {
			v.Overdue = true
			v.DerivedStatus = InstallmentOverdue
		}
		views = append(views, v)
	}
	return views
}

// NextDue returns the first unpaid installment by stored order.
func NextDue(c Contract, now time.Time) (Installment, bool) {
	for _, i := range byPosition(c.Installments) {
		if i.Status != InstallmentPaid {
			return i, true
		}
	}
	return Installment{}, false
}

// RecordPayment applies a payment to a contract snapshot and returns the
// updated snapshot; the input is left untouched. Only completed payments move
// PaidAmount and installment statuses: unpaid installments are covered
// oldest-first by stored order until the amount runs out, accepting partial
// and over payments (the leftover simply covers nothing). This is the single
// mutation path tying PaidAmount to installment statuses.
func RecordPayment(c Contract, pay payment.Payment, now time.Time) (Contract, error) {
	if pay.Amount <= 0 {
		return c, ErrInvalidAmount
	}
	if pay.Status != payment.StatusCompleted {
		// pending/failed payments are recorded but have no ledger effect
		return c, nil
	}
	if c.PaidAmount+pay.Amount > c.TotalAmount {
		return c, ErrExceedsTotal
	}

	updated := c
	updated.PaidAmount += pay.Amount
	updated.Installments = byPosition(c.Installments)

	left := pay.Amount
	for idx := range updated.Installments {
		inst := &updated.Installments[idx]
		if inst.Status == InstallmentPaid {
			continue
		}
		if left < inst.Amount {
			break
		}
		left -= inst.Amount
		inst.Status = InstallmentPaid
		paidAt := now
		inst.PaidAt = &paidAt
	}

	updated.NextPaymentDate = nil
	if next, ok := NextDue(updated, now); ok {
		due := next.DueDate
		updated.NextPaymentDate = &due
	}
	return updated, nil
}
