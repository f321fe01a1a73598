package contract

import (
	"testing"
	"time"

	"github.com/ImmoNova/api-portal/internal/payment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func completed(amount float64) payment.Payment {
	return payment.Payment{Amount: amount, Date: testNow, Status: payment.StatusCompleted}
}

// Three installments covering a 1,000,000 contract, due monthly.
func millionContract() Contract {
	due := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	return Contract{
		ID:          1,
		TotalAmount: 1_000_000,
		Installments: []Installment{
			{ID: 11, Position: 1, Amount: 333_334, DueDate: due, Status: InstallmentPending},
			{ID: 12, Position: 2, Amount: 333_333, DueDate: due.AddDate(0, 1, 0), Status: InstallmentPending},
			{ID: 13, Position: 3, Amount: 333_333, DueDate: due.AddDate(0, 2, 0), Status: InstallmentPending},
		},
	}
}

func TestProgress(t *testing.T) {
	tests := []struct {
		name  string
		total float64
		paid  float64
		want  float64
	}{
		{"untouched", 1000, 0, 0},
		{"half", 1000, 500, 0.5},
		{"complete", 1000, 1000, 1},
		{"zero total must not divide", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Contract{TotalAmount: tt.total, PaidAmount: tt.paid}
			got := Progress(c)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 1.0)
		})
	}
}

func TestRemainingAndInvariants(t *testing.T) {
	c := Contract{TotalAmount: 1000, PaidAmount: 400}
	assert.Equal(t, 600.0, Remaining(c))
	assert.NoError(t, CheckInvariants(c))

	// violations are reported, never clamped
	broken := Contract{TotalAmount: 1000, PaidAmount: 1200}
	assert.Equal(t, -200.0, Remaining(broken))
	assert.ErrorIs(t, CheckInvariants(broken), ErrPaidExceedsTotal)
}

func TestRecordPaymentCoversFirstInstallment(t *testing.T) {
	c := millionContract()

	updated, err := RecordPayment(c, completed(333_334), testNow)
	require.NoError(t, err)

	assert.Equal(t, 333_334.0, updated.PaidAmount)
	assert.Equal(t, InstallmentPaid, updated.Installments[0].Status)
	require.NotNil(t, updated.Installments[0].PaidAt)

	pending := PendingInstallments(updated, testNow)
	require.Len(t, pending, 2)
	assert.Equal(t, uint(12), pending[0].ID)
	assert.Equal(t, uint(13), pending[1].ID)

	// input snapshot untouched
	assert.Equal(t, 0.0, c.PaidAmount)
	assert.Equal(t, InstallmentPending, c.Installments[0].Status)
}

func TestRecordPaymentCoversMultipleInstallments(t *testing.T) {
	c := millionContract()

	updated, err := RecordPayment(c, completed(666_667), testNow)
	require.NoError(t, err)

	assert.Equal(t, InstallmentPaid, updated.Installments[0].Status)
	assert.Equal(t, InstallmentPaid, updated.Installments[1].Status)
	assert.Equal(t, InstallmentPending, updated.Installments[2].Status)
	require.NotNil(t, updated.NextPaymentDate)
	assert.Equal(t, updated.Installments[2].DueDate, *updated.NextPaymentDate)
}

func TestRecordPaymentPartialAmountFlipsNothing(t *testing.T) {
	c := millionContract()

	// less than the first installment: money counted, no installment flipped
	updated, err := RecordPayment(c, completed(100_000), testNow)
	require.NoError(t, err)
	assert.Equal(t, 100_000.0, updated.PaidAmount)
	for _, i := range updated.Installments {
		assert.Equal(t, InstallmentPending, i.Status)
	}
}

func TestRecordPaymentOrderedByPositionThenID(t *testing.T) {
	due := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	c := Contract{
		TotalAmount: 300,
		Installments: []Installment{
			// stored order rules over due date; same position ties break on id
			{ID: 9, Position: 2, Amount: 100, DueDate: due, Status: InstallmentPending},
			{ID: 5, Position: 1, Amount: 100, DueDate: due.AddDate(0, 2, 0), Status: InstallmentPending},
			{ID: 3, Position: 2, Amount: 100, DueDate: due, Status: InstallmentPending},
		},
	}

	updated, err := RecordPayment(c, completed(200), testNow)
	require.NoError(t, err)

	byID := map[uint]string{}
	for _, i := range updated.Installments {
		byID[i.ID] = i.Status
	}
	assert.Equal(t, InstallmentPaid, byID[5])
	assert.Equal(t, InstallmentPaid, byID[3])
	assert.Equal(t, InstallmentPending, byID[9])
}

func TestRecordPaymentRejections(t *testing.T) {
	c := millionContract()

	_, err := RecordPayment(c, completed(0), testNow)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = RecordPayment(c, completed(1_000_001), testNow)
	assert.ErrorIs(t, err, ErrExceedsTotal)

	// rejected operations leave the snapshot unchanged
	assert.Equal(t, 0.0, c.PaidAmount)
}

func TestRecordPaymentPendingHasNoLedgerEffect(t *testing.T) {
	c := millionContract()

	updated, err := RecordPayment(c, payment.Payment{Amount: 333_334, Status: payment.StatusPending}, testNow)
	require.NoError(t, err)
	assert.Equal(t, 0.0, updated.PaidAmount)
	assert.Equal(t, InstallmentPending, updated.Installments[0].Status)
}

func TestOverdueIsDerivedNotStored(t *testing.T) {
	due := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	i := Installment{ID: 1, Position: 1, Amount: 100, DueDate: due, Status: InstallmentPending}

	assert.False(t, IsOverdue(i, due.Add(-time.Hour)))
	assert.True(t, IsOverdue(i, due.Add(time.Hour)))

	// stored status stays pending either way
	assert.Equal(t, InstallmentPending, i.Status)

	i.Status = InstallmentPaid
	assert.False(t, IsOverdue(i, due.Add(time.Hour)))
}

func TestPendingInstallmentsAnnotation(t *testing.T) {
	c := millionContract()
	// first installment due 2025-07-01; read it well past the due date
	late := time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC)

	pending := PendingInstallments(c, late)
	require.Len(t, pending, 3)
	assert.True(t, pending[0].Overdue)
	assert.Equal(t, InstallmentOverdue, pending[0].DerivedStatus)
	assert.True(t, pending[1].Overdue)
	assert.False(t, pending[2].Overdue)
	assert.Equal(t, InstallmentPending, pending[2].DerivedStatus)
}

func TestNextDue(t *testing.T) {
	c := millionContract()

	next, ok := NextDue(c, testNow)
	require.True(t, ok)
	assert.Equal(t, uint(11), next.ID)

	updated, err := RecordPayment(c, completed(1_000_000), testNow)
	require.NoError(t, err)
	_, ok = NextDue(updated, testNow)
	assert.False(t, ok)
	assert.Nil(t, updated.NextPaymentDate)
	assert.Equal(t, 1.0, Progress(updated))
}
