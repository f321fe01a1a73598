package vefamilestone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func datePtr(t time.Time) *time.Time { return &t }

func validDraft() Draft {
	return Draft{
		Title:         "Foundations poured",
		Description:   "Slab and underground works",
		PaymentAmount: 500_000_000,
		StartDate:     datePtr(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)),
		EndDate:       datePtr(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)),
	}
}

func TestNewFromDraft(t *testing.T) {
	m, err := NewFromDraft(validDraft(), 4, 3)
	require.NoError(t, err)

	assert.Equal(t, uint(4), m.ProjectID)
	assert.Equal(t, 3, m.Order)
	assert.Equal(t, StatusPlanned, m.Status)
	assert.Equal(t, Unpaid, m.PaidStatus)
	assert.Equal(t, 0.0, m.CompletionPercentage)
	assert.Nil(t, m.PaymentDate)
	assert.Empty(t, m.ReceiptReference)
}

func TestNewFromDraftValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Draft)
		wantErr error
	}{
		{"missing title", func(d *Draft) { d.Title = "" }, ErrMissingFields},
		{"missing start date", func(d *Draft) { d.StartDate = nil }, ErrMissingFields},
		{"missing end date", func(d *Draft) { d.EndDate = nil }, ErrMissingFields},
		{"unknown status", func(d *Draft) { d.Status = "started" }, ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.mutate(&d)
			_, err := NewFromDraft(d, 1, 1)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestApplyPatch(t *testing.T) {
	m, err := NewFromDraft(validDraft(), 1, 1)
	require.NoError(t, err)

	title := "Structural work complete"
	status := StatusInProgress
	completion := 45.0

	patched, err := Apply(m, Patch{Title: &title, Status: &status, CompletionPercentage: &completion})
	require.NoError(t, err)
	assert.Equal(t, title, patched.Title)
	assert.Equal(t, StatusInProgress, patched.Status)
	assert.Equal(t, 45.0, patched.CompletionPercentage)

	// everything not patched is untouched
	assert.Equal(t, m.Description, patched.Description)
	assert.Equal(t, m.Order, patched.Order)
	assert.Equal(t, m.PaidStatus, patched.PaidStatus)
	assert.Equal(t, m.StartDate, patched.StartDate)

	// an empty patch is the identity
	same, err := Apply(m, Patch{})
	require.NoError(t, err)
	assert.Equal(t, m, same)
}

func TestApplyPatchValidation(t *testing.T) {
	m, err := NewFromDraft(validDraft(), 1, 1)
	require.NoError(t, err)

	empty := ""
	_, err = Apply(m, Patch{Title: &empty})
	assert.ErrorIs(t, err, ErrMissingFields)

	bogus := "done"
	_, err = Apply(m, Patch{Status: &bogus})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	over := 101.0
	_, err = Apply(m, Patch{CompletionPercentage: &over})
	assert.ErrorIs(t, err, ErrInvalidCompletion)

	negative := -1.0
	_, err = Apply(m, Patch{CompletionPercentage: &negative})
	assert.ErrorIs(t, err, ErrInvalidCompletion)
}

func TestPay(t *testing.T) {
	m, err := NewFromDraft(validDraft(), 1, 1)
	require.NoError(t, err)

	now := time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)
	paid, err := Pay(m, now)
	require.NoError(t, err)

	assert.Equal(t, Paid, paid.PaidStatus)
	require.NotNil(t, paid.PaymentDate)
	assert.Equal(t, now, *paid.PaymentDate)
	assert.Contains(t, paid.ReceiptReference, "RCPT-")

	// paying again is rejected, first result stands
	again, err := Pay(paid, now.Add(time.Hour))
	assert.ErrorIs(t, err, ErrAlreadyPaid)
	assert.Equal(t, paid.PaymentDate, again.PaymentDate)
	assert.Equal(t, paid.ReceiptReference, again.ReceiptReference)
}
