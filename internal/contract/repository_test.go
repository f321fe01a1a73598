package contract

import (
	"testing"
	"time"

	"github.com/ImmoNova/api-portal/internal/payment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	require.NoError(t, payment.Migrate(db))
	return db
}

func seedContract(t *testing.T, repo *Repository) *Contract {
	due := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	c := &Contract{
		PropertyID:  1,
		AccountID:   1,
		TotalAmount: 900,
		Status:      StatusActive,
		Installments: []Installment{
			{Position: 1, Amount: 300, DueDate: due, Status: InstallmentPending},
			{Position: 2, Amount: 300, DueDate: due.AddDate(0, 1, 0), Status: InstallmentPending},
			{Position: 3, Amount: 300, DueDate: due.AddDate(0, 2, 0), Status: InstallmentPending},
		},
	}
	require.NoError(t, repo.Create(c))
	return c
}

func TestRepositoryRoundTrip(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	created := seedContract(t, repo)

	loaded, err := repo.FindByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, 900.0, loaded.TotalAmount)
	require.Len(t, loaded.Installments, 3)
	assert.Equal(t, 1, loaded.Installments[0].Position)
	assert.Equal(t, 3, loaded.Installments[2].Position)
}

func TestApplyPaymentPersistsAtomically(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	created := seedContract(t, repo)

	loaded, err := repo.FindByID(created.ID)
	require.NoError(t, err)

	now := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	pay := payment.Payment{Amount: 300, Date: now, Method: "transfer", Status: payment.StatusCompleted}

	updated, err := RecordPayment(*loaded, pay, now)
	require.NoError(t, err)
	require.NoError(t, repo.ApplyPayment(&updated, &pay))

	reloaded, err := repo.FindByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, 300.0, reloaded.PaidAmount)
	assert.Equal(t, InstallmentPaid, reloaded.Installments[0].Status)
	assert.Equal(t, InstallmentPending, reloaded.Installments[1].Status)
	assert.Equal(t, 1, reloaded.Version)

	payments, err := payment.NewRepository(db).ListByContractID(created.ID)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, 300.0, payments[0].Amount)
}

func TestApplyPaymentRejectsStaleSnapshot(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	created := seedContract(t, repo)

	now := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)

	first, err := repo.FindByID(created.ID)
	require.NoError(t, err)
	second, err := repo.FindByID(created.ID)
	require.NoError(t, err)

	payA := payment.Payment{Amount: 300, Date: now, Status: payment.StatusCompleted}
	updatedA, err := RecordPayment(*first, payA, now)
	require.NoError(t, err)
	require.NoError(t, repo.ApplyPayment(&updatedA, &payA))

	// the second snapshot was loaded before the first write landed
	payB := payment.Payment{Amount: 300, Date: now, Status: payment.StatusCompleted}
	updatedB, err := RecordPayment(*second, payB, now)
	require.NoError(t, err)
	err = repo.ApplyPayment(&updatedB, &payB)
	assert.ErrorIs(t, err, ErrVersionConflict)

	// the losing write left nothing behind
	reloaded, err := repo.FindByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, 300.0, reloaded.PaidAmount)
	payments, err := payment.NewRepository(db).ListByContractID(created.ID)
	require.NoError(t, err)
	assert.Len(t, payments, 1)
}
