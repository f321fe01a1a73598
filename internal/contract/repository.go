package contract

import (
	"errors"

	"github.com/ImmoNova/api-portal/internal/payment"
	"gorm.io/gorm"
)

// ErrVersionConflict signals that the snapshot being saved is stale.
var ErrVersionConflict = errors.New("contract was modified concurrently")

type Repository struct {
	DB       *gorm.DB
	Payments *payment.Repository
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db, Payments: payment.NewRepository(db)}
}

func (r *Repository) Create(c *Contract) error {
	return r.DB.Create(c).Error
}

// FindByID loads the contract with its installments in stored order.
func (r *Repository) FindByID(id uint) (*Contract, error) {
	var c Contract
	err := r.DB.
		Preload("Installments", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, id ASC")
		}).
		First(&c, id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repository) ListAll() ([]Contract, error) {
	var contracts []Contract
	err := r.DB.Preload("Installments").Order("id ASC").Find(&contracts).Error
	return contracts, err
}

func (r *Repository) ListByAccountID(accountID uint) ([]Contract, error) {
	var contracts []Contract
	err := r.DB.
		Preload("Installments").
		Where("account_id = ?", accountID).
		Order("id ASC").
		Find(&contracts).Error
	return contracts, err
}

// ApplyPayment persists the outcome of RecordPayment atomically: the guarded
// contract row update, the flipped installments and the payment record all
// commit or roll back together.
func (r *Repository) ApplyPayment(updated *Contract, pay *payment.Payment) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&Contract{}).
			Where("id = ? AND version = ?", updated.ID, updated.Version).
			Updates(map[string]interface{}{
				"paid_amount":       updated.PaidAmount,
				"next_payment_date": updated.NextPaymentDate,
				"version":           updated.Version + 1,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrVersionConflict
		}

		for idx := range updated.Installments {
			inst := &updated.Installments[idx]
			if err := tx.Model(&Installment{}).
				Where("id = ?", inst.ID).
				Updates(map[string]interface{}{
					"status":  inst.Status,
					"paid_at": inst.PaidAt,
				}).Error; err != nil {
				return err
			}
		}

		pay.ContractID = updated.ID
		if err := r.Payments.Create(tx, pay); err != nil {
			return err
		}

		updated.Version++
		return nil
	})
}

// UpdateStatus supersedes a contract without deleting it; contracts are
// never removed, only re-statused.
func (r *Repository) UpdateStatus(id uint, status string) error {
	res := r.DB.Model(&Contract{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
