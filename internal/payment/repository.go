package payment

import "gorm.io/gorm"

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// Create inserts a payment record. Pass a transaction handle to create it
// atomically with the contract mutation it belongs to; nil uses the default.
func (r *Repository) Create(db *gorm.DB, p *Payment) error {
	if db == nil {
		db = r.DB
	}
	return db.Create(p).Error
}

// ListByContractID returns the payment history of a contract, oldest first.
func (r *Repository) ListByContractID(contractID uint) ([]Payment, error) {
	var payments []Payment
	err := r.DB.
		Where("contract_id = ?", contractID).
		Order("date ASC, id ASC").
		Find(&payments).Error
	return payments, err
}
