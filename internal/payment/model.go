package payment

import (
	"time"

	"gorm.io/gorm"
)

const (
	StatusCompleted = "completed"
	StatusPending   = "pending"
	StatusFailed    = "failed"
)

var validStatus = map[string]bool{
	StatusCompleted: true,
	StatusPending:   true,
	StatusFailed:    true,
}

func ValidStatus(s string) bool {
	return validStatus[s]
}

// Payment is an immutable record of money received against a contract.
// Once completed it is never mutated; corrections are new records.
type Payment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ContractID uint      `gorm:"not null;index" json:"contractId"`
	Amount     float64   `gorm:"not null" json:"amount"`
	Date       time.Time `gorm:"not null" json:"date"`
	Method     string    `gorm:"size:50" json:"method"`
	Status     string    `gorm:"size:20;not null;default:'pending';index" json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Payment{})
}
