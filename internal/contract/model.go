package contract

import (
	"time"

	"gorm.io/gorm"
)

const (
	StatusActive  = "active"
	StatusPending = "pending"
)

// Stored installment statuses. "overdue" is never stored; it is derived at
// read time from the due date and the caller-supplied clock.
const (
	InstallmentPaid    = "paid"
	InstallmentPending = "pending"
	InstallmentOverdue = "overdue"
)

// Contract binds one acquirer to one property and tracks how much of the
// price has been paid. PaidAmount moves only through RecordPayment, which is
// the single path that also flips installment statuses.
type Contract struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	PropertyID uint `gorm:"not null;index" json:"propertyId"`
	AccountID  uint `gorm:"not null;index" json:"accountId"`

	TotalAmount     float64    `gorm:"not null;default:0" json:"totalAmount"`
	PaidAmount      float64    `gorm:"not null;default:0" json:"paidAmount"`
	NextPaymentDate *time.Time `json:"nextPaymentDate"`
	Status          string     `gorm:"size:20;not null;default:'pending';index" json:"status"`

	Installments []Installment `gorm:"foreignKey:ContractID;constraint:OnDelete:CASCADE" json:"installments"`

	// optimistic concurrency token, bumped on every save
	Version int `gorm:"not null;default:0" json:"version"`
}

// Installment is one scheduled obligation within a contract. Position is the
// stored order; it rules over the due date when the two diverge.
type Installment struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	ContractID uint       `gorm:"not null;index" json:"contractId"`
	Position   int        `gorm:"not null" json:"position"`
	Amount     float64    `gorm:"not null" json:"amount"`
	DueDate    time.Time  `gorm:"not null" json:"dueDate"`
	Status     string     `gorm:"size:20;not null;default:'pending'" json:"status"`
	PaidAt     *time.Time `json:"paidAt"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Contract{}, &Installment{})
}
