package vefamilestone

import (
	"time"

	"gorm.io/gorm"
)

// Construction status of a milestone, set by the administrator.
const (
	StatusPlanned    = "planned"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
	StatusDelayed    = "delayed"
)

// Payment status. The transition is one-way: unpaid -> paid, never reversed.
const (
	Unpaid = "unpaid"
	Paid   = "paid"
)

// Milestone is one ordered construction/payment stage of a VEFA project.
// Order is the 1-based stored position, unique within the project; removal
// of a sibling leaves gaps (no renumbering). PaymentDate and
// ReceiptReference are set exactly when the milestone is paid.
type Milestone struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	ProjectID uint `gorm:"not null;index" json:"projectId"`

	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Status      string `gorm:"size:20;not null;default:'planned'" json:"status"`

	PaidStatus       string     `gorm:"size:20;not null;default:'unpaid'" json:"paidStatus"`
	PaymentAmount    float64    `gorm:"not null;default:0" json:"paymentAmount"`
	PaymentDate      *time.Time `json:"paymentDate"`
	ReceiptReference string     `gorm:"size:64" json:"receiptReference"`

	Order                int       `gorm:"column:position;not null" json:"order"`
	CompletionPercentage float64   `gorm:"not null;default:0" json:"completionPercentage"`
	StartDate            time.Time `gorm:"not null" json:"startDate"`
	EndDate              time.Time `gorm:"not null" json:"endDate"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Milestone{})
}
