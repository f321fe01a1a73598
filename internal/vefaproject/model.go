package vefaproject

import (
	"time"

	"github.com/ImmoNova/api-portal/internal/vefamilestone"
	"gorm.io/gorm"
)

const (
	StatusPlanning          = "planning"
	StatusUnderConstruction = "under-construction"
	StatusCompleted         = "completed"
	StatusSuspended         = "suspended"
)

// Project is an off-plan (VEFA) construction project sold before completion.
// Its milestones are the ordered payment stages; the budget columns are
// administrator-maintained and deliberately not derived from milestone
// payments (see BudgetExceeded).
type Project struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	Name     string `gorm:"size:255;not null" json:"name"`
	Location string `gorm:"size:255" json:"location"`
	Status   string `gorm:"size:30;not null;default:'planning';index" json:"status"`

	StartDate       time.Time `json:"startDate"`
	ExpectedEndDate time.Time `json:"expectedEndDate"`

	TotalBudget float64 `gorm:"not null;default:0" json:"totalBudget"`
	SpentBudget float64 `gorm:"not null;default:0" json:"spentBudget"`
	TotalUnits  int     `gorm:"not null;default:0" json:"totalUnits"`

	// multiple free-form tags in JSONB
	Tags []string `gorm:"type:jsonb;serializer:json" json:"tags"`

	Milestones []vefamilestone.Milestone `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"milestones"`

	// optimistic concurrency token, bumped on every save
	Version int `gorm:"not null;default:0" json:"version"`
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Project{})
}
