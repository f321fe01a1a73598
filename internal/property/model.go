package property

import (
	"time"

	"gorm.io/gorm"
)

// Catalog status of a property.
const (
	StatusAvailable = "available"
	StatusReserved  = "reserved"
	StatusSold      = "sold"
	StatusNew       = "new"
)

// DefaultExclusivityDays is the VIP window armed when a property is listed
// with exclusivity (current commercial policy: one month).
const DefaultExclusivityDays = 30

// Property is a sellable unit of the catalog. VIPOnly is only meaningful
// while VIPExclusivityEnd is set; the window is active iff VIPOnly and the
// current time is before VIPExclusivityEnd.
type Property struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	Title    string  `gorm:"size:255;not null" json:"title"`
	Location string  `gorm:"size:255" json:"location"`
	Price    float64 `gorm:"not null;default:0" json:"price"`
	Status   string  `gorm:"size:50;not null;default:'available';index" json:"status"`

	VIPOnly           bool       `gorm:"not null;default:false" json:"vipOnly"`
	VIPExclusivityEnd *time.Time `json:"vipExclusivityEnd"`

	// optimistic concurrency token, bumped on every save
	Version int `gorm:"not null;default:0" json:"version"`
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Property{})
}
