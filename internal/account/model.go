package account

import (
	"gorm.io/gorm"
)

// Account is an acquirer or staff user of the portal. The tier decides what
// the Access Gate lets the account see; staff accounts bypass the gate and
// reach the administrative routes.
type Account struct {
	gorm.Model
	FirstName         string `json:"firstName"`
	LastName          string `json:"lastName"`
	Email             string `json:"email" gorm:"unique"`
	Phone             string `json:"phone"`
	PasswordHash      string `json:"-"`
	Tier              string `gorm:"size:20;not null;default:'standard'" json:"tier"`
	IsStaff           bool   `gorm:"not null;default:false" json:"isStaff"`
	MustResetPassword bool   `json:"-"`
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Account{})
}
