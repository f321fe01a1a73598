package account

import "gorm.io/gorm"

type Repository interface {
	Save(db *gorm.DB, a *Account) error
	FindByID(db *gorm.DB, id uint) (*Account, error)
	FindByEmail(db *gorm.DB, email string) (*Account, error)
	ListAll(db *gorm.DB) ([]Account, error)
	Update(db *gorm.DB, id uint, a *Account) error
	Delete(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Save(db *gorm.DB, a *Account) error {
	return db.Create(a).Error
}

func (r *repositoryImpl) FindByID(db *gorm.DB, id uint) (*Account, error) {
	var a Account
	if err := db.First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repositoryImpl) FindByEmail(db *gorm.DB, email string) (*Account, error) {
	var a Account
	if err := db.Where("email = ?", email).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repositoryImpl) ListAll(db *gorm.DB) ([]Account, error) {
	var accounts []Account
	err := db.Find(&accounts).Error
	return accounts, err
}

func (r *repositoryImpl) Update(db *gorm.DB, id uint, a *Account) error {
	a.ID = id
	return db.Model(&Account{}).Where("id = ?", id).Updates(map[string]interface{}{
		"first_name": a.FirstName,
		"last_name":  a.LastName,
		"phone":      a.Phone,
		"tier":       a.Tier,
		"is_staff":   a.IsStaff,
	}).Error
}

func (r *repositoryImpl) Delete(db *gorm.DB, id uint) error {
	res := db.Delete(&Account{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
