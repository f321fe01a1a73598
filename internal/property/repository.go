package property

import (
	"errors"

	"gorm.io/gorm"
)

// ErrVersionConflict signals that the snapshot being saved is stale.
var ErrVersionConflict = errors.New("property was modified concurrently")

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(p *Property) error {
	return r.DB.Create(p).Error
}

func (r *Repository) FindByID(id uint) (*Property, error) {
	var p Property
	if err := r.DB.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) ListAll() ([]Property, error) {
	var properties []Property
	err := r.DB.Order("id ASC").Find(&properties).Error
	return properties, err
}

// Save persists a mutated snapshot, guarded by the version it was loaded
// with. A zero-row update means someone else saved first.
func (r *Repository) Save(p *Property) error {
	res := r.DB.Model(&Property{}).
		Where("id = ? AND version = ?", p.ID, p.Version).
		Updates(map[string]interface{}{
			"title":               p.Title,
			"location":            p.Location,
			"price":               p.Price,
			"status":              p.Status,
			"vip_only":            p.VIPOnly,
			"vip_exclusivity_end": p.VIPExclusivityEnd,
			"version":             p.Version + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrVersionConflict
	}
	p.Version++
	return nil
}

func (r *Repository) Delete(id uint) error {
	res := r.DB.Delete(&Property{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
