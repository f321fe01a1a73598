package vefaproject

import (
	"encoding/json"
	"errors"

	"github.com/ImmoNova/api-portal/internal/vefamilestone"
	"gorm.io/gorm"
)

// ErrVersionConflict signals that the snapshot being saved is stale.
var ErrVersionConflict = errors.New("project was modified concurrently")

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(p *Project) error {
	return r.DB.Create(p).Error
}

// FindByID loads the project with its milestones in stored order.
func (r *Repository) FindByID(id uint) (*Project, error) {
	var p Project
	err := r.DB.
		Preload("Milestones", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) ListAll() ([]Project, error) {
	var projects []Project
	err := r.DB.
		Preload("Milestones", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("id ASC").
		Find(&projects).Error
	return projects, err
}

// Save persists a mutated snapshot and reconciles its milestone set: rows
// missing from the snapshot are deleted, the rest upserted. Everything runs
// in one transaction guarded by the version the snapshot was loaded with.
func (r *Repository) Save(p *Project) error {
	// map updates bypass the field serializer, so tags are serialized here
	tagsJSON, err := json.Marshal(p.Tags)
	if err != nil {
		return err
	}
	return r.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&Project{}).
			Where("id = ? AND version = ?", p.ID, p.Version).
			Updates(map[string]interface{}{
				"name":              p.Name,
				"location":          p.Location,
				"status":            p.Status,
				"start_date":        p.StartDate,
				"expected_end_date": p.ExpectedEndDate,
				"total_budget":      p.TotalBudget,
				"spent_budget":      p.SpentBudget,
				"total_units":       p.TotalUnits,
				"tags":              string(tagsJSON),
				"version":           p.Version + 1,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrVersionConflict
		}

		keep := make([]uint, 0, len(p.Milestones))
		for _, m := range p.Milestones {
			if m.ID != 0 {
				keep = append(keep, m.ID)
			}
		}
		del := tx.Where("project_id = ?", p.ID)
		if len(keep) > 0 {
			del = del.Where("id NOT IN ?", keep)
		}
		if err := del.Delete(&vefamilestone.Milestone{}).Error; err != nil {
			return err
		}

		for idx := range p.Milestones {
			p.Milestones[idx].ProjectID = p.ID
			if err := tx.Save(&p.Milestones[idx]).Error; err != nil {
				return err
			}
		}

		p.Version++
		return nil
	})
}

// Delete removes a project by explicit administrative decision; milestones
// go with it via the cascade constraint.
func (r *Repository) Delete(id uint) error {
	res := r.DB.Select("Milestones").Delete(&Project{ID: id})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
