package vefaproject

import "time"

type CreateProjectDTO struct {
	Name            string    `json:"name"`
	Location        string    `json:"location"`
	Status          string    `json:"status"` // defaults to "planning"
	StartDate       time.Time `json:"startDate"`
	ExpectedEndDate time.Time `json:"expectedEndDate"`
	TotalBudget     float64   `json:"totalBudget"`
	TotalUnits      int       `json:"totalUnits"`
	Tags            []string  `json:"tags"`
}

type UpdateProjectDTO struct {
	Name            *string    `json:"name"`
	Location        *string    `json:"location"`
	Status          *string    `json:"status"`
	StartDate       *time.Time `json:"startDate"`
	ExpectedEndDate *time.Time `json:"expectedEndDate"`
	TotalBudget     *float64   `json:"totalBudget"`
	SpentBudget     *float64   `json:"spentBudget"`
	TotalUnits      *int       `json:"totalUnits"`
	Tags            []string   `json:"tags"`
}

// BudgetDTO is the formatting-free budget view for admin tooling.
type BudgetDTO struct {
	ProjectID   uint    `json:"projectId"`
	TotalBudget float64 `json:"totalBudget"`
	SpentBudget float64 `json:"spentBudget"`
	Utilization float64 `json:"utilization"`
	Exceeded    bool    `json:"exceeded"`
}
