package vefaproject

import (
	"errors"
	"time"

	"github.com/ImmoNova/api-portal/internal/vefamilestone"
)

var (
	// ErrMilestoneNotFound reports an unknown milestone id within the project.
	ErrMilestoneNotFound = errors.New("milestone not found in project")
	// ErrInvalidStatus rejects an unknown project status.
	ErrInvalidStatus = errors.New("invalid project status")
)

var validStatus = map[string]bool{
	StatusPlanning:          true,
	StatusUnderConstruction: true,
	StatusCompleted:         true,
	StatusSuspended:         true,
}

func ValidStatus(s string) bool {
	return validStatus[s]
}

func cloneMilestones(src []vefamilestone.Milestone) []vefamilestone.Milestone {
	dst := make([]vefamilestone.Milestone, len(src))
	copy(dst, src)
	return dst
}

// nextOrder returns max(order)+1. Removal leaves gaps, so the milestone
// count alone could collide with a surviving position.
func nextOrder(milestones []vefamilestone.Milestone) int {
	max := 0
	for _, m := range milestones {
		if m.Order > max {
			max = m.Order
		}
	}
	return max + 1
}

// AddMilestone validates the draft and appends the milestone at the next
// free position. The input snapshot is left untouched.
func AddMilestone(p Project, d vefamilestone.Draft) (Project, error) {
	m, err := vefamilestone.NewFromDraft(d, p.ID, nextOrder(p.Milestones))
	if err != nil {
		return p, err
	}
	p.Milestones = append(cloneMilestones(p.Milestones), m)
	return p, nil
}

// UpdateMilestone applies a patch to the identified milestone. Order and
// paid status are not reachable through this operation.
func UpdateMilestone(p Project, milestoneID uint, patch vefamilestone.Patch) (Project, error) {
	milestones := cloneMilestones(p.Milestones)
	for idx := range milestones {
		if milestones[idx].ID != milestoneID {
			continue
		}
		updated, err := vefamilestone.Apply(milestones[idx], patch)
		if err != nil {
			return p, err
		}
		milestones[idx] = updated
		p.Milestones = milestones
		return p, nil
	}
	return p, ErrMilestoneNotFound
}

// PayMilestone flips the identified milestone to paid. A second call for the
// same milestone fails and leaves the project unchanged. SpentBudget is NOT
// touched here: it stays administrator-maintained, matching the product's
// current behavior.
func PayMilestone(p Project, milestoneID uint, now time.Time) (Project, error) {
	milestones := cloneMilestones(p.Milestones)
	for idx := range milestones {
		if milestones[idx].ID != milestoneID {
			continue
		}
		paid, err := vefamilestone.Pay(milestones[idx], now)
		if err != nil {
			return p, err
		}
		milestones[idx] = paid
		p.Milestones = milestones
		return p, nil
	}
	return p, ErrMilestoneNotFound
}

// RemoveMilestone drops the identified milestone. Remaining positions are
// not renumbered; gaps are permitted.
func RemoveMilestone(p Project, milestoneID uint) (Project, error) {
	milestones := cloneMilestones(p.Milestones)
	for idx := range milestones {
		if milestones[idx].ID != milestoneID {
			continue
		}
		p.Milestones = append(milestones[:idx], milestones[idx+1:]...)
		return p, nil
	}
	return p, ErrMilestoneNotFound
}

// BudgetUtilization returns spent/total as a plain ratio, 0 for a zero
// budget. Values above 1 are possible; nothing caps SpentBudget.
func BudgetUtilization(p Project) float64 {
	if p.TotalBudget == 0 {
		return 0
	}
	return p.SpentBudget / p.TotalBudget
}

// BudgetExceeded reports the spent > total condition so callers can warn;
// the ledger itself never blocks it.
func (p Project) BudgetExceeded() bool {
	return p.SpentBudget > p.TotalBudget
}
