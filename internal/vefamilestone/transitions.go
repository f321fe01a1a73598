package vefamilestone

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrMissingFields rejects a draft without title or dates.
	ErrMissingFields = errors.New("milestone requires title, start date and end date")
	// ErrAlreadyPaid rejects a second payment of the same milestone.
	ErrAlreadyPaid = errors.New("milestone is already paid")
	// ErrInvalidStatus rejects an unknown construction status.
	ErrInvalidStatus = errors.New("invalid milestone status")
	// ErrInvalidCompletion rejects a completion percentage outside [0,100].
	ErrInvalidCompletion = errors.New("completion percentage must be between 0 and 100")
)

var validStatus = map[string]bool{
	StatusPlanned:    true,
	StatusInProgress: true,
	StatusCompleted:  true,
	StatusDelayed:    true,
}

// Draft carries the caller-supplied fields for a new milestone.
type Draft struct {
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Status        string     `json:"status"` // defaults to planned
	PaymentAmount float64    `json:"paymentAmount"`
	StartDate     *time.Time `json:"startDate"`
	EndDate       *time.Time `json:"endDate"`
}

// Patch carries the mutable fields of an existing milestone. Order and paid
// status are deliberately absent: the first is fixed at creation, the second
// only moves through Pay.
type Patch struct {
	Title                *string    `json:"title"`
	Description          *string    `json:"description"`
	Status               *string    `json:"status"`
	PaymentAmount        *float64   `json:"paymentAmount"`
	CompletionPercentage *float64   `json:"completionPercentage"`
	StartDate            *time.Time `json:"startDate"`
	EndDate              *time.Time `json:"endDate"`
}

// NewFromDraft validates a draft and builds the milestone at the given
// stored position. New milestones start unpaid with zero completion.
func NewFromDraft(d Draft, projectID uint, order int) (Milestone, error) {
	if d.Title == "" || d.StartDate == nil || d.EndDate == nil {
		return Milestone{}, ErrMissingFields
	}
	status := d.Status
	if status == "" {
		status = StatusPlanned
	}
	if !validStatus[status] {
		return Milestone{}, ErrInvalidStatus
	}

	return Milestone{
		ProjectID:            projectID,
		Title:                d.Title,
		Description:          d.Description,
		Status:               status,
		PaidStatus:           Unpaid,
		PaymentAmount:        d.PaymentAmount,
		Order:                order,
		CompletionPercentage: 0,
		StartDate:            *d.StartDate,
		EndDate:              *d.EndDate,
	}, nil
}

// Apply returns a copy of the milestone with the patch applied. The input is
// left untouched.
func Apply(m Milestone, p Patch) (Milestone, error) {
	if p.Title != nil {
		if *p.Title == "" {
			return m, ErrMissingFields
		}
		m.Title = *p.Title
	}
	if p.Description != nil {
		m.Description = *p.Description
	}
	if p.Status != nil {
		if !validStatus[*p.Status] {
			return m, ErrInvalidStatus
		}
		m.Status = *p.Status
	}
	if p.PaymentAmount != nil {
		m.PaymentAmount = *p.PaymentAmount
	}
	if p.CompletionPercentage != nil {
		if *p.CompletionPercentage < 0 || *p.CompletionPercentage > 100 {
			return m, ErrInvalidCompletion
		}
		m.CompletionPercentage = *p.CompletionPercentage
	}
	if p.StartDate != nil {
		m.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		m.EndDate = *p.EndDate
	}
	return m, nil
}

// Pay flips the milestone to paid, stamping the payment date and a synthetic
// receipt reference. Paying twice is an error, not a silent no-op, so budget
// figures cannot be double-counted.
func Pay(m Milestone, now time.Time) (Milestone, error) {
	if m.PaidStatus == Paid {
		return m, ErrAlreadyPaid
	}
	m.PaidStatus = Paid
	paidAt := now
	m.PaymentDate = &paidAt
	m.ReceiptReference = fmt.Sprintf("RCPT-%s", uuid.NewString())
	return m, nil
}
