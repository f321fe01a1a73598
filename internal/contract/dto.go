package contract

import "time"

type InstallmentDraftDTO struct {
	Amount  float64   `json:"amount"`
	DueDate time.Time `json:"dueDate"`
}

type CreateContractDTO struct {
	PropertyID   uint                  `json:"propertyId"`
	AccountID    uint                  `json:"accountId"`
	TotalAmount  float64               `json:"totalAmount"`
	Status       string                `json:"status"` // defaults to "pending"
	Installments []InstallmentDraftDTO `json:"installments"`
}

type RecordPaymentDTO struct {
	Amount float64    `json:"amount"`
	Method string     `json:"method"`
	Status string     `json:"status"` // defaults to "completed"
	Date   *time.Time `json:"date"`   // defaults to now
}

// ProgressDTO is the formatting-free progress view consumed by dashboards.
type ProgressDTO struct {
	ContractID  uint    `json:"contractId"`
	TotalAmount float64 `json:"totalAmount"`
	PaidAmount  float64 `json:"paidAmount"`
	Progress    float64 `json:"progress"`
	Remaining   float64 `json:"remaining"`
}
