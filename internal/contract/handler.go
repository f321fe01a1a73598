package contract

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/ImmoNova/api-portal/internal/auth"
	"github.com/ImmoNova/api-portal/internal/notification"
	"github.com/ImmoNova/api-portal/internal/payment"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type Handler struct {
	DB         *gorm.DB
	Repository *Repository
	Payments   *payment.Repository
	WebhookURL string
}

func NewHandler(db *gorm.DB, webhookURL string) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(db),
		Payments:   payment.NewRepository(db),
		WebhookURL: webhookURL,
	}
}

// loadOwned fetches a contract and enforces that non-staff callers only see
// their own.
func (h *Handler) loadOwned(w http.ResponseWriter, r *http.Request) (*Contract, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return nil, false
	}
	c, err := h.Repository.FindByID(uint(id))
	if err != nil {
		http.Error(w, "contract not found", http.StatusNotFound)
		return nil, false
	}
	isStaff, _ := r.Context().Value(auth.CtxIsStaff).(bool)
	if !isStaff && c.AccountID != auth.AccountIDFromContext(r.Context()) {
		http.Error(w, "access denied", http.StatusForbidden)
		return nil, false
	}
	return c, true
}

// POST /contracts  (staff)
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in CreateContractDTO
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if in.PropertyID == 0 || in.AccountID == 0 {
		http.Error(w, "propertyId and accountId are required", http.StatusBadRequest)
		return
	}
	if in.TotalAmount <= 0 {
		http.Error(w, "totalAmount must be positive", http.StatusBadRequest)
		return
	}
	for _, d := range in.Installments {
		if d.Amount <= 0 {
			http.Error(w, "installment amounts must be positive", http.StatusBadRequest)
			return
		}
	}
	if in.Status == "" {
		in.Status = StatusPending
	}

	c := Contract{
		PropertyID:  in.PropertyID,
		AccountID:   in.AccountID,
		TotalAmount: in.TotalAmount,
		Status:      in.Status,
	}
	for i, d := range in.Installments {
		c.Installments = append(c.Installments, Installment{
			Position: i + 1,
			Amount:   d.Amount,
			DueDate:  d.DueDate,
			Status:   InstallmentPending,
		})
	}
	if next, ok := NextDue(c, time.Now()); ok {
		due := next.DueDate
		c.NextPaymentDate = &due
	}

	if err := h.Repository.Create(&c); err != nil {
		http.Error(w, "could not save contract", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(c)
}

// GET /contracts  (staff sees all, acquirers their own)
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	isStaff, _ := r.Context().Value(auth.CtxIsStaff).(bool)

	var (
		contracts []Contract
		err       error
	)
	if isStaff {
		contracts, err = h.Repository.ListAll()
	} else {
		contracts, err = h.Repository.ListByAccountID(auth.AccountIDFromContext(r.Context()))
	}
	if err != nil {
		http.Error(w, "could not list contracts", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(contracts)
}

// GET /contracts/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	c, ok := h.loadOwned(w, r)
	if !ok {
		return
	}
	if err := CheckInvariants(*c); err != nil {
		log.Printf("contract %d invariant violation: %v", c.ID, err)
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(c)
}

// GET /contracts/{id}/progress
func (h *Handler) Progress(w http.ResponseWriter, r *http.Request) {
	c, ok := h.loadOwned(w, r)
	if !ok {
		return
	}
	if err := CheckInvariants(*c); err != nil {
		log.Printf("contract %d invariant violation: %v", c.ID, err)
	}

	dto := ProgressDTO{
		ContractID:  c.ID,
		TotalAmount: c.TotalAmount,
		PaidAmount:  c.PaidAmount,
		Progress:    Progress(*c),
		Remaining:   Remaining(*c),
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(dto)
}

// GET /contracts/{id}/installments?pending=1
func (h *Handler) Installments(w http.ResponseWriter, r *http.Request) {
	c, ok := h.loadOwned(w, r)
	if !ok {
		return
	}
	now := time.Now()

	if r.URL.Query().Get("pending") != "" {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(PendingInstallments(*c, now))
		return
	}

	// full list, annotated the same way
	views := make([]InstallmentView, 0, len(c.Installments))
	for _, i := range c.Installments {
		v := InstallmentView{Installment: i, DerivedStatus: i.Status}
		if IsOverdue(i, now) {
			v.Overdue = true
			v.DerivedStatus = InstallmentOverdue
		}
		views = append(views, v)
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(views)
}

// GET /contracts/{id}/next-due
func (h *Handler) NextDue(w http.ResponseWriter, r *http.Request) {
	c, ok := h.loadOwned(w, r)
	if !ok {
		return
	}
	next, found := NextDue(*c, time.Now())
	if !found {
		http.Error(w, "no pending installments", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(next)
}

// POST /contracts/{id}/payments  (staff)
func (h *Handler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	c, err := h.Repository.FindByID(uint(id))
	if err != nil {
		http.Error(w, "contract not found", http.StatusNotFound)
		return
	}

	var in RecordPaymentDTO
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if in.Status == "" {
		in.Status = payment.StatusCompleted
	}
	if !payment.ValidStatus(in.Status) {
		http.Error(w, "status must be 'completed', 'pending' or 'failed'", http.StatusBadRequest)
		return
	}
	now := time.Now()
	date := now
	if in.Date != nil {
		date = *in.Date
	}

	pay := payment.Payment{
		ContractID: c.ID,
		Amount:     in.Amount,
		Date:       date,
		Method:     in.Method,
		Status:     in.Status,
	}

	updated, err := RecordPayment(*c, pay, now)
	switch {
	case errors.Is(err, ErrInvalidAmount):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, ErrExceedsTotal):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	case err != nil:
		http.Error(w, "could not record payment", http.StatusInternalServerError)
		return
	}

	if err := h.Repository.ApplyPayment(&updated, &pay); err != nil {
		if errors.Is(err, ErrVersionConflict) {
			http.Error(w, "contract was modified concurrently", http.StatusConflict)
			return
		}
		http.Error(w, "could not record payment", http.StatusInternalServerError)
		return
	}

	overdueCount := 0
	for _, v := range PendingInstallments(updated, now) {
		if v.Overdue {
			overdueCount++
		}
	}
	if overdueCount > 0 {
		go notification.SendOverdueAlert(h.WebhookURL, updated.ID, overdueCount)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(updated)
}

// GET /contracts/{id}/payments
func (h *Handler) ListPayments(w http.ResponseWriter, r *http.Request) {
	c, ok := h.loadOwned(w, r)
	if !ok {
		return
	}
	payments, err := h.Payments.ListByContractID(c.ID)
	if err != nil {
		http.Error(w, "could not list payments", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payments)
}

// PATCH /contracts/{id}/status  (staff)
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if payload.Status != StatusActive && payload.Status != StatusPending {
		http.Error(w, "status must be 'active' or 'pending'", http.StatusBadRequest)
		return
	}

	if err := h.Repository.UpdateStatus(uint(id), payload.Status); err != nil {
		http.Error(w, "could not update contract status", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("contract status updated"))
}
