package vefaproject

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/ImmoNova/api-portal/internal/vefamilestone"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type Handler struct {
	DB         *gorm.DB
	Repository *Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Repository: NewRepository(db)}
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request) (*Project, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return nil, false
	}
	p, err := h.Repository.FindByID(uint(id))
	if err != nil {
		http.Error(w, "project not found", http.StatusNotFound)
		return nil, false
	}
	return p, true
}

func (h *Handler) save(w http.ResponseWriter, p *Project) bool {
	if err := h.Repository.Save(p); err != nil {
		if errors.Is(err, ErrVersionConflict) {
			http.Error(w, "project was modified concurrently", http.StatusConflict)
			return false
		}
		http.Error(w, "could not save project", http.StatusInternalServerError)
		return false
	}
	if p.BudgetExceeded() {
		log.Printf("project %d spent budget exceeds total budget", p.ID)
	}
	return true
}

// POST /vefa-projects
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in CreateProjectDTO
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if in.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	if in.Status == "" {
		in.Status = StatusPlanning
	}
	if !ValidStatus(in.Status) {
		http.Error(w, ErrInvalidStatus.Error(), http.StatusBadRequest)
		return
	}

	p := Project{
		Name:            in.Name,
		Location:        in.Location,
		Status:          in.Status,
		StartDate:       in.StartDate,
		ExpectedEndDate: in.ExpectedEndDate,
		TotalBudget:     in.TotalBudget,
		TotalUnits:      in.TotalUnits,
		Tags:            in.Tags,
	}
	if err := h.Repository.Create(&p); err != nil {
		http.Error(w, "could not save project", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(p)
}

// GET /vefa-projects
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.Repository.ListAll()
	if err != nil {
		http.Error(w, "could not list projects", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(projects)
}

// GET /vefa-projects/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	p, ok := h.load(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(p)
}

// PUT /vefa-projects/{id}
// Project status is administrator-set; it is never derived from milestone
// completion.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	p, ok := h.load(w, r)
	if !ok {
		return
	}

	var in UpdateProjectDTO
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Location != nil {
		p.Location = *in.Location
	}
	if in.Status != nil {
		if !ValidStatus(*in.Status) {
			http.Error(w, ErrInvalidStatus.Error(), http.StatusBadRequest)
			return
		}
		p.Status = *in.Status
	}
	if in.StartDate != nil {
		p.StartDate = *in.StartDate
	}
	if in.ExpectedEndDate != nil {
		p.ExpectedEndDate = *in.ExpectedEndDate
	}
	if in.TotalBudget != nil {
		p.TotalBudget = *in.TotalBudget
	}
	if in.SpentBudget != nil {
		p.SpentBudget = *in.SpentBudget
	}
	if in.TotalUnits != nil {
		p.TotalUnits = *in.TotalUnits
	}
	if in.Tags != nil {
		p.Tags = in.Tags
	}

	if !h.save(w, p) {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(p)
}

// DELETE /vefa-projects/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	if err := h.Repository.Delete(uint(id)); err != nil {
		http.Error(w, "could not delete project", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /vefa-projects/{id}/budget
func (h *Handler) Budget(w http.ResponseWriter, r *http.Request) {
	p, ok := h.load(w, r)
	if !ok {
		return
	}
	dto := BudgetDTO{
		ProjectID:   p.ID,
		TotalBudget: p.TotalBudget,
		SpentBudget: p.SpentBudget,
		Utilization: BudgetUtilization(*p),
		Exceeded:    p.BudgetExceeded(),
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(dto)
}

// POST /vefa-projects/{id}/milestones
func (h *Handler) AddMilestone(w http.ResponseWriter, r *http.Request) {
	p, ok := h.load(w, r)
	if !ok {
		return
	}

	var draft vefamilestone.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	updated, err := AddMilestone(*p, draft)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !h.save(w, &updated) {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(updated)
}

func milestoneID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	mid, err := strconv.Atoi(mux.Vars(r)["mid"])
	if err != nil {
		http.Error(w, "invalid milestone id", http.StatusBadRequest)
		return 0, false
	}
	return uint(mid), true
}

// PUT /vefa-projects/{id}/milestones/{mid}
func (h *Handler) UpdateMilestone(w http.ResponseWriter, r *http.Request) {
	p, ok := h.load(w, r)
	if !ok {
		return
	}
	mid, ok := milestoneID(w, r)
	if !ok {
		return
	}

	var patch vefamilestone.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	updated, err := UpdateMilestone(*p, mid, patch)
	switch {
	case errors.Is(err, ErrMilestoneNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	case err != nil:
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !h.save(w, &updated) {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(updated)
}

// POST /vefa-projects/{id}/milestones/{mid}/pay
func (h *Handler) PayMilestone(w http.ResponseWriter, r *http.Request) {
	p, ok := h.load(w, r)
	if !ok {
		return
	}
	mid, ok := milestoneID(w, r)
	if !ok {
		return
	}

	updated, err := PayMilestone(*p, mid, time.Now())
	switch {
	case errors.Is(err, ErrMilestoneNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	case errors.Is(err, vefamilestone.ErrAlreadyPaid):
		http.Error(w, err.Error(), http.StatusConflict)
		return
	case err != nil:
		http.Error(w, "could not pay milestone", http.StatusInternalServerError)
		return
	}
	if !h.save(w, &updated) {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(updated)
}

// DELETE /vefa-projects/{id}/milestones/{mid}
func (h *Handler) RemoveMilestone(w http.ResponseWriter, r *http.Request) {
	p, ok := h.load(w, r)
	if !ok {
		return
	}
	mid, ok := milestoneID(w, r)
	if !ok {
		return
	}

	updated, err := RemoveMilestone(*p, mid)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if !h.save(w, &updated) {
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
