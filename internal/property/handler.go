package property

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/ImmoNova/api-portal/internal/auth"
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

// GET /properties
// Open to anonymous viewers; entries under an active VIP window are dropped
// for tiers below VIP.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	tier := auth.TierFromRequest(r)
	now := time.Now()

	all, err := h.Repository.ListAll()
	if err != nil {
		http.Error(w, "could not list properties", http.StatusInternalServerError)
		return
	}

	visible := make([]Property, 0, len(all))
	for _, p := range all {
		if CanView(p, tier, now) {
			visible = append(visible, p)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(visible)
}

// GET /properties/{id}
// A gated property answers 404 to keep its existence invisible below VIP.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	p, err := h.Repository.FindByID(uint(id))
	if err != nil {
		http.Error(w, "property not found", http.StatusNotFound)
		return
	}
	if !CanView(*p, auth.TierFromRequest(r), time.Now()) {
		http.Error(w, "property not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(p)
}

// POST /properties  (staff)
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in CreatePropertyDTO
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if in.Title == "" {
		http.Error(w, "title is required", http.StatusBadRequest)
		return
	}
	if in.Status == "" {
		in.Status = StatusNew
	}

	p := Property{
		Title:    in.Title,
		Location: in.Location,
		Price:    in.Price,
		Status:   in.Status,
	}
	if in.VIPOnly {
		p = GrantExclusivity(p, DefaultExclusivityDays, time.Now())
	}

	if err := h.Repository.Create(&p); err != nil {
		http.Error(w, "could not save property", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(p)
}

// PUT /properties/{id}  (staff)
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	p, err := h.Repository.FindByID(uint(id))
	if err != nil {
		http.Error(w, "property not found", http.StatusNotFound)
		return
	}

	var in UpdatePropertyDTO
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if in.Title != nil {
		p.Title = *in.Title
	}
	if in.Location != nil {
		p.Location = *in.Location
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Status != nil {
		p.Status = *in.Status
	}

	if err := h.Repository.Save(p); err != nil {
		if errors.Is(err, ErrVersionConflict) {
			http.Error(w, "property was modified concurrently", http.StatusConflict)
			return
		}
		http.Error(w, "could not update property", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(p)
}

// DELETE /properties/{id}  (staff)
// A property referenced by a live contract cannot be removed.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var refs int64
	if err := h.DB.Table("contracts").
		Where("property_id = ? AND deleted_at IS NULL", id).
		Count(&refs).Error; err != nil {
		http.Error(w, "could not check contracts", http.StatusInternalServerError)
		return
	}
	if refs > 0 {
		http.Error(w, "property is referenced by a live contract", http.StatusConflict)
		return
	}

	if err := h.Repository.Delete(uint(id)); err != nil {
		http.Error(w, "could not delete property", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /properties/{id}/exclusivity  (staff)
func (h *Handler) Grant(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var in GrantExclusivityDTO
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&in)
	}
	if in.DurationDays <= 0 {
		in.DurationDays = DefaultExclusivityDays
	}

	p, err := h.Repository.FindByID(uint(id))
	if err != nil {
		http.Error(w, "property not found", http.StatusNotFound)
		return
	}

	updated := GrantExclusivity(*p, in.DurationDays, time.Now())
	if err := h.Repository.Save(&updated); err != nil {
		if errors.Is(err, ErrVersionConflict) {
			http.Error(w, "property was modified concurrently", http.StatusConflict)
			return
		}
		http.Error(w, "could not grant exclusivity", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(updated)
}

// DELETE /properties/{id}/exclusivity  (staff)
func (h *Handler) Revoke(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	p, err := h.Repository.FindByID(uint(id))
	if err != nil {
		http.Error(w, "property not found", http.StatusNotFound)
		return
	}

	updated, err := RevokeExclusivity(*p)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Repository.Save(&updated); err != nil {
		if errors.Is(err, ErrVersionConflict) {
			http.Error(w, "property was modified concurrently", http.StatusConflict)
			return
		}
		http.Error(w, "could not revoke exclusivity", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(updated)
}
