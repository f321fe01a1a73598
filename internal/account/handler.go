package account

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/ImmoNova/api-portal/internal/auth"
	"github.com/ImmoNova/api-portal/internal/utils"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type createAccountRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
	Tier      string `json:"tier"`
	IsStaff   bool   `json:"isStaff"`
}

type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Repository: NewRepository()}
}

// Login issues a JWT for valid credentials.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	user, err := h.Repository.FindByEmail(h.DB, req.Email)
	if err != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	tier := auth.ParseTier(user.Tier)
	if user.IsStaff {
		tier = auth.TierStaff
	}
	token, err := auth.GenerateAccessToken(user.ID, tier, user.IsStaff)
	if err != nil {
		http.Error(w, "could not generate token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"token": token})
}

// Create registers a new account (staff only route).
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if req.Email == "" {
		http.Error(w, "email is required", http.StatusBadRequest)
		return
	}

	password := req.Password
	mustReset := false
	if password == "" {
		tmp, err := utils.GenerateTempPassword()
		if err != nil {
			http.Error(w, "could not generate password", http.StatusInternalServerError)
			return
		}
		password = tmp
		mustReset = true
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		http.Error(w, "could not process password", http.StatusInternalServerError)
		return
	}

	a := Account{
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Email:             req.Email,
		Phone:             req.Phone,
		PasswordHash:      hash,
		Tier:              string(auth.ParseTier(req.Tier)),
		IsStaff:           req.IsStaff,
		MustResetPassword: mustReset,
	}
	if err := h.Repository.Save(h.DB, &a); err != nil {
		http.Error(w, "could not save account", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(a)
}

// List returns every account for staff, only the caller's own otherwise.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := auth.AccountIDFromContext(r.Context())
	isStaff, _ := r.Context().Value(auth.CtxIsStaff).(bool)

	if isStaff {
		accounts, err := h.Repository.ListAll(h.DB)
		if err != nil {
			http.Error(w, "could not list accounts", http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(accounts)
		return
	}

	obj, err := h.Repository.FindByID(h.DB, userID)
	if err != nil {
		http.Error(w, "account not found", http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode([]Account{*obj})
}

// Get returns one account; non-staff callers may only fetch themselves.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID := auth.AccountIDFromContext(r.Context())
	isStaff, _ := r.Context().Value(auth.CtxIsStaff).(bool)

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	if !isStaff && uint(id) != userID {
		http.Error(w, "access denied", http.StatusForbidden)
		return
	}

	obj, err := h.Repository.FindByID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "account not found", http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(obj)
}

// Update changes profile fields; tier and staff flag only change for staff callers.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID := auth.AccountIDFromContext(r.Context())
	isStaff, _ := r.Context().Value(auth.CtxIsStaff).(bool)

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	if !isStaff && uint(id) != userID {
		http.Error(w, "access denied", http.StatusForbidden)
		return
	}

	current, err := h.Repository.FindByID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "account not found", http.StatusNotFound)
		return
	}

	var data Account
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if !isStaff {
		data.Tier = current.Tier
		data.IsStaff = current.IsStaff
	} else {
		data.Tier = string(auth.ParseTier(data.Tier))
	}

	if err := h.Repository.Update(h.DB, uint(id), &data); err != nil {
		http.Error(w, "could not update account", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("account updated"))
}

// Delete removes an account (staff only route).
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	if err := h.Repository.Delete(h.DB, uint(id)); err != nil {
		http.Error(w, "could not delete account", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("account deleted"))
}

// Me returns the authenticated account.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID := auth.AccountIDFromContext(r.Context())

	var a Account
	if err := h.DB.First(&a, userID).Error; err != nil {
		http.Error(w, "account not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(a)
}
