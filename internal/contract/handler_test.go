package contract

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/ImmoNova/api-portal/internal/payment"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newPaymentRouter(db *gorm.DB) *mux.Router {
	h := &Handler{DB: db, Repository: NewRepository(db), Payments: payment.NewRepository(db)}
	r := mux.NewRouter()
	r.HandleFunc("/contracts/{id}/payments", h.RecordPayment).Methods("POST")
	return r
}

func postPayment(t *testing.T, router *mux.Router, contractID uint, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost,
		"/contracts/"+strconv.Itoa(int(contractID))+"/payments",
		strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// An unknown payment status is refused before anything is persisted; a
// miscapitalized "Completed" would otherwise slip through as a non-completed
// payment with no ledger effect.
func TestRecordPaymentRejectsUnknownStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	created := seedContract(t, repo)
	router := newPaymentRouter(db)

	for _, status := range []string{"Completed", "settled", "FAILED"} {
		rec := postPayment(t, router, created.ID,
			`{"amount": 300, "method": "transfer", "status": "`+status+`"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "status %q", status)
	}

	payments, err := payment.NewRepository(db).ListByContractID(created.ID)
	require.NoError(t, err)
	assert.Empty(t, payments)

	reloaded, err := repo.FindByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, reloaded.PaidAmount)
}

func TestRecordPaymentAcceptsKnownStatuses(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	created := seedContract(t, repo)
	router := newPaymentRouter(db)

	// omitted status defaults to completed and moves the ledger
	rec := postPayment(t, router, created.ID, `{"amount": 300, "method": "transfer"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	reloaded, err := repo.FindByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, 300.0, reloaded.PaidAmount)

	// a pending payment is recorded without touching the ledger
	rec = postPayment(t, router, created.ID, `{"amount": 300, "status": "pending"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	reloaded, err = repo.FindByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, 300.0, reloaded.PaidAmount)

	payments, err := payment.NewRepository(db).ListByContractID(created.ID)
	require.NoError(t, err)
	require.Len(t, payments, 2)
}
