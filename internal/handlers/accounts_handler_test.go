package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gatormarket/backend/internal/models"
	"github.com/gatormarket/backend/internal/services"
)

func newAccountsRouter(svc services.AccountService) *chi.Mux {
	h := NewAccountsHandler(svc, zap.NewNop())
	r := chi.NewRouter()
	r.Get("/accounts", h.List)
	r.Get("/accounts/by-username/{username}", h.GetByUsername)
	r.Get("/accounts/{accountID}", h.Get)
	r.Post("/accounts/{accountID}/deactivate", h.Deactivate)
	return r
}

func TestAccountsGetStripsPassword(t *testing.T) {
	svc := new(mockAccountService)
	svc.On("Get", mock.Anything, "a1").Return(activeAccount(), nil)

	req := httptest.NewRequest(http.MethodGet, "/accounts/a1", nil)
	rec := httptest.NewRecorder()
	newAccountsRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password123")

	var got models.Account
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "alice", got.Username)
	assert.Empty(t, got.Password)
}

func TestAccountsGetByUsername(t *testing.T) {
	svc := new(mockAccountService)
	svc.On("GetByUsername", mock.Anything, "alice").Return(activeAccount(), nil)

	req := httptest.NewRequest(http.MethodGet, "/accounts/by-username/alice", nil)
	rec := httptest.NewRecorder()
	newAccountsRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password123")
}

func TestAccountsListStripsPasswords(t *testing.T) {
	svc := new(mockAccountService)
	svc.On("List", mock.Anything, services.ListAccountsOptions{
		Limit: services.DefaultListingPageSize,
	}).Return([]models.Account{*activeAccount()}, nil)

	req := httptest.NewRequest(http.MethodGet, "/accounts", nil)
	rec := httptest.NewRecorder()
	newAccountsRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password123")

	var got []models.Account
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Empty(t, got[0].Password)
}

func TestAccountsDeactivateNotFound(t *testing.T) {
	svc := new(mockAccountService)
	svc.On("Deactivate", mock.Anything, "missing").Return(false, nil)

	req := httptest.NewRequest(http.MethodPost, "/accounts/missing/deactivate", nil)
	rec := httptest.NewRecorder()
	newAccountsRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
