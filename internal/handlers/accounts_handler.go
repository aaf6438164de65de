package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/gatormarket/backend/internal/models"
	"github.com/gatormarket/backend/internal/services"
)

type AccountsHandler struct {
	accounts services.AccountService
	log      *zap.Logger
}

func NewAccountsHandler(accounts services.AccountService, log *zap.Logger) *AccountsHandler {
	return &AccountsHandler{accounts: accounts, log: log}
}

func (h *AccountsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.AccountInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("invalid request body"))
		return
	}

	id, err := h.accounts.Create(r.Context(), req)
	if err != nil {
		if isInternal(err) {
			h.log.Error("create account", zap.Error(err))
		}
		writeServiceError(w, err, "failed to create account")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *AccountsHandler) Get(w http.ResponseWriter, r *http.Request) {
	account, err := h.accounts.Get(r.Context(), chi.URLParam(r, "accountID"))
	if err != nil {
		if isInternal(err) {
			h.log.Error("get account", zap.Error(err))
		}
		writeServiceError(w, err, "failed to get account")
		return
	}
	writeJSON(w, http.StatusOK, account.Sanitized())
}

func (h *AccountsHandler) GetByUsername(w http.ResponseWriter, r *http.Request) {
	account, err := h.accounts.GetByUsername(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		if isInternal(err) {
			h.log.Error("get account by username", zap.Error(err))
		}
		writeServiceError(w, err, "failed to get account")
		return
	}
	writeJSON(w, http.StatusOK, account.Sanitized())
}

func (h *AccountsHandler) List(w http.ResponseWriter, r *http.Request) {
	opts := services.ListAccountsOptions{
		Limit: queryInt(r, "limit", services.DefaultListingPageSize),
	}

	accounts, err := h.accounts.List(r.Context(), opts)
	if err != nil {
		h.log.Error("list accounts", zap.Error(err))
		writeServiceError(w, err, "failed to list accounts")
		return
	}

	out := make([]models.Account, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, a.Sanitized())
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *AccountsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch models.AccountPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("invalid request body"))
		return
	}

	ok, err := h.accounts.Update(r.Context(), chi.URLParam(r, "accountID"), patch)
	if err != nil {
		if isInternal(err) {
			h.log.Error("update account", zap.Error(err))
		}
		writeServiceError(w, err, "failed to update account")
		return
	}
	if !ok {
		writeJSON(w, http.StatusNotFound, models.NewErrorResponse("account not found"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "account updated"})
}

func (h *AccountsHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	ok, err := h.accounts.Deactivate(r.Context(), chi.URLParam(r, "accountID"))
	if err != nil {
		h.log.Error("deactivate account", zap.Error(err))
		writeServiceError(w, err, "failed to deactivate account")
		return
	}
	if !ok {
		writeJSON(w, http.StatusNotFound, models.NewErrorResponse("account not found"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "account deactivated"})
}

func (h *AccountsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ok, err := h.accounts.Delete(r.Context(), chi.URLParam(r, "accountID"))
	if err != nil {
		h.log.Error("delete account", zap.Error(err))
		writeServiceError(w, err, "failed to delete account")
		return
	}
	if !ok {
		writeJSON(w, http.StatusNotFound, models.NewErrorResponse("account not found"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "account deleted"})
}
