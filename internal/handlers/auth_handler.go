package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/gatormarket/backend/internal/models"
	"github.com/gatormarket/backend/internal/services"
)

type AuthHandler struct {
	accounts      services.AccountService
	jwtSecret     string
	jwtExpiration time.Duration
	log           *zap.Logger
}

func NewAuthHandler(accounts services.AccountService, jwtSecret string, jwtExpiration time.Duration, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		accounts:      accounts,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
		log:           log,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.AccountInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("invalid request body"))
		return
	}

	id, err := h.accounts.Create(r.Context(), req)
	if err != nil {
		if isInternal(err) {
			h.log.Error("register", zap.Error(err))
		}
		writeServiceError(w, err, "failed to register")
		return
	}

	account, err := h.accounts.Get(r.Context(), id)
	if err != nil {
		h.log.Error("register: load created account", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("failed to register"))
		return
	}

	token, err := h.issueToken(account)
	if err != nil {
		h.log.Error("register: sign token", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("failed to register"))
		return
	}
	writeJSON(w, http.StatusCreated, models.AuthResponse{Token: token, User: account.Sanitized()})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("invalid request body"))
		return
	}

	account, err := h.accounts.GetByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, services.ErrAccountNotFound) {
			writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("invalid username or password"))
			return
		}
		h.log.Error("login", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("failed to log in"))
		return
	}

	// Plaintext comparison against the stored password: parity with the
	// legacy accounts data. Not suitable for production use.
	if account.Password != req.Password {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("invalid username or password"))
		return
	}
	if !account.IsActive {
		writeJSON(w, http.StatusForbidden, models.NewErrorResponse("account is deactivated"))
		return
	}

	token, err := h.issueToken(account)
	if err != nil {
		h.log.Error("login: sign token", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("failed to log in"))
		return
	}
	writeJSON(w, http.StatusOK, models.AuthResponse{Token: token, User: account.Sanitized()})
}

func (h *AuthHandler) issueToken(account *models.Account) (string, error) {
	claims := jwt.MapClaims{
		"sub":      account.ID,
		"username": account.Username,
		"exp":      time.Now().Add(h.jwtExpiration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtSecret))
}
