package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/gatormarket/backend/internal/models"
	"github.com/gatormarket/backend/internal/services"
)

type ListingsHandler struct {
	listings services.ListingService
	log      *zap.Logger
}

func NewListingsHandler(listings services.ListingService, log *zap.Logger) *ListingsHandler {
	return &ListingsHandler{listings: listings, log: log}
}

func (h *ListingsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.ListingInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("invalid request body"))
		return
	}

	id, err := h.listings.Create(r.Context(), req)
	if err != nil {
		if isInternal(err) {
			h.log.Error("create listing", zap.Error(err))
		}
		writeServiceError(w, err, "failed to create listing")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *ListingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	listing, err := h.listings.Get(r.Context(), chi.URLParam(r, "listingID"))
	if err != nil {
		if isInternal(err) {
			h.log.Error("get listing", zap.Error(err))
		}
		writeServiceError(w, err, "failed to get listing")
		return
	}
	writeJSON(w, http.StatusOK, listing)
}

func (h *ListingsHandler) List(w http.ResponseWriter, r *http.Request) {
	opts := services.ListListingsOptions{
		Type:        r.URL.Query().Get("type"),
		User:        r.URL.Query().Get("user"),
		IncludeSold: queryBool(r, "include_sold", true),
		Limit:       queryInt(r, "limit", services.DefaultListingPageSize),
	}

	listings, err := h.listings.List(r.Context(), opts)
	if err != nil {
		if isInternal(err) {
			h.log.Error("list listings", zap.Error(err))
		}
		writeServiceError(w, err, "failed to list listings")
		return
	}
	writeJSON(w, http.StatusOK, listings)
}

// Featured is the landing-page query: unsold items, newest first.
func (h *ListingsHandler) Featured(w http.ResponseWriter, r *http.Request) {
	opts := services.ListListingsOptions{
		Type:        models.TypeItem,
		IncludeSold: false,
		Limit:       queryInt(r, "limit", 10),
	}

	listings, err := h.listings.List(r.Context(), opts)
	if err != nil {
		h.log.Error("featured listings", zap.Error(err))
		writeServiceError(w, err, "failed to list featured listings")
		return
	}
	writeJSON(w, http.StatusOK, listings)
}

func (h *ListingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch models.ListingPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("invalid request body"))
		return
	}

	ok, err := h.listings.Update(r.Context(), chi.URLParam(r, "listingID"), patch)
	if err != nil {
		if isInternal(err) {
			h.log.Error("update listing", zap.Error(err))
		}
		writeServiceError(w, err, "failed to update listing")
		return
	}
	if !ok {
		writeJSON(w, http.StatusNotFound, models.NewErrorResponse("listing not found"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "listing updated"})
}

func (h *ListingsHandler) MarkSold(w http.ResponseWriter, r *http.Request) {
	ok, err := h.listings.MarkSold(r.Context(), chi.URLParam(r, "listingID"))
	if err != nil {
		h.log.Error("mark listing sold", zap.Error(err))
		writeServiceError(w, err, "failed to mark listing sold")
		return
	}
	if !ok {
		writeJSON(w, http.StatusNotFound, models.NewErrorResponse("listing not found"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "listing marked sold"})
}

func (h *ListingsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ok, err := h.listings.Delete(r.Context(), chi.URLParam(r, "listingID"))
	if err != nil {
		h.log.Error("delete listing", zap.Error(err))
		writeServiceError(w, err, "failed to delete listing")
		return
	}
	if !ok {
		writeJSON(w, http.StatusNotFound, models.NewErrorResponse("listing not found"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "listing deleted"})
}
