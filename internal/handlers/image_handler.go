package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/gatormarket/backend/internal/models"
	"github.com/gatormarket/backend/internal/services"
)

type ImageHandler struct {
	images         *services.ImageStorage
	maxUploadBytes int64
	log            *zap.Logger
}

func NewImageHandler(images *services.ImageStorage, maxUploadBytes int64, log *zap.Logger) *ImageHandler {
	return &ImageHandler{images: images, maxUploadBytes: maxUploadBytes, log: log}
}

// Upload accepts a multipart form with a "file" part and returns the stored
// object key plus its public URL. The key is what the client sends back as
// a listing's imagekey.
func (h *ImageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if h.images == nil {
		writeJSON(w, http.StatusServiceUnavailable, models.NewErrorResponse("image storage unavailable"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("file too large or malformed form"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("file is required"))
		return
	}
	defer file.Close()

	resp, err := h.images.Upload(r.Context(), header.Filename, header.Header.Get("Content-Type"), header.Size, file)
	if err != nil {
		h.log.Error("upload image", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("failed to upload image"))
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}
