package handlers

import (
	"errors"
	"net/http"

	"github.com/chessfed/chess-rating-system/services"
)

const maxImportSize = 10 << 20 // 10MB

type AdminHandler struct {
	bulkService services.BulkService
}

func NewAdminHandler(bulkService services.BulkService) *AdminHandler {
	return &AdminHandler{bulkService: bulkService}
}

// BulkAdjust runs the one-shot +100 bonus over every player on the
// server. All writes commit in a single transaction.
func (h *AdminHandler) BulkAdjust(w http.ResponseWriter, r *http.Request) {
	summary, err := h.bulkService.ApplyBonusToAll(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"summary": summary}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ImportRatings seeds player accounts from an uploaded CSV snapshot.
// Multipart field name: "ratings".
func (h *AdminHandler) ImportRatings(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	file, _, err := r.FormFile("ratings")
	if err != nil {
		badRequestResponse(w, r, errors.New("multipart field \"ratings\" with a CSV file is required"))
		return
	}
	defer file.Close()

	summary, err := h.bulkService.ImportRatingsCSV(r.Context(), file)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"summary": summary}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
