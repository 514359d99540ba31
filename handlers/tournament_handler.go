package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/chessfed/chess-rating-system/middleware"
	"github.com/chessfed/chess-rating-system/models"
	"github.com/chessfed/chess-rating-system/repositories"
	"github.com/chessfed/chess-rating-system/services"
	"github.com/go-chi/chi/v5"
)

var (
	errNoResults    = errors.New("results must not be empty")
	errInvalidRound = errors.New("round must be a positive integer")
)

type TournamentHandler struct {
	tournamentService services.TournamentService
	reportService     services.ReportService
	pairingService    services.PairingService
}

func NewTournamentHandler(
	tournamentService services.TournamentService,
	reportService services.ReportService,
	pairingService services.PairingService,
) *TournamentHandler {
	return &TournamentHandler{
		tournamentService: tournamentService,
		reportService:     reportService,
		pairingService:    pairingService,
	}
}

func (h *TournamentHandler) Create(w http.ResponseWriter, r *http.Request) {
	organizerID, err := middleware.PlayerIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	var input services.CreateTournamentInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.Create(r.Context(), organizerID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"tournament": tournament}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TournamentHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := repositories.ListTournamentsFilter{}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := models.TournamentStatus(raw)
		filter.Status = &status
	}
	if raw := r.URL.Query().Get("category"); raw != "" {
		category := models.TournamentCategory(raw)
		filter.Category = &category
	}
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && limit > 0 {
		filter.Limit = limit
	}
	if offset, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && offset > 0 {
		filter.Offset = offset
	}

	tournaments, err := h.tournamentService.List(r.Context(), filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournaments": tournaments}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TournamentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := tournamentID(w, r)
	if !ok {
		return
	}

	tournament, err := h.tournamentService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournament": tournament}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ChangeStatus handles the explicit lifecycle actions: approve, reject,
// start, complete. The processed state is owned by report generation.
func (h *TournamentHandler) ChangeStatus(to models.TournamentStatus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := tournamentID(w, r)
		if !ok {
			return
		}

		tournament, err := h.tournamentService.ChangeStatus(r.Context(), id, to)
		if err != nil {
			mapServiceErrorToHTTP(w, r, err)
			return
		}
		if err := writeJSON(w, http.StatusOK, jsonResponse{"tournament": tournament}, nil); err != nil {
			serverErrorResponse(w, r, err)
		}
	}
}

func (h *TournamentHandler) Register(w http.ResponseWriter, r *http.Request) {
	id, ok := tournamentID(w, r)
	if !ok {
		return
	}
	playerID, err := middleware.PlayerIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	participant, err := h.tournamentService.RegisterParticipant(r.Context(), id, playerID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"participant": participant}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TournamentHandler) RecordResults(w http.ResponseWriter, r *http.Request) {
	id, ok := tournamentID(w, r)
	if !ok {
		return
	}

	var input struct {
		Results []*models.TournamentResult `json:"results"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if len(input.Results) == 0 {
		badRequestResponse(w, r, errNoResults)
		return
	}

	if err := h.tournamentService.RecordResults(r.Context(), id, input.Results); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"recorded": len(input.Results)}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TournamentHandler) Pairings(w http.ResponseWriter, r *http.Request) {
	id, ok := tournamentID(w, r)
	if !ok {
		return
	}
	round := 0
	if raw := r.URL.Query().Get("round"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			badRequestResponse(w, r, errInvalidRound)
			return
		}
		round = parsed
	}

	pairings, err := h.pairingService.PairingsForTournament(r.Context(), id, round)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"pairings": pairings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GenerateReport applies the tournament's results to player ratings.
// ?source=precomputed uses the deltas stored with the results instead
// of recomputing them head-to-head.
func (h *TournamentHandler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	id, ok := tournamentID(w, r)
	if !ok {
		return
	}

	var (
		summary *services.ReportSummary
		err     error
	)
	if r.URL.Query().Get("source") == "precomputed" {
		summary, err = h.reportService.GenerateReportPrecomputed(r.Context(), id)
	} else {
		summary, err = h.reportService.GenerateReport(r.Context(), id)
	}
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"report": summary}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func tournamentID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		notFoundResponse(w, r)
		return 0, false
	}
	return id, true
}
