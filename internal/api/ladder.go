package api

import (
	"net/http"

	"github.com/footycoach/matchsim/internal/ladder"
	"github.com/footycoach/matchsim/internal/repository"
)

// LadderHandler serves ladder computation and lookups.
type LadderHandler struct {
	results *repository.MatchResultRepository
	ladders *repository.LadderRepository
}

// NewLadderHandler constructs a handler.
func NewLadderHandler(results *repository.MatchResultRepository, ladders *repository.LadderRepository) *LadderHandler {
	return &LadderHandler{results: results, ladders: ladders}
}

// RegisterRoutes implements Registrar.
func (h *LadderHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/ladder/{season}/rebuild", h.Rebuild)
	mux.HandleFunc("GET /v1/ladder/{season}", h.Get)
}

// Rebuild recomputes a season's ladder from every stored match result and
// persists the snapshot.
//
// @Summary      Rebuild a season's ladder
// @Tags         ladder
// @Produce      json
// @Param        season  path      int  true  "season year"
// @Success      200     {array}   ladder.Entry
// @Failure      500     {object}  ErrorResponse
// @Router       /ladder/{season}/rebuild [post]
func (h *LadderHandler) Rebuild(w http.ResponseWriter, r *http.Request) {
	season := getIntPathValue(r, "season")

	results, err := h.results.ListAll(r.Context())
	if err != nil {
		writeInternalServerError(w, err)
		return
	}

	ladderResults := make([]ladder.Result, len(results))
	for i, res := range results {
		ladderResults[i] = ladder.Result{HomeID: res.HomeID, AwayID: res.AwayID, HomeScore: res.Score}
	}

	entries := ladder.BuildLadder(ladderResults)
	if err := h.ladders.SaveSnapshot(r.Context(), season, entries); err != nil {
		writeInternalServerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// Get retrieves the most recently saved ladder snapshot for a season.
//
// @Summary      Get a season's ladder
// @Tags         ladder
// @Produce      json
// @Param        season  path      int  true  "season year"
// @Success      200     {array}   ladder.Entry
// @Failure      500     {object}  ErrorResponse
// @Router       /ladder/{season} [get]
func (h *LadderHandler) Get(w http.ResponseWriter, r *http.Request) {
	season := getIntPathValue(r, "season")

	entries, err := h.ladders.GetSnapshot(r.Context(), season)
	if err != nil {
		writeInternalServerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
