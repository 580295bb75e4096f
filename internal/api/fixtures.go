package api

import (
	"encoding/json"
	"net/http"

	"github.com/footycoach/matchsim/internal/core"
	"github.com/footycoach/matchsim/internal/schedule"
)

// FixturesHandler serves round-robin fixture generation.
type FixturesHandler struct{}

// NewFixturesHandler constructs a handler.
func NewFixturesHandler() *FixturesHandler {
	return &FixturesHandler{}
}

// RegisterRoutes implements Registrar.
func (h *FixturesHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/fixtures", h.Build)
}

type fixturesRequest struct {
	TeamIDs          []int `json:"team_ids"`
	DoubleRoundRobin bool  `json:"double_round_robin"`
}

// Build generates a round-robin fixture list for a set of team ids.
//
// @Summary      Build a round-robin fixture list
// @Tags         fixtures
// @Accept       json
// @Produce      json
// @Param        body  body      fixturesRequest  true  "team ids to schedule"
// @Success      200   {array}   schedule.Fixture
// @Failure      400   {object}  ErrorResponse
// @Router       /fixtures [post]
func (h *FixturesHandler) Build(w http.ResponseWriter, r *http.Request) {
	var req fixturesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	if len(req.TeamIDs) < 2 {
		writeBadRequest(w, "at least two team ids are required")
		return
	}

	ids := make([]core.TeamID, len(req.TeamIDs))
	for i, id := range req.TeamIDs {
		ids[i] = core.TeamID(id)
	}

	fixtures := schedule.BuildRoundRobin(ids, req.DoubleRoundRobin)
	writeJSON(w, http.StatusOK, fixtures)
}
