package api

import (
	"encoding/json"
	"net/http"

	"github.com/footycoach/matchsim/internal/core"
	"github.com/footycoach/matchsim/internal/match"
	"github.com/footycoach/matchsim/internal/repository"
	"github.com/footycoach/matchsim/internal/telemetry"
)

// MatchesHandler serves the match simulation and result-lookup endpoints.
type MatchesHandler struct {
	results *repository.MatchResultRepository
	tuning  core.Tuning
}

// NewMatchesHandler constructs a handler. tuning is applied to every
// simulation the handler runs; the request body cannot override it.
func NewMatchesHandler(results *repository.MatchResultRepository, tuning core.Tuning) *MatchesHandler {
	return &MatchesHandler{results: results, tuning: tuning}
}

// RegisterRoutes implements Registrar.
func (h *MatchesHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/matches/simulate", h.Simulate)
	mux.HandleFunc("GET /v1/matches/{id}", h.GetByID)
	mux.HandleFunc("GET /v1/matches", h.ListByRound)
}

// rosterRequest is the wire shape of one side's roster in a simulate request.
type rosterRequest struct {
	ID      int            `json:"team_id"`
	Name    string         `json:"name"`
	Ground  string         `json:"ground"`
	Tactics core.Tactics   `json:"tactics"`
	Players []*core.Player `json:"players"`
}

// simulateRequest is the body POST /v1/matches/simulate accepts.
type simulateRequest struct {
	Round         int           `json:"round"`
	Home          rosterRequest `json:"home"`
	Away          rosterRequest `json:"away"`
	Weather       core.Weather  `json:"weather"`
	QuarterSecs   int           `json:"quarter_seconds"`
	Seed          uint64        `json:"seed"`
	WithCommentary bool         `json:"with_commentary"`
}

// simulateResponse is the body POST /v1/matches/simulate returns.
type simulateResponse struct {
	ID         int64             `json:"id"`
	Result     match.Result      `json:"result"`
	Commentary []telemetry.Event `json:"commentary,omitempty"`
}

func (r rosterRequest) toRoster() match.Roster {
	return match.Roster{
		ID:      core.TeamID(r.ID),
		Name:    r.Name,
		Ground:  r.Ground,
		Tactics: r.Tactics,
		Players: r.Players,
	}
}

// Simulate runs one match synchronously and persists its result.
//
// @Summary      Simulate a match
// @Description  Runs a deterministic, seeded match simulation between two rosters and stores the result.
// @Tags         matches
// @Accept       json
// @Produce      json
// @Param        body  body      simulateRequest  true  "match inputs"
// @Success      201   {object}  simulateResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /matches/simulate [post]
func (h *MatchesHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	var req simulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}

	in := match.Input{
		Round:       req.Round,
		Home:        req.Home.toRoster(),
		Away:        req.Away.toRoster(),
		Weather:     req.Weather,
		QuarterSecs: req.QuarterSecs,
	}
	if in.QuarterSecs == 0 {
		in.QuarterSecs = 1200
	}

	var sink *telemetry.CommentarySink
	if req.WithCommentary {
		homeState := &core.TeamState{ID: in.Home.ID, Name: in.Home.Name}
		awayState := &core.TeamState{ID: in.Away.ID, Name: in.Away.Name}
		sink = telemetry.NewCommentarySink(homeState, awayState, in.Weather.Normalize(), req.Seed+1)
	}

	var simSink telemetry.Sink
	if sink != nil {
		simSink = sink
	}

	result, err := match.PlayMatch(in, req.Seed, h.tuning, simSink)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	id, err := h.results.Save(r.Context(), result)
	if err != nil {
		writeInternalServerError(w, err)
		return
	}

	resp := simulateResponse{ID: id, Result: result}
	if sink != nil {
		resp.Commentary = sink.Events()
	}
	writeJSON(w, http.StatusCreated, resp)
}

// GetByID retrieves a single stored match result.
//
// @Summary      Get a match result
// @Tags         matches
// @Produce      json
// @Param        id   path      int  true  "match result id"
// @Success      200  {object}  match.Result
// @Failure      404  {object}  ErrorResponse
// @Router       /matches/{id} [get]
func (h *MatchesHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := getIntPathValue(r, "id")
	result, err := h.results.GetByID(r.Context(), int64(id))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// ListByRound lists stored match results, optionally filtered by round.
//
// @Summary      List match results
// @Tags         matches
// @Produce      json
// @Param        round  query     int  false  "round number"
// @Success      200    {array}   match.Result
// @Failure      500    {object}  ErrorResponse
// @Router       /matches [get]
func (h *MatchesHandler) ListByRound(w http.ResponseWriter, r *http.Request) {
	round := getIntQuery(r, "round", 0)

	var (
		results []match.Result
		err     error
	)
	if round > 0 {
		results, err = h.results.ListByRound(r.Context(), round)
	} else {
		results, err = h.results.ListAll(r.Context())
	}
	if err != nil {
		writeInternalServerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}
