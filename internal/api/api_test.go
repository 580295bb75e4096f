package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	_ "github.com/lib/pq"

	"github.com/footycoach/matchsim/internal/core"
	"github.com/footycoach/matchsim/internal/db"
	"github.com/footycoach/matchsim/internal/testutils"
)

func setupTestServer(t *testing.T) (*Server, func()) {
	t.Helper()

	ctx := context.Background()
	projectRoot, err := testutils.GetProjectRoot()
	if err != nil {
		t.Fatalf("failed to get project root: %v", err)
	}

	originalDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get current directory: %v", err)
	}

	if err := os.Chdir(projectRoot); err != nil {
		t.Fatalf("failed to change to project root: %v", err)
	}

	container, err := testutils.NewPostgresContainer(ctx)
	if err != nil {
		t.Fatalf("failed to create postgres container: %v", err)
	}

	cleanup := func() {
		os.Chdir(originalDir)
		if err := container.Terminate(ctx); err != nil {
			t.Errorf("failed to terminate container: %v", err)
		}
	}

	database, err := db.Connect(container.ConnStr)
	if err != nil {
		cleanup()
		t.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.Migrate(ctx); err != nil {
		cleanup()
		t.Fatalf("failed to run migrations: %v", err)
	}

	return NewServer(database.DB, nil, core.Default()), cleanup
}

func fullRoster(teamID int, namePrefix string) rosterRequest {
	roles := []core.Role{
		core.RoleKeyDefender, core.RoleDefender, core.RoleWing, core.RoleCenter,
		core.RoleMidfielder, core.RoleRuckRover, core.RoleForward, core.RoleKeyForward,
		core.RoleRuck, core.RoleUtility,
	}
	players := make([]*core.Player, 0, 30)
	for i := 0; i < 30; i++ {
		players = append(players, &core.Player{
			ID:         core.PlayerID(teamID*100 + i),
			Name:       namePrefix + " Player",
			Role:       roles[i%len(roles)],
			Condition:  100,
			Durability: 80,
			Physical:   core.Physical{Speed: 60, Acceleration: 60, Strength: 60, Agility: 60, Jump: 60},
			Skill:      core.Skill{Kicking: 60, Marking: 60, Handball: 60, Tackling: 60, Clearance: 60, RuckWork: 60, Spoiling: 60},
			Mental:     core.Mental{DecisionMaking: 60, Composure: 60, WorkRate: 70, Positioning: 60, Leadership: 60},
		})
	}
	return rosterRequest{
		ID:      teamID,
		Name:    namePrefix,
		Ground:  "Test Oval",
		Tactics: core.Tactics{ContestBias: 50, KickingRisk: 50, RotationAggressiveness: 50, InterchangeCap: 6},
		Players: players,
	}
}

func TestHealthEndpoint(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()

	req := httptest.NewRequest(http.MethodGet, "/v1/health", nil)
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("expected status ok, got %s", resp.Status)
	}
}

func TestSimulateAndFetchMatch(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()

	body := simulateRequest{
		Round:       1,
		Home:        fullRoster(1, "Home"),
		Away:        fullRoster(2, "Away"),
		Weather:     core.WeatherClear,
		QuarterSecs: 120,
		Seed:        42,
	}
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/matches/simulate", bytes.NewReader(payload))
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var simResp simulateResponse
	if err := json.Unmarshal(w.Body.Bytes(), &simResp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if simResp.ID == 0 {
		t.Error("expected a non-zero match result id")
	}

	getReq := httptest.NewRequest(http.MethodGet, "/v1/matches/1", nil)
	getW := httptest.NewRecorder()
	server.ServeHTTP(getW, getReq)

	if getW.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", getW.Code, getW.Body.String())
	}
}

func TestSimulateRejectsIdenticalTeamIDs(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()

	body := simulateRequest{
		Home:        fullRoster(1, "Home"),
		Away:        fullRoster(1, "AlsoHome"),
		QuarterSecs: 120,
	}
	payload, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/v1/matches/simulate", bytes.NewReader(payload))
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestGetUnknownMatchReturnsNotFound(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()

	req := httptest.NewRequest(http.MethodGet, "/v1/matches/999999", nil)
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}

func TestFixturesBuild(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()

	body := fixturesRequest{TeamIDs: []int{1, 2, 3, 4}, DoubleRoundRobin: false}
	payload, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/v1/fixtures", bytes.NewReader(payload))
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestFixturesBuildRejectsTooFewTeams(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()

	body := fixturesRequest{TeamIDs: []int{1}}
	payload, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/v1/fixtures", bytes.NewReader(payload))
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestLadderRebuildAndGet(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()

	simBody := simulateRequest{
		Round:       1,
		Home:        fullRoster(1, "Home"),
		Away:        fullRoster(2, "Away"),
		QuarterSecs: 120,
		Seed:        7,
	}
	payload, _ := json.Marshal(simBody)
	simReq := httptest.NewRequest(http.MethodPost, "/v1/matches/simulate", bytes.NewReader(payload))
	simW := httptest.NewRecorder()
	server.ServeHTTP(simW, simReq)
	if simW.Code != http.StatusCreated {
		t.Fatalf("failed to seed a match result: %d %s", simW.Code, simW.Body.String())
	}

	rebuildReq := httptest.NewRequest(http.MethodPost, "/v1/ladder/2026/rebuild", nil)
	rebuildW := httptest.NewRecorder()
	server.ServeHTTP(rebuildW, rebuildReq)
	if rebuildW.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rebuildW.Code, rebuildW.Body.String())
	}

	getReq := httptest.NewRequest(http.MethodGet, "/v1/ladder/2026", nil)
	getW := httptest.NewRecorder()
	server.ServeHTTP(getW, getReq)
	if getW.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", getW.Code, getW.Body.String())
	}

	var entries []map[string]any
	if err := json.Unmarshal(getW.Body.Bytes(), &entries); err != nil {
		t.Fatalf("failed to decode ladder: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("expected 2 ladder entries, got %d", len(entries))
	}
}
