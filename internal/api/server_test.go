package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/hexfront/internal/archive"
	"github.com/talgya/hexfront/internal/catalog"
	"github.com/talgya/hexfront/internal/engine"
	"github.com/talgya/hexfront/internal/entropy"
	"github.com/talgya/hexfront/internal/game"
)

func newTestServer(t *testing.T, db *archive.DB) (*httptest.Server, *game.Game) {
	t.Helper()
	g := game.New(catalog.DefaultTuning(), entropy.Seeded(1))
	p, err := g.Join("ada")
	require.NoError(t, err)
	require.NoError(t, g.ToggleReady(p.ID))
	require.NoError(t, g.StartGame())

	s := &Server{Game: g, Eng: engine.New(g), DB: db, AdminKey: "secret"}
	ts := httptest.NewServer(s.handler())
	t.Cleanup(ts.Close)
	return ts, g
}

func getJSON(t *testing.T, url string, out any) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestStatusEndpoint(t *testing.T) {
	ts, _ := newTestServer(t, nil)

	var status map[string]any
	getJSON(t, ts.URL+"/api/v1/status", &status)
	assert.Equal(t, "running", status["state"])
	assert.Equal(t, float64(1), status["round"])
	assert.Equal(t, "round_start", status["phase"])
	assert.Equal(t, float64(1), status["players"])
	assert.NotEmpty(t, status["uptime"])
}

func TestSnapshotEndpoint(t *testing.T) {
	ts, g := newTestServer(t, nil)

	var snap game.Snapshot
	getJSON(t, ts.URL+"/api/v1/snapshot", &snap)
	assert.Equal(t, "running", snap.State)
	assert.Len(t, snap.Tiles, len(g.TakeSnapshot().Tiles))
	assert.Len(t, snap.Players, 1)
}

func TestEventsEndpointFilters(t *testing.T) {
	ts, _ := newTestServer(t, nil)

	var events []game.Event
	getJSON(t, ts.URL+"/api/v1/events?category=lobby", &events)
	require.NotEmpty(t, events)
	for _, e := range events {
		assert.Equal(t, "lobby", e.Category)
	}

	getJSON(t, ts.URL+"/api/v1/events?category=nonexistent", &events)
	assert.Empty(t, events)
}

func TestAdvanceRequiresBearerToken(t *testing.T) {
	ts, g := newTestServer(t, nil)

	resp, err := http.Post(ts.URL+"/api/v1/advance", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req, _ := http.NewRequest(http.MethodPost, ts.URL+"/api/v1/advance", nil)
	req.Header.Set("Authorization", "Bearer secret")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ap_renewal", body["phase"])

	phase, _ := g.CurrentPhase()
	assert.Equal(t, game.PhaseAPRenewal, phase)
}

func TestSpeedEndpoint(t *testing.T) {
	ts, _ := newTestServer(t, nil)

	var speed map[string]float64
	getJSON(t, ts.URL+"/api/v1/speed", &speed)
	assert.Equal(t, 1.0, speed["speed"])

	payload := bytes.NewBufferString(`{"speed": 4}`)
	req, _ := http.NewRequest(http.MethodPost, ts.URL+"/api/v1/speed", payload)
	req.Header.Set("Authorization", "Bearer secret")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	getJSON(t, ts.URL+"/api/v1/speed", &speed)
	assert.Equal(t, 4.0, speed["speed"])
}

func TestArchiveEndpoint(t *testing.T) {
	noDB, _ := newTestServer(t, nil)
	resp, err := http.Get(noDB.URL + "/api/v1/archive/events")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	db, err := archive.Open(filepath.Join(t.TempDir(), "match.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ts, g := newTestServer(t, db)
	g.SetEventSink(db.Record)
	_, err = g.AdvancePhase()
	require.NoError(t, err)

	var rows []archive.EventRow
	getJSON(t, ts.URL+"/api/v1/archive/events", &rows)
	require.NotEmpty(t, rows)
	assert.Equal(t, "economy", rows[0].Category)

	getJSON(t, ts.URL+"/api/v1/archive/events?round=1", &rows)
	require.NotEmpty(t, rows)
	for _, row := range rows {
		assert.Equal(t, 1, row.Round)
	}
}
