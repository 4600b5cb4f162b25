package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/annel0/voxelworld/internal/game"
	"github.com/annel0/voxelworld/internal/logging"
	"github.com/annel0/voxelworld/internal/vec"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeControls struct {
	down   []string
	up     []string
	clicks int
	look   *mgl64.Vec3
}

func (f *fakeControls) KeyDown(key string) bool {
	if key == "q" {
		return false
	}
	f.down = append(f.down, key)
	return true
}

func (f *fakeControls) KeyUp(key string)    { f.up = append(f.up, key) }
func (f *fakeControls) Click()              { f.clicks++ }
func (f *fakeControls) Look(dir mgl64.Vec3) { f.look = &dir }

func newTestServer(t *testing.T, controls Controls) (*RestServer, *SnapshotStore) {
	t.Helper()
	reg := prometheus.NewRegistry()
	store := NewSnapshotStore()
	rs := NewRestServer(Config{
		Store:      store,
		Controls:   controls,
		Registerer: reg,
		Gatherer:   reg,
		Logger:     logging.NewNop(),
	})
	return rs, store
}

func do(rs *RestServer, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	rs.Handler().ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	rs, _ := newTestServer(t, nil)
	w := do(rs, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestState(t *testing.T) {
	rs, store := newTestServer(t, nil)

	w := do(rs, http.MethodGet, "/api/state", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	store.Publish(game.Snapshot{
		Frame:  7,
		Mode:   "creative",
		Center: vec.Vec2{X: 1, Z: -1},
		Chunks: []vec.Vec2{{X: 1, Z: -1}},
	})

	w = do(rs, http.MethodGet, "/api/state", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool          `json:"success"`
		Data    game.Snapshot `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, uint64(7), resp.Data.Frame)
	assert.Equal(t, "creative", resp.Data.Mode)

	w = do(rs, http.MethodGet, "/api/chunks", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)
}

func TestStats(t *testing.T) {
	rs, _ := newTestServer(t, nil)
	w := do(rs, http.MethodGet, "/api/stats", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"uptime"`)
	assert.Contains(t, w.Body.String(), `"goroutines"`)
}

func TestInput(t *testing.T) {
	controls := &fakeControls{}
	rs, _ := newTestServer(t, controls)

	w := do(rs, http.MethodPost, "/api/input", `{"down":["w","q"],"up":["a"],"click":true,"look":[0,1,0]}`)
	require.Equal(t, http.StatusAccepted, w.Code)
	assert.Contains(t, w.Body.String(), `"unknown":["q"]`)

	assert.Equal(t, []string{"w"}, controls.down)
	assert.Equal(t, []string{"a"}, controls.up)
	assert.Equal(t, 1, controls.clicks)
	require.NotNil(t, controls.look)
	assert.Equal(t, mgl64.Vec3{0, 1, 0}, *controls.look)

	w = do(rs, http.MethodPost, "/api/input", `{"down":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInputDisabledWithoutControls(t *testing.T) {
	rs, _ := newTestServer(t, nil)
	w := do(rs, http.MethodPost, "/api/input", `{}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	rs, _ := newTestServer(t, nil)
	do(rs, http.MethodGet, "/health", "")

	w := do(rs, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "voxel_api_http_request_duration_seconds")
}
