package world

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/annel0/voxelworld/internal/config"
	"github.com/annel0/voxelworld/internal/logging"
	"github.com/annel0/voxelworld/internal/vec"
	"github.com/annel0/voxelworld/internal/world/terrain"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogListener(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.log")
	logger, err := logging.NewLogger("world", logging.Options{Level: logging.DEBUG, OutputPaths: []string{path}})
	require.NoError(t, err)

	l := NewLogListener(logger)
	l.OnEvent(ChunkLoadedEvent{Coords: vec.Vec2{X: 1, Z: 2}, Digest: 42})
	l.OnEvent(ChunkUnloadedEvent{Coords: vec.Vec2{X: -3, Z: 0}})
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "chunk-loaded 1,2")
	assert.Contains(t, out, "chunk-unloaded -3,0")
}

func TestStreamingManagerLogsChunksOnlyThroughListener(t *testing.T) {
	path := filepath.Join(t.TempDir(), "world.log")
	logger, err := logging.NewLogger("world", logging.Options{Level: logging.TRACE, OutputPaths: []string{path}})
	require.NoError(t, err)

	m, _ := newTestManager(t, 1, 1, WithLogger(logger))
	m.Reconcile(mgl64.Vec3{})
	m.Reconcile(mgl64.Vec3{64, 0, 0})
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "Центр стриминга")
	assert.NotContains(t, out, "загружен", "загрузка логируется только LogListener")
	assert.NotContains(t, out, "выгружен")
}

func TestStreamingManagerDefaultsToWorldLogger(t *testing.T) {
	cfg := config.WorldConfig{ChunkSize: 16, RenderDistance: 0, RetentionSlack: 1}
	m := NewStreamingManager(cfg, &terrain.SineGenerator{Amplitude: 10, MinHeight: 2})
	assert.Same(t, logging.GetWorldLogger(), m.logger)
}
