package world

import (
	"testing"

	"github.com/annel0/voxelworld/internal/config"
	"github.com/annel0/voxelworld/internal/logging"
	"github.com/annel0/voxelworld/internal/vec"
	"github.com/annel0/voxelworld/internal/world/block"
	"github.com/annel0/voxelworld/internal/world/terrain"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder запоминает уведомления в порядке получения
type recorder struct {
	events []Event
}

func (r *recorder) OnEvent(ev Event) {
	r.events = append(r.events, ev)
}

func (r *recorder) reset() {
	r.events = nil
}

func newTestManager(t *testing.T, renderDistance, slack int, opts ...Option) (*StreamingManager, *recorder) {
	t.Helper()
	rec := &recorder{}
	cfg := config.WorldConfig{ChunkSize: 16, RenderDistance: renderDistance, RetentionSlack: slack}
	gen := &terrain.SineGenerator{Amplitude: 10, MinHeight: 2}
	opts = append([]Option{WithListener(rec), WithLogger(logging.NewNop())}, opts...)
	return NewStreamingManager(cfg, gen, opts...), rec
}

func square(center vec.Vec2, radius int) map[vec.Vec2]bool {
	out := make(map[vec.Vec2]bool)
	for dx := -radius; dx <= radius; dx++ {
		for dz := -radius; dz <= radius; dz++ {
			out[vec.Vec2{X: center.X + dx, Z: center.Z + dz}] = true
		}
	}
	return out
}

func loadedSet(m *StreamingManager) map[vec.Vec2]bool {
	out := make(map[vec.Vec2]bool)
	for _, c := range m.Loaded() {
		out[c] = true
	}
	return out
}

func TestStreamingManager_InitialLoad(t *testing.T) {
	m, rec := newTestManager(t, 2, 1)

	res := m.Reconcile(mgl64.Vec3{8, 20, 8})

	assert.Equal(t, vec.Vec2{X: 0, Z: 0}, res.Center)
	assert.Len(t, res.Loaded, 25, "5x5 чанков при renderDistance=2")
	assert.Empty(t, res.Unloaded)
	assert.Equal(t, 25, m.Len())
	assert.Equal(t, square(vec.Vec2{}, 2), loadedSet(m))

	require.Len(t, rec.events, 25)
	for _, ev := range rec.events {
		loaded, ok := ev.(ChunkLoadedEvent)
		require.True(t, ok, "ожидалось только chunk-loaded")
		assert.NotNil(t, loaded.Chunk)
		assert.Equal(t, loaded.Chunk.Digest(), loaded.Digest)

		// Уведомление приходит только после вставки в индекс
		indexed, exists := m.Chunk(loaded.Coords)
		assert.True(t, exists)
		assert.Same(t, loaded.Chunk, indexed)
	}
}

func TestStreamingManager_Idempotent(t *testing.T) {
	m, rec := newTestManager(t, 2, 1)

	m.Reconcile(mgl64.Vec3{8, 0, 8})
	before := m.Loaded()
	rec.reset()

	res := m.Reconcile(mgl64.Vec3{8, 0, 8})
	assert.False(t, res.Changed())
	assert.Equal(t, before, m.Loaded())
	assert.Empty(t, rec.events)

	// Движение внутри того же чанка тоже ничего не меняет
	res = m.Reconcile(mgl64.Vec3{15.9, 3, 0.1})
	assert.False(t, res.Changed())
	assert.Empty(t, rec.events)
}

func TestStreamingManager_MonotonicCoverage(t *testing.T) {
	m, _ := newTestManager(t, 2, 1)

	path := []mgl64.Vec3{
		{0, 0, 0}, {20, 0, 0}, {40, 0, -5}, {70, 0, -40}, {-30, 0, 10},
		{-31, 0, 11}, {100, 0, 100}, {99, 0, 120}, {0, 0, 0},
	}

	prev := map[vec.Vec2]bool{}
	for _, p := range path {
		res := m.Reconcile(p)
		center := vec.ChunkAt(p, 16)
		require.Equal(t, center, res.Center)

		want := square(center, 2)
		for c := range prev {
			if c.Chebyshev(center) <= 3 {
				want[c] = true
			}
		}

		got := loadedSet(m)
		require.Equal(t, want, got, "позиция %v", p)
		assert.Len(t, m.Loaded(), m.Len(), "порядок вставки совпадает с индексом")
		prev = got
	}
}

func TestStreamingManager_MoveToChunkThree(t *testing.T) {
	m, rec := newTestManager(t, 2, 1)

	m.Reconcile(mgl64.Vec3{8, 0, 8})
	rec.reset()

	res := m.Reconcile(mgl64.Vec3{3*16 + 8, 0, 8})
	assert.Equal(t, vec.Vec2{X: 3, Z: 0}, res.Center)

	for cx := 1; cx <= 5; cx++ {
		for cz := -2; cz <= 2; cz++ {
			_, exists := m.Chunk(vec.Vec2{X: cx, Z: cz})
			assert.True(t, exists, "чанк (%d,%d) должен быть загружен", cx, cz)
		}
	}

	// Расстояние 3 не превышает renderDistance+1, чанк (0,0) удерживается
	_, exists := m.Chunk(vec.Vec2{X: 0, Z: 0})
	assert.True(t, exists, "чанк на границе удержания не выгружается")

	// Колонки cx=-2 и cx=-1 дальше границы
	for cz := -2; cz <= 2; cz++ {
		for _, cx := range []int{-2, -1} {
			_, exists := m.Chunk(vec.Vec2{X: cx, Z: cz})
			assert.False(t, exists, "чанк (%d,%d) должен быть выгружен", cx, cz)
		}
	}
	assert.Len(t, res.Unloaded, 10)
	assert.Len(t, res.Loaded, 15)

	// Все загрузки приходят раньше выгрузок
	seenUnload := false
	for _, ev := range rec.events {
		switch ev.GetType() {
		case EventTypeChunkUnloaded:
			seenUnload = true
		case EventTypeChunkLoaded:
			assert.False(t, seenUnload, "загрузка после выгрузки")
		}
	}
}

func TestStreamingManager_ZeroSlackEvictsBoundary(t *testing.T) {
	m, _ := newTestManager(t, 2, 0)

	m.Reconcile(mgl64.Vec3{8, 0, 8})
	m.Reconcile(mgl64.Vec3{3*16 + 8, 0, 8})

	_, exists := m.Chunk(vec.Vec2{X: 0, Z: 0})
	assert.False(t, exists, "без запаса чанк на расстоянии 3 выгружается")
	assert.Equal(t, square(vec.Vec2{X: 3, Z: 0}, 2), loadedSet(m))
}

func TestStreamingManager_NegativeCoordinates(t *testing.T) {
	m, _ := newTestManager(t, 0, 1)

	res := m.Reconcile(mgl64.Vec3{-0.5, 0, -17})
	assert.Equal(t, vec.Vec2{X: -1, Z: -2}, res.Center)
	assert.Equal(t, []vec.Vec2{{X: -1, Z: -2}}, m.Loaded())
}

func TestStreamingManager_WorldBlockAccess(t *testing.T) {
	m, _ := newTestManager(t, 1, 1)
	m.Reconcile(mgl64.Vec3{0, 0, 0})

	// (0,0): sin(0) = 0 -> высота 2: камень, земля, трава
	b, ok := m.BlockAtWorld(vec.Vec3{X: 0, Y: 0, Z: 0})
	require.True(t, ok)
	assert.Equal(t, block.Stone, b)
	b, _ = m.BlockAtWorld(vec.Vec3{X: 0, Y: 1, Z: 0})
	assert.Equal(t, block.Dirt, b)
	b, _ = m.BlockAtWorld(vec.Vec3{X: 0, Y: 2, Z: 0})
	assert.Equal(t, block.Grass, b)

	// Отрицательные мировые координаты попадают в чанк (-1,-1)
	require.NoError(t, m.SetBlockWorld(vec.Vec3{X: -1, Y: 12, Z: -16}, block.Wood))
	chunk, exists := m.Chunk(vec.Vec2{X: -1, Z: -1})
	require.True(t, exists)
	got, err := chunk.BlockAt(15, 12, 0)
	require.NoError(t, err)
	assert.Equal(t, block.Wood, got)

	assert.ErrorIs(t, m.SetBlockWorld(vec.Vec3{X: 500, Y: 0, Z: 0}, block.Wood), ErrChunkNotLoaded)
	assert.ErrorIs(t, m.SetBlockWorld(vec.Vec3{X: 0, Y: 16, Z: 0}, block.Wood), ErrOutOfBounds)

	_, ok = m.BlockAtWorld(vec.Vec3{X: 500, Y: 0, Z: 0})
	assert.False(t, ok)
	_, ok = m.BlockAtWorld(vec.Vec3{X: 0, Y: -1, Z: 0})
	assert.False(t, ok)
}

func TestStreamingManager_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	m, _ := newTestManager(t, 1, 0, WithMetrics(metrics))

	m.Reconcile(mgl64.Vec3{0, 0, 0})
	assert.Equal(t, 9.0, testutil.ToFloat64(metrics.loaded))
	assert.Equal(t, 9.0, testutil.ToFloat64(metrics.resident))

	m.Reconcile(mgl64.Vec3{16 * 5, 0, 0})
	assert.Equal(t, 18.0, testutil.ToFloat64(metrics.loaded))
	assert.Equal(t, 9.0, testutil.ToFloat64(metrics.unloaded))
	assert.Equal(t, 9.0, testutil.ToFloat64(metrics.resident))

	count, err := testutil.GatherAndCount(reg, "voxel_chunk_generation_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMultiListener(t *testing.T) {
	a, b := &recorder{}, &recorder{}
	var calls int
	l := MultiListener{a, nil, b, ListenerFunc(func(Event) { calls++ })}

	l.OnEvent(ChunkUnloadedEvent{Coords: vec.Vec2{X: 1}})

	assert.Len(t, a.events, 1)
	assert.Len(t, b.events, 1)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "chunk-unloaded", a.events[0].GetType().String())
}
