package interaction

import (
	"errors"
	"testing"

	"github.com/annel0/voxelworld/internal/entity"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRay(t *testing.T) {
	r, err := NewRay(mgl64.Vec3{1, 2, 3}, mgl64.Vec3{0, 0, -4})
	require.NoError(t, err)
	assert.Equal(t, mgl64.Vec3{0, 0, -1}, r.Direction)

	_, err = NewRay(mgl64.Vec3{}, mgl64.Vec3{})
	assert.True(t, errors.Is(err, ErrZeroDirection))
}

func TestFromObserver(t *testing.T) {
	obs := entity.NewObserver(mgl64.Vec3{4, 5, 6})
	r, err := FromObserver(obs)
	require.NoError(t, err)

	assert.Equal(t, obs.Position, r.Origin)
	assert.Equal(t, entity.DefaultFacing, r.Direction)
}

func TestIntersect(t *testing.T) {
	boxMin, boxMax := BlockBounds(mgl64.Vec3{0, 5, 0})

	tests := []struct {
		name   string
		origin mgl64.Vec3
		dir    mgl64.Vec3
		want   float64
		hit    bool
	}{
		{"сверху вниз", mgl64.Vec3{0, 10, 0}, mgl64.Vec3{0, -1, 0}, 4.5, true},
		{"снизу вверх", mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 1, 0}, 4.5, true},
		{"мимо", mgl64.Vec3{2, 0, 0}, mgl64.Vec3{0, 1, 0}, 0, false},
		{"позади", mgl64.Vec3{0, 10, 0}, mgl64.Vec3{0, 1, 0}, 0, false},
		{"изнутри", mgl64.Vec3{0, 5, 0}, mgl64.Vec3{0, 1, 0}, 0, false},
		{"по грани", mgl64.Vec3{0.5, 0, 0}, mgl64.Vec3{0, 1, 0}, 4.5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRay(tt.origin, tt.dir)
			require.NoError(t, err)

			dist, ok := Intersect(r, boxMin, boxMax)
			assert.Equal(t, tt.hit, ok)
			if tt.hit {
				assert.InDelta(t, tt.want, dist, 1e-9)
			}
		})
	}
}

func TestIntersectDiagonal(t *testing.T) {
	boxMin, boxMax := BlockBounds(mgl64.Vec3{3, 0, 3})
	r, err := NewRay(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0, 1})
	require.NoError(t, err)

	dist, ok := Intersect(r, boxMin, boxMax)
	require.True(t, ok)

	p := r.At(dist)
	assert.InDelta(t, 2.5, p.X(), 1e-9)
	assert.InDelta(t, 2.5, p.Z(), 1e-9)
}
