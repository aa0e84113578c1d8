package routing

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
)

func TestHaversineMeters(t *testing.T) {
	// One degree of latitude is roughly 111.2 km.
	a := orb.Point{96.0, 16.0}
	b := orb.Point{96.0, 17.0}
	assert.InDelta(t, 111195, HaversineMeters(a, b), 200)

	// Distance is symmetric and zero for identical points.
	assert.Equal(t, HaversineMeters(a, b), HaversineMeters(b, a))
	assert.Zero(t, HaversineMeters(a, a))
}

func TestPointKey(t *testing.T) {
	assert.Equal(t, "96.1234567,16.7654321", PointKey(orb.Point{96.1234567, 16.7654321}))

	// Differences beyond the seventh decimal collapse to the same key.
	p := orb.Point{96.12345671, 16.7654321}
	q := orb.Point{96.12345669, 16.7654321}
	assert.Equal(t, PointKey(p), PointKey(q))

	// Differences at centimeter scale do not.
	r := orb.Point{96.1234577, 16.7654321}
	assert.NotEqual(t, PointKey(p), PointKey(r))
}
