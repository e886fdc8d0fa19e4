package sim_test

import (
	"testing"

	"github.com/delaneyj/pushmodel/pushmodel"
	"github.com/delaneyj/pushmodel/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyForIsStable(t *testing.T) {
	a := sim.KeyFor("actor-1", 1)
	b := sim.KeyFor("actor-1", 1)
	assert.Equal(t, a, b)
	assert.True(t, a.IsValid())
	assert.NotEqual(t, a, sim.KeyFor("actor-1", 2))
}

func TestWorldLifecycle(t *testing.T) {
	m := pushmodel.New(pushmodel.DefaultConfig())
	w := sim.NewWorld(m)

	a := w.Spawn("a")
	b := w.Spawn("b")
	require.NotEqual(t, a.Key(), b.Key())
	assert.Equal(t, 2, w.Len())

	actors := w.Actors()
	require.Len(t, actors, 2)
	assert.Negative(t, actors[0].Key().Compare(actors[1].Key()))

	w.Destroy(a)
	assert.False(t, w.IsAlive(a.Key()))
	_, ok := w.Actor(a.Key())
	assert.False(t, ok)
	got, ok := w.Actor(b.Key())
	require.True(t, ok)
	assert.Same(t, b, got)

	calls := 0
	cancel := w.OnPostCollect(func() { calls++ })
	assert.Equal(t, 1, w.CollectGarbage())
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, w.CollectGarbage())
	assert.Equal(t, 2, calls)

	cancel()
	w.CollectGarbage()
	assert.Equal(t, 2, calls)
}

func TestWorldDrivesSweep(t *testing.T) {
	m := pushmodel.New(pushmodel.DefaultConfig())
	w := sim.NewWorld(m)
	defer m.Attach(w)()

	d := sim.NewNetDriver("d", m)
	a := w.Spawn("a")
	require.NoError(t, d.Open(a))
	d.Close(a.Key())
	w.Destroy(a)

	_, ok := m.Lookup(a.Key())
	require.True(t, ok, "tracking state outlives the last driver until a sweep")

	w.CollectGarbage()
	_, ok = m.Lookup(a.Key())
	assert.False(t, ok)
}
