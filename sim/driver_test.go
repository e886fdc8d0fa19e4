package sim_test

import (
	"fmt"
	"testing"

	"github.com/delaneyj/pushmodel/pushmodel"
	"github.com/delaneyj/pushmodel/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func primed(t *testing.T, cfg pushmodel.Config) (*pushmodel.Manager, *sim.World, *sim.NetDriver, *sim.Actor) {
	t.Helper()
	m := pushmodel.New(cfg)
	w := sim.NewWorld(m)
	d := sim.NewNetDriver("d", m)
	a := w.Spawn("hero")
	require.NoError(t, d.Open(a))

	stats := d.Tick()
	require.Equal(t, 1, stats.FullScans)
	require.Equal(t, sim.NumActorProperties, stats.Compared)
	return m, w, d, a
}

func TestDriverOnlyComparesDirtyProperties(t *testing.T) {
	_, _, d, a := primed(t, pushmodel.DefaultConfig())

	a.SetHealth(80)
	a.SetHealth(80)
	stats := d.Tick()
	assert.Equal(t, 0, stats.FullScans)
	// health plus the two authored properties that are not push based
	assert.Equal(t, 3, stats.Compared)
	assert.Equal(t, 1, stats.Sent)

	v, ok := d.Shadow(a.Key(), sim.ActorHealth)
	require.True(t, ok)
	assert.Equal(t, int32(80), v)

	stats = d.Tick()
	assert.Equal(t, 2, stats.Compared)
	assert.Zero(t, stats.Sent)
}

func TestDriverAuthoredPropertiesPushBased(t *testing.T) {
	cfg := pushmodel.DefaultConfig()
	cfg.MakeBPPropertiesPushModel = true
	_, _, d, a := primed(t, cfg)

	stats := d.Tick()
	assert.Zero(t, stats.Compared)

	a.SetScore(3)
	stats = d.Tick()
	assert.Equal(t, 1, stats.Compared)
	assert.Equal(t, 1, stats.Sent)
}

func TestDriverBudgetDefersAndResumes(t *testing.T) {
	_, _, d, a := primed(t, pushmodel.DefaultConfig())
	d.CompareBudget = 2

	a.SetAllAmmo([4]int32{1, 2, 3, 4})
	stats := d.Tick()
	assert.Equal(t, 2, stats.Deferred)
	assert.Equal(t, 2, stats.Sent)

	v, _ := d.Shadow(a.Key(), sim.ActorAmmo+3)
	assert.Equal(t, int32(0), v, "deferred element not sent yet")

	stats = d.Tick()
	assert.Zero(t, stats.Deferred)
	assert.Equal(t, 2, stats.Sent)
	for i := 0; i < 4; i++ {
		v, _ := d.Shadow(a.Key(), sim.ActorAmmo+pushmodel.PropertyIndex(i))
		assert.Equal(t, int32(i+1), v)
	}
}

func TestDriverBudgetReachesEveryObject(t *testing.T) {
	m := pushmodel.New(pushmodel.DefaultConfig())
	w := sim.NewWorld(m)
	d := sim.NewNetDriver("d", m)
	for i := 0; i < 10; i++ {
		require.NoError(t, d.Open(w.Spawn(fmt.Sprintf("actor-%d", i))))
	}
	d.Tick()
	d.CompareBudget = 4

	actors := w.Actors()
	for _, a := range actors {
		a.SetHealth(42)
	}

	assert.Equal(t, 6, d.Tick().Deferred)
	assert.Equal(t, 2, d.Tick().Deferred)
	stats := d.Tick()
	assert.Zero(t, stats.Deferred)
	assert.Equal(t, 2, stats.Sent)

	for _, a := range actors {
		v, _ := d.Shadow(a.Key(), sim.ActorHealth)
		assert.Equal(t, int32(42), v, a.Key().String())
	}
}

func TestDriverBudgetIgnoresUntrackedCompares(t *testing.T) {
	m := pushmodel.New(pushmodel.DefaultConfig())
	w := sim.NewWorld(m)
	d := sim.NewNetDriver("d", m)
	for i := 0; i < 10; i++ {
		require.NoError(t, d.Open(w.Spawn(fmt.Sprintf("actor-%d", i))))
	}
	d.Tick()
	d.CompareBudget = 4

	actors := w.Actors()
	last := actors[len(actors)-1]
	last.SetHealth(42)

	stats := d.Tick()
	assert.Zero(t, stats.Deferred)
	v, _ := d.Shadow(last.Key(), sim.ActorHealth)
	assert.Equal(t, int32(42), v)
}

func TestDriversAreIndependent(t *testing.T) {
	m, w, d1, a := primed(t, pushmodel.DefaultConfig())
	d2 := sim.NewNetDriver("d2", m)
	require.NoError(t, d2.Open(a))
	d2.Tick()

	a.SetTeam(2)
	assert.Equal(t, 1, d1.Tick().Sent)

	a.SetShield(10)
	stats := d2.Tick()
	assert.Equal(t, 2, stats.Sent, "d2 sees team and shield")

	d1.Close(a.Key())
	assert.False(t, d1.Replicating(a.Key()))
	assert.True(t, d2.Replicating(a.Key()))

	w.CollectGarbage()
	assert.Equal(t, 1, m.Stats().TrackedObjects)
}

func TestDriverDisabledComparesEverything(t *testing.T) {
	_, _, d, a := primed(t, pushmodel.Config{})

	a.SetHealth(5)
	stats := d.Tick()
	assert.Equal(t, 1, stats.FullScans)
	assert.Equal(t, sim.NumActorProperties, stats.Compared)
	assert.Equal(t, 1, stats.Sent)
}

func TestDriverRevalidatesAfterSweep(t *testing.T) {
	m, w, d, _ := primed(t, pushmodel.DefaultConfig())
	defer m.Attach(w)()

	w.CollectGarbage()
	assert.Equal(t, 1, d.Tick().Revalidated)
	assert.Zero(t, d.Tick().Revalidated)
}

func TestDriverReopenBeforeSweepKeepsPushID(t *testing.T) {
	m, _, d, a := primed(t, pushmodel.DefaultConfig())
	id, ok := m.Lookup(a.Key())
	require.True(t, ok)

	d.Close(a.Key())
	a.SetHealth(1)
	require.NoError(t, d.Open(a))

	again, ok := m.Lookup(a.Key())
	require.True(t, ok)
	assert.Equal(t, id, again)

	stats := d.Tick()
	assert.Equal(t, 1, stats.FullScans, "a reopened channel starts from scratch")
	v, _ := d.Shadow(a.Key(), sim.ActorHealth)
	assert.Equal(t, int32(1), v)
}

func TestDriverCloseAll(t *testing.T) {
	m := pushmodel.New(pushmodel.DefaultConfig())
	w := sim.NewWorld(m)
	d := sim.NewNetDriver("d", m)
	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, d.Open(w.Spawn(name)))
	}
	assert.Equal(t, 3, d.Len())
	assert.Equal(t, 3, m.Stats().Drivers)

	d.CloseAll()
	assert.Zero(t, d.Len())
	assert.Zero(t, m.Stats().Drivers)
}

func TestActorPropertyLayout(t *testing.T) {
	m := pushmodel.New(pushmodel.DefaultConfig())
	a := sim.NewActor(m, sim.KeyFor("x", 1))
	a.SetAmmo(2, 9)
	a.SetDisplayName("x")

	assert.Equal(t, int32(9), a.Property(sim.ActorAmmo+2))
	assert.Equal(t, "x", a.Property(sim.ActorDisplayName))
	assert.Nil(t, a.Property(sim.NumActorProperties))
	assert.True(t, a.IsAuthored(sim.ActorScore))
	assert.False(t, a.IsAuthored(sim.ActorAmmoLast))
}
