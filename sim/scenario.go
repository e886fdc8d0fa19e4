package sim

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/delaneyj/pushmodel/pushmodel"
)

type ScenarioConfig struct {
	Manager pushmodel.Config

	Actors           int
	Drivers          int
	Ticks            int
	MutationsPerTick int
	// RespawnEvery destroys one actor and spawns a replacement every n ticks.
	RespawnEvery int
	// ReattachEvery makes the first driver close and reopen one actor every n
	// ticks, exercising reuse of tracking state before a sweep.
	ReattachEvery int
	GCEvery       int
	CompareBudget int
	// SettleTicks runs extra ticks with no mutations after the last tick. With
	// a compare budget, mismatches are counted once at the end of settling.
	SettleTicks int
	Seed        int64
}

func DefaultScenarioConfig() ScenarioConfig {
	return ScenarioConfig{
		Manager:          pushmodel.DefaultConfig(),
		Actors:           100,
		Drivers:          2,
		Ticks:            300,
		MutationsPerTick: 20,
		RespawnEvery:     10,
		ReattachEvery:    7,
		GCEvery:          30,
		Seed:             1,
	}
}

type ScenarioReport struct {
	Ticks       int
	Replication TickStats
	Mutations   int
	Sweeps      int
	Freed       int
	Collected   int
	Violations  int
	// Mismatches counts properties whose shadow differed from the live value
	// after a tick with no compare budget, or after settling with one. Always
	// zero when tracking is correct.
	Mismatches int
	Final      pushmodel.Stats
	Elapsed    time.Duration
}

// RunScenario drives a world through cfg.Ticks replication ticks.
func RunScenario(cfg ScenarioConfig) ScenarioReport {
	var report ScenarioReport

	onViolation := cfg.Manager.OnViolation
	cfg.Manager.OnViolation = func(v *pushmodel.ContractViolation) {
		report.Violations++
		if onViolation != nil {
			onViolation(v)
		}
	}

	var w *World
	cfg.Manager.IsAlive = func(k pushmodel.ObjectKey) bool {
		return w.IsAlive(k)
	}
	m := pushmodel.New(cfg.Manager)
	w = NewWorld(m)
	detach := m.Attach(w)
	defer detach()

	rng := rand.New(rand.NewSource(cfg.Seed))
	drivers := make([]*NetDriver, cfg.Drivers)
	for i := range drivers {
		drivers[i] = NewNetDriver(fmt.Sprintf("driver-%d", i), m)
		drivers[i].CompareBudget = cfg.CompareBudget
	}

	// Open only fails on contract violations, which the handler above counts.
	open := func(a *Actor) {
		for _, d := range drivers {
			_ = d.Open(a)
		}
	}
	spawned := 0
	spawn := func() *Actor {
		spawned++
		a := w.Spawn(fmt.Sprintf("actor-%d", spawned))
		open(a)
		return a
	}
	for i := 0; i < cfg.Actors; i++ {
		spawn()
	}

	start := time.Now()
	for tick := 1; tick <= cfg.Ticks; tick++ {
		actors := w.Actors()

		if cfg.RespawnEvery > 0 && tick%cfg.RespawnEvery == 0 && len(actors) > 0 {
			victim := actors[rng.Intn(len(actors))]
			for _, d := range drivers {
				d.Close(victim.Key())
			}
			w.Destroy(victim)
			spawn()
			actors = w.Actors()
		}

		if cfg.ReattachEvery > 0 && tick%cfg.ReattachEvery == 0 && len(drivers) > 0 && len(actors) > 0 {
			a := actors[rng.Intn(len(actors))]
			drivers[0].Close(a.Key())
			mutate(rng, a)
			_ = drivers[0].Open(a)
		}

		for i := 0; i < cfg.MutationsPerTick && len(actors) > 0; i++ {
			mutate(rng, actors[rng.Intn(len(actors))])
			report.Mutations++
		}

		for _, d := range drivers {
			report.Replication.Add(d.Tick())
			if cfg.CompareBudget == 0 {
				report.Mismatches += countMismatches(d, actors)
			}
		}

		if cfg.GCEvery > 0 && tick%cfg.GCEvery == 0 {
			before := m.Stats().TrackedObjects
			report.Collected += w.CollectGarbage()
			report.Freed += before - m.Stats().TrackedObjects
			report.Sweeps++
		}
		report.Ticks++
	}

	for tick := 0; tick < cfg.SettleTicks; tick++ {
		for _, d := range drivers {
			report.Replication.Add(d.Tick())
		}
	}
	if cfg.CompareBudget > 0 && cfg.SettleTicks > 0 {
		actors := w.Actors()
		for _, d := range drivers {
			report.Mismatches += countMismatches(d, actors)
		}
	}
	report.Elapsed = time.Since(start)
	report.Final = m.Stats()
	return report
}

func mutate(rng *rand.Rand, a *Actor) {
	switch rng.Intn(7) {
	case 0:
		a.SetHealth(rng.Int31n(100))
	case 1:
		a.SetShield(rng.Int31n(50))
	case 2:
		a.SetAmmo(rng.Intn(4), rng.Int31n(30))
	case 3:
		a.SetAllAmmo([4]int32{rng.Int31n(30), rng.Int31n(30), rng.Int31n(30), rng.Int31n(30)})
	case 4:
		a.SetDisplayName(fmt.Sprintf("player-%d", rng.Intn(16)))
	case 5:
		a.SetTeam(uint8(rng.Intn(4)))
	case 6:
		a.SetCrouched(!a.Crouched())
		a.SetScore(a.Score() + 1)
	}
}

func countMismatches(d *NetDriver, actors []*Actor) int {
	n := 0
	for _, a := range actors {
		for idx := 0; idx < a.NumProperties(); idx++ {
			pi := pushmodel.PropertyIndex(idx)
			if v, ok := d.Shadow(a.Key(), pi); ok && v != a.Property(pi) {
				n++
			}
		}
	}
	return n
}
