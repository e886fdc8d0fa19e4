package sim_test

import (
	"testing"

	"github.com/delaneyj/pushmodel/pushmodel"
	"github.com/delaneyj/pushmodel/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallScenario() sim.ScenarioConfig {
	cfg := sim.DefaultScenarioConfig()
	cfg.Actors = 40
	cfg.Ticks = 120
	return cfg
}

func TestScenarioStaysInSync(t *testing.T) {
	report := sim.RunScenario(smallScenario())

	assert.Equal(t, 120, report.Ticks)
	assert.Zero(t, report.Mismatches)
	assert.Zero(t, report.Violations)
	assert.Equal(t, 4, report.Sweeps)
	assert.Equal(t, 12, report.Collected)
	assert.Equal(t, report.Collected, report.Freed)
	assert.Positive(t, report.Replication.Revalidated)
	assert.Equal(t, 40, report.Final.TrackedObjects)
	assert.Equal(t, 80, report.Final.Drivers)
}

func TestScenarioPushModelComparesLess(t *testing.T) {
	push := sim.RunScenario(smallScenario())

	cfg := smallScenario()
	cfg.Manager.Enabled = false
	full := sim.RunScenario(cfg)

	require.Zero(t, full.Mismatches)
	assert.Zero(t, full.Final.TrackedObjects)
	assert.Less(t, push.Replication.Compared, full.Replication.Compared)
	assert.Equal(t, full.Replication.Objects, full.Replication.FullScans)
}

func TestScenarioAuthoredPushModel(t *testing.T) {
	cfg := smallScenario()
	cfg.Manager.MakeBPPropertiesPushModel = true
	bp := sim.RunScenario(cfg)

	plain := sim.RunScenario(smallScenario())

	assert.Zero(t, bp.Mismatches)
	assert.Zero(t, bp.Violations)
	assert.Less(t, bp.Replication.Compared, plain.Replication.Compared)
}

func TestScenarioBudgetDefers(t *testing.T) {
	cfg := smallScenario()
	cfg.CompareBudget = 8
	report := sim.RunScenario(cfg)

	assert.Positive(t, report.Replication.Deferred)
	assert.Zero(t, report.Violations)
}

func TestScenarioBudgetDrainsWhenIdle(t *testing.T) {
	cfg := smallScenario()
	cfg.CompareBudget = 8
	// 40 actors with 8 push based properties each drain in 40 ticks
	cfg.SettleTicks = 60
	report := sim.RunScenario(cfg)

	assert.Positive(t, report.Replication.Deferred)
	assert.Zero(t, report.Mismatches)
	assert.Zero(t, report.Final.PendingObjects)
}

func TestScenarioIsDeterministic(t *testing.T) {
	a := sim.RunScenario(smallScenario())
	b := sim.RunScenario(smallScenario())
	assert.Equal(t, a.Replication, b.Replication)
	assert.Equal(t, a.Final, b.Final)
}

func TestScenarioCountsViolations(t *testing.T) {
	var seen []*pushmodel.ContractViolation
	cfg := smallScenario()
	cfg.Manager.OnViolation = func(v *pushmodel.ContractViolation) {
		seen = append(seen, v)
	}
	report := sim.RunScenario(cfg)
	assert.Equal(t, len(seen), report.Violations)
}
