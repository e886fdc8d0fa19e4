package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/delaneyj/pushmodel/pushmodel"
	"github.com/delaneyj/pushmodel/sim"
	"github.com/dustin/go-humanize"
	"github.com/getsentry/sentry-go"
	jsoniter "github.com/json-iterator/go"
	"github.com/urfave/cli/v3"
)

const (
	enabledKey          = "enabled"
	makeBPPropertiesKey = "make-bp-properties"
	actorsKey           = "actors"
	driversKey          = "drivers"
	ticksKey            = "ticks"
	mutationsKey        = "mutations"
	gcEveryKey          = "gc-every"
	respawnEveryKey     = "respawn-every"
	reattachEveryKey    = "reattach-every"
	budgetKey           = "budget"
	settleKey           = "settle-ticks"
	seedKey             = "seed"
	strictKey           = "strict"
	verboseKey          = "verbose"
	jsonKey             = "json"
	sentryDSNKey        = "sentry-dsn"
)

func main() {
	def := sim.DefaultScenarioConfig()
	cmd := &cli.Command{
		Name:  "pushsim",
		Usage: "Replicate a simulated world with push model dirty tracking",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    enabledKey,
				Usage:   "Track dirty properties instead of comparing everything",
				Value:   true,
				Sources: cli.EnvVars("PUSHMODEL_ENABLED"),
			},
			&cli.BoolFlag{
				Name:    makeBPPropertiesKey,
				Usage:   "Track authored properties too",
				Sources: cli.EnvVars("PUSHMODEL_MAKE_BP_PROPERTIES"),
			},
			&cli.UintFlag{Name: actorsKey, Usage: "Actors in the world", Value: uint64(def.Actors)},
			&cli.UintFlag{Name: driversKey, Usage: "Net drivers replicating the world", Value: uint64(def.Drivers)},
			&cli.UintFlag{Name: ticksKey, Usage: "Replication ticks to run", Value: uint64(def.Ticks)},
			&cli.UintFlag{Name: mutationsKey, Usage: "Property writes per tick", Value: uint64(def.MutationsPerTick)},
			&cli.UintFlag{Name: gcEveryKey, Usage: "Ticks between garbage collections, 0 disables", Value: uint64(def.GCEvery)},
			&cli.UintFlag{Name: respawnEveryKey, Usage: "Ticks between actor respawns, 0 disables", Value: uint64(def.RespawnEvery)},
			&cli.UintFlag{Name: reattachEveryKey, Usage: "Ticks between driver reattaches, 0 disables", Value: uint64(def.ReattachEvery)},
			&cli.UintFlag{Name: budgetKey, Usage: "Dirty property comparisons per driver tick, 0 is unlimited"},
			&cli.UintFlag{Name: settleKey, Usage: "Idle ticks after the run so budgeted drivers can catch up"},
			&cli.IntFlag{Name: seedKey, Usage: "Random seed", Value: def.Seed},
			&cli.BoolFlag{Name: strictKey, Usage: "Panic on contract violations", Value: true},
			&cli.BoolFlag{Name: verboseKey, Usage: "Log manager diagnostics"},
			&cli.BoolFlag{Name: jsonKey, Usage: "Print the report as JSON"},
			&cli.StringFlag{
				Name:    sentryDSNKey,
				Usage:   "Report contract violations to Sentry",
				Sources: cli.EnvVars("SENTRY_DSN"),
			},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	cfg := sim.ScenarioConfig{
		Manager: pushmodel.Config{
			Enabled:                   cmd.Bool(enabledKey),
			MakeBPPropertiesPushModel: cmd.Bool(makeBPPropertiesKey),
		},
		Actors:           int(cmd.Uint(actorsKey)),
		Drivers:          int(cmd.Uint(driversKey)),
		Ticks:            int(cmd.Uint(ticksKey)),
		MutationsPerTick: int(cmd.Uint(mutationsKey)),
		GCEvery:          int(cmd.Uint(gcEveryKey)),
		RespawnEvery:     int(cmd.Uint(respawnEveryKey)),
		ReattachEvery:    int(cmd.Uint(reattachEveryKey)),
		CompareBudget:    int(cmd.Uint(budgetKey)),
		SettleTicks:      int(cmd.Uint(settleKey)),
		Seed:             cmd.Int(seedKey),
	}
	if cmd.Bool(verboseKey) {
		cfg.Manager.Logger = log.Default()
	}

	reporting := false
	if dsn := cmd.String(sentryDSNKey); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: dsn}); err != nil {
			return fmt.Errorf("sentry init: %w", err)
		}
		defer sentry.Flush(2 * time.Second)
		reporting = true
	}

	strict := cmd.Bool(strictKey)
	cfg.Manager.OnViolation = func(v *pushmodel.ContractViolation) {
		if reporting {
			sentry.CaptureException(v)
		}
		if strict {
			pushmodel.PanicOnViolation(v)
		}
		log.Print(v)
	}

	log.Printf("Running %d ticks over %d actors with %d drivers, push model %v",
		cfg.Ticks, cfg.Actors, cfg.Drivers, cfg.Manager.Enabled)
	report := sim.RunScenario(cfg)

	if cmd.Bool(jsonKey) {
		b, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(b))
	} else {
		printReport(report)
	}

	if report.Mismatches > 0 {
		return fmt.Errorf("%d properties out of sync after replication", report.Mismatches)
	}
	return nil
}

func printReport(r sim.ScenarioReport) {
	rep := r.Replication
	fmt.Printf("ticks          %s in %v\n", humanize.Comma(int64(r.Ticks)), r.Elapsed)
	fmt.Printf("mutations      %s\n", humanize.Comma(int64(r.Mutations)))
	fmt.Printf("compared       %s\n", humanize.Comma(int64(rep.Compared)))
	fmt.Printf("sent           %s\n", humanize.Comma(int64(rep.Sent)))
	fmt.Printf("full scans     %s\n", humanize.Comma(int64(rep.FullScans)))
	fmt.Printf("deferred       %s\n", humanize.Comma(int64(rep.Deferred)))
	fmt.Printf("revalidated    %s\n", humanize.Comma(int64(rep.Revalidated)))
	fmt.Printf("sweeps         %d, freed %d, collected %d\n", r.Sweeps, r.Freed, r.Collected)
	fmt.Printf("violations     %d\n", r.Violations)
	fmt.Printf("mismatches     %d\n", r.Mismatches)
	fmt.Printf("tracked        %d objects, %d drivers, %s\n",
		r.Final.TrackedObjects, r.Final.Drivers, humanize.Bytes(uint64(r.Final.ApproxBytes)))
}
