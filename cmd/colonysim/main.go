// Command colonysim runs the autonomous colony simulation: a tick-driven
// world where role-bound creatures select and execute tasks against live
// objects, with cross-tick state persisted to SQLite.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"colonymind/internal/engine"
	"colonymind/internal/persistence"
	"colonymind/internal/relation"
	"colonymind/internal/role"
	"colonymind/internal/tuning"
	"colonymind/internal/world"
)

func main() {
	var (
		configPath = flag.String("config", "tuning.yaml", "tuning file")
		dataDir    = flag.String("data", "data", "state directory")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := tuning.Load(*configPath)
	if err != nil {
		slog.Error("failed to load tuning", "error", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(*dataDir, 0o755); err != nil {
		slog.Error("failed to create data dir", "error", err)
		os.Exit(1)
	}
	db, err := persistence.Open(filepath.Join(*dataDir, "colony.db"))
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// The world regenerates deterministically from the seed; only the
	// record map and tick counter are restored across runs.
	seed := cfg.Seed
	if v, err := db.GetMeta("seed"); err == nil {
		if s, err := strconv.ParseInt(v, 10, 64); err == nil && s != 0 {
			seed = s
		}
	}

	w := world.New(world.Config{
		Gen: world.GenConfig{
			Width:  cfg.WorldWidth,
			Height: cfg.WorldHeight,
			Seed:   seed,
		},
		SourceCount:   cfg.SourceCount,
		SiteCount:     cfg.SiteCount,
		InvasionEvery: cfg.InvasionEveryTicks,
	})
	db.SetMeta("seed", strconv.FormatInt(w.Seed, 10))

	var store *relation.Store
	startTick := uint64(0)
	if db.HasState() {
		recs, err := db.LoadRecords()
		if err != nil {
			slog.Error("failed to load records", "error", err)
			os.Exit(1)
		}
		store = relation.Restore(w, recs)
		startTick = db.LastTick()
		slog.Info("state restored", "records", len(recs), "tick", startTick)
	} else {
		store = relation.NewStore(w)
		slog.Info("fresh colony started", "seed", w.Seed)
	}

	registry := role.NewRegistry(
		role.Harvester(cfg.Quota("harvester"), cfg.RenewBelowTTL),
		role.Courier(cfg.Quota("courier"), cfg.RenewBelowTTL),
		role.Builder(cfg.Quota("builder"), cfg.RenewBelowTTL),
		role.Upgrader(cfg.Quota("upgrader"), cfg.RenewBelowTTL),
		role.Defender(cfg.Quota("defender"), cfg.RenewBelowTTL),
		role.Medic(cfg.Quota("medic"), cfg.RenewBelowTTL),
	)

	sim := engine.New(w, store, registry)
	sim.ReconcileEvery = cfg.ReconcileEveryTicks
	sim.ReportEvery = cfg.ReportEveryTicks

	save := func(tick uint64) {
		if err := db.SaveRecords(store.Records()); err != nil {
			slog.Error("failed to save records", "error", err)
			return
		}
		if err := db.SaveEvents(sim.Events); err != nil {
			slog.Error("failed to save events", "error", err)
			return
		}
		sim.Events = sim.Events[:0]
		db.SetTick(tick)
	}

	loop := engine.NewLoop()
	loop.Tick = startTick
	loop.Speed = cfg.Speed
	loop.Interval = time.Duration(cfg.TickIntervalMs) * time.Millisecond
	loop.OnTick = func(tick uint64) {
		sim.Tick(tick)
		save(tick)

		if cfg.SnapshotEveryTicks > 0 && tick%cfg.SnapshotEveryTicks == 0 {
			path := filepath.Join(*dataDir, fmt.Sprintf("snapshot-%d.json.zst", tick))
			snap := persistence.BuildSnapshot(w, store, tick)
			if err := persistence.WriteSnapshot(path, snap); err != nil {
				slog.Error("failed to write snapshot", "error", err)
			} else {
				slog.Info("snapshot written", "path", path, "tick", tick)
			}
		}
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		slog.Info("shutdown requested")
		loop.Stop()
	}()

	loop.Run()
	save(loop.Tick)
	slog.Info("colony saved", "tick", loop.Tick)
}
