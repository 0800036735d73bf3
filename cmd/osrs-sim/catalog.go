package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"

	"github.com/udisondev/osrs-sim/internal/data"
	"github.com/udisondev/osrs-sim/internal/db"
	"github.com/udisondev/osrs-sim/internal/game/effect"
	"github.com/udisondev/osrs-sim/internal/game/eval"
)

// sources are the catalog locations for one invocation. Empty paths use the
// catalogs compiled into the binary.
type sources struct {
	dataDir     string
	effectsFile string
	snapshot    string // digest of a stored catalog snapshot
}

// bind registers the catalog flags, defaulting to the config values.
func (s *sources) bind(fs *flag.FlagSet, a *app) {
	fs.StringVar(&s.dataDir, "data-dir", a.cfg.DataDir, "item and monster catalog directory (default: embedded)")
	fs.StringVar(&s.effectsFile, "effects", a.cfg.EffectsFile, "effect catalog YAML file (default: embedded)")
	fs.StringVar(&s.snapshot, "snapshot", "", "digest of a catalog snapshot stored in the database")
}

func (s *sources) store(ctx context.Context, a *app) (*data.Store, error) {
	if s.snapshot != "" {
		if s.dataDir != "" {
			return nil, errors.New("--snapshot and --data-dir are mutually exclusive")
		}
		return s.snapshotStore(ctx, a)
	}
	if s.dataDir == "" {
		store, err := data.LoadEmbedded()
		if err != nil {
			return nil, fmt.Errorf("loading embedded catalog: %w", err)
		}
		return store, nil
	}
	store, err := data.LoadDir(s.dataDir)
	if err != nil {
		return nil, fmt.Errorf("loading catalog from %s: %w", s.dataDir, err)
	}
	return store, nil
}

func (s *sources) snapshotStore(ctx context.Context, a *app) (*data.Store, error) {
	database, err := db.New(ctx, a.cfg.Database.DSN())
	if err != nil {
		return nil, err
	}
	defer database.Close()

	snap, err := db.NewCatalogRepository(database.Pool()).Load(ctx, s.snapshot)
	if err != nil {
		return nil, fmt.Errorf("loading catalog snapshot: %w", err)
	}
	slog.Info("using catalog snapshot", "digest", s.snapshot, "items", len(snap.Items), "monsters", len(snap.Monsters))
	store, err := snap.Store()
	if err != nil {
		return nil, fmt.Errorf("checking catalog snapshot %s: %w", s.snapshot, err)
	}
	return store, nil
}

func (s *sources) effects() (*effect.Catalog, error) {
	var (
		cat *effect.Catalog
		err error
	)
	if s.effectsFile == "" {
		cat, err = data.LoadEffects()
	} else {
		cat, err = data.LoadEffectsFile(s.effectsFile)
	}
	if err != nil {
		return nil, fmt.Errorf("loading effect catalog: %w", err)
	}
	return cat, nil
}

// kernel loads both catalogs and builds a kernel with the configured tick.
func (s *sources) kernel(ctx context.Context, a *app) (*eval.Kernel, error) {
	store, err := s.store(ctx, a)
	if err != nil {
		return nil, err
	}
	effects, err := s.effects()
	if err != nil {
		return nil, err
	}
	tick, err := eval.TickFromMillis(a.cfg.TickMillis)
	if err != nil {
		return nil, err
	}
	k := eval.NewKernel(store, effects)
	k.Tick = tick
	return k, nil
}
