package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/udisondev/osrs-sim/internal/db"
)

// cmdSnapshot manages catalog snapshots:
//
//	osrs-sim snapshot save [--label L] [--data-dir D]
//	osrs-sim snapshot list
//	osrs-sim snapshot verify <digest> [--data-dir D]
//	osrs-sim snapshot delete <digest>
func cmdSnapshot(ctx context.Context, a *app, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: osrs-sim snapshot save|list|verify|delete [flags]")
		return errUsage
	}
	action, args := args[0], args[1:]
	switch action {
	case "save", "list", "verify", "delete":
	default:
		fmt.Fprintf(a.out, "unknown snapshot action %q\n", action)
		return errUsage
	}

	fs := newFlagSet("snapshot " + action)
	var src sources
	src.bind(fs, a)
	label := fs.String("label", "", "label stored with the snapshot (save)")
	if ok, err := parseFlags(fs, args); !ok {
		return err
	}

	database, err := db.New(ctx, a.cfg.Database.DSN())
	if err != nil {
		return err
	}
	defer database.Close()

	if err := db.RunMigrations(ctx, a.cfg.Database.DSN()); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	repo := db.NewCatalogRepository(database.Pool())

	switch action {
	case "save":
		store, err := src.store(ctx, a)
		if err != nil {
			return err
		}
		info, err := repo.Save(ctx, *label, store.Snapshot())
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "%s\n", info.Digest)
		return nil

	case "list":
		infos, err := repo.List(ctx)
		if err != nil {
			return err
		}
		return printSnapshots(a.out, infos)

	case "verify":
		digest, err := oneDigest(fs.Args())
		if err != nil {
			return err
		}
		stored, err := repo.Load(ctx, digest)
		if err != nil {
			return err
		}
		store, err := src.store(ctx, a)
		if err != nil {
			return err
		}
		current, err := store.Snapshot().Digest()
		if err != nil {
			return err
		}
		if current != digest {
			return fmt.Errorf("catalog differs from snapshot %s: %d items, %d monsters stored; current digest %s",
				digest, len(stored.Items), len(stored.Monsters), current)
		}
		fmt.Fprintf(a.out, "catalog matches snapshot %s\n", digest)
		return nil

	case "delete":
		digest, err := oneDigest(fs.Args())
		if err != nil {
			return err
		}
		if err := repo.Delete(ctx, digest); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "deleted %s\n", digest)
	}
	return nil
}

func oneDigest(rest []string) (string, error) {
	if len(rest) != 1 {
		return "", fmt.Errorf("exactly one snapshot digest is required, got %d", len(rest))
	}
	return rest[0], nil
}

func printSnapshots(w io.Writer, infos []db.SnapshotInfo) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DIGEST\tLABEL\tITEMS\tMONSTERS\tCREATED")
	for _, info := range infos {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n",
			info.Digest, info.Label, info.ItemCount, info.MonsterCount, info.CreatedAt.Format(time.RFC3339))
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("writing snapshot list: %w", err)
	}
	return nil
}
