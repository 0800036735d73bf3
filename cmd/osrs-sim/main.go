package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/udisondev/osrs-sim/internal/config"
)

const ConfigPath = "config/osrs-sim.yaml"

// command is one osrs-sim subcommand.
type command struct {
	name  string
	usage string
	run   func(ctx context.Context, a *app, args []string) error
}

var commands = []command{
	{name: "eval", usage: "evaluate DPS for a player, build and target", run: cmdEval},
	{name: "batch", usage: "score and rank many candidates concurrently", run: cmdBatch},
	{name: "validate-data", usage: "check the item, monster and effect catalogs", run: cmdValidateData},
	{name: "item-info", usage: "show one catalog item", run: cmdItemInfo},
	{name: "monster-info", usage: "show one catalog monster", run: cmdMonsterInfo},
	{name: "snapshot", usage: "save, list or verify catalog snapshots in PostgreSQL", run: cmdSnapshot},
	{name: "schema", usage: "print the JSON Schema of an input document", run: cmdSchema},
}

// errUsage is returned after usage text has been printed.
var errUsage = errors.New("invalid usage")

// app carries what every subcommand needs.
type app struct {
	cfg config.Sim
	out io.Writer
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx, os.Args[1:]); err != nil {
		if !errors.Is(err, errUsage) {
			slog.Error("fatal", "err", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	cfgPath := ConfigPath
	if p := os.Getenv("OSRS_SIM_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadSim(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// stdout занят результатами, логи идут в stderr
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))
	slog.Debug("config loaded", "path", cfgPath, "data_dir", cfg.DataDir, "tick_ms", cfg.TickMillis)

	return dispatch(ctx, &app{cfg: cfg, out: os.Stdout}, args)
}

func dispatch(ctx context.Context, a *app, args []string) error {
	if len(args) == 0 {
		printUsage(os.Stderr)
		return errUsage
	}
	name := args[0]
	if name == "help" || name == "-h" || name == "--help" {
		printUsage(a.out)
		return nil
	}
	for _, c := range commands {
		if c.name == name {
			return c.run(ctx, a, args[1:])
		}
	}
	fmt.Fprintf(os.Stderr, "unknown command %q\n\n", name)
	printUsage(os.Stderr)
	return errUsage
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: osrs-sim <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, c := range commands {
		fmt.Fprintf(w, "  %-14s %s\n", c.name, c.usage)
	}
}

// newFlagSet returns a flag set that reports errors instead of exiting.
func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	return fs
}

// parseFlags parses args and maps -h to a nil error.
func parseFlags(fs *flag.FlagSet, args []string) (bool, error) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return false, nil
		}
		return false, errUsage
	}
	return true, nil
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
