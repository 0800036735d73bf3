package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"slices"
	"strings"

	"github.com/udisondev/osrs-sim/internal/data"
	"github.com/udisondev/osrs-sim/internal/game/eval"
	"github.com/udisondev/osrs-sim/internal/model"
)

func cmdEval(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("eval")
	var src sources
	src.bind(fs, a)
	playerPath := fs.String("player", "", "player JSON file (required)")
	buildPath := fs.String("build", "", "build JSON file (required)")
	targetPath := fs.String("target", "", "target JSON file (required)")
	asJSON := fs.Bool("json", false, "print the result as JSON")
	explain := fs.Bool("explain", false, "print the effect breakdown")
	if ok, err := parseFlags(fs, args); !ok {
		return err
	}
	if *playerPath == "" || *buildPath == "" || *targetPath == "" {
		fmt.Fprintln(fs.Output(), "eval: --player, --build and --target are required")
		fs.Usage()
		return errUsage
	}

	k, err := src.kernel(ctx, a)
	if err != nil {
		return err
	}
	p, b, t, err := eval.ReadInputs(*playerPath, *buildPath, *targetPath)
	if err != nil {
		return err
	}
	l, err := k.Resolve(p, b, t)
	if err != nil {
		return err
	}
	res := k.Run(l)

	if *asJSON {
		return writeJSON(a.out, res)
	}
	printResult(a.out, res, k.Tick)
	if *explain {
		printExplain(a.out, l, res)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	return nil
}

func printResult(w io.Writer, res *eval.Result, tick *big.Rat) {
	seconds, _ := new(big.Rat).Mul(big.NewRat(res.Interval, 1), tick).Float64()

	fmt.Fprintln(w, "=== DPS Evaluation ===")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Target: %s\n", res.Target)
	fmt.Fprintf(w, "Style:  %s (%s)\n", res.Style, res.AttackType)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Results:")
	fmt.Fprintf(w, "  DPS:            %.4f\n", res.DPSFloat())
	fmt.Fprintf(w, "  Max Hit:        %d\n", res.MaxHit)
	if res.MinHit > 0 {
		fmt.Fprintf(w, "  Min Hit:        %d\n", res.MinHit)
	}
	if res.HitCount > 1 {
		fmt.Fprintf(w, "  Hits:           %d\n", res.HitCount)
	}
	fmt.Fprintf(w, "  Accuracy:       %.2f%% (%s)\n", res.AccuracyFloat()*100, res.Accuracy.RatString())
	fmt.Fprintf(w, "  Expected Hit:   %.4f\n", res.ExpectedFloat())
	fmt.Fprintf(w, "  Attack Roll:    %d\n", res.AttackRoll)
	fmt.Fprintf(w, "  Defence Roll:   %d\n", res.DefenceRoll)
	fmt.Fprintf(w, "  Attack Speed:   %d ticks (%.1fs)\n", res.Interval, seconds)
}

func printExplain(w io.Writer, l *eval.Loadout, res *eval.Result) {
	gear := l.Gear()

	fmt.Fprintln(w)
	fmt.Fprintln(w, "=== Breakdown ===")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Player:")
	for _, sk := range model.Skills {
		if l.Boosts[sk] == 0 {
			continue
		}
		fmt.Fprintf(w, "  %-9s %d %+d = %d\n", sk+":", l.Levels[sk], l.Boosts[sk], l.Visible(sk))
	}
	if len(l.Prayers) > 0 {
		names := make([]string, 0, len(l.Prayers))
		for _, p := range l.Prayers {
			names = append(names, p.Name)
		}
		fmt.Fprintf(w, "  Prayers:  %s\n", strings.Join(names, ", "))
		boosts := make([]data.PrayerBoost, 0, len(l.PrayerMult))
		for b := range l.PrayerMult {
			boosts = append(boosts, b)
		}
		slices.Sort(boosts)
		for _, b := range boosts {
			fmt.Fprintf(w, "    %s x%s\n", b, l.PrayerMult[b])
		}
	}
	fmt.Fprintf(w, "  Effective: attack %d, strength %d\n", res.Effective.Attack, res.Effective.Strength)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Equipment:")
	fmt.Fprintf(w, "  Weapon:   %s (%s, %d ticks)\n", l.Weapon.Name, l.Weapon.Weapon.WeaponType, l.Weapon.Weapon.AttackSpeed)
	fmt.Fprintf(w, "  Stance:   %s\n", l.Stance)
	if l.Spell != nil {
		fmt.Fprintf(w, "  Spell:    %s (base max hit %d)\n", l.Spell.Name, l.Spell.BaseMaxHit)
	}
	fmt.Fprintf(w, "  Attack (%s): %+d\n", l.AttackType, gear.AttackBonus(l.AttackType))
	fmt.Fprintf(w, "  Strength (%s): %+d\n", l.Style, gear.StrengthBonus(l.Style))

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Target:")
	fmt.Fprintf(w, "  Defence Level: %d\n", l.Target.DefenceLevel)
	if l.Style == model.StyleMagic {
		fmt.Fprintf(w, "  Magic Level:   %d\n", l.Target.MagicLevel)
	}
	fmt.Fprintf(w, "  Defence (%s): %+d\n", l.AttackType, l.Target.Defence.For(l.AttackType))
	fmt.Fprintf(w, "  Effective Defence: %d\n", res.Effective.Defence)
	if len(l.Target.Attributes) > 0 {
		fmt.Fprintf(w, "  Attributes: %s\n", strings.Join(l.Target.Attributes, ", "))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Effects:")
	if len(res.Breakdown) == 0 {
		fmt.Fprintln(w, "  (none)")
	}
	for _, ap := range res.Breakdown {
		fmt.Fprintf(w, "  [%s] %s: %s %d -> %d (%+d)\n",
			ap.Stage, ap.EffectID, ap.Stat, ap.Before, ap.After, ap.Delta())
	}
	for _, sp := range res.Suppressed {
		fmt.Fprintf(w, "  suppressed %s: group %s won by %s\n", sp.EffectID, sp.Group, sp.Winner)
	}
}
