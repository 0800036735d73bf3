package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/udisondev/osrs-sim/internal/model"
)

func cmdValidateData(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("validate-data")
	var src sources
	src.bind(fs, a)
	if ok, err := parseFlags(fs, args); !ok {
		return err
	}

	store, err := src.store(ctx, a)
	if err != nil {
		return err
	}
	effects, err := src.effects()
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Loaded %d items\n", store.ItemCount())
	fmt.Fprintf(a.out, "Loaded %d monsters\n", store.MonsterCount())
	fmt.Fprintf(a.out, "Loaded %d effects in %d exclusivity groups\n", effects.Len(), len(effects.Groups()))

	warnings := store.Validate()
	for _, w := range warnings {
		fmt.Fprintf(a.out, "Warning: %s\n", w)
	}
	if len(warnings) > 0 {
		fmt.Fprintf(a.out, "\nFound %d warnings\n", len(warnings))
		return nil
	}
	fmt.Fprintln(a.out, "All data validated successfully")
	return nil
}

// parseID reads the single positional id argument.
func parseID(what string, rest []string) (int32, error) {
	if len(rest) != 1 {
		return 0, &model.ValidationError{Field: what, Reason: "exactly one id is required"}
	}
	id, err := strconv.ParseInt(rest[0], 10, 32)
	if err != nil || id <= 0 {
		return 0, &model.ValidationError{Field: what, Reason: fmt.Sprintf("invalid id %q", rest[0])}
	}
	return int32(id), nil
}

func cmdItemInfo(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("item-info")
	var src sources
	src.bind(fs, a)
	if ok, err := parseFlags(fs, args); !ok {
		return err
	}
	id, err := parseID("item", fs.Args())
	if err != nil {
		return err
	}
	store, err := src.store(ctx, a)
	if err != nil {
		return err
	}
	item, err := store.LookupItem(id)
	if err != nil {
		return err
	}
	printItem(a.out, item)
	return nil
}

func printItem(w io.Writer, item model.ItemStats) {
	fmt.Fprintf(w, "=== Item: %s (ID: %d) ===\n", item.Name, item.ID)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Equipable: %t\n", item.Equipable)
	fmt.Fprintf(w, "Is Weapon: %t\n", item.EquipableWeapon)

	if eq := item.Equipment; eq != nil {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Equipment Stats:")
		fmt.Fprintf(w, "  Slot: %s\n", eq.Slot)
		fmt.Fprintln(w)
		fmt.Fprintln(w, "  Attack Bonuses:")
		fmt.Fprintf(w, "    Stab:   %+d\n", eq.AttackStab)
		fmt.Fprintf(w, "    Slash:  %+d\n", eq.AttackSlash)
		fmt.Fprintf(w, "    Crush:  %+d\n", eq.AttackCrush)
		fmt.Fprintf(w, "    Magic:  %+d\n", eq.AttackMagic)
		fmt.Fprintf(w, "    Ranged: %+d\n", eq.AttackRanged)
		fmt.Fprintln(w)
		fmt.Fprintln(w, "  Defence Bonuses:")
		fmt.Fprintf(w, "    Stab:   %+d\n", eq.DefenceStab)
		fmt.Fprintf(w, "    Slash:  %+d\n", eq.DefenceSlash)
		fmt.Fprintf(w, "    Crush:  %+d\n", eq.DefenceCrush)
		fmt.Fprintf(w, "    Magic:  %+d\n", eq.DefenceMagic)
		fmt.Fprintf(w, "    Ranged: %+d\n", eq.DefenceRanged)
		fmt.Fprintln(w)
		fmt.Fprintln(w, "  Other:")
		fmt.Fprintf(w, "    Melee Str:  %+d\n", eq.MeleeStrength)
		fmt.Fprintf(w, "    Ranged Str: %+d\n", eq.RangedStrength)
		fmt.Fprintf(w, "    Magic Dmg:  %d%%\n", eq.MagicDamage)
		fmt.Fprintf(w, "    Prayer:     %+d\n", eq.Prayer)
		if len(eq.Requirements) > 0 {
			fmt.Fprintln(w)
			fmt.Fprintln(w, "  Requirements:")
			for _, sk := range model.Skills {
				if lvl, ok := eq.Requirements[sk]; ok {
					fmt.Fprintf(w, "    %s %d\n", sk, lvl)
				}
			}
		}
	}

	if wpn := item.Weapon; wpn != nil {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Weapon Data:")
		fmt.Fprintf(w, "  Attack Speed: %d ticks\n", wpn.AttackSpeed)
		fmt.Fprintf(w, "  Weapon Type:  %s\n", wpn.WeaponType)
		fmt.Fprintln(w)
		fmt.Fprintln(w, "  Stances:")
		for _, st := range wpn.Stances {
			fmt.Fprintf(w, "    - %s (%s, %s) -> %s XP\n", st.CombatStyle, st.AttackType, st.AttackStyle, st.Experience)
		}
	}
}

func cmdMonsterInfo(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("monster-info")
	var src sources
	src.bind(fs, a)
	if ok, err := parseFlags(fs, args); !ok {
		return err
	}
	id, err := parseID("monster", fs.Args())
	if err != nil {
		return err
	}
	store, err := src.store(ctx, a)
	if err != nil {
		return err
	}
	m, err := store.LookupMonster(id)
	if err != nil {
		return err
	}
	printMonster(a.out, m)
	return nil
}

func printMonster(w io.Writer, m model.MonsterStats) {
	fmt.Fprintf(w, "=== Monster: %s (ID: %d) ===\n", m.Name, m.ID)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Combat Level: %d\n", m.CombatLevel)
	fmt.Fprintf(w, "Hitpoints:    %d\n", m.Hitpoints)
	fmt.Fprintf(w, "Size:         %d\n", m.Size)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Combat Stats:")
	fmt.Fprintf(w, "  Attack:   %d\n", m.AttackLevel)
	fmt.Fprintf(w, "  Strength: %d\n", m.StrengthLevel)
	fmt.Fprintf(w, "  Defence:  %d\n", m.DefenceLevel)
	fmt.Fprintf(w, "  Magic:    %d\n", m.MagicLevel)
	fmt.Fprintf(w, "  Ranged:   %d\n", m.RangedLevel)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Defence Bonuses:")
	fmt.Fprintf(w, "  Stab:   %+d\n", m.DefenceStab)
	fmt.Fprintf(w, "  Slash:  %+d\n", m.DefenceSlash)
	fmt.Fprintf(w, "  Crush:  %+d\n", m.DefenceCrush)
	fmt.Fprintf(w, "  Magic:  %+d\n", m.DefenceMagic)
	fmt.Fprintf(w, "  Ranged: %+d\n", m.DefenceRanged)

	if len(m.Attributes) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Attributes: %s\n", strings.Join(m.Attributes, ", "))
	}
	if len(m.Category) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Categories: %s\n", strings.Join(m.Category, ", "))
	}
	if m.SlayerMonster {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Slayer Info:")
		fmt.Fprintf(w, "  Slayer Level Required: %d\n", m.SlayerLevel)
	}
}
