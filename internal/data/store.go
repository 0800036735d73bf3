package data

import (
	"cmp"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"slices"
	"strings"

	"github.com/udisondev/osrs-sim/internal/model"
)

// ErrNotFound is returned by lookups for identifiers absent from the catalog.
var ErrNotFound = errors.New("not found")

//go:embed catalog
var catalogFS embed.FS

// Store is the read-only item and monster catalog.
// Safe for concurrent use once loaded.
type Store struct {
	items    map[int32]model.ItemStats
	monsters map[int32]model.MonsterStats
}

// NewStore builds a store from in-memory records and checks catalog integrity.
// Duplicate ids and records no evaluation could use are *model.ConfigurationError.
func NewStore(items []model.ItemStats, monsters []model.MonsterStats) (*Store, error) {
	s := &Store{
		items:    make(map[int32]model.ItemStats, len(items)),
		monsters: make(map[int32]model.MonsterStats, len(monsters)),
	}
	for _, it := range items {
		if _, dup := s.items[it.ID]; dup {
			return nil, &model.ConfigurationError{Source: "items", ID: fmt.Sprint(it.ID), Reason: "duplicate item id"}
		}
		if err := checkItem(it); err != nil {
			return nil, err
		}
		s.items[it.ID] = it
	}
	for _, m := range monsters {
		if _, dup := s.monsters[m.ID]; dup {
			return nil, &model.ConfigurationError{Source: "monsters", ID: fmt.Sprint(m.ID), Reason: "duplicate monster id"}
		}
		if err := checkMonster(m); err != nil {
			return nil, err
		}
		s.monsters[m.ID] = m
	}
	return s, nil
}

func checkItem(it model.ItemStats) error {
	fail := func(reason string) error {
		return &model.ConfigurationError{Source: "items", ID: fmt.Sprint(it.ID), Reason: reason}
	}
	if it.Equipable && it.Equipment == nil {
		return fail("equipable but has no equipment data")
	}
	if it.Weapon != nil && it.Weapon.AttackSpeed <= 0 {
		return fail(fmt.Sprintf("non-positive attack speed %d", it.Weapon.AttackSpeed))
	}
	if eq := it.Equipment; eq != nil {
		for _, v := range []int64{
			eq.AttackStab, eq.AttackSlash, eq.AttackCrush, eq.AttackMagic, eq.AttackRanged,
			eq.DefenceStab, eq.DefenceSlash, eq.DefenceCrush, eq.DefenceMagic, eq.DefenceRanged,
			eq.MeleeStrength, eq.RangedStrength, eq.MagicDamage, eq.Prayer,
		} {
			if v < -model.MaxGearBonus || v > model.MaxGearBonus {
				return fail(fmt.Sprintf("bonus %d out of range ±%d", v, model.MaxGearBonus))
			}
		}
	}
	return nil
}

func checkMonster(m model.MonsterStats) error {
	fail := func(reason string) error {
		return &model.ConfigurationError{Source: "monsters", ID: fmt.Sprint(m.ID), Reason: reason}
	}
	for _, v := range []int64{m.Hitpoints, m.Size, m.DefenceLevel, m.MagicLevel} {
		if v < 0 || v > model.MaxTargetValue {
			return fail(fmt.Sprintf("level %d out of range 0..%d", v, model.MaxTargetValue))
		}
	}
	for _, v := range []int64{m.DefenceStab, m.DefenceSlash, m.DefenceCrush, m.DefenceMagic, m.DefenceRanged} {
		if v < -model.MaxTargetValue || v > model.MaxTargetValue {
			return fail(fmt.Sprintf("defence bonus %d out of range ±%d", v, model.MaxTargetValue))
		}
	}
	return nil
}

// LoadEmbedded loads the catalog compiled into the binary.
func LoadEmbedded() (*Store, error) {
	sub, err := fs.Sub(catalogFS, "catalog")
	if err != nil {
		return nil, fmt.Errorf("opening embedded catalog: %w", err)
	}
	return LoadFS(sub)
}

// LoadDir loads items/*.json and monsters/*.json under dir.
func LoadDir(dir string) (*Store, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("opening data dir %s: %w", dir, err)
	}
	return LoadFS(os.DirFS(dir))
}

// LoadFS loads a catalog laid out as items/<id>.json and monsters/<id>.json.
// Files whose name starts with an underscore (indexes) are skipped.
func LoadFS(fsys fs.FS) (*Store, error) {
	items, err := loadRecords[model.ItemStats](fsys, "items")
	if err != nil {
		return nil, err
	}
	monsters, err := loadRecords[model.MonsterStats](fsys, "monsters")
	if err != nil {
		return nil, err
	}

	s, err := NewStore(items, monsters)
	if err != nil {
		return nil, err
	}

	slog.Info("loaded item catalog", "count", len(s.items))
	slog.Info("loaded monster catalog", "count", len(s.monsters))
	return s, nil
}

func loadRecords[T any](fsys fs.FS, dir string) ([]T, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	out := make([]T, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") || strings.HasPrefix(name, "_") {
			continue
		}
		raw, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("reading %s/%s: %w", dir, name, err)
		}
		var rec T
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, &model.ConfigurationError{Source: dir + "/" + name, Reason: fmt.Sprintf("parsing json: %v", err)}
		}
		out = append(out, rec)
	}
	return out, nil
}

// LookupItem returns the item with the given id.
func (s *Store) LookupItem(id int32) (model.ItemStats, error) {
	it, ok := s.items[id]
	if !ok {
		return model.ItemStats{}, fmt.Errorf("item %d: %w", id, ErrNotFound)
	}
	return it, nil
}

// LookupMonster returns the monster with the given id.
func (s *Store) LookupMonster(id int32) (model.MonsterStats, error) {
	m, ok := s.monsters[id]
	if !ok {
		return model.MonsterStats{}, fmt.Errorf("monster %d: %w", id, ErrNotFound)
	}
	return m, nil
}

// Items returns every item sorted by id.
func (s *Store) Items() []model.ItemStats {
	out := make([]model.ItemStats, 0, len(s.items))
	for _, it := range s.items {
		out = append(out, it)
	}
	slices.SortFunc(out, func(a, b model.ItemStats) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// Monsters returns every monster sorted by id.
func (s *Store) Monsters() []model.MonsterStats {
	out := make([]model.MonsterStats, 0, len(s.monsters))
	for _, m := range s.monsters {
		out = append(out, m)
	}
	slices.SortFunc(out, func(a, b model.MonsterStats) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// ItemCount returns the number of items.
func (s *Store) ItemCount() int { return len(s.items) }

// MonsterCount returns the number of monsters.
func (s *Store) MonsterCount() int { return len(s.monsters) }

// Warning is a non-fatal catalog defect reported by Validate.
type Warning struct {
	Kind   string // "item" or "monster"
	ID     int32
	Name   string
	Reason string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s %d (%s): %s", w.Kind, w.ID, w.Name, w.Reason)
}

// Validate reports catalog defects that NewStore tolerates but that make a
// record unusable in some evaluations. Warnings are sorted by kind, then id.
func (s *Store) Validate() []Warning {
	var out []Warning
	itemWarn := func(it model.ItemStats, reason string) {
		out = append(out, Warning{Kind: "item", ID: it.ID, Name: it.Name, Reason: reason})
	}

	for _, it := range s.Items() {
		if it.EquipableWeapon && it.Weapon == nil {
			itemWarn(it, "weapon but has no weapon data")
		}
		if it.Equipment != nil && it.Equipment.Slot != model.Slot2H {
			if _, err := model.ParseSlot(string(it.Equipment.Slot)); err != nil {
				itemWarn(it, fmt.Sprintf("unknown slot %q", it.Equipment.Slot))
			}
		}
		if it.Weapon != nil {
			for _, st := range it.Weapon.Stances {
				if _, err := model.ParseAttackType(string(st.AttackType)); err != nil {
					itemWarn(it, fmt.Sprintf("stance %q has unknown attack type %q", st.CombatStyle, st.AttackType))
				}
			}
		}
		if it.Equipment != nil {
			for sk := range it.Equipment.Requirements {
				if _, err := model.ParseSkill(string(sk)); err != nil {
					itemWarn(it, fmt.Sprintf("requirement on unknown skill %q", sk))
				}
			}
		}
	}

	for _, m := range s.Monsters() {
		if m.Hitpoints <= 0 {
			out = append(out, Warning{Kind: "monster", ID: m.ID, Name: m.Name, Reason: "has 0 hitpoints"})
		}
	}
	return out
}
