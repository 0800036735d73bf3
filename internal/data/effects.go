package data

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"github.com/udisondev/osrs-sim/internal/game/effect"
)

//go:embed effects.yaml
var effectsYAML []byte

// LoadEffects loads the effect catalog compiled into the binary.
func LoadEffects() (*effect.Catalog, error) {
	return effect.Load("effects.yaml", bytes.NewReader(effectsYAML))
}

// LoadEffectsFile loads an effect catalog from path.
func LoadEffectsFile(path string) (*effect.Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening effect catalog: %w", err)
	}
	defer f.Close()
	return effect.Load(path, f)
}
