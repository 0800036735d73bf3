package eval

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/udisondev/osrs-sim/internal/model"
)

// Decode reads one JSON document into T. Unknown fields are rejected so a
// typo in an input file cannot silently fall back to a default.
func Decode[T any](r io.Reader, what string) (T, error) {
	var v T
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		return v, &model.ValidationError{Field: what, Reason: err.Error()}
	}
	return v, nil
}

// ReadFile decodes the JSON file at path into T.
func ReadFile[T any](path, what string) (T, error) {
	f, err := os.Open(path)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("reading %s %s: %w", what, path, err)
	}
	defer f.Close()
	return Decode[T](f, what)
}

// ReadInputs loads the three evaluation inputs from their files.
func ReadInputs(playerPath, buildPath, targetPath string) (model.PlayerInput, model.BuildInput, model.TargetInput, error) {
	p, err := ReadFile[model.PlayerInput](playerPath, "player")
	if err != nil {
		return p, model.BuildInput{}, model.TargetInput{}, err
	}
	b, err := ReadFile[model.BuildInput](buildPath, "build")
	if err != nil {
		return p, b, model.TargetInput{}, err
	}
	t, err := ReadFile[model.TargetInput](targetPath, "target")
	return p, b, t, err
}
