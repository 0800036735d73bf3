package eval

import (
	"fmt"
	"slices"

	"github.com/invopop/jsonschema"

	"github.com/udisondev/osrs-sim/internal/model"
)

var schemaDocs = map[string]struct {
	v     any
	title string
}{
	"player":     {&model.PlayerInput{}, "osrs-sim player"},
	"build":      {&model.BuildInput{}, "osrs-sim build"},
	"target":     {&model.TargetInput{}, "osrs-sim target"},
	"candidates": {&[]Candidate{}, "osrs-sim batch candidates"},
}

// SchemaKinds lists the input documents Schema can describe.
func SchemaKinds() []string {
	out := make([]string, 0, len(schemaDocs))
	for k := range schemaDocs {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// Schema returns the JSON Schema of one input document. Unknown properties
// are disallowed, matching Decode.
func Schema(kind string) (*jsonschema.Schema, error) {
	doc, ok := schemaDocs[kind]
	if !ok {
		return nil, &model.ValidationError{Field: "schema", Reason: fmt.Sprintf("unknown input kind %q", kind)}
	}
	r := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		DoNotReference:             true,
	}
	s := r.Reflect(doc.v)
	s.Title = doc.title
	return s, nil
}
