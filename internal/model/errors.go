package model

import "fmt"

// ValidationError reports a malformed input shape: an unknown slot, a missing
// weapon, an invalid enum value. It is returned before any computation runs.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ResolutionError reports an unknown catalog identifier or an unmet equip
// requirement. It is returned before stat aggregation.
type ResolutionError struct {
	Kind   string // "item", "monster", "prayer", "potion", "spell"
	ID     string
	Reason string
	Err    error
}

func (e *ResolutionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("resolving %s %s: %s: %v", e.Kind, e.ID, e.Reason, e.Err)
	}
	return fmt.Sprintf("resolving %s %s: %s", e.Kind, e.ID, e.Reason)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// ConfigurationError reports a malformed catalog or effect definition found at
// load time. Callers treat it as fatal at startup.
type ConfigurationError struct {
	Source string // file or section the definition came from
	ID     string // offending definition id, empty when not applicable
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("configuration %s: %s: %s", e.Source, e.ID, e.Reason)
	}
	return fmt.Sprintf("configuration %s: %s", e.Source, e.Reason)
}
