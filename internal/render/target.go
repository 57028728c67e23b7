// Package render maps a palette artifact into each themeable application's
// native configuration representation.
package render

import (
	"fmt"
)

// Strategy selects how a target's destination file is produced.
type Strategy string

const (
	// StrategyCopy copies a file from the palette artifact bundle to the
	// destination, fully overwriting it. Used for targets whose entire
	// config is theme-derived.
	StrategyCopy Strategy = "verbatim-copy"

	// StrategyTemplate renders a template into the destination, fully
	// overwriting it. Used for targets with rich, mostly-static layout plus
	// a few themed fields.
	StrategyTemplate Strategy = "template-substitution"

	// StrategyKeyPatch rewrites only recognised Key=value lines in an
	// existing destination file, leaving every other line untouched.
	StrategyKeyPatch Strategy = "key-patch"
)

// Valid reports whether s is one of the known strategies.
func (s Strategy) Valid() bool {
	switch s {
	case StrategyCopy, StrategyTemplate, StrategyKeyPatch:
		return true
	}
	return false
}

// Target describes one consumer application's config file that must reflect
// the current palette. Targets are statically enumerated by deployment
// configuration, not user-extensible at runtime.
type Target struct {
	// Name identifies the target in logs and summaries.
	Name string `mapstructure:"name"`

	// Strategy selects the render strategy.
	Strategy Strategy `mapstructure:"strategy"`

	// Destination is the config file to produce.
	Destination string `mapstructure:"destination"`

	// Source names the artifact bundle file to copy (verbatim-copy only).
	Source string `mapstructure:"source"`

	// Template is the template to render (template-substitution only):
	// either a filesystem path, which takes precedence, or the name of a
	// built-in template.
	Template string `mapstructure:"template"`

	// Keys maps config keys to palette slot references (key-patch only),
	// e.g. ForegroundNormal -> foreground. Values are written as decimal
	// RGB triplets, the form key-value settings files expect.
	Keys map[string]string `mapstructure:"keys"`

	// Process optionally names the managed process that must be bounced
	// after this target is re-rendered.
	Process string `mapstructure:"process"`
}

// Validate checks that the target is complete for its strategy.
func (t Target) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("target has no name")
	}
	if !t.Strategy.Valid() {
		return fmt.Errorf("target %s: unknown strategy %q", t.Name, t.Strategy)
	}
	if t.Destination == "" {
		return fmt.Errorf("target %s: no destination path", t.Name)
	}

	switch t.Strategy {
	case StrategyCopy:
		if t.Source == "" {
			return fmt.Errorf("target %s: verbatim-copy requires a source file", t.Name)
		}
	case StrategyTemplate:
		if t.Template == "" {
			return fmt.Errorf("target %s: template-substitution requires a template", t.Name)
		}
	case StrategyKeyPatch:
		if len(t.Keys) == 0 {
			return fmt.Errorf("target %s: key-patch requires at least one key", t.Name)
		}
	}

	return nil
}
