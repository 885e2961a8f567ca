// Package scenario loads declarative conversation scripts from YAML
// files and builds harness sequences from them.
//
// Scenario documents are validated twice: against an embedded CUE schema
// (shape, enums, required fields) and by strict YAML decoding (unknown
// fields are typos). Step-level exclusivity rules are checked in Go so
// errors carry the step index.
package scenario

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueyaml "cuelang.org/go/encoding/yaml"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaCUE string

// Scenario is a declarative conversation script.
type Scenario struct {
	Name          string `yaml:"name"`
	Description   string `yaml:"description,omitempty"`
	Locale        string `yaml:"locale,omitempty"`
	ApplicationID string `yaml:"application_id"`
	UserID        string `yaml:"user_id"`
	Steps         []Step `yaml:"steps"`
}

// Step is one scripted turn. Exactly one of Launch, Intent, or
// SessionEnd must be set.
type Step struct {
	Launch     bool              `yaml:"launch,omitempty"`
	Intent     string            `yaml:"intent,omitempty"`
	Slots      map[string]string `yaml:"slots,omitempty"`
	SessionEnd string            `yaml:"session_end,omitempty"`

	Says             *string `yaml:"says,omitempty"`
	SaysNothing      bool    `yaml:"says_nothing,omitempty"`
	Reprompts        *string `yaml:"reprompts,omitempty"`
	RepromptsNothing bool    `yaml:"reprompts_nothing,omitempty"`
	ShouldEndSession *bool   `yaml:"should_end_session,omitempty"`
}

// Load reads, schema-validates, and decodes a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario file: %w", err)
	}

	if err := validateSchema(path, data); err != nil {
		return nil, err
	}

	// Strict decoding catches typos the open-ended YAML node tree would
	// silently drop.
	var s Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&s); err != nil {
		return nil, fmt.Errorf("parse scenario YAML: %w", err)
	}

	if err := validate(&s); err != nil {
		return nil, fmt.Errorf("invalid scenario %q: %w", s.Name, err)
	}
	return &s, nil
}

// validateSchema unifies the document with the embedded #Scenario
// definition and reports any constraint violation.
func validateSchema(path string, data []byte) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE)
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile scenario schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Scenario"))
	if err := def.Err(); err != nil {
		return fmt.Errorf("lookup #Scenario: %w", err)
	}

	file, err := cueyaml.Extract(path, data)
	if err != nil {
		return fmt.Errorf("parse scenario YAML: %w", err)
	}
	doc := ctx.BuildFile(file)
	if err := doc.Err(); err != nil {
		return fmt.Errorf("build scenario document: %w", err)
	}

	if err := def.Unify(doc).Validate(cue.Final(), cue.Concrete(true)); err != nil {
		return fmt.Errorf("scenario failed schema validation: %w", err)
	}
	return nil
}

// validate enforces the rules the CUE schema leaves to Go: per-step
// request-kind exclusivity and contradictory expectation pairs.
func validate(s *Scenario) error {
	for i, step := range s.Steps {
		kinds := 0
		if step.Launch {
			kinds++
		}
		if step.Intent != "" {
			kinds++
		}
		if step.SessionEnd != "" {
			kinds++
		}
		if kinds != 1 {
			return fmt.Errorf("steps[%d]: exactly one of launch, intent, or session_end is required", i)
		}

		if step.Slots != nil && step.Intent == "" {
			return fmt.Errorf("steps[%d]: slots require an intent", i)
		}
		if step.Says != nil && step.SaysNothing {
			return fmt.Errorf("steps[%d]: says and says_nothing are mutually exclusive", i)
		}
		if step.Reprompts != nil && step.RepromptsNothing {
			return fmt.Errorf("steps[%d]: reprompts and reprompts_nothing are mutually exclusive", i)
		}
	}
	return nil
}
