// Package schema validates the agentready configuration file against an
// embedded CUE schema before it is unmarshaled, so malformed configs are
// rejected with field-level messages instead of surfacing later as zero
// values.
package schema

import (
	"embed"
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed schemas/*.cue
var schemaFS embed.FS

var (
	loadOnce   sync.Once
	loadErr    error
	configDef  cue.Value
	cueContext *cue.Context
)

// load compiles the embedded config schema once per process.
func load() {
	cueContext = cuecontext.New()

	content, err := schemaFS.ReadFile("schemas/config.cue")
	if err != nil {
		loadErr = fmt.Errorf("reading embedded config schema: %w", err)
		return
	}

	inst := cueContext.CompileBytes(content, cue.Filename("config.cue"))
	if err := inst.Err(); err != nil {
		loadErr = fmt.Errorf("compiling config schema: %w", err)
		return
	}

	def := inst.LookupPath(cue.ParsePath("#Config"))
	if !def.Exists() {
		loadErr = fmt.Errorf("config schema is missing the #Config definition")
		return
	}
	configDef = def
}

// ValidateConfig checks raw configuration data against the #Config schema.
// Returns nil when the data conforms.
func ValidateConfig(data map[string]any) error {
	loadOnce.Do(load)
	if loadErr != nil {
		return loadErr
	}

	value := cueContext.Encode(data)
	if err := value.Err(); err != nil {
		return fmt.Errorf("encoding config data: %w", err)
	}

	unified := configDef.Unify(value)
	if err := unified.Err(); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	if err := unified.Validate(); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
