package notes

import (
	"fmt"
	"path"
	"strings"

	"github.com/inference-sim/keepaway/sim"
)

// Format selects the input syntax.
type Format string

const (
	FormatAuto  Format = "auto"
	FormatYAML  Format = "yaml"
	FormatNotes Format = "notes"
)

// IsValidFormat reports whether name is a known format.
func IsValidFormat(name string) bool {
	switch Format(name) {
	case FormatAuto, FormatYAML, FormatNotes:
		return true
	}
	return false
}

// Input is a parsed configuration. Runs and SelfRoute are only populated by
// the YAML format; callers fall back to sim.DefaultRuns and the CLI flag.
type Input struct {
	Workers   []sim.WorkerDef
	Runs      []sim.RunSpec
	SelfRoute sim.SelfRoutePolicy
}

// Parse decodes data in the given format. FormatAuto picks YAML when the
// location has a .yaml/.yml extension and the notes format otherwise.
func Parse(location string, data []byte, format Format) (*Input, error) {
	switch resolveFormat(location, format) {
	case FormatYAML:
		return ParseYAML(data)
	case FormatNotes:
		return ParseNotes(data)
	default:
		return nil, fmt.Errorf("unknown input format %q; valid: auto, yaml, notes", format)
	}
}

func resolveFormat(location string, format Format) Format {
	if format != FormatAuto && format != "" {
		return format
	}
	switch strings.ToLower(path.Ext(location)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatNotes
}
