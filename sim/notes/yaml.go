package notes

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/inference-sim/keepaway/sim"
)

// Document is the YAML configuration layout.
type Document struct {
	Workers   []WorkerSpec `yaml:"workers"`
	SelfRoute string       `yaml:"self_route,omitempty"`
	Runs      []RunSpec    `yaml:"runs,omitempty"`
}

// WorkerSpec defines one worker.
type WorkerSpec struct {
	Items     []int64  `yaml:"items"`
	Operation string   `yaml:"operation"`
	Test      TestSpec `yaml:"test"`
}

// TestSpec is the routing test of a worker.
type TestSpec struct {
	DivisibleBy int64 `yaml:"divisible_by"`
	IfTrue      int   `yaml:"if_true"`
	IfFalse     int   `yaml:"if_false"`
}

// RunSpec is one entry of the optional runs section.
type RunSpec struct {
	Name       string         `yaml:"name"`
	Rounds     int            `yaml:"rounds"`
	Suppressor SuppressorSpec `yaml:"suppressor"`
}

// SuppressorSpec selects the worry suppression policy of a run.
type SuppressorSpec struct {
	Kind    string `yaml:"kind"`              // floor, modulo, identity
	Divisor int64  `yaml:"divisor,omitempty"` // floor only
}

// ParseYAML decodes a YAML document.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func ParseYAML(data []byte) (*Input, error) {
	var doc Document
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing worker YAML: %w", err)
	}
	if doc.SelfRoute != "" && !sim.IsValidSelfRoutePolicy(doc.SelfRoute) {
		return nil, fmt.Errorf("unknown self_route %q; valid: immediate, deferred", doc.SelfRoute)
	}
	in := &Input{SelfRoute: sim.SelfRoutePolicy(doc.SelfRoute)}
	for _, w := range doc.Workers {
		in.Workers = append(in.Workers, sim.WorkerDef{
			Items:     w.Items,
			Operation: w.Operation,
			Test:      sim.RoutingDef{DivisibleBy: w.Test.DivisibleBy, IfTrue: w.Test.IfTrue, IfFalse: w.Test.IfFalse},
		})
	}
	for i, r := range doc.Runs {
		name := r.Name
		if name == "" {
			name = fmt.Sprintf("run-%d", i)
		}
		in.Runs = append(in.Runs, sim.RunSpec{
			Name:       name,
			Rounds:     r.Rounds,
			Suppressor: sim.SuppressorConfig{Kind: sim.SuppressorKind(r.Suppressor.Kind), Divisor: r.Suppressor.Divisor},
		})
	}
	return in, nil
}
