// Package tuning loads the colony's operating parameters from a yaml file,
// with in-code defaults when no file is present.
package tuning

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tuning holds every knob the driver threads into the simulation.
type Tuning struct {
	Seed        int64 `yaml:"seed"`
	WorldWidth  int   `yaml:"world_width"`
	WorldHeight int   `yaml:"world_height"`
	SourceCount int   `yaml:"source_count"`
	SiteCount   int   `yaml:"site_count"`

	TickIntervalMs int     `yaml:"tick_interval_ms"`
	Speed          float64 `yaml:"speed"`

	ReconcileEveryTicks uint64 `yaml:"reconcile_every_ticks"`
	SnapshotEveryTicks  uint64 `yaml:"snapshot_every_ticks"`
	ReportEveryTicks    uint64 `yaml:"report_every_ticks"`
	InvasionEveryTicks  uint64 `yaml:"invasion_every_ticks"`

	// RenewBelowTTL is the ticks-remaining threshold under which renewal
	// outranks productive work. A logical deadline, not wall-clock.
	RenewBelowTTL int `yaml:"renew_below_ttl"`

	// Quotas caps the population per role name.
	Quotas map[string]int `yaml:"quotas"`
}

// Default returns the stock configuration.
func Default() Tuning {
	return Tuning{
		Seed:                42,
		WorldWidth:          50,
		WorldHeight:         50,
		SourceCount:         4,
		SiteCount:           3,
		TickIntervalMs:      250,
		Speed:               1.0,
		ReconcileEveryTicks: 50,
		SnapshotEveryTicks:  500,
		ReportEveryTicks:    100,
		InvasionEveryTicks:  2000,
		RenewBelowTTL:       200,
		Quotas: map[string]int{
			"harvester": 6,
			"courier":   2,
			"builder":   2,
			"upgrader":  2,
			"defender":  2,
			"medic":     1,
		},
	}
}

// Load reads a tuning file, filling unset quotas from defaults. A missing
// file is not an error; the defaults are returned as-is.
func Load(path string) (Tuning, error) {
	t := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return t, nil
		}
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning %s: %w", path, err)
	}
	if t.Quotas == nil {
		t.Quotas = Default().Quotas
	}
	return t, nil
}

// Quota returns the configured population cap for a role, defaulting to 1
// for roles the file does not mention.
func (t Tuning) Quota(role string) int {
	if q, ok := t.Quotas[role]; ok {
		return q
	}
	return 1
}
