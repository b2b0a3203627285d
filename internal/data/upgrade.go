package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// UpgradeDef is one purchasable day-phase upgrade. The deltas are added to
// the economy on purchase; Script names an optional Lua effect function run
// after the deltas.
type UpgradeDef struct {
	Name          string  `yaml:"name"`
	Description   string  `yaml:"description"`
	Cost          uint    `yaml:"cost"`
	SleepDuration float64 `yaml:"sleep_duration"`
	Comfort       float64 `yaml:"comfort"`
	Warmth        float64 `yaml:"warmth"`
	Hydration     float64 `yaml:"hydration"`
	Script        string  `yaml:"script,omitempty"`
}

type upgradeListFile struct {
	Upgrades []UpgradeDef `yaml:"upgrades"`
}

// LoadUpgradeList loads upgrade definitions in file order. Names must be
// unique and non-empty.
func LoadUpgradeList(path string) ([]UpgradeDef, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read upgrades: %w", err)
	}
	var f upgradeListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse upgrades: %w", err)
	}
	seen := make(map[string]struct{}, len(f.Upgrades))
	for i, u := range f.Upgrades {
		if u.Name == "" {
			return nil, fmt.Errorf("parse upgrades: entry %d has no name", i)
		}
		if _, dup := seen[u.Name]; dup {
			return nil, fmt.Errorf("parse upgrades: duplicate name %q", u.Name)
		}
		seen[u.Name] = struct{}{}
	}
	return f.Upgrades, nil
}
