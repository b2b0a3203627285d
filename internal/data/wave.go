package data

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// WaveEntry activates Count spawners once the night clock reaches
// ActivationTime (seconds).
type WaveEntry struct {
	ActivationTime float64 `yaml:"at"`
	SpawnRate      float64 `yaml:"spawn_rate"` // enemies per second per spawner
	Count          uint    `yaml:"count"`
}

type waveListFile struct {
	Waves []WaveEntry `yaml:"waves"`
}

// WaveTable is the ordered wave timetable for one night.
type WaveTable struct {
	entries []WaveEntry
}

// NewWaveTable sorts entries by activation time. Entries sharing a time keep
// their input order.
func NewWaveTable(entries []WaveEntry) (*WaveTable, error) {
	for i, e := range entries {
		if e.SpawnRate <= 0 {
			return nil, fmt.Errorf("wave %d: spawn_rate must be positive, got %v", i, e.SpawnRate)
		}
		if e.ActivationTime < 0 {
			return nil, fmt.Errorf("wave %d: activation time must not be negative, got %v", i, e.ActivationTime)
		}
	}
	sorted := make([]WaveEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ActivationTime < sorted[j].ActivationTime
	})
	return &WaveTable{entries: sorted}, nil
}

// LoadWaveTable loads the wave timetable from a YAML file.
func LoadWaveTable(path string) (*WaveTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read waves: %w", err)
	}
	var f waveListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse waves: %w", err)
	}
	t, err := NewWaveTable(f.Waves)
	if err != nil {
		return nil, fmt.Errorf("parse waves: %w", err)
	}
	return t, nil
}

// Entries returns the entries in ascending activation order.
// The slice must not be modified.
func (t *WaveTable) Entries() []WaveEntry { return t.entries }

// Count returns the number of wave entries.
func (t *WaveTable) Count() int { return len(t.entries) }
