package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EnemyRuleset holds the enemy tuning shared by every enemy in a night.
type EnemyRuleset struct {
	BaseSpeed float64 `yaml:"base_speed"`
	Health    float64 `yaml:"health"`
}

type enemyRulesFile struct {
	Enemy EnemyRuleset `yaml:"enemy"`
}

// LoadEnemyRuleset loads the enemy ruleset from a YAML file.
func LoadEnemyRuleset(path string) (*EnemyRuleset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read enemies: %w", err)
	}
	var f enemyRulesFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse enemies: %w", err)
	}
	if f.Enemy.BaseSpeed <= 0 {
		return nil, fmt.Errorf("parse enemies: base_speed must be positive, got %v", f.Enemy.BaseSpeed)
	}
	return &f.Enemy, nil
}

// RulesetHandle is a read-only view of a ruleset that may not be loaded yet.
// Systems that need it treat an empty handle as "skip this tick".
type RulesetHandle struct {
	rules *EnemyRuleset
}

// NewRulesetHandle wraps rules; nil yields an empty handle.
func NewRulesetHandle(rules *EnemyRuleset) *RulesetHandle {
	return &RulesetHandle{rules: rules}
}

// Set publishes a loaded ruleset.
func (h *RulesetHandle) Set(rules *EnemyRuleset) { h.rules = rules }

// Get returns the ruleset and whether it is loaded.
func (h *RulesetHandle) Get() (*EnemyRuleset, bool) {
	if h == nil || h.rules == nil {
		return nil, false
	}
	return h.rules, true
}
