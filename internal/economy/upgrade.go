package economy

import (
	"fmt"

	"github.com/badnight/game/internal/data"
)

// Upgrade is an immutable catalog entry. Effect mutates the economy it is
// given; ApplyUpgrade hands it a scratch copy.
type Upgrade struct {
	Name        string
	Description string
	Cost        uint
	Effect      func(*Economy) error
}

// EffectScripter runs a named scripted upgrade effect against the economy.
type EffectScripter interface {
	RunUpgradeEffect(name string, e *Economy) error
}

// Catalog holds the upgrades offered during the day, in listing order.
type Catalog struct {
	order  []string
	byName map[string]Upgrade
}

// NewCatalog builds upgrades from their definitions. Definitions naming a
// script require a scripter.
func NewCatalog(defs []data.UpgradeDef, scripts EffectScripter) (*Catalog, error) {
	c := &Catalog{
		order:  make([]string, 0, len(defs)),
		byName: make(map[string]Upgrade, len(defs)),
	}
	for _, d := range defs {
		if d.Script != "" && scripts == nil {
			return nil, fmt.Errorf("upgrade %s: script %q needs a scripting engine", d.Name, d.Script)
		}
		if _, dup := c.byName[d.Name]; dup {
			return nil, fmt.Errorf("upgrade %s: duplicate name", d.Name)
		}
		c.order = append(c.order, d.Name)
		c.byName[d.Name] = Upgrade{
			Name:        d.Name,
			Description: d.Description,
			Cost:        d.Cost,
			Effect:      effectFor(d, scripts),
		}
	}
	return c, nil
}

func effectFor(d data.UpgradeDef, scripts EffectScripter) func(*Economy) error {
	return func(e *Economy) error {
		e.SleepDuration += d.SleepDuration
		e.Comfort += d.Comfort
		e.Warmth += d.Warmth
		e.Hydration += d.Hydration
		if d.Script == "" {
			return nil
		}
		return scripts.RunUpgradeEffect(d.Script, e)
	}
}

func (c *Catalog) Get(name string) (Upgrade, bool) {
	u, ok := c.byName[name]
	return u, ok
}

// List returns the upgrades in listing order.
func (c *Catalog) List() []Upgrade {
	out := make([]Upgrade, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.byName[name])
	}
	return out
}

func (c *Catalog) Count() int { return len(c.order) }

// Buy looks up an upgrade by name and applies it.
func (c *Catalog) Buy(e *Economy, name string) (Upgrade, error) {
	u, ok := c.byName[name]
	if !ok {
		return Upgrade{}, fmt.Errorf("%q: %w", name, ErrUnknownUpgrade)
	}
	if err := e.ApplyUpgrade(u); err != nil {
		return Upgrade{}, err
	}
	return u, nil
}
