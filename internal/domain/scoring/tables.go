package scoring

import (
	"os"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// DefaultPotentialCap bounds the potential points shown for pending picks.
const DefaultPotentialCap = 60

// Tables holds the per-mode point value of every tier.
type Tables struct {
	PotentialCap int                  `yaml:"potential_cap"`
	Modes        map[Mode]map[int]int `yaml:"modes"`
}

func DefaultTables() Tables {
	return Tables{
		PotentialCap: DefaultPotentialCap,
		Modes: map[Mode]map[int]int{
			ModeGroupLeaderboard: {1: 10, 2: 15, 3: 25, 4: 40, 5: 60},
			ModeGlobal:           {1: 5, 2: 10, 3: 20, 4: 50, 5: 100},
		},
	}
}

// LoadTables reads a YAML override on top of the default tables. Modes or
// tiers missing from the file keep their default values.
func LoadTables(path string) (Tables, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return DefaultTables(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Tables{}, crerr.Wrapf(err, "read scoring tables %s", path)
	}

	return ParseTables(raw)
}

func ParseTables(raw []byte) (Tables, error) {
	var override Tables
	if err := yaml.Unmarshal(raw, &override); err != nil {
		return Tables{}, crerr.Wrap(err, "decode scoring tables")
	}

	out := DefaultTables()
	if override.PotentialCap != 0 {
		out.PotentialCap = override.PotentialCap
	}
	for mode, points := range override.Modes {
		if !mode.Valid() {
			return Tables{}, crerr.Newf("unknown scoring mode %q", mode)
		}
		for tier, value := range points {
			out.Modes[mode][tier] = value
		}
	}

	if err := out.validate(); err != nil {
		return Tables{}, err
	}
	return out, nil
}

func (t Tables) validate() error {
	if t.PotentialCap <= 0 {
		return crerr.Newf("potential cap must be > 0, got %d", t.PotentialCap)
	}
	for _, mode := range AllModes {
		points, ok := t.Modes[mode]
		if !ok {
			return crerr.Newf("missing points table for mode %s", mode)
		}
		for _, tier := range defaultTiers {
			value, ok := points[tier.Tier]
			if !ok {
				return crerr.Newf("mode %s is missing points for tier %d", mode, tier.Tier)
			}
			if value < 0 {
				return crerr.Newf("mode %s tier %d points must be >= 0", mode, tier.Tier)
			}
		}
		for tier := range points {
			if tier < 1 || tier > len(defaultTiers) {
				return crerr.Newf("mode %s has unknown tier %d", mode, tier)
			}
		}
	}
	return nil
}

func (t Tables) clone() Tables {
	out := Tables{
		PotentialCap: t.PotentialCap,
		Modes:        make(map[Mode]map[int]int, len(t.Modes)),
	}
	for mode, points := range t.Modes {
		copied := make(map[int]int, len(points))
		for tier, value := range points {
			copied[tier] = value
		}
		out.Modes[mode] = copied
	}
	return out
}
