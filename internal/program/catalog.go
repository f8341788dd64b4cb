package program

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

//go:embed program.toml
var defaultProgramToml []byte

var ErrInvalidCatalog = errors.New("invalid catalog")

type Catalog struct {
	NutritionTip string      `json:"nutritionTip" toml:"nutrition_tip" yaml:"nutrition_tip"`
	Warmup       []Exercise  `json:"warmup" toml:"warmup" yaml:"warmup"`
	Cooldown     []Exercise  `json:"cooldown" toml:"cooldown" yaml:"cooldown"`
	Days         []DailyPlan `json:"days" toml:"days" yaml:"days"`

	exercisesByID map[string]Exercise
}

// Default returns the built-in seven day program.
func Default() (*Catalog, error) {
	return decode(defaultProgramToml, ".toml")
}

// Load reads a catalog from a TOML or YAML file, picked by extension.
// Empty path falls back to the built-in program.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	return decode(raw, strings.ToLower(filepath.Ext(path)))
}

func decode(raw []byte, ext string) (*Catalog, error) {
	c := &Catalog{}
	switch ext {
	case ".toml":
		if _, err := toml.NewDecoder(bytes.NewReader(raw)).Decode(c); err != nil {
			return nil, fmt.Errorf("decode toml catalog: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, c); err != nil {
			return nil, fmt.Errorf("decode yaml catalog: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported file type [%s]", ErrInvalidCatalog, ext)
	}

	if err := c.index(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Catalog) index() error {
	sort.SliceStable(c.Days, func(i, j int) bool {
		return c.Days[i].Day < c.Days[j].Day
	})

	c.exercisesByID = make(map[string]Exercise)
	add := func(ex Exercise) error {
		if ex.ID == "" {
			return fmt.Errorf("%w: exercise [%s] has no id", ErrInvalidCatalog, ex.Name)
		}
		if _, exists := c.exercisesByID[ex.ID]; exists {
			return fmt.Errorf("%w: duplicate exercise id [%s]", ErrInvalidCatalog, ex.ID)
		}
		c.exercisesByID[ex.ID] = ex
		return nil
	}

	for _, ex := range c.Warmup {
		if err := add(ex); err != nil {
			return err
		}
	}
	for _, ex := range c.Cooldown {
		if err := add(ex); err != nil {
			return err
		}
	}

	seenDays := make(map[int]bool)
	for i := range c.Days {
		d := &c.Days[i]
		if d.Day < 1 || d.Day > 7 {
			return fmt.Errorf("%w: day %d out of range", ErrInvalidCatalog, d.Day)
		}
		if seenDays[d.Day] {
			return fmt.Errorf("%w: duplicate day %d", ErrInvalidCatalog, d.Day)
		}
		seenDays[d.Day] = true

		if d.IsRestDay {
			d.Exercises = []Exercise{}
			continue
		}
		if d.Exercises == nil {
			d.Exercises = []Exercise{}
		}
		for _, ex := range d.Exercises {
			if err := add(ex); err != nil {
				return err
			}
		}
	}

	return nil
}

func (c *Catalog) Day(day int) (DailyPlan, error) {
	for _, d := range c.Days {
		if d.Day == day {
			d.Exercises = slices.Clone(d.Exercises)
			return d, nil
		}
	}
	return DailyPlan{}, fmt.Errorf("%w: %d", ErrDayNotFound, day)
}

// Exercise looks up any exercise of the program by id, warm-up and cool-down included.
func (c *Catalog) Exercise(id string) (Exercise, bool) {
	ex, ok := c.exercisesByID[id]
	return ex, ok
}

// ActiveExercises is the list shown for a day in the given phase.
// Rest days have nothing active in any phase.
func (c *Catalog) ActiveExercises(day int, phase Phase) ([]Exercise, error) {
	if !phase.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPhase, phase)
	}

	plan, err := c.Day(day)
	if err != nil {
		return nil, err
	}
	if plan.IsRestDay {
		return []Exercise{}, nil
	}

	// copies, so callers cannot edit the catalog
	switch phase {
	case PhaseWarmup:
		return slices.Clone(c.Warmup), nil
	case PhaseCooldown:
		return slices.Clone(c.Cooldown), nil
	default:
		return slices.Clone(plan.Exercises), nil
	}
}
