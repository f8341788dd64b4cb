package program

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

const DefaultTargetSets = 3

var (
	ErrDayNotFound  = errors.New("day not found")
	ErrInvalidPhase = errors.New("invalid phase")
)

type Exercise struct {
	ID       string `json:"id" toml:"id" yaml:"id"`
	Name     string `json:"name" toml:"name" yaml:"name"`
	Sets     string `json:"sets,omitempty" toml:"sets" yaml:"sets,omitempty"`
	Reps     string `json:"reps,omitempty" toml:"reps" yaml:"reps,omitempty"`
	Duration string `json:"duration,omitempty" toml:"duration" yaml:"duration,omitempty"`
	Note     string `json:"note,omitempty" toml:"note" yaml:"note,omitempty"`
	Tag      string `json:"tag,omitempty" toml:"tag" yaml:"tag,omitempty"`
}

// TargetSets parses the leading integer of the sets display string ("3", "4 sets").
// Returns DefaultTargetSets when it is missing or not a positive number.
func (e Exercise) TargetSets() int {
	s := strings.TrimSpace(e.Sets)
	end := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsDigit(r) })
	if end >= 0 {
		s = s[:end]
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return DefaultTargetSets
	}
	return n
}

type DailyPlan struct {
	Day         int        `json:"day" toml:"day" yaml:"day"`
	Title       string     `json:"title" toml:"title" yaml:"title"`
	Focus       string     `json:"focus" toml:"focus" yaml:"focus"`
	IsRestDay   bool       `json:"isRestDay" toml:"rest_day" yaml:"rest_day"`
	Description string     `json:"description,omitempty" toml:"description" yaml:"description,omitempty"`
	Exercises   []Exercise `json:"exercises" toml:"exercises" yaml:"exercises"`
}

type Phase string

const (
	PhaseWarmup   Phase = "warmup"
	PhaseMain     Phase = "main"
	PhaseCooldown Phase = "cooldown"
)

var Phases = []Phase{PhaseWarmup, PhaseMain, PhaseCooldown}

func ParsePhase(s string) (Phase, error) {
	p := Phase(strings.ToLower(strings.TrimSpace(s)))
	if !p.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPhase, s)
	}
	return p, nil
}

func (p Phase) IsValid() bool {
	switch p {
	case PhaseWarmup, PhaseMain, PhaseCooldown:
		return true
	default:
		return false
	}
}

// Next returns the phase that follows p; ok is false after cooldown (workout finished).
func (p Phase) Next() (next Phase, ok bool) {
	switch p {
	case PhaseWarmup:
		return PhaseMain, true
	case PhaseMain:
		return PhaseCooldown, true
	default:
		return "", false
	}
}
