package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// RoundingMode selects how a length is snapped to a multiple of the step.
type RoundingMode string

const (
	RoundNone    RoundingMode = ""        // No rounding
	RoundNearest RoundingMode = "nearest" // Half away from zero (math.Round)
	RoundFloor   RoundingMode = "floor"   // Largest multiple not exceeding the length
	RoundCeiling RoundingMode = "ceiling" // Smallest multiple not less than the length
)

func (m RoundingMode) String() string {
	switch m {
	case RoundNearest:
		return "Nearest"
	case RoundFloor:
		return "Floor"
	case RoundCeiling:
		return "Ceiling"
	default:
		return "None"
	}
}

// RoundingSteps lists the supported steps. Zero disables rounding.
var RoundingSteps = []float64{0, 0.1, 0.5, 1}

// ParseRoundingMode accepts the mode names used in config files, forms and query strings.
func ParseRoundingMode(s string) (RoundingMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "-":
		return RoundNone, nil
	case "nearest", "round":
		return RoundNearest, nil
	case "floor", "down":
		return RoundFloor, nil
	case "ceiling", "ceil", "up":
		return RoundCeiling, nil
	default:
		return RoundNone, fmt.Errorf("unknown rounding mode %q", s)
	}
}

// ParseRoundingStep accepts "none" or one of RoundingSteps.
func ParseRoundingStep(s string) (float64, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "none" || s == "-" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid rounding step %q", s)
	}
	for _, step := range RoundingSteps {
		if v == step {
			return v, nil
		}
	}
	return 0, fmt.Errorf("unsupported rounding step %q", s)
}

// FormatRoundingStep renders a step the way ParseRoundingStep reads it.
func FormatRoundingStep(step float64) string {
	if step <= 0 {
		return "none"
	}
	return strconv.FormatFloat(step, 'f', -1, 64)
}

// RoundingPolicy pairs a step with a rounding mode.
type RoundingPolicy struct {
	Step float64      `json:"step"`
	Mode RoundingMode `json:"mode"`
}

// Enabled reports whether the policy changes any value.
func (p RoundingPolicy) Enabled() bool {
	return p.Step > 0 && p.Mode != RoundNone
}

// Apply rounds length according to the policy.
func (p RoundingPolicy) Apply(length float64) float64 {
	return ApplyRounding(length, p.Step, p.Mode)
}

// snapTolerance absorbs float error when a quotient is meant to be integral,
// e.g. 5.8/0.1 = 57.99999999999999.
const snapTolerance = 1e-9

// ApplyRounding snaps length to a multiple of step using mode.
// A non-positive step or RoundNone returns length unchanged.
func ApplyRounding(length, step float64, mode RoundingMode) float64 {
	if step <= 0 || mode == RoundNone {
		return length
	}

	q := length / step
	if r := math.Round(q); math.Abs(q-r) <= snapTolerance*math.Max(1, math.Abs(q)) {
		q = r
	}

	switch mode {
	case RoundNearest:
		q = math.Round(q)
	case RoundFloor:
		q = math.Floor(q)
	case RoundCeiling:
		q = math.Ceil(q)
	default:
		return length
	}
	return q * step
}
