package model

import (
	"fmt"
	"math"
	"strings"
)

// Unit is the display unit of a computed length.
type Unit string

const (
	UnitMeters      Unit = "m"
	UnitCentimeters Unit = "cm"
)

// ParseUnit reads "m"/"cm" (and their long names). Empty means meters.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "m", "meter", "meters", "metre", "metres":
		return UnitMeters, nil
	case "cm", "centimeter", "centimeters", "centimetre", "centimetres":
		return UnitCentimeters, nil
	default:
		return "", fmt.Errorf("unknown unit %q", s)
	}
}

// Options controls how ComputeLength presents its result.
type Options struct {
	Unit     Unit           `json:"unit"`
	Rounding RoundingPolicy `json:"rounding"`
}

// DefaultOptions reports lengths in meters without rounding.
func DefaultOptions() Options {
	return Options{Unit: UnitMeters}
}

// CalculationResult is the outcome of one successful calculation.
// All lengths are derived from AreaCM2 at creation time and never recomputed.
type CalculationResult struct {
	AreaCM2       float64         `json:"area_cm2"`       // Ring cross-section area in cm²
	LengthCM      float64         `json:"length_cm"`      // Unrolled length in cm (no rounding)
	LengthM       float64         `json:"length_m"`       // Unrolled length in m (no rounding)
	Unit          Unit            `json:"unit"`           // Unit of RoundedLength
	Rounding      *RoundingPolicy `json:"rounding"`       // Policy applied; nil when none
	RoundedLength float64         `json:"rounded_length"` // Headline length in Unit
}

// RawLength returns the unrounded length in the given unit.
func (r CalculationResult) RawLength(u Unit) float64 {
	if u == UnitCentimeters {
		return r.LengthCM
	}
	return r.LengthM
}

// LengthIn returns the headline length when u matches the result unit,
// otherwise the raw length in u.
func (r CalculationResult) LengthIn(u Unit) float64 {
	if u == r.Unit {
		return r.RoundedLength
	}
	return r.RawLength(u)
}

// RingArea returns the annulus area in cm² for diameters given in cm.
func RingArea(outerCM, innerCM float64) float64 {
	ro := outerCM / 2
	ri := innerCM / 2
	return math.Pi * (ro*ro - ri*ri)
}

// ComputeLength unrolls the ring: the strip's cross-section (length × thickness)
// equals the ring area. m must already have passed Validate.
func ComputeLength(m Measurement, opts Options) CalculationResult {
	area := RingArea(m.OuterCM, m.InnerCM)
	thicknessCM := m.ThicknessMM / 10
	lengthCM := area / thicknessCM

	unit := opts.Unit
	if unit != UnitCentimeters {
		unit = UnitMeters
	}

	res := CalculationResult{
		AreaCM2:  area,
		LengthCM: lengthCM,
		LengthM:  lengthCM / 100,
		Unit:     unit,
	}
	res.RoundedLength = res.RawLength(unit)
	if opts.Rounding.Enabled() {
		policy := opts.Rounding
		res.Rounding = &policy
		res.RoundedLength = policy.Apply(res.RoundedLength)
	}
	return res
}

// Calculate validates the inputs and computes the result in one step.
// No result is produced when validation fails.
func Calculate(outerCM, innerCM, thicknessMM float64, opts Options) (CalculationResult, error) {
	m, err := Validate(outerCM, innerCM, thicknessMM)
	if err != nil {
		return CalculationResult{}, err
	}
	return ComputeLength(m, opts), nil
}
