package model

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is matched by every validation failure returned from Validate.
var ErrInvalidInput = errors.New("invalid input")

// Field names reported by InvalidInputError.
const (
	FieldOuterDiameter = "outer_cm"
	FieldInnerDiameter = "inner_cm"
	FieldThickness     = "thickness_mm"
)

// InvalidInputError describes the violated measurement constraint.
type InvalidInputError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Reason)
}

// Is reports ErrInvalidInput as a match so callers can use errors.Is.
func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Measurement is the raw geometry of a wound roll.
type Measurement struct {
	OuterCM     float64 `json:"outer_cm"`     // Outer roll diameter in cm
	InnerCM     float64 `json:"inner_cm"`     // Core diameter in cm
	ThicknessMM float64 `json:"thickness_mm"` // Strip thickness in mm
}

// Validate checks the roll geometry and returns it unchanged when it is usable.
// Outer diameter and thickness must be strictly positive, the core diameter
// non-negative, and the outer diameter must exceed the core diameter.
func Validate(outerCM, innerCM, thicknessMM float64) (Measurement, error) {
	switch {
	case !isFinite(outerCM):
		return Measurement{}, &InvalidInputError{Field: FieldOuterDiameter, Reason: "outer diameter must be a finite number"}
	case !isFinite(innerCM):
		return Measurement{}, &InvalidInputError{Field: FieldInnerDiameter, Reason: "inner diameter must be a finite number"}
	case !isFinite(thicknessMM):
		return Measurement{}, &InvalidInputError{Field: FieldThickness, Reason: "thickness must be a finite number"}
	case outerCM <= 0:
		return Measurement{}, &InvalidInputError{Field: FieldOuterDiameter, Reason: "outer diameter must be greater than zero"}
	case innerCM < 0:
		return Measurement{}, &InvalidInputError{Field: FieldInnerDiameter, Reason: "inner diameter cannot be negative"}
	case thicknessMM <= 0:
		return Measurement{}, &InvalidInputError{Field: FieldThickness, Reason: "thickness must be greater than zero"}
	case outerCM <= innerCM:
		return Measurement{}, &InvalidInputError{Field: FieldOuterDiameter, Reason: "outer diameter must be greater than inner diameter"}
	}
	return Measurement{OuterCM: outerCM, InnerCM: innerCM, ThicknessMM: thicknessMM}, nil
}

// Validate re-checks an already built measurement.
func (m Measurement) Validate() error {
	_, err := Validate(m.OuterCM, m.InnerCM, m.ThicknessMM)
	return err
}

// Rounded returns a copy with every value rounded to two decimals.
func (m Measurement) Rounded() Measurement {
	return Measurement{
		OuterCM:     round2(m.OuterCM),
		InnerCM:     round2(m.InnerCM),
		ThicknessMM: round2(m.ThicknessMM),
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
