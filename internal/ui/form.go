package ui

import (
	"strconv"
	"strings"

	"github.com/piwi3910/cantocalc/internal/model"
)

// Select option labels shown in the calculator form.
var (
	unitOptions = []string{"Meters (m)", "Centimeters (cm)"}
	modeOptions = []string{"None", "Nearest", "Floor", "Ceiling"}
)

// FormInput is the raw text of the calculator form.
type FormInput struct {
	Outer     string
	Inner     string
	Thickness string
	Unit      string // One of unitOptions
	Step      string // One of stepOptions()
	Mode      string // One of modeOptions
}

// stepOptions renders model.RoundingSteps for the step select.
func stepOptions() []string {
	opts := make([]string, len(model.RoundingSteps))
	for i, s := range model.RoundingSteps {
		opts[i] = model.FormatRoundingStep(s)
	}
	return opts
}

// ParseFormInput converts the form text into a measurement and options.
// Number fields accept a decimal comma. The returned measurement is not
// validated yet.
func ParseFormInput(in FormInput) (model.Measurement, model.Options, error) {
	var m model.Measurement
	fields := []struct {
		name string
		raw  string
		dst  *float64
	}{
		{model.FieldOuterDiameter, in.Outer, &m.OuterCM},
		{model.FieldInnerDiameter, in.Inner, &m.InnerCM},
		{model.FieldThickness, in.Thickness, &m.ThicknessMM},
	}
	for _, f := range fields {
		v, err := parseDecimal(f.raw)
		if err != nil {
			return model.Measurement{}, model.Options{}, &model.InvalidInputError{
				Field:  f.name,
				Reason: fieldLabel(f.name) + " must be a number",
			}
		}
		*f.dst = v
	}

	opts, err := ParseOptions(in.Unit, in.Step, in.Mode)
	if err != nil {
		return model.Measurement{}, model.Options{}, err
	}
	return m, opts, nil
}

// ParseOptions reads the unit, rounding step and rounding mode selects.
func ParseOptions(unit, step, mode string) (model.Options, error) {
	v, err := model.ParseRoundingStep(step)
	if err != nil {
		return model.Options{}, err
	}
	rm, err := model.ParseRoundingMode(mode)
	if err != nil {
		return model.Options{}, err
	}
	return model.Options{
		Unit:     unitFromOption(unit),
		Rounding: model.RoundingPolicy{Step: v, Mode: rm},
	}, nil
}

func parseDecimal(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, strconv.ErrSyntax
	}
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
}

func fieldLabel(field string) string {
	switch field {
	case model.FieldOuterDiameter:
		return "Outer diameter"
	case model.FieldInnerDiameter:
		return "Inner diameter"
	default:
		return "Thickness"
	}
}

func unitFromOption(opt string) model.Unit {
	if opt == unitOptions[1] {
		return model.UnitCentimeters
	}
	return model.UnitMeters
}

func unitOption(u model.Unit) string {
	if u == model.UnitCentimeters {
		return unitOptions[1]
	}
	return unitOptions[0]
}

// ResultSummary formats the headline and detail lines shown after a
// successful calculation.
func ResultSummary(res model.CalculationResult) (headline string, details []string) {
	headline = "Length: " + formatLength(res.RoundedLength, res.Unit)
	details = []string{
		"Ring area: " + strconv.FormatFloat(res.AreaCM2, 'f', 2, 64) + " cm²",
		"Unrounded: " + formatLength(res.LengthM, model.UnitMeters) + " / " + formatLength(res.LengthCM, model.UnitCentimeters),
	}
	if res.Rounding != nil {
		details = append(details, "Rounding: "+res.Rounding.Mode.String()+" to "+
			model.FormatRoundingStep(res.Rounding.Step)+" "+string(res.Unit))
	} else {
		details = append(details, "Rounding: none")
	}
	return headline, details
}

func formatLength(v float64, u model.Unit) string {
	return strconv.FormatFloat(v, 'f', 2, 64) + " " + string(u)
}
