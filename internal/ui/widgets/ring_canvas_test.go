package widgets

import (
	"testing"

	"github.com/piwi3910/cantocalc/internal/model"
)

func TestRingGeometry_Proportional(t *testing.T) {
	outerR, innerR := RingGeometry(model.Measurement{OuterCM: 60, InnerCM: 15, ThicknessMM: 1}, 200)
	if outerR != 100 {
		t.Errorf("expected outer radius 100, got %v", outerR)
	}
	if innerR != 25 {
		t.Errorf("expected inner radius 25, got %v", innerR)
	}
}

func TestRingGeometry_Coreless(t *testing.T) {
	_, innerR := RingGeometry(model.Measurement{OuterCM: 12, InnerCM: 0, ThicknessMM: 2}, 120)
	if innerR != 0 {
		t.Errorf("expected no core, got radius %v", innerR)
	}
}

func TestRingGeometry_Degenerate(t *testing.T) {
	outerR, innerR := RingGeometry(model.Measurement{}, 100)
	if outerR != 0 || innerR != 0 {
		t.Errorf("expected zero radii, got %v/%v", outerR, innerR)
	}
	outerR, _ = RingGeometry(model.Measurement{OuterCM: 10, ThicknessMM: 1}, -5)
	if outerR != 0 {
		t.Errorf("expected zero radius for negative size, got %v", outerR)
	}
}
