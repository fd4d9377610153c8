package ui

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/theme"
)

func TestCantoTheme_Preference(t *testing.T) {
	test.NewTempApp(t)
	th := NewCantoTheme("dark")
	dark := theme.DefaultTheme().Color(theme.ColorNameBackground, theme.VariantDark)
	if got := th.Color(theme.ColorNameBackground, theme.VariantLight); got != dark {
		t.Errorf("dark preference should force the dark variant, got %v", got)
	}

	th.SetPreference("system")
	light := theme.DefaultTheme().Color(theme.ColorNameBackground, theme.VariantLight)
	if got := th.Color(theme.ColorNameBackground, theme.VariantLight); got != light {
		t.Errorf("system preference should follow the requested variant, got %v", got)
	}
}

func TestCantoTheme_CompactSizes(t *testing.T) {
	test.NewTempApp(t)
	th := NewCantoTheme("")
	if th.Size(theme.SizeNamePadding) != 3 {
		t.Errorf("expected compact padding, got %v", th.Size(theme.SizeNamePadding))
	}
	if th.Size(theme.SizeNameScrollBar) != theme.DefaultTheme().Size(theme.SizeNameScrollBar) {
		t.Error("unlisted sizes should come from the default theme")
	}
}
