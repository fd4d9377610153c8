package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Calculation defaults applied to new sessions
	DefaultUnit         Unit         `json:"default_unit"`
	DefaultRoundingStep float64      `json:"default_rounding_step"` // 0 = no rounding
	DefaultRoundingMode RoundingMode `json:"default_rounding_mode"`

	// Catalog
	CatalogPath    string   `json:"catalog_path"` // Spreadsheet loaded on startup; empty = cached catalog
	RecentCatalogs []string `json:"recent_catalogs"`

	// Application preferences
	Theme string `json:"theme"` // "light", "dark", "system"
}

// maxRecentCatalogs bounds RecentCatalogs.
const maxRecentCatalogs = 5

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching DefaultOptions().
func DefaultAppConfig() AppConfig {
	defaults := DefaultOptions()
	return AppConfig{
		DefaultUnit:         defaults.Unit,
		DefaultRoundingStep: defaults.Rounding.Step,
		DefaultRoundingMode: defaults.Rounding.Mode,
		RecentCatalogs:      []string{},
		Theme:               "system",
	}
}

// Options converts the saved defaults into calculation options.
func (c AppConfig) Options() Options {
	unit := c.DefaultUnit
	if unit != UnitCentimeters {
		unit = UnitMeters
	}
	return Options{
		Unit: unit,
		Rounding: RoundingPolicy{
			Step: c.DefaultRoundingStep,
			Mode: c.DefaultRoundingMode,
		},
	}
}

// ApplyOptions stores opts as the new defaults.
func (c *AppConfig) ApplyOptions(opts Options) {
	c.DefaultUnit = opts.Unit
	c.DefaultRoundingStep = opts.Rounding.Step
	c.DefaultRoundingMode = opts.Rounding.Mode
}

// AddRecentCatalog moves path to the front of RecentCatalogs.
func (c *AppConfig) AddRecentCatalog(path string) {
	recent := []string{path}
	for _, p := range c.RecentCatalogs {
		if p != path {
			recent = append(recent, p)
		}
	}
	if len(recent) > maxRecentCatalogs {
		recent = recent[:maxRecentCatalogs]
	}
	c.RecentCatalogs = recent
}
