// Package ui provides the cantocalc desktop application.
package ui

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/ternarybob/arbor"

	"github.com/piwi3910/cantocalc/internal/catalog"
	"github.com/piwi3910/cantocalc/internal/export"
	"github.com/piwi3910/cantocalc/internal/logger"
	"github.com/piwi3910/cantocalc/internal/model"
	"github.com/piwi3910/cantocalc/internal/project"
	"github.com/piwi3910/cantocalc/internal/ui/widgets"
)

const allColors = "All colors"

// App holds all application state and UI references.
type App struct {
	app        fyne.App
	window     fyne.Window
	log        arbor.ILogger
	theme      *CantoTheme
	configPath string
	config     model.AppConfig
	catalog    catalog.Catalog
	presets    []model.RollPreset
	history    *model.History

	// Catalog panel
	searchEntry   *widget.Entry
	colorSelect   *widget.Select
	catalogList   *widget.List
	filtered      []catalog.Row
	selected      *catalog.Row
	selectedLabel *widget.Label

	// Form
	presetSelect   *widget.Select
	outerEntry     *widget.Entry
	innerEntry     *widget.Entry
	thicknessEntry *widget.Entry
	unitSelect     *widget.Select
	stepSelect     *widget.Select
	modeSelect     *widget.Select

	// Results
	headline     *widget.Label
	details      *widget.Label
	ring         *widgets.RingCanvas
	historyModel *historyTable
	historyTbl   *widget.Table
}

// NewApp loads preferences, the catalog and presets and prepares the UI state.
// Load failures are logged and fall back to empty data.
func NewApp(application fyne.App, window fyne.Window) *App {
	a := &App{
		app:        application,
		window:     window,
		log:        logger.GetLogger(),
		configPath: project.DefaultConfigPath(),
		history:    model.NewHistory(),
	}

	cfg, err := project.LoadAppConfig(a.configPath)
	if err != nil {
		a.log.Warn().Err(err).Str("path", a.configPath).Msg("Failed to load preferences, using defaults")
		cfg = model.DefaultAppConfig()
	}
	a.config = cfg

	a.theme = NewCantoTheme(cfg.Theme)
	application.Settings().SetTheme(a.theme)

	a.catalog = a.loadStartupCatalog()

	presets, err := project.LoadPresets(project.DefaultPresetsPath())
	if err != nil {
		a.log.Warn().Err(err).Msg("Failed to load presets, using defaults")
		presets = model.DefaultPresets()
	}
	a.presets = presets

	return a
}

// loadStartupCatalog reads the configured spreadsheet, falling back to the
// cached copy of the last catalog.
func (a *App) loadStartupCatalog() catalog.Catalog {
	if path := a.config.CatalogPath; path != "" {
		result := catalog.Load(path)
		if len(result.Warnings) > 0 {
			a.log.Warn().Strs("warnings", result.Warnings).Str("path", path).Msg("Catalog loaded with warnings")
		}
		if len(result.Catalog.Rows) > 0 {
			return result.Catalog
		}
		a.log.Warn().Strs("errors", result.Errors).Str("path", path).Msg("Configured catalog unavailable, using cache")
	}

	cached, err := project.LoadCatalog(project.DefaultCatalogPath())
	if err != nil {
		a.log.Warn().Err(err).Msg("Failed to read cached catalog")
		return catalog.Catalog{}
	}
	return cached
}

// SetupMenus creates the native menu bar for the application.
func (a *App) SetupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Load Catalog...", a.loadCatalog),
		fyne.NewMenuItem("Import Catalog Rows...", a.importCatalogRows),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export History as CSV...", func() {
			a.saveFile("historial.csv", func(path string) error {
				return export.ExportHistoryCSV(path, a.history.Entries(), a.currentUnit())
			})
		}),
		fyne.NewMenuItem("Export History as Excel...", func() {
			a.saveFile("historial.xlsx", func(path string) error {
				return export.ExportHistoryXLSX(path, a.history.Entries(), a.currentUnit())
			})
		}),
		fyne.NewMenuItem("Export Report as PDF...", a.exportReport),
		fyne.NewMenuItem("Export Roll Labels...", a.exportLabels),
		fyne.NewMenuItem("Export Diagram as DXF...", a.exportDiagram),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export All Data...", a.exportBackup),
		fyne.NewMenuItem("Import All Data...", a.importBackup),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			a.window.Close()
		}),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Clear History", a.confirmClearHistory),
		fyne.NewMenuItem("Save as Preset...", a.savePreset),
		fyne.NewMenuItem("Save Current Settings as Default", a.saveDefaults),
	)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Light Theme", func() { a.setTheme("light") }),
		fyne.NewMenuItem("Dark Theme", func() { a.setTheme("dark") }),
		fyne.NewMenuItem("System Theme", func() { a.setTheme("system") }),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", a.showAboutDialog),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, viewMenu, helpMenu))
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About CantoCalc",
		"CantoCalc - Edge Band Roll Calculator\n\n"+
			"Estimates the length of edge band left on a roll\n"+
			"from its outer diameter, core diameter and thickness.\n\n"+
			"Version 1.0.0",
		a.window,
	)
}

// Build constructs the full UI and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	split := container.NewHSplit(a.buildCatalogPanel(), container.NewVSplit(
		container.NewHSplit(a.buildFormPanel(), a.buildResultPanel()),
		a.buildHistoryPanel(),
	))
	split.Offset = 0.28
	return withToolTips(split, a.window.Canvas())
}

// ─── Catalog Panel ─────────────────────────────────────────

func (a *App) buildCatalogPanel() fyne.CanvasObject {
	a.searchEntry = widget.NewEntry()
	a.searchEntry.SetPlaceHolder("Search code, product or color")
	a.searchEntry.OnChanged = func(string) { a.refreshCatalog() }

	a.colorSelect = widget.NewSelect(nil, func(string) { a.refreshCatalog() })

	a.catalogList = widget.NewList(
		func() int { return len(a.filtered) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, o fyne.CanvasObject) {
			o.(*widget.Label).SetText(a.filtered[id].Label())
		},
	)
	a.catalogList.OnSelected = func(id widget.ListItemID) {
		if id < len(a.filtered) {
			row := a.filtered[id]
			a.selectRow(&row)
		}
	}

	a.selectedLabel = widget.NewLabel("")
	a.selectedLabel.Wrapping = fyne.TextWrapWord
	clearBtn := newIconButtonWithTooltip(theme.ContentClearIcon(), "Clear selection", func() {
		a.catalogList.UnselectAll()
		a.selectRow(nil)
	})
	loadBtn := newIconButtonWithTooltip(theme.FolderOpenIcon(), "Load catalog", a.loadCatalog)

	a.refreshColors()
	a.refreshCatalog()
	a.selectRow(nil)

	top := container.NewVBox(
		container.NewHBox(
			widget.NewLabelWithStyle("Catalog", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			layout.NewSpacer(),
			loadBtn,
		),
		a.searchEntry,
		a.colorSelect,
	)
	bottom := container.NewBorder(nil, nil, nil, clearBtn, a.selectedLabel)
	return container.NewBorder(top, bottom, nil, nil, a.catalogList)
}

func (a *App) refreshColors() {
	a.colorSelect.Options = append([]string{allColors}, a.catalog.Colors()...)
	a.colorSelect.SetSelected(allColors)
}

func (a *App) refreshCatalog() {
	if a.catalogList == nil {
		return
	}
	color := a.colorSelect.Selected
	if color == allColors {
		color = ""
	}
	a.filtered = a.catalog.Query(a.searchEntry.Text, color)
	a.catalogList.UnselectAll()
	a.catalogList.Refresh()
}

func (a *App) selectRow(row *catalog.Row) {
	a.selected = row
	switch {
	case row != nil:
		a.selectedLabel.SetText("Selected: " + row.Label())
	case a.catalog.Len() == 0:
		a.selectedLabel.SetText("No catalog loaded.")
	default:
		a.selectedLabel.SetText("No product selected.")
	}
}

// ─── Form Panel ────────────────────────────────────────────

func (a *App) buildFormPanel() fyne.CanvasObject {
	a.outerEntry = widget.NewEntry()
	a.outerEntry.SetPlaceHolder("e.g. 60")
	a.innerEntry = widget.NewEntry()
	a.innerEntry.SetPlaceHolder("e.g. 7.6")
	a.thicknessEntry = widget.NewEntry()
	a.thicknessEntry.SetPlaceHolder("e.g. 0.45")
	a.thicknessEntry.OnSubmitted = func(string) { a.calculate() }

	opts := a.config.Options()
	a.unitSelect = widget.NewSelect(unitOptions, func(string) {
		if a.historyModel != nil {
			a.historyModel.unit = a.currentUnit()
			a.historyTbl.Refresh()
		}
	})
	a.unitSelect.SetSelected(unitOption(opts.Unit))
	a.stepSelect = widget.NewSelect(stepOptions(), nil)
	a.stepSelect.SetSelected(model.FormatRoundingStep(opts.Rounding.Step))
	a.modeSelect = widget.NewSelect(modeOptions, nil)
	a.modeSelect.SetSelected(opts.Rounding.Mode.String())

	a.presetSelect = widget.NewSelect(nil, a.applyPreset)
	a.presetSelect.PlaceHolder = "Presets"
	a.refreshPresets()

	form := widget.NewForm(
		widget.NewFormItem("Preset", a.presetSelect),
		widget.NewFormItem("Outer diameter (cm)", a.outerEntry),
		widget.NewFormItem("Inner diameter (cm)", a.innerEntry),
		widget.NewFormItem("Thickness (mm)", a.thicknessEntry),
		widget.NewFormItem("Unit", a.unitSelect),
		widget.NewFormItem("Rounding step", a.stepSelect),
		widget.NewFormItem("Rounding mode", a.modeSelect),
	)

	calcBtn := widget.NewButtonWithIcon("Calculate", theme.ConfirmIcon(), a.calculate)
	calcBtn.Importance = widget.HighImportance

	return container.NewVBox(
		widget.NewLabelWithStyle("Roll Dimensions", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		form,
		calcBtn,
	)
}

func (a *App) formInput() FormInput {
	return FormInput{
		Outer:     a.outerEntry.Text,
		Inner:     a.innerEntry.Text,
		Thickness: a.thicknessEntry.Text,
		Unit:      a.unitSelect.Selected,
		Step:      a.stepSelect.Selected,
		Mode:      a.modeSelect.Selected,
	}
}

func (a *App) currentUnit() model.Unit {
	if a.unitSelect == nil {
		return a.config.Options().Unit
	}
	return unitFromOption(a.unitSelect.Selected)
}

func (a *App) refreshPresets() {
	names := make([]string, len(a.presets))
	for i, p := range a.presets {
		names[i] = p.Name
	}
	a.presetSelect.Options = names
	a.presetSelect.ClearSelected()
}

// applyPreset fills the form from the named preset and records it with the
// current unit and rounding selection.
func (a *App) applyPreset(name string) {
	for _, p := range a.presets {
		if p.Name != name {
			continue
		}
		a.outerEntry.SetText(fmt.Sprintf("%g", p.Measurement.OuterCM))
		a.innerEntry.SetText(fmt.Sprintf("%g", p.Measurement.InnerCM))
		a.thicknessEntry.SetText(fmt.Sprintf("%g", p.Measurement.ThicknessMM))
		if p.Catalog.ItemCode != "" {
			if row, ok := a.catalog.FindByCode(p.Catalog.ItemCode); ok {
				a.selectRow(&row)
				p.Catalog = row.Info()
			}
		}

		opts, err := ParseOptions(a.unitSelect.Selected, a.stepSelect.Selected, a.modeSelect.Selected)
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		entry, err := p.Record(a.history, opts)
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.showResult(entry)
		return
	}
}

// calculate validates the form, records the result and refreshes the view.
// Nothing is recorded when validation fails.
func (a *App) calculate() {
	m, opts, err := ParseFormInput(a.formInput())
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}

	var info model.CatalogInfo
	if a.selected != nil {
		info = a.selected.Info()
	}

	entry, err := model.Record(a.history, m.OuterCM, m.InnerCM, m.ThicknessMM, opts, info)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.showResult(entry)
}

// ─── Result Panel ──────────────────────────────────────────

func (a *App) buildResultPanel() fyne.CanvasObject {
	a.headline = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	a.headline.SizeName = theme.SizeNameHeadingText
	a.details = widget.NewLabel("Enter the roll dimensions and press Calculate.")
	a.ring = widgets.NewRingCanvas(220)

	return container.NewBorder(
		container.NewVBox(a.headline, a.details),
		nil, nil, nil,
		a.ring,
	)
}

func (a *App) showResult(e model.HistoryEntry) {
	headline, details := ResultSummary(e.Result)
	if !e.Catalog.IsEmpty() {
		details = append(details, "Product: "+catalog.Row{
			ItemCode:    e.Catalog.ItemCode,
			ProductName: e.Catalog.ProductName,
			Color:       e.Catalog.Color,
		}.Label())
	}
	a.headline.SetText(headline)
	a.details.SetText(strings.Join(details, "\n"))
	a.ring.SetMeasurement(e.Diagram())
	a.historyTbl.Refresh()
}

func (a *App) clearResult() {
	a.headline.SetText("")
	a.details.SetText("Enter the roll dimensions and press Calculate.")
	a.ring.Clear()
}

// ─── History Panel ─────────────────────────────────────────

func (a *App) buildHistoryPanel() fyne.CanvasObject {
	a.historyModel = newHistoryTable(a.history, a.currentUnit())
	a.historyTbl = widget.NewTable(
		a.historyModel.Size,
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.TableCellID, o fyne.CanvasObject) {
			label := o.(*widget.Label)
			label.TextStyle = fyne.TextStyle{Bold: id.Row == 0}
			label.SetText(a.historyModel.Cell(id.Row, id.Col))
		},
	)
	for col, w := range []float32{90, 180, 90, 130, 130, 110, 100} {
		a.historyTbl.SetColumnWidth(col, w)
	}

	clearBtn := newIconButtonWithTooltip(theme.DeleteIcon(), "Clear history", a.confirmClearHistory)
	exportBtn := newIconButtonWithTooltip(theme.DocumentSaveIcon(), "Export history as CSV", func() {
		a.saveFile("historial.csv", func(path string) error {
			return export.ExportHistoryCSV(path, a.history.Entries(), a.currentUnit())
		})
	})

	return container.NewBorder(
		container.NewHBox(
			widget.NewLabelWithStyle("History", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			layout.NewSpacer(),
			exportBtn,
			clearBtn,
		),
		nil, nil, nil,
		a.historyTbl,
	)
}

func (a *App) confirmClearHistory() {
	if a.history.Len() == 0 {
		return
	}
	dialog.ShowConfirm("Clear History", "Remove every calculation from the history?", func(ok bool) {
		if !ok {
			return
		}
		a.history.Clear()
		a.historyTbl.Refresh()
		a.clearResult()
	}, a.window)
}

// ─── Actions ───────────────────────────────────────────────

// saveFile asks for a destination and runs write with the chosen path.
func (a *App) saveFile(defaultName string, write func(path string) error) {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		if err := write(path); err != nil {
			a.log.Error().Err(err).Str("path", path).Msg("Export failed")
			dialog.ShowError(err, a.window)
			return
		}
		a.log.Info().Str("path", path).Msg("Export complete")
		dialog.ShowInformation("Export Complete", fmt.Sprintf("Saved to %s", path), a.window)
	}, a.window)
	d.SetFileName(defaultName)
	d.Show()
}

func (a *App) exportReport() {
	if a.history.Len() == 0 {
		dialog.ShowInformation("No history", "Calculate at least one roll before exporting a report.", a.window)
		return
	}
	a.saveFile("reporte.pdf", func(path string) error {
		return export.ExportReportPDF(path, a.history.Entries(), a.currentUnit())
	})
}

func (a *App) exportLabels() {
	if a.history.Len() == 0 {
		dialog.ShowInformation("No history", "Calculate at least one roll before printing labels.", a.window)
		return
	}
	a.saveFile("etiquetas.pdf", func(path string) error {
		return export.ExportLabels(path, a.history.Entries(), a.currentUnit())
	})
}

func (a *App) exportDiagram() {
	last, ok := a.history.Last()
	if !ok {
		dialog.ShowInformation("No history", "Calculate a roll before exporting its diagram.", a.window)
		return
	}
	a.saveFile("rollo.dxf", func(path string) error {
		return export.ExportDiagramDXF(path, last.Diagram())
	})
}

func (a *App) openFile(extensions []string, open func(path string)) {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		open(path)
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter(extensions))
	d.Show()
}

func (a *App) loadCatalog() {
	a.openFile([]string{".xlsx", ".xlsm", ".csv"}, func(path string) {
		result := catalog.Load(path)
		if !a.reportLoadResult(path, result) {
			return
		}
		a.setCatalog(result.Catalog)
		a.config.CatalogPath = path
		a.config.AddRecentCatalog(path)
		a.persistConfig()
		dialog.ShowInformation("Catalog Loaded",
			fmt.Sprintf("Loaded %d products from %s.", result.Catalog.Len(), path), a.window)
	})
}

func (a *App) importCatalogRows() {
	a.openFile([]string{".xlsx", ".xlsm", ".csv"}, func(path string) {
		before := a.catalog.Len()
		merged, result := project.ImportCatalog(path, a.catalog)
		if !a.reportLoadResult(path, result) {
			return
		}
		a.setCatalog(merged)
		dialog.ShowInformation("Import Complete",
			fmt.Sprintf("Added %d new products.", merged.Len()-before), a.window)
	})
}

// reportLoadResult surfaces catalog load errors and logs warnings. It
// reports whether any rows were loaded.
func (a *App) reportLoadResult(path string, result catalog.LoadResult) bool {
	if len(result.Warnings) > 0 {
		a.log.Warn().Strs("warnings", result.Warnings).Str("path", path).Msg("Catalog warnings")
	}
	if len(result.Errors) > 0 {
		a.log.Warn().Strs("errors", result.Errors).Str("path", path).Msg("Catalog errors")
		msg := "Errors encountered while reading the catalog:\n\n" + strings.Join(result.Errors, "\n")
		dialog.ShowError(fmt.Errorf("%s", msg), a.window)
	}
	return len(result.Catalog.Rows) > 0
}

func (a *App) setCatalog(cat catalog.Catalog) {
	a.catalog = cat
	if err := project.SaveCatalog(project.DefaultCatalogPath(), cat); err != nil {
		a.log.Warn().Err(err).Msg("Failed to cache catalog")
	}
	a.selectRow(nil)
	a.refreshColors()
	a.refreshCatalog()
}

func (a *App) savePreset() {
	m, _, err := ParseFormInput(a.formInput())
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	var info model.CatalogInfo
	if a.selected != nil {
		info = a.selected.Info()
	}

	name := widget.NewEntry()
	name.SetPlaceHolder("Preset name")
	dialog.ShowForm("Save Preset", "Save", "Cancel", []*widget.FormItem{
		widget.NewFormItem("Name", name),
	}, func(ok bool) {
		if !ok || strings.TrimSpace(name.Text) == "" {
			return
		}
		p, err := model.NewRollPreset(strings.TrimSpace(name.Text), m, info)
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.presets = append(a.presets, p)
		if err := project.SavePresets(project.DefaultPresetsPath(), a.presets); err != nil {
			dialog.ShowError(err, a.window)
		}
		a.refreshPresets()
	}, a.window)
}

func (a *App) saveDefaults() {
	opts, err := ParseOptions(a.unitSelect.Selected, a.stepSelect.Selected, a.modeSelect.Selected)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.config.ApplyOptions(opts)
	a.persistConfig()
}

func (a *App) setTheme(pref string) {
	a.config.Theme = pref
	a.theme.SetPreference(pref)
	a.app.Settings().SetTheme(a.theme)
	a.persistConfig()
}

func (a *App) persistConfig() {
	if err := project.SaveAppConfig(a.configPath, a.config); err != nil {
		a.log.Warn().Err(err).Str("path", a.configPath).Msg("Failed to save preferences")
		dialog.ShowError(err, a.window)
	}
}

func (a *App) exportBackup() {
	a.saveFile("cantocalc-backup.json", func(path string) error {
		return project.ExportAllData(path, a.config, a.presets, a.history.Entries())
	})
}

func (a *App) importBackup() {
	a.openFile([]string{".json"}, func(path string) {
		backup, err := project.ImportAllData(path)
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.config = backup.Config
		a.presets = backup.Presets
		backup.RestoreHistory(a.history)

		opts := a.config.Options()
		a.unitSelect.SetSelected(unitOption(opts.Unit))
		a.stepSelect.SetSelected(model.FormatRoundingStep(opts.Rounding.Step))
		a.modeSelect.SetSelected(opts.Rounding.Mode.String())
		a.theme.SetPreference(a.config.Theme)
		a.app.Settings().SetTheme(a.theme)
		a.refreshPresets()
		a.historyTbl.Refresh()
		if last, ok := a.history.Last(); ok {
			a.showResult(last)
		} else {
			a.clearResult()
		}

		a.persistConfig()
		if err := project.SavePresets(project.DefaultPresetsPath(), a.presets); err != nil {
			a.log.Warn().Err(err).Msg("Failed to save presets")
		}
		dialog.ShowInformation("Import Complete",
			fmt.Sprintf("Restored %d presets and %d history entries.", len(backup.Presets), len(backup.History)), a.window)
	})
}
