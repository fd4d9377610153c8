// CantoCalc: Edge Band Roll Length Calculator
//
// A cross-platform desktop application that estimates how much edge band
// (canto) is left on a roll from its outer diameter, core diameter and
// band thickness.
//
// Build:
//   go build -o cantocalc ./cmd/cantocalc
//
// Cross-compile:
//   GOOS=windows GOARCH=amd64 go build -o cantocalc.exe ./cmd/cantocalc
//   GOOS=darwin  GOARCH=amd64 go build -o cantocalc-darwin ./cmd/cantocalc
//
// Using fyne-cross (recommended for proper packaging):
//   go install github.com/fyne-io/fyne-cross@latest
//   fyne-cross windows -arch=amd64
//   fyne-cross darwin  -arch=amd64,arm64

package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/piwi3910/cantocalc/internal/logger"
	"github.com/piwi3910/cantocalc/internal/ui"
)

func main() {
	log := logger.Setup(logger.Settings{Level: "info"})
	defer logger.Stop()

	application := app.NewWithID("com.piwi3910.cantocalc")
	window := application.NewWindow("CantoCalc — Edge Band Length Calculator")

	appUI := ui.NewApp(application, window)
	appUI.SetupMenus()
	window.SetContent(appUI.Build())
	window.Resize(fyne.NewSize(1200, 760))
	window.CenterOnScreen()

	log.Info().Msg("Starting CantoCalc")
	window.ShowAndRun()
}
