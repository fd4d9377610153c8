package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/yofu/dxf"

	"github.com/piwi3910/cantocalc/internal/model"
)

// DXF layer names of the roll cross-section.
const (
	LayerOuter = "OUTER"
	LayerInner = "INNER"
)

// ExportDiagramDXF writes the roll cross-section as two concentric circles
// centred on the origin, in millimetres. A roll without a core (inner
// diameter zero) gets no INNER circle.
func ExportDiagramDXF(path string, m model.Measurement) error {
	if err := m.Validate(); err != nil {
		return err
	}

	d := dxf.NewDrawing()
	if _, err := d.AddLayer(LayerOuter, dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add layer %s: %w", LayerOuter, err)
	}
	if _, err := d.Circle(0, 0, 0, m.OuterCM*10/2); err != nil {
		return fmt.Errorf("failed to draw outer circle: %w", err)
	}

	if m.InnerCM > 0 {
		if _, err := d.AddLayer(LayerInner, dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
			return fmt.Errorf("failed to add layer %s: %w", LayerInner, err)
		}
		if _, err := d.Circle(0, 0, 0, m.InnerCM*10/2); err != nil {
			return fmt.Errorf("failed to draw inner circle: %w", err)
		}
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save DXF: %w", err)
	}
	return nil
}

// WriteDiagramDXF renders the cross-section through a scratch file and
// copies it to w.
func WriteDiagramDXF(w io.Writer, m model.Measurement) error {
	dir, err := os.MkdirTemp("", "cantocalc-dxf")
	if err != nil {
		return fmt.Errorf("failed to create scratch directory: %w", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "diagram.dxf")
	if err := ExportDiagramDXF(path, m); err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(w, f)
	return err
}
