package layout

// This file defines unit conversion helpers. Box geometry is declared in
// millimeters while font sizes arrive in points; the boundary between the two
// is crossed exactly once, in the render layer.

// Conversion constants between pt and mm.
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
)

// PtToMM converts a length in points to millimeters.
func PtToMM(pt float64) float64 { return pt * PtToMm }

// MMToPt converts a length in millimeters to points.
func MMToPt(mm float64) float64 { return mm * MmToPt }
