// Package style provides shared colors and icons for consistent terminal output.
package style

// Color is a hex color usable with termenv.RGBColor.
type Color string

// Brand Colors.
const (
	Iris   Color = "#8B5CF6"
	Slate  Color = "#667085"
	Green  Color = "#22A06B"
	Red    Color = "#D93025"
	Yellow Color = "#F59E0B"
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Skip    = "↷"
	Dot     = "●"
	Circle  = "○"
	Arrow   = "→"
)
