package core

// Color represents a foreground color for a screen cell.
// The platform maps these to ANSI colors for terminal compatibility.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// HuePalette is the full-saturation hue cycle used by the star-power effect.
// Indexed by a per-tick counter to flash the player through rainbow colors.
var HuePalette = []Color{
	ColorBrightRed,
	ColorOrange,
	ColorBrightYellow,
	ColorBrightGreen,
	ColorBrightCyan,
	ColorBrightBlue,
	ColorBrightMagenta,
}
