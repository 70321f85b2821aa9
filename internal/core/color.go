package core

// Color is the foreground of a screen cell. Front-ends map it to a
// terminal palette entry.
type Color uint8

// Frame, HUD and text colors.
const (
	ColorDefault Color = iota
	ColorGray
	ColorWhite
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan

	// Inks. Marbles are drawn in these, and renderers make them bold.
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorOrange
	ColorBrightWhite
)

// Ink reports whether c is one of the bold marble colors.
func (c Color) Ink() bool {
	return c >= ColorBrightRed && c <= ColorBrightWhite
}
