package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
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

// palette holds approximate RGB values for the named colors.
var palette = []struct {
	c       Color
	r, g, b int
}{
	{ColorRed, 205, 49, 49},
	{ColorGreen, 13, 188, 121},
	{ColorYellow, 229, 229, 16},
	{ColorBlue, 36, 114, 200},
	{ColorMagenta, 188, 63, 188},
	{ColorCyan, 17, 168, 205},
	{ColorWhite, 229, 229, 229},
	{ColorBrightRed, 241, 76, 76},
	{ColorBrightGreen, 35, 209, 139},
	{ColorBrightYellow, 245, 245, 67},
	{ColorBrightBlue, 59, 142, 234},
	{ColorBrightMagenta, 214, 112, 214},
	{ColorBrightCyan, 41, 184, 219},
	{ColorBrightWhite, 255, 255, 255},
	{ColorOrange, 255, 135, 0},
	{ColorGray, 138, 138, 138},
}

// NearestColor maps an 8-bit RGB triple to the closest palette color.
func NearestColor(r, g, b uint8) Color {
	best := ColorDefault
	bestDist := -1
	for _, p := range palette {
		dr, dg, db := int(r)-p.r, int(g)-p.g, int(b)-p.b
		d := dr*dr + dg*dg + db*db
		if bestDist < 0 || d < bestDist {
			best, bestDist = p.c, d
		}
	}
	return best
}
