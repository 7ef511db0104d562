package ui

// Color accessors read the active theme, so output follows InitTheme and
// SetTheme without callers holding a Theme value.

func ColorReset() string     { return GetCurrentTheme().Reset }
func ColorBold() string      { return GetCurrentTheme().Bold }
func ColorUnderline() string { return GetCurrentTheme().Underline }
func ColorRed() string       { return GetCurrentTheme().Error }
func ColorGreen() string     { return GetCurrentTheme().Success }
func ColorYellow() string    { return GetCurrentTheme().Warning }
func ColorBlue() string      { return GetCurrentTheme().Primary }
func ColorMagenta() string   { return GetCurrentTheme().Info }
func ColorCyan() string      { return GetCurrentTheme().Primary }
func ColorDim() string       { return GetCurrentTheme().Secondary }

// Colorize wraps s in color and a reset, or returns s unchanged when the
// color is empty.
func Colorize(color, s string) string {
	if color == "" {
		return s
	}
	return color + s + ColorReset()
}

// ErrorColors adapts the active theme to apperrors.ColorProvider.
type ErrorColors struct{}

func (ErrorColors) Red() string    { return ColorRed() }
func (ErrorColors) Yellow() string { return ColorYellow() }
func (ErrorColors) Reset() string  { return ColorReset() }
