package numeric

import (
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// StringLength returns the number of Unicode scalar values in s, not its
// byte length: "Envelope" has 8, a single 4-byte emoji has 1. Each byte of an
// invalid UTF-8 sequence counts as one scalar (decoded as U+FFFD).
func StringLength(s string) int {
	return utf8.RuneCountInString(s)
}

// TextStats describes a string under the different notions of "length".
type TextStats struct {
	Bytes     int  `json:"bytes" yaml:"bytes"`
	Scalars   int  `json:"scalars" yaml:"scalars"`
	Graphemes int  `json:"graphemes" yaml:"graphemes"`
	Width     int  `json:"width" yaml:"width"`
	Valid     bool `json:"valid_utf8" yaml:"valid_utf8"`
}

// Stats measures s. Scalars always equals StringLength(s); Graphemes counts
// user-perceived characters, so a flag emoji made of two regional indicators
// is 2 scalars but 1 grapheme. Width is the monospace terminal cell width.
func Stats(s string) TextStats {
	return TextStats{
		Bytes:     len(s),
		Scalars:   StringLength(s),
		Graphemes: uniseg.GraphemeClusterCount(s),
		Width:     runewidth.StringWidth(s),
		Valid:     utf8.ValidString(s),
	}
}
