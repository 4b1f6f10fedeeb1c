package media

import (
	"strings"
	"unicode"
)

const (
	// DefaultMaxLength is the longest save name kept without truncation.
	DefaultMaxLength = 140

	keepHead  = 60
	keepTail  = 60
	ellipsis  = "..."
	minLength = keepHead + len(ellipsis) + keepTail
)

// Namer builds save names bounded by MaxLength runes.
type Namer struct {
	MaxLength int
}

// SaveName builds a save name with DefaultMaxLength.
func SaveName(title, name, extension string) string {
	return Namer{MaxLength: DefaultMaxLength}.SaveName(title, name, extension)
}

// SaveName turns a post title and the URL file name into a single path segment:
//
//	"<title> - <name><extension>"
//
// Only letters, digits, spaces, periods and underscores of the title are kept.
// Names longer than MaxLength keep their first and last 60 runes around "...".
// When " - <name><extension>" alone is longer than 60 runes, the title is cut
// instead so the name stays whole and the file can still be found by Exists.
func (n Namer) SaveName(title, name, extension string) string {
	var b strings.Builder
	for _, r := range title {
		if keepRune(r) {
			b.WriteRune(r)
		}
	}
	suffix := []rune(" - " + name + extension)
	runes := []rune(strings.TrimRightFunc(b.String(), unicode.IsSpace) + string(suffix))

	bound := n.maxLength()
	switch {
	case len(runes) <= bound:
		return string(runes)
	case len(suffix) > keepTail && len(suffix) <= bound-len(ellipsis):
		head := runes[:bound-len(ellipsis)-len(suffix)]
		return string(head) + ellipsis + string(suffix)
	default:
		// a name longer than the bound itself is cut like any other
		return string(runes[:keepHead]) + ellipsis + string(runes[len(runes)-keepTail:])
	}
}

func (n Namer) maxLength() int {
	if n.MaxLength < minLength {
		return minLength
	}
	return n.MaxLength
}

func keepRune(r rune) bool {
	switch r {
	case ' ', '.', '_':
		return true
	}
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}
