package media

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Filename is the base name and extension found in an image URL,
// e.g. "luce08zttse21" and ".jpg" for https://i.redd.it/luce08zttse21.jpg.
type Filename struct {
	Name      string
	Extension string
}

// String returns the name as it appears at the end of a saved file.
func (f Filename) String() string {
	return f.Name + f.Extension
}

// Extract locates the last "name.ext" segment of a URL.
//
// The search follows the same order a backtracking regex engine would use for
//
//	(http.+?)(\w+)(\.\w+)+(?!.*(\w+)(\.jpg|\.png)+)
//
// that is: the first "http", the shortest prefix after it, a greedy word run
// for the name and greedy dotted word runs for the extension (the last run
// wins), rejected while a "word.jpg" or "word.png" still follows.
// It reports false when nothing matches.
func Extract(url string) (Filename, bool) {
	for start := strings.Index(url, "http"); start >= 0; {
		// The prefix needs at least one character after "http" and never spans a newline.
		for p := start + len("http") + 1; p <= len(url); p++ {
			if url[p-1] == '\n' {
				break
			}
			if f, ok := matchAt(url, p); ok {
				return f, true
			}
		}
		next := strings.Index(url[start+1:], "http")
		if next < 0 {
			break
		}
		start += next + 1
	}
	return Filename{}, false
}

// matchAt tries (\w+)(\.\w+)+ plus the lookahead at byte offset p.
func matchAt(s string, p int) (Filename, bool) {
	ends := wordEnds(s, p)
	for k := len(ends) - 1; k >= 0; k-- {
		if ext, ok := extensions(s, ends[k]); ok {
			return Filename{Name: s[p:ends[k]], Extension: ext}, true
		}
	}
	return Filename{}, false
}

// extensions tries (\.\w+)+ at i, greedy and with backtracking, and returns
// the last repetition of the first attempt that passes the lookahead.
func extensions(s string, i int) (string, bool) {
	if i >= len(s) || s[i] != '.' {
		return "", false
	}
	ends := wordEnds(s, i+1)
	for k := len(ends) - 1; k >= 0; k-- {
		e := ends[k]
		if ext, ok := extensions(s, e); ok {
			return ext, true
		}
		if !imageFollows(s[e:]) {
			return s[i:e], true
		}
	}
	return "", false
}

// wordEnds returns, in ascending order, every offset at which a word run
// starting at i could end.
func wordEnds(s string, i int) []int {
	var ends []int
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !isWord(r) {
			break
		}
		i += size
		ends = append(ends, i)
	}
	return ends
}

// imageFollows reports whether a word character followed by ".jpg" or ".png"
// appears in rest before the first newline.
func imageFollows(rest string) bool {
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		rest = rest[:nl]
	}
	for j := 1; j < len(rest); j++ {
		if rest[j] != '.' {
			continue
		}
		if !strings.HasPrefix(rest[j:], ".jpg") && !strings.HasPrefix(rest[j:], ".png") {
			continue
		}
		if r, _ := utf8.DecodeLastRuneInString(rest[:j]); isWord(r) {
			return true
		}
	}
	return false
}

func isWord(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}
