package matching

import (
	"strings"
	"unicode"
)

// Honorifics and generational suffixes stripped before comparison. These skew
// ratio-based scoring without carrying identity information.
var (
	namePrefixes = []string{"mr.", "mrs.", "ms.", "dr.", "prof.", "sir", "madam"}
	nameSuffixes = []string{"jr.", "sr.", "ii", "iii", "iv", "v"}
)

// Normalize lowercases a name and collapses internal whitespace. It performs
// no stemming or transliteration.
func Normalize(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// NormalizeStrict additionally strips honorifics and punctuation. Used for
// generating comparison variants, not for the exact-match check.
func NormalizeStrict(name string) string {
	n := Normalize(name)
	for _, p := range namePrefixes {
		if rest, ok := strings.CutPrefix(n, p+" "); ok {
			n = rest
			break
		}
	}
	for _, s := range nameSuffixes {
		if rest, ok := strings.CutSuffix(n, " "+s); ok {
			n = rest
			break
		}
	}
	var b strings.Builder
	for _, r := range n {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// nameComponents splits a full name into first/middle/last parts.
type nameComponents struct {
	first  string
	middle string
	last   string
}

func splitName(full string) nameComponents {
	parts := strings.Fields(strings.TrimSpace(full))
	switch len(parts) {
	case 0:
		return nameComponents{}
	case 1:
		return nameComponents{first: parts[0]}
	case 2:
		return nameComponents{first: parts[0], last: parts[1]}
	default:
		return nameComponents{
			first:  parts[0],
			middle: strings.Join(parts[1:len(parts)-1], " "),
			last:   parts[len(parts)-1],
		}
	}
}

// Variations generates common orderings and contractions of a name: the name
// itself, its strict normalization, first-last, last-first, and an initialed
// form. Callers compare against all of them and keep the best score.
func Variations(name string) []string {
	variations := []string{name}
	if name == "" {
		return variations
	}

	if n := NormalizeStrict(name); n != name {
		variations = append(variations, n)
	}

	c := splitName(name)
	if c.first == "" || c.last == "" {
		return variations
	}
	for _, v := range []string{
		c.first + " " + c.last,
		c.last + " " + c.first,
		string([]rune(c.first)[0]) + ". " + c.last,
	} {
		if !contains(variations, v) {
			variations = append(variations, v)
		}
	}
	return variations
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
