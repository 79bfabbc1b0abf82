package shared

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	bracketedFeature = regexp.MustCompile(`\s*[(\[](feat\.?|ft\.?|featuring).*?[)\]]`)
	trailingFeature  = regexp.MustCompile(`\s*\b(feat\.?|ft\.?|featuring)\s+.*$`)
	apostrophes      = regexp.MustCompile("[‘’‛′´`]")
	whitespace       = regexp.MustCompile(`\s+`)
)

// TrackKey is the normalized (title, artist) pair used to compare tracks across catalogs.
type TrackKey struct {
	Title  string
	Artist string
}

// String renders the key as "title|artist".
func (k TrackKey) String() string {
	return k.Title + "|" + k.Artist
}

// Normalize reduces s to its comparison form.
//
// The result is NFC composed and lower-cased, has featured-artist clauses removed
// (bracketed anywhere, or bare through the end of the string), apostrophe variants
// folded to ', and whitespace collapsed. Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	// stripping can leave a base letter next to a combining mark, so passes repeat until stable
	for {
		next := normalizePass(s)
		if next == s {
			return next
		}
		s = next
	}
}

func normalizePass(s string) string {
	s = strings.TrimSpace(norm.NFC.String(strings.ToLower(s)))
	// removing one clause can splice the text around it into another
	for {
		stripped := bracketedFeature.ReplaceAllString(s, "")
		if stripped == s {
			break
		}
		s = stripped
	}
	s = trailingFeature.ReplaceAllString(s, "")
	s = apostrophes.ReplaceAllString(s, "'")
	s = whitespace.ReplaceAllString(s, " ")
	return norm.NFC.String(strings.TrimSpace(s))
}

// NormalizeTrackKey builds the [TrackKey] for a title and artist.
func NormalizeTrackKey(title, artist string) TrackKey {
	return TrackKey{Title: Normalize(title), Artist: Normalize(artist)}
}
