package textutil

import (
	"regexp"
	"strings"

	"github.com/antzucaro/matchr"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)
var letterRunRegex = regexp.MustCompile(`\p{L}+`)

// MinSuggestionSimilarity is the Jaro-Winkler score a candidate needs before
// it is offered as a "did you mean" suggestion.
const MinSuggestionSimilarity = 0.8

func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.Trim(name, " \n\t")
	name = whitespaceRegex.ReplaceAllString(name, "")
	return name
}

// TitleCase upper-cases every letter that follows a non-letter and
// lower-cases the rest, "NEW YORK" becomes "New York" and
// "U.S. VIRGIN ISLANDS" becomes "U.S. Virgin Islands".
func TitleCase(s string) string {
	caser := cases.Title(language.Und)
	return letterRunRegex.ReplaceAllStringFunc(s, caser.String)
}

// ClosestMatch returns the candidate most similar to name, compared on
// normalized names. ok is false when no candidate reaches MinSuggestionSimilarity.
func ClosestMatch(name string, candidates []string) (best string, ok bool) {
	target := NormalizeName(name)
	if target == "" {
		return "", false
	}

	var bestScore float64
	for _, c := range candidates {
		score := matchr.JaroWinkler(target, NormalizeName(c), false)
		if score > bestScore {
			bestScore = score
			best = c
		}
	}
	if bestScore < MinSuggestionSimilarity {
		return "", false
	}
	return best, true
}
