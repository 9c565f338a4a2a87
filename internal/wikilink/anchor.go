package wikilink

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var anchorSeparators = strings.NewReplacer(" ", "-", "_", "-")

// NormalizeAnchor turns a heading reference into a slug: every character is
// lowercased and each space or underscore becomes one hyphen. Runs are not
// collapsed and nothing else is touched.
func NormalizeAnchor(anchor string) string {
	// cases.Caser keeps state, so one is made per call.
	return anchorSeparators.Replace(cases.Lower(language.Und).String(anchor))
}
