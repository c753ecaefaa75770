package catalog

import (
	"strings"

	"golang.org/x/text/cases"
)

// Genres accepted on albums, in their stored spelling.
var Genres = []string{"Rock", "Pop"}

// FoldName returns the key two names are compared by: trimmed and case-folded.
// A Caser is stateful, so one is built per call.
func FoldName(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// CanonicalGenre maps g onto its allow-listed spelling ("rock" -> "Rock").
// A blank genre is accepted and maps to "".
func CanonicalGenre(g string) (string, bool) {
	if strings.TrimSpace(g) == "" {
		return "", true
	}
	key := FoldName(g)
	for _, allowed := range Genres {
		if FoldName(allowed) == key {
			return allowed, true
		}
	}
	return "", false
}

func normalizeName(s string) string {
	return strings.TrimSpace(s)
}
