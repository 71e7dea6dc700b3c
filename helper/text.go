package helper

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/gosimple/slug"
)

// NormalizeText folds case and accents: "Jardim São José" -> "jardim sao jose".
func NormalizeText(s string) string {
	return strings.ReplaceAll(slug.Make(strings.TrimSpace(s)), "-", " ")
}

// Similarity scores how well name matches query, in [0, 1]. Only equal
// normalized strings score 1; a name containing the query scores at least
// 0.5 and grows with the share of the name the query covers.
func Similarity(query, name string) float64 {
	q, n := NormalizeText(query), NormalizeText(name)
	if q == "" || n == "" {
		return 0
	}
	if q == n {
		return 1
	}

	ql, nl := utf8.RuneCountInString(q), utf8.RuneCountInString(n)
	maxLen := ql
	if nl > maxLen {
		maxLen = nl
	}
	sim := 1 - float64(levenshtein.ComputeDistance(q, n))/float64(maxLen)

	if strings.Contains(n, q) {
		contained := 0.5 + 0.5*float64(ql)/float64(nl)
		if contained > sim {
			sim = contained
		}
	}
	if sim >= 1 {
		sim = 0.99
	}
	if sim < 0 {
		sim = 0
	}
	return sim
}
