package match

import (
	"strings"
	"unicode"
)

// Accessor affixes ignored when comparing member names, so that "GetValue"
// is close to "Value" and "CloseFunc" to "Close".
var (
	accessorPrefixes = []string{"get", "set", "is"}
	accessorSuffixes = []string{"async", "func", "id"}
)

// Similarity scores two member names between 0 and 1. Names are compared
// case-insensitively word by word, once in full and once without accessor
// affixes; the better score wins.
func Similarity(a, b string) float64 {
	wa, wb := words(a), words(b)

	return max(
		closeness(strings.Join(wa, ""), strings.Join(wb, "")),
		closeness(stem(wa), stem(wb)),
	)
}

// words splits a Go identifier into lower case words at underscores and
// case changes. "HTTPStatusCode" yields http, status, code.
func words(name string) []string {
	var (
		out []string
		cur []rune
	)

	flush := func() {
		if len(cur) > 0 {
			out = append(out, strings.ToLower(string(cur)))
			cur = cur[:0]
		}
	}

	runes := []rune(name)
	for i, r := range runes {
		if r == '_' {
			flush()
			continue
		}

		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			acronymEnd := unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1])

			if !unicode.IsUpper(prev) || acronymEnd {
				flush()
			}
		}

		cur = append(cur, r)
	}

	flush()

	return out
}

// stem joins the words without a leading accessor prefix and a trailing
// accessor suffix. A single word is never reduced to nothing.
func stem(ws []string) string {
	if len(ws) > 1 && contains(accessorPrefixes, ws[0]) {
		ws = ws[1:]
	}

	s := strings.Join(ws, "")
	for _, suffix := range accessorSuffixes {
		if len(s) > len(suffix) && strings.HasSuffix(s, suffix) {
			return strings.TrimSuffix(s, suffix)
		}
	}

	return s
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}

	return false
}

// closeness is 1 minus the edit distance relative to the longer string.
func closeness(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)

	longest := max(len(ra), len(rb))
	if longest == 0 {
		return 1
	}

	return 1 - float64(editDistance(ra, rb))/float64(longest)
}

// editDistance counts the single rune insertions, deletions and
// substitutions turning a into b. It keeps one row of the table.
func editDistance(a, b []rune) int {
	if len(a) < len(b) {
		a, b = b, a
	}

	row := make([]int, len(b)+1)
	for j := range row {
		row[j] = j
	}

	for i := 1; i <= len(a); i++ {
		diag := row[0]
		row[0] = i

		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}

			next := min(row[j]+1, row[j-1]+1, diag+cost)
			diag, row[j] = row[j], next
		}
	}

	return row[len(b)]
}
