package celltype

import "golang.org/x/text/cases"

var (
	trueWords  = []string{"true", "1"}
	falseWords = []string{"false", "0"}
)

// foldedIn reports whether s case-insensitively equals one of words.
func foldedIn(s string, words []string) bool {
	folded := cases.Fold().String(s)
	for _, w := range words {
		if folded == w {
			return true
		}
	}
	return false
}
