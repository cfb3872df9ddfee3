// Package match implements the lexical similarity used to pair supplier
// offers with catalog products.
package match

import "strings"

// Normalize lowercases the input and collapses runs of whitespace, so OCR
// output and catalog names compare on tokens rather than formatting.
func Normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// Score returns a token-sort similarity ratio in [0, 100]. Both inputs are
// normalized, their tokens sorted and rejoined, and the result is the
// Levenshtein ratio of the two token strings. Token order therefore does not
// matter, which is what OCR'd supplier captions need.
func Score(a, b string) float64 {
	sa := tokenSort(a)
	sb := tokenSort(b)
	if sa == "" && sb == "" {
		return 100
	}
	if sa == "" || sb == "" {
		return 0
	}

	dist := levenshtein(sa, sb)
	longest := max(len([]rune(sa)), len([]rune(sb)))
	return 100 * (1 - float64(dist)/float64(longest))
}

func tokenSort(s string) string {
	tokens := strings.Fields(strings.ToLower(s))
	// insertion sort; token counts are tiny
	for i := 1; i < len(tokens); i++ {
		for j := i; j > 0 && tokens[j] < tokens[j-1]; j-- {
			tokens[j], tokens[j-1] = tokens[j-1], tokens[j]
		}
	}
	return strings.Join(tokens, " ")
}

// levenshtein computes the edit distance between two strings, rune-wise.
func levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}
