package match

import "strings"

// minTokenContainLen is the minimum length both tokens need before a
// containment match counts. Shorter tokens collide too easily ("a" is inside
// almost everything).
const minTokenContainLen = 3

// Levenshtein computes the classic edit distance between two strings.
func Levenshtein(a, b string) int {
	if a == b {
		return 0
	}
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = minInt(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}

// Similarity normalizes edit distance by the longer string's length,
// yielding 1.0 for identical strings and 0.0 for entirely different ones.
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(Levenshtein(a, b))/float64(maxLen)
}

// WordSimilarity scores two strings token-wise. Tokens match if they are
// identical, if one contains the other and both exceed minTokenContainLen, or
// if their edit-distance similarity reaches wordThreshold (catches
// pluralization and typos without conflating unrelated short words).
func WordSimilarity(a, b string, wordThreshold float64) float64 {
	tokensA := strings.Fields(strings.ToLower(a))
	tokensB := strings.Fields(strings.ToLower(b))
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0
	}

	matched := 0
	used := make([]bool, len(tokensB))
	for _, ta := range tokensA {
		for j, tb := range tokensB {
			if used[j] {
				continue
			}
			if tokensMatch(ta, tb, wordThreshold) {
				used[j] = true
				matched++
				break
			}
		}
	}

	longer := len(tokensA)
	if len(tokensB) > longer {
		longer = len(tokensB)
	}
	return float64(matched) / float64(longer)
}

func tokensMatch(a, b string, wordThreshold float64) bool {
	if a == b {
		return true
	}
	if len(a) > minTokenContainLen && len(b) > minTokenContainLen &&
		(strings.Contains(a, b) || strings.Contains(b, a)) {
		return true
	}
	return Similarity(a, b) >= wordThreshold
}

func minInt(values ...int) int {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
