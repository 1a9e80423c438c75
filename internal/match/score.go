package match

import "strings"

// ExactBonus is added to a rule's confidence when its literal pattern matches
// the text exactly. An exact hit is stronger evidence than the rule's history
// alone.
const ExactBonus = 0.1

// ScoreLiteral scores a literal (non-regex) rule pattern against cleaned
// text. Exact matches earn the rule's confidence plus ExactBonus, capped at
// 1.0. Substring matches in either direction scale confidence by the length
// overlap ratio. Otherwise token-level similarity above simThreshold scales
// confidence by that similarity. Anything else scores zero.
func ScoreLiteral(pattern, text string, confidence, simThreshold, wordThreshold float64) float64 {
	p := strings.ToLower(strings.TrimSpace(pattern))
	t := strings.ToLower(strings.TrimSpace(text))
	if p == "" || t == "" {
		return 0
	}

	if p == t {
		score := confidence + ExactBonus
		if score > 1.0 {
			score = 1.0
		}
		return score
	}

	if strings.Contains(t, p) || strings.Contains(p, t) {
		shorter, longer := len(p), len(t)
		if shorter > longer {
			shorter, longer = longer, shorter
		}
		return confidence * float64(shorter) / float64(longer)
	}

	if sim := WordSimilarity(p, t, wordThreshold); sim > simThreshold {
		return confidence * sim
	}

	return 0
}
