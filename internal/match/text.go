// Package match provides the fuzzy text scoring shared by the vendor
// normalizer and the auto-categorizer.
package match

import (
	"regexp"
	"strings"
)

var (
	// Banking noise stripped before any rule matching. Point-of-sale and
	// card-network markers accumulate at the front of descriptions; codes,
	// locations and dates accumulate at the back.
	prefixPattern = regexp.MustCompile(`(?i)^(pos\s+|debit card purchase[:\s]*|debit\s+|credit\s+|checkcard\s+\d*\s*|check card\s+|visa\s+|ach\s+|web\s+|tst\*\s*|sq\s*\*|paypal\s*\*|pp\*\s*|py\s*\*|amzn mktp\s+)`)

	parenPattern = regexp.MustCompile(`\([^)]*\)`)
	datePattern  = regexp.MustCompile(`^\d{1,2}[/-]\d{1,2}([/-]\d{2,4})?$`)
	digitPattern = regexp.MustCompile(`\d`)
	codePattern  = regexp.MustCompile(`^[#*]?[a-zA-Z0-9-]+$`)
	spacePattern = regexp.MustCompile(`\s+`)
)

// CleanVendorText strips known banking noise from a raw description: card
// network prefixes, parenthetical location codes, trailing transaction-ID-like
// codes and trailing dates. Whitespace is collapsed. The result may be empty
// if the input was nothing but noise.
func CleanVendorText(text string) string {
	cleaned := parenPattern.ReplaceAllString(strings.TrimSpace(text), " ")

	for {
		stripped := prefixPattern.ReplaceAllString(cleaned, "")
		if stripped == cleaned {
			break
		}
		cleaned = strings.TrimSpace(stripped)
	}

	tokens := strings.Fields(cleaned)
	for len(tokens) > 1 && isNoiseToken(tokens[len(tokens)-1]) {
		tokens = tokens[:len(tokens)-1]
	}

	return spacePattern.ReplaceAllString(strings.Join(tokens, " "), " ")
}

// isNoiseToken reports whether a trailing token looks like a transaction ID,
// store number or date rather than part of the vendor name.
func isNoiseToken(token string) bool {
	if datePattern.MatchString(token) {
		return true
	}
	if !codePattern.MatchString(token) {
		return false
	}
	digits := len(digitPattern.FindAllString(token, -1))
	if digits == 0 {
		return false
	}
	// All-digit tokens are always codes; mixed tokens need enough digits to
	// rule out names like 7-Eleven.
	if digits == len(strings.TrimLeft(token, "#*")) {
		return true
	}
	return digits >= 3
}

// FirstSignificantWord returns the first token of the cleaned text long
// enough to identify a vendor, falling back to the first token. Used to seed
// literal patterns for learned rules.
func FirstSignificantWord(text string) string {
	tokens := strings.Fields(strings.ToLower(CleanVendorText(text)))
	if len(tokens) == 0 {
		return ""
	}
	for _, tok := range tokens {
		if len(tok) >= 4 {
			return tok
		}
	}
	return tokens[0]
}
