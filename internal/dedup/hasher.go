// Package dedup computes content fingerprints for transactions and flags
// duplicates within a batch or against previously imported hashes.
// Deduplication never deletes data; it only annotates. Deletion is a user
// decision made downstream.
package dedup

import (
	"crypto/sha1" //nolint:gosec // fingerprinting, not security
	"encoding/hex"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/himynameismarvin/budget-bop/internal/model"
)

// maxDescriptionLen bounds the hash input so pathological descriptions do not
// dominate fingerprinting.
const maxDescriptionLen = 100

var (
	// Keep only letters, digits, spaces, '_', '.' and '-'. Punctuation noise
	// must not make semantically identical transactions hash apart.
	punctuationPattern = regexp.MustCompile(`[^\p{L}\p{N}_ .-]`)
	whitespacePattern  = regexp.MustCompile(`\s+`)
)

// Hash computes the deterministic content fingerprint of a transaction over
// its normalized (date, amount, description) tuple. Two transactions
// differing only in casing, spacing or punctuation of the description hash
// identically; same-day same-amount near-identical text may merge, which is
// accepted and surfaced via the duplicate flag for human review.
func Hash(txn model.Transaction) string {
	data := txn.Date + "|" + normalizeAmount(txn.Amount) + "|" + NormalizeDescription(txn.Description)
	sum := sha1.Sum([]byte(data)) //nolint:gosec // fingerprinting, not security
	return hex.EncodeToString(sum[:])
}

// NormalizeDescription lower-cases, strips punctuation, collapses whitespace
// and truncates the description to maxDescriptionLen characters for hashing.
// Truncation is on runes, never mid-way through a multi-byte character.
func NormalizeDescription(description string) string {
	s := strings.ToLower(description)
	s = punctuationPattern.ReplaceAllString(s, "")
	s = whitespacePattern.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) > maxDescriptionLen {
		s = string([]rune(s)[:maxDescriptionLen])
	}
	return s
}

func normalizeAmount(amount float64) string {
	return decimal.NewFromFloat(amount).StringFixed(2)
}

// HashBatch assigns hashes in source order and marks every transaction after
// the first occurrence of a hash as a duplicate. Ordering matters: the first
// occurrence always wins, so correctness depends on rows staying in source
// order end to end.
func HashBatch(transactions []model.Transaction) []model.Transaction {
	seen := make(map[string]bool, len(transactions))

	for i := range transactions {
		transactions[i].Hash = Hash(transactions[i])
		if seen[transactions[i].Hash] {
			transactions[i].IsDuplicate = true
		} else {
			seen[transactions[i].Hash] = true
		}
	}

	return transactions
}

// FlagKnown marks transactions whose hash appears in a caller-supplied set of
// already-known hashes, e.g. from prior imports. Transactions without a hash
// are hashed first.
func FlagKnown(transactions []model.Transaction, known map[string]bool) []model.Transaction {
	for i := range transactions {
		if transactions[i].Hash == "" {
			transactions[i].Hash = Hash(transactions[i])
		}
		if known[transactions[i].Hash] {
			transactions[i].IsDuplicate = true
		}
	}
	return transactions
}
