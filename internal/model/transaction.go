// Package model defines the core domain models used throughout the application.
package model

// Direction indicates whether a transaction moves money in or out.
// Amounts in this pipeline are always non-negative magnitudes; direction is
// tracked here and never folded into the numeric sign.
type Direction string

const (
	// DirectionIncome marks money coming in.
	DirectionIncome Direction = "income"
	// DirectionExpense marks money going out.
	DirectionExpense Direction = "expense"
)

// Transaction is the canonical transaction flowing through the pipeline.
// It is created by the mapper from a raw source row, enriched in place by the
// hasher, normalizer and categorizer, and then handed to the caller. The
// pipeline never mutates it after handoff.
type Transaction struct {
	ID          string    `json:"id"`
	Date        string    `json:"date"` // YYYY-MM-DD when parseable, original text otherwise
	Description string    `json:"description"`
	Vendor      string    `json:"vendor"`
	Amount      float64   `json:"amount"` // non-negative magnitude
	Direction   Direction `json:"direction"`
	Category    string    `json:"category,omitempty"`
	Account     string    `json:"account,omitempty"`
	Reference   string    `json:"reference,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	Hash        string    `json:"hash,omitempty"`
	IsDuplicate bool      `json:"is_duplicate"`
	Confidence  float64   `json:"confidence,omitempty"`
	Issues      []string  `json:"issues,omitempty"`
}

// HasIssue reports whether the transaction carries the given quality flag.
func (t *Transaction) HasIssue(issue string) bool {
	for _, i := range t.Issues {
		if i == issue {
			return true
		}
	}
	return false
}

// AddIssue appends a quality flag, skipping duplicates.
func (t *Transaction) AddIssue(issue string) {
	if !t.HasIssue(issue) {
		t.Issues = append(t.Issues, issue)
	}
}
