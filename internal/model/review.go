package model

// Validation error codes attached to review records. These are soft
// data-quality flags; a flagged row never aborts the batch.
const (
	ValidationMissingVendor = "missing_vendor"
	ValidationInvalidAmount = "invalid_amount"
	ValidationInvalidDate   = "invalid_date"
)

// ReviewRecord is the per-transaction output of the pipeline: the transaction
// plus everything a reviewer needs to accept or correct it.
type ReviewRecord struct {
	Transaction        Transaction `json:"transaction"`
	NormalizedVendor   string      `json:"normalized_vendor"`
	VendorRuleID       string      `json:"vendor_rule_id,omitempty"`
	CategoryRuleID     string      `json:"category_rule_id,omitempty"`
	VendorConfidence   float64     `json:"vendor_confidence"`
	VendorSuggestions  []string    `json:"vendor_suggestions,omitempty"`
	SuggestedCategory  string      `json:"suggested_category,omitempty"`
	CategoryConfidence float64     `json:"category_confidence,omitempty"`
	CategoryRankings   []string    `json:"category_rankings,omitempty"`
	ValidationErrors   []string    `json:"validation_errors,omitempty"`
	NeedsReview        bool        `json:"needs_review"`
	IsDuplicate        bool        `json:"is_duplicate"`
	Edited             bool        `json:"edited"`
}

// Ready reports whether the record can be committed without human attention.
func (r *ReviewRecord) Ready() bool {
	return len(r.ValidationErrors) == 0 && !r.Edited
}

// ReviewSummary aggregates a batch for partial-success reporting.
type ReviewSummary struct {
	Total      int `json:"total"`
	Ready      int `json:"ready"`
	Flagged    int `json:"flagged"`
	Duplicates int `json:"duplicates"`
	Edited     int `json:"edited"`
}
