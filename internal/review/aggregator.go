// Package review combines the pipeline's outputs into per-transaction review
// records and exposes the bulk operations the host uses to correct, confirm
// and commit a batch.
package review

import (
	"strings"

	"github.com/himynameismarvin/budget-bop/internal/categorizer"
	"github.com/himynameismarvin/budget-bop/internal/mapper"
	"github.com/himynameismarvin/budget-bop/internal/model"
	"github.com/himynameismarvin/budget-bop/internal/normalizer"
)

// Aggregator builds review records from hashed transactions and routes user
// feedback back into the learning engines.
type Aggregator struct {
	normalizer      *normalizer.Engine
	categorizer     *categorizer.Engine
	knownCategories []string
}

// New creates an aggregator. knownCategories gates the categorizer's
// suggestions; an empty set disables the filter.
func New(norm *normalizer.Engine, cat *categorizer.Engine, knownCategories []string) *Aggregator {
	return &Aggregator{
		normalizer:      norm,
		categorizer:     cat,
		knownCategories: knownCategories,
	}
}

// Review runs normalization and categorization over a hashed batch and
// attaches validation flags. Soft data-quality problems never abort the
// batch; they accumulate on the record so the caller can present partial
// success.
func (a *Aggregator) Review(transactions []model.Transaction) []model.ReviewRecord {
	records := make([]model.ReviewRecord, 0, len(transactions))

	for _, txn := range transactions {
		norm := a.normalizer.Normalize(txn.Description)
		txn.Vendor = norm.NormalizedName
		txn.Confidence = norm.Confidence

		record := model.ReviewRecord{
			NormalizedVendor:  norm.NormalizedName,
			VendorRuleID:      norm.RuleID,
			VendorConfidence:  norm.Confidence,
			VendorSuggestions: norm.Suggestions,
			NeedsReview:       norm.NeedsReview,
			IsDuplicate:       txn.IsDuplicate,
		}

		// Source-supplied categories win over suggestions.
		if txn.Category != "" {
			record.SuggestedCategory = txn.Category
			record.CategoryConfidence = 1.0
		} else {
			cat := a.categorizer.Categorize(txn.Description, a.knownCategories)
			record.SuggestedCategory = cat.Category
			record.CategoryRuleID = cat.RuleID
			record.CategoryConfidence = cat.Confidence
			record.CategoryRankings = cat.Rankings
			if cat.NeedsReview {
				record.NeedsReview = true
			}
		}

		record.ValidationErrors = validate(txn, norm.Fallback)
		for _, v := range record.ValidationErrors {
			txn.AddIssue(v)
		}

		record.Transaction = txn
		records = append(records, record)
	}

	return records
}

// validate attaches soft data-quality flags per transaction. A vendor that
// only exists as fallback text counts as missing: the row stays out of commit
// until the reviewer supplies a real vendor.
func validate(txn model.Transaction, vendorFallback bool) []string {
	var errs []string
	if vendorFallback {
		errs = append(errs, model.ValidationMissingVendor)
	}
	if txn.Amount <= 0 {
		errs = append(errs, model.ValidationInvalidAmount)
	}
	if !mapper.IsNormalizedDate(txn.Date) {
		errs = append(errs, model.ValidationInvalidDate)
	}
	return errs
}

// ApplyCategory sets a category on every record whose transaction ID is in
// ids. Records whose suggestion differed are marked edited so they feed
// learning at commit and drop out of ready counts.
func ApplyCategory(records []model.ReviewRecord, ids []string, category string) []model.ReviewRecord {
	idSet := make(map[string]bool, len(ids))
	for _, id := range ids {
		idSet[id] = true
	}

	for i := range records {
		if !idSet[records[i].Transaction.ID] {
			continue
		}
		if records[i].Transaction.Category != category {
			records[i].Transaction.Category = category
			if !strings.EqualFold(records[i].SuggestedCategory, category) {
				records[i].Edited = true
			}
		}
	}
	return records
}

// EditVendor records a manual vendor correction on the record with the given
// transaction ID. Supplying a vendor resolves the missing-vendor flag, so the
// corrected row becomes committable.
func EditVendor(records []model.ReviewRecord, id, vendor string) []model.ReviewRecord {
	for i := range records {
		if records[i].Transaction.ID != id {
			continue
		}
		if records[i].Transaction.Vendor != vendor {
			records[i].Transaction.Vendor = vendor
			records[i].Edited = true
		}
		if strings.TrimSpace(vendor) != "" {
			records[i].ValidationErrors = dropFlag(records[i].ValidationErrors, model.ValidationMissingVendor)
			records[i].Transaction.Issues = dropFlag(records[i].Transaction.Issues, model.ValidationMissingVendor)
		}
		break
	}
	return records
}

func dropFlag(flags []string, code string) []string {
	var out []string
	for _, f := range flags {
		if f != code {
			out = append(out, f)
		}
	}
	return out
}

// Summarize aggregates a batch for partial-success reporting.
func Summarize(records []model.ReviewRecord) model.ReviewSummary {
	summary := model.ReviewSummary{Total: len(records)}
	for _, r := range records {
		switch {
		case r.Ready():
			summary.Ready++
		default:
			summary.Flagged++
		}
		if r.IsDuplicate {
			summary.Duplicates++
		}
		if r.Edited {
			summary.Edited++
		}
	}
	return summary
}

// Commit finalizes the subset of records with zero validation errors and
// feeds user feedback into the learning engines. Corrected vendors and
// categories become learned rules; rejected category suggestions are
// penalized; untouched suggestions are confirmed. Persistence of the
// returned transactions is the caller's decision, opt-in per batch.
func (a *Aggregator) Commit(records []model.ReviewRecord) []model.Transaction {
	var committed []model.Transaction

	for _, record := range records {
		if len(record.ValidationErrors) > 0 {
			continue
		}

		txn := record.Transaction

		if record.Edited {
			if txn.Vendor != "" && !strings.EqualFold(txn.Vendor, record.NormalizedVendor) {
				a.normalizer.LearnFromCorrection(txn.Description, txn.Vendor)
			}
			if txn.Category != "" && !strings.EqualFold(txn.Category, record.SuggestedCategory) {
				if record.CategoryRuleID != "" {
					a.categorizer.Reject(record.CategoryRuleID)
				}
				a.categorizer.LearnFromCorrection(txn.Description, txn.Category)
			}
		} else {
			if record.VendorRuleID != "" {
				a.normalizer.Confirm(record.VendorRuleID)
			}
			if record.CategoryRuleID != "" {
				a.categorizer.Confirm(record.CategoryRuleID)
			}
			if txn.Category == "" {
				txn.Category = record.SuggestedCategory
			}
		}

		committed = append(committed, txn)
	}

	return committed
}
