// Package mapper maps arbitrary source columns onto canonical transaction
// fields and transforms parsed rows into model.Transaction values.
package mapper

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/himynameismarvin/budget-bop/internal/common"
	"github.com/himynameismarvin/budget-bop/internal/match"
	"github.com/himynameismarvin/budget-bop/internal/model"
	"github.com/himynameismarvin/budget-bop/internal/parser"
)

// Field names a canonical transaction field a source column can map to.
type Field string

// Canonical fields.
const (
	FieldDate        Field = "date"
	FieldDescription Field = "description"
	FieldAmount      Field = "amount"
	FieldAccount     Field = "account"
	FieldCategory    Field = "category"
	FieldReference   Field = "reference"
)

// requiredFields must be present in a mapping before Transform is invoked.
var requiredFields = []Field{FieldDate, FieldDescription, FieldAmount}

// fieldHints lists expected header substrings per canonical field, checked in
// order. Matching is case-insensitive substring containment.
var fieldHints = map[Field][]string{
	FieldDate:        {"date", "posted", "data"},
	FieldDescription: {"description", "desc", "memo", "payee", "merchant", "details", "narrative", "name"},
	FieldAmount:      {"amount", "value", "debit", "credit", "total", "montant"},
	FieldAccount:     {"account", "acct", "card"},
	FieldCategory:    {"category", "categoria", "type"},
	FieldReference:   {"reference", "ref", "check", "number"},
}

// fieldOrder keeps suggestion and validation deterministic.
var fieldOrder = []Field{FieldDate, FieldDescription, FieldAmount, FieldAccount, FieldCategory, FieldReference}

// Mapping assigns a source header to each canonical field. Fields without a
// usable source column are absent.
type Mapping map[Field]string

// Suggest proposes a mapping from the source headers using the hint table.
// Each header is claimed by at most one field; the caller confirms or
// overrides the result before transforming.
func Suggest(headers []string) Mapping {
	mapping := make(Mapping)
	claimed := make(map[string]bool)

	for _, field := range fieldOrder {
		for _, hint := range fieldHints[field] {
			for _, header := range headers {
				if claimed[header] {
					continue
				}
				if strings.Contains(strings.ToLower(header), hint) {
					mapping[field] = header
					claimed[header] = true
					break
				}
			}
			if _, ok := mapping[field]; ok {
				break
			}
		}
	}

	return mapping
}

// Validate checks that the mapping covers the required fields. Transform
// assumes a validated mapping; this is the caller's pre-condition check.
func (m Mapping) Validate() error {
	var missing []string
	for _, field := range requiredFields {
		if m[field] == "" {
			missing = append(missing, string(field))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", common.ErrMissingRequiredField, strings.Join(missing, ", "))
	}
	return nil
}

// Transform converts every parsed row into a canonical transaction. It never
// fails on bad cell data: unparseable dates pass through unmodified and
// unparseable amounts become zero, for downstream validation to flag.
// The mapping must already be validated.
func Transform(table *parser.Table, mapping Mapping) []model.Transaction {
	transactions := make([]model.Transaction, 0, len(table.Rows))

	for _, row := range table.Rows {
		description := strings.TrimSpace(row[mapping[FieldDescription]])
		amount, direction := ParseAmount(row[mapping[FieldAmount]])

		txn := model.Transaction{
			ID:          uuid.New().String(),
			Date:        NormalizeDate(row[mapping[FieldDate]]),
			Description: description,
			Vendor:      match.CleanVendorText(description),
			Amount:      amount,
			Direction:   direction,
			Category:    strings.TrimSpace(row[mapping[FieldCategory]]),
			Account:     strings.TrimSpace(row[mapping[FieldAccount]]),
			Reference:   strings.TrimSpace(row[mapping[FieldReference]]),
		}
		transactions = append(transactions, txn)
	}

	return transactions
}
