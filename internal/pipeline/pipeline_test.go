package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/himynameismarvin/budget-bop/internal/common"
	"github.com/himynameismarvin/budget-bop/internal/mapper"
	"github.com/himynameismarvin/budget-bop/internal/model"
	"github.com/himynameismarvin/budget-bop/internal/review"
)

const sampleCSV = `Date,Description,Amount
01/15/2024,STARBUCKS #2291,-5.75
01/15/2024,STARBUCKS #2291,-5.75
01/16/2024,PAYROLL DEPOSIT,2500.00
`

func TestProcessText_EndToEnd(t *testing.T) {
	pipe := NewWithDefaults(nil)

	result, err := pipe.ProcessText(sampleCSV, Options{})
	require.NoError(t, err)
	require.Len(t, result.Records, 3)

	// Mapping was auto-suggested from the headers.
	assert.Equal(t, "Date", result.Mapping[mapper.FieldDate])
	assert.Equal(t, "Description", result.Mapping[mapper.FieldDescription])
	assert.Equal(t, "Amount", result.Mapping[mapper.FieldAmount])

	first := result.Records[0]
	assert.Equal(t, "2024-01-15", first.Transaction.Date)
	assert.Equal(t, "Starbucks", first.NormalizedVendor)
	assert.GreaterOrEqual(t, first.VendorConfidence, 0.85)
	assert.Equal(t, "Dining Out", first.SuggestedCategory)
	assert.InDelta(t, 5.75, first.Transaction.Amount, 0.0001)
	assert.Equal(t, model.DirectionExpense, first.Transaction.Direction)
	assert.False(t, first.IsDuplicate)

	// Row two repeats row one; only the second occurrence is flagged.
	second := result.Records[1]
	assert.True(t, second.IsDuplicate)
	assert.Equal(t, first.Transaction.Hash, second.Transaction.Hash)

	third := result.Records[2]
	assert.Equal(t, model.DirectionIncome, third.Transaction.Direction)
	assert.Equal(t, "Income", third.SuggestedCategory)
	assert.False(t, third.IsDuplicate)

	assert.Equal(t, 3, result.Summary.Total)
	assert.Equal(t, 1, result.Summary.Duplicates)
}

func TestProcessText_KnownHashesFlagCrossBatchDuplicates(t *testing.T) {
	pipe := NewWithDefaults(nil)

	first, err := pipe.ProcessText(sampleCSV, Options{})
	require.NoError(t, err)

	known := make(map[string]bool)
	for _, r := range first.Records {
		known[r.Transaction.Hash] = true
	}

	second, err := pipe.ProcessText(sampleCSV, Options{KnownHashes: known})
	require.NoError(t, err)

	for _, r := range second.Records {
		assert.True(t, r.IsDuplicate)
	}
	assert.Equal(t, 3, second.Summary.Duplicates)
}

func TestProcessText_UnmappableHeadersFail(t *testing.T) {
	pipe := NewWithDefaults(nil)

	_, err := pipe.ProcessText("Foo,Bar\n1,2", Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrMissingRequiredField)
}

func TestProcessText_MappingOverride(t *testing.T) {
	pipe := NewWithDefaults(nil)

	mapping := mapper.Mapping{
		mapper.FieldDate:        "When",
		mapper.FieldDescription: "What",
		mapper.FieldAmount:      "How Much",
	}
	result, err := pipe.ProcessText("When,What,How Much\n2024-01-15,STARBUCKS,-5.75", Options{Mapping: mapping})
	require.NoError(t, err)

	require.Len(t, result.Records, 1)
	assert.Equal(t, "Starbucks", result.Records[0].NormalizedVendor)
}

func TestProcessText_HTMLTable(t *testing.T) {
	pipe := NewWithDefaults(nil)

	html := `<table>
<tr><th>Date</th><th>Description</th><th>Amount</th></tr>
<tr><td>2024-01-15</td><td>NETFLIX.COM</td><td>-15.99</td></tr>
</table>`

	result, err := pipe.ProcessText(html, Options{})
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "Netflix", result.Records[0].NormalizedVendor)
}

func TestProcessTransactions_PreParsedPath(t *testing.T) {
	pipe := NewWithDefaults(nil)

	result := pipe.ProcessTransactions([]model.Transaction{
		{
			ID:          "t1",
			Date:        "2024-01-15",
			Description: "UBER TRIP",
			Amount:      23.40,
			Direction:   model.DirectionExpense,
		},
	}, Options{})

	require.Len(t, result.Records, 1)
	assert.Equal(t, "Uber", result.Records[0].NormalizedVendor)
	assert.NotEmpty(t, result.Records[0].Transaction.Hash)
}

func TestPipeline_KnownCategoriesGateSuggestions(t *testing.T) {
	pipe := NewWithDefaults([]string{"Groceries"})

	result, err := pipe.ProcessText("Date,Description,Amount\n2024-01-15,NETFLIX,-15.99", Options{})
	require.NoError(t, err)

	require.Len(t, result.Records, 1)
	assert.Empty(t, result.Records[0].SuggestedCategory)
}

func TestRules_ExportImportRoundTrip(t *testing.T) {
	pipe := NewWithDefaults(nil)
	pipe.Normalizer().LearnFromCorrection("SQ *COFFEE 123", "Luna Coffee")
	pipe.Categorizer().LearnFromCorrection("SQ *COFFEE 123", "Coffee Budget")

	exported := pipe.ExportRules()

	fresh := NewWithDefaults(nil)
	fresh.ImportRules(exported)

	// The imported engines behave exactly like the originals.
	result, err := fresh.ProcessText("Date,Description,Amount\n2024-01-15,SQ *COFFEE 456,-4.50", Options{})
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "Luna Coffee", result.Records[0].NormalizedVendor)
	assert.Equal(t, "Coffee Budget", result.Records[0].SuggestedCategory)

	// Exporting again yields the same set.
	assert.Equal(t, exported, fresh.ExportRules())
}

func TestCommit_LearningRoundTrip(t *testing.T) {
	pipe := NewWithDefaults(nil)

	result, err := pipe.ProcessText("Date,Description,Amount\n2024-01-15,SQ *COFFEE 123,-4.50", Options{})
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.True(t, result.Records[0].NeedsReview)

	records := review.EditVendor(result.Records, result.Records[0].Transaction.ID, "Luna Coffee")

	committed := pipe.Commit(records)
	require.Len(t, committed, 1)

	// The correction converges: the same vendor text now normalizes with
	// high confidence and no review flag.
	again, err := pipe.ProcessText("Date,Description,Amount\n2024-01-16,SQ *COFFEE 789,-4.50", Options{})
	require.NoError(t, err)
	require.Len(t, again.Records, 1)
	assert.Equal(t, "Luna Coffee", again.Records[0].NormalizedVendor)
	assert.GreaterOrEqual(t, again.Records[0].VendorConfidence, 0.9)
}
