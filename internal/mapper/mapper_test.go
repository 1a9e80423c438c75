package mapper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/himynameismarvin/budget-bop/internal/common"
	"github.com/himynameismarvin/budget-bop/internal/model"
	"github.com/himynameismarvin/budget-bop/internal/parser"
)

func TestSuggest(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		want    Mapping
	}{
		{
			name:    "standard bank export",
			headers: []string{"Date", "Description", "Amount"},
			want: Mapping{
				FieldDate:        "Date",
				FieldDescription: "Description",
				FieldAmount:      "Amount",
			},
		},
		{
			name:    "alternate names",
			headers: []string{"Posted", "Payee", "Debit", "Check Number"},
			want: Mapping{
				FieldDate:        "Posted",
				FieldDescription: "Payee",
				FieldAmount:      "Debit",
				FieldReference:   "Check Number",
			},
		},
		{
			name:    "each header claimed once",
			headers: []string{"Transaction Date", "Amount"},
			want: Mapping{
				FieldDate:   "Transaction Date",
				FieldAmount: "Amount",
			},
		},
		{
			name:    "unrecognized headers unmapped",
			headers: []string{"Foo", "Bar"},
			want:    Mapping{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Suggest(tt.headers))
		})
	}
}

func TestSuggest_IsDeterministic(t *testing.T) {
	headers := []string{"Date", "Description", "Amount", "Account", "Category"}
	first := Suggest(headers)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Suggest(headers))
	}
}

func TestMappingValidate(t *testing.T) {
	complete := Mapping{
		FieldDate:        "Date",
		FieldDescription: "Description",
		FieldAmount:      "Amount",
	}
	assert.NoError(t, complete.Validate())

	missing := Mapping{FieldDate: "Date", FieldDescription: "Description"}
	err := missing.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrMissingRequiredField)
	assert.Contains(t, err.Error(), "amount")
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2024-01-15", "2024-01-15"},
		{"01/15/2024", "2024-01-15"},
		{"01-15-2024", "2024-01-15"},
		{"01.15.2024", "2024-01-15"},
		{"2024/01/15", "2024-01-15"},
		{"15 Jan 2024", "2024-01-15"},
		{"Jan 15, 2024", "2024-01-15"},
		{"January 15, 2024", "2024-01-15"},
		{"01/15/24", "2024-01-15"},
		{"  2024-01-15  ", "2024-01-15"},
		{"not a date", "not a date"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDate(tt.input))
		})
	}
}

func TestIsNormalizedDate(t *testing.T) {
	assert.True(t, IsNormalizedDate("2024-01-15"))
	assert.False(t, IsNormalizedDate("01/15/2024"))
	assert.False(t, IsNormalizedDate("not a date"))
	assert.False(t, IsNormalizedDate(""))
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input         string
		wantAmount    float64
		wantDirection model.Direction
	}{
		{"123.45", 123.45, model.DirectionIncome},
		{"-123.45", 123.45, model.DirectionExpense},
		{"(123.45)", 123.45, model.DirectionExpense},
		{"$1,234.56", 1234.56, model.DirectionIncome},
		{"-$42.00", 42.00, model.DirectionExpense},
		{"($99.99)", 99.99, model.DirectionExpense},
		{"+50", 50, model.DirectionIncome},
		{"€12.50", 12.50, model.DirectionIncome},
		{"0", 0, model.DirectionIncome},
		{"garbage", 0, model.DirectionExpense},
		{"", 0, model.DirectionExpense},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			amount, direction := ParseAmount(tt.input)
			assert.InDelta(t, tt.wantAmount, amount, 0.0001)
			assert.Equal(t, tt.wantDirection, direction)
			assert.GreaterOrEqual(t, amount, 0.0)
		})
	}
}

func TestTransform(t *testing.T) {
	table := &parser.Table{
		Headers: []string{"Date", "Description", "Amount", "Category"},
		Rows: []map[string]string{
			{"Date": "01/15/2024", "Description": "STARBUCKS #2291", "Amount": "-5.75", "Category": ""},
			{"Date": "2024-01-16", "Description": "PAYROLL DEPOSIT", "Amount": "2500.00", "Category": "Income"},
		},
	}
	mapping := Mapping{
		FieldDate:        "Date",
		FieldDescription: "Description",
		FieldAmount:      "Amount",
		FieldCategory:    "Category",
	}

	txns := Transform(table, mapping)
	require.Len(t, txns, 2)

	assert.NotEmpty(t, txns[0].ID)
	assert.Equal(t, "2024-01-15", txns[0].Date)
	assert.Equal(t, "STARBUCKS #2291", txns[0].Description)
	assert.Equal(t, "STARBUCKS", txns[0].Vendor)
	assert.InDelta(t, 5.75, txns[0].Amount, 0.0001)
	assert.Equal(t, model.DirectionExpense, txns[0].Direction)

	assert.Equal(t, model.DirectionIncome, txns[1].Direction)
	assert.Equal(t, "Income", txns[1].Category)
	assert.NotEqual(t, txns[0].ID, txns[1].ID)
}

func TestTransform_BadCellsNeverFail(t *testing.T) {
	table := &parser.Table{
		Headers: []string{"Date", "Description", "Amount"},
		Rows: []map[string]string{
			{"Date": "soon", "Description": "MYSTERY", "Amount": "??"},
		},
	}
	mapping := Mapping{FieldDate: "Date", FieldDescription: "Description", FieldAmount: "Amount"}

	txns := Transform(table, mapping)
	require.Len(t, txns, 1)
	assert.Equal(t, "soon", txns[0].Date)
	assert.Equal(t, 0.0, txns[0].Amount)
}
