package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanModelJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "raw json passes through",
			input: `[{"date":"2024-01-15"}]`,
			want:  `[{"date":"2024-01-15"}]`,
		},
		{
			name:  "strips json code fence",
			input: "```json\n[{\"date\":\"2024-01-15\"}]\n```",
			want:  `[{"date":"2024-01-15"}]`,
		},
		{
			name:  "strips bare code fence",
			input: "```\n[]\n```",
			want:  `[]`,
		},
		{
			name:  "slices out array from surrounding prose",
			input: "Here are the transactions:\n[{\"amount\":1}]\nLet me know if you need more.",
			want:  `[{"amount":1}]`,
		},
		{
			name:  "trims whitespace",
			input: "  \n[]\n  ",
			want:  `[]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanModelJSON(tt.input))
		})
	}
}

func TestRowsToTable(t *testing.T) {
	table := rowsToTable([]candidateRow{
		{Date: "2024-01-15", Description: "STARBUCKS #2291", Amount: -5.75},
		{Date: "2024-01-16", Description: "PAYROLL DEPOSIT", Amount: 2500},
	})

	assert.Equal(t, []string{"Date", "Description", "Amount"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "-5.75", table.Rows[0]["Amount"])
	assert.Equal(t, "STARBUCKS #2291", table.Rows[0]["Description"])
	assert.Equal(t, "2500.00", table.Rows[1]["Amount"])
}

func TestRowsToTable_EmptyInput(t *testing.T) {
	table := rowsToTable(nil)
	assert.Equal(t, []string{"Date", "Description", "Amount"}, table.Headers)
	assert.Empty(t, table.Rows)
}
