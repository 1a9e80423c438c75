package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDelimited_QuotedFields(t *testing.T) {
	table := ParseDelimited("h1,h2,h3\na,\"b,c\",d", ',')

	require.Len(t, table.Rows, 1)
	assert.Equal(t, []string{"h1", "h2", "h3"}, table.Headers)
	assert.Equal(t, "a", table.Rows[0]["h1"])
	assert.Equal(t, "b,c", table.Rows[0]["h2"])
	assert.Equal(t, "d", table.Rows[0]["h3"])
}

func TestParseDelimited_EscapedQuotes(t *testing.T) {
	table := ParseDelimited("name,note\nacme,\"say \"\"hi\"\"\"", ',')

	require.Len(t, table.Rows, 1)
	assert.Equal(t, `say "hi"`, table.Rows[0]["note"])
}

func TestParse_DelimiterDetection(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantHeaders []string
	}{
		{
			name:        "comma",
			input:       "a,b,c\n1,2,3",
			wantHeaders: []string{"a", "b", "c"},
		},
		{
			name:        "semicolon",
			input:       "a;b;c\n1;2;3",
			wantHeaders: []string{"a", "b", "c"},
		},
		{
			name:        "tab",
			input:       "a\tb\tc\n1\t2\t3",
			wantHeaders: []string{"a", "b", "c"},
		},
		{
			name:        "most frequent delimiter wins",
			input:       "a,b,c;d\n1,2,3",
			wantHeaders: []string{"a", "b", "c;d"},
		},
		{
			name:        "no delimiter degrades to single column",
			input:       "header\nvalue",
			wantHeaders: []string{"header"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.wantHeaders, table.Headers)
			assert.Len(t, table.Rows, 1)
		})
	}
}

func TestParse_EmptyInputParsesToZeroRows(t *testing.T) {
	table, err := Parse("")
	require.NoError(t, err)
	assert.Empty(t, table.Headers)
	assert.Empty(t, table.Rows)
}

func TestParseDelimited_DropsEmptyRows(t *testing.T) {
	table := ParseDelimited("a,b\n1,2\n\n , \n3,4", ',')

	require.Len(t, table.Rows, 2)
	assert.Equal(t, "1", table.Rows[0]["a"])
	assert.Equal(t, "3", table.Rows[1]["a"])
}

func TestParseDelimited_SynthesizesMissingHeaders(t *testing.T) {
	table := ParseDelimited("a,,c\n1,2,3,4", ',')

	assert.Equal(t, []string{"a", "Column 2", "c", "Column 4"}, table.Headers)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "2", table.Rows[0]["Column 2"])
	assert.Equal(t, "4", table.Rows[0]["Column 4"])
}

func TestParseDelimited_DuplicateHeadersStayUnique(t *testing.T) {
	table := ParseDelimited("amount,amount\n1,2", ',')

	assert.Equal(t, []string{"amount", "Column 2"}, table.Headers)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "1", table.Rows[0]["amount"])
	assert.Equal(t, "2", table.Rows[0]["Column 2"])
}

func TestParseDelimited_SpaceDelimiterCollapsesRuns(t *testing.T) {
	table := ParseDelimited("col1 col2 col3\na  b   c", ' ')

	require.Len(t, table.Rows, 1)
	assert.Equal(t, "b", table.Rows[0]["col2"])
	assert.Equal(t, "c", table.Rows[0]["col3"])
}

func TestParseDelimited_ShortRowsPadWithEmpty(t *testing.T) {
	table := ParseDelimited("a,b,c\n1,2", ',')

	require.Len(t, table.Rows, 1)
	assert.Equal(t, "", table.Rows[0]["c"])
}
