// Package parser converts raw clipboard or file text (CSV, TSV, HTML table)
// into a uniform headers+rows structure. It is a pure function layer with no
// state; everything downstream consumes its Table output.
package parser

import (
	"fmt"
	"strings"
)

// Table is the parsed form of a tabular source. Rows map header name to cell
// text; Headers preserves source column order for display.
type Table struct {
	Headers []string
	Rows    []map[string]string
}

// Parse detects the input format and parses it. HTML table markup is tried
// first, then delimited text with a best-guess delimiter. Delimited input
// always succeeds, degrading to single-column parsing; only HTML without a
// table element is a hard error.
func Parse(input string) (*Table, error) {
	if looksLikeHTML(input) {
		return ParseHTML(input)
	}
	return ParseDelimited(input, detectDelimiter(firstNonEmptyLine(input))), nil
}

// ParseDelimited parses delimiter-separated text. The header row is the first
// non-empty line; rows that are entirely empty after trimming are dropped.
func ParseDelimited(input string, delimiter rune) *Table {
	table := &Table{Headers: []string{}}

	lines := strings.Split(strings.ReplaceAll(input, "\r\n", "\n"), "\n")
	var records [][]string
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := splitLine(line, delimiter)
		if allEmpty(fields) {
			continue
		}
		records = append(records, fields)
	}

	if len(records) == 0 {
		return table
	}

	table.Headers = buildHeaders(records)

	for _, fields := range records[1:] {
		row := make(map[string]string, len(table.Headers))
		for i, header := range table.Headers {
			if i < len(fields) {
				row[header] = strings.TrimSpace(fields[i])
			} else {
				row[header] = ""
			}
		}
		table.Rows = append(table.Rows, row)
	}

	return table
}

// buildHeaders takes the first record as the header row, synthesizing
// "Column N" for blank cells and for columns present in wider data rows.
func buildHeaders(records [][]string) []string {
	width := 0
	for _, fields := range records {
		if len(fields) > width {
			width = len(fields)
		}
	}

	headers := make([]string, width)
	seen := make(map[string]bool, width)
	for i := 0; i < width; i++ {
		name := ""
		if i < len(records[0]) {
			name = strings.TrimSpace(records[0][i])
		}
		if name == "" || seen[name] {
			name = fmt.Sprintf("Column %d", i+1)
		}
		seen[name] = true
		headers[i] = name
	}
	return headers
}

// splitLine splits a single line on the delimiter, honoring RFC4180-style
// double-quote escaping: a quoted field may contain the delimiter, and ""
// inside a quoted field is a literal quote.
func splitLine(line string, delimiter rune) []string {
	var fields []string
	var field strings.Builder
	inQuotes := false

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				field.WriteRune('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case ch == delimiter && !inQuotes:
			fields = append(fields, field.String())
			field.Reset()
			// Runs of spaces count as one delimiter.
			if delimiter == ' ' {
				for i+1 < len(runes) && runes[i+1] == ' ' {
					i++
				}
			}
		default:
			field.WriteRune(ch)
		}
	}
	fields = append(fields, field.String())

	return fields
}

// detectDelimiter picks the best-guess delimiter by comparing counts in the
// header line, preferring comma over semicolon over tab over space on ties.
func detectDelimiter(line string) rune {
	candidates := []rune{',', ';', '\t', ' '}
	best := ','
	bestCount := 0
	for _, c := range candidates {
		if n := strings.Count(line, string(c)); n > bestCount {
			best = c
			bestCount = n
		}
	}
	return best
}

func firstNonEmptyLine(input string) string {
	for _, line := range strings.Split(input, "\n") {
		if strings.TrimSpace(line) != "" {
			return line
		}
	}
	return ""
}

func looksLikeHTML(input string) bool {
	lower := strings.ToLower(input)
	return strings.Contains(lower, "<table") || strings.Contains(lower, "<html") || strings.Contains(lower, "<body")
}

func allEmpty(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
