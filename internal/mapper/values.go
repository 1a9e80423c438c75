package mapper

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/himynameismarvin/budget-bop/internal/model"
)

// isoDate is the canonical date layout all parseable dates normalize to.
const isoDate = "2006-01-02"

// usLayouts are tried after an as-is ISO check, most common first.
var usLayouts = []string{
	"01/02/2006",
	"01-02-2006",
	"01.02.2006",
}

// fallbackLayouts cover the generic formats banks emit when nothing else fits.
var fallbackLayouts = []string{
	"2006/01/02",
	"02 Jan 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"01/02/06",
	time.RFC3339,
}

// NormalizeDate rewrites a source date to YYYY-MM-DD. Unparseable input is
// returned unmodified; downstream validation flags it rather than aborting
// the batch.
func NormalizeDate(value string) string {
	s := strings.TrimSpace(value)
	if s == "" {
		return s
	}

	if _, err := time.Parse(isoDate, s); err == nil {
		return s
	}

	for _, layout := range usLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(isoDate)
		}
	}

	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(isoDate)
		}
	}

	return s
}

// IsNormalizedDate reports whether a value is in canonical YYYY-MM-DD form.
func IsNormalizedDate(value string) bool {
	_, err := time.Parse(isoDate, value)
	return err == nil
}

// currencyReplacer strips the symbols and separators banks decorate amounts with.
var currencyReplacer = strings.NewReplacer("$", "", "€", "", "£", "", "¥", "", ",", "", " ", "", "\t", "")

// ParseAmount converts a source amount string to a non-negative magnitude and
// a direction. A value wrapped in parentheses or carrying a minus sign is an
// expense; the numeric sign is never kept on the magnitude. Unparseable
// amounts become zero, not an error.
func ParseAmount(value string) (float64, model.Direction) {
	s := strings.TrimSpace(value)

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}

	s = currencyReplacer.Replace(s)
	if strings.HasPrefix(s, "-") {
		negative = true
		s = strings.TrimPrefix(s, "-")
	}
	s = strings.TrimPrefix(s, "+")

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, model.DirectionExpense
	}

	magnitude := d.Abs().InexactFloat64()
	if negative {
		return magnitude, model.DirectionExpense
	}
	return magnitude, model.DirectionIncome
}
