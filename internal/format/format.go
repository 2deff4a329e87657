package format

import (
	"strings"

	"github.com/shopspring/decimal"
)

// NA is rendered for absent or non-numeric values. Numeric zero is a present
// value and never maps to NA.
const NA = "N/A"

// Formatter renders financial magnitudes for display.
type Formatter struct {
	Symbol string
}

// New returns a Formatter with the given currency symbol, defaulting to "₹".
func New(symbol string) Formatter {
	if symbol == "" {
		symbol = "₹"
	}
	return Formatter{Symbol: symbol}
}

var (
	crore    = decimal.NewFromInt(10_000_000)
	lakh     = decimal.NewFromInt(100_000)
	thousand = decimal.NewFromInt(1_000)
)

// Currency renders a magnitude scaled by the largest matching unit:
// >= 1 crore -> "Cr", >= 1 lakh -> "L", >= 1 thousand -> "K", else unscaled
// with no unit. Thresholds are checked highest-first so exactly one fires.
func (f Formatter) Currency(v any, decimals int) string {
	d, ok := toDecimal(v)
	if !ok {
		return NA
	}
	unit := ""
	switch abs := d.Abs(); {
	case abs.GreaterThanOrEqual(crore):
		d = d.Div(crore)
		unit = "Cr"
	case abs.GreaterThanOrEqual(lakh):
		d = d.Div(lakh)
		unit = "L"
	case abs.GreaterThanOrEqual(thousand):
		d = d.Div(thousand)
		unit = "K"
	}
	out := f.Symbol + d.StringFixed(int32(decimals))
	if unit != "" {
		out += " " + unit
	}
	return out
}

// Percentage renders a signed percentage; non-negative values carry an
// explicit "+". The sign is taken from the value, not the rounded string.
func (f Formatter) Percentage(v any, decimals int) string {
	d, ok := toDecimal(v)
	if !ok {
		return NA
	}
	s := d.StringFixed(int32(decimals))
	if d.Sign() >= 0 {
		s = "+" + s
	} else if !strings.HasPrefix(s, "-") {
		s = "-" + s
	}
	return s + "%"
}

// Ratio renders a plain fixed-point value with no sign prefix and no unit.
func (f Formatter) Ratio(v any, decimals int) string {
	d, ok := toDecimal(v)
	if !ok {
		return NA
	}
	return d.StringFixed(int32(decimals))
}

// Number renders an integer-grouped value in the Indian convention
// (1,23,45,678): the last three digits form one group, the rest pair up.
func (f Formatter) Number(v any, decimals int) string {
	d, ok := toDecimal(v)
	if !ok {
		return NA
	}
	s := d.StringFixed(int32(decimals))
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	whole, frac, hasFrac := strings.Cut(s, ".")
	grouped := groupIndian(whole)
	if hasFrac {
		grouped += "." + frac
	}
	if neg {
		grouped = "-" + grouped
	}
	return grouped
}

func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(append(groups, tail), ",")
}

// toDecimal accepts the value shapes the wire layer produces: nil pointers
// and untyped nils are absent, numeric strings are parsed, everything else
// non-numeric is rejected.
func toDecimal(v any) (decimal.Decimal, bool) {
	switch x := v.(type) {
	case nil:
		return decimal.Decimal{}, false
	case *float64:
		if x == nil {
			return decimal.Decimal{}, false
		}
		return decimal.NewFromFloat(*x), true
	case float64:
		return decimal.NewFromFloat(x), true
	case float32:
		return decimal.NewFromFloat32(x), true
	case int:
		return decimal.NewFromInt(int64(x)), true
	case int64:
		return decimal.NewFromInt(x), true
	case decimal.Decimal:
		return x, true
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(x))
		if err != nil {
			return decimal.Decimal{}, false
		}
		return d, true
	default:
		return decimal.Decimal{}, false
	}
}
