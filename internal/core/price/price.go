// Package price renders upstream price strings for display. Nothing here feeds back into requests.
package price

import (
	"strings"

	"github.com/shopspring/decimal"

	perr "domamarket/internal/platform/errors"
)

// DefaultSymbol is used when a price has no currency
const DefaultSymbol = "ETH"

var (
	dust     = decimal.RequireFromString("0.0001")
	one      = decimal.NewFromInt(1)
	thousand = decimal.NewFromInt(1000)
)

// Parse reads a decimal price string
func Parse(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, perr.Wrapf(err, perr.ErrorCodeValidation, "invalid price %q", s)
	}
	return d, nil
}

// Format renders a price with its symbol; unparsable input renders as zero
func Format(price, symbol string) string {
	if symbol == "" {
		symbol = DefaultSymbol
	}
	d, err := Parse(price)
	if err != nil {
		return "0 " + symbol
	}
	return Amount(d) + " " + symbol
}

// Amount renders d without a symbol
func Amount(d decimal.Decimal) string {
	switch {
	case d.IsZero():
		return "0"
	case d.LessThan(dust):
		return "<0.0001"
	case d.LessThan(one):
		return d.StringFixed(4)
	case d.LessThan(thousand):
		return d.StringFixed(2)
	}
	return group(d.Round(2).String())
}

// FromWei shifts an integer amount in base units down by decimals
func FromWei(wei string, decimals int) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(wei))
	if err != nil {
		return decimal.Zero, perr.Wrapf(err, perr.ErrorCodeValidation, "invalid base-unit amount %q", wei)
	}
	if !d.Equal(d.Truncate(0)) {
		return decimal.Zero, perr.Validationf("base-unit amount %q is fractional", wei)
	}
	return d.Shift(int32(-decimals)), nil
}

// group inserts thousands separators into a plain decimal string
func group(s string) string {
	intPart, frac, hasFrac := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}
