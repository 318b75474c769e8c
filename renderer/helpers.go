package renderer

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// ConditionalBlock lets you fully write a block and decide at the end to print it or not.
// If the block function returns true, the content is printed to w, otherwise it is discarded.
func ConditionalBlock(w io.Writer, block func(io.Writer) bool) {
	bw := &bytes.Buffer{}
	if block(bw) {
		io.Copy(w, bw)
	}
}

// USD formats v as dollars, e.g. "$1,234.56".
func USD(v float64) string {
	cents := decimal.NewFromFloat(v).Shift(2).Round(0).IntPart()
	return money.New(cents, money.USD).Display()
}

// SignedUSD is like USD with an explicit "+" on gains.
func SignedUSD(v float64) string {
	if v > 0 {
		return "+" + USD(v)
	}
	return USD(v)
}

// Percent formats a percentage with two decimals, e.g. "+12.50%".
func Percent(v float64) string {
	return fmt.Sprintf("%+.2f%%", v)
}

// cell escapes free text for a markdown table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	if s == "" {
		return " "
	}
	return s
}
