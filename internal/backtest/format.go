package backtest

import (
	"fmt"
	"math"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

var (
	wholeDollars = money.NewFormatter(0, ".", ",", "$", "$1")
	maxMinor     = decimal.NewFromInt(math.MaxInt64)
)

// FormatMoney renders a balance as US dollars with cents, e.g. "$10,610.00".
func FormatMoney(v float64) string {
	return formatUSD(v, 2)
}

// FormatDollars renders a balance in whole dollars, e.g. "$10,610".
func FormatDollars(v float64) string {
	return formatUSD(v, 0)
}

func formatUSD(v float64, places int32) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Sprintf("$%v", v)
	}
	d := decimal.NewFromFloat(v).RoundBank(places)
	minor := d.Shift(places)
	if minor.Abs().GreaterThan(maxMinor) {
		// Beyond int64 minor units go-money cannot hold the amount.
		return groupUSD(d.StringFixed(places))
	}
	if places == 0 {
		return wholeDollars.Format(minor.IntPart())
	}
	return money.New(minor.IntPart(), money.USD).Display()
}

// groupUSD formats a plain decimal string like go-money's USD display.
func groupUSD(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	whole, frac, hasFrac := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return sign + "$" + b.String()
}

// FormatPercent renders a fractional rate with one decimal, e.g. 0.061 -> "6.1%".
func FormatPercent(x float64) string {
	return fmt.Sprintf("%.1f%%", x*100)
}

// ResultText is the one-line headline: final balance in whole dollars and
// CAGR, e.g. "$10,610     6.1%".
func ResultText(final, cagr float64) string {
	return fmt.Sprintf("%s     %s", FormatDollars(final), FormatPercent(cagr))
}
