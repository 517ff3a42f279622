package render

import (
	"fmt"
	"strings"

	"github.com/komsit37/pmt/pkg/pmt/quote"
)

// FormatPrice renders a price per the display policy: symbols on the
// domestic boards (.KS/.KQ) show as integers with thousands separators,
// everything else with two decimals.
func FormatPrice(v float64, symbol string) string {
	upper := strings.ToUpper(symbol)
	if strings.HasSuffix(upper, ".KS") || strings.HasSuffix(upper, ".KQ") {
		return formatIntComma(int(v))
	}
	return formatFloatComma(v, 2)
}

// FormatChange renders a signed percent change.
func FormatChange(v float64) string {
	return fmt.Sprintf("%+.2f%%", v)
}

// FormatChangeFor picks the unit from the symbol's fetch kind: spread
// series move in rate points, everything else in percent.
func FormatChangeFor(v float64, symbol string) string {
	if quote.ParseSpec(symbol).Kind == quote.KindSpread {
		return fmt.Sprintf("%+.2f pt", v)
	}
	return FormatChange(v)
}

// FormatPEG renders a PEG ratio, or a dash when unavailable.
func FormatPEG(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *v)
}

// formatIntComma formats an integer with comma thousand separators.
func formatIntComma(n int) string {
	neg := n < 0
	if neg {
		n = -n
	}
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}
	out := make([]byte, 0, len(s)+len(s)/3)
	rem := len(s) % 3
	if rem == 0 {
		rem = 3
	}
	out = append(out, s[:rem]...)
	for i := rem; i < len(s); i += 3 {
		out = append(out, ',')
		out = append(out, s[i:i+3]...)
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}

// formatFloatComma formats a float with fixed decimals and comma separators
// on the integer part.
func formatFloatComma(v float64, decimals int) string {
	s := fmt.Sprintf(fmt.Sprintf("%%.%df", decimals), v)
	dot := strings.IndexByte(s, '.')
	if dot == -1 {
		return s
	}
	intPart := s[:dot]
	fracPart := s[dot:]
	sign := ""
	if strings.HasPrefix(intPart, "-") || strings.HasPrefix(intPart, "+") {
		sign = intPart[:1]
		intPart = intPart[1:]
	}
	n := len(intPart)
	if n <= 3 {
		return sign + intPart + fracPart
	}
	out := make([]byte, 0, n+n/3)
	rem := n % 3
	if rem == 0 {
		rem = 3
	}
	out = append(out, intPart[:rem]...)
	for i := rem; i < n; i += 3 {
		out = append(out, ',')
		out = append(out, intPart[i:i+3]...)
	}
	return sign + string(out) + fracPart
}
