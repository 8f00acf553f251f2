package bidsheet

import (
	"fmt"
	"strings"
)

// FormatCurrency renders a dollar amount with thousands separators the way
// the estimate and proposal tables show it. Example: 12500.75 -> "$12,500.75"
func FormatCurrency(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	whole := fmt.Sprintf("%.2f", amount)
	intPart, fracPart, _ := strings.Cut(whole, ".")

	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)

	out := "$" + strings.Join(groups, ",") + "." + fracPart
	if negative {
		out = "-" + out
	}
	return out
}
