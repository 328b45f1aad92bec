package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

var wordOnes = []string{
	"", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine",
	"ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen", "sixteen",
	"seventeen", "eighteen", "nineteen",
}

var wordTens = []string{
	"", "", "twenty", "thirty", "forty", "fifty", "sixty", "seventy", "eighty", "ninety",
}

// indianGroups are peeled off largest first.
var indianGroups = []struct {
	size int64
	name string
}{
	{10000000, "crore"},
	{100000, "lakh"},
	{1000, "thousand"},
	{100, "hundred"},
}

// AmountInWords renders a rupee amount in English words using Indian grouping.
// Example: 1234.50 → "One thousand two hundred and thirty four rupees and fifty paise only".
func AmountInWords(amount decimal.Decimal) string {
	return capitalizeFirst(amountWords(amount) + " only")
}

func amountWords(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return "minus " + amountWords(amount.Neg())
	}

	// Rounding to paise first keeps the fractional part below 100.
	amount = amount.Round(2)
	rupees := amount.Truncate(0)
	paise := amount.Sub(rupees).Shift(2).IntPart()

	var b strings.Builder
	if rupees.IsZero() {
		b.WriteString("zero rupees")
	} else {
		b.WriteString(numberToWords(rupees.IntPart()))
		b.WriteString(" rupees")
	}
	if paise != 0 {
		b.WriteString(" and ")
		b.WriteString(numberToWords(paise))
		b.WriteString(" paise")
	}
	return b.String()
}

func numberToWords(n int64) string {
	if n == 0 {
		return "zero"
	}

	var words []string
	for _, g := range indianGroups {
		if n >= g.size {
			words = append(words, numberToWords(n/g.size), g.name)
			n %= g.size
		}
	}

	if n > 0 {
		if len(words) > 0 {
			words = append(words, "and")
		}
		if n < 20 {
			words = append(words, wordOnes[n])
		} else {
			words = append(words, wordTens[n/10])
			if n%10 > 0 {
				words = append(words, wordOnes[n%10])
			}
		}
	}
	return strings.Join(words, " ")
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
