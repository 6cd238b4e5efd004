package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var poundPrinter = message.NewPrinter(language.BritishEnglish)

// AmountToMinor converts pounds to pence. Digits beyond the second decimal
// place are dropped, so 25.509 becomes 2550.
func AmountToMinor(amount decimal.Decimal) int64 {
	return amount.Shift(2).Truncate(0).IntPart()
}

// MinorToAmount converts pence to pounds
func MinorToAmount(minor int64) decimal.Decimal {
	return decimal.New(minor, -2)
}

// FormatPounds renders pence as £ with thousands grouping and two decimals
func FormatPounds(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s£%s.%02d", sign, poundPrinter.Sprintf("%d", minor/100), minor%100)
}
