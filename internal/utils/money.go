package utils

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// MoneyScale is the number of fraction digits shown for amounts
const MoneyScale = 2

var printer = message.NewPrinter(language.English)

// FormatAmount renders an amount for display, e.g. "1,234.50 USD".
// Unknown currency codes are shown as given.
func FormatAmount(amount decimal.Decimal, code string) string {
	label := code
	if unit, err := currency.ParseISO(code); err == nil {
		label = unit.String()
	}
	f, _ := amount.Round(MoneyScale).Float64()
	return printer.Sprintf("%v %s", number.Decimal(f, number.Scale(MoneyScale)), label)
}

// IsCurrencyCode reports whether code is a recognised ISO 4217 code
func IsCurrencyCode(code string) bool {
	_, err := currency.ParseISO(code)
	return err == nil
}
