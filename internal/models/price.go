package models

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var pricePrinter = message.NewPrinter(language.English)

// FormatPrice renders a whole-Rupee amount, e.g. 4650 -> "Rs. 4,650".
func FormatPrice(amount int64) string {
	return pricePrinter.Sprintf("Rs. %d", amount)
}
