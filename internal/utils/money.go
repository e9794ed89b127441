package utils

import "fmt"

// FormatMoney keeps consistent decimal formatting for currency fields.
func FormatMoney(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

// FormatMoneyOr renders amount or fallback when there is no amount.
func FormatMoneyOr(amount *float64, fallback string) string {
	if amount == nil {
		return fallback
	}
	return FormatMoney(*amount)
}
