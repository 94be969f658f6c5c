package domain

import "github.com/shopspring/decimal"

// FormatMoney форматирует сумму в долларах с двумя знаками после точки.
func FormatMoney(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}
