package domain

import "github.com/shopspring/decimal"

// Credit прибавляет сумму без ограничений
func Credit(balance, amount decimal.Decimal) decimal.Decimal {
	return balance.Add(amount)
}

// Debit списывает сумму, баланс не опускается ниже нуля
func Debit(balance, amount decimal.Decimal) decimal.Decimal {
	next := balance.Sub(amount)
	if next.IsNegative() {
		return decimal.Zero
	}
	return next
}
