package domain

import "github.com/shopspring/decimal"

// EfficiencyLevel уровень эффективности стажёра
type EfficiencyLevel string

const (
	EfficiencyNew       EfficiencyLevel = "new"
	EfficiencyExcellent EfficiencyLevel = "excellent"
	EfficiencyGood      EfficiencyLevel = "good"
	EfficiencyAverage   EfficiencyLevel = "average"
	EfficiencyWeak      EfficiencyLevel = "weak"
	EfficiencyPoor      EfficiencyLevel = "poor"
)

// Efficiency уровень и процент успешных выдач
type Efficiency struct {
	Level EfficiencyLevel `json:"level"`
	Score int64           `json:"score"`
}

// thresholds are checked top-down, lower bound inclusive
var efficiencyThresholds = []struct {
	min   decimal.Decimal
	level EfficiencyLevel
}{
	{decimal.RequireFromString("0.95"), EfficiencyExcellent},
	{decimal.RequireFromString("0.85"), EfficiencyGood},
	{decimal.RequireFromString("0.70"), EfficiencyAverage},
	{decimal.RequireFromString("0.50"), EfficiencyWeak},
}

// EfficiencyOf считает уровень по числу выданных и возвращённых заказов.
// Доля может быть отрицательной, если возвратов больше выдач.
func EfficiencyOf(issued, returned int64) Efficiency {
	if issued == 0 {
		return Efficiency{Level: EfficiencyNew, Score: 0}
	}
	rate := decimal.NewFromInt(issued - returned).Div(decimal.NewFromInt(issued))
	score := rate.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	for _, t := range efficiencyThresholds {
		if rate.GreaterThanOrEqual(t.min) {
			return Efficiency{Level: t.level, Score: score}
		}
	}
	return Efficiency{Level: EfficiencyPoor, Score: score}
}

// Efficiency эффективность стажёра
func (i Intern) Efficiency() Efficiency {
	return EfficiencyOf(i.IssuedOrders, i.ReturnedOrders)
}
