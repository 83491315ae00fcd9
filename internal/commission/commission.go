// Package commission считает начисления и сторно комиссий за выдачу заказов.
// Пакет не хранит состояние: на вход заказ, исполнитель и ставки,
// на выходе упорядоченный список изменений балансов.
package commission

import (
	"github.com/shopspring/decimal"

	"pickpoint/internal/domain"
)

// Rates ставки комиссий в долях от суммы заказа
type Rates struct {
	CuratorSolo    decimal.Decimal // куратор выдал сам
	CuratorAssist  decimal.Decimal // доля куратора при выдаче стажёром
	Intern         decimal.Decimal // доля стажёра
	AssistClawback decimal.Decimal // списание с куратора при возврате заказа стажёра
	Bonus          decimal.Decimal // бонус помогавшему стажёру при возврате
}

// DefaultRates ставки, которые использует пункт выдачи
func DefaultRates() Rates {
	return Rates{
		CuratorSolo:    decimal.RequireFromString("0.25"),
		CuratorAssist:  decimal.RequireFromString("0.05"),
		Intern:         decimal.RequireFromString("0.10"),
		AssistClawback: decimal.RequireFromString("0.03"),
		Bonus:          decimal.RequireFromString("0.03"),
	}
}

// Target чей баланс меняется
type Target struct {
	Curator  bool
	InternID string
}

// Delta одно изменение баланса. Amount положительный для начисления,
// отрицательный для списания. Счётчики меняются только у стажёров.
type Delta struct {
	Target   Target
	Amount   decimal.Decimal
	Issued   int64
	Returned int64
}

func (d Delta) IsDebit() bool { return d.Amount.IsNegative() }

// Engine калькулятор комиссий
type Engine struct {
	rates Rates
}

func NewEngine(rates Rates) *Engine {
	return &Engine{rates: rates}
}

func (e *Engine) Rates() Rates { return e.rates }

// OnIssue начисления за выдачу заказа
func (e *Engine) OnIssue(o domain.Order, actor domain.Actor) []Delta {
	total := o.TotalPrice
	if actor.IsCurator() {
		return []Delta{curator(total.Mul(e.rates.CuratorSolo))}
	}
	return []Delta{
		curator(total.Mul(e.rates.CuratorAssist)),
		{Target: Target{InternID: actor.InternID}, Amount: total.Mul(e.rates.Intern), Issued: 1},
	}
}

// OnReturn сторно начислений по исходному исполнителю и бонус помощнику.
// original nil, если заказ не выдавался; тогда сторнировать нечего.
func (e *Engine) OnReturn(o domain.Order, original *domain.Actor, helper *string) []Delta {
	total := o.TotalPrice
	var out []Delta
	if original != nil {
		if original.IsCurator() {
			out = append(out, curator(total.Mul(e.rates.CuratorSolo).Neg()))
		} else {
			out = append(out,
				curator(total.Mul(e.rates.AssistClawback).Neg()),
				Delta{Target: Target{InternID: original.InternID}, Amount: total.Mul(e.rates.Intern).Neg(), Returned: 1},
			)
		}
	}
	if helper != nil {
		out = append(out, Delta{Target: Target{InternID: *helper}, Amount: total.Mul(e.rates.Bonus)})
	}
	return out
}

func curator(amount decimal.Decimal) Delta {
	return Delta{Target: Target{Curator: true}, Amount: amount}
}
