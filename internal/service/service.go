package service

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"pickpoint/internal/commission"
	"pickpoint/internal/domain"
	"pickpoint/internal/repository"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrMissingReason     = errors.New("missing return reason")
	ErrUnknownIntern     = errors.New("unknown intern")
)

// Persister сохраняет состояние после успешной операции
type Persister interface {
	Save(ctx context.Context) error
}

// Recorder получает события для метрик
type Recorder interface {
	OrderCreated()
	OrderTransition(to domain.OrderStatus, actor string)
	Commission(target string, amount decimal.Decimal)
	Withdrawal(target string, amount decimal.Decimal)
}

// Order lifecycle event kinds
const (
	EventOrderCreated  = "order.created"
	EventOrderIssued   = "order.issued"
	EventOrderReturned = "order.returned"
)

// Publisher рассылает события жизненного цикла заказа после коммита
type Publisher interface {
	OrderEvent(ctx context.Context, kind string, o domain.Order)
}

type nopRecorder struct{}

func (nopRecorder) OrderCreated()                              {}
func (nopRecorder) OrderTransition(domain.OrderStatus, string) {}
func (nopRecorder) Commission(string, decimal.Decimal)         {}
func (nopRecorder) Withdrawal(string, decimal.Decimal)         {}

type nopPublisher struct{}

func (nopPublisher) OrderEvent(context.Context, string, domain.Order) {}

// hooks общие внешние зависимости сервисов
type hooks struct {
	log     *zap.Logger
	persist Persister
	metrics Recorder
	events  Publisher
}

// Option настраивает сервис
type Option func(*hooks)

func WithLogger(l *zap.Logger) Option { return func(h *hooks) { h.log = l } }

func WithPersister(p Persister) Option { return func(h *hooks) { h.persist = p } }

func WithRecorder(r Recorder) Option { return func(h *hooks) { h.metrics = r } }

func WithPublisher(p Publisher) Option { return func(h *hooks) { h.events = p } }

func newHooks(opts []Option) hooks {
	h := hooks{log: zap.NewNop(), metrics: nopRecorder{}, events: nopPublisher{}}
	for _, opt := range opts {
		opt(&h)
	}
	return h
}

// saved сохраняет состояние вне транзакции; ошибка только логируется
func (h hooks) saved(ctx context.Context) {
	if h.persist == nil {
		return
	}
	if err := h.persist.Save(ctx); err != nil {
		h.log.Error("persist state", zap.Error(err))
	}
}

// balances применяет изменения из движка комиссий к балансам куратора и стажёров
type balances struct {
	interns repository.InternRepository
	ledger  repository.LedgerRepository
}

// apply must run inside a transaction, deltas in the given order
func (b balances) apply(ctx context.Context, h hooks, deltas []commission.Delta) error {
	for _, d := range deltas {
		if d.Target.Curator {
			cur, err := b.ledger.CuratorBalance(ctx)
			if err != nil {
				return err
			}
			if err := b.ledger.SetCuratorBalance(ctx, move(cur, d.Amount)); err != nil {
				return err
			}
			h.metrics.Commission(domain.CuratorID, d.Amount)
			continue
		}

		in, err := b.interns.GetByID(ctx, d.Target.InternID)
		if errors.Is(err, repository.ErrNotFound) {
			// intern removed after hand-off
			h.log.Warn("commission not attributed",
				zap.String("intern_id", d.Target.InternID),
				zap.String("amount", d.Amount.String()))
			continue
		}
		if err != nil {
			return err
		}
		in.Salary = move(in.Salary, d.Amount)
		if !d.IsDebit() {
			in.TotalEarned = in.TotalEarned.Add(d.Amount)
		}
		in.IssuedOrders += d.Issued
		in.ReturnedOrders += d.Returned
		if err := b.interns.Update(ctx, in); err != nil {
			return err
		}
		h.metrics.Commission("intern", d.Amount)
	}
	return nil
}

func move(balance, amount decimal.Decimal) decimal.Decimal {
	if amount.IsNegative() {
		return domain.Debit(balance, amount.Neg())
	}
	return domain.Credit(balance, amount)
}
