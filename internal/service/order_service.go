package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pickpoint/internal/commission"
	"pickpoint/internal/domain"
	"pickpoint/internal/repository"
)

// OrderService реализует жизненный цикл заказа: создание, выдача, возврат.
// Комиссии применяются в той же транзакции, что и смена статуса.
type OrderService struct {
	hooks
	balances
	orders repository.OrderRepository
	tx     repository.TxManager
	engine *commission.Engine
}

func NewOrderService(orders repository.OrderRepository, interns repository.InternRepository, ledger repository.LedgerRepository, tx repository.TxManager, engine *commission.Engine, opts ...Option) *OrderService {
	return &OrderService{
		hooks:    newHooks(opts),
		balances: balances{interns: interns, ledger: ledger},
		orders:   orders,
		tx:       tx,
		engine:   engine,
	}
}

const barcodeAttempts = 5

// CreateOrder создаёт заказ в статусе ожидания. Сумма считается один раз по копии позиций.
// Пустой штрих-код заменяется сгенерированным.
func (s *OrderService) CreateOrder(ctx context.Context, customer, barcode string, items []domain.OrderItem) (*domain.Order, error) {
	customer = strings.TrimSpace(customer)
	if customer == "" {
		return nil, fmt.Errorf("%w: customer name is required", ErrInvalidInput)
	}
	// validate items
	for _, it := range items {
		if it.Quantity <= 0 || it.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: item %q", ErrInvalidInput, it.Name)
		}
	}
	snapshot := append([]domain.OrderItem{}, items...)

	var created *domain.Order
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		code := strings.TrimSpace(barcode)
		if code == "" {
			var err error
			if code, err = s.freeBarcode(ctx); err != nil {
				return err
			}
		}
		o := domain.Order{
			ID:           uuid.NewString(),
			CustomerName: customer,
			Barcode:      code,
			Status:       domain.OrderStatusWaiting,
			Items:        snapshot,
			TotalPrice:   domain.TotalOf(snapshot),
		}
		if err := s.orders.Create(ctx, &o); err != nil {
			return err
		}
		created = &o
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("order created",
		zap.String("order_id", created.ID),
		zap.String("barcode", created.Barcode),
		zap.String("total", created.TotalPrice.String()))
	s.metrics.OrderCreated()
	s.events.OrderEvent(ctx, EventOrderCreated, *created)
	s.saved(ctx)
	return created, nil
}

func (s *OrderService) freeBarcode(ctx context.Context) (string, error) {
	for range barcodeAttempts {
		code := GenerateBarcode()
		_, err := s.orders.GetByBarcode(ctx, code)
		if errors.Is(err, repository.ErrNotFound) {
			return code, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", fmt.Errorf("no free barcode after %d attempts", barcodeAttempts)
}

// GenerateBarcode штрих-код вида 8B0301927
func GenerateBarcode() string {
	return fmt.Sprintf("8B%07d", rand.IntN(10_000_000))
}

// GetOrder возвращает заказ по id
func (s *OrderService) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	return s.orders.GetByID(ctx, id)
}

// FindByBarcode ищет последний заказ с таким штрих-кодом
func (s *OrderService) FindByBarcode(ctx context.Context, barcode string) (*domain.Order, error) {
	if barcode == "" {
		return nil, ErrInvalidInput
	}
	return s.orders.GetByBarcode(ctx, barcode)
}

// ListOrders поиск по имени получателя или штрих-коду, новые первыми
func (s *OrderService) ListOrders(ctx context.Context, f repository.OrderFilter) ([]domain.Order, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, fmt.Errorf("%w: status %q", ErrInvalidInput, f.Status)
	}
	return s.orders.List(ctx, f)
}

// Stats счётчики заказов по статусам
func (s *OrderService) Stats(ctx context.Context) (domain.Stats, error) {
	list, err := s.orders.List(ctx, repository.OrderFilter{})
	if err != nil {
		return domain.Stats{}, err
	}
	st := domain.Stats{Total: len(list)}
	for _, o := range list {
		switch o.Status {
		case domain.OrderStatusWaiting:
			st.Waiting++
		case domain.OrderStatusIssued:
			st.Issued++
		case domain.OrderStatusReturned:
			st.Returned++
		}
	}
	return st, nil
}

// Issue выдаёт ожидающий заказ и начисляет комиссию исполнителю.
// Стажёр должен существовать в реестре.
func (s *OrderService) Issue(ctx context.Context, id string, actor domain.Actor) (*domain.Order, error) {
	var updated *domain.Order
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		o, err := s.load(ctx, id)
		if err != nil {
			return err
		}
		if o.Status != domain.OrderStatusWaiting {
			return fmt.Errorf("%w: order %s is %s", ErrInvalidTransition, id, o.Status)
		}
		if err := s.knownIntern(ctx, actor); err != nil {
			return err
		}

		if err := s.apply(ctx, s.hooks, s.engine.OnIssue(*o, actor)); err != nil {
			return err
		}
		a := actor
		o.Status = domain.OrderStatusIssued
		o.IssuedBy = &a
		if err := s.orders.Update(ctx, o); err != nil {
			return err
		}
		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("order issued",
		zap.String("order_id", updated.ID),
		zap.String("actor", actor.String()),
		zap.String("total", updated.TotalPrice.String()))
	s.metrics.OrderTransition(domain.OrderStatusIssued, actor.String())
	s.events.OrderEvent(ctx, EventOrderIssued, *updated)
	s.saved(ctx)
	return updated, nil
}

// MarkReturned оформляет возврат из ожидания или после выдачи.
// Сторно считается по исполнителю выдачи, helper получает бонус независимо от него.
func (s *OrderService) MarkReturned(ctx context.Context, id, reason string, helper *string) (*domain.Order, error) {
	reason = strings.TrimSpace(reason)
	var updated *domain.Order
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		o, err := s.load(ctx, id)
		if err != nil {
			return err
		}
		if o.Status == domain.OrderStatusReturned {
			return fmt.Errorf("%w: order %s is already returned", ErrInvalidTransition, id)
		}
		if reason == "" {
			return ErrMissingReason
		}
		if helper != nil {
			if err := s.knownIntern(ctx, domain.InternActor(*helper)); err != nil {
				return err
			}
		}

		if err := s.apply(ctx, s.hooks, s.engine.OnReturn(*o, o.IssuedBy, helper)); err != nil {
			return err
		}
		o.Status = domain.OrderStatusReturned
		o.ReturnReason = reason
		if err := s.orders.Update(ctx, o); err != nil {
			return err
		}
		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	fields := []zap.Field{
		zap.String("order_id", updated.ID),
		zap.String("reason", reason),
	}
	issuedBy := ""
	if updated.IssuedBy != nil {
		issuedBy = updated.IssuedBy.String()
		fields = append(fields, zap.String("issued_by", issuedBy))
	}
	if helper != nil {
		fields = append(fields, zap.String("helper", *helper))
	}
	s.log.Info("order returned", fields...)
	s.metrics.OrderTransition(domain.OrderStatusReturned, issuedBy)
	s.events.OrderEvent(ctx, EventOrderReturned, *updated)
	s.saved(ctx)
	return updated, nil
}

// load maps a missing order to ErrInvalidTransition
func (s *OrderService) load(ctx context.Context, id string) (*domain.Order, error) {
	o, err := s.orders.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: order %s not found", ErrInvalidTransition, id)
	}
	return o, err
}

func (s *OrderService) knownIntern(ctx context.Context, actor domain.Actor) error {
	if actor.IsCurator() {
		return nil
	}
	_, err := s.interns.GetByID(ctx, actor.InternID)
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrUnknownIntern, actor.InternID)
	}
	return err
}
