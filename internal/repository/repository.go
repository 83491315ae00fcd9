package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"pickpoint/internal/domain"
)

// ErrNotFound возвращается, когда сущность не найдена
var ErrNotFound = errors.New("not found")

// OrderFilter параметры поиска заказов.
// Query ищется в имени получателя без учёта регистра или в штрих-коде.
type OrderFilter struct {
	Query  string
	Status domain.OrderStatus
}

// OrderRepository интерфейс хранилища заказов
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	GetByBarcode(ctx context.Context, barcode string) (*domain.Order, error)
	Update(ctx context.Context, o *domain.Order) error
	List(ctx context.Context, f OrderFilter) ([]domain.Order, error)
}

// InternRepository интерфейс хранилища стажёров
type InternRepository interface {
	Create(ctx context.Context, i *domain.Intern) error
	GetByID(ctx context.Context, id string) (*domain.Intern, error)
	Update(ctx context.Context, i *domain.Intern) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Intern, error)
}

// LedgerRepository баланс куратора
type LedgerRepository interface {
	CuratorBalance(ctx context.Context) (decimal.Decimal, error)
	SetCuratorBalance(ctx context.Context, v decimal.Decimal) error
}

// TxManager абстракция транзакции. Для in-memory — глобальная блокировка записи.
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Snapshot полное состояние пункта выдачи для сохранения
type Snapshot struct {
	Orders         []domain.Order
	Interns        []domain.Intern
	CuratorBalance decimal.Decimal
}

// Snapshotter умеет выгружать и восстанавливать состояние
type Snapshotter interface {
	Snapshot(ctx context.Context) Snapshot
	Restore(ctx context.Context, s Snapshot)
}

// helper: case-insensitive contains
func containsIgnoreCase(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func (f OrderFilter) match(o domain.Order) bool {
	if f.Status != "" && o.Status != f.Status {
		return false
	}
	if f.Query == "" {
		return true
	}
	return containsIgnoreCase(o.CustomerName, f.Query) || strings.Contains(o.Barcode, f.Query)
}
