package repository

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"pickpoint/internal/domain"
)

// MemoryStore объединённое in-memory хранилище заказов, стажёров и баланса куратора
type MemoryStore struct {
	mu             sync.RWMutex
	orderIDs       []string // порядок создания
	ordersByID     map[string]domain.Order
	internIDs      []string // порядок регистрации
	internsByID    map[string]domain.Intern
	curatorBalance decimal.Decimal
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		ordersByID:  make(map[string]domain.Order),
		internsByID: make(map[string]domain.Intern),
	}
}

// transaction-aware locking helpers
type txKey struct{}

func isTx(ctx context.Context) bool {
	v := ctx.Value(txKey{})
	if v == nil {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

func (m *MemoryStore) rlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.RLock()
	}
}
func (m *MemoryStore) runlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.RUnlock()
	}
}
func (m *MemoryStore) wlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.Lock()
	}
}
func (m *MemoryStore) wunlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.Unlock()
	}
}

// Ensure interfaces
var (
	_ LedgerRepository = (*MemoryStore)(nil)
	_ Snapshotter      = (*MemoryStore)(nil)
)

// LedgerRepository implementation
func (m *MemoryStore) CuratorBalance(ctx context.Context) (decimal.Decimal, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	return m.curatorBalance, nil
}

func (m *MemoryStore) SetCuratorBalance(ctx context.Context, v decimal.Decimal) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	m.curatorBalance = v
	return nil
}

// Snapshot копирует состояние целиком
func (m *MemoryStore) Snapshot(ctx context.Context) Snapshot {
	m.rlock(ctx)
	defer m.runlock(ctx)
	s := Snapshot{
		Orders:         make([]domain.Order, 0, len(m.orderIDs)),
		Interns:        make([]domain.Intern, 0, len(m.internIDs)),
		CuratorBalance: m.curatorBalance,
	}
	for _, id := range m.orderIDs {
		s.Orders = append(s.Orders, m.ordersByID[id].Clone())
	}
	for _, id := range m.internIDs {
		s.Interns = append(s.Interns, m.internsByID[id].Clone())
	}
	return s
}

// Restore заменяет состояние сохранённым
func (m *MemoryStore) Restore(ctx context.Context, s Snapshot) {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	m.orderIDs = m.orderIDs[:0]
	m.ordersByID = make(map[string]domain.Order, len(s.Orders))
	for _, o := range s.Orders {
		m.orderIDs = append(m.orderIDs, o.ID)
		m.ordersByID[o.ID] = o.Clone()
	}
	m.internIDs = m.internIDs[:0]
	m.internsByID = make(map[string]domain.Intern, len(s.Interns))
	for _, i := range s.Interns {
		m.internIDs = append(m.internIDs, i.ID)
		m.internsByID[i.ID] = i.Clone()
	}
	m.curatorBalance = s.CuratorBalance
}

// OrderRepository implementation on wrapper type
type MemoryOrders struct{ store *MemoryStore }

func NewMemoryOrders(store *MemoryStore) *MemoryOrders { return &MemoryOrders{store: store} }

var _ OrderRepository = (*MemoryOrders)(nil)

func (mo *MemoryOrders) Create(ctx context.Context, o *domain.Order) error {
	mo.store.wlock(ctx)
	defer mo.store.wunlock(ctx)
	o.CreatedAt = time.Now().UTC()
	o.UpdatedAt = o.CreatedAt
	mo.store.orderIDs = append(mo.store.orderIDs, o.ID)
	mo.store.ordersByID[o.ID] = o.Clone()
	return nil
}

func (mo *MemoryOrders) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	mo.store.rlock(ctx)
	defer mo.store.runlock(ctx)
	o, ok := mo.store.ordersByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := o.Clone()
	return &cp, nil
}

func (mo *MemoryOrders) GetByBarcode(ctx context.Context, barcode string) (*domain.Order, error) {
	mo.store.rlock(ctx)
	defer mo.store.runlock(ctx)
	for i := len(mo.store.orderIDs) - 1; i >= 0; i-- {
		o := mo.store.ordersByID[mo.store.orderIDs[i]]
		if o.Barcode == barcode {
			cp := o.Clone()
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (mo *MemoryOrders) Update(ctx context.Context, o *domain.Order) error {
	mo.store.wlock(ctx)
	defer mo.store.wunlock(ctx)
	if _, ok := mo.store.ordersByID[o.ID]; !ok {
		return ErrNotFound
	}
	o.UpdatedAt = time.Now().UTC()
	mo.store.ordersByID[o.ID] = o.Clone()
	return nil
}

// List возвращает заказы от новых к старым
func (mo *MemoryOrders) List(ctx context.Context, f OrderFilter) ([]domain.Order, error) {
	mo.store.rlock(ctx)
	defer mo.store.runlock(ctx)
	out := make([]domain.Order, 0)
	for i := len(mo.store.orderIDs) - 1; i >= 0; i-- {
		o := mo.store.ordersByID[mo.store.orderIDs[i]]
		if !f.match(o) {
			continue
		}
		out = append(out, o.Clone())
	}
	return out, nil
}

// InternRepository implementation on wrapper type
type MemoryInterns struct{ store *MemoryStore }

func NewMemoryInterns(store *MemoryStore) *MemoryInterns { return &MemoryInterns{store: store} }

var _ InternRepository = (*MemoryInterns)(nil)

func (mi *MemoryInterns) Create(ctx context.Context, i *domain.Intern) error {
	mi.store.wlock(ctx)
	defer mi.store.wunlock(ctx)
	i.CreatedAt = time.Now().UTC()
	mi.store.internIDs = append(mi.store.internIDs, i.ID)
	mi.store.internsByID[i.ID] = i.Clone()
	return nil
}

func (mi *MemoryInterns) GetByID(ctx context.Context, id string) (*domain.Intern, error) {
	mi.store.rlock(ctx)
	defer mi.store.runlock(ctx)
	i, ok := mi.store.internsByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := i.Clone()
	return &cp, nil
}

func (mi *MemoryInterns) Update(ctx context.Context, i *domain.Intern) error {
	mi.store.wlock(ctx)
	defer mi.store.wunlock(ctx)
	if _, ok := mi.store.internsByID[i.ID]; !ok {
		return ErrNotFound
	}
	mi.store.internsByID[i.ID] = i.Clone()
	return nil
}

func (mi *MemoryInterns) Delete(ctx context.Context, id string) error {
	mi.store.wlock(ctx)
	defer mi.store.wunlock(ctx)
	if _, ok := mi.store.internsByID[id]; !ok {
		return ErrNotFound
	}
	delete(mi.store.internsByID, id)
	for n, v := range mi.store.internIDs {
		if v == id {
			mi.store.internIDs = append(mi.store.internIDs[:n], mi.store.internIDs[n+1:]...)
			break
		}
	}
	return nil
}

func (mi *MemoryInterns) List(ctx context.Context) ([]domain.Intern, error) {
	mi.store.rlock(ctx)
	defer mi.store.runlock(ctx)
	out := make([]domain.Intern, 0, len(mi.store.internIDs))
	for _, id := range mi.store.internIDs {
		out = append(out, mi.store.internsByID[id].Clone())
	}
	return out, nil
}

// Tx manager using write lock to emulate transaction boundary
type MemoryTx struct{ store *MemoryStore }

func NewMemoryTx(store *MemoryStore) *MemoryTx { return &MemoryTx{store: store} }

func (tx *MemoryTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	// Для in-memory используем блокировку записи и помечаем контекст, чтобы репозитории пропускали внутренние локи
	if isTx(ctx) {
		return fn(ctx)
	}
	tx.store.mu.Lock()
	defer tx.store.mu.Unlock()
	ctx = context.WithValue(ctx, txKey{}, true)
	return fn(ctx)
}
