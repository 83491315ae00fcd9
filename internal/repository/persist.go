package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"pickpoint/internal/domain"
)

// Keys of the persisted layout
const (
	KeyOrders         = "orders"
	KeyInterns        = "interns"
	KeyCuratorBalance = "curatorBalance"
	KeyAccessCode     = "accessCode"
)

// Persister сохраняет снимок состояния в KV после каждой операции
type Persister struct {
	mu     sync.Mutex // snapshot and write as one step, last save wins
	kv     KV
	source Snapshotter
}

func NewPersister(kv KV, source Snapshotter) *Persister {
	return &Persister{kv: kv, source: source}
}

// Save пишет заказы, стажёров и баланс куратора отдельными ключами
func (p *Persister) Save(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	s := p.source.Snapshot(ctx)

	orders, err := json.Marshal(s.Orders)
	if err != nil {
		return fmt.Errorf("encode orders: %w", err)
	}
	interns, err := json.Marshal(s.Interns)
	if err != nil {
		return fmt.Errorf("encode interns: %w", err)
	}

	if err := p.kv.Put(ctx, KeyOrders, string(orders)); err != nil {
		return fmt.Errorf("put %s: %w", KeyOrders, err)
	}
	if err := p.kv.Put(ctx, KeyInterns, string(interns)); err != nil {
		return fmt.Errorf("put %s: %w", KeyInterns, err)
	}
	if err := p.kv.Put(ctx, KeyCuratorBalance, s.CuratorBalance.String()); err != nil {
		return fmt.Errorf("put %s: %w", KeyCuratorBalance, err)
	}
	return nil
}

// Load восстанавливает состояние. Отсутствующие ключи означают пустое состояние.
func (p *Persister) Load(ctx context.Context) error {
	var s Snapshot

	if raw, err := p.get(ctx, KeyOrders); err != nil {
		return err
	} else if raw != "" {
		if err := json.Unmarshal([]byte(raw), &s.Orders); err != nil {
			return fmt.Errorf("decode orders: %w", err)
		}
	}
	if raw, err := p.get(ctx, KeyInterns); err != nil {
		return err
	} else if raw != "" {
		if err := json.Unmarshal([]byte(raw), &s.Interns); err != nil {
			return fmt.Errorf("decode interns: %w", err)
		}
	}
	if raw, err := p.get(ctx, KeyCuratorBalance); err != nil {
		return err
	} else if raw != "" {
		balance, err := decimal.NewFromString(raw)
		if err != nil {
			return fmt.Errorf("decode curator balance: %w", err)
		}
		s.CuratorBalance = balance
	}
	for n := range s.Interns {
		if s.Interns[n].Warns == nil {
			s.Interns[n].Warns = []domain.Warning{}
		}
	}

	p.source.Restore(ctx, s)
	return nil
}

// AccessCode читает код доступа, при отсутствии сохраняет fallback
func (p *Persister) AccessCode(ctx context.Context, fallback string) (string, error) {
	code, err := p.get(ctx, KeyAccessCode)
	if err != nil {
		return "", err
	}
	if code != "" {
		return code, nil
	}
	if err := p.kv.Put(ctx, KeyAccessCode, fallback); err != nil {
		return "", fmt.Errorf("put %s: %w", KeyAccessCode, err)
	}
	return fallback, nil
}

func (p *Persister) get(ctx context.Context, key string) (string, error) {
	v, err := p.kv.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get %s: %w", key, err)
	}
	return v, nil
}
