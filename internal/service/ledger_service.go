package service

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"pickpoint/internal/domain"
	"pickpoint/internal/repository"
)

// LedgerService баланс куратора
type LedgerService struct {
	hooks
	ledger repository.LedgerRepository
	tx     repository.TxManager
}

func NewLedgerService(ledger repository.LedgerRepository, tx repository.TxManager, opts ...Option) *LedgerService {
	return &LedgerService{hooks: newHooks(opts), ledger: ledger, tx: tx}
}

func (s *LedgerService) Balance(ctx context.Context) (decimal.Decimal, error) {
	return s.ledger.CuratorBalance(ctx)
}

// Withdraw обнуляет баланс куратора и возвращает снятую сумму
func (s *LedgerService) Withdraw(ctx context.Context) (decimal.Decimal, error) {
	var amount decimal.Decimal
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		if amount, err = s.ledger.CuratorBalance(ctx); err != nil {
			return err
		}
		return s.ledger.SetCuratorBalance(ctx, decimal.Zero)
	})
	if err != nil {
		return decimal.Zero, err
	}
	s.log.Info("curator balance withdrawn", zap.String("amount", amount.String()))
	s.metrics.Withdrawal(domain.CuratorID, amount)
	s.saved(ctx)
	return amount, nil
}
