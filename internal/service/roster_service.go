package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"pickpoint/internal/domain"
	"pickpoint/internal/repository"
)

// RosterService реестр стажёров: регистрация, предупреждения, выплата зарплаты
type RosterService struct {
	hooks
	interns repository.InternRepository
	tx      repository.TxManager
}

func NewRosterService(interns repository.InternRepository, tx repository.TxManager, opts ...Option) *RosterService {
	return &RosterService{hooks: newHooks(opts), interns: interns, tx: tx}
}

// AddIntern регистрирует стажёра с нулевыми счётчиками
func (s *RosterService) AddIntern(ctx context.Context, name, surname string) (*domain.Intern, error) {
	name, surname = strings.TrimSpace(name), strings.TrimSpace(surname)
	if name == "" || surname == "" {
		return nil, fmt.Errorf("%w: name and surname are required", ErrInvalidInput)
	}
	in := domain.Intern{
		ID:          uuid.NewString(),
		Name:        name,
		Surname:     surname,
		Salary:      decimal.Zero,
		TotalEarned: decimal.Zero,
		Warns:       []domain.Warning{},
	}
	if err := s.interns.Create(ctx, &in); err != nil {
		return nil, err
	}
	s.log.Info("intern added", zap.String("intern_id", in.ID))
	s.saved(ctx)
	return &in, nil
}

// RemoveIntern удаляет стажёра. Выданные им заказы сохраняют issuedBy.
func (s *RosterService) RemoveIntern(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidInput
	}
	if err := s.interns.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("intern removed", zap.String("intern_id", id))
	s.saved(ctx)
	return nil
}

func (s *RosterService) GetIntern(ctx context.Context, id string) (*domain.Intern, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	return s.interns.GetByID(ctx, id)
}

func (s *RosterService) ListInterns(ctx context.Context) ([]domain.Intern, error) {
	return s.interns.List(ctx)
}

// Efficiency уровень эффективности стажёра
func (s *RosterService) Efficiency(ctx context.Context, id string) (domain.Efficiency, error) {
	in, err := s.GetIntern(ctx, id)
	if err != nil {
		return domain.Efficiency{}, err
	}
	return in.Efficiency(), nil
}

// AddWarning добавляет предупреждение в конец списка
func (s *RosterService) AddWarning(ctx context.Context, internID, reason string) (*domain.Warning, error) {
	reason = strings.TrimSpace(reason)
	if internID == "" || reason == "" {
		return nil, fmt.Errorf("%w: warning reason is required", ErrInvalidInput)
	}
	var created *domain.Warning
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		in, err := s.interns.GetByID(ctx, internID)
		if err != nil {
			return err
		}
		w := domain.Warning{
			ID:       uuid.NewString(),
			Reason:   reason,
			Date:     time.Now().UTC(),
			IssuedBy: domain.Curator(),
		}
		in.Warns = append(in.Warns, w)
		if err := s.interns.Update(ctx, in); err != nil {
			return err
		}
		created = &w
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("warning added", zap.String("intern_id", internID), zap.String("warning_id", created.ID))
	s.saved(ctx)
	return created, nil
}

// RemoveWarning удаляет ровно одно предупреждение, порядок остальных не меняется
func (s *RosterService) RemoveWarning(ctx context.Context, internID, warningID string) error {
	if internID == "" || warningID == "" {
		return ErrInvalidInput
	}
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		in, err := s.interns.GetByID(ctx, internID)
		if err != nil {
			return err
		}
		kept := make([]domain.Warning, 0, len(in.Warns))
		found := false
		for _, w := range in.Warns {
			if w.ID == warningID && !found {
				found = true
				continue
			}
			kept = append(kept, w)
		}
		if !found {
			return repository.ErrNotFound
		}
		in.Warns = kept
		return s.interns.Update(ctx, in)
	})
	if err != nil {
		return err
	}
	s.log.Info("warning removed", zap.String("intern_id", internID), zap.String("warning_id", warningID))
	s.saved(ctx)
	return nil
}

// Withdraw выплачивает зарплату целиком. TotalEarned не меняется.
func (s *RosterService) Withdraw(ctx context.Context, internID string) (decimal.Decimal, error) {
	if internID == "" {
		return decimal.Zero, ErrInvalidInput
	}
	var amount decimal.Decimal
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		in, err := s.interns.GetByID(ctx, internID)
		if err != nil {
			return err
		}
		amount = in.Salary
		in.Salary = decimal.Zero
		return s.interns.Update(ctx, in)
	})
	if err != nil {
		return decimal.Zero, err
	}
	s.log.Info("salary withdrawn", zap.String("intern_id", internID), zap.String("amount", amount.String()))
	s.metrics.Withdrawal("intern", amount)
	s.saved(ctx)
	return amount, nil
}
