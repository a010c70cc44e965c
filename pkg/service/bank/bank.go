// Package bank manages cooperative bank tenants. Registration is a
// super_admin action.
package bank

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/sahakar/coopbank/pkg/domain"
	bankdomain "github.com/sahakar/coopbank/pkg/domain/bank"
	userdomain "github.com/sahakar/coopbank/pkg/domain/user"
	"github.com/sahakar/coopbank/pkg/dto"
	"github.com/sahakar/coopbank/pkg/policy"
	"github.com/sahakar/coopbank/pkg/repository"
)

// Service handles tenant registration and lookup.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates the bank service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Register creates a new cooperative bank tenant. super_admin only.
func (s *Service) Register(
	ctx context.Context,
	actor policy.Actor,
	code, name, address string,
) (b *bankdomain.Bank, err error) {
	if actor.Role != userdomain.RoleSuperAdmin {
		return nil, domain.E(domain.KindAccessDenied, "only a super admin may register banks")
	}
	b, err = bankdomain.New(code, name, address)
	if err != nil {
		return nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		banks, err := uow.BankRepository()
		if err != nil {
			return err
		}
		if existing, err := banks.GetByCode(ctx, code); err == nil && existing != nil {
			return domain.Ef(domain.KindValidation, "bank code %s is already registered", code)
		}
		return banks.Create(ctx, dto.BankCreate{
			ID:      b.ID,
			Code:    b.Code,
			Name:    b.Name,
			Address: b.Address,
		})
	})
	if err != nil {
		s.logger.Error("bank registration failed", "code", code, "error", err)
		return nil, err
	}
	s.logger.Info("bank registered", "bank_id", b.ID, "code", code)
	return b, nil
}

// Get returns one bank.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (b *dto.BankRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		banks, err := uow.BankRepository()
		if err != nil {
			return err
		}
		b, err = banks.Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

// List returns all registered banks.
func (s *Service) List(ctx context.Context) (items []*dto.BankRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		banks, err := uow.BankRepository()
		if err != nil {
			return err
		}
		items, err = banks.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}
