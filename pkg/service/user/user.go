// Package user provides registration and lookup of members and staff.
package user

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/sahakar/coopbank/pkg/domain"
	userdomain "github.com/sahakar/coopbank/pkg/domain/user"
	"github.com/sahakar/coopbank/pkg/dto"
	"github.com/sahakar/coopbank/pkg/repository"
)

// Service handles user registration and lookup.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates the user service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Register creates a member bound to a cooperative bank. Staff roles are
// assigned through a separate administrative path, never at self-registration.
func (s *Service) Register(
	ctx context.Context,
	username, email, password string,
	bankID uuid.UUID,
) (u *userdomain.User, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		banks, err := uow.BankRepository()
		if err != nil {
			return err
		}
		b, err := banks.Get(ctx, bankID)
		if err != nil {
			return err
		}
		if !b.Active {
			return domain.E(domain.KindValidation, "cooperative bank is not active")
		}

		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		if existing, err := users.GetByEmail(ctx, email); err == nil && existing != nil {
			return domain.Ef(domain.KindValidation, "email %s is already registered", email)
		}
		if existing, err := users.GetByUsername(ctx, username); err == nil && existing != nil {
			return domain.Ef(domain.KindValidation, "username %s is already taken", username)
		}

		u, err = userdomain.New(username, email, password, userdomain.RoleMember, bankID)
		if err != nil {
			return err
		}
		return users.Create(ctx, dto.UserCreate{
			ID:             u.ID,
			Username:       u.Username,
			Email:          u.Email,
			HashedPassword: u.HashedPassword,
			Role:           string(u.Role),
			BankID:         u.BankID,
		})
	})
	if err != nil {
		s.logger.Error("registration failed", "username", username, "error", err)
		return nil, err
	}
	s.logger.Info("user registered", "user_id", u.ID, "bank_id", bankID)
	return u, nil
}

// Get returns one user.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (u *dto.UserRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err = users.Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}
