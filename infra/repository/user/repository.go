package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sahakar/coopbank/pkg/domain"
	"github.com/sahakar/coopbank/pkg/dto"
	repo "github.com/sahakar/coopbank/pkg/repository"
)

type repository struct {
	db *gorm.DB
}

// New creates a user repository bound to the given session.
func New(db *gorm.DB) repo.UserRepository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, create dto.UserCreate) error {
	m := User{
		ID:             create.ID,
		Username:       create.Username,
		Email:          create.Email,
		HashedPassword: create.HashedPassword,
		Role:           create.Role,
		BankID:         create.BankID,
	}
	return r.db.WithContext(ctx).Create(&m).Error
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (*dto.UserRead, error) {
	return r.getBy(ctx, "id = ?", id)
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*dto.UserRead, error) {
	return r.getBy(ctx, "email = ?", email)
}

func (r *repository) GetByUsername(ctx context.Context, username string) (*dto.UserRead, error) {
	return r.getBy(ctx, "username = ?", username)
}

func (r *repository) getBy(ctx context.Context, query string, arg any) (*dto.UserRead, error) {
	var m User
	if err := r.db.WithContext(ctx).First(&m, query, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.E(domain.KindNotFound, "user not found")
		}
		return nil, err
	}
	return &dto.UserRead{
		ID:             m.ID,
		Username:       m.Username,
		Email:          m.Email,
		Role:           m.Role,
		BankID:         m.BankID,
		CreatedAt:      m.CreatedAt,
		HashedPassword: m.HashedPassword,
	}, nil
}
