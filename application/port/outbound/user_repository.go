package outbound

import (
	"context"
	"errors"

	"github.com/franquianet/portal/domain/entity"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("email already exists")
)

type UserRepository interface {
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	SoftDelete(ctx context.Context, id string) error
	FindAll(ctx context.Context, offset, limit int, filters UserFilters) ([]*entity.User, int, error)
}

type UserFilters struct {
	Name   string
	Role   string
	Status string
}
