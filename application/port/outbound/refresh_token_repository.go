package outbound

import (
	"context"
	"errors"

	"github.com/franquianet/portal/domain/entity"
)

var (
	ErrRefreshTokenNotFound      = errors.New("refresh token not found")
	ErrRefreshTokenAlreadyExists = errors.New("refresh token already exists")
)

// RefreshTokenRepository stores refresh tokens by hash. Callers always pass the
// raw token; adapters hash it before it touches storage.
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *entity.RefreshToken) error
	FindByToken(ctx context.Context, token string) (*entity.RefreshToken, error)
	Revoke(ctx context.Context, token string) error
	RevokeByUserID(ctx context.Context, userID string) error
}
