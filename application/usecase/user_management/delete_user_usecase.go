package user_management

import (
	"context"
	"fmt"

	"github.com/franquianet/portal/application/port/outbound"
)

type DeleteUserUseCase struct {
	userRepo         outbound.UserRepository
	refreshTokenRepo outbound.RefreshTokenRepository
}

func NewDeleteUserUseCase(userRepo outbound.UserRepository, refreshTokenRepo outbound.RefreshTokenRepository) *DeleteUserUseCase {
	return &DeleteUserUseCase{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
	}
}

// Execute deactivates the user and ends their sessions.
func (uc *DeleteUserUseCase) Execute(ctx context.Context, userID string) error {
	if err := uc.userRepo.SoftDelete(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	if err := uc.refreshTokenRepo.RevokeByUserID(ctx, userID); err != nil {
		return fmt.Errorf("failed to revoke user sessions: %w", err)
	}

	return nil
}
