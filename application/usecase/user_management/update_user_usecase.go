package user_management

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/franquianet/portal/application/port/inbound"
	"github.com/franquianet/portal/application/port/outbound"
	"github.com/franquianet/portal/domain/entity"
	apperror "github.com/franquianet/portal/pkg/error"
)

type UpdateUserUseCase struct {
	userRepo outbound.UserRepository
}

func NewUpdateUserUseCase(userRepo outbound.UserRepository) *UpdateUserUseCase {
	return &UpdateUserUseCase{
		userRepo: userRepo,
	}
}

func (uc *UpdateUserUseCase) Execute(ctx context.Context, userID string, req inbound.UpdateUserRequest) (*inbound.UserResponse, error) {
	if err := validateUpdateUserRequest(&req); err != nil {
		return nil, err
	}

	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Role != "" {
		user.Role = req.Role
	}
	if req.Status != "" {
		user.Status = req.Status
	}
	user.UpdatedAt = time.Now()

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return toUserResponse(user), nil
}

func validateUpdateUserRequest(req *inbound.UpdateUserRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name != "" {
		if err := validateName(req.Name); err != nil {
			return err
		}
	}

	if req.Role != "" && !entity.ValidRole(req.Role) {
		return apperror.NewUnprocessable(entity.ErrInvalidRole.Error())
	}

	if req.Status != "" && !entity.ValidUserStatus(req.Status) {
		return apperror.NewUnprocessable(entity.ErrInvalidUserStatus.Error())
	}

	return nil
}
