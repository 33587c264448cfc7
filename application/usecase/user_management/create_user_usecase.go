package user_management

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/franquianet/portal/application/port/inbound"
	"github.com/franquianet/portal/application/port/outbound"
	"github.com/franquianet/portal/domain/entity"
	"github.com/franquianet/portal/domain/valueobject"
	apperror "github.com/franquianet/portal/pkg/error"
)

var ErrInvalidName = errors.New("name must be between 2 and 255 characters")

type CreateUserUseCase struct {
	userRepo    outbound.UserRepository
	passwordSvc outbound.PasswordService
}

func NewCreateUserUseCase(
	userRepo outbound.UserRepository,
	passwordSvc outbound.PasswordService,
) *CreateUserUseCase {
	return &CreateUserUseCase{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
	}
}

func (uc *CreateUserUseCase) Execute(ctx context.Context, req inbound.CreateUserRequest) (*inbound.UserResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validateName(req.Name); err != nil {
		return nil, err
	}

	credentials, err := valueobject.NewCredentials(req.Email, req.Password)
	if err != nil {
		return nil, apperror.NewUnprocessable(err.Error())
	}

	if !entity.ValidRole(req.Role) {
		return nil, apperror.NewUnprocessable(entity.ErrInvalidRole.Error())
	}

	hashedPassword, err := uc.passwordSvc.HashPassword(credentials.Password())
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := entity.NewUser(
		uuid.New().String(),
		req.Name,
		credentials.Email(),
		hashedPassword,
		req.Role,
	)

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return toUserResponse(user), nil
}

func validateName(name string) error {
	if len(name) < 2 || len(name) > 255 {
		return apperror.NewUnprocessable(ErrInvalidName.Error())
	}
	return nil
}

func toUserResponse(user *entity.User) *inbound.UserResponse {
	return &inbound.UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		Status:    user.Status,
		CreatedAt: user.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}
