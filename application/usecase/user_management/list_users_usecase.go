package user_management

import (
	"context"
	"fmt"

	"github.com/franquianet/portal/application/port/inbound"
	"github.com/franquianet/portal/application/port/outbound"
)

type ListUsersUseCase struct {
	userRepo outbound.UserRepository
}

func NewListUsersUseCase(userRepo outbound.UserRepository) *ListUsersUseCase {
	return &ListUsersUseCase{
		userRepo: userRepo,
	}
}

func (uc *ListUsersUseCase) Execute(ctx context.Context, req inbound.ListUsersRequest) (*inbound.ListUsersResponse, error) {
	offset := req.Normalize()

	filters := outbound.UserFilters{
		Name:   req.Filter.Name,
		Role:   req.Filter.Role,
		Status: req.Filter.Status,
	}

	users, total, err := uc.userRepo.FindAll(ctx, offset, req.Limit, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	userItems := make([]inbound.UserResponse, len(users))
	for i, user := range users {
		userItems[i] = *toUserResponse(user)
	}

	return &inbound.ListUsersResponse{
		Users:      userItems,
		Pagination: req.Info(total),
	}, nil
}
