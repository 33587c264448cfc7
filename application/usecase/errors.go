package usecase

import (
	apperror "github.com/franquianet/portal/pkg/error"
)

// invalid reports a request that failed input validation.
func invalid(message string) error {
	return apperror.NewUnprocessable(message)
}
