// Package impl contains the implementation of the application's business logic.
package impl

import (
	domainerrors "postboard/internal/domain/errors"
	"postboard/internal/domain/repository"
	"postboard/internal/domain/service"

	"github.com/pkg/errors"
)

// translateRepoError maps repository sentinels onto the user-facing domain errors.
// Errors that are already AppErrors pass through untouched.
func translateRepoError(err error, action string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrUserNotFound):
		return domainerrors.ErrUserNotFound
	case errors.Is(err, repository.ErrPostNotFound):
		return domainerrors.ErrPostNotFound
	case errors.Is(err, repository.ErrDuplicateEmail):
		return domainerrors.ErrUserAlreadyExists
	case errors.Is(err, service.ErrMediaNotFound):
		return domainerrors.ErrMediaNotFound
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return err
	}

	return errors.Wrap(err, action)
}
