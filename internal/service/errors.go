package service

import (
	"errors"
	"strings"

	"interview-assistant-be/internal/pkg/apperror"
	"interview-assistant-be/internal/repository/contract"

	"github.com/google/uuid"
)

// parseSessionId treats anything that is not a UUID as an unknown session.
func parseSessionId(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, apperror.NotFound("Session not found")
	}
	return id, nil
}

func mapRepoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, contract.ErrSessionNotFound):
		return apperror.NotFound("Session not found")
	case errors.Is(err, contract.ErrIndexOutOfRange):
		return apperror.Validation("Index out of range")
	}
	return apperror.Storage("Failed to access session storage", err)
}
