package service

import (
	"context"
	"errors"
	"unicode/utf8"

	"interview-assistant-be/internal/dto"
	"interview-assistant-be/internal/pkg/apperror"
	"interview-assistant-be/internal/repository/contract"
	"interview-assistant-be/pkg/events"
	"interview-assistant-be/pkg/extract"
)

type IProfileService interface {
	Upload(ctx context.Context, sessionId, filename, contentType string, data []byte) (*dto.UploadProfileResponse, error)
}

type profileService struct {
	repo      contract.SessionRepository
	publisher IPublisherService
}

func NewProfileService(repo contract.SessionRepository, publisher IPublisherService) IProfileService {
	return &profileService{repo: repo, publisher: publisher}
}

func (s *profileService) Upload(ctx context.Context, sessionId, filename, contentType string, data []byte) (*dto.UploadProfileResponse, error) {
	id, err := parseSessionId(sessionId)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.FindById(ctx, id); err != nil {
		return nil, mapRepoError(err)
	}

	text, err := extract.Text(filename, contentType, data)
	switch {
	case errors.Is(err, extract.ErrEmpty):
		return nil, apperror.Validation("Uploaded file appears empty.")
	case errors.Is(err, extract.ErrUnsupported):
		return nil, apperror.Wrap(apperror.KindUnsupported, "Unsupported or unreadable file", err)
	case err != nil:
		return nil, apperror.Wrap(apperror.KindUnsupported, "Failed to read uploaded file", err)
	}

	if err := s.repo.SetProfile(ctx, id, text); err != nil {
		return nil, mapRepoError(err)
	}

	characters := utf8.RuneCountInString(text)
	s.publisher.Publish(ctx, events.TypeProfileUpload, map[string]interface{}{
		"session_id": id.String(),
		"filename":   filename,
		"characters": characters,
	})

	return &dto.UploadProfileResponse{Status: "ok", Characters: characters}, nil
}
