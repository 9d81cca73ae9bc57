package contract

import (
	"context"
	"errors"

	"interview-assistant-be/internal/entity"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrIndexOutOfRange = errors.New("qna index out of range")
)

// SessionRepository persists one document per session. Every call reads from
// storage; there is no cache in front of it.
type SessionRepository interface {
	Create(ctx context.Context) (*entity.Session, error)
	FindById(ctx context.Context, id uuid.UUID) (*entity.Session, error)
	FindAll(ctx context.Context) ([]*entity.SessionSummary, error)
	AppendQnA(ctx context.Context, id uuid.UUID, entry entity.QnAEntry) error
	RemoveQnA(ctx context.Context, id uuid.UUID, index int) error
	ClearHistory(ctx context.Context, id uuid.UUID) error
	SetProfile(ctx context.Context, id uuid.UUID, text string) error
	AppendTranscript(ctx context.Context, id uuid.UUID, text string) (*entity.Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
