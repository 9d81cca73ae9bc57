package implementation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"interview-assistant-be/internal/entity"
	"interview-assistant-be/internal/mapper"
	"interview-assistant-be/internal/model"
	"interview-assistant-be/internal/pkg/logger"
	"interview-assistant-be/internal/repository/contract"

	"github.com/google/uuid"
)

const documentExt = ".json"

// SessionRepositoryImpl stores sessions as pretty-printed JSON files named
// <session_id>.json. Writes replace the file atomically; concurrent writers
// to the same session resolve as last write wins.
type SessionRepositoryImpl struct {
	dir    string
	mapper *mapper.SessionMapper
	logger logger.ILogger
	now    func() time.Time
}

func NewSessionRepository(dir string, log logger.ILogger) (*SessionRepositoryImpl, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create sessions dir: %w", err)
	}
	return &SessionRepositoryImpl{
		dir:    dir,
		mapper: mapper.NewSessionMapper(),
		logger: log,
		now:    func() time.Time { return time.Now().UTC() },
	}, nil
}

var _ contract.SessionRepository = (*SessionRepositoryImpl)(nil)

func (r *SessionRepositoryImpl) path(id uuid.UUID) string {
	return filepath.Join(r.dir, id.String()+documentExt)
}

func (r *SessionRepositoryImpl) Create(ctx context.Context) (*entity.Session, error) {
	s := &entity.Session{
		Id:         uuid.New(),
		QnA:        []entity.QnAEntry{},
		LastUpdate: r.now(),
	}
	if err := r.write(s); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SessionRepositoryImpl) FindById(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	return r.read(r.path(id))
}

// FindAll lists every readable session, newest first. Files that fail to
// parse are logged and skipped.
func (r *SessionRepositoryImpl) FindAll(ctx context.Context) ([]*entity.SessionSummary, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("read sessions dir: %w", err)
	}

	items := []*entity.SessionSummary{}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, documentExt) {
			continue
		}
		if _, err := uuid.Parse(strings.TrimSuffix(name, documentExt)); err != nil {
			continue
		}

		s, err := r.read(filepath.Join(r.dir, name))
		if err != nil {
			r.logger.Warn("SESSION_REPO", "Skipping unreadable session file", map[string]interface{}{
				"file":  name,
				"error": err.Error(),
			})
			continue
		}
		items = append(items, &entity.SessionSummary{
			Id:         s.Id,
			LastUpdate: s.LastUpdate,
			QnACount:   len(s.QnA),
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].LastUpdate.After(items[j].LastUpdate)
	})
	return items, nil
}

func (r *SessionRepositoryImpl) AppendQnA(ctx context.Context, id uuid.UUID, entry entity.QnAEntry) error {
	return r.update(id, func(s *entity.Session) error {
		s.QnA = append(s.QnA, entry)
		return nil
	})
}

func (r *SessionRepositoryImpl) RemoveQnA(ctx context.Context, id uuid.UUID, index int) error {
	return r.update(id, func(s *entity.Session) error {
		if index < 0 || index >= len(s.QnA) {
			return fmt.Errorf("%w: %d of %d", contract.ErrIndexOutOfRange, index, len(s.QnA))
		}
		s.QnA = append(s.QnA[:index], s.QnA[index+1:]...)
		return nil
	})
}

func (r *SessionRepositoryImpl) ClearHistory(ctx context.Context, id uuid.UUID) error {
	return r.update(id, func(s *entity.Session) error {
		s.QnA = []entity.QnAEntry{}
		return nil
	})
}

func (r *SessionRepositoryImpl) SetProfile(ctx context.Context, id uuid.UUID, text string) error {
	return r.update(id, func(s *entity.Session) error {
		s.ProfileText = strings.TrimSpace(text)
		return nil
	})
}

// AppendTranscript joins text onto the running transcript with a space. Blank
// text leaves the document untouched.
func (r *SessionRepositoryImpl) AppendTranscript(ctx context.Context, id uuid.UUID, text string) (*entity.Session, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return r.FindById(ctx, id)
	}

	var updated *entity.Session
	err := r.update(id, func(s *entity.Session) error {
		if s.PartialTranscript == "" {
			s.PartialTranscript = text
		} else {
			s.PartialTranscript += " " + text
		}
		updated = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *SessionRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	err := os.Remove(r.path(id))
	if errors.Is(err, fs.ErrNotExist) {
		return contract.ErrSessionNotFound
	}
	if err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	return nil
}

// update is a full read-modify-write of one session document.
func (r *SessionRepositoryImpl) update(id uuid.UUID, mutate func(*entity.Session) error) error {
	s, err := r.read(r.path(id))
	if err != nil {
		return err
	}
	if err := mutate(s); err != nil {
		return err
	}
	s.LastUpdate = r.now()
	return r.write(s)
}

func (r *SessionRepositoryImpl) read(path string) (*entity.Session, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, contract.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read session file: %w", err)
	}

	var doc model.Session
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode session file %s: %w", filepath.Base(path), err)
	}
	s, err := r.mapper.SessionToEntity(&doc)
	if err != nil {
		return nil, fmt.Errorf("decode session id in %s: %w", filepath.Base(path), err)
	}
	return s, nil
}

// write replaces the document through a temp file and rename so readers never
// observe a partial file.
func (r *SessionRepositoryImpl) write(s *entity.Session) error {
	data, err := json.MarshalIndent(r.mapper.SessionToModel(s), "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	tmp, err := os.CreateTemp(r.dir, s.Id.String()+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp session file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp session file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp session file: %w", err)
	}
	if err := os.Rename(tmpName, r.path(s.Id)); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}
	return nil
}
