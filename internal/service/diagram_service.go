package service

import (
	"context"
	"errors"

	"interview-assistant-be/internal/pkg/apperror"
	"interview-assistant-be/pkg/diagram"
)

type IDiagramService interface {
	RenderMermaid(ctx context.Context, code, theme string) (string, error)
}

type diagramService struct {
	renderer *diagram.Renderer
}

func NewDiagramService(renderer *diagram.Renderer) IDiagramService {
	return &diagramService{renderer: renderer}
}

func (s *diagramService) RenderMermaid(ctx context.Context, code, theme string) (string, error) {
	svg, err := s.renderer.Render(ctx, code, theme)
	switch {
	case err == nil:
		return svg, nil
	case errors.Is(err, diagram.ErrEmpty):
		return "", apperror.Validation("Missing mermaid code")
	case errors.Is(err, diagram.ErrTooLarge):
		return "", apperror.New(apperror.KindTooLarge, "Mermaid code too large")
	}
	return "", apperror.Upstream("Diagram rendering failed", err)
}
