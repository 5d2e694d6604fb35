package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nattawatp/ai-tools-navigator/pkg/core/domain"
	"github.com/nattawatp/ai-tools-navigator/pkg/ports"
)

type ToolService struct {
	repo ports.DirectoryRepository
}

func NewToolService(repo ports.DirectoryRepository) *ToolService {
	return &ToolService{repo: repo}
}

type toolInput struct {
	Name        string `validate:"required,max=100"`
	Description string `validate:"max=500"`
	URL         string `validate:"required,url"`
	Icon        string `validate:"max=500"`
}

func (s *ToolService) CreateTool(ctx context.Context, actorID string, draft domain.Tool) (*domain.Tool, error) {
	input := toolInput{Name: draft.Name, Description: draft.Description, URL: draft.URL, Icon: draft.Icon}
	if err := checkInput(input); err != nil {
		return nil, err
	}
	if err := requireAdmin(ctx, s.repo, actorID); err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, draft.CategoryID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	tool := &domain.Tool{
		ID:          uuid.NewString(),
		Name:        draft.Name,
		Description: draft.Description,
		URL:         draft.URL,
		Icon:        draft.Icon,
		CategoryID:  draft.CategoryID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.CreateTool(ctx, tool); err != nil {
		return nil, err
	}
	return tool, nil
}

func (s *ToolService) GetTool(ctx context.Context, id string) (*domain.Tool, error) {
	tool, err := s.repo.GetTool(ctx, id)
	if err != nil {
		return nil, err
	}
	if tool == nil {
		return nil, domain.ErrNotFound
	}
	return tool, nil
}

func (s *ToolService) ListTools(ctx context.Context, search string) ([]domain.Tool, error) {
	return s.repo.ListTools(ctx, search)
}

func (s *ToolService) UpdateTool(ctx context.Context, actorID, id string, draft domain.Tool) (*domain.Tool, error) {
	input := toolInput{Name: draft.Name, Description: draft.Description, URL: draft.URL, Icon: draft.Icon}
	if err := checkInput(input); err != nil {
		return nil, err
	}
	if err := requireAdmin(ctx, s.repo, actorID); err != nil {
		return nil, err
	}

	tool, err := s.repo.GetTool(ctx, id)
	if err != nil {
		return nil, err
	}
	if tool == nil {
		return nil, domain.ErrNotFound
	}
	if err := s.checkCategory(ctx, draft.CategoryID); err != nil {
		return nil, err
	}

	tool.Name = draft.Name
	tool.Description = draft.Description
	tool.URL = draft.URL
	tool.Icon = draft.Icon
	tool.CategoryID = draft.CategoryID
	tool.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateTool(ctx, tool); err != nil {
		return nil, err
	}
	return tool, nil
}

func (s *ToolService) DeleteTool(ctx context.Context, actorID, id string) error {
	if err := requireAdmin(ctx, s.repo, actorID); err != nil {
		return err
	}
	tool, err := s.repo.GetTool(ctx, id)
	if err != nil {
		return err
	}
	if tool == nil {
		return domain.ErrNotFound
	}
	return s.repo.DeleteTool(ctx, id)
}

// Open resolves the outbound URL for a tool-open action. The returned
// count is the optimistic read-your-write view: current counter plus
// the click that is about to be recorded.
func (s *ToolService) Open(ctx context.Context, id string) (string, int64, error) {
	tool, err := s.repo.GetTool(ctx, id)
	if err != nil {
		return "", 0, err
	}
	if tool == nil {
		return "", 0, domain.ErrNotFound
	}
	return tool.URL, tool.Clicks + 1, nil
}

// RecordClick appends one click event; the cached counter moves in the
// same store transaction. Every click is a new event, there is no
// dedupe.
func (s *ToolService) RecordClick(ctx context.Context, actorID, toolID, referrer, userAgent string) error {
	tool, err := s.repo.GetTool(ctx, toolID)
	if err != nil {
		return err
	}
	if tool == nil {
		return domain.ErrNotFound
	}

	event := &domain.ClickEvent{
		ToolID:    toolID,
		ClickedAt: time.Now().UTC(),
		Referrer:  referrer,
		UserAgent: userAgent,
	}
	if actorID != "" {
		event.UserID = &actorID
	}
	return s.repo.RecordClick(ctx, event)
}

func (s *ToolService) checkCategory(ctx context.Context, categoryID *string) error {
	if categoryID == nil {
		return nil
	}
	category, err := s.repo.GetCategory(ctx, *categoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return &domain.ValidationError{Field: "category_id", Reason: "unknown category"}
	}
	return nil
}

var _ ports.ToolService = (*ToolService)(nil)
