package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nattawatp/ai-tools-navigator/pkg/core/domain"
	"github.com/nattawatp/ai-tools-navigator/pkg/ports"
)

type CategoryService struct {
	repo   ports.DirectoryRepository
	policy domain.DeletePolicy
}

func NewCategoryService(repo ports.DirectoryRepository, policy domain.DeletePolicy) *CategoryService {
	if policy == "" {
		policy = domain.DeletePolicyReassign
	}
	return &CategoryService{repo: repo, policy: policy}
}

type categoryInput struct {
	Name        string `validate:"required,max=50"`
	Description string `validate:"max=500"`
}

func (s *CategoryService) CreateCategory(ctx context.Context, actorID, name, description string) (*domain.Category, error) {
	if err := checkInput(categoryInput{Name: name, Description: description}); err != nil {
		return nil, err
	}
	if err := requireAdmin(ctx, s.repo, actorID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	category := &domain.Category{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *CategoryService) UpdateCategory(ctx context.Context, actorID, id, name, description string) (*domain.Category, error) {
	if err := checkInput(categoryInput{Name: name, Description: description}); err != nil {
		return nil, err
	}
	if err := requireAdmin(ctx, s.repo, actorID); err != nil {
		return nil, err
	}

	category, err := s.repo.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}

	category.Name = name
	category.Description = description
	category.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory runs the deletion lifecycle:
//
//	Requested -> ReferenceCheck -> {Delete | Reassign&Delete | Blocked}
//
// With no referencing tools the row is deleted outright. Otherwise the
// configured policy decides: reassign (the default, what the original
// deployment did) moves dependents to uncategorized once the caller has
// confirmed, block refuses while dependents exist. A caller that never
// confirms has cancelled.
func (s *CategoryService) DeleteCategory(ctx context.Context, actorID, id string, confirmed bool) error {
	if err := requireAdmin(ctx, s.repo, actorID); err != nil {
		return err
	}

	category, err := s.repo.GetCategory(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrNotFound
	}

	dependents, err := s.repo.CountToolsInCategory(ctx, id)
	if err != nil {
		return err
	}
	if dependents == 0 {
		return s.repo.DeleteCategory(ctx, id)
	}

	if s.policy == domain.DeletePolicyBlock {
		return &domain.ReferentialConflictError{CategoryID: id, ToolCount: dependents}
	}
	if !confirmed {
		return &domain.ConfirmationRequiredError{CategoryID: id, ToolCount: dependents}
	}
	return s.repo.DeleteCategoryReassign(ctx, id)
}

var _ ports.CategoryService = (*CategoryService)(nil)
