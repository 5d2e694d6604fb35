package services

import (
	"context"

	"github.com/nattawatp/ai-tools-navigator/pkg/core/domain"
	"github.com/nattawatp/ai-tools-navigator/pkg/ports"
)

type FavoriteService struct {
	repo ports.DirectoryRepository
}

func NewFavoriteService(repo ports.DirectoryRepository) *FavoriteService {
	return &FavoriteService{repo: repo}
}

// AddFavorite bookmarks a tool for the acting user. Adding an existing
// favorite is a no-op, the (user, tool) pair stays unique.
func (s *FavoriteService) AddFavorite(ctx context.Context, actorID, toolID string) error {
	if err := requireUser(ctx, s.repo, actorID); err != nil {
		return err
	}
	tool, err := s.repo.GetTool(ctx, toolID)
	if err != nil {
		return err
	}
	if tool == nil {
		return domain.ErrNotFound
	}
	return s.repo.AddFavorite(ctx, actorID, toolID)
}

// RemoveFavorite deletes the bookmark; removing one that does not exist
// succeeds silently.
func (s *FavoriteService) RemoveFavorite(ctx context.Context, actorID, toolID string) error {
	if err := requireUser(ctx, s.repo, actorID); err != nil {
		return err
	}
	return s.repo.RemoveFavorite(ctx, actorID, toolID)
}

var _ ports.FavoriteService = (*FavoriteService)(nil)
