package services

import (
	"context"

	"github.com/nattawatp/ai-tools-navigator/pkg/core/domain"
	"github.com/nattawatp/ai-tools-navigator/pkg/ports"
)

type CatalogService struct {
	repo ports.DirectoryRepository
}

func NewCatalogService(repo ports.DirectoryRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

// Browse builds the public catalog view: every tool joined with its
// category name and the viewer's favorite flags, narrowed by the
// requested bucket and text query. A pure read, no side effects.
func (s *CatalogService) Browse(ctx context.Context, actorID, bucket, query string) (*domain.CatalogView, error) {
	actor := resolveActor(ctx, s.repo, actorID)

	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	tools, err := s.repo.ListTools(ctx, "")
	if err != nil {
		return nil, err
	}

	var favoriteIDs []string
	if actor.Authenticated() {
		favoriteIDs, err = s.repo.ListFavoriteToolIDs(ctx, actor.ID)
		if err != nil {
			return nil, err
		}
	}

	state := domain.NewCatalogState(tools, categories, favoriteIDs, actor.Authenticated())
	if bucket != "" {
		state.SelectBucket(bucket)
	}
	state.SetQuery(query)

	return &domain.CatalogView{
		Buckets:  state.Buckets,
		Counts:   state.Counts(),
		Selected: state.Selected,
		Query:    query,
		Tools:    state.Visible(),
	}, nil
}

var _ ports.CatalogService = (*CatalogService)(nil)
