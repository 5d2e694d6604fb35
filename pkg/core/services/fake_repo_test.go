package services

import (
	"context"
	"strings"
	"time"

	"github.com/nattawatp/ai-tools-navigator/pkg/core/domain"
)

// fakeRepo is an in-memory DirectoryRepository for service tests.
type fakeRepo struct {
	profiles   map[string]*domain.Profile
	categories map[string]*domain.Category
	tools      map[string]*domain.Tool
	favorites  map[string]map[string]bool // userID -> toolID
	events     []domain.ClickEvent
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		profiles:   make(map[string]*domain.Profile),
		categories: make(map[string]*domain.Category),
		tools:      make(map[string]*domain.Tool),
		favorites:  make(map[string]map[string]bool),
	}
}

func (f *fakeRepo) seedProfile(id string, role domain.Role) {
	f.profiles[id] = &domain.Profile{ID: id, Email: id + "@example.com", Name: id, Role: role}
}

func (f *fakeRepo) UpsertProfile(ctx context.Context, p *domain.Profile) error {
	cp := *p
	f.profiles[p.ID] = &cp
	return nil
}

func (f *fakeRepo) GetProfile(ctx context.Context, id string) (*domain.Profile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeRepo) GetProfileByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	for _, p := range f.profiles {
		if strings.EqualFold(p.Email, email) {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) CountProfiles(ctx context.Context) (int64, error) {
	return int64(len(f.profiles)), nil
}

func (f *fakeRepo) CreateCategory(ctx context.Context, c *domain.Category) error {
	cp := *c
	f.categories[c.ID] = &cp
	return nil
}

func (f *fakeRepo) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	c, ok := f.categories[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakeRepo) ListCategories(ctx context.Context) ([]domain.Category, error) {
	out := make([]domain.Category, 0, len(f.categories))
	for _, c := range f.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeRepo) UpdateCategory(ctx context.Context, c *domain.Category) error {
	cp := *c
	f.categories[c.ID] = &cp
	return nil
}

func (f *fakeRepo) DeleteCategory(ctx context.Context, id string) error {
	delete(f.categories, id)
	return nil
}

func (f *fakeRepo) DeleteCategoryReassign(ctx context.Context, id string) error {
	for _, t := range f.tools {
		if t.CategoryID != nil && *t.CategoryID == id {
			t.CategoryID = nil
		}
	}
	delete(f.categories, id)
	return nil
}

func (f *fakeRepo) CountToolsInCategory(ctx context.Context, id string) (int64, error) {
	var n int64
	for _, t := range f.tools {
		if t.CategoryID != nil && *t.CategoryID == id {
			n++
		}
	}
	return n, nil
}

func (f *fakeRepo) CreateTool(ctx context.Context, t *domain.Tool) error {
	cp := *t
	f.tools[t.ID] = &cp
	return nil
}

func (f *fakeRepo) GetTool(ctx context.Context, id string) (*domain.Tool, error) {
	t, ok := f.tools[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (f *fakeRepo) ListTools(ctx context.Context, search string) ([]domain.Tool, error) {
	out := make([]domain.Tool, 0, len(f.tools))
	q := strings.ToLower(search)
	for _, t := range f.tools {
		if q != "" && !strings.Contains(strings.ToLower(t.Name), q) &&
			!strings.Contains(strings.ToLower(t.Description), q) {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeRepo) UpdateTool(ctx context.Context, t *domain.Tool) error {
	cp := *t
	f.tools[t.ID] = &cp
	return nil
}

func (f *fakeRepo) DeleteTool(ctx context.Context, id string) error {
	delete(f.tools, id)
	for _, favs := range f.favorites {
		delete(favs, id)
	}
	return nil
}

func (f *fakeRepo) AddFavorite(ctx context.Context, userID, toolID string) error {
	if f.favorites[userID] == nil {
		f.favorites[userID] = make(map[string]bool)
	}
	f.favorites[userID][toolID] = true
	return nil
}

func (f *fakeRepo) RemoveFavorite(ctx context.Context, userID, toolID string) error {
	delete(f.favorites[userID], toolID)
	return nil
}

func (f *fakeRepo) ListFavoriteToolIDs(ctx context.Context, userID string) ([]string, error) {
	out := make([]string, 0, len(f.favorites[userID]))
	for id := range f.favorites[userID] {
		out = append(out, id)
	}
	return out, nil
}

func (f *fakeRepo) RecordClick(ctx context.Context, ev *domain.ClickEvent) error {
	ev.ID = int64(len(f.events) + 1)
	f.events = append(f.events, *ev)
	if t, ok := f.tools[ev.ToolID]; ok {
		t.Clicks++
	}
	return nil
}

func (f *fakeRepo) ListClickEvents(ctx context.Context, since *time.Time) ([]domain.ClickEvent, error) {
	if since == nil {
		return append([]domain.ClickEvent(nil), f.events...), nil
	}
	out := make([]domain.ClickEvent, 0, len(f.events))
	for _, ev := range f.events {
		if !ev.ClickedAt.Before(*since) {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (f *fakeRepo) CountClicksForTool(ctx context.Context, toolID string) (int64, error) {
	var n int64
	for _, ev := range f.events {
		if ev.ToolID == toolID {
			n++
		}
	}
	return n, nil
}
