package services

import (
	"context"
	"errors"
	"testing"

	"github.com/nattawatp/ai-tools-navigator/pkg/core/domain"
)

func TestCreateToolValidation(t *testing.T) {
	repo := newFakeRepo()
	repo.seedProfile("admin-1", domain.RoleAdmin)
	svc := NewToolService(repo)

	tests := []struct {
		name      string
		draft     domain.Tool
		wantField string
	}{
		{name: "missing name", draft: domain.Tool{URL: "https://a.example.com"}, wantField: "name"},
		{name: "missing url", draft: domain.Tool{Name: "A"}, wantField: "url"},
		{name: "malformed url", draft: domain.Tool{Name: "A", URL: "not a url"}, wantField: "url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateTool(context.Background(), "admin-1", tt.draft)
			var verr *domain.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("got %v, want ValidationError", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("field = %q, want %q", verr.Field, tt.wantField)
			}
		})
	}
}

func TestCreateToolUnknownCategory(t *testing.T) {
	repo := newFakeRepo()
	repo.seedProfile("admin-1", domain.RoleAdmin)
	svc := NewToolService(repo)

	unknown := "no-such-category"
	_, err := svc.CreateTool(context.Background(), "admin-1", domain.Tool{
		Name: "A", URL: "https://a.example.com", CategoryID: &unknown,
	})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) || verr.Field != "category_id" {
		t.Fatalf("got %v, want validation error on category_id", err)
	}
}

func TestUpdateToolReplacesFields(t *testing.T) {
	repo := newFakeRepo()
	repo.seedProfile("admin-1", domain.RoleAdmin)
	_, toolID := seedCategoryWithTool(repo)
	svc := NewToolService(repo)

	// Full replacement: omitting the category clears it.
	updated, err := svc.UpdateTool(context.Background(), "admin-1", toolID, domain.Tool{
		Name: "Renamed", URL: "https://r.example.com",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Renamed" || updated.CategoryID != nil {
		t.Errorf("updated tool = %+v, want renamed and uncategorized", updated)
	}
}

func TestOpenReturnsOptimisticCount(t *testing.T) {
	repo := newFakeRepo()
	_, toolID := seedCategoryWithTool(repo)
	repo.tools[toolID].Clicks = 7
	svc := NewToolService(repo)

	url, optimistic, err := svc.Open(context.Background(), toolID)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if url != repo.tools[toolID].URL {
		t.Errorf("url = %q, want %q", url, repo.tools[toolID].URL)
	}
	if optimistic != 8 {
		t.Errorf("optimistic count = %d, want 8", optimistic)
	}

	if _, _, err := svc.Open(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("open missing: got %v, want ErrNotFound", err)
	}
}

func TestRecordClickAttribution(t *testing.T) {
	repo := newFakeRepo()
	_, toolID := seedCategoryWithTool(repo)
	svc := NewToolService(repo)

	if err := svc.RecordClick(context.Background(), "", toolID, "https://ref.example.com", "agent/1"); err != nil {
		t.Fatalf("anonymous click: %v", err)
	}
	if err := svc.RecordClick(context.Background(), "user-1", toolID, "", ""); err != nil {
		t.Fatalf("attributed click: %v", err)
	}

	if len(repo.events) != 2 {
		t.Fatalf("event count = %d, want 2", len(repo.events))
	}
	if repo.events[0].UserID != nil {
		t.Error("anonymous click should have nil user")
	}
	if repo.events[1].UserID == nil || *repo.events[1].UserID != "user-1" {
		t.Errorf("attributed click user = %v, want user-1", repo.events[1].UserID)
	}
	if repo.tools[toolID].Clicks != 2 {
		t.Errorf("cached counter = %d, want 2", repo.tools[toolID].Clicks)
	}

	if err := svc.RecordClick(context.Background(), "", "missing", "", ""); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("click on missing tool: got %v, want ErrNotFound", err)
	}
}

func TestFavoriteLifecycle(t *testing.T) {
	repo := newFakeRepo()
	repo.seedProfile("user-1", domain.RoleUser)
	_, toolID := seedCategoryWithTool(repo)
	svc := NewFavoriteService(repo)
	ctx := context.Background()

	if err := svc.AddFavorite(ctx, "", toolID); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("anonymous favorite: got %v, want ErrUnauthorized", err)
	}
	if err := svc.AddFavorite(ctx, "user-1", "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("favorite missing tool: got %v, want ErrNotFound", err)
	}

	if err := svc.AddFavorite(ctx, "user-1", toolID); err != nil {
		t.Fatalf("favorite: %v", err)
	}
	// Idempotent.
	if err := svc.AddFavorite(ctx, "user-1", toolID); err != nil {
		t.Fatalf("repeat favorite: %v", err)
	}
	ids, _ := repo.ListFavoriteToolIDs(ctx, "user-1")
	if len(ids) != 1 {
		t.Errorf("favorites = %v, want one entry", ids)
	}

	if err := svc.RemoveFavorite(ctx, "user-1", toolID); err != nil {
		t.Fatalf("unfavorite: %v", err)
	}
	// Removing again is a silent no-op.
	if err := svc.RemoveFavorite(ctx, "user-1", toolID); err != nil {
		t.Fatalf("repeat unfavorite: %v", err)
	}
}
