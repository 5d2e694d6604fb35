package ports

import (
	"context"
	"time"

	"github.com/nattawatp/ai-tools-navigator/pkg/core/domain"
)

// DirectoryRepository defines the storage operations over the four
// record collections plus profiles. The core treats the store as an
// opaque capability; implementations decide the engine.
type DirectoryRepository interface {
	// Profiles
	UpsertProfile(ctx context.Context, profile *domain.Profile) error
	GetProfile(ctx context.Context, id string) (*domain.Profile, error)
	GetProfileByEmail(ctx context.Context, email string) (*domain.Profile, error)
	CountProfiles(ctx context.Context) (int64, error)

	// Categories
	CreateCategory(ctx context.Context, category *domain.Category) error
	GetCategory(ctx context.Context, id string) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, category *domain.Category) error
	// DeleteCategory removes the row only; callers must ensure no tool
	// still references it.
	DeleteCategory(ctx context.Context, id string) error
	// DeleteCategoryReassign moves referencing tools to NULL and
	// deletes the row in one transaction.
	DeleteCategoryReassign(ctx context.Context, id string) error
	CountToolsInCategory(ctx context.Context, id string) (int64, error)

	// Tools
	CreateTool(ctx context.Context, tool *domain.Tool) error
	GetTool(ctx context.Context, id string) (*domain.Tool, error)
	ListTools(ctx context.Context, search string) ([]domain.Tool, error)
	UpdateTool(ctx context.Context, tool *domain.Tool) error
	// DeleteTool removes the tool and its favorites; click events are
	// retained (append-only audit log).
	DeleteTool(ctx context.Context, id string) error

	// Favorites
	AddFavorite(ctx context.Context, userID, toolID string) error    // idempotent
	RemoveFavorite(ctx context.Context, userID, toolID string) error // no-op when absent
	ListFavoriteToolIDs(ctx context.Context, userID string) ([]string, error)

	// Clicks
	// RecordClick appends the event and bumps the tool's cached counter
	// atomically in the same transaction.
	RecordClick(ctx context.Context, event *domain.ClickEvent) error
	ListClickEvents(ctx context.Context, since *time.Time) ([]domain.ClickEvent, error)
	CountClicksForTool(ctx context.Context, toolID string) (int64, error)
}

// IdentityService resolves actors and signs users in.
type IdentityService interface {
	// SignIn upserts the profile for a verified external identity and
	// returns it.
	SignIn(ctx context.Context, email, name string) (*domain.Profile, error)
	// Resolve maps a profile id to the current actor. The role is read
	// from the store on every call, never cached.
	Resolve(ctx context.Context, profileID string) domain.Actor
}

// CatalogService produces the browsable tool view.
type CatalogService interface {
	Browse(ctx context.Context, actorID, bucket, query string) (*domain.CatalogView, error)
}

// ToolService defines tool CRUD plus the click-through operations.
type ToolService interface {
	CreateTool(ctx context.Context, actorID string, draft domain.Tool) (*domain.Tool, error)
	GetTool(ctx context.Context, id string) (*domain.Tool, error)
	ListTools(ctx context.Context, search string) ([]domain.Tool, error)
	UpdateTool(ctx context.Context, actorID, id string, draft domain.Tool) (*domain.Tool, error)
	DeleteTool(ctx context.Context, actorID, id string) error

	// Open resolves the outbound URL and returns the optimistic click
	// count shown to the viewer before the write is confirmed.
	Open(ctx context.Context, id string) (url string, optimisticClicks int64, err error)
	// RecordClick appends one click event. Best effort: callers treat
	// failures as log-and-drop, never user-facing.
	RecordClick(ctx context.Context, actorID, toolID, referrer, userAgent string) error
}

// CategoryService defines category CRUD with the deletion lifecycle.
type CategoryService interface {
	CreateCategory(ctx context.Context, actorID, name, description string) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, actorID, id, name, description string) (*domain.Category, error)
	// DeleteCategory runs the deletion lifecycle. Under the reassign
	// policy, deleting a category with dependent tools needs
	// confirmed=true; under the block policy it fails with
	// ReferentialConflictError while dependents exist.
	DeleteCategory(ctx context.Context, actorID, id string, confirmed bool) error
}

// FavoriteService manages the acting user's bookmarks.
type FavoriteService interface {
	AddFavorite(ctx context.Context, actorID, toolID string) error
	RemoveFavorite(ctx context.Context, actorID, toolID string) error
}

// AnalyticsService reduces the click log into dashboard rollups.
type AnalyticsService interface {
	Dashboard(ctx context.Context, actorID, categoryFilter string, sortBy domain.SortKey) (*domain.DashboardStats, error)
}
