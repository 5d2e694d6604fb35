package domain

import "time"

// ClickEvent is an append-only record of a user opening a tool's URL.
// Events are never mutated or deleted; they are the source of truth for
// analytics, Tool.Clicks is a derived cache.
type ClickEvent struct {
	ID        int64     `json:"id"`
	ToolID    string    `json:"tool_id"`
	UserID    *string   `json:"user_id,omitempty"` // nil for anonymous clicks
	ClickedAt time.Time `json:"clicked_at"`
	Referrer  string    `json:"referrer"`
	UserAgent string    `json:"user_agent"`
}

// ToolRollup is the per-tool aggregated view for the dashboard table.
type ToolRollup struct {
	ToolID      string `json:"id"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	Category    string `json:"category"`
	Clicks      int64  `json:"clicks_count"`
	Recent      int64  `json:"clicks_last_30_days"`
	UniqueUsers int64  `json:"unique_users"` // anonymous clicks excluded
}

// CategoryRollup sums the rollups of a category's member tools.
type CategoryRollup struct {
	CategoryID string `json:"id"`
	Name       string `json:"name"`
	Clicks     int64  `json:"clicks_count"`
	Recent     int64  `json:"clicks_last_30_days"`
	ToolCount  int    `json:"tool_count"`
}

// DailyClick is one point of the trailing-30-day timeline.
type DailyClick struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int64  `json:"count"`
}

// SortKey selects the ordering of the dashboard rollup table.
type SortKey string

const (
	SortByTotal  SortKey = "total"
	SortByRecent SortKey = "recent"
	SortByUsers  SortKey = "users"
)

// DashboardStats is the full analytics payload for the admin dashboard.
type DashboardStats struct {
	TotalClicks   int64            `json:"total_clicks"`
	RecentClicks  int64            `json:"recent_clicks"`
	ToolCount     int              `json:"tool_count"`
	CategoryCount int              `json:"category_count"`
	Tools         []ToolRollup     `json:"tools"`
	Categories    []CategoryRollup `json:"categories"`
	DailyClicks   []DailyClick     `json:"daily_clicks"`
}
