package domain

import "time"

// Tool is a cataloged external AI product
type Tool struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	Icon        string    `json:"icon"` // image URL or a symbolic icon name
	CategoryID  *string   `json:"category_id"`
	Clicks      int64     `json:"clicks_count"` // cached total, maintained with the click log
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Favorite is a user-specific bookmark of a tool. At most one row per
// (user, tool) pair.
type Favorite struct {
	UserID    string    `json:"user_id"`
	ToolID    string    `json:"tool_id"`
	CreatedAt time.Time `json:"created_at"`
}
