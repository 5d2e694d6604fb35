package domain

import "time"

// Category is an administrator-defined grouping of tools
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DeletePolicy controls what happens to tools still referencing a
// category when it is deleted.
type DeletePolicy string

const (
	// DeletePolicyReassign moves referencing tools to "uncategorized"
	// (category_id = NULL) before deleting the row.
	DeletePolicyReassign DeletePolicy = "reassign"
	// DeletePolicyBlock refuses the deletion while tools still
	// reference the category.
	DeletePolicyBlock DeletePolicy = "block"
)
