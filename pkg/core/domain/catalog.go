package domain

import "strings"

// Synthetic buckets shown alongside real category names.
const (
	BucketAllTools  = "All Tools"
	BucketFavorites = "My Favorites"
	Uncategorized   = "Uncategorized"
)

// CatalogTool is a tool joined with its category name and the viewing
// user's favorite flag.
type CatalogTool struct {
	Tool
	Category string `json:"category"`
	Favorite bool   `json:"favorite"`
}

// CatalogState is the explicit state container behind the browsable
// catalog view. It is built from one consistent read of the store and
// then only changes through the transition methods below, so the view
// a caller derives from it is reproducible. Optimistic click counts are
// kept apart from the persisted totals and merged on display; the
// persisted counter always wins once a click is confirmed.
type CatalogState struct {
	Tools    []CatalogTool
	Buckets  []string
	Selected string
	Query    string

	pending map[string]int64 // clicks registered locally, not yet confirmed
}

// NewCatalogState joins the fetched record sets into a browsable state.
// Tool order is preserved (callers fetch ordered by name). The favorites
// bucket only exists for authenticated viewers.
func NewCatalogState(tools []Tool, categories []Category, favoriteIDs []string, authenticated bool) *CatalogState {
	categoryNames := make(map[string]string, len(categories))
	for _, c := range categories {
		categoryNames[c.ID] = c.Name
	}

	favorites := make(map[string]bool, len(favoriteIDs))
	for _, id := range favoriteIDs {
		favorites[id] = true
	}

	view := make([]CatalogTool, 0, len(tools))
	for _, t := range tools {
		name := Uncategorized
		if t.CategoryID != nil {
			if n, ok := categoryNames[*t.CategoryID]; ok {
				name = n
			}
		}
		view = append(view, CatalogTool{
			Tool:     t,
			Category: name,
			Favorite: favorites[t.ID],
		})
	}

	buckets := []string{BucketAllTools}
	if authenticated {
		buckets = append(buckets, BucketFavorites)
	}
	for _, c := range categories {
		buckets = append(buckets, c.Name)
	}

	return &CatalogState{
		Tools:    view,
		Buckets:  buckets,
		Selected: buckets[0],
		pending:  make(map[string]int64),
	}
}

// SelectBucket switches the selected category bucket. Selecting a
// bucket that no longer exists (category deleted while viewing) falls
// back to the first available bucket.
func (s *CatalogState) SelectBucket(name string) {
	for _, b := range s.Buckets {
		if b == name {
			s.Selected = name
			return
		}
	}
	s.Selected = s.Buckets[0]
}

// SetQuery updates the free-text filter.
func (s *CatalogState) SetQuery(q string) {
	s.Query = q
}

// RemoveBucket drops a category bucket, falling back to the first
// bucket when the removed one was selected.
func (s *CatalogState) RemoveBucket(name string) {
	kept := s.Buckets[:0]
	for _, b := range s.Buckets {
		if b != name {
			kept = append(kept, b)
		}
	}
	s.Buckets = kept
	if s.Selected == name {
		s.Selected = s.Buckets[0]
	}
}

// ToggleFavorite flips the favorite flag for a tool and reports the new
// value.
func (s *CatalogState) ToggleFavorite(toolID string) bool {
	for i := range s.Tools {
		if s.Tools[i].ID == toolID {
			s.Tools[i].Favorite = !s.Tools[i].Favorite
			return s.Tools[i].Favorite
		}
	}
	return false
}

// RegisterClick records an optimistic local click and returns the count
// the viewer should see. The persisted counter is untouched until the
// click is confirmed.
func (s *CatalogState) RegisterClick(toolID string) int64 {
	s.pending[toolID]++
	return s.DisplayClicks(toolID)
}

// ConfirmClick reconciles one registered click with the counter the
// store reported after the write. Merge rule: the persisted value
// replaces the local base, remaining unconfirmed clicks stay on top.
func (s *CatalogState) ConfirmClick(toolID string, persisted int64) {
	if s.pending[toolID] > 0 {
		s.pending[toolID]--
		if s.pending[toolID] == 0 {
			delete(s.pending, toolID)
		}
	}
	for i := range s.Tools {
		if s.Tools[i].ID == toolID {
			s.Tools[i].Clicks = persisted
			return
		}
	}
}

// DropClick discards one unconfirmed click after a failed write. The
// displayed count falls back to the persisted value.
func (s *CatalogState) DropClick(toolID string) {
	if s.pending[toolID] > 0 {
		s.pending[toolID]--
		if s.pending[toolID] == 0 {
			delete(s.pending, toolID)
		}
	}
}

// DisplayClicks is the persisted counter plus unconfirmed local clicks.
func (s *CatalogState) DisplayClicks(toolID string) int64 {
	for i := range s.Tools {
		if s.Tools[i].ID == toolID {
			return s.Tools[i].Clicks + s.pending[toolID]
		}
	}
	return 0
}

// Visible returns the tools matching both the selected bucket and the
// text query, in the underlying order.
func (s *CatalogState) Visible() []CatalogTool {
	out := make([]CatalogTool, 0, len(s.Tools))
	for i := range s.Tools {
		t := s.Tools[i]
		if !s.inBucket(t, s.Selected) || !s.matchesQuery(t) {
			continue
		}
		t.Clicks += s.pending[t.ID]
		out = append(out, t)
	}
	return out
}

// Counts returns per-bucket tool counts honoring the current query,
// for the sidebar badges.
func (s *CatalogState) Counts() map[string]int {
	counts := make(map[string]int, len(s.Buckets))
	for _, b := range s.Buckets {
		counts[b] = 0
	}
	for i := range s.Tools {
		if !s.matchesQuery(s.Tools[i]) {
			continue
		}
		for _, b := range s.Buckets {
			if s.inBucket(s.Tools[i], b) {
				counts[b]++
			}
		}
	}
	return counts
}

func (s *CatalogState) inBucket(t CatalogTool, bucket string) bool {
	switch bucket {
	case BucketAllTools:
		return true
	case BucketFavorites:
		return t.Favorite
	default:
		return t.Category == bucket
	}
}

func (s *CatalogState) matchesQuery(t CatalogTool) bool {
	if s.Query == "" {
		return true
	}
	q := strings.ToLower(s.Query)
	return strings.Contains(strings.ToLower(t.Name), q) ||
		strings.Contains(strings.ToLower(t.Description), q)
}

// CatalogView is the serialized form of the state handed to clients.
type CatalogView struct {
	Buckets  []string       `json:"buckets"`
	Counts   map[string]int `json:"counts"`
	Selected string         `json:"selected"`
	Query    string         `json:"query,omitempty"`
	Tools    []CatalogTool  `json:"tools"`
}
