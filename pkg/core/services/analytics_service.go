package services

import (
	"context"
	"sort"
	"time"

	"github.com/nattawatp/ai-tools-navigator/pkg/core/domain"
	"github.com/nattawatp/ai-tools-navigator/pkg/ports"
)

// trailingWindowDays is the rolling window for "recent" rollups and the
// length of the daily timeline.
const trailingWindowDays = 30

type AnalyticsService struct {
	repo ports.DirectoryRepository
	now  func() time.Time
}

func NewAnalyticsService(repo ports.DirectoryRepository) *AnalyticsService {
	return &AnalyticsService{repo: repo, now: time.Now}
}

// Dashboard reduces the full click log into the admin dashboard
// payload. The aggregation itself is pure; this method only fetches
// the inputs and gates on the admin capability.
func (s *AnalyticsService) Dashboard(ctx context.Context, actorID, categoryFilter string, sortBy domain.SortKey) (*domain.DashboardStats, error) {
	if err := requireAdmin(ctx, s.repo, actorID); err != nil {
		return nil, err
	}

	tools, err := s.repo.ListTools(ctx, "")
	if err != nil {
		return nil, err
	}
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	events, err := s.repo.ListClickEvents(ctx, nil)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	rollups := BuildToolRollups(events, tools, categories, now)

	stats := &domain.DashboardStats{
		ToolCount:     len(tools),
		CategoryCount: len(categories),
		Categories:    BuildCategoryRollups(events, tools, categories, now),
		DailyClicks:   BuildDailySeries(events, now),
	}
	for _, r := range rollups {
		stats.TotalClicks += r.Clicks
		stats.RecentClicks += r.Recent
	}

	if categoryFilter != "" {
		filtered := rollups[:0]
		for _, r := range rollups {
			if r.Category == categoryFilter {
				filtered = append(filtered, r)
			}
		}
		rollups = filtered
	}
	SortRollups(rollups, sortBy)
	stats.Tools = rollups

	return stats, nil
}

type clickAccumulator struct {
	total  int64
	recent int64
	users  map[string]struct{}
}

func accumulateClicks(events []domain.ClickEvent, now time.Time) map[string]*clickAccumulator {
	cutoff := now.AddDate(0, 0, -trailingWindowDays)
	byTool := make(map[string]*clickAccumulator)
	for _, ev := range events {
		acc := byTool[ev.ToolID]
		if acc == nil {
			acc = &clickAccumulator{users: make(map[string]struct{})}
			byTool[ev.ToolID] = acc
		}
		acc.total++
		if !ev.ClickedAt.Before(cutoff) {
			acc.recent++
		}
		if ev.UserID != nil && *ev.UserID != "" {
			acc.users[*ev.UserID] = struct{}{}
		}
	}
	return byTool
}

// BuildToolRollups derives the per-tool rollup table from the click
// log. Deterministic for a given input: counts come from the events,
// not the cached counter, so recomputing always converges on the log.
func BuildToolRollups(events []domain.ClickEvent, tools []domain.Tool, categories []domain.Category, now time.Time) []domain.ToolRollup {
	byTool := accumulateClicks(events, now)

	categoryNames := make(map[string]string, len(categories))
	for _, c := range categories {
		categoryNames[c.ID] = c.Name
	}

	rollups := make([]domain.ToolRollup, 0, len(tools))
	for _, t := range tools {
		r := domain.ToolRollup{
			ToolID:   t.ID,
			Name:     t.Name,
			URL:      t.URL,
			Category: domain.Uncategorized,
		}
		if t.CategoryID != nil {
			if name, ok := categoryNames[*t.CategoryID]; ok {
				r.Category = name
			}
		}
		if acc := byTool[t.ID]; acc != nil {
			r.Clicks = acc.total
			r.Recent = acc.recent
			r.UniqueUsers = int64(len(acc.users))
		}
		rollups = append(rollups, r)
	}
	return rollups
}

// BuildCategoryRollups sums each category's member tools. Uncategorized
// tools are not attributed to any category.
func BuildCategoryRollups(events []domain.ClickEvent, tools []domain.Tool, categories []domain.Category, now time.Time) []domain.CategoryRollup {
	byTool := accumulateClicks(events, now)

	rollups := make([]domain.CategoryRollup, 0, len(categories))
	for _, c := range categories {
		r := domain.CategoryRollup{CategoryID: c.ID, Name: c.Name}
		for _, t := range tools {
			if t.CategoryID == nil || *t.CategoryID != c.ID {
				continue
			}
			r.ToolCount++
			if acc := byTool[t.ID]; acc != nil {
				r.Clicks += acc.total
				r.Recent += acc.recent
			}
		}
		rollups = append(rollups, r)
	}
	sort.SliceStable(rollups, func(i, j int) bool {
		return rollups[i].Clicks > rollups[j].Clicks
	})
	return rollups
}

// BuildDailySeries produces the dense trailing timeline: exactly
// trailingWindowDays points, one per UTC calendar day including today,
// oldest first, zero-filled for days without clicks.
func BuildDailySeries(events []domain.ClickEvent, now time.Time) []domain.DailyClick {
	const layout = "2006-01-02"

	start := now.UTC().AddDate(0, 0, -(trailingWindowDays - 1))
	counts := make(map[string]int64, trailingWindowDays)
	series := make([]domain.DailyClick, 0, trailingWindowDays)
	for i := 0; i < trailingWindowDays; i++ {
		counts[start.AddDate(0, 0, i).Format(layout)] = 0
	}

	for _, ev := range events {
		day := ev.ClickedAt.UTC().Format(layout)
		if _, ok := counts[day]; ok {
			counts[day]++
		}
	}

	for i := 0; i < trailingWindowDays; i++ {
		day := start.AddDate(0, 0, i).Format(layout)
		series = append(series, domain.DailyClick{Date: day, Count: counts[day]})
	}
	return series
}

// SortRollups orders the rollup table by the chosen key, descending.
// Stable: ties keep their input order.
func SortRollups(rollups []domain.ToolRollup, key domain.SortKey) {
	sort.SliceStable(rollups, func(i, j int) bool {
		switch key {
		case domain.SortByRecent:
			return rollups[i].Recent > rollups[j].Recent
		case domain.SortByUsers:
			return rollups[i].UniqueUsers > rollups[j].UniqueUsers
		default:
			return rollups[i].Clicks > rollups[j].Clicks
		}
	})
}

var _ ports.AnalyticsService = (*AnalyticsService)(nil)
