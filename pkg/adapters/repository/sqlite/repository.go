package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	_ "github.com/tursodatabase/libsql-client-go/libsql" // Turso driver
	_ "modernc.org/sqlite"                               // Local SQLite driver

	"github.com/nattawatp/ai-tools-navigator/pkg/core/domain"
	"github.com/nattawatp/ai-tools-navigator/pkg/ports"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbURL string) (*SQLiteRepository, error) {
	driverName := "sqlite"
	if strings.Contains(dbURL, "libsql://") || strings.Contains(dbURL, "wss://") {
		driverName = "libsql"
	}

	db, err := sql.Open(driverName, dbURL)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	if err := migrate(db); err != nil {
		return nil, err
	}

	return &SQLiteRepository{db: db}, nil
}

func migrate(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS profiles (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		name TEXT,
		role TEXT NOT NULL DEFAULT 'user',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS categories (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS tools (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT,
		url TEXT NOT NULL,
		icon TEXT,
		category_id TEXT REFERENCES categories(id),
		clicks_count INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_tools_category_id ON tools(category_id);

	CREATE TABLE IF NOT EXISTS favorites (
		user_id TEXT NOT NULL,
		tool_id TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (user_id, tool_id)
	);

	CREATE TABLE IF NOT EXISTS clicks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		tool_id TEXT NOT NULL,
		user_id TEXT,
		clicked_at DATETIME NOT NULL,
		referrer TEXT,
		user_agent TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_clicks_tool_id ON clicks(tool_id);
	CREATE INDEX IF NOT EXISTS idx_clicks_clicked_at ON clicks(clicked_at);
	`
	_, err := db.Exec(query)
	return err
}

// --- Profiles ---

func (r *SQLiteRepository) UpsertProfile(ctx context.Context, profile *domain.Profile) error {
	query := `INSERT INTO profiles (id, email, name, role, created_at) VALUES (?, ?, ?, ?, ?)
			  ON CONFLICT(id) DO UPDATE SET email = excluded.email, name = excluded.name, role = excluded.role`
	_, err := r.db.ExecContext(ctx, query, profile.ID, profile.Email, profile.Name, string(profile.Role), profile.CreatedAt)
	return err
}

func (r *SQLiteRepository) GetProfile(ctx context.Context, id string) (*domain.Profile, error) {
	return scanProfile(r.db.QueryRowContext(ctx,
		`SELECT id, email, name, role, created_at FROM profiles WHERE id = ?`, id))
}

func (r *SQLiteRepository) GetProfileByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	return scanProfile(r.db.QueryRowContext(ctx,
		`SELECT id, email, name, role, created_at FROM profiles WHERE email = ?`, email))
}

func scanProfile(row *sql.Row) (*domain.Profile, error) {
	var p domain.Profile
	var role string
	var name sql.NullString
	err := row.Scan(&p.ID, &p.Email, &name, &role, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p.Name = name.String
	p.Role = domain.Role(role)
	return &p, nil
}

func (r *SQLiteRepository) CountProfiles(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM profiles`).Scan(&count)
	return count, err
}

// --- Categories ---

func (r *SQLiteRepository) CreateCategory(ctx context.Context, category *domain.Category) error {
	query := `INSERT INTO categories (id, name, description, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, category.ID, category.Name, category.Description, category.CreatedAt, category.UpdatedAt)
	return err
}

func (r *SQLiteRepository) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, description, created_at, updated_at FROM categories WHERE id = ?`, id)

	var c domain.Category
	var description sql.NullString
	err := row.Scan(&c.ID, &c.Name, &description, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	c.Description = description.String
	return &c, nil
}

func (r *SQLiteRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, description, created_at, updated_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		var description sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		c.Description = description.String
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *SQLiteRepository) UpdateCategory(ctx context.Context, category *domain.Category) error {
	query := `UPDATE categories SET name = ?, description = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, category.Name, category.Description, category.UpdatedAt, category.ID)
	return err
}

func (r *SQLiteRepository) DeleteCategory(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	return err
}

// DeleteCategoryReassign uncategorizes the dependent tools and removes
// the category in one transaction, so no tool ever references a missing
// category.
func (r *SQLiteRepository) DeleteCategoryReassign(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `UPDATE tools SET category_id = NULL WHERE category_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *SQLiteRepository) CountToolsInCategory(ctx context.Context, id string) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tools WHERE category_id = ?`, id).Scan(&count)
	return count, err
}

// --- Tools ---

func (r *SQLiteRepository) CreateTool(ctx context.Context, tool *domain.Tool) error {
	query := `INSERT INTO tools (id, name, description, url, icon, category_id, clicks_count, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, tool.ID, tool.Name, tool.Description, tool.URL, tool.Icon,
		tool.CategoryID, tool.Clicks, tool.CreatedAt, tool.UpdatedAt)
	return err
}

func (r *SQLiteRepository) GetTool(ctx context.Context, id string) (*domain.Tool, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, description, url, icon, category_id, clicks_count, created_at, updated_at
			  FROM tools WHERE id = ?`, id)

	var t domain.Tool
	var description, icon, categoryID sql.NullString
	err := row.Scan(&t.ID, &t.Name, &description, &t.URL, &icon, &categoryID, &t.Clicks, &t.CreatedAt, &t.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	t.Description = description.String
	t.Icon = icon.String
	if categoryID.Valid {
		id := categoryID.String
		t.CategoryID = &id
	}
	return &t, nil
}

func (r *SQLiteRepository) ListTools(ctx context.Context, search string) ([]domain.Tool, error) {
	query := `SELECT id, name, description, url, icon, category_id, clicks_count, created_at, updated_at FROM tools`
	args := []interface{}{}

	if search != "" {
		query += ` WHERE name LIKE ? OR description LIKE ?`
		args = append(args, "%"+search+"%", "%"+search+"%")
	}
	query += ` ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tools []domain.Tool
	for rows.Next() {
		var t domain.Tool
		var description, icon, categoryID sql.NullString
		if err := rows.Scan(&t.ID, &t.Name, &description, &t.URL, &icon, &categoryID, &t.Clicks, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		t.Description = description.String
		t.Icon = icon.String
		if categoryID.Valid {
			id := categoryID.String
			t.CategoryID = &id
		}
		tools = append(tools, t)
	}
	return tools, rows.Err()
}

func (r *SQLiteRepository) UpdateTool(ctx context.Context, tool *domain.Tool) error {
	query := `UPDATE tools SET name = ?, description = ?, url = ?, icon = ?, category_id = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, tool.Name, tool.Description, tool.URL, tool.Icon,
		tool.CategoryID, tool.UpdatedAt, tool.ID)
	return err
}

// DeleteTool removes the tool and its favorites. Click events stay: the
// log is the append-only audit trail.
func (r *SQLiteRepository) DeleteTool(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM favorites WHERE tool_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM tools WHERE id = ?`, id); err != nil {
		return err
	}
	return tx.Commit()
}

// --- Favorites ---

func (r *SQLiteRepository) AddFavorite(ctx context.Context, userID, toolID string) error {
	query := `INSERT OR IGNORE INTO favorites (user_id, tool_id, created_at) VALUES (?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, userID, toolID, time.Now().UTC())
	return err
}

func (r *SQLiteRepository) RemoveFavorite(ctx context.Context, userID, toolID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM favorites WHERE user_id = ? AND tool_id = ?`, userID, toolID)
	return err
}

func (r *SQLiteRepository) ListFavoriteToolIDs(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT tool_id FROM favorites WHERE user_id = ? ORDER BY created_at`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// --- Clicks ---

// RecordClick appends the event and increments the tool's cached
// counter in the same transaction, keeping the counter equal to the
// event count for the tool.
func (r *SQLiteRepository) RecordClick(ctx context.Context, event *domain.ClickEvent) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO clicks (tool_id, user_id, clicked_at, referrer, user_agent) VALUES (?, ?, ?, ?, ?)`,
		event.ToolID, event.UserID, event.ClickedAt, event.Referrer, event.UserAgent)
	if err != nil {
		return err
	}
	if id, err := res.LastInsertId(); err == nil {
		event.ID = id
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE tools SET clicks_count = clicks_count + 1 WHERE id = ?`, event.ToolID); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *SQLiteRepository) ListClickEvents(ctx context.Context, since *time.Time) ([]domain.ClickEvent, error) {
	query := `SELECT id, tool_id, user_id, clicked_at, referrer, user_agent FROM clicks`
	args := []interface{}{}
	if since != nil {
		query += ` WHERE clicked_at >= ?`
		args = append(args, *since)
	}
	query += ` ORDER BY clicked_at`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.ClickEvent
	for rows.Next() {
		var ev domain.ClickEvent
		var userID, referrer, userAgent sql.NullString
		if err := rows.Scan(&ev.ID, &ev.ToolID, &userID, &ev.ClickedAt, &referrer, &userAgent); err != nil {
			return nil, err
		}
		if userID.Valid {
			id := userID.String
			ev.UserID = &id
		}
		ev.Referrer = referrer.String
		ev.UserAgent = userAgent.String
		events = append(events, ev)
	}
	return events, rows.Err()
}

func (r *SQLiteRepository) CountClicksForTool(ctx context.Context, toolID string) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM clicks WHERE tool_id = ?`, toolID).Scan(&count)
	return count, err
}

// Ensure interface compliance
var _ ports.DirectoryRepository = (*SQLiteRepository)(nil)
