package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/nattawatp/ai-tools-navigator/pkg/adapters/handler"
	"github.com/nattawatp/ai-tools-navigator/pkg/adapters/repository/sqlite"
	"github.com/nattawatp/ai-tools-navigator/pkg/config"
	"github.com/nattawatp/ai-tools-navigator/pkg/core/domain"
	"github.com/nattawatp/ai-tools-navigator/pkg/core/services"
)

const testSecret = "integration-secret"

func newTestServer(t *testing.T, dbURL string) (*httptest.Server, *sqlite.SQLiteRepository) {
	t.Helper()

	repo, err := sqlite.NewSQLiteRepository(dbURL)
	if err != nil {
		t.Fatalf("Failed to init db: %v", err)
	}

	cfg := &config.Config{
		JWTSecret:   testSecret,
		FrontendURL: "http://localhost:3000",
	}

	svcs := handler.Services{
		Identity:   services.NewIdentityService(repo, "admin@example.com"),
		Catalog:    services.NewCatalogService(repo),
		Tools:      services.NewToolService(repo),
		Categories: services.NewCategoryService(repo, domain.DeletePolicyReassign),
		Favorites:  services.NewFavoriteService(repo),
		Analytics:  services.NewAnalyticsService(repo),
	}

	server := httptest.NewServer(handler.NewRouter(cfg, svcs))
	t.Cleanup(server.Close)
	return server, repo
}

func seedProfile(t *testing.T, repo *sqlite.SQLiteRepository, id string, role domain.Role) {
	t.Helper()
	err := repo.UpsertProfile(context.Background(), &domain.Profile{
		ID:        id,
		Email:     id + "@example.com",
		Name:      id,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("Failed to seed profile %s: %v", id, err)
	}
}

func authCookie(t *testing.T, profileID string) *http.Cookie {
	t.Helper()
	claims := &jwt.RegisteredClaims{
		Subject:   profileID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}
	return &http.Cookie{Name: "auth_token", Value: token}
}

func doJSON(t *testing.T, client *http.Client, method, url string, cookie *http.Cookie, payload interface{}) *http.Response {
	t.Helper()
	var body io.Reader
	if payload != nil {
		b, _ := json.Marshal(payload)
		body = bytes.NewBuffer(b)
	}
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestIntegration(t *testing.T) {
	server, repo := newTestServer(t, "file:memdb1?mode=memory&cache=shared")
	seedProfile(t, repo, "admin-1", domain.RoleAdmin)
	seedProfile(t, repo, "user-1", domain.RoleUser)

	client := server.Client()
	client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}
	admin := authCookie(t, "admin-1")
	user := authCookie(t, "user-1")

	// TEST 1: Admin creates a category
	resp := doJSON(t, client, "POST", server.URL+"/api/v1/categories", admin, map[string]interface{}{
		"name":        "Writing",
		"description": "Assistants for text",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Create category expected 201, got %d", resp.StatusCode)
	}
	var category struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	json.NewDecoder(resp.Body).Decode(&category)
	resp.Body.Close()
	if category.ID == "" {
		t.Fatal("Category id is empty")
	}

	// TEST 2: Non-admin cannot create a tool
	resp = doJSON(t, client, "POST", server.URL+"/api/v1/tools", user, map[string]interface{}{
		"name": "Nope", "url": "https://nope.example.com",
	})
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("Expected 403 for non-admin create, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// TEST 3: Admin creates a tool in the category
	resp = doJSON(t, client, "POST", server.URL+"/api/v1/tools", admin, map[string]interface{}{
		"name":        "DraftPilot",
		"description": "Drafts emails",
		"url":         "https://draftpilot.example.com",
		"category_id": category.ID,
	})
	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("Create tool expected 201, got %d: %s", resp.StatusCode, body)
	}
	var tool struct {
		ID  string `json:"id"`
		URL string `json:"url"`
	}
	json.NewDecoder(resp.Body).Decode(&tool)
	resp.Body.Close()
	if tool.ID == "" {
		t.Fatal("Tool id is empty")
	}

	// TEST 4: Anonymous catalog browse sees the tool under its category
	resp = doJSON(t, client, "GET", server.URL+"/api/v1/catalog?bucket=Writing", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Catalog expected 200, got %d", resp.StatusCode)
	}
	var view struct {
		Selected string `json:"selected"`
		Tools    []struct {
			ID string `json:"id"`
		} `json:"tools"`
	}
	json.NewDecoder(resp.Body).Decode(&view)
	resp.Body.Close()
	if view.Selected != "Writing" {
		t.Errorf("Selected bucket = %q, want Writing", view.Selected)
	}
	if len(view.Tools) != 1 || view.Tools[0].ID != tool.ID {
		t.Errorf("Catalog tools mismatch: %+v", view.Tools)
	}

	// TEST 5: Open redirects to the tool URL
	resp = doJSON(t, client, "GET", server.URL+"/open/"+tool.ID, user, nil)
	if resp.StatusCode != http.StatusFound {
		t.Errorf("Open expected 302, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != tool.URL {
		t.Errorf("Redirect location mismatch: %s", loc)
	}
	resp.Body.Close()

	// TEST 6: Client-reported click answers with the optimistic count
	resp = doJSON(t, client, "POST", server.URL+"/api/v1/tools/"+tool.ID+"/clicks", nil, nil)
	if resp.StatusCode != http.StatusAccepted {
		t.Errorf("Track expected 202, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// The click writes are fire and forget; poll until both land.
	deadline := time.Now().Add(2 * time.Second)
	var clicks int64
	for time.Now().Before(deadline) {
		var err error
		clicks, err = repo.CountClicksForTool(context.Background(), tool.ID)
		if err != nil {
			t.Fatal(err)
		}
		if clicks >= 2 {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if clicks != 2 {
		t.Errorf("Expected 2 recorded clicks, got %d", clicks)
	}

	// TEST 7: User favorites the tool and sees it in the favorites bucket
	resp = doJSON(t, client, "PUT", server.URL+"/api/v1/tools/"+tool.ID+"/favorite", user, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("Favorite expected 204, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = doJSON(t, client, "GET", server.URL+"/api/v1/catalog?bucket=My+Favorites", user, nil)
	json.NewDecoder(resp.Body).Decode(&view)
	resp.Body.Close()
	if len(view.Tools) != 1 {
		t.Errorf("Favorites bucket expected 1 tool, got %d", len(view.Tools))
	}

	// TEST 8: Dashboard is admin only and reflects the clicks
	resp = doJSON(t, client, "GET", server.URL+"/api/v1/dashboard", user, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("Dashboard as user expected 403, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = doJSON(t, client, "GET", server.URL+"/api/v1/dashboard", admin, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Dashboard expected 200, got %d", resp.StatusCode)
	}
	var stats struct {
		TotalClicks int64 `json:"total_clicks"`
		DailyClicks []struct {
			Date  string `json:"date"`
			Count int64  `json:"count"`
		} `json:"daily_clicks"`
	}
	json.NewDecoder(resp.Body).Decode(&stats)
	resp.Body.Close()
	if stats.TotalClicks != 2 {
		t.Errorf("Dashboard total clicks = %d, want 2", stats.TotalClicks)
	}
	if len(stats.DailyClicks) != 30 {
		t.Errorf("Daily series length = %d, want 30", len(stats.DailyClicks))
	}

	// TEST 9: Deleting a populated category asks for confirmation first
	resp = doJSON(t, client, "DELETE", server.URL+"/api/v1/categories/"+category.ID, admin, nil)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("Unconfirmed delete expected 409, got %d", resp.StatusCode)
	}
	var conflict struct {
		ToolCount int64 `json:"tool_count"`
	}
	json.NewDecoder(resp.Body).Decode(&conflict)
	resp.Body.Close()
	if conflict.ToolCount != 1 {
		t.Errorf("Conflict tool count = %d, want 1", conflict.ToolCount)
	}

	resp = doJSON(t, client, "DELETE", server.URL+"/api/v1/categories/"+category.ID+"?confirm=true", admin, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("Confirmed delete expected 204, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// The tool survives, now uncategorized.
	got, err := repo.GetTool(context.Background(), tool.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil {
		t.Fatal("Tool disappeared with its category")
	}
	if got.CategoryID != nil {
		t.Errorf("Tool category = %v, want nil", *got.CategoryID)
	}
}
