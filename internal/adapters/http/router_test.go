package http_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	httpadapter "github.com/plugscrtf/marketplace-service/internal/adapters/http"
	redisadapter "github.com/plugscrtf/marketplace-service/internal/adapters/redis"
	"github.com/plugscrtf/marketplace-service/internal/application"
	"github.com/plugscrtf/marketplace-service/internal/domain"
)

func newTestServer(t *testing.T) (*httptest.Server, *application.Service) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	kv := redisadapter.NewKV(client, slog.Default())

	service := application.NewService(application.Dependencies{
		Plugs:        redisadapter.NewPlugRepository(kv, nil),
		Products:     redisadapter.NewProductRepository(kv, nil),
		Categories:   redisadapter.NewCategoryRepository(kv, nil),
		Users:        redisadapter.NewUserRepository(kv, nil),
		UserStats:    redisadapter.NewUserStatsRepository(kv),
		Applications: redisadapter.NewApplicationRepository(kv, nil),
		Settings:     redisadapter.NewSettingsRepository(kv, nil),
	})
	handler := httpadapter.NewHandler(service, kv, slog.Default())
	router := httpadapter.NewRouter(handler, httpadapter.Config{
		AdminPassword: "admin-secret",
		SyncSecretKey: "sync-secret",
	})
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts, service
}

func TestListPlugsEmpty(t *testing.T) {
	t.Parallel()
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/plugs")
	if err != nil {
		t.Fatalf("get plugs: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var plugs []domain.Plug
	if err := json.NewDecoder(resp.Body).Decode(&plugs); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(plugs) != 0 {
		t.Fatalf("expected empty array, got %d entries", len(plugs))
	}
}

func TestActiveFilterOnListing(t *testing.T) {
	t.Parallel()
	ts, service := newTestServer(t)
	ctx := context.Background()

	if _, err := service.CreatePlug(ctx, domain.Plug{Name: "Visible", IsActive: true}); err != nil {
		t.Fatalf("create active: %v", err)
	}
	if _, err := service.CreatePlug(ctx, domain.Plug{Name: "Caché"}); err != nil {
		t.Fatalf("create inactive: %v", err)
	}

	for _, tc := range []struct {
		url  string
		want int
	}{
		{"/api/plugs", 1},
		{"/api/plugs?all=true", 2},
	} {
		resp, err := http.Get(ts.URL + tc.url)
		if err != nil {
			t.Fatalf("get %s: %v", tc.url, err)
		}
		var plugs []domain.Plug
		if err := json.NewDecoder(resp.Body).Decode(&plugs); err != nil {
			t.Fatalf("decode %s: %v", tc.url, err)
		}
		resp.Body.Close()
		if len(plugs) != tc.want {
			t.Fatalf("%s: expected %d plugs, got %d", tc.url, tc.want, len(plugs))
		}
	}
}

func TestNotFoundErrorShape(t *testing.T) {
	t.Parallel()
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/products/absent")
	if err != nil {
		t.Fatalf("get product: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["error"] != "Produit non trouvé" {
		t.Fatalf("unexpected error message: %q", body["error"])
	}
}

func TestAdminRouteRequiresBearer(t *testing.T) {
	t.Parallel()
	ts, _ := newTestServer(t)

	body := strings.NewReader(`{"likes": 5}`)
	resp, err := http.Post(ts.URL+"/api/admin/plugs/add-likes", "application/json", body)
	if err != nil {
		t.Fatalf("post without auth: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/admin/plugs/add-likes", strings.NewReader(`{"likes": 5}`))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer admin-secret")
	req.Header.Set("Content-Type", "application/json")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("post with auth: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 with bearer, got %d", resp.StatusCode)
	}
}

func TestSyncRouteRejectsAdminToken(t *testing.T) {
	t.Parallel()
	ts, _ := newTestServer(t)

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/users/sync", strings.NewReader(`{"telegramId": "42"}`))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer admin-secret")
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("sync secret and admin password must not be interchangeable, got %d", resp.StatusCode)
	}
}

func TestSyncAcceptsNumericTelegramID(t *testing.T) {
	t.Parallel()
	ts, service := newTestServer(t)

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/users/sync",
		strings.NewReader(`{"telegramId": 123456789, "username": "botuser"}`))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer sync-secret")
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("numeric telegramId must sync, got %d", resp.StatusCode)
	}
	var user domain.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		t.Fatalf("decode user: %v", err)
	}
	if user.TelegramID != "123456789" {
		t.Fatalf("expected id stored as string, got %q", user.TelegramID)
	}

	stored, err := service.GetUserByTelegramID(context.Background(), "123456789")
	if err != nil {
		t.Fatalf("lookup synced user: %v", err)
	}
	if stored.Username != "botuser" {
		t.Fatalf("patch fields lost: %+v", stored)
	}
}

func TestSyncDeleteIsIdempotent(t *testing.T) {
	t.Parallel()
	ts, _ := newTestServer(t)

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/api/users/sync",
		strings.NewReader(`{"telegramId": "999"}`))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer sync-secret")
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete of unknown user must succeed, got %d", resp.StatusCode)
	}
	var body map[string]bool
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !body["success"] {
		t.Fatalf("expected success true, got %v", body)
	}
}

func TestSettingsServedWithDefaults(t *testing.T) {
	t.Parallel()
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/settings")
	if err != nil {
		t.Fatalf("get settings: %v", err)
	}
	defer resp.Body.Close()
	var settings domain.Settings
	if err := json.NewDecoder(resp.Body).Decode(&settings); err != nil {
		t.Fatalf("decode settings: %v", err)
	}
	if settings.WelcomeMessage == "" {
		t.Fatalf("expected default welcome message")
	}
}
