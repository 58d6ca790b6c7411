package application_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	redisadapter "github.com/plugscrtf/marketplace-service/internal/adapters/redis"
	"github.com/plugscrtf/marketplace-service/internal/application"
	"github.com/plugscrtf/marketplace-service/internal/ports"
)

type recordingTelegram struct {
	messages []string
}

func (r *recordingTelegram) SendMessage(_ context.Context, _, html string) error {
	r.messages = append(r.messages, html)
	return nil
}

type fakeFileStore struct{}

func (fakeFileStore) Upload(_ context.Context, name, _ string, _ []byte) (string, error) {
	return "https://blob.example/" + name, nil
}

type testEnv struct {
	service  *application.Service
	telegram *recordingTelegram
}

func newTestService(t *testing.T) testEnv {
	t.Helper()
	srv := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	kv := redisadapter.NewKV(client, slog.Default())

	telegram := &recordingTelegram{}
	service := application.NewService(application.Dependencies{
		Plugs:        redisadapter.NewPlugRepository(kv, nil),
		Products:     redisadapter.NewProductRepository(kv, nil),
		Categories:   redisadapter.NewCategoryRepository(kv, nil),
		Users:        redisadapter.NewUserRepository(kv, nil),
		UserStats:    redisadapter.NewUserStatsRepository(kv),
		Applications: redisadapter.NewApplicationRepository(kv, nil),
		Settings:     redisadapter.NewSettingsRepository(kv, nil),
		Telegram:     telegram,
		Files:        fakeFileStore{},
	})
	return testEnv{service: service, telegram: telegram}
}

var _ ports.TelegramNotifier = (*recordingTelegram)(nil)
var _ ports.FileStore = fakeFileStore{}
