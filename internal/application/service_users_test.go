package application_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/plugscrtf/marketplace-service/internal/domain"
	"github.com/plugscrtf/marketplace-service/internal/ports"
)

func TestSendPoints(t *testing.T) {
	t.Parallel()
	env := newTestService(t)
	ctx := context.Background()

	if _, err := env.service.SyncUser(ctx, "42", ports.Patch{"telegramId": "42", "username": "sam"}); err != nil {
		t.Fatalf("sync user: %v", err)
	}

	stats, err := env.service.SendPoints(ctx, "42", 100)
	if err != nil {
		t.Fatalf("send points: %v", err)
	}
	if stats.Points != 100 {
		t.Fatalf("expected 100 points, got %d", stats.Points)
	}
	if len(env.telegram.messages) != 1 || !strings.Contains(env.telegram.messages[0], "100 points") {
		t.Fatalf("points notification missing: %v", env.telegram.messages)
	}
}

func TestSendPointsUnknownUser(t *testing.T) {
	t.Parallel()
	env := newTestService(t)

	if _, err := env.service.SendPoints(context.Background(), "absent", 10); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSendPointsRejectsNonPositive(t *testing.T) {
	t.Parallel()
	env := newTestService(t)

	if _, err := env.service.SendPoints(context.Background(), "42", 0); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestRemoveSyncedUser(t *testing.T) {
	t.Parallel()
	env := newTestService(t)
	ctx := context.Background()

	if _, err := env.service.SyncUser(ctx, "77", ports.Patch{"telegramId": "77"}); err != nil {
		t.Fatalf("sync user: %v", err)
	}
	if err := env.service.RemoveSyncedUser(ctx, "77"); err != nil {
		t.Fatalf("remove user: %v", err)
	}
	if n := env.service.CountUsers(ctx); n != 0 {
		t.Fatalf("expected no users, got %d", n)
	}
}
