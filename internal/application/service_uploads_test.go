package application_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/plugscrtf/marketplace-service/internal/domain"
)

func TestUploadFileRoutesByMIME(t *testing.T) {
	t.Parallel()
	env := newTestService(t)
	ctx := context.Background()

	url, err := env.service.UploadFile(ctx, "photo.JPG", "image/jpeg", []byte("fake"))
	if err != nil {
		t.Fatalf("upload image: %v", err)
	}
	if !strings.Contains(url, "/images/") || !strings.HasSuffix(url, ".jpg") {
		t.Fatalf("unexpected image url: %s", url)
	}

	url, err = env.service.UploadFile(ctx, "clip.mp4", "video/mp4", []byte("fake"))
	if err != nil {
		t.Fatalf("upload video: %v", err)
	}
	if !strings.Contains(url, "/videos/") {
		t.Fatalf("unexpected video url: %s", url)
	}
}

func TestUploadFileRejectsOtherTypes(t *testing.T) {
	t.Parallel()
	env := newTestService(t)

	if _, err := env.service.UploadFile(context.Background(), "doc.pdf", "application/pdf", []byte("x")); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input for pdf, got %v", err)
	}
	if _, err := env.service.UploadFile(context.Background(), "empty.png", "image/png", nil); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input for empty file, got %v", err)
	}
}
