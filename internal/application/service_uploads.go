package application

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/plugscrtf/marketplace-service/internal/domain"
)

const maxUploadBytes = 50 << 20

// UploadFile pushes an image or video to blob storage and returns its
// public URL. Anything else is rejected before touching the store.
func (s *Service) UploadFile(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: aucun fichier fourni", domain.ErrInvalidInput)
	}
	if len(data) > maxUploadBytes {
		return "", fmt.Errorf("%w: le fichier dépasse la taille maximale de 50 Mo", domain.ErrInvalidInput)
	}

	var folder string
	switch {
	case strings.HasPrefix(contentType, "image/"):
		folder = "images"
	case strings.HasPrefix(contentType, "video/"):
		folder = "videos"
	default:
		return "", fmt.Errorf("%w: seuls les fichiers image et vidéo sont acceptés", domain.ErrInvalidInput)
	}

	name := folder + "/" + uuid.NewString() + strings.ToLower(path.Ext(filename))
	url, err := s.files.Upload(ctx, name, contentType, data)
	if err != nil {
		return "", fmt.Errorf("upload file: %w", err)
	}
	return url, nil
}
