package application

import (
	"context"
	"fmt"
	"sync"

	"github.com/plugscrtf/marketplace-service/internal/domain"
)

// AddLikesToAllPlugs bumps every plug's like counter by the same amount.
// Increments fan out concurrently; a failed plug is logged and skipped.
func (s *Service) AddLikesToAllPlugs(ctx context.Context, by int64) (int, error) {
	if by <= 0 {
		return 0, fmt.Errorf("%w: le nombre de likes doit être positif", domain.ErrInvalidInput)
	}
	plugs, err := s.plugs.List(ctx, true)
	if err != nil {
		return 0, err
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		updated int
	)
	for _, plug := range plugs {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			if _, err := s.plugs.IncrementLikes(ctx, id, by); err != nil {
				s.logger.WarnContext(ctx, "bulk like increment failed", "plug_id", id, "error", err)
				return
			}
			mu.Lock()
			updated++
			mu.Unlock()
		}(plug.ID)
	}
	wg.Wait()
	return updated, nil
}
