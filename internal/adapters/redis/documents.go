package redis

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"

	"github.com/plugscrtf/marketplace-service/internal/ports"
)

// mergePatch overlays a partial update on a stored JSON document and decodes
// the result into out. Unknown fields survive the round trip untouched,
// which is what keeps documents written by older builds readable.
func mergePatch(raw string, patch ports.Patch, out any) error {
	doc := map[string]any{}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return err
	}
	for k, v := range patch {
		doc[k] = v
	}
	merged, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return json.Unmarshal(merged, out)
}

func decodeDoc(ctx context.Context, logger *slog.Logger, kind, raw string, out any) bool {
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		// A corrupt record is treated as absent rather than propagated.
		logger.ErrorContext(ctx, "corrupt record dropped", "kind", kind, "error", err)
		return false
	}
	return true
}

func counterValue(raw *string) int64 {
	if raw == nil {
		return 0
	}
	n, err := strconv.ParseInt(*raw, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func patchBool(patch ports.Patch, field string) (bool, bool) {
	v, ok := patch[field]
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

func patchString(patch ports.Patch, field string) (string, bool) {
	v, ok := patch[field]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
