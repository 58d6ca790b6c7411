package redis

import (
	"fmt"
	"time"

	"github.com/jaevor/go-nanoid"
)

// Entity IDs keep the historical shape "<unix-millis>-<random>": sortable
// enough for humans, unique enough for this scale.
var idSuffix = mustGenerator()

func mustGenerator() func() string {
	gen, err := nanoid.CustomASCII("0123456789abcdefghijklmnopqrstuvwxyz", 13)
	if err != nil {
		panic(err)
	}
	return gen
}

func newID() string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), idSuffix())
}
