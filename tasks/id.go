package tasks

import (
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// NewID returns a random UUID. If the random source fails it falls back to a
// base36 timestamp followed by a base36 random suffix.
func NewID() string {
	id, err := uuid.NewRandom()
	if err != nil {
		return fallbackID(time.Now())
	}
	return id.String()
}

func fallbackID(now time.Time) string {
	return strconv.FormatInt(now.UnixNano(), 36) + strconv.FormatUint(rand.Uint64(), 36)
}
