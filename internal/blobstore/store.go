package blobstore

import (
	"context"
	"regexp"

	"github.com/google/uuid"
)

// Scheme is the URI scheme used to reference stored images from markdown,
// e.g. ![pasted image](indexeddb://<id>).
const Scheme = "indexeddb"

// Store is keyed binary storage for pasted images. The backing medium may be
// slow, so every operation takes a context and may suspend the caller.
//
// Get reports absence through its bool result, never through the error:
// callers rely on that to degrade gracefully when a reference is stale.
type Store interface {
	Put(ctx context.Context, id string, payload []byte) error
	Get(ctx context.Context, id string) ([]byte, bool, error)
	Delete(ctx context.Context, id string) error
	ListIDs(ctx context.Context) ([]string, error)
}

// NewID returns a fresh identifier for a pasted image. Generation is the
// paste handler's responsibility, not the store's.
func NewID() string {
	return uuid.NewString()
}

var refPattern = regexp.MustCompile(Scheme + `://([0-9A-Za-z-]+)`)

// ReferencedIDs extracts the distinct image ids referenced by s, in first
// occurrence order. Works on raw markdown and on rendered HTML alike since
// the reference URI survives rendering verbatim.
func ReferencedIDs(s string) []string {
	matches := refPattern.FindAllStringSubmatch(s, -1)
	seen := make(map[string]bool, len(matches))
	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		if !seen[m[1]] {
			seen[m[1]] = true
			ids = append(ids, m[1])
		}
	}
	return ids
}

// URI renders the reference URI for an id.
func URI(id string) string {
	return Scheme + "://" + id
}
