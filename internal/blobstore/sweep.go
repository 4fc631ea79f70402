package blobstore

import "context"

// Sweep deletes every stored id not present in live and returns the number
// of deleted entries. A delete failure stops the sweep; already-deleted
// entries stay deleted.
func Sweep(ctx context.Context, store Store, live []string) (int, error) {
	keep := make(map[string]bool, len(live))
	for _, id := range live {
		keep[id] = true
	}

	ids, err := store.ListIDs(ctx)
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, id := range ids {
		if keep[id] {
			continue
		}
		if err := store.Delete(ctx, id); err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}
