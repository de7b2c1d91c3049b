package store

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
)

// Snapshot is every stored collection of one session, keyed by unscoped
// collection key. Absent collections are omitted.
type Snapshot map[string]json.RawMessage

// Export reads all of a session's collections verbatim.
func Export(ctx context.Context, backend Backend, session string) (Snapshot, error) {
	snap := Snapshot{}
	for _, key := range Keys() {
		data, ok, err := backend.Load(ctx, ScopedKey(session, key))
		if err != nil {
			return nil, fmt.Errorf("export %s: %w", key, err)
		}
		if ok {
			snap[key] = json.RawMessage(data)
		}
	}
	return snap, nil
}

// Import writes snap into session, overwriting each collection it names.
// Unknown keys and values of the wrong shape are rejected before anything
// is written.
func Import(ctx context.Context, backend Backend, session string, snap Snapshot) error {
	known := Keys()
	for key, data := range snap {
		if !slices.Contains(known, key) {
			return fmt.Errorf("import: unknown collection %q", key)
		}
		if err := checkShape(key, data); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrCorruptSnapshot, key, err)
		}
	}
	for _, key := range known {
		data, ok := snap[key]
		if !ok {
			continue
		}
		if err := backend.Save(ctx, ScopedKey(session, key), data); err != nil {
			return fmt.Errorf("import %s: %w", key, err)
		}
	}
	return nil
}

// checkShape decodes data into the top-level JSON type its collection is
// stored as: an object for the profile, a bool for the visited flag and an
// array of objects for every list. null is accepted and reads back empty.
func checkShape(key string, data json.RawMessage) error {
	switch key {
	case KeyProfile:
		var v map[string]json.RawMessage
		return json.Unmarshal(data, &v)
	case KeyVisited:
		var v bool
		return json.Unmarshal(data, &v)
	case KeyDismissedAdvisories:
		var v []string
		return json.Unmarshal(data, &v)
	default:
		var v []map[string]json.RawMessage
		return json.Unmarshal(data, &v)
	}
}
