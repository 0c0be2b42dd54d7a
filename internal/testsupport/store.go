package testsupport

import (
	"context"
	"testing"

	"assetman/internal/config"
	"assetman/internal/logging"
	"assetman/internal/store"
)

// MustOpenStore opens a store.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	st, err := store.Open(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		st.Close()
	})
	return st
}

// AddNotetype registers a note type for tests using the provided store.
func AddNotetype(t testing.TB, st *store.Store, id int64, name string) *store.Notetype {
	t.Helper()

	nt, err := st.AddNotetype(context.Background(), id, name)
	if err != nil {
		t.Fatalf("AddNotetype(%d, %q): %v", id, name, err)
	}
	return nt
}
