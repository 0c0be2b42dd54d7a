package store_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"assetman/internal/logging"
	"assetman/internal/store"
	"assetman/internal/testsupport"
)

func TestOpenAppliesMigrations(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	nt := testsupport.AddNotetype(t, st, 1700000000, "Basic")
	if nt.ID != 1700000000 || nt.Name != "Basic" {
		t.Fatalf("unexpected note type: %#v", nt)
	}
	if nt.CreatedAt.IsZero() {
		t.Fatal("expected created_at to be set")
	}

	byName, err := st.NotetypeByName(ctx, "Basic")
	if err != nil {
		t.Fatalf("NotetypeByName failed: %v", err)
	}
	if byName.ID != nt.ID {
		t.Fatalf("expected id %d, got %d", nt.ID, byName.ID)
	}

	// Reopening must not re-run applied migrations.
	if err := st.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	reopened, err := store.Open(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()
	if _, err := reopened.NotetypeByID(ctx, nt.ID); err != nil {
		t.Fatalf("NotetypeByID after reopen: %v", err)
	}
}

func TestAddNotetypeRejectsDuplicates(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()
	testsupport.AddNotetype(t, st, 1, "Basic")

	if _, err := st.AddNotetype(ctx, 1, "Other"); !errors.Is(err, store.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate for id, got %v", err)
	}
	if _, err := st.AddNotetype(ctx, 2, "Basic"); !errors.Is(err, store.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate for name, got %v", err)
	}
	if _, err := st.AddNotetype(ctx, 3, "  "); err == nil {
		t.Fatal("expected error for blank name")
	}
}

func TestNotetypesOrderedByID(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	testsupport.AddNotetype(t, st, 30, "C")
	testsupport.AddNotetype(t, st, 10, "A")
	testsupport.AddNotetype(t, st, 20, "B")

	ids, err := st.NotetypeIDs(context.Background())
	if err != nil {
		t.Fatalf("NotetypeIDs failed: %v", err)
	}
	want := []int64{10, 20, 30}
	if len(ids) != len(want) {
		t.Fatalf("unexpected ids: %v", ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("unexpected ids: %v", ids)
		}
	}
}

func TestGetPutSettings(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()
	testsupport.AddNotetype(t, st, 5, "Basic")

	empty, err := st.Get(ctx, 5, store.KindScripts)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty map for unset setting, got %#v", empty)
	}

	value := map[string]any{"enabled": false, "indentSize": 2, "scripts": []any{}}
	if err := st.Put(ctx, 5, store.KindScripts, value); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	got, err := st.Get(ctx, 5, store.KindScripts)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got["enabled"] != false || got["indentSize"] != float64(2) {
		t.Fatalf("unexpected stored value: %#v", got)
	}

	// Put replaces the whole object.
	if err := st.Put(ctx, 5, store.KindScripts, map[string]any{"insertStub": false}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	got, err = st.Get(ctx, 5, store.KindScripts)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if _, ok := got["enabled"]; ok || len(got) != 1 {
		t.Fatalf("expected full replacement, got %#v", got)
	}

	html, err := st.Get(ctx, 5, store.KindHTML)
	if err != nil {
		t.Fatalf("Get html failed: %v", err)
	}
	if len(html) != 0 {
		t.Fatalf("expected html setting untouched, got %#v", html)
	}

	if err := st.DeleteSetting(ctx, 5, store.KindScripts); err != nil {
		t.Fatalf("DeleteSetting failed: %v", err)
	}
	got, err = st.Get(ctx, 5, store.KindScripts)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty map after delete, got %#v", got)
	}
}

func TestPutAllWritesBothKinds(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()
	testsupport.AddNotetype(t, st, 1, "Basic")

	err := st.PutAll(ctx, 1, map[store.Kind]map[string]any{
		store.KindScripts: {"enabled": true},
		store.KindHTML:    {"minify": true},
	})
	if err != nil {
		t.Fatalf("PutAll failed: %v", err)
	}
	for kind, key := range map[store.Kind]string{store.KindScripts: "enabled", store.KindHTML: "minify"} {
		got, err := st.Get(ctx, 1, kind)
		if err != nil {
			t.Fatalf("Get %s failed: %v", kind, err)
		}
		if got[key] != true {
			t.Fatalf("unexpected %s value: %#v", kind, got)
		}
	}

	if err := st.PutAll(ctx, 1, map[store.Kind]map[string]any{"bogus": {}}); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestUnknownNotetype(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	if _, err := st.Get(ctx, 99, store.KindScripts); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound from Get, got %v", err)
	}
	if err := st.Put(ctx, 99, store.KindScripts, map[string]any{}); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound from Put, got %v", err)
	}
	if _, err := st.NotetypeByName(ctx, "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound from NotetypeByName, got %v", err)
	}
	_, err := st.NotetypeByID(ctx, 12345)
	if store.ErrorKind(err) != "not_found" {
		t.Fatalf("expected not_found classification, got %q", store.ErrorKind(err))
	}
}

func TestLockIsExclusive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "assetman.db.lock")

	first, err := store.AcquireLock(path)
	if err != nil {
		t.Fatalf("AcquireLock failed: %v", err)
	}
	if _, err := store.AcquireLock(path); !errors.Is(err, store.ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
	if store.ErrorKind(store.ErrLocked) != "conflict" {
		t.Fatal("expected conflict classification for ErrLocked")
	}
	if err := first.Release(); err != nil {
		t.Fatalf("Release failed: %v", err)
	}

	second, err := store.AcquireLock(path)
	if err != nil {
		t.Fatalf("AcquireLock after release failed: %v", err)
	}
	_ = second.Release()
}
