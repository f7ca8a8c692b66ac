package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/minibase-io/minibase/pkg/types"
)

func TestStore_Open(t *testing.T) {
	tmpDir := t.TempDir()

	s := New()
	err := s.Open(types.Config{DataDir: tmpDir})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	// A fresh document is persisted immediately.
	if _, err := os.Stat(filepath.Join(tmpDir, DocumentFile)); os.IsNotExist(err) {
		t.Error("document.json not created")
	}

	rev, err := s.Revision()
	if err != nil {
		t.Fatalf("Revision failed: %v", err)
	}
	if rev != 0 {
		t.Errorf("fresh document revision = %d, want 0", rev)
	}

	// Double open fails.
	if err := s.Open(types.Config{DataDir: tmpDir}); err != types.ErrAlreadyOpen {
		t.Errorf("expected ErrAlreadyOpen, got %v", err)
	}

	s.Close()
}

func TestStore_OpenRejectsBadConfig(t *testing.T) {
	s := New()
	err := s.Open(types.Config{DataDir: t.TempDir(), SyncStrategy: "eventually"})
	if err != types.ErrSyncStrategyUnknown {
		t.Errorf("expected ErrSyncStrategyUnknown, got %v", err)
	}
}

func TestStore_OpenRejectsCorruptDocument(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, DocumentFile), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := New()
	if err := s.Open(types.Config{DataDir: tmpDir}); err == nil {
		t.Error("Open accepted a corrupt document")
	}
}

func TestStore_Close(t *testing.T) {
	s := New()
	if err := s.Open(types.Config{DataDir: t.TempDir()}); err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// Idempotent.
	if err := s.Close(); err != nil {
		t.Errorf("second Close should not error, got %v", err)
	}

	// Accessors fail after close.
	if err := s.View(func(*types.Document) error { return nil }); err != types.ErrStoreClosed {
		t.Errorf("View after Close = %v, want ErrStoreClosed", err)
	}
	if err := s.Mutate(func(*types.Document) (bool, error) { return false, nil }); err != types.ErrStoreClosed {
		t.Errorf("Mutate after Close = %v, want ErrStoreClosed", err)
	}
	if _, err := s.Summary(); err != types.ErrStoreClosed {
		t.Errorf("Summary after Close = %v, want ErrStoreClosed", err)
	}
}

func TestStore_MutateBumpsRevision(t *testing.T) {
	s := New()
	if err := s.Open(types.Config{DataDir: t.TempDir()}); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer s.Close()

	addTable := func(doc *types.Document) (bool, error) {
		doc.Tables["t"] = &types.Table{
			Name:        "t",
			Columns:     map[string]*types.ColumnDefinition{"id": {Name: "id", DataType: types.DataTypeInteger}},
			ColumnOrder: []string{"id"},
			Rows:        []types.Row{},
		}
		return true, nil
	}
	if err := s.Mutate(addTable); err != nil {
		t.Fatalf("Mutate failed: %v", err)
	}

	rev, _ := s.Revision()
	if rev != 1 {
		t.Errorf("revision after one mutation = %d, want 1", rev)
	}

	// Unchanged and failed calls leave the revision alone.
	if err := s.Mutate(func(*types.Document) (bool, error) { return false, nil }); err != nil {
		t.Fatalf("Mutate failed: %v", err)
	}
	wantErr := errors.New("boom")
	if err := s.Mutate(func(*types.Document) (bool, error) { return false, wantErr }); err != wantErr {
		t.Fatalf("Mutate error = %v, want %v", err, wantErr)
	}
	rev, _ = s.Revision()
	if rev != 1 {
		t.Errorf("revision after no-op and failed mutations = %d, want 1", rev)
	}
}

func TestStore_MutateRefreshesUpdatedAt(t *testing.T) {
	clock := time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC)
	s := New()
	s.now = func() time.Time { return clock }

	if err := s.Open(types.Config{DataDir: t.TempDir()}); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer s.Close()

	clock = clock.Add(time.Hour)
	if err := s.Mutate(func(doc *types.Document) (bool, error) { return true, nil }); err != nil {
		t.Fatalf("Mutate failed: %v", err)
	}

	var updatedAt time.Time
	s.View(func(doc *types.Document) error {
		updatedAt = doc.Meta.UpdatedAt
		return nil
	})
	if !updatedAt.Equal(clock) {
		t.Errorf("updated_at = %v, want %v", updatedAt, clock)
	}
}

func TestStore_PersistenceRoundtrip(t *testing.T) {
	tmpDir := t.TempDir()

	s := New()
	if err := s.Open(types.Config{DataDir: tmpDir}); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	err := s.Mutate(func(doc *types.Document) (bool, error) {
		doc.Tables["users"] = &types.Table{
			Name: "users",
			Columns: map[string]*types.ColumnDefinition{
				"id": {Name: "id", DataType: types.DataTypeInteger, PrimaryKey: true},
			},
			ColumnOrder: []string{"id"},
			PrimaryKey:  "id",
			Rows:        []types.Row{{"id": float64(1)}},
		}
		return true, nil
	})
	if err != nil {
		t.Fatalf("Mutate failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// A second store sees the persisted state.
	s2 := New()
	if err := s2.Open(types.Config{DataDir: tmpDir}); err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer s2.Close()

	rev, _ := s2.Revision()
	if rev != 1 {
		t.Errorf("reloaded revision = %d, want 1", rev)
	}
	err = s2.View(func(doc *types.Document) error {
		tbl, ok := doc.Tables["users"]
		if !ok {
			t.Fatal("users table not reloaded")
		}
		if len(tbl.Rows) != 1 || tbl.Rows[0]["id"] != float64(1) {
			t.Errorf("rows not reloaded: %v", tbl.Rows)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestStore_OnCloseDefersWrites(t *testing.T) {
	tmpDir := t.TempDir()

	s := New()
	if err := s.Open(types.Config{DataDir: tmpDir, SyncStrategy: types.SyncOnClose}); err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if err := s.Mutate(func(doc *types.Document) (bool, error) { return true, nil }); err != nil {
		t.Fatalf("Mutate failed: %v", err)
	}

	// The revision moved in memory, but the disk copy is still revision 0.
	onDisk, err := readDocument(filepath.Join(tmpDir, DocumentFile))
	if err != nil {
		t.Fatal(err)
	}
	if onDisk.Meta.Revision != 0 {
		t.Errorf("on-disk revision before flush = %d, want 0", onDisk.Meta.Revision)
	}

	if err := s.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	onDisk, err = readDocument(filepath.Join(tmpDir, DocumentFile))
	if err != nil {
		t.Fatal(err)
	}
	if onDisk.Meta.Revision != 1 {
		t.Errorf("on-disk revision after flush = %d, want 1", onDisk.Meta.Revision)
	}

	s.Close()
}

func TestStore_SummarySorted(t *testing.T) {
	s := New()
	if err := s.Open(types.Config{DataDir: t.TempDir()}); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer s.Close()

	err := s.Mutate(func(doc *types.Document) (bool, error) {
		for _, name := range []string{"zebra", "apple", "mango"} {
			doc.Tables[name] = &types.Table{
				Name:        name,
				Columns:     map[string]*types.ColumnDefinition{"id": {Name: "id", DataType: types.DataTypeInteger}},
				ColumnOrder: []string{"id"},
				Rows:        []types.Row{},
			}
		}
		doc.Roles["writer"] = &types.Role{Name: "writer"}
		doc.Roles["admin"] = &types.Role{Name: "admin"}
		return true, nil
	})
	if err != nil {
		t.Fatalf("Mutate failed: %v", err)
	}

	summary, err := s.Summary()
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}

	wantTables := []string{"apple", "mango", "zebra"}
	for i, ts := range summary.Tables {
		if ts.Name != wantTables[i] {
			t.Errorf("table %d = %q, want %q", i, ts.Name, wantTables[i])
		}
	}
	wantRoles := []string{"admin", "writer"}
	for i, rs := range summary.Roles {
		if rs.Name != wantRoles[i] {
			t.Errorf("role %d = %q, want %q", i, rs.Name, wantRoles[i])
		}
	}
	if summary.Revision != 1 {
		t.Errorf("summary revision = %d, want 1", summary.Revision)
	}
}
