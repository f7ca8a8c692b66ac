package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/minibase-io/minibase/pkg/types"
)

// readDocument reads and parses the persisted document. A missing file
// surfaces as fs.ErrNotExist for the caller to initialize; a malformed
// file is an error.
func readDocument(path string) (*types.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc types.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if doc.Tables == nil {
		doc.Tables = make(map[string]*types.Table)
	}
	if doc.Roles == nil {
		doc.Roles = make(map[string]*types.Role)
	}
	for _, t := range doc.Tables {
		if t.Columns == nil {
			t.Columns = make(map[string]*types.ColumnDefinition)
		}
		if t.Permissions == nil {
			t.Permissions = make(map[string]*types.TablePermission)
		}
		if t.Rows == nil {
			t.Rows = []types.Row{}
		}
	}
	return &doc, nil
}

// writeDocumentAtomic serializes the document and writes it using the
// temp-file, fsync, rename pattern so a crash mid-write never leaves a
// truncated document behind.
func writeDocumentAtomic(path string, doc *types.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling document: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".document-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing document: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
