// Package integration exercises the minibase stack end to end: document
// store, operation executor, plan runner, and audit journal working against
// real files in a temporary data directory.
package integration

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/minibase-io/minibase/internal/engine"
	"github.com/minibase-io/minibase/internal/store"
	"github.com/minibase-io/minibase/pkg/types"
)

// newSession opens a store in a fresh temp directory and returns an
// owner-level executor over it. Cleanup closes the store.
func newSession(t *testing.T) (*engine.Executor, *store.Store, string) {
	t.Helper()
	dataDir := t.TempDir()
	st := store.New()
	require.NoError(t, st.Open(types.Config{DataDir: dataDir}))
	t.Cleanup(func() { st.Close() })
	return engine.New(st, engine.Options{}), st, dataDir
}

// reopen opens a second store over an existing data directory.
func reopen(t *testing.T, dataDir string) *store.Store {
	t.Helper()
	st := store.New()
	require.NoError(t, st.Open(types.Config{DataDir: dataDir}))
	t.Cleanup(func() { st.Close() })
	return st
}

// run executes an operation and fails the test unless it succeeds.
func run(t *testing.T, e *engine.Executor, op types.Operation) types.ExecutionResult {
	t.Helper()
	res, err := e.Execute(op)
	require.NoError(t, err)
	require.Equal(t, types.StatusSuccess, res.Status, "detail: %s", res.Detail)
	return res
}

// inventoryColumns is the shared table shape used across scenarios.
func inventoryColumns() []types.ColumnDefinition {
	return []types.ColumnDefinition{
		{Name: "sku", DataType: types.DataTypeText, PrimaryKey: true},
		{Name: "name", DataType: types.DataTypeText},
		{Name: "quantity", DataType: types.DataTypeInteger, Default: 0},
		{Name: "price", DataType: types.DataTypeReal, Nullable: true},
	}
}
