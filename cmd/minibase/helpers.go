// Shared helpers for minibase CLI commands.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/minibase-io/minibase/internal/audit"
	"github.com/minibase-io/minibase/internal/engine"
	"github.com/minibase-io/minibase/internal/store"
	"github.com/minibase-io/minibase/pkg/types"
)

// session bundles the open store, its optional journal, and an executor
// bound to the acting role. The caller must defer close().
type session struct {
	store   *store.Store
	journal *audit.Journal
	exec    *engine.Executor
}

func (s *session) close() {
	if s.journal != nil {
		s.journal.Close()
	}
	s.store.Close()
}

// openSession resolves the data directory, opens the document store, and
// wires the execution journal when the config enables it.
func openSession() (*session, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	cfg := types.Config{
		DataDir:      dataDir,
		SyncStrategy: configSyncStrategy,
		Audit:        configAudit,
	}

	st := store.New()
	if err := st.Open(cfg); err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	var journal *audit.Journal
	if cfg.Audit {
		journal, err = audit.Open(dataDir)
		if err != nil {
			st.Close()
			return nil, fmt.Errorf("open audit journal: %w", err)
		}
	}

	return &session{
		store:   st,
		journal: journal,
		exec:    engine.New(st, engine.Options{Actor: flagActor, Journal: journal}),
	}, nil
}

// readInput returns the bytes of the given argument, treating "-" as stdin
// and an @-prefixed value as a file path. Anything else is inline JSON.
func readInput(arg string) ([]byte, error) {
	switch {
	case arg == "-":
		return io.ReadAll(os.Stdin)
	case len(arg) > 1 && arg[0] == '@':
		return os.ReadFile(arg[1:])
	default:
		return []byte(arg), nil
	}
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
