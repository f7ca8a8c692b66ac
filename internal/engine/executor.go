// Package engine applies typed operations to the document store. The
// Executor is the only code path that mutates a document: it validates
// each operation against the schema and privilege model, evaluates row
// criteria, and produces one ExecutionResult per attempt. The Runner
// executes ordered operation batches produced by an external planner.
package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/minibase-io/minibase/internal/audit"
	"github.com/minibase-io/minibase/internal/schema"
	"github.com/minibase-io/minibase/internal/store"
	"github.com/minibase-io/minibase/pkg/types"
)

// Options configures an Executor.
type Options struct {
	// Actor is the role operations execute as. Empty means the document
	// owner: no privilege checks apply.
	Actor string

	// Journal, when non-nil, receives one record per attempted operation.
	Journal *audit.Journal
}

// Executor applies single operations against one document store. It holds
// no document state of its own; all state lives in the store.
type Executor struct {
	store   *store.Store
	actor   string
	journal *audit.Journal

	now   func() time.Time
	newID func() string
}

// New creates an Executor bound to the given store.
func New(st *store.Store, opts Options) *Executor {
	return &Executor{
		store:   st,
		actor:   opts.Actor,
		journal: opts.Journal,
		now:     time.Now,
		newID:   newExecutionID,
	}
}

// newExecutionID generates a UUID v7 for execution results.
func newExecutionID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails.
		return uuid.New().String()
	}
	return id.String()
}

// outcome is the intermediate product of one dispatch target.
type outcome struct {
	detail       string
	skipped      bool
	mutated      bool
	rowsAffected int
	result       *types.ResultSet
}

// Execute applies one operation and returns its structured result. An
// operation failure (schema, conflict, not-found, privilege, validation)
// is reported in the result with status error, never as a Go error. The
// returned error is reserved for programming-contract violations — an
// operation type outside the closed set — and for store or journal
// faults.
func (e *Executor) Execute(op types.Operation) (types.ExecutionResult, error) {
	return e.execute(op, "")
}

func (e *Executor) execute(op types.Operation, planID string) (types.ExecutionResult, error) {
	category, ok := op.Type.Category()
	if !ok {
		return types.ExecutionResult{}, fmt.Errorf("operation type %q is outside the closed set", op.Type)
	}

	res := types.ExecutionResult{
		ID:       e.newID(),
		Type:     op.Type,
		Category: category,
	}

	var out outcome
	var opErr error
	if op.Type.Mutating() {
		err := e.store.Mutate(func(doc *types.Document) (bool, error) {
			out, opErr = e.apply(doc, op)
			return opErr == nil && out.mutated, nil
		})
		if err != nil {
			return res, err
		}
	} else {
		err := e.store.View(func(doc *types.Document) error {
			out, opErr = e.apply(doc, op)
			return nil
		})
		if err != nil {
			return res, err
		}
	}

	switch {
	case opErr != nil:
		res.Status = types.StatusError
		res.Detail = opErr.Error()
	case out.skipped:
		res.Status = types.StatusSkipped
		res.Detail = out.detail
	default:
		res.Status = types.StatusSuccess
		res.Detail = out.detail
		res.RowsAffected = out.rowsAffected
		res.Result = out.result
	}

	if e.journal != nil {
		rev, err := e.store.Revision()
		if err != nil {
			return res, err
		}
		entry := audit.Entry{
			ExecutionID: res.ID,
			PlanID:      planID,
			OpType:      string(res.Type),
			Category:    string(res.Category),
			Status:      string(res.Status),
			Detail:      res.Detail,
			Revision:    rev,
			CreatedAt:   e.now().UTC(),
		}
		if err := e.journal.Record(entry); err != nil {
			return res, fmt.Errorf("record execution: %w", err)
		}
	}

	return res, nil
}

// apply dispatches one operation against the document. Failed calls leave
// the document untouched: every handler validates completely before
// mutating.
func (e *Executor) apply(doc *types.Document, op types.Operation) (outcome, error) {
	if err := e.checkPrivilege(doc, op); err != nil {
		return outcome{}, err
	}

	switch op.Type {
	case types.OpCreateTable:
		return e.applyCreateTable(doc, op)
	case types.OpDropTable:
		return e.applyDropTable(doc, op)
	case types.OpAddColumn:
		return e.applyAddColumn(doc, op)
	case types.OpDropColumn:
		return e.applyDropColumn(doc, op)
	case types.OpInsert:
		return e.applyInsert(doc, op)
	case types.OpUpdate:
		return e.applyUpdate(doc, op)
	case types.OpDelete:
		return e.applyDelete(doc, op)
	case types.OpSelect:
		return e.applySelect(doc, op)
	case types.OpGrant:
		return e.applyGrant(doc, op)
	case types.OpRevoke:
		return e.applyRevoke(doc, op)
	}
	// Unreachable: Category() already rejected unknown types.
	return outcome{}, fmt.Errorf("operation type %q is outside the closed set", op.Type)
}

// checkPrivilege enforces the actor's table privileges. The owner (empty
// actor) bypasses all checks; create_table requires none.
func (e *Executor) checkPrivilege(doc *types.Document, op types.Operation) error {
	if e.actor == "" {
		return nil
	}
	priv, needed := schema.RequiredPrivilege(op.Type)
	if !needed {
		return nil
	}
	if !schema.ResolvePrivilege(doc, e.actor, op.Table, priv) {
		return fmt.Errorf("%w: role %q lacks %q on table %q",
			types.ErrPrivilege, e.actor, priv, op.Table)
	}
	return nil
}

// lookupTable resolves the operation's target table.
func lookupTable(doc *types.Document, name string) (*types.Table, error) {
	t, ok := doc.Tables[name]
	if !ok {
		return nil, fmt.Errorf("%w: table %q", types.ErrNotFound, name)
	}
	return t, nil
}
