package engine

import (
	"fmt"
	"sort"

	"github.com/minibase-io/minibase/internal/criteria"
	"github.com/minibase-io/minibase/pkg/types"
)

func (e *Executor) applySelect(doc *types.Document, op types.Operation) (outcome, error) {
	table, err := lookupTable(doc, op.Table)
	if err != nil {
		return outcome{}, err
	}
	for _, name := range op.Projection {
		if _, ok := table.Columns[name]; !ok {
			return outcome{}, fmt.Errorf("%w: column %q in table %q",
				types.ErrNotFound, name, op.Table)
		}
	}
	for _, term := range op.OrderBy {
		if _, ok := table.Columns[term.Column]; !ok {
			return outcome{}, fmt.Errorf("%w: column %q in table %q",
				types.ErrNotFound, term.Column, op.Table)
		}
	}
	if op.Limit != nil && *op.Limit < 0 {
		return outcome{}, fmt.Errorf("%w: limit must not be negative", types.ErrValidation)
	}

	var matched []types.Row
	for _, row := range table.Rows {
		if criteria.Matches(row, op.Criteria) {
			matched = append(matched, row)
		}
	}

	if len(op.OrderBy) > 0 {
		sort.SliceStable(matched, func(i, j int) bool {
			for _, term := range op.OrderBy {
				cmp := criteria.Compare(matched[i][term.Column], matched[j][term.Column])
				if cmp == 0 {
					continue
				}
				if term.Desc {
					return cmp > 0
				}
				return cmp < 0
			}
			return false
		})
	}

	if op.Limit != nil && len(matched) > *op.Limit {
		matched = matched[:*op.Limit]
	}

	columns := op.Projection
	if len(columns) == 0 {
		columns = table.ColumnOrder
	}
	columns = append([]string(nil), columns...)

	// Result rows are copies restricted to the projected columns, so the
	// caller can never reach back into live document state.
	out := make([]types.Row, 0, len(matched))
	for _, row := range matched {
		projected := make(types.Row, len(columns))
		for _, name := range columns {
			projected[name] = row[name]
		}
		out = append(out, projected)
	}

	return outcome{
		detail: fmt.Sprintf("selected %d rows from %q", len(out), op.Table),
		result: &types.ResultSet{
			Columns:  columns,
			Rows:     out,
			RowCount: len(out),
			Limit:    op.Limit,
		},
	}, nil
}
