package store

import (
	"sort"

	"github.com/minibase-io/minibase/pkg/types"
)

// Summary produces the read-only projection external consumers receive
// instead of the raw document. Tables and roles are sorted by name,
// columns follow each table's column order, and permission entries are
// flattened and sorted by role.
func (s *Store) Summary() (types.DocumentSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.open {
		return types.DocumentSummary{}, types.ErrStoreClosed
	}

	summary := types.DocumentSummary{
		SchemaVersion: s.doc.Meta.SchemaVersion,
		Revision:      s.doc.Meta.Revision,
		UpdatedAt:     s.doc.Meta.UpdatedAt,
		Tables:        make([]types.TableSummary, 0, len(s.doc.Tables)),
		Roles:         make([]types.RoleSummary, 0, len(s.doc.Roles)),
	}

	tableNames := make([]string, 0, len(s.doc.Tables))
	for name := range s.doc.Tables {
		tableNames = append(tableNames, name)
	}
	sort.Strings(tableNames)

	for _, name := range tableNames {
		summary.Tables = append(summary.Tables, summarizeTable(s.doc.Tables[name]))
	}

	roleNames := make([]string, 0, len(s.doc.Roles))
	for name := range s.doc.Roles {
		roleNames = append(roleNames, name)
	}
	sort.Strings(roleNames)

	for _, name := range roleNames {
		role := s.doc.Roles[name]
		summary.Roles = append(summary.Roles, types.RoleSummary{
			Name:        role.Name,
			Description: role.Description,
		})
	}

	return summary, nil
}

func summarizeTable(t *types.Table) types.TableSummary {
	ts := types.TableSummary{
		Name:        t.Name,
		Description: t.Description,
		PrimaryKey:  t.PrimaryKey,
		Columns:     make([]types.ColumnDefinition, 0, len(t.ColumnOrder)),
		RowCount:    len(t.Rows),
		UpdatedAt:   t.UpdatedAt,
	}

	for _, name := range t.ColumnOrder {
		ts.Columns = append(ts.Columns, *t.Columns[name])
	}

	roles := make([]string, 0, len(t.Permissions))
	for role := range t.Permissions {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	for _, role := range roles {
		perm := t.Permissions[role]
		privileges := make([]types.Privilege, len(perm.Privileges))
		copy(privileges, perm.Privileges)
		ts.Permissions = append(ts.Permissions, types.TablePermission{
			Role:       perm.Role,
			Privileges: privileges,
			GrantedAt:  perm.GrantedAt,
		})
	}

	return ts
}
