package schema

import "github.com/minibase-io/minibase/pkg/types"

// requiredPrivileges maps operation types to the table privilege they
// require. create_table is absent: no table exists yet to hold a grant, so
// it requires none.
var requiredPrivileges = map[types.OpType]types.Privilege{
	types.OpSelect:     types.PrivilegeSelect,
	types.OpInsert:     types.PrivilegeInsert,
	types.OpUpdate:     types.PrivilegeUpdate,
	types.OpDelete:     types.PrivilegeDelete,
	types.OpAddColumn:  types.PrivilegeAlter,
	types.OpDropColumn: types.PrivilegeAlter,
	types.OpDropTable:  types.PrivilegeDrop,
	types.OpGrant:      types.PrivilegeManagePermissions,
	types.OpRevoke:     types.PrivilegeManagePermissions,
}

// RequiredPrivilege returns the privilege an operation type needs on its
// target table, and false when the type needs none.
func RequiredPrivilege(op types.OpType) (types.Privilege, bool) {
	p, ok := requiredPrivileges[op]
	return p, ok
}

// ResolvePrivilege reports whether the role holds the given privilege on
// the table. Absence of a permission entry for the (table, role) pair means
// no privileges. A role holding manage_permissions may grant or revoke any
// privilege, including manage_permissions itself; that rule lives entirely
// in this lookup since grant and revoke require only manage_permissions.
func ResolvePrivilege(doc *types.Document, role, table string, action types.Privilege) bool {
	t, ok := doc.Tables[table]
	if !ok {
		return false
	}
	perm, ok := t.Permissions[role]
	if !ok {
		return false
	}
	return perm.Has(action)
}
