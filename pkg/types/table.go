package types

import "time"

// Column data types. DataType is a free-form tag on the wire, but only these
// values are accepted by blueprint validation.
const (
	DataTypeInteger   = "integer"
	DataTypeReal      = "real"
	DataTypeText      = "text"
	DataTypeBoolean   = "boolean"
	DataTypeTimestamp = "timestamp"
)

// validDataTypes is the set of recognized column data types.
var validDataTypes = map[string]bool{
	DataTypeInteger:   true,
	DataTypeReal:      true,
	DataTypeText:      true,
	DataTypeBoolean:   true,
	DataTypeTimestamp: true,
}

// IsValidDataType reports whether dt is a recognized column data type.
func IsValidDataType(dt string) bool {
	return validDataTypes[dt]
}

// ColumnDefinition describes one column of a table. The same shape serves as
// the column blueprint in create_table and alter_table_add_column operations.
// A nil Default means the column has no default value.
type ColumnDefinition struct {
	Name       string `json:"name"`
	DataType   string `json:"data_type"`
	Nullable   bool   `json:"nullable,omitempty"`
	Default    any    `json:"default,omitempty"`
	PrimaryKey bool   `json:"primary_key,omitempty"`
}

// Table privileges, the fixed enumeration a role may hold on a table.
type Privilege string

const (
	PrivilegeSelect            Privilege = "select"
	PrivilegeInsert            Privilege = "insert"
	PrivilegeUpdate            Privilege = "update"
	PrivilegeDelete            Privilege = "delete"
	PrivilegeAlter             Privilege = "alter"
	PrivilegeDrop              Privilege = "drop"
	PrivilegeManagePermissions Privilege = "manage_permissions"
)

// validPrivileges is the set of recognized privileges.
var validPrivileges = map[Privilege]bool{
	PrivilegeSelect:            true,
	PrivilegeInsert:            true,
	PrivilegeUpdate:            true,
	PrivilegeDelete:            true,
	PrivilegeAlter:             true,
	PrivilegeDrop:              true,
	PrivilegeManagePermissions: true,
}

// IsValidPrivilege reports whether p is a recognized privilege.
func IsValidPrivilege(p Privilege) bool {
	return validPrivileges[p]
}

// TablePermission is the privilege grant for one (table, role) pair. The
// privilege list is never empty; an empty grant is represented by entry
// absence.
type TablePermission struct {
	Role       string      `json:"role"`
	Privileges []Privilege `json:"privileges"`
	GrantedAt  time.Time   `json:"granted_at"`
}

// Has reports whether the grant includes the given privilege.
func (p *TablePermission) Has(priv Privilege) bool {
	for _, have := range p.Privileges {
		if have == priv {
			return true
		}
	}
	return false
}

// Table holds the schema, rows, and permission entries of one named table.
// Columns and ColumnOrder always contain the same key set; ColumnOrder is
// authoritative for display, insertion position, and row-shape validation.
// Row insertion order is preserved and is the iteration order for
// unfiltered reads.
type Table struct {
	Name        string                       `json:"name"`
	Description string                       `json:"description,omitempty"`
	PrimaryKey  string                       `json:"primary_key,omitempty"`
	Columns     map[string]*ColumnDefinition `json:"columns"`
	ColumnOrder []string                     `json:"column_order"`
	Permissions map[string]*TablePermission  `json:"permissions,omitempty"`
	Rows        []Row                        `json:"rows"`
	CreatedAt   time.Time                    `json:"created_at"`
	UpdatedAt   time.Time                    `json:"updated_at"`
}

// Column returns the definition for the named column.
func (t *Table) Column(name string) (*ColumnDefinition, bool) {
	c, ok := t.Columns[name]
	return c, ok
}
