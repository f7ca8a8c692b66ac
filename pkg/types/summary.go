package types

import "time"

// DocumentSummary is the read-only projection external consumers receive
// instead of the raw document. Tables and roles are sorted by name.
type DocumentSummary struct {
	SchemaVersion int            `json:"schema_version"`
	Revision      int64          `json:"revision"`
	UpdatedAt     time.Time      `json:"updated_at"`
	Tables        []TableSummary `json:"tables"`
	Roles         []RoleSummary  `json:"roles"`
}

// TableSummary projects one table: columns ordered per the table's column
// order, permissions flattened and sorted by role.
type TableSummary struct {
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	PrimaryKey  string             `json:"primary_key,omitempty"`
	Columns     []ColumnDefinition `json:"columns"`
	RowCount    int                `json:"row_count"`
	UpdatedAt   time.Time          `json:"updated_at"`
	Permissions []TablePermission  `json:"permissions,omitempty"`
}

// RoleSummary projects one role.
type RoleSummary struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
