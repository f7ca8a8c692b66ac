package types

import "time"

// SchemaVersion is the current persisted document format version.
const SchemaVersion = 1

// Row is one table record, keyed by column name. Rows may omit nullable
// columns; every key present must name a defined column of the table.
type Row map[string]any

// Meta carries the document format version and mutation history marker.
// Revision increases by exactly 1 on every successfully applied mutating
// operation and never changes on read-only, failed, or skipped operations.
// UpdatedAt is refreshed exactly when Revision changes.
type Meta struct {
	SchemaVersion int       `json:"schema_version"`
	Revision      int64     `json:"revision"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Role is a named grantee for table privileges.
type Role struct {
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Document is the root persisted unit: the complete database state.
type Document struct {
	Meta   Meta              `json:"meta"`
	Tables map[string]*Table `json:"tables"`
	Roles  map[string]*Role  `json:"roles"`
}

// NewDocument returns a fresh empty document at revision 0.
func NewDocument(now time.Time) *Document {
	return &Document{
		Meta: Meta{
			SchemaVersion: SchemaVersion,
			Revision:      0,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		Tables: make(map[string]*Table),
		Roles:  make(map[string]*Role),
	}
}
