package types

// OpType identifies one member of the closed operation set. The set is not
// extensible: the executor dispatches exhaustively and treats any other
// value as a programming-contract violation, not an operation failure.
type OpType string

const (
	OpCreateTable OpType = "create_table"
	OpDropTable   OpType = "drop_table"
	OpAddColumn   OpType = "alter_table_add_column"
	OpDropColumn  OpType = "alter_table_drop_column"
	OpInsert      OpType = "insert"
	OpUpdate      OpType = "update"
	OpDelete      OpType = "delete"
	OpSelect      OpType = "select"
	OpGrant       OpType = "grant"
	OpRevoke      OpType = "revoke"
)

// Category groups operation types by effect.
type Category string

const (
	CategoryDDL Category = "ddl"
	CategoryDML Category = "dml"
	CategoryDQL Category = "dql"
	CategoryDCL Category = "dcl"
)

// opCategories maps every member of the closed set to its category.
var opCategories = map[OpType]Category{
	OpCreateTable: CategoryDDL,
	OpDropTable:   CategoryDDL,
	OpAddColumn:   CategoryDDL,
	OpDropColumn:  CategoryDDL,
	OpInsert:      CategoryDML,
	OpUpdate:      CategoryDML,
	OpDelete:      CategoryDML,
	OpSelect:      CategoryDQL,
	OpGrant:       CategoryDCL,
	OpRevoke:      CategoryDCL,
}

// Category returns the category for the operation type, and false when the
// type is outside the closed set.
func (t OpType) Category() (Category, bool) {
	c, ok := opCategories[t]
	return c, ok
}

// Mutating reports whether the operation type can change the document.
func (t OpType) Mutating() bool {
	return t != OpSelect
}

// Comparison operators for filter conditions.
type CompareOp string

const (
	CmpEq       CompareOp = "eq"
	CmpNeq      CompareOp = "neq"
	CmpGt       CompareOp = "gt"
	CmpGte      CompareOp = "gte"
	CmpLt       CompareOp = "lt"
	CmpLte      CompareOp = "lte"
	CmpContains CompareOp = "contains"
	CmpIn       CompareOp = "in"
)

// Condition is one column-operator-value filter term. Criteria are the
// conjunction of their conditions; an empty criteria list matches every row.
// For CmpIn the value is the list of candidates.
type Condition struct {
	Column string    `json:"column"`
	Op     CompareOp `json:"op"`
	Value  any       `json:"value"`
}

// OrderTerm is one sort key of a select operation.
type OrderTerm struct {
	Column string `json:"column"`
	Desc   bool   `json:"desc,omitempty"`
}

// Conflict policies for create_table and drop_table. The empty string is
// the abort default. IfExistsReplace applies to create_table only.
const (
	IfExistsAbort   = ""
	IfExistsSkip    = "skip"
	IfExistsReplace = "replace"
)

// Operation is one typed, atomic request against the document. It is a
// tagged variant: Type selects which of the remaining fields are meaningful,
// matching the JSON shape an external planner emits. Operations are value
// objects; the executor never mutates them.
type Operation struct {
	Type        OpType `json:"type"`
	Table       string `json:"table,omitempty"`
	Description string `json:"description,omitempty"`

	// DDL fields.
	Columns    []ColumnDefinition `json:"columns,omitempty"`     // create_table blueprints
	Column     *ColumnDefinition  `json:"column,omitempty"`      // alter_table_add_column blueprint
	Position   *int               `json:"position,omitempty"`    // alter_table_add_column insertion index
	ColumnName string             `json:"column_name,omitempty"` // alter_table_drop_column
	IfExists   string             `json:"if_exists,omitempty"`   // create_table, drop_table

	// DML fields. MatchAll is the explicit opt-in required before an
	// update or delete with empty criteria touches every row.
	Rows     []Row          `json:"rows,omitempty"`
	Set      map[string]any `json:"set,omitempty"`
	Criteria []Condition    `json:"criteria,omitempty"`
	MatchAll bool           `json:"match_all,omitempty"`

	// DQL fields. A nil projection selects all columns in column order.
	Projection []string    `json:"projection,omitempty"`
	OrderBy    []OrderTerm `json:"order_by,omitempty"`
	Limit      *int        `json:"limit,omitempty"`

	// DCL fields.
	Role       string      `json:"role,omitempty"`
	Privileges []Privilege `json:"privileges,omitempty"`
}
