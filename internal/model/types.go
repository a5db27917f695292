// Package model holds the canonical in-memory representation of an
// introspected schema. The metadata source builds one TableModel per run;
// the document generators read it and never mutate it.
package model

// LogicalType is the engine-neutral classification of a column.
// Native types from both Postgres and MySQL map onto this closed set.
type LogicalType int

const (
	TypeString LogicalType = iota
	TypeInteger
	TypeFloat
	TypeBoolean
	TypeDate
	TypeDateTime
	TypeGeometry
)

func (t LogicalType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInteger:
		return "integer"
	case TypeFloat:
		return "float"
	case TypeBoolean:
		return "boolean"
	case TypeDate:
		return "date"
	case TypeDateTime:
		return "datetime"
	case TypeGeometry:
		return "geometry"
	default:
		return "unknown"
	}
}

// GeometryType is the spatial subtype of a geometry column, in the
// vocabulary the consuming API server expects.
type GeometryType string

const (
	GeometryPoint           GeometryType = "POINT"
	GeometryMultiPoint      GeometryType = "MULTI_POINT"
	GeometryLineString      GeometryType = "LINE_STRING"
	GeometryMultiLineString GeometryType = "MULTI_LINE_STRING"
	GeometryPolygon         GeometryType = "POLYGON"
	GeometryMultiPolygon    GeometryType = "MULTI_POLYGON"
	GeometryCollection      GeometryType = "GEOMETRY_COLLECTION"
	GeometryAny             GeometryType = "ANY"
)

// Column describes one column of an introspected table.
type Column struct {
	Name       string
	NativeType string // engine type name as reported by information_schema
	Type       LogicalType
	Nullable   bool
	Position   int // ordinal position within the table, 1-based

	// Spatial metadata, set only when Type == TypeGeometry.
	SRID         int
	GeometryType GeometryType
}

// Table describes one introspected table. ID is the identifier shared by
// all generated documents (feature type name, provider type key, tileset id);
// it is derived once at model construction so the documents can never drift.
type Table struct {
	Name           string
	ID             string
	Columns        []Column
	PrimaryKey     string // empty never occurs in a built model; see Skipped
	GeometryColumn string // empty when the table has no geometry column
}

// HasGeometry reports whether the table carries a geometry column.
func (t *Table) HasGeometry() bool {
	return t.GeometryColumn != ""
}

// Geometry returns the geometry column, if any.
func (t *Table) Geometry() (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == t.GeometryColumn {
			return c, true
		}
	}
	return Column{}, false
}

// NonGeometryColumns returns the columns usable as queryable properties,
// in ordinal order.
func (t *Table) NonGeometryColumns() []Column {
	cols := make([]Column, 0, len(t.Columns))
	for _, c := range t.Columns {
		if c.Name != t.GeometryColumn {
			cols = append(cols, c)
		}
	}
	return cols
}

// SkippedTable records a table the metadata source excluded from the model,
// together with the reason. Exclusion is always explicit — callers can log
// or surface it, but the model itself stays valid.
type SkippedTable struct {
	Name   string
	Reason string
}

// TableModel is the canonical schema snapshot. Tables keeps the order in
// which tables were requested (or enumerated), and that order flows
// unchanged into every generated document.
type TableModel struct {
	Schema  string
	Tables  []Table
	Skipped []SkippedTable
}

// New builds a TableModel and derives each table's shared document
// identifier. The tables slice order is preserved.
func New(schema string, tables []Table, skipped []SkippedTable) *TableModel {
	names := make([]string, len(tables))
	for i := range tables {
		names[i] = tables[i].Name
	}
	ids := CollectionIDs(names)
	for i := range tables {
		tables[i].ID = ids[i]
	}
	return &TableModel{Schema: schema, Tables: tables, Skipped: skipped}
}

// Lookup returns the table with the given name.
func (m *TableModel) Lookup(name string) (*Table, bool) {
	for i := range m.Tables {
		if m.Tables[i].Name == name {
			return &m.Tables[i], true
		}
	}
	return nil, false
}
