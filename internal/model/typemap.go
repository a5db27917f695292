package model

import "strings"

// postgresTypes maps information_schema data_type names to logical types.
// Types with no entry (json, jsonb, bytea, arrays, user-defined enums, …)
// have no representation in the generated documents and are rejected.
var postgresTypes = map[string]LogicalType{
	"smallint":                    TypeInteger,
	"integer":                     TypeInteger,
	"bigint":                      TypeInteger,
	"int2":                        TypeInteger,
	"int4":                        TypeInteger,
	"int8":                        TypeInteger,
	"serial":                      TypeInteger,
	"bigserial":                   TypeInteger,
	"numeric":                     TypeFloat,
	"decimal":                     TypeFloat,
	"real":                        TypeFloat,
	"double precision":            TypeFloat,
	"float4":                      TypeFloat,
	"float8":                      TypeFloat,
	"money":                       TypeFloat,
	"boolean":                     TypeBoolean,
	"bool":                        TypeBoolean,
	"text":                        TypeString,
	"character varying":           TypeString,
	"varchar":                     TypeString,
	"character":                   TypeString,
	"char":                        TypeString,
	"citext":                      TypeString,
	"uuid":                        TypeString,
	"date":                        TypeDate,
	"timestamp without time zone": TypeDateTime,
	"timestamp with time zone":    TypeDateTime,
	"timestamp":                   TypeDateTime,
	"timestamptz":                 TypeDateTime,
	"time without time zone":      TypeString,
	"time with time zone":         TypeString,
}

// mysqlTypes maps information_schema DATA_TYPE names to logical types.
var mysqlTypes = map[string]LogicalType{
	"tinyint":            TypeInteger,
	"smallint":           TypeInteger,
	"mediumint":          TypeInteger,
	"int":                TypeInteger,
	"integer":            TypeInteger,
	"bigint":             TypeInteger,
	"year":               TypeInteger,
	"decimal":            TypeFloat,
	"numeric":            TypeFloat,
	"float":              TypeFloat,
	"double":             TypeFloat,
	"bit":                TypeBoolean,
	"char":               TypeString,
	"varchar":            TypeString,
	"tinytext":           TypeString,
	"text":               TypeString,
	"mediumtext":         TypeString,
	"longtext":           TypeString,
	"enum":               TypeString,
	"set":                TypeString,
	"time":               TypeString,
	"date":               TypeDate,
	"datetime":           TypeDateTime,
	"timestamp":          TypeDateTime,
	"geometry":           TypeGeometry,
	"point":              TypeGeometry,
	"linestring":         TypeGeometry,
	"polygon":            TypeGeometry,
	"multipoint":         TypeGeometry,
	"multilinestring":    TypeGeometry,
	"multipolygon":       TypeGeometry,
	"geometrycollection": TypeGeometry,
}

// MapPostgresType resolves a Postgres native type to its logical type.
// The second return is false when the type has no mapping.
func MapPostgresType(native string) (LogicalType, bool) {
	t, ok := postgresTypes[strings.ToLower(native)]
	return t, ok
}

// MapMySQLType resolves a MySQL native type to its logical type.
// The second return is false when the type has no mapping.
func MapMySQLType(native string) (LogicalType, bool) {
	t, ok := mysqlTypes[strings.ToLower(native)]
	return t, ok
}

// MapGeometryType resolves the geometry subtype reported by the spatial
// metadata view (PostGIS geometry_columns.type, MySQL GEOMETRY_TYPE_NAME)
// to the document vocabulary. Unknown subtypes degrade to ANY rather than
// failing — the column is still a geometry, just an unconstrained one.
func MapGeometryType(native string) GeometryType {
	switch strings.ToUpper(native) {
	case "POINT", "POINTZ", "POINTM":
		return GeometryPoint
	case "MULTIPOINT":
		return GeometryMultiPoint
	case "LINESTRING", "LINESTRINGZ":
		return GeometryLineString
	case "MULTILINESTRING":
		return GeometryMultiLineString
	case "POLYGON", "POLYGONZ":
		return GeometryPolygon
	case "MULTIPOLYGON":
		return GeometryMultiPolygon
	case "GEOMETRYCOLLECTION":
		return GeometryCollection
	default:
		return GeometryAny
	}
}
