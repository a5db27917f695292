package ldproxy

import (
	"fmt"

	"github.com/codehub-rony/ldproxy-config-generator/internal/database"
	"github.com/codehub-rony/ldproxy-config-generator/internal/model"
)

// ProviderDoc is the SQL feature provider definition
// (store/entities/providers/<id>.yml). It shares its id with the service
// document — ldproxy resolves the provider by that id.
type ProviderDoc struct {
	ID                   string                `yaml:"id"`
	EntityStorageVersion int                   `yaml:"entityStorageVersion"`
	ProviderType         string                `yaml:"providerType"`
	FeatureProviderType  string                `yaml:"featureProviderType"`
	ConnectionInfo       ConnectionInfo        `yaml:"connectionInfo"`
	NativeCrs            CrsRef                `yaml:"nativeCrs"`
	Types                *Mapping[FeatureType] `yaml:"types"`
}

// ConnectionInfo tells the server how to reach the source database.
type ConnectionInfo struct {
	Dialect  string   `yaml:"dialect"`
	Host     string   `yaml:"host"`
	Port     int      `yaml:"port,omitempty"`
	Database string   `yaml:"database"`
	User     string   `yaml:"user"`
	Password string   `yaml:"password,omitempty"`
	Schemas  []string `yaml:"schemas,flow"`
}

// FeatureType maps one feature type to its source table.
type FeatureType struct {
	SourcePath string             `yaml:"sourcePath"`
	Type       string             `yaml:"type"`
	Label      string             `yaml:"label,omitempty"`
	Properties *Mapping[Property] `yaml:"properties"`
}

// Property maps one feature property to its source column.
type Property struct {
	SourcePath   string `yaml:"sourcePath"`
	Type         string `yaml:"type"`
	Role         string `yaml:"role,omitempty"`
	GeometryType string `yaml:"geometryType,omitempty"`
}

// ProviderOptions carries the provider-specific policies of a run.
type ProviderOptions struct {
	// Dialect is the server-side SQL dialect name (e.g. "PGIS").
	Dialect string

	// AxisOrder is applied uniformly to every geometry column.
	AxisOrder AxisOrder

	// DockerPaths rewrites emitted location strings for a containerized
	// deployment. It never touches the table model.
	DockerPaths bool
}

// SQLProviderGenerator derives the feature provider document from the table
// model and the connection details of the introspected database.
type SQLProviderGenerator struct {
	serviceID string
	model     *model.TableModel
	conn      *database.ConnectionDetails
	opts      ProviderOptions
}

// NewSQLProvider constructs the generator. conn is read-only — the
// generator extracts connection parameters for the document and never
// issues queries.
func NewSQLProvider(serviceID string, m *model.TableModel, conn *database.ConnectionDetails, opts ProviderOptions) *SQLProviderGenerator {
	if opts.AxisOrder == "" {
		opts.AxisOrder = AxisOrderLonLat
	}
	return &SQLProviderGenerator{serviceID: serviceID, model: m, conn: conn, opts: opts}
}

// Generate produces the provider document. Feature types appear in table
// model order; properties in column order.
func (g *SQLProviderGenerator) Generate() *ProviderDoc {
	doc := &ProviderDoc{
		ID:                   g.serviceID,
		EntityStorageVersion: entityStorageVersion,
		ProviderType:         "FEATURE",
		FeatureProviderType:  "SQL",
		ConnectionInfo:       g.connectionInfo(),
		NativeCrs: CrsRef{
			Code:           g.nativeCrsCode(),
			ForceAxisOrder: string(g.opts.AxisOrder),
		},
		Types: NewMapping[FeatureType](),
	}

	for i := range g.model.Tables {
		table := &g.model.Tables[i]
		doc.Types.Set(table.ID, g.featureType(table))
	}
	return doc
}

func (g *SQLProviderGenerator) connectionInfo() ConnectionInfo {
	info := ConnectionInfo{
		Dialect: g.opts.Dialect,
		Schemas: []string{g.model.Schema},
	}
	if g.conn != nil {
		info.Host = g.conn.Host
		info.Port = g.conn.Port
		info.Database = g.conn.Database
		info.User = g.conn.User
		info.Password = g.conn.Password
	}
	if g.opts.DockerPaths && (info.Host == "localhost" || info.Host == "127.0.0.1") {
		// Inside the container the database lives on the docker host. Only
		// explicit loopback names are rewritten; an empty host means the
		// connection details were absent and stays empty.
		info.Host = "host.docker.internal"
	}
	return info
}

// nativeCrsCode returns the SRID shared by the run's geometry columns,
// falling back to WGS 84 when the schema declares none.
func (g *SQLProviderGenerator) nativeCrsCode() int {
	for i := range g.model.Tables {
		if geom, ok := g.model.Tables[i].Geometry(); ok && geom.SRID != 0 {
			return geom.SRID
		}
	}
	return 4326
}

func (g *SQLProviderGenerator) featureType(table *model.Table) FeatureType {
	ft := FeatureType{
		SourcePath: fmt.Sprintf("/%s{primaryKey=%s}", table.Name, table.PrimaryKey),
		Type:       "OBJECT",
		Label:      table.Name,
		Properties: NewMapping[Property](),
	}

	for _, col := range table.Columns {
		prop := Property{
			SourcePath: col.Name,
			Type:       providerType(col.Type),
		}
		switch {
		case col.Name == table.PrimaryKey:
			prop.Role = "ID"
		case col.Name == table.GeometryColumn:
			prop.Role = "PRIMARY_GEOMETRY"
			prop.GeometryType = string(col.GeometryType)
		}
		ft.Properties.Set(col.Name, prop)
	}
	return ft
}

// providerType translates a logical type into the provider document
// vocabulary. The mapping is total over the closed LogicalType set.
func providerType(t model.LogicalType) string {
	switch t {
	case model.TypeInteger:
		return "INTEGER"
	case model.TypeFloat:
		return "FLOAT"
	case model.TypeBoolean:
		return "BOOLEAN"
	case model.TypeDate:
		return "DATE"
	case model.TypeDateTime:
		return "DATETIME"
	case model.TypeGeometry:
		return "GEOMETRY"
	default:
		return "STRING"
	}
}
