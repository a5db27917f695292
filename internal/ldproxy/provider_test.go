package ldproxy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLProviderGenerator_FeatureTypes(t *testing.T) {
	doc := NewSQLProvider("trails", geoModel(), testDetails(), ProviderOptions{Dialect: "PGIS"}).Generate()

	assert.Equal(t, "trails", doc.ID)
	assert.Equal(t, "FEATURE", doc.ProviderType)
	assert.Equal(t, "SQL", doc.FeatureProviderType)
	assert.Equal(t, []string{"parks", "stations"}, doc.Types.Keys())

	parks, ok := doc.Types.Get("parks")
	require.True(t, ok)
	assert.Equal(t, "/parks{primaryKey=id}", parks.SourcePath)
	assert.Equal(t, "OBJECT", parks.Type)
	assert.Equal(t, []string{"id", "name", "area", "geom"}, parks.Properties.Keys())

	id, _ := parks.Properties.Get("id")
	assert.Equal(t, "INTEGER", id.Type)
	assert.Equal(t, "ID", id.Role)

	name, _ := parks.Properties.Get("name")
	assert.Equal(t, "STRING", name.Type)
	assert.Empty(t, name.Role)

	geom, _ := parks.Properties.Get("geom")
	assert.Equal(t, "GEOMETRY", geom.Type)
	assert.Equal(t, "PRIMARY_GEOMETRY", geom.Role)
	assert.Equal(t, "POLYGON", geom.GeometryType)
}

func TestSQLProviderGenerator_TableWithoutGeometry(t *testing.T) {
	doc := NewSQLProvider("trails", geoModel(), testDetails(), ProviderOptions{Dialect: "PGIS"}).Generate()

	stations, ok := doc.Types.Get("stations")
	require.True(t, ok)

	for _, key := range stations.Properties.Keys() {
		prop, _ := stations.Properties.Get(key)
		assert.NotEqual(t, "PRIMARY_GEOMETRY", prop.Role)
		assert.Empty(t, prop.GeometryType)
	}
}

func TestSQLProviderGenerator_AxisOrder(t *testing.T) {
	t.Run("defaults to LON_LAT", func(t *testing.T) {
		doc := NewSQLProvider("trails", geoModel(), testDetails(), ProviderOptions{}).Generate()
		assert.Equal(t, "LON_LAT", doc.NativeCrs.ForceAxisOrder)
	})

	t.Run("global LAT_LON policy", func(t *testing.T) {
		doc := NewSQLProvider("trails", geoModel(), testDetails(), ProviderOptions{AxisOrder: AxisOrderLatLon}).Generate()
		assert.Equal(t, "LAT_LON", doc.NativeCrs.ForceAxisOrder)
	})
}

func TestSQLProviderGenerator_NativeCrsFromModel(t *testing.T) {
	doc := NewSQLProvider("trails", geoModel(), testDetails(), ProviderOptions{}).Generate()
	assert.Equal(t, 4326, doc.NativeCrs.Code)
}

func TestSQLProviderGenerator_ConnectionInfo(t *testing.T) {
	doc := NewSQLProvider("trails", geoModel(), testDetails(), ProviderOptions{Dialect: "PGIS"}).Generate()

	info := doc.ConnectionInfo
	assert.Equal(t, "PGIS", info.Dialect)
	assert.Equal(t, "localhost", info.Host)
	assert.Equal(t, 5432, info.Port)
	assert.Equal(t, "gisdb", info.Database)
	assert.Equal(t, "gis", info.User)
	assert.Equal(t, []string{"geo"}, info.Schemas)
}

func TestSQLProviderGenerator_DockerPaths(t *testing.T) {
	t.Run("localhost is rewritten", func(t *testing.T) {
		doc := NewSQLProvider("trails", geoModel(), testDetails(), ProviderOptions{DockerPaths: true}).Generate()
		assert.Equal(t, "host.docker.internal", doc.ConnectionInfo.Host)
	})

	t.Run("remote host is kept", func(t *testing.T) {
		details := testDetails()
		details.Host = "db.example.com"
		doc := NewSQLProvider("trails", geoModel(), details, ProviderOptions{DockerPaths: true}).Generate()
		assert.Equal(t, "db.example.com", doc.ConnectionInfo.Host)
	})

	t.Run("empty host stays empty", func(t *testing.T) {
		doc := NewSQLProvider("trails", geoModel(), nil, ProviderOptions{DockerPaths: true}).Generate()
		assert.Empty(t, doc.ConnectionInfo.Host)
	})

	t.Run("off by default", func(t *testing.T) {
		doc := NewSQLProvider("trails", geoModel(), testDetails(), ProviderOptions{}).Generate()
		assert.Equal(t, "localhost", doc.ConnectionInfo.Host)
	})
}
