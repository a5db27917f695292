package metadata

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codehub-rony/ldproxy-config-generator/internal/errs"
	"github.com/codehub-rony/ldproxy-config-generator/internal/model"
)

// mysqlGeoDB serves a database "geo" with one typed geometry table.
func mysqlGeoDB() *fakeDB {
	return &fakeDB{handler: func(sql string, args ...any) ([][]any, error) {
		switch {
		case matches(sql, "FROM information_schema.tables"):
			return [][]any{{"parcels"}}, nil

		case matches(sql, "FROM information_schema.schemata"):
			return [][]any{{true}}, nil

		case matches(sql, "FROM information_schema.columns"):
			return [][]any{
				{"id", "int", false, 1},
				{"owner", "varchar", true, 2},
				{"boundary", "multipolygon", true, 3},
			}, nil

		case matches(sql, "constraint_type = 'PRIMARY KEY'"):
			return [][]any{{"id"}}, nil

		case matches(sql, "FROM information_schema.st_geometry_columns"):
			return [][]any{{"boundary", 4326, "multipolygon"}}, nil
		}
		return nil, nil
	}}
}

func TestMySQLSource_BuildModel(t *testing.T) {
	source := NewMySQL(mysqlGeoDB(), testLogger())

	m, err := source.BuildModel(context.Background(), "geo", []string{"parcels"})
	require.NoError(t, err)
	require.Len(t, m.Tables, 1)

	parcels := m.Tables[0]
	assert.Equal(t, "id", parcels.PrimaryKey)
	assert.Equal(t, "boundary", parcels.GeometryColumn)

	geom, ok := parcels.Geometry()
	require.True(t, ok)
	assert.Equal(t, model.GeometryMultiPolygon, geom.GeometryType)
	assert.Equal(t, 4326, geom.SRID)
}

func TestMySQLSource_GeometryWithoutSpatialMetadata(t *testing.T) {
	// Declared geometry column missing from st_geometry_columns (e.g. no
	// SRID restriction exposed) falls back to the declared column type.
	db := &fakeDB{handler: func(sql string, args ...any) ([][]any, error) {
		switch {
		case matches(sql, "FROM information_schema.columns"):
			return [][]any{
				{"id", "int", false, 1},
				{"geom", "point", true, 2},
			}, nil
		case matches(sql, "constraint_type = 'PRIMARY KEY'"):
			return [][]any{{"id"}}, nil
		case matches(sql, "FROM information_schema.st_geometry_columns"):
			return nil, nil
		}
		return nil, nil
	}}
	source := NewMySQL(db, testLogger())

	m, err := source.BuildModel(context.Background(), "geo", []string{"poi"})
	require.NoError(t, err)

	geom, ok := m.Tables[0].Geometry()
	require.True(t, ok)
	assert.Equal(t, model.GeometryPoint, geom.GeometryType)
	assert.Equal(t, 0, geom.SRID)
}

func TestMySQLSource_UnsupportedType(t *testing.T) {
	db := &fakeDB{handler: func(sql string, args ...any) ([][]any, error) {
		switch {
		case matches(sql, "FROM information_schema.columns"):
			return [][]any{
				{"id", "int", false, 1},
				{"payload", "json", true, 2},
			}, nil
		}
		return nil, nil
	}}
	source := NewMySQL(db, testLogger())

	_, err := source.BuildModel(context.Background(), "geo", []string{"events"})
	require.Error(t, err)
	assert.True(t, errs.IsUnsupportedType(err))
	assert.Contains(t, err.Error(), "payload")
}
