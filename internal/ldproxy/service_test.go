package ldproxy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"
)

func TestServiceGenerator_DefaultFlags(t *testing.T) {
	doc := NewService("trails", geoModel(), DefaultFlags()).Generate()

	assert.Equal(t, "trails", doc.ID)
	assert.Equal(t, "OGC_API", doc.ServiceType)
	assert.Equal(t, 2, doc.EntityStorageVersion)
	assert.True(t, doc.Enabled)

	// One feature type per table, in model order.
	assert.Equal(t, []string{"parks", "stations"}, doc.Collections.Keys())

	parks, ok := doc.Collections.Get("parks")
	require.True(t, ok)
	assert.Equal(t, "parks", parks.ID)
	assert.Equal(t, "parks", parks.Label)

	// Queryables list the non-geometry columns in ordinal order.
	require.Len(t, parks.API, 1)
	assert.Equal(t, "QUERYABLES", parks.API[0].BuildingBlock)
	assert.Equal(t, []string{"id", "name", "area"}, parks.API[0].Included)
}

func TestServiceGenerator_ServiceBlocks(t *testing.T) {
	doc := NewService("trails", geoModel(), DefaultFlags()).Generate()

	blocks := make(map[string]APIBlock, len(doc.API))
	for _, b := range doc.API {
		blocks[b.BuildingBlock] = b
	}

	// QUERYABLES is collection-scoped, all others are service-wide.
	assert.NotContains(t, blocks, "QUERYABLES")
	assert.Contains(t, blocks, "FILTER")
	assert.Contains(t, blocks, "TILES")
	assert.Contains(t, blocks, "STYLES")
	assert.Contains(t, blocks, "PROJECTIONS")

	crs, ok := blocks["CRS"]
	require.True(t, ok)
	assert.NotEmpty(t, crs.AdditionalCrs)
}

func TestServiceGenerator_DisabledFlagIsAbsent(t *testing.T) {
	flags, err := ParseFlags([]string{"CRS", "FILTER", "TILES", "STYLES", "PROJECTIONS"})
	require.NoError(t, err)

	doc := NewService("trails", geoModel(), flags).Generate()

	// With QUERYABLES disabled there is no queryables section on any
	// collection, regardless of table count.
	for _, key := range doc.Collections.Keys() {
		coll, _ := doc.Collections.Get(key)
		assert.Empty(t, coll.API, "collection %s should carry no api blocks", key)
	}

	out, err := yaml.Marshal(doc)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "QUERYABLES")
}

func TestServiceGenerator_TilesOnly(t *testing.T) {
	flags, err := ParseFlags([]string{"TILES"})
	require.NoError(t, err)

	doc := NewService("trails", geoModel(), flags).Generate()

	require.Len(t, doc.API, 1)
	assert.Equal(t, "TILES", doc.API[0].BuildingBlock)

	out, err := yaml.Marshal(doc)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "additionalCrs")
	assert.NotContains(t, string(out), "QUERYABLES")
}

func TestServiceGenerator_Deterministic(t *testing.T) {
	gen := NewService("trails", geoModel(), DefaultFlags())

	first, err := yaml.Marshal(gen.Generate())
	require.NoError(t, err)
	second, err := yaml.Marshal(gen.Generate())
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}
