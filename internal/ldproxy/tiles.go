package ldproxy

import (
	"github.com/codehub-rony/ldproxy-config-generator/internal/model"
)

// TileDoc is the tile provider definition
// (store/entities/providers/<service id>-tiles.yml).
type TileDoc struct {
	ID                   string            `yaml:"id"`
	EntityStorageVersion int               `yaml:"entityStorageVersion"`
	ProviderType         string            `yaml:"providerType"`
	ProviderSubType      string            `yaml:"providerSubType"`
	Caches               []TileCache       `yaml:"caches"`
	TilesetDefaults      TilesetDefaults   `yaml:"tilesetDefaults"`
	Tilesets             *Mapping[Tileset] `yaml:"tilesets"`
}

// TileCache configures one tile cache layer.
type TileCache struct {
	Type    string               `yaml:"type"`
	Storage string               `yaml:"storage"`
	Path    string               `yaml:"path,omitempty"`
	Levels  map[string]ZoomRange `yaml:"levels"`
}

// ZoomRange bounds the zoom levels of a tile matrix set.
type ZoomRange struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// TilesetDefaults applies to every tileset that declares no own levels.
type TilesetDefaults struct {
	Levels map[string]ZoomRange `yaml:"levels"`
}

// Tileset is one tiled feature type. Its key and id match the feature type
// identifier of the service and provider documents.
type Tileset struct {
	ID string `yaml:"id"`
}

const (
	tileMatrixSet = "WebMercatorQuad"
	minZoom       = 0
	maxZoom       = 14

	cachePathHost   = "data/cache/tiles"
	cachePathDocker = "/ldproxy/data/cache/tiles"
)

// TileProviderGenerator derives the tile provider document from the table
// model. Only tables with a geometry column become tilesets; the output is
// independent of the enabled capability flags.
type TileProviderGenerator struct {
	serviceID   string
	model       *model.TableModel
	dockerPaths bool
}

// NewTileProvider constructs the generator.
func NewTileProvider(serviceID string, m *model.TableModel, dockerPaths bool) *TileProviderGenerator {
	return &TileProviderGenerator{serviceID: serviceID, model: m, dockerPaths: dockerPaths}
}

// Generate produces the tile provider document. Tilesets appear in table
// model order.
func (g *TileProviderGenerator) Generate() *TileDoc {
	cachePath := cachePathHost
	if g.dockerPaths {
		cachePath = cachePathDocker
	}

	doc := &TileDoc{
		ID:                   g.serviceID + "-tiles",
		EntityStorageVersion: entityStorageVersion,
		ProviderType:         "TILE",
		ProviderSubType:      "FEATURES",
		Caches: []TileCache{{
			Type:    "IMMUTABLE",
			Storage: "MBTILES",
			Path:    cachePath,
			Levels:  map[string]ZoomRange{tileMatrixSet: {Min: minZoom, Max: maxZoom}},
		}},
		TilesetDefaults: TilesetDefaults{
			Levels: map[string]ZoomRange{tileMatrixSet: {Min: minZoom, Max: maxZoom}},
		},
		Tilesets: NewMapping[Tileset](),
	}

	for i := range g.model.Tables {
		table := &g.model.Tables[i]
		if !table.HasGeometry() {
			continue
		}
		doc.Tilesets.Set(table.ID, Tileset{ID: table.ID})
	}
	return doc
}
