package ldproxy

import (
	"github.com/codehub-rony/ldproxy-config-generator/internal/model"
)

// ServiceDoc is the top-level service definition
// (store/entities/services/<id>.yml).
type ServiceDoc struct {
	ID                   string               `yaml:"id"`
	EntityStorageVersion int                  `yaml:"entityStorageVersion"`
	ServiceType          string               `yaml:"serviceType"`
	Label                string               `yaml:"label"`
	Enabled              bool                 `yaml:"enabled"`
	API                  []APIBlock           `yaml:"api,omitempty"`
	Collections          *Mapping[Collection] `yaml:"collections"`
}

// APIBlock configures one building block, either service-wide or per
// collection. Blocks for disabled flags are absent from the document
// entirely — absence means "not offered", not "offered but empty".
type APIBlock struct {
	BuildingBlock string   `yaml:"buildingBlock"`
	Enabled       bool     `yaml:"enabled"`
	AdditionalCrs []CrsRef `yaml:"additionalCrs,omitempty"`
	Included      []string `yaml:"included,omitempty"`
}

// Collection is one feature type entry of the service document.
type Collection struct {
	ID      string     `yaml:"id"`
	Label   string     `yaml:"label"`
	Enabled bool       `yaml:"enabled"`
	API     []APIBlock `yaml:"api,omitempty"`
}

// additionalCrs lists the extra reference systems offered when the CRS
// building block is enabled.
var additionalCrs = []CrsRef{
	{Code: 4258, ForceAxisOrder: "NONE"},
	{Code: 3857, ForceAxisOrder: "NONE"},
}

// ServiceGenerator derives the service document from the table model.
type ServiceGenerator struct {
	serviceID string
	model     *model.TableModel
	flags     FlagSet
}

// NewService constructs the generator. It holds a reference to the model
// and never mutates it; Generate may be called repeatedly.
func NewService(serviceID string, m *model.TableModel, flags FlagSet) *ServiceGenerator {
	return &ServiceGenerator{serviceID: serviceID, model: m, flags: flags}
}

// Generate produces the service document. Feature types appear in table
// model order.
func (g *ServiceGenerator) Generate() *ServiceDoc {
	doc := &ServiceDoc{
		ID:                   g.serviceID,
		EntityStorageVersion: entityStorageVersion,
		ServiceType:          "OGC_API",
		Label:                g.serviceID,
		Enabled:              true,
		API:                  g.serviceBlocks(),
		Collections:          NewMapping[Collection](),
	}

	for i := range g.model.Tables {
		table := &g.model.Tables[i]
		doc.Collections.Set(table.ID, g.collection(table))
	}
	return doc
}

// serviceBlocks emits the service-wide building blocks for the enabled flags,
// in the fixed flag order.
func (g *ServiceGenerator) serviceBlocks() []APIBlock {
	var blocks []APIBlock
	for _, flag := range allFlags {
		if !g.flags.Has(flag) {
			continue
		}
		switch flag {
		case FlagCRS:
			blocks = append(blocks, APIBlock{
				BuildingBlock: string(flag),
				Enabled:       true,
				AdditionalCrs: additionalCrs,
			})
		case FlagQueryables:
			// Queryables are declared per collection, not service-wide.
		default:
			blocks = append(blocks, APIBlock{BuildingBlock: string(flag), Enabled: true})
		}
	}
	return blocks
}

func (g *ServiceGenerator) collection(table *model.Table) Collection {
	coll := Collection{
		ID:      table.ID,
		Label:   table.Name,
		Enabled: true,
	}

	if g.flags.Has(FlagQueryables) {
		cols := table.NonGeometryColumns()
		included := make([]string, len(cols))
		for i, c := range cols {
			included[i] = c.Name
		}
		coll.API = append(coll.API, APIBlock{
			BuildingBlock: string(FlagQueryables),
			Enabled:       true,
			Included:      included,
		})
	}
	return coll
}
