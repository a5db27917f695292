package ldproxy

import (
	"github.com/codehub-rony/ldproxy-config-generator/internal/database"
	"github.com/codehub-rony/ldproxy-config-generator/internal/model"
)

// geoModel is the shared fixture: schema "geo" with a polygon table and a
// plain attribute table.
func geoModel() *model.TableModel {
	parks := model.Table{
		Name: "parks",
		Columns: []model.Column{
			{Name: "id", NativeType: "integer", Type: model.TypeInteger, Position: 1},
			{Name: "name", NativeType: "text", Type: model.TypeString, Nullable: true, Position: 2},
			{Name: "area", NativeType: "double precision", Type: model.TypeFloat, Nullable: true, Position: 3},
			{Name: "geom", NativeType: "USER-DEFINED", Type: model.TypeGeometry, Position: 4, SRID: 4326, GeometryType: model.GeometryPolygon},
		},
		PrimaryKey:     "id",
		GeometryColumn: "geom",
	}
	stations := model.Table{
		Name: "stations",
		Columns: []model.Column{
			{Name: "id", NativeType: "integer", Type: model.TypeInteger, Position: 1},
			{Name: "name", NativeType: "text", Type: model.TypeString, Nullable: true, Position: 2},
		},
		PrimaryKey: "id",
	}
	return model.New("geo", []model.Table{parks, stations}, nil)
}

func testDetails() *database.ConnectionDetails {
	return &database.ConnectionDetails{
		Host:     "localhost",
		Port:     5432,
		User:     "gis",
		Password: "secret",
		Database: "gisdb",
	}
}
