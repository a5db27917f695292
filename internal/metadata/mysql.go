package metadata

import (
	"context"
	"errors"

	"github.com/codehub-rony/ldproxy-config-generator/internal/database"
	"github.com/codehub-rony/ldproxy-config-generator/internal/errs"
	"github.com/codehub-rony/ldproxy-config-generator/internal/logger"
	"github.com/codehub-rony/ldproxy-config-generator/internal/model"
)

// MySQLSource implements Source for MySQL 8 using information_schema plus
// the ST_GEOMETRY_COLUMNS view (schema = database in MySQL).
type MySQLSource struct {
	db  database.DB
	log *logger.Logger
}

// NewMySQL creates a MySQL metadata source over an owned connection.
func NewMySQL(db database.DB, log *logger.Logger) *MySQLSource {
	if log == nil {
		log = logger.New(nil)
	}
	return &MySQLSource{db: db, log: log}
}

// Close releases the underlying connection pool.
func (s *MySQLSource) Close() {
	s.db.Close()
}

// ListTables returns all user-defined base tables in the given database.
func (s *MySQLSource) ListTables(ctx context.Context, schema string) ([]string, error) {
	const q = `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = ?
		  AND table_type = 'BASE TABLE'
		ORDER BY table_name`

	rows, err := s.db.Query(ctx, q, schema)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, errs.Wrap(errs.ErrKindQueryFailed, "scan table name", err)
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(tables) == 0 {
		exists, err := s.schemaExists(ctx, schema)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, errs.Newf(errs.ErrKindNotFound, "schema %q does not exist", schema)
		}
	}
	return tables, nil
}

func (s *MySQLSource) schemaExists(ctx context.Context, schema string) (bool, error) {
	const q = `
		SELECT COUNT(*) > 0
		FROM information_schema.schemata
		WHERE schema_name = ?`

	var exists bool
	if err := s.db.QueryRow(ctx, q, schema).Scan(&exists); err != nil {
		return false, errs.Wrap(errs.ErrKindQueryFailed, "schema existence check", err)
	}
	return exists, nil
}

// BuildModel introspects the requested tables into a TableModel.
func (s *MySQLSource) BuildModel(ctx context.Context, schema string, tables []string) (*model.TableModel, error) {
	var (
		built   []model.Table
		skipped []model.SkippedTable
		missing []error
	)

	for _, name := range tables {
		table, err := s.inspectTable(ctx, schema, name)
		if err != nil {
			if errs.IsNotFound(err) {
				missing = append(missing, err)
				continue
			}
			return nil, err
		}

		if table.PrimaryKey == "" {
			s.log.WarnWith("table has no primary key, excluded from model", map[string]any{
				"schema": schema,
				"table":  name,
			})
			skipped = append(skipped, model.SkippedTable{Name: name, Reason: "no primary key"})
			continue
		}

		built = append(built, *table)
	}

	if len(missing) > 0 {
		return nil, errors.Join(missing...)
	}
	return model.New(schema, built, skipped), nil
}

func (s *MySQLSource) inspectTable(ctx context.Context, schema, name string) (*model.Table, error) {
	columns, err := s.fetchColumns(ctx, schema, name)
	if err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return nil, errs.Newf(errs.ErrKindNotFound, "table %q not found in schema %q", name, schema)
	}

	pks, err := s.fetchPrimaryKey(ctx, schema, name)
	if err != nil {
		return nil, err
	}

	geoms, err := s.fetchGeometryColumns(ctx, schema, name)
	if err != nil {
		return nil, err
	}

	table := &model.Table{Name: name}
	if len(pks) > 0 {
		table.PrimaryKey = pks[0]
	}

	for i := range columns {
		col := &columns[i]
		t, ok := model.MapMySQLType(col.NativeType)
		if !ok {
			return nil, errs.Newf(errs.ErrKindUnsupportedType,
				"column %s.%s.%s has unsupported type %q", schema, name, col.Name, col.NativeType)
		}
		col.Type = t

		if t != model.TypeGeometry {
			continue
		}
		// ST_GEOMETRY_COLUMNS refines the declared column type with the
		// spatial reference and, for typed columns, the subtype.
		if geo, ok := geoms[col.Name]; ok {
			col.SRID = geo.srid
			col.GeometryType = model.MapGeometryType(geo.geomType)
		} else {
			col.GeometryType = model.MapGeometryType(col.NativeType)
		}
		if table.GeometryColumn == "" {
			table.GeometryColumn = col.Name
		}
	}

	table.Columns = columns
	return table, nil
}

func (s *MySQLSource) fetchColumns(ctx context.Context, schema, name string) ([]model.Column, error) {
	const q = `
		SELECT column_name,
		       data_type,
		       is_nullable = 'YES',
		       ordinal_position
		FROM information_schema.columns
		WHERE table_schema = ?
		  AND table_name   = ?
		ORDER BY ordinal_position`

	rows, err := s.db.Query(ctx, q, schema, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []model.Column
	for rows.Next() {
		var c model.Column
		if err := rows.Scan(&c.Name, &c.NativeType, &c.Nullable, &c.Position); err != nil {
			return nil, errs.Wrap(errs.ErrKindQueryFailed, "scan column info", err)
		}
		cols = append(cols, c)
	}
	return cols, rows.Err()
}

func (s *MySQLSource) fetchPrimaryKey(ctx context.Context, schema, name string) ([]string, error) {
	const q = `
		SELECT kcu.column_name
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
		  ON tc.constraint_name = kcu.constraint_name
		 AND tc.table_schema    = kcu.table_schema
		 AND tc.table_name      = kcu.table_name
		WHERE tc.constraint_type = 'PRIMARY KEY'
		  AND tc.table_schema    = ?
		  AND tc.table_name      = ?
		ORDER BY kcu.ordinal_position`

	rows, err := s.db.Query(ctx, q, schema, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pks []string
	for rows.Next() {
		var col string
		if err := rows.Scan(&col); err != nil {
			return nil, errs.Wrap(errs.ErrKindQueryFailed, "scan primary key column", err)
		}
		pks = append(pks, col)
	}
	return pks, rows.Err()
}

// fetchGeometryColumns reads information_schema.ST_GEOMETRY_COLUMNS
// (MySQL >= 8.0). SRS_ID is NULL for columns without an SRID restriction.
func (s *MySQLSource) fetchGeometryColumns(ctx context.Context, schema, name string) (map[string]geomInfo, error) {
	const q = `
		SELECT column_name,
		       COALESCE(srs_id, 0),
		       geometry_type_name
		FROM information_schema.st_geometry_columns
		WHERE table_schema = ?
		  AND table_name   = ?`

	rows, err := s.db.Query(ctx, q, schema, name)
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindQueryFailed, "read st_geometry_columns", err)
	}
	defer rows.Close()

	geoms := make(map[string]geomInfo)
	for rows.Next() {
		var col string
		var g geomInfo
		if err := rows.Scan(&col, &g.srid, &g.geomType); err != nil {
			return nil, errs.Wrap(errs.ErrKindQueryFailed, "scan geometry column", err)
		}
		geoms[col] = g
	}
	return geoms, rows.Err()
}
