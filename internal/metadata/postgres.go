package metadata

import (
	"context"
	"errors"
	"fmt"

	"github.com/codehub-rony/ldproxy-config-generator/internal/database"
	"github.com/codehub-rony/ldproxy-config-generator/internal/errs"
	"github.com/codehub-rony/ldproxy-config-generator/internal/logger"
	"github.com/codehub-rony/ldproxy-config-generator/internal/model"
)

// PostgresSource implements Source for PostgreSQL/PostGIS using
// information_schema plus the geometry_columns view.
type PostgresSource struct {
	db  database.DB
	log *logger.Logger
}

// NewPostgres creates a Postgres metadata source over an owned connection.
func NewPostgres(db database.DB, log *logger.Logger) *PostgresSource {
	if log == nil {
		log = logger.New(nil)
	}
	return &PostgresSource{db: db, log: log}
}

// Close releases the underlying connection pool.
func (s *PostgresSource) Close() {
	s.db.Close()
}

// ListTables returns all user-defined base tables in the given schema.
func (s *PostgresSource) ListTables(ctx context.Context, schema string) ([]string, error) {
	const q = `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = $1
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

func (s *PostgresSource) schemaExists(ctx context.Context, schema string) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.schemata
			WHERE schema_name = $1
		)`

	var exists bool
	if err := s.db.QueryRow(ctx, q, schema).Scan(&exists); err != nil {
		return false, errs.Wrap(errs.ErrKindQueryFailed, "schema existence check", err)
	}
	return exists, nil
}

// BuildModel introspects the requested tables into a TableModel.
func (s *PostgresSource) BuildModel(ctx context.Context, schema string, tables []string) (*model.TableModel, error) {
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

// inspectTable fetches columns, primary key, and geometry metadata for one table.
func (s *PostgresSource) inspectTable(ctx context.Context, schema, name string) (*model.Table, error) {
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
		// Composite keys collapse to the first key column; the generated
		// documents address features by a single identifier.
		table.PrimaryKey = pks[0]
	}

	for i := range columns {
		col := &columns[i]
		if geo, ok := geoms[col.Name]; ok {
			col.Type = model.TypeGeometry
			col.SRID = geo.srid
			col.GeometryType = model.MapGeometryType(geo.geomType)
			if table.GeometryColumn == "" {
				table.GeometryColumn = col.Name
			}
			continue
		}
		t, ok := model.MapPostgresType(col.NativeType)
		if !ok {
			return nil, errs.Newf(errs.ErrKindUnsupportedType,
				"column %s.%s.%s has unsupported type %q", schema, name, col.Name, col.NativeType)
		}
		col.Type = t
	}

	table.Columns = columns
	return table, nil
}

func (s *PostgresSource) fetchColumns(ctx context.Context, schema, name string) ([]model.Column, error) {
	const q = `
		SELECT column_name,
		       data_type,
		       is_nullable = 'YES',
		       ordinal_position
		FROM information_schema.columns
		WHERE table_schema = $1
		  AND table_name   = $2
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

func (s *PostgresSource) fetchPrimaryKey(ctx context.Context, schema, name string) ([]string, error) {
	const q = `
		SELECT kcu.column_name
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
		  ON tc.constraint_name = kcu.constraint_name
		 AND tc.table_schema    = kcu.table_schema
		WHERE tc.constraint_type = 'PRIMARY KEY'
		  AND tc.table_schema    = $1
		  AND tc.table_name      = $2
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

type geomInfo struct {
	srid     int
	geomType string
}

// fetchGeometryColumns reads the PostGIS geometry_columns view.
func (s *PostgresSource) fetchGeometryColumns(ctx context.Context, schema, name string) (map[string]geomInfo, error) {
	const q = `
		SELECT f_geometry_column, srid, type
		FROM geometry_columns
		WHERE f_table_schema = $1
		  AND f_table_name   = $2`

	rows, err := s.db.Query(ctx, q, schema, name)
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindQueryFailed,
			fmt.Sprintf("read geometry_columns for %s.%s (is PostGIS installed?)", schema, name), err)
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
