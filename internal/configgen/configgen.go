// Package configgen orchestrates a generation run: it owns the database
// connection, builds the table model once, and drives the three document
// generators against a document writer.
//
// A run is a one-shot snapshot — the model is never refreshed after
// construction. Generation may be repeated; the connection is released with
// Close (or automatically via Run).
package configgen

import (
	"context"

	"github.com/codehub-rony/ldproxy-config-generator/internal/database"
	"github.com/codehub-rony/ldproxy-config-generator/internal/database/mysql"
	"github.com/codehub-rony/ldproxy-config-generator/internal/database/postgres"
	"github.com/codehub-rony/ldproxy-config-generator/internal/errs"
	"github.com/codehub-rony/ldproxy-config-generator/internal/ldproxy"
	"github.com/codehub-rony/ldproxy-config-generator/internal/logger"
	"github.com/codehub-rony/ldproxy-config-generator/internal/metadata"
	"github.com/codehub-rony/ldproxy-config-generator/internal/model"
	"github.com/codehub-rony/ldproxy-config-generator/internal/writer"
)

// Options are the construction parameters of one generation run.
type Options struct {
	// ServiceID is the identifier shared by all three generated documents.
	ServiceID string

	// Schema is the database schema to introspect.
	Schema string

	// DB describes the database connection. Consumed only by the metadata
	// source; the generators never see it.
	DB *database.Config

	// TargetTables restricts the run to specific tables. Empty means all
	// tables of the schema, in enumeration order.
	TargetTables []string

	// APIBlocks names the enabled capability flags. Empty means all.
	APIBlocks []string

	// AxisOrder is the coordinate order for every geometry in the run.
	// Empty defaults to LON_LAT.
	AxisOrder ldproxy.AxisOrder

	// DockerPaths emits location strings for a containerized deployment.
	DockerPaths bool

	// Logger receives progress and skipped-table warnings. Nil uses the
	// default JSON logger.
	Logger *logger.Logger
}

type state int

const (
	stateReady state = iota
	stateGenerated
	stateDisposed
)

// Orchestrator drives one generation run. It is not safe for concurrent
// use — the run is strictly sequential by design.
type Orchestrator struct {
	serviceID string
	log       *logger.Logger

	source metadata.Source
	model  *model.TableModel

	service  *ldproxy.ServiceGenerator
	provider *ldproxy.SQLProviderGenerator
	tiles    *ldproxy.TileProviderGenerator

	state state
}

// New validates opts, connects to the database, builds the table model, and
// constructs the generators. Any failure leaves no connection behind.
func New(ctx context.Context, opts Options) (*Orchestrator, error) {
	if opts.ServiceID == "" {
		return nil, errs.New(errs.ErrKindInvalidInput, "service id is required")
	}
	if opts.Schema == "" {
		return nil, errs.New(errs.ErrKindInvalidInput, "schema name is required")
	}
	if opts.DB == nil || opts.DB.DSN == "" {
		return nil, errs.New(errs.ErrKindInvalidInput, "database connection is required")
	}

	if opts.AxisOrder != "" && opts.AxisOrder != ldproxy.AxisOrderLonLat && opts.AxisOrder != ldproxy.AxisOrderLatLon {
		return nil, errs.Newf(errs.ErrKindInvalidInput, "unknown axis order %q", opts.AxisOrder)
	}

	flags, err := ldproxy.ParseFlags(opts.APIBlocks)
	if err != nil {
		return nil, err
	}

	log := opts.Logger
	if log == nil {
		log = logger.New(nil)
	}
	log = log.With().Str("service", opts.ServiceID).Str("schema", opts.Schema).Logger()

	source, details, dialect, err := openSource(ctx, opts.DB, log)
	if err != nil {
		return nil, err
	}

	return assemble(ctx, opts, flags, source, details, dialect, log)
}

// assemble builds the model over an opened source and wires the generators.
// On failure the source is closed.
func assemble(ctx context.Context, opts Options, flags ldproxy.FlagSet, source metadata.Source,
	details *database.ConnectionDetails, dialect string, log *logger.Logger) (*Orchestrator, error) {

	m, err := buildModel(ctx, source, opts.Schema, opts.TargetTables, log)
	if err != nil {
		source.Close()
		return nil, err
	}

	o := &Orchestrator{
		serviceID: opts.ServiceID,
		log:       log,
		source:    source,
		model:     m,
		service:   ldproxy.NewService(opts.ServiceID, m, flags),
		provider: ldproxy.NewSQLProvider(opts.ServiceID, m, details, ldproxy.ProviderOptions{
			Dialect:     dialect,
			AxisOrder:   opts.AxisOrder,
			DockerPaths: opts.DockerPaths,
		}),
		tiles: ldproxy.NewTileProvider(opts.ServiceID, m, opts.DockerPaths),
		state: stateReady,
	}
	return o, nil
}

// openSource connects the configured engine and returns the metadata source
// together with the connection details the provider document embeds.
func openSource(ctx context.Context, cfg *database.Config, log *logger.Logger) (metadata.Source, *database.ConnectionDetails, string, error) {
	switch cfg.Driver {
	case database.DriverPostgres:
		details, err := postgres.ParseDetails(cfg.DSN)
		if err != nil {
			return nil, nil, "", err
		}
		db, err := postgres.New(ctx, cfg)
		if err != nil {
			return nil, nil, "", err
		}
		return metadata.NewPostgres(db, log), details, "PGIS", nil

	case database.DriverMySQL:
		details, err := mysql.ParseDetails(cfg.DSN)
		if err != nil {
			return nil, nil, "", err
		}
		db, err := mysql.New(ctx, cfg)
		if err != nil {
			return nil, nil, "", err
		}
		return metadata.NewMySQL(db, log), details, "MYSQL", nil

	default:
		return nil, nil, "", errs.Newf(errs.ErrKindInvalidInput, "unknown database driver %q", cfg.Driver)
	}
}

func buildModel(ctx context.Context, source metadata.Source, schema string, targets []string, log *logger.Logger) (*model.TableModel, error) {
	tables := targets
	if len(tables) == 0 {
		var err error
		tables, err = source.ListTables(ctx, schema)
		if err != nil {
			return nil, err
		}
	}

	m, err := source.BuildModel(ctx, schema, tables)
	if err != nil {
		return nil, err
	}

	log.With().Int("tables", len(m.Tables)).Int("skipped", len(m.Skipped)).Logger().
		Info("table model built")
	return m, nil
}

// Model returns the table model of this run. Read-only.
func (o *Orchestrator) Model() *model.TableModel {
	return o.model
}

// Document store paths, relative to the output location.
func (o *Orchestrator) servicePath() string  { return "entities/services/" + o.serviceID + ".yml" }
func (o *Orchestrator) providerPath() string { return "entities/providers/" + o.serviceID + ".yml" }
func (o *Orchestrator) tilesPath() string {
	return "entities/providers/" + o.serviceID + "-tiles.yml"
}

// Generate produces and persists the three documents in the fixed order
// service, provider, tiles. On failure, documents already written in this
// call stay in place — writes are not transactional.
//
// Generate may be called repeatedly until Close.
func (o *Orchestrator) Generate(ctx context.Context, w writer.Writer) error {
	if o.state == stateDisposed {
		return errs.New(errs.ErrKindDisposed, "generate called after close")
	}

	steps := []struct {
		path string
		doc  any
	}{
		{o.servicePath(), o.service.Generate()},
		{o.providerPath(), o.provider.Generate()},
		{o.tilesPath(), o.tiles.Generate()},
	}

	for _, step := range steps {
		if err := w.WriteDocument(ctx, step.path, step.doc); err != nil {
			return err
		}
		o.log.With().Str("path", step.path).Logger().Info("document written")
	}

	o.state = stateGenerated
	return nil
}

// GenerateFiles writes the documents into a local store directory.
func (o *Orchestrator) GenerateFiles(ctx context.Context, dir string) error {
	return o.Generate(ctx, writer.NewFS(dir))
}

// Close releases the database connection. Idempotent; generation calls
// after Close fail with a disposed error.
func (o *Orchestrator) Close() {
	if o.state == stateDisposed {
		return
	}
	o.source.Close()
	o.state = stateDisposed
}

// Run performs a complete scoped run: construct, generate into dir, and
// release the connection on every exit path.
func Run(ctx context.Context, opts Options, dir string) error {
	o, err := New(ctx, opts)
	if err != nil {
		return err
	}
	defer o.Close()

	return o.GenerateFiles(ctx, dir)
}
