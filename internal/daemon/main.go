// Package daemon wires the configured database, logger, and import machinery
// behind the CLI commands.
package daemon

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/dirgraph/dirgraph/internal/config"
	"github.com/dirgraph/dirgraph/internal/db/controller/sourceconfig"
	"github.com/dirgraph/dirgraph/internal/db/dsn"
	"github.com/dirgraph/dirgraph/internal/db/models"
	"github.com/dirgraph/dirgraph/internal/directory/googledir"
	"github.com/dirgraph/dirgraph/internal/directory/ldapsearch"
	"github.com/dirgraph/dirgraph/internal/fixture"
	"github.com/dirgraph/dirgraph/internal/graph"
	"github.com/dirgraph/dirgraph/internal/importer"
	"github.com/dirgraph/dirgraph/internal/logger"
)

// SourceLDAP and SourceGoogle name the supported directory sources.
const (
	SourceLDAP   = "ldap"
	SourceGoogle = "google"
)

// ErrUnknownSource is returned for a source name that is neither ldap nor google.
var ErrUnknownSource = errors.New("unknown directory source")

// Daemon is the assembled application: an open database handle plus the
// reconciliation runner and graph builder on top of it.
type Daemon struct {
	cfg     *config.Config
	db      *gorm.DB
	runner  *importer.Runner
	builder *graph.Builder
}

// New opens the configured database, migrates the schema, and assembles the
// Daemon.
func New(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	if err := logger.Init(cfg.Log); err != nil {
		return nil, errors.Wrap(err, "failed to initialize logger")
	}

	dialector, err := dsn.Dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect database")
	}

	if err = db.AutoMigrate(
		&models.Identity{},
		&models.Identifier{},
		&models.CanonicalGroup{},
		&models.IdentityGroup{},
		&models.GoogleConfiguration{},
		&models.GoogleUser{},
		&models.GoogleGroup{},
		&models.GoogleMembership{},
		&models.LDAPConfiguration{},
		&models.LDAPUser{},
		&models.LDAPGroup{},
		&models.LDAPMembership{},
	); err != nil {
		return nil, errors.Wrap(err, "failed to migrate database")
	}

	if err := seed(cfg, db); err != nil {
		return nil, err
	}

	return &Daemon{
		cfg:     cfg,
		db:      db,
		runner:  importer.NewRunner(db),
		builder: graph.NewBuilder(db),
	}, nil
}

// RunImport retrieves and reconciles one source configuration. A zero
// configID selects the first stored configuration for the source.
func (d *Daemon) RunImport(source string, configID uint) error {
	switch source {
	case SourceLDAP:
		cfg, err := d.ldapConfiguration(configID)
		if err != nil {
			return err
		}

		_, err = d.runner.RunLDAP(cfg, ldapsearch.NewClient(cfg, d.ldapOptions()...))

		return err
	case SourceGoogle:
		cfg, err := d.googleConfiguration(configID)
		if err != nil {
			return err
		}

		client, err := d.googleClient(cfg)
		if err != nil {
			return err
		}

		_, err = d.runner.RunGoogle(cfg, client)

		return err
	default:
		return errors.Wrapf(ErrUnknownSource, "%q", source)
	}
}

// ExportGraph assembles the {nodes, links} document for one source
// configuration.
func (d *Daemon) ExportGraph(source string, configID uint) (*graph.Graph, error) {
	switch source {
	case SourceLDAP:
		cfg, err := d.ldapConfiguration(configID)
		if err != nil {
			return nil, err
		}

		return d.builder.BuildLDAP(cfg)
	case SourceGoogle:
		cfg, err := d.googleConfiguration(configID)
		if err != nil {
			return nil, err
		}

		return d.builder.BuildGoogle(cfg)
	default:
		return nil, errors.Wrapf(ErrUnknownSource, "%q", source)
	}
}

func (d *Daemon) ldapConfiguration(configID uint) (*models.LDAPConfiguration, error) {
	cfg, err := sourceconfig.GetLDAP(d.db, configID)

	return cfg, errors.Wrap(err, "failed to load ldap configuration")
}

func (d *Daemon) googleConfiguration(configID uint) (*models.GoogleConfiguration, error) {
	cfg, err := sourceconfig.GetGoogle(d.db, configID)

	return cfg, errors.Wrap(err, "failed to load google configuration")
}

func (d *Daemon) fixtureStore() *fixture.Store {
	if d.cfg.Import.FixtureDir == "" {
		return nil
	}

	return fixture.NewStore(d.cfg.Import.FixtureDir)
}

func (d *Daemon) ldapOptions() []ldapsearch.Option {
	var opts []ldapsearch.Option

	if d.cfg.Import.PageSize > 0 {
		opts = append(opts, ldapsearch.WithPageSize(d.cfg.Import.PageSize))
	}

	if store := d.fixtureStore(); store != nil {
		opts = append(opts, ldapsearch.WithFixtures(store, d.cfg.Import.RecordFixtures, d.cfg.Import.ReplayFixtures))
	}

	return opts
}

// googleClient builds the retrieval client for one Google configuration.
// In replay mode no API credentials are needed.
func (d *Daemon) googleClient(cfg *models.GoogleConfiguration) (*googledir.Client, error) {
	var opts []googledir.Option

	if d.cfg.Import.PageSize > 0 {
		opts = append(opts, googledir.WithPageSize(d.cfg.Import.PageSize))
	}

	if store := d.fixtureStore(); store != nil {
		opts = append(opts, googledir.WithFixtures(store, d.cfg.Import.RecordFixtures, d.cfg.Import.ReplayFixtures))
	}

	if d.cfg.Import.ReplayFixtures {
		return googledir.NewClient(cfg, nil, opts...), nil
	}

	api, err := googledir.NewAPI(context.Background(), cfg)
	if err != nil {
		return nil, err
	}

	return googledir.NewClient(cfg, api, opts...), nil
}
