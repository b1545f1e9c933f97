package cmd

import (
	"fmt"
	"strconv"

	"disruption-sync/core/config"
	"disruption-sync/core/database"
	"disruption-sync/core/logger"
	"disruption-sync/core/reconcile"
	"disruption-sync/core/source"
	"disruption-sync/core/storage"
	"disruption-sync/feature/disruption"
	"disruption-sync/feature/disruption/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// storeArgs are the positional connection arguments shared by every command.
type storeArgs struct {
	host       string
	port       string
	credential string
	name       string
}

// runtime is everything one command invocation needs.
type runtime struct {
	cfg  *config.Config
	log  *zap.Logger
	db   *gorm.DB
	spec *reconcile.Spec
}

// setup loads configuration, applies the connection arguments on top of it, connects to
// the store and verifies its schema.
func setup(args storeArgs) (*runtime, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	port, err := strconv.Atoi(args.port)
	if err != nil {
		return nil, fmt.Errorf("invalid port %q: %w", args.port, err)
	}
	cfg.Database.Host = args.host
	cfg.Database.Port = port
	cfg.Database.Name = args.name
	cfg.Database = cfg.Database.WithCredential(args.credential)

	base, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	l := logger.WithRunID(base)

	l.Info("Connecting to database",
		zap.String("driver", cfg.Database.Driver),
		zap.String("host", cfg.Database.Host),
		zap.Int("port", cfg.Database.Port),
		zap.String("database", cfg.Database.Name),
	)
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.VerifySchema(db, models.RequiredColumns()); err != nil {
		_ = database.Close(db)
		return nil, fmt.Errorf("failed to verify schema: %w", err)
	}

	adapter, err := disruption.NewAdapter(l)
	if err != nil {
		_ = database.Close(db)
		return nil, err
	}

	return &runtime{
		cfg:  cfg,
		log:  l,
		db:   db,
		spec: &reconcile.Spec{Adapter: adapter, Logger: l},
	}, nil
}

// eventSource picks a bucket listing for s3:// patterns and a local glob otherwise.
func (r *runtime) eventSource(pattern string) (source.Source, error) {
	if !source.IsObjectPattern(pattern) {
		return source.NewFileSource(pattern), nil
	}

	bucket, objects, err := source.ParseObjectPattern(pattern)
	if err != nil {
		return nil, err
	}
	client, err := storage.NewClient(r.cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to storage: %w", err)
	}
	r.log.Info("Reading events from storage",
		zap.String("endpoint", r.cfg.Storage.Endpoint),
		zap.String("bucket", bucket),
		zap.String("pattern", objects),
	)
	return source.NewObjectSource(client, bucket, objects), nil
}

func (r *runtime) close() {
	if err := database.Close(r.db); err != nil {
		r.log.Warn("Failed to close database", zap.Error(err))
	}
	_ = r.log.Sync()
}
