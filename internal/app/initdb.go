package app

import (
	"context"
	"path/filepath"

	"github.com/mobileriadardania/storefront/config"
	"github.com/mobileriadardania/storefront/internal/catalog"
	"github.com/mobileriadardania/storefront/internal/upload"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

func openRepository(ctx context.Context, cfg *config.AppConfig) (catalog.ProductRepository, error) {
	db := cfg.Database
	switch db.Type {
	case "bolt":
		return catalog.OpenBoltRepository(filepath.Join(cfg.GetDataDir(), "catalog.db"))
	case "mongodb":
		return catalog.OpenMongoRepository(ctx, db.URL, db.Name, db.MaxConn)
	case "postgres":
		return catalog.OpenGormRepository(db.URL, db.MaxConn, db.IdleConn, db.Debug)
	default:
		return nil, errors.Errorf("unsupported database type %q", db.Type)
	}
}

func openStorage(ctx context.Context, cfg *config.AppConfig) (upload.Storage, error) {
	switch cfg.Upload.Backend {
	case "s3":
		return upload.NewS3Storage(ctx, cfg.Upload.S3)
	case "local", "":
		return upload.NewLocalStorage(cfg.GetUploadDir())
	default:
		return nil, errors.Errorf("unsupported upload backend %q", cfg.Upload.Backend)
	}
}

// MigrateDB creates missing catalog collections, buckets or tables.
func (a *Application) MigrateDB() error {
	return a.repo.Migrate(context.Background())
}

// InitDb drops every product and recreates the catalog schema.
func (a *Application) InitDb() error {
	ctx := context.Background()
	if err := a.repo.Drop(ctx); err != nil {
		return err
	}
	if err := a.repo.Migrate(ctx); err != nil {
		return err
	}
	zap.L().Info("catalog schema recreated", zap.String("type", a.appConfig.Database.Type))
	return nil
}
