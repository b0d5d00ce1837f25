package catalog

import (
	"context"
	"time"

	"github.com/mobileriadardania/storefront/internal/domain"
	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GormRepository stores products in the catalog_product table. List
// columns go through gorm's JSON serializer.
type GormRepository struct {
	db *gorm.DB
}

var _ ProductRepository = (*GormRepository)(nil)

// OpenGormRepository opens a PostgreSQL connection pool for dsn.
func OpenGormRepository(dsn string, maxConn, idleConn int, debug bool) (*GormRepository, error) {
	level := logger.Silent
	if debug {
		level = logger.Info
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:                 logger.Default.LogMode(level),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "open postgres")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "postgres pool")
	}
	if maxConn > 0 {
		sqlDB.SetMaxOpenConns(maxConn)
	}
	if idleConn > 0 {
		sqlDB.SetMaxIdleConns(idleConn)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)
	return NewGormRepository(db), nil
}

// NewGormRepository wraps an existing gorm handle.
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) List(ctx context.Context) ([]domain.Product, error) {
	var items []domain.Product
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&items).Error; err != nil {
		return nil, errors.Wrap(err, "list products")
	}
	if items == nil {
		items = make([]domain.Product, 0)
	}
	for i := range items {
		normalize(&items[i])
	}
	return items, nil
}

func (r *GormRepository) Get(ctx context.Context, id string) (domain.Product, error) {
	key, err := normalizeID(id)
	if err != nil {
		return domain.Product{}, err
	}
	var p domain.Product
	err = r.db.WithContext(ctx).Where("id = ?", key).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Product{}, ErrNotFound
	}
	if err != nil {
		return domain.Product{}, errors.Wrapf(err, "get product %s", key)
	}
	normalize(&p)
	return p, nil
}

func (r *GormRepository) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	p.ID = NewID()
	normalize(&p)
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return domain.Product{}, errors.Wrap(err, "create product")
	}
	return p, nil
}

func (r *GormRepository) Replace(ctx context.Context, id string, p domain.Product) (domain.Product, error) {
	key, err := normalizeID(id)
	if err != nil {
		return domain.Product{}, ErrNotFound
	}
	p.ID = key
	normalize(&p)
	// Select("*") writes zero values too, which is what makes this a replace.
	tx := r.db.WithContext(ctx).Model(&domain.Product{}).Where("id = ?", key).Select("*").Updates(&p)
	if tx.Error != nil {
		return domain.Product{}, errors.Wrapf(tx.Error, "replace product %s", key)
	}
	if tx.RowsAffected == 0 {
		return domain.Product{}, ErrNotFound
	}
	return p, nil
}

func (r *GormRepository) Delete(ctx context.Context, id string) error {
	key, err := normalizeID(id)
	if err != nil {
		return ErrNotFound
	}
	tx := r.db.WithContext(ctx).Where("id = ?", key).Delete(&domain.Product{})
	if tx.Error != nil {
		return errors.Wrapf(tx.Error, "delete product %s", key)
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormRepository) Migrate(ctx context.Context) error {
	return errors.Wrap(r.db.WithContext(ctx).AutoMigrate(domain.Tables...), "migrate catalog tables")
}

func (r *GormRepository) Drop(ctx context.Context) error {
	return errors.Wrap(r.db.WithContext(ctx).Migrator().DropTable(domain.Tables...), "drop catalog tables")
}

func (r *GormRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
