package app

import (
	"context"
	"time"

	"github.com/mobileriadardania/storefront/internal/catalog"
	"github.com/mobileriadardania/storefront/internal/domain"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	MetricProductsCreated  = "catalog_products_created"
	MetricProductsReplaced = "catalog_products_replaced"
	MetricProductsDeleted  = "catalog_products_deleted"
	MetricProducts         = "catalog_products"
	MetricUploads          = "catalog_uploads"
	MetricOrphanedFiles    = "catalog_orphaned_files"
	MetricDanglingImages   = "catalog_dangling_images"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, err := time.LoadLocation(a.appConfig.System.Location)
	if err != nil {
		loc = time.Local
	}
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	spec := a.appConfig.System.AuditSchedule
	if spec == "" {
		return
	}
	_, err = a.sched.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if _, err := a.RunAudit(ctx); err != nil {
			zap.L().Error("catalog audit failed", zap.Error(err))
		}
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}
}

func (a *Application) subscribeCatalogEvents() {
	subs := map[string]interface{}{
		catalog.TopicProductCreated: func(p domain.Product) {
			a.metrics.Inc(MetricProductsCreated)
			zap.L().Info("product created", zap.String("id", p.ID), zap.String("title", p.Title))
		},
		catalog.TopicProductReplaced: func(p domain.Product) {
			a.metrics.Inc(MetricProductsReplaced)
			zap.L().Info("product replaced", zap.String("id", p.ID), zap.String("title", p.Title))
		},
		catalog.TopicProductDeleted: func(id string) {
			a.metrics.Inc(MetricProductsDeleted)
			zap.L().Info("product deleted", zap.String("id", id))
		},
	}
	for topic, fn := range subs {
		if err := a.bus.Subscribe(topic, fn); err != nil {
			zap.S().Errorf("subscribe %s: %v", topic, err)
		}
	}
}

// RunAudit counts products, uploads, orphaned files and dangling image
// references. It never deletes anything.
func (a *Application) RunAudit(ctx context.Context) (catalog.AuditReport, error) {
	items, err := a.repo.List(ctx)
	if err != nil {
		return catalog.AuditReport{}, err
	}
	files, err := a.storage.List(ctx)
	if err != nil {
		return catalog.AuditReport{}, err
	}
	report := catalog.Audit(items, files)

	a.metrics.SetGauge(MetricProducts, int64(report.Products))
	a.metrics.SetGauge(MetricUploads, int64(report.Uploads))
	a.metrics.SetGauge(MetricOrphanedFiles, int64(len(report.Orphaned)))
	a.metrics.SetGauge(MetricDanglingImages, int64(len(report.Dangling)))

	zap.L().Info("catalog audit",
		zap.Int("products", report.Products),
		zap.Int("uploads", report.Uploads),
		zap.Int("orphaned", len(report.Orphaned)),
		zap.Int("dangling", len(report.Dangling)))
	return report, nil
}
