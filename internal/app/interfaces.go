package app

import (
	"context"

	"github.com/mobileriadardania/storefront/config"
	"github.com/mobileriadardania/storefront/internal/catalog"
	"github.com/mobileriadardania/storefront/internal/upload"
	"github.com/mobileriadardania/storefront/internal/whatsapp"
	"github.com/mobileriadardania/storefront/pkg/metrics"
	"github.com/robfig/cron/v3"
)

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// CatalogProvider provides the product catalog
type CatalogProvider interface {
	Catalog() *catalog.Service
}

// UploadProvider provides upload storage and the batch uploader
type UploadProvider interface {
	Uploader() *upload.Uploader
	Storage() upload.Storage
}

// ContactProvider provides WhatsApp deep link composition
type ContactProvider interface {
	Links() whatsapp.LinkBuilder
}

// MetricsProvider provides the metrics registry
type MetricsProvider interface {
	Metrics() *metrics.Registry
}

// SchedulerProvider provides task scheduling capability
type SchedulerProvider interface {
	Scheduler() *cron.Cron
}

// AppContext combines all provider interfaces for full application context
// Handlers should depend on specific providers or this combined interface
type AppContext interface {
	ConfigProvider
	CatalogProvider
	UploadProvider
	ContactProvider
	MetricsProvider
	SchedulerProvider

	MigrateDB() error
	InitDb() error
	// RunAudit compares stored uploads with product images and records gauges
	RunAudit(ctx context.Context) (catalog.AuditReport, error)
}
