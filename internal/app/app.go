package app

import (
	"context"
	"os"
	"path/filepath"
	"time"
	_ "time/tzdata"

	EventBus "github.com/asaskevich/EventBus"
	"github.com/mobileriadardania/storefront/config"
	"github.com/mobileriadardania/storefront/internal/catalog"
	"github.com/mobileriadardania/storefront/internal/upload"
	"github.com/mobileriadardania/storefront/internal/whatsapp"
	"github.com/mobileriadardania/storefront/pkg/metrics"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Application struct {
	appConfig *config.AppConfig
	repo      catalog.ProductRepository
	catalog   *catalog.Service
	storage   upload.Storage
	uploader  *upload.Uploader
	bus       EventBus.Bus
	metrics   *metrics.Registry
	sched     *cron.Cron
}

// Ensure Application implements all interfaces
var (
	_ ConfigProvider    = (*Application)(nil)
	_ CatalogProvider   = (*Application)(nil)
	_ UploadProvider    = (*Application)(nil)
	_ ContactProvider   = (*Application)(nil)
	_ MetricsProvider   = (*Application)(nil)
	_ SchedulerProvider = (*Application)(nil)
	_ AppContext        = (*Application)(nil)
)

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig {
	return a.appConfig
}

func (a *Application) Catalog() *catalog.Service {
	return a.catalog
}

func (a *Application) Uploader() *upload.Uploader {
	return a.uploader
}

func (a *Application) Storage() upload.Storage {
	return a.storage
}

func (a *Application) Links() whatsapp.LinkBuilder {
	return whatsapp.LinkBuilder{
		ContactPhone: a.appConfig.Contact.Phone,
		InquiryPhone: a.appConfig.Contact.InquiryPhone,
	}
}

func (a *Application) Metrics() *metrics.Registry {
	return a.metrics
}

func (a *Application) Scheduler() *cron.Cron {
	return a.sched
}

// Init sets up logging and opens the catalog store, upload storage and
// metrics. Background jobs start separately with StartBackgroundJobs.
func (a *Application) Init() error {
	cfg := a.appConfig
	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	if err := cfg.InitDirs(); err != nil {
		return err
	}

	logger, err := newLogger(cfg.Logger, cfg.GetLogFile())
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(logger)

	a.metrics, err = metrics.NewRegistry(filepath.Join(cfg.GetDataDir(), "metrics"))
	if err != nil {
		zap.S().Warn("metrics storage unavailable, keeping samples in memory: ", err)
		if a.metrics, err = metrics.NewRegistry(""); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	a.repo, err = openRepository(ctx, cfg)
	if err != nil {
		return err
	}
	zap.S().Infof("catalog store ready, type: %s", cfg.Database.Type)
	if err := a.MigrateDB(); err != nil {
		zap.S().Errorf("catalog migration failed: %v", err)
	}

	a.storage, err = openStorage(ctx, cfg)
	if err != nil {
		return err
	}
	namer, err := upload.NewNamer(cfg.System.NodeID)
	if err != nil {
		return err
	}
	a.uploader = upload.NewUploader(a.storage, namer, cfg.Web.MaxUploadFiles)

	a.bus = EventBus.New()
	a.catalog = catalog.NewService(a.repo, a.bus)
	a.subscribeCatalogEvents()

	a.initJob()
	return nil
}

func newLogger(cfg config.LogConfig, filename string) (*zap.Logger, error) {
	var zapConfig zap.Config
	if cfg.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}
	zapConfig.OutputPaths = []string{"stdout"}

	if !cfg.FileEnable {
		logger, err := zapConfig.Build(zap.AddCaller())
		return logger, errors.Wrap(err, "build logger")
	}

	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return nil, errors.Wrap(err, "create log dir")
	}
	lumberJackLogger := &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    64,
		MaxBackups: 7,
		MaxAge:     7,
		Compress:   false,
	}
	core := zapcore.NewTee(
		zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(lumberJackLogger),
			zapConfig.Level,
		),
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
			zapcore.AddSync(os.Stdout),
			zapConfig.Level,
		),
	)
	return zap.New(core, zap.AddCaller()), nil
}

// StartBackgroundJobs starts the cron scheduler.
func (a *Application) StartBackgroundJobs(ctx context.Context) {
	if a.sched == nil {
		return
	}
	a.sched.Start()
	go func() {
		<-ctx.Done()
		a.sched.Stop()
	}()
}

// Release releases application resources
func (a *Application) Release() {
	if a.sched != nil {
		<-a.sched.Stop().Done()
	}
	if a.repo != nil {
		if err := a.repo.Close(); err != nil {
			zap.L().Warn("close catalog store", zap.Error(err))
		}
	}
	if a.metrics != nil {
		_ = a.metrics.Close()
	}
	_ = zap.L().Sync()
}
