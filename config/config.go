package config

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// SysConfig system config
type SysConfig struct {
	Appid         string `yaml:"appid"`
	Location      string `yaml:"location"`
	Workdir       string `yaml:"workdir"`
	Debug         bool   `yaml:"debug"`
	NodeID        int64  `yaml:"node_id"`        // snowflake node for upload names, 0..1023
	AuditSchedule string `yaml:"audit_schedule"` // cron spec for the catalog audit job, empty disables it
}

// WebConfig web server config
type WebConfig struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	AllowedOrigins string `yaml:"allowed_origins"` // regular expression matched against the Origin header
	BodyLimit      string `yaml:"body_limit"`      // echo body limit notation, e.g. 50M
	MaxUploadFiles int    `yaml:"max_upload_files"`
}

// DBConfig database config
type DBConfig struct {
	Type     string `yaml:"type"` // bolt, mongodb, postgres
	URL      string `yaml:"url"`  // mongodb uri or postgres dsn
	Name     string `yaml:"name"` // mongodb database name
	MaxConn  int    `yaml:"max_conn"`
	IdleConn int    `yaml:"idle_conn"`
	Debug    bool   `yaml:"debug"`
}

// S3Config object storage config for uploads
type S3Config struct {
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	Prefix          string `yaml:"prefix"`
}

// UploadConfig upload storage config
type UploadConfig struct {
	Backend string   `yaml:"backend"` // local, s3
	Dir     string   `yaml:"dir"`     // local directory, relative paths resolve against the workdir
	S3      S3Config `yaml:"s3"`
}

// ContactConfig whatsapp numbers used for deep links
type ContactConfig struct {
	Phone        string `yaml:"phone"`         // receives contact form messages
	InquiryPhone string `yaml:"inquiry_phone"` // receives product purchase inquiries
}

// LogConfig logger config
type LogConfig struct {
	Mode       string `yaml:"mode"`
	FileEnable bool   `yaml:"file_enable"`
	Filename   string `yaml:"filename"` // relative names live under the log dir
}

type AppConfig struct {
	System   SysConfig     `yaml:"system"`
	Web      WebConfig     `yaml:"web"`
	Database DBConfig      `yaml:"database"`
	Upload   UploadConfig  `yaml:"upload"`
	Contact  ContactConfig `yaml:"contact"`
	Logger   LogConfig     `yaml:"logger"`
}

// GetDataDir returns the directory holding embedded databases and metrics.
func (c *AppConfig) GetDataDir() string {
	return path.Join(c.System.Workdir, "data")
}

// GetLogDir returns the log directory under the workdir.
func (c *AppConfig) GetLogDir() string {
	return path.Join(c.System.Workdir, "logs")
}

// GetLogFile resolves the log file name against the log directory. An empty
// name falls back to storefront.log.
func (c *AppConfig) GetLogFile() string {
	name := c.Logger.Filename
	if name == "" {
		name = "storefront.log"
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.GetLogDir(), name)
}

// GetUploadDir resolves the local upload directory.
func (c *AppConfig) GetUploadDir() string {
	if filepath.IsAbs(c.Upload.Dir) {
		return c.Upload.Dir
	}
	return filepath.Join(c.System.Workdir, c.Upload.Dir)
}

// InitDirs creates the working directories the application writes to.
func (c *AppConfig) InitDirs() error {
	dirs := []string{c.GetDataDir(), c.GetLogDir()}
	if c.Upload.Backend != "s3" {
		dirs = append(dirs, c.GetUploadDir())
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "create directory %s", dir)
		}
	}
	return nil
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:         "Storefront",
		Location:      "Europe/Belgrade",
		Workdir:       "/var/storefront",
		Debug:         false,
		NodeID:        1,
		AuditSchedule: "@every 10m",
	},
	Web: WebConfig{
		Host:           "0.0.0.0",
		Port:           5000,
		AllowedOrigins: `^http://localhost(:[0-9]+)?$`,
		BodyLimit:      "50M",
		MaxUploadFiles: 10,
	},
	Database: DBConfig{
		Type:     "bolt",
		URL:      "mongodb://localhost:27017",
		Name:     "mobileriadardania",
		MaxConn:  50,
		IdleConn: 10,
	},
	Upload: UploadConfig{
		Backend: "local",
		Dir:     "uploads",
		S3: S3Config{
			Endpoint: "http://localhost:9000",
			Bucket:   "product-images",
			Region:   "us-east-1",
		},
	},
	Contact: ContactConfig{
		Phone:        "38348222209",
		InquiryPhone: "+38349514788",
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "storefront.log",
	},
}

// LoadConfig reads the YAML file at cfile (when it exists) on top of the
// defaults and then applies environment overrides.
func LoadConfig(cfile string) (*AppConfig, error) {
	cfg := *DefaultAppConfig
	if cfile != "" {
		data, err := os.ReadFile(cfile)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, errors.Wrapf(err, "parse config %s", cfile)
			}
		case !os.IsNotExist(err):
			return nil, errors.Wrapf(err, "read config %s", cfile)
		}
	}
	applyEnv(&cfg)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *AppConfig) validate() error {
	switch c.Database.Type {
	case "bolt", "mongodb", "postgres":
	default:
		return errors.Errorf("unsupported database type %q", c.Database.Type)
	}
	switch c.Upload.Backend {
	case "local", "s3":
	default:
		return errors.Errorf("unsupported upload backend %q", c.Upload.Backend)
	}
	if c.System.NodeID < 0 || c.System.NodeID > 1023 {
		return errors.Errorf("system.node_id must be within 0..1023, got %d", c.System.NodeID)
	}
	if c.Web.MaxUploadFiles <= 0 {
		c.Web.MaxUploadFiles = 10
	}
	return nil
}

func setEnvValue(name string, val *string) {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		*val = v
	}
}

func setEnvBoolValue(name string, val *bool) {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		*val = cast.ToBool(v)
	}
}

func setEnvIntValue(name string, val *int) {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		if n, err := cast.ToIntE(v); err == nil {
			*val = n
		}
	}
}

func setEnvInt64Value(name string, val *int64) {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		if n, err := cast.ToInt64E(v); err == nil {
			*val = n
		}
	}
}

func applyEnv(cfg *AppConfig) {
	setEnvValue("STOREFRONT_SYSTEM_WORKER_DIR", &cfg.System.Workdir)
	setEnvValue("STOREFRONT_SYSTEM_LOCATION", &cfg.System.Location)
	setEnvBoolValue("STOREFRONT_SYSTEM_DEBUG", &cfg.System.Debug)
	setEnvInt64Value("STOREFRONT_SYSTEM_NODE_ID", &cfg.System.NodeID)
	setEnvValue("STOREFRONT_SYSTEM_AUDIT_SCHEDULE", &cfg.System.AuditSchedule)

	setEnvValue("STOREFRONT_WEB_HOST", &cfg.Web.Host)
	setEnvIntValue("STOREFRONT_WEB_PORT", &cfg.Web.Port)
	setEnvValue("STOREFRONT_WEB_ALLOWED_ORIGINS", &cfg.Web.AllowedOrigins)
	setEnvValue("STOREFRONT_WEB_BODY_LIMIT", &cfg.Web.BodyLimit)
	setEnvIntValue("STOREFRONT_WEB_MAX_UPLOAD_FILES", &cfg.Web.MaxUploadFiles)

	setEnvValue("STOREFRONT_DB_TYPE", &cfg.Database.Type)
	// kept for deployments that still export the variable used by the node service
	setEnvValue("MONGODB_URI", &cfg.Database.URL)
	setEnvValue("STOREFRONT_DB_URL", &cfg.Database.URL)
	setEnvValue("STOREFRONT_DB_NAME", &cfg.Database.Name)
	setEnvIntValue("STOREFRONT_DB_MAX_CONN", &cfg.Database.MaxConn)
	setEnvIntValue("STOREFRONT_DB_IDLE_CONN", &cfg.Database.IdleConn)
	setEnvBoolValue("STOREFRONT_DB_DEBUG", &cfg.Database.Debug)

	setEnvValue("STOREFRONT_UPLOAD_BACKEND", &cfg.Upload.Backend)
	setEnvValue("STOREFRONT_UPLOAD_DIR", &cfg.Upload.Dir)
	setEnvValue("STOREFRONT_S3_ENDPOINT", &cfg.Upload.S3.Endpoint)
	setEnvValue("STOREFRONT_S3_ACCESS_KEY_ID", &cfg.Upload.S3.AccessKeyID)
	setEnvValue("STOREFRONT_S3_SECRET_ACCESS_KEY", &cfg.Upload.S3.SecretAccessKey)
	setEnvValue("STOREFRONT_S3_BUCKET", &cfg.Upload.S3.Bucket)
	setEnvValue("STOREFRONT_S3_REGION", &cfg.Upload.S3.Region)
	setEnvValue("STOREFRONT_S3_PREFIX", &cfg.Upload.S3.Prefix)

	setEnvValue("STOREFRONT_CONTACT_PHONE", &cfg.Contact.Phone)
	setEnvValue("STOREFRONT_CONTACT_INQUIRY_PHONE", &cfg.Contact.InquiryPhone)

	setEnvValue("STOREFRONT_LOGGER_MODE", &cfg.Logger.Mode)
	setEnvBoolValue("STOREFRONT_LOGGER_FILE_ENABLE", &cfg.Logger.FileEnable)
	setEnvValue("STOREFRONT_LOGGER_FILENAME", &cfg.Logger.Filename)
}
