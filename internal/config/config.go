package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const envPrefix = "FEST"

type AppConfig struct {
	API      *APIConfig      `mapstructure:"api"`
	Gin      *GinConfig      `mapstructure:"gin"`
	Postgres *PostgresConfig `mapstructure:"postgres"`
	Auth     *AuthConfig     `mapstructure:"auth"`
	Ledger   *LedgerConfig   `mapstructure:"ledger"`
	Sync     *SyncConfig     `mapstructure:"sync"`
	Archive  *ArchiveConfig  `mapstructure:"archive"`

	v *viper.Viper
}

type APIConfig struct {
	Environment        string        `mapstructure:"environment"`
	Port               string        `mapstructure:"port"`
	BaseURL            string        `mapstructure:"base_url"`
	LogLevel           string        `mapstructure:"log_level"`
	AllowedCORSDomains []string      `mapstructure:"allowed_cors_domains"`
	JWTSigningKey      string        `mapstructure:"jwt_signing_key"`
	JWTTTL             time.Duration `mapstructure:"jwt_ttl"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DB       string `mapstructure:"db"`
	SSLMode  string `mapstructure:"ssl_mode"`
	TimeZone string `mapstructure:"time_zone"`
}

// DSN returns a keyword/value connection string understood by both gorm's
// postgres driver and pgx.
func (c *PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.Host, c.User, c.Password, c.DB, c.Port, c.SSLMode, c.TimeZone,
	)
}

type Account struct {
	Email     string `mapstructure:"email"`
	Password  string `mapstructure:"password"`
	Role      string `mapstructure:"role"`
	CollegeID string `mapstructure:"college_id"`
}

type AuthConfig struct {
	Accounts []Account `mapstructure:"accounts"`
}

type LedgerConfig struct {
	// StrictDeductions re-checks a college's balance inside the write
	// transaction instead of trusting the cached total alone.
	StrictDeductions bool `mapstructure:"strict_deductions"`
}

type SyncConfig struct {
	RefreshInterval      time.Duration `mapstructure:"refresh_interval"`
	ReconnectMaxInterval time.Duration `mapstructure:"reconnect_max_interval"`
}

type ArchiveConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	FestName        string        `mapstructure:"fest_name"`
	Bucket          string        `mapstructure:"bucket"`
	Prefix          string        `mapstructure:"prefix"`
	Region          string        `mapstructure:"region"`
	Endpoint        string        `mapstructure:"endpoint"`
	AccessKeyID     string        `mapstructure:"access_key_id"`
	SecretAccessKey string        `mapstructure:"secret_access_key"`
	Interval        time.Duration `mapstructure:"interval"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.environment", "development")
	v.SetDefault("api.port", "8080")
	v.SetDefault("api.base_url", "localhost:8080")
	v.SetDefault("api.log_level", "info")
	v.SetDefault("api.allowed_cors_domains", []string{"http://localhost:3000"})
	v.SetDefault("api.jwt_signing_key", "")
	v.SetDefault("api.jwt_ttl", 12*time.Hour)
	v.SetDefault("gin.mode", "debug")
	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", "5432")
	v.SetDefault("postgres.user", "postgres")
	v.SetDefault("postgres.password", "")
	v.SetDefault("postgres.db", "fest")
	v.SetDefault("postgres.ssl_mode", "disable")
	v.SetDefault("postgres.time_zone", "UTC")
	v.SetDefault("ledger.strict_deductions", false)
	v.SetDefault("sync.refresh_interval", 5*time.Minute)
	v.SetDefault("sync.reconnect_max_interval", 30*time.Second)
	v.SetDefault("archive.enabled", false)
	v.SetDefault("archive.fest_name", "Ubuntu Fest")
	v.SetDefault("archive.bucket", "")
	v.SetDefault("archive.prefix", "leaderboard")
	v.SetDefault("archive.region", "auto")
	v.SetDefault("archive.endpoint", "")
	v.SetDefault("archive.access_key_id", "")
	v.SetDefault("archive.secret_access_key", "")
	v.SetDefault("archive.interval", 15*time.Minute)
}

// Load reads the YAML file at path. Every key can be overridden from the
// environment, e.g. FEST_API_PORT or FEST_LEDGER_STRICT_DEDUCTIONS.
func Load(path string) (*AppConfig, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("v.ReadInConfig -> %w", err)
	}

	return decode(v)
}

func decode(v *viper.Viper) (*AppConfig, error) {
	conf := &AppConfig{}
	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("v.Unmarshal -> %w", err)
	}
	conf.v = v
	conf.fillSections()

	if err := conf.validate(); err != nil {
		return nil, err
	}

	return conf, nil
}

// fillSections replaces sections missing from the file with empty ones so
// validate and callers never see a nil section.
func (c *AppConfig) fillSections() {
	if c.API == nil {
		c.API = &APIConfig{}
	}
	if c.Gin == nil {
		c.Gin = &GinConfig{}
	}
	if c.Postgres == nil {
		c.Postgres = &PostgresConfig{}
	}
	if c.Auth == nil {
		c.Auth = &AuthConfig{}
	}
	if c.Ledger == nil {
		c.Ledger = &LedgerConfig{}
	}
	if c.Sync == nil {
		c.Sync = &SyncConfig{}
	}
	if c.Archive == nil {
		c.Archive = &ArchiveConfig{}
	}
}

func (c *AppConfig) validate() error {
	if c.API.JWTSigningKey == "" {
		return fmt.Errorf("api.jwt_signing_key is required")
	}
	if len(c.Auth.Accounts) == 0 {
		return fmt.Errorf("auth.accounts must list at least one account")
	}
	if c.Archive.Enabled && c.Archive.Bucket == "" {
		return fmt.Errorf("archive.bucket is required when archive.enabled is set")
	}

	return nil
}

// Watch calls fn with a freshly decoded config each time the file changes.
// Invalid edits are logged and skipped.
func (c *AppConfig) Watch(fn func(*AppConfig)) {
	if c.v == nil {
		return
	}

	c.v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}

		next, err := decode(c.v)
		if err != nil {
			zap.L().Warn("ignoring invalid config change", zap.String("file", e.Name), zap.Error(err))
			return
		}

		zap.L().Info("config file changed", zap.String("file", e.Name))
		fn(next)
	})
	c.v.WatchConfig()
}
