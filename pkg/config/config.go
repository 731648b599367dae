package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rahmadfadli/silahan-backend/pkg/enums"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	Tokens       TokenConfig
	Mail         MailConfig
	DocGen       DocGenConfig
	Lifecycle    LifecycleConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if err := cfg.Lifecycle.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SILAHAN_APP_ENV" required:"true"`
	Port         string `envconfig:"SILAHAN_APP_PORT" required:"true"`
	BaseURL      string `envconfig:"SILAHAN_APP_BASE_URL" default:"http://localhost:8080"`
	LogLevel     string `envconfig:"SILAHAN_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SILAHAN_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"SILAHAN_DB_DSN"`

	Host     string `envconfig:"SILAHAN_DB_HOST"`
	Port     int    `envconfig:"SILAHAN_DB_PORT" default:"5432"`
	User     string `envconfig:"SILAHAN_DB_USER"`
	Password string `envconfig:"SILAHAN_DB_PASSWORD"`
	Name     string `envconfig:"SILAHAN_DB_NAME"`
	SSLMode  string `envconfig:"SILAHAN_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SILAHAN_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SILAHAN_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SILAHAN_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SILAHAN_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SILAHAN_REDIS_URL" required:"true"`
	Password     string        `envconfig:"SILAHAN_REDIS_PASSWORD"`
	DB           int           `envconfig:"SILAHAN_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SILAHAN_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SILAHAN_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SILAHAN_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SILAHAN_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SILAHAN_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"SILAHAN_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"SILAHAN_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"SILAHAN_JWT_EXPIRATION_MINUTES" default:"1440"`
}

// Expiration returns the access token lifetime.
func (j JWTConfig) Expiration() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"SILAHAN_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"SILAHAN_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"SILAHAN_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"SILAHAN_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"SILAHAN_ARGON_KEY_LEN" default:"32"`
}

// TokenConfig governs the hashed one-time tokens for activation and password reset.
type TokenConfig struct {
	ActivationTTL time.Duration `envconfig:"SILAHAN_ACTIVATION_TOKEN_TTL" default:"1h"`
	ResetTTL      time.Duration `envconfig:"SILAHAN_RESET_TOKEN_TTL" default:"1h"`
}

type MailConfig struct {
	Host     string `envconfig:"SILAHAN_MAIL_HOST"`
	Port     int    `envconfig:"SILAHAN_MAIL_PORT" default:"587"`
	Username string `envconfig:"SILAHAN_MAIL_USERNAME"`
	Password string `envconfig:"SILAHAN_MAIL_PASSWORD"`
	From     string `envconfig:"SILAHAN_MAIL_FROM" default:"no-reply@silahan.go.id"`
}

// Enabled reports whether outbound mail is configured at all.
func (m MailConfig) Enabled() bool {
	return m.Host != ""
}

// DocGenConfig wires the letter-generation pipeline.
type DocGenConfig struct {
	TemplateDir   string        `envconfig:"SILAHAN_DOCGEN_TEMPLATE_DIR" default:"templates"`
	UploadBaseURL string        `envconfig:"SILAHAN_DOCGEN_UPLOAD_BASE_URL" required:"true"`
	UploadTimeout time.Duration `envconfig:"SILAHAN_DOCGEN_UPLOAD_TIMEOUT" default:"30s"`
	RenderTimeout time.Duration `envconfig:"SILAHAN_DOCGEN_RENDER_TIMEOUT" default:"60s"`
	ApproverName  string        `envconfig:"SILAHAN_DOCGEN_APPROVER_NAME" required:"true"`
	LetterCity    string        `envconfig:"SILAHAN_DOCGEN_LETTER_CITY" default:"Balikpapan"`
}

// LifecycleConfig selects the authoritative rejection behavior. Source history
// disagreed on whether a rejected document fails the whole submission or parks
// it for revision, so the rule is explicit configuration.
type LifecycleConfig struct {
	RejectionPolicy string `envconfig:"SILAHAN_REJECTION_POLICY" default:"menunggu_perbaikan"`
}

// Policy returns the parsed rejection policy.
func (l LifecycleConfig) Policy() enums.RejectionPolicy {
	policy, err := enums.ParseRejectionPolicy(l.RejectionPolicy)
	if err != nil {
		return enums.RejectionPolicyAwaitRevision
	}
	return policy
}

func (l LifecycleConfig) validate() error {
	if _, err := enums.ParseRejectionPolicy(l.RejectionPolicy); err != nil {
		return fmt.Errorf("invalid %s: %w", EnvRejectionPolicy, err)
	}
	return nil
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"SILAHAN_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
