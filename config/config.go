package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Mail providers
const (
	MailProviderAPI  = "api"
	MailProviderSMTP = "smtp"
	MailProviderLog  = "log"
)

// Config holds all application configuration
//
//nolint:govet // Field alignment optimization would reduce readability
type Config struct {
	Server        ServerConfig
	Logging       LoggingConfig
	Observability ObservabilityConfig
	Profiling     ProfilingConfig
	Mail          MailConfig
	ReCAPTCHA     ReCAPTCHAConfig
	Wizard        WizardConfig
	Datasheets    DatasheetStorageConfig
	EventTriggers EventTriggersConfig
	RateLimit     RateLimitConfig
}

type ServerConfig struct {
	Port           string
	GinMode        string
	AppEnv         string
	BaseURL        string
	AllowedOrigins []string
	DefaultLocale  string
}

type LoggingConfig struct {
	Level      string
	Dir        string
	MaxSizeMB  int
	MaxBackups int
}

type ObservabilityConfig struct {
	ExporterEndpoint  string
	ServiceName       string
	ServiceNamespace  string
	ServiceVersion    string
	ServiceInstanceID string
	// MetricsToken protects /api/metrics when set
	MetricsToken string
}

type ProfilingConfig struct {
	Enabled               bool
	Endpoint              string
	AppName               string
	SampleTypes           string
	UploadIntervalSeconds int
}

type MailConfig struct {
	Provider         string
	APIURL           string
	APIKey           string
	SMTPHost         string
	SMTPPort         int
	SMTPUsername     string
	SMTPPassword     string
	From             string
	FromName         string
	QuoteRecipient   string
	ContactRecipient string
	SendCustomerAck  bool
	TimeoutSeconds   int
}

type ReCAPTCHAConfig struct {
	SecretKey string
	SiteKey   string
}

// Enabled reports whether the contact form requires a captcha
func (r ReCAPTCHAConfig) Enabled() bool {
	return r.SecretKey != ""
}

type WizardConfig struct {
	JWTSecret          string
	JWTIssuer          string
	SessionTTLMinutes  int
	MaxSessions        int
	CookieDomain       string
	CookieSecure       bool
	SubmitTimeoutSecs  int
	CleanupIntervalMin int
}

// DefaultSubmitTimeout bounds a quote submission when WIZARD_SUBMIT_TIMEOUT_SECONDS is unset
const DefaultSubmitTimeout = 30 * time.Second

// SubmitTimeout is how long a quote submission may wait on the mail provider
func (w WizardConfig) SubmitTimeout() time.Duration {
	if w.SubmitTimeoutSecs > 0 {
		return time.Duration(w.SubmitTimeoutSecs) * time.Second
	}
	return DefaultSubmitTimeout
}

type DatasheetStorageConfig struct {
	AccessKeyID      string
	SecretAccessKey  string
	BucketName       string
	Endpoint         string
	Region           string
	PublicBaseURL    string
	PresignTTLMinute int
}

// UsesBucket reports whether technical sheets are served from a private bucket
func (d DatasheetStorageConfig) UsesBucket() bool {
	return d.BucketName != ""
}

type EventTriggersConfig struct {
	QuoteSubmittedTriggerURL   string
	ContactSubmittedTriggerURL string
}

type RateLimitConfig struct {
	SubmitPerMinute  int
	GeneralPerSecond int
	GeneralBurst     int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("BASE_URL", "https://radshield.fr")
	v.SetDefault("ALLOWED_CORS_ORIGINS", "https://radshield.fr,https://www.radshield.fr")
	v.SetDefault("DEFAULT_LOCALE", "fr")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_DIR", "/app/logs")
	v.SetDefault("LOG_MAX_SIZE_MB", 100)
	v.SetDefault("LOG_MAX_BACKUPS", 5)
	v.SetDefault("O11Y_EXPORTER_ENDPOINT", "alloy:4318") // OTLP over HTTP
	v.SetDefault("O11Y_SERVICE_NAME", "radshield-web")
	v.SetDefault("O11Y_SERVICE_NAMESPACE", "radshield")
	v.SetDefault("O11Y_SERVICE_VERSION", "1.0.0")
	v.SetDefault("O11Y_PROFILING_ENABLED", false)
	v.SetDefault("O11Y_PROFILING_APP_NAME", "radshield-web")
	v.SetDefault("O11Y_PROFILING_SAMPLE_TYPES", "cpu,alloc_space,alloc_objects,goroutines,mutex,block")
	v.SetDefault("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS", 15)

	v.SetDefault("MAIL_PROVIDER", MailProviderAPI)
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("MAIL_FROM_NAME", "RadShield")
	v.SetDefault("SEND_CUSTOMER_ACK", true)
	v.SetDefault("MAIL_TIMEOUT_SECONDS", 15)

	// Wizard session defaults
	v.SetDefault("WIZARD_JWT_ISSUER", "radshield-web")
	v.SetDefault("WIZARD_SESSION_TTL_MINUTES", 120)
	v.SetDefault("WIZARD_MAX_SESSIONS", 50000)
	v.SetDefault("WIZARD_SUBMIT_TIMEOUT_SECONDS", 30)
	v.SetDefault("WIZARD_CLEANUP_INTERVAL_MINUTES", 10)
	v.SetDefault("COOKIE_DOMAIN", "")
	v.SetDefault("COOKIE_SECURE", true)

	v.SetDefault("DATASHEET_STORAGE_REGION", "eu-west-3")
	v.SetDefault("DATASHEET_PUBLIC_BASE_URL", "/static")
	v.SetDefault("DATASHEET_PRESIGN_TTL_MINUTES", 15)

	v.SetDefault("RATE_LIMIT_SUBMIT_PER_MINUTE", 5)
	v.SetDefault("RATE_LIMIT_GENERAL_PER_SECOND", 20)
	v.SetDefault("RATE_LIMIT_GENERAL_BURST", 40)

	// Automatically read environment variables
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read from .env file if it exists
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	_ = v.ReadInConfig() //nolint:errcheck // Ignore error if .env file doesn't exist

	cfg := &Config{
		Server: ServerConfig{
			Port:           v.GetString("PORT"),
			GinMode:        v.GetString("GIN_MODE"),
			AppEnv:         v.GetString("APP_ENV"),
			BaseURL:        strings.TrimRight(v.GetString("BASE_URL"), "/"),
			AllowedOrigins: splitList(v.GetString("ALLOWED_CORS_ORIGINS")),
			DefaultLocale:  strings.ToLower(v.GetString("DEFAULT_LOCALE")),
		},
		Logging: LoggingConfig{
			Level:      v.GetString("LOG_LEVEL"),
			Dir:        v.GetString("LOG_DIR"),
			MaxSizeMB:  v.GetInt("LOG_MAX_SIZE_MB"),
			MaxBackups: v.GetInt("LOG_MAX_BACKUPS"),
		},
		Observability: ObservabilityConfig{
			ExporterEndpoint:  v.GetString("O11Y_EXPORTER_ENDPOINT"),
			ServiceName:       v.GetString("O11Y_SERVICE_NAME"),
			ServiceNamespace:  v.GetString("O11Y_SERVICE_NAMESPACE"),
			ServiceVersion:    v.GetString("O11Y_SERVICE_VERSION"),
			ServiceInstanceID: v.GetString("SERVICE_INSTANCE_ID"),
			MetricsToken:      v.GetString("METRICS_AUTH_TOKEN"),
		},
		Profiling: ProfilingConfig{
			Enabled:               v.GetBool("O11Y_PROFILING_ENABLED"),
			Endpoint:              v.GetString("O11Y_PROFILING_ENDPOINT"),
			AppName:               v.GetString("O11Y_PROFILING_APP_NAME"),
			SampleTypes:           v.GetString("O11Y_PROFILING_SAMPLE_TYPES"),
			UploadIntervalSeconds: v.GetInt("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS"),
		},
		Mail: MailConfig{
			Provider:         strings.ToLower(v.GetString("MAIL_PROVIDER")),
			APIURL:           v.GetString("MAIL_API_URL"),
			APIKey:           v.GetString("MAIL_API_KEY"),
			SMTPHost:         v.GetString("SMTP_HOST"),
			SMTPPort:         v.GetInt("SMTP_PORT"),
			SMTPUsername:     v.GetString("SMTP_USERNAME"),
			SMTPPassword:     v.GetString("SMTP_PASSWORD"),
			From:             v.GetString("MAIL_FROM"),
			FromName:         v.GetString("MAIL_FROM_NAME"),
			QuoteRecipient:   v.GetString("QUOTE_RECIPIENT"),
			ContactRecipient: v.GetString("CONTACT_RECIPIENT"),
			SendCustomerAck:  v.GetBool("SEND_CUSTOMER_ACK"),
			TimeoutSeconds:   v.GetInt("MAIL_TIMEOUT_SECONDS"),
		},
		ReCAPTCHA: ReCAPTCHAConfig{
			SecretKey: v.GetString("RECAPTCHA_V2_SECRET_KEY"),
			SiteKey:   v.GetString("RECAPTCHA_V2_SITE_KEY"),
		},
		Wizard: WizardConfig{
			JWTSecret:          v.GetString("WIZARD_JWT_SECRET"),
			JWTIssuer:          v.GetString("WIZARD_JWT_ISSUER"),
			SessionTTLMinutes:  v.GetInt("WIZARD_SESSION_TTL_MINUTES"),
			MaxSessions:        v.GetInt("WIZARD_MAX_SESSIONS"),
			CookieDomain:       v.GetString("COOKIE_DOMAIN"),
			CookieSecure:       v.GetBool("COOKIE_SECURE"),
			SubmitTimeoutSecs:  v.GetInt("WIZARD_SUBMIT_TIMEOUT_SECONDS"),
			CleanupIntervalMin: v.GetInt("WIZARD_CLEANUP_INTERVAL_MINUTES"),
		},
		Datasheets: DatasheetStorageConfig{
			AccessKeyID:      v.GetString("DATASHEET_STORAGE_ACCESS_KEY_ID"),
			SecretAccessKey:  v.GetString("DATASHEET_STORAGE_SECRET_ACCESS_KEY"),
			BucketName:       v.GetString("DATASHEET_STORAGE_BUCKET_NAME"),
			Endpoint:         v.GetString("DATASHEET_STORAGE_ENDPOINT"),
			Region:           v.GetString("DATASHEET_STORAGE_REGION"),
			PublicBaseURL:    strings.TrimRight(v.GetString("DATASHEET_PUBLIC_BASE_URL"), "/"),
			PresignTTLMinute: v.GetInt("DATASHEET_PRESIGN_TTL_MINUTES"),
		},
		EventTriggers: EventTriggersConfig{
			QuoteSubmittedTriggerURL:   v.GetString("QUOTE_SUBMITTED_TRIGGER_URL"),
			ContactSubmittedTriggerURL: v.GetString("CONTACT_SUBMITTED_TRIGGER_URL"),
		},
		RateLimit: RateLimitConfig{
			SubmitPerMinute:  v.GetInt("RATE_LIMIT_SUBMIT_PER_MINUTE"),
			GeneralPerSecond: v.GetInt("RATE_LIMIT_GENERAL_PER_SECOND"),
			GeneralBurst:     v.GetInt("RATE_LIMIT_GENERAL_BURST"),
		},
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func splitList(s string) []string {
	out := []string{}
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	// Server configuration
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.Server.BaseURL == "" {
		return fmt.Errorf("BASE_URL is required")
	}
	if len(c.Server.AllowedOrigins) == 0 {
		return fmt.Errorf("ALLOWED_CORS_ORIGINS is required")
	}
	if c.Server.DefaultLocale != "fr" && c.Server.DefaultLocale != "en" {
		return fmt.Errorf("DEFAULT_LOCALE must be fr or en, got %q", c.Server.DefaultLocale)
	}

	// Wizard session
	if c.Wizard.JWTSecret == "" {
		return fmt.Errorf("WIZARD_JWT_SECRET is required")
	}
	if c.Wizard.SessionTTLMinutes <= 0 {
		return fmt.Errorf("WIZARD_SESSION_TTL_MINUTES must be positive")
	}

	// Mail
	if c.Mail.QuoteRecipient == "" {
		return fmt.Errorf("QUOTE_RECIPIENT is required")
	}
	switch c.Mail.Provider {
	case MailProviderAPI:
		if c.Mail.APIURL == "" || c.Mail.APIKey == "" {
			return fmt.Errorf("MAIL_API_URL and MAIL_API_KEY are required for the api mail provider")
		}
	case MailProviderSMTP:
		if c.Mail.SMTPHost == "" {
			return fmt.Errorf("SMTP_HOST is required for the smtp mail provider")
		}
	case MailProviderLog:
		if c.IsProduction() {
			return fmt.Errorf("the log mail provider cannot be used in production")
		}
	default:
		return fmt.Errorf("unknown MAIL_PROVIDER %q", c.Mail.Provider)
	}
	if c.Mail.Provider != MailProviderLog && c.Mail.From == "" {
		return fmt.Errorf("MAIL_FROM is required")
	}

	// Datasheet bucket credentials come as a pair
	if c.Datasheets.UsesBucket() && (c.Datasheets.AccessKeyID == "" || c.Datasheets.SecretAccessKey == "") {
		return fmt.Errorf("DATASHEET_STORAGE_ACCESS_KEY_ID and DATASHEET_STORAGE_SECRET_ACCESS_KEY are required when a bucket is set")
	}

	if c.Profiling.Enabled && c.Profiling.Endpoint == "" {
		return fmt.Errorf("O11Y_PROFILING_ENDPOINT is required when profiling is enabled")
	}

	return nil
}

// ContactRecipient falls back to the quote inbox
func (c *Config) ContactRecipient() string {
	if c.Mail.ContactRecipient != "" {
		return c.Mail.ContactRecipient
	}
	return c.Mail.QuoteRecipient
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "development" || c.Server.GinMode == "debug"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.AppEnv == "production"
}
