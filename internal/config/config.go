package config

import (
	"bufio"
	"errors"
	"fmt"
	"net/mail"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	defaultEnvFile = ".env"
	defaultPort    = "8080"
)

// Mail transports.
const (
	TransportSendmail = "sendmail"
	TransportSMTP     = "smtp"
	TransportLog      = "log"
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Server   ServerConfig
	Site     SiteConfig
	Mail     MailConfig
	Contact  ContactConfig
	LogLevel string
}

// ServerConfig configures HTTP server parameters.
type ServerConfig struct {
	Port              string
	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	RequestTimeout    time.Duration
	ShutdownTimeout   time.Duration
}

// SiteConfig locates the pages and translation bundles.
type SiteConfig struct {
	Dev           bool
	PublicDir     string
	LocalesDir    string
	BundleBaseURL string
	BaseURL       string
}

// MailConfig configures the contact relay's outgoing mail.
type MailConfig struct {
	To           []string
	From         string
	FromName     string
	Transport    string
	SendmailPath string
	SMTPAddr     string
	SMTPUsername string
	SMTPPassword string
}

// ContactConfig bounds contact submissions.
type ContactConfig struct {
	RatePerMinute int
	RateBurst     int
	MaxUpload     int64
}

// rawEnv holds raw env values before defaults are resolved between related keys.
type rawEnv struct {
	Port              string        `env:"SITE_WEB_PORT"`
	PlatformPort      string        `env:"PORT"`
	Dev               bool          `env:"SITE_WEB_DEV"`
	LegacyDev         bool          `env:"DEV"`
	PublicDir         string        `env:"SITE_WEB_PUBLIC_DIR"           envDefault:"public"`
	LocalesDir        string        `env:"SITE_WEB_LOCALES_DIR"          envDefault:"locales"`
	BundleBaseURL     string        `env:"SITE_WEB_BUNDLE_BASE_URL"`
	BaseURL           string        `env:"SITE_WEB_BASE_URL"`
	ReadHeaderTimeout time.Duration `env:"SITE_WEB_READ_HEADER_TIMEOUT"  envDefault:"10s"`
	ReadTimeout       time.Duration `env:"SITE_WEB_READ_TIMEOUT"         envDefault:"15s"`
	WriteTimeout      time.Duration `env:"SITE_WEB_WRITE_TIMEOUT"        envDefault:"30s"`
	IdleTimeout       time.Duration `env:"SITE_WEB_IDLE_TIMEOUT"         envDefault:"60s"`
	RequestTimeout    time.Duration `env:"SITE_WEB_REQUEST_TIMEOUT"      envDefault:"30s"`
	ShutdownTimeout   time.Duration `env:"SITE_WEB_SHUTDOWN_TIMEOUT"     envDefault:"10s"`
	MailTo            []string      `env:"MAIL_TO"                       envDefault:"portugalgeng.comercial@gmail.com, fernando.karakanian12@gmail.com" envSeparator:","`
	MailFrom          string        `env:"MAIL_FROM"                     envDefault:"contato@portugalengenharia.com"`
	MailFromName      string        `env:"MAIL_FROM_NAME"                envDefault:"Portugal Engenharia"`
	MailTransport     string        `env:"MAIL_TRANSPORT"                envDefault:"sendmail"`
	SendmailPath      string        `env:"MAIL_SENDMAIL_PATH"            envDefault:"/usr/sbin/sendmail"`
	SMTPAddr          string        `env:"MAIL_SMTP_ADDR"`
	SMTPUsername      string        `env:"MAIL_SMTP_USERNAME"`
	SMTPPassword      string        `env:"MAIL_SMTP_PASSWORD"`
	RatePerMinute     int           `env:"CONTACT_RATE_PER_MIN"          envDefault:"6"`
	RateBurst         int           `env:"CONTACT_RATE_BURST"            envDefault:"3"`
	MaxUpload         int64         `env:"CONTACT_MAX_UPLOAD"            envDefault:"10485760"`
	LogLevel          string        `env:"LOG_LEVEL"                     envDefault:"info"`
}

// ValidationError is returned when required configuration fields are missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the missing/invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile overrides the .env file path used for local overrides.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithEnvMap injects an explicit key/value map for environment lookups. Values in the map
// take precedence over system environment variables.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv disables reading from the process environment, relying only on provided
// maps and .env files.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// EnvironmentValues returns the effective key/value environment map with precedence
// dotenv < OS env < explicit env map.
func EnvironmentValues(opts ...Option) (map[string]string, error) {
	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	dotEnvValues, err := loadDotEnv(options.envFile)
	if err != nil {
		return nil, err
	}

	values := make(map[string]string)
	merge := func(source map[string]string) {
		for key, value := range source {
			values[key] = value
		}
	}
	merge(dotEnvValues)
	if options.useSystemEnv {
		merge(env.ToMap(os.Environ()))
	}
	merge(options.envMap)
	return values, nil
}

// Load assembles the configuration from defaults, .env overrides and environment variables.
func Load(opts ...Option) (Config, error) {
	values, err := EnvironmentValues(opts...)
	if err != nil {
		return Config{}, err
	}

	var raw rawEnv
	if err := env.ParseWithOptions(&raw, env.Options{Environment: values}); err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}

	port := strings.TrimSpace(raw.Port)
	if port == "" {
		port = strings.TrimSpace(raw.PlatformPort)
	}
	if port == "" {
		port = defaultPort
	}

	cfg := Config{
		Server: ServerConfig{
			Port:              port,
			ReadHeaderTimeout: raw.ReadHeaderTimeout,
			ReadTimeout:       raw.ReadTimeout,
			WriteTimeout:      raw.WriteTimeout,
			IdleTimeout:       raw.IdleTimeout,
			RequestTimeout:    raw.RequestTimeout,
			ShutdownTimeout:   raw.ShutdownTimeout,
		},
		Site: SiteConfig{
			Dev:           raw.Dev || raw.LegacyDev,
			PublicDir:     strings.TrimSpace(raw.PublicDir),
			LocalesDir:    strings.TrimSpace(raw.LocalesDir),
			BundleBaseURL: strings.TrimSpace(raw.BundleBaseURL),
			BaseURL:       strings.TrimRight(strings.TrimSpace(raw.BaseURL), "/"),
		},
		Mail: MailConfig{
			To:           trimList(raw.MailTo),
			From:         strings.TrimSpace(raw.MailFrom),
			FromName:     strings.TrimSpace(raw.MailFromName),
			Transport:    strings.ToLower(strings.TrimSpace(raw.MailTransport)),
			SendmailPath: strings.TrimSpace(raw.SendmailPath),
			SMTPAddr:     strings.TrimSpace(raw.SMTPAddr),
			SMTPUsername: raw.SMTPUsername,
			SMTPPassword: raw.SMTPPassword,
		},
		Contact: ContactConfig{
			RatePerMinute: raw.RatePerMinute,
			RateBurst:     raw.RateBurst,
			MaxUpload:     raw.MaxUpload,
		},
		LogLevel: strings.ToLower(strings.TrimSpace(raw.LogLevel)),
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Addr is the listen address for the configured port.
func (c ServerConfig) Addr() string {
	return ":" + c.Port
}

func validateConfig(cfg Config) error {
	var missing []string

	if _, err := strconv.Atoi(cfg.Server.Port); err != nil {
		missing = append(missing, "Server.Port")
	}
	if cfg.Site.PublicDir == "" {
		missing = append(missing, "Site.PublicDir")
	}
	if cfg.Site.LocalesDir == "" && cfg.Site.BundleBaseURL == "" {
		missing = append(missing, "Site.LocalesDir")
	}
	if len(cfg.Mail.To) == 0 {
		missing = append(missing, "Mail.To")
	}
	for _, to := range cfg.Mail.To {
		if _, err := mail.ParseAddress(to); err != nil {
			missing = append(missing, "Mail.To")
			break
		}
	}
	if _, err := mail.ParseAddress(cfg.Mail.From); err != nil {
		missing = append(missing, "Mail.From")
	}
	switch cfg.Mail.Transport {
	case TransportSendmail:
		if cfg.Mail.SendmailPath == "" {
			missing = append(missing, "Mail.SendmailPath")
		}
	case TransportSMTP:
		if cfg.Mail.SMTPAddr == "" {
			missing = append(missing, "Mail.SMTPAddr")
		}
	case TransportLog:
	default:
		missing = append(missing, "Mail.Transport")
	}
	if cfg.Contact.RatePerMinute < 0 {
		missing = append(missing, "Contact.RatePerMinute")
	}
	if cfg.Contact.RatePerMinute > 0 && cfg.Contact.RateBurst <= 0 {
		missing = append(missing, "Contact.RateBurst")
	}
	if cfg.Contact.MaxUpload <= 0 {
		missing = append(missing, "Contact.MaxUpload")
	}

	if len(missing) > 0 {
		return &ValidationError{fields: missing}
	}
	return nil
}

func trimList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func loadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	file, err := os.Open(absPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: unable to read %s: %w", absPath, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	values := make(map[string]string)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		values[key] = strings.Trim(strings.TrimSpace(value), "\"'")
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("config: failed parsing %s: %w", absPath, err)
	}
	return values, nil
}
