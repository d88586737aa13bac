package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"optiwatt/internal/logger"

	"github.com/spf13/viper"
)

// Config is the typed view over viper settings.
type Config struct {
	Port         string
	WriteTimeout time.Duration
	LogLevel     string
	DBPath       string

	Auth      AuthConfig
	AI        AIConfig
	Dashboard DashboardConfig
	Hierarchy HierarchyConfig
	Reports   ReportsConfig
	Delivery  DeliveryConfig
}

type AuthConfig struct {
	SigningKey string
	TokenTTL   time.Duration
	LoginDelay time.Duration
}

type AIConfig struct {
	BaseURL string
	Model   string
	APIKey  string
	Timeout time.Duration // 0 means no client-side timeout
}

type DashboardConfig struct {
	RatePerKWh     float64
	StreamInterval time.Duration
}

type HierarchyConfig struct {
	DeletionTTL time.Duration
}

type ReportsConfig struct {
	ExpertDelay time.Duration
}

type DeliveryConfig struct {
	Provider  string // simulated | aws
	Delay     time.Duration
	Region    string
	Bucket    string
	TopicARN  string
	URLExpiry time.Duration
}

const envPrefix = "OPTIWATT"

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("server.write_timeout", 45*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("db.path", "optiwatt.db")

	v.SetDefault("auth.signing_key", "optiwatt-dev-signing-key")
	v.SetDefault("auth.token_ttl", 12*time.Hour)
	v.SetDefault("auth.login_delay", 1200*time.Millisecond)

	v.SetDefault("ai.base_url", "https://generativelanguage.googleapis.com")
	v.SetDefault("ai.model", "gemini-3-flash-preview")
	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.timeout", 30*time.Second)

	v.SetDefault("dashboard.rate_per_kwh", 0.15)
	v.SetDefault("dashboard.stream_interval", time.Second)

	v.SetDefault("hierarchy.deletion_ttl", 5*time.Minute)

	v.SetDefault("reports.expert_delay", 2*time.Second)

	v.SetDefault("delivery.provider", "simulated")
	v.SetDefault("delivery.delay", 1500*time.Millisecond)
	v.SetDefault("delivery.aws.region", "us-east-1")
	v.SetDefault("delivery.aws.bucket", "")
	v.SetDefault("delivery.aws.topic_arn", "")
	v.SetDefault("delivery.aws.url_expiry", time.Hour)
}

// Load reads configs/config.yml (or config.yml in any of paths) when present,
// then applies OPTIWATT_* environment overrides. A missing file is not an error.
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yml")
	if len(paths) == 0 {
		paths = []string{"configs"}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// the generative AI key is conventionally exported as API_KEY
	_ = v.BindEnv("ai.api_key", envPrefix+"_AI_API_KEY", "API_KEY")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := fromViper(v)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Port:         v.GetString("port"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		LogLevel:     v.GetString("log.level"),
		DBPath:       v.GetString("db.path"),
		Auth: AuthConfig{
			SigningKey: v.GetString("auth.signing_key"),
			TokenTTL:   v.GetDuration("auth.token_ttl"),
			LoginDelay: v.GetDuration("auth.login_delay"),
		},
		AI: AIConfig{
			BaseURL: strings.TrimRight(v.GetString("ai.base_url"), "/"),
			Model:   v.GetString("ai.model"),
			APIKey:  v.GetString("ai.api_key"),
			Timeout: v.GetDuration("ai.timeout"),
		},
		Dashboard: DashboardConfig{
			RatePerKWh:     v.GetFloat64("dashboard.rate_per_kwh"),
			StreamInterval: v.GetDuration("dashboard.stream_interval"),
		},
		Hierarchy: HierarchyConfig{
			DeletionTTL: v.GetDuration("hierarchy.deletion_ttl"),
		},
		Reports: ReportsConfig{
			ExpertDelay: v.GetDuration("reports.expert_delay"),
		},
		Delivery: DeliveryConfig{
			Provider:  strings.ToLower(strings.TrimSpace(v.GetString("delivery.provider"))),
			Delay:     v.GetDuration("delivery.delay"),
			Region:    v.GetString("delivery.aws.region"),
			Bucket:    v.GetString("delivery.aws.bucket"),
			TopicARN:  v.GetString("delivery.aws.topic_arn"),
			URLExpiry: v.GetDuration("delivery.aws.url_expiry"),
		},
	}
}

var (
	errEmptySigningKey = errors.New("auth.signing_key must not be empty")
	errNegativeRate    = errors.New("dashboard.rate_per_kwh must not be negative")
)

func (c *Config) validate() error {
	if strings.TrimSpace(c.Auth.SigningKey) == "" {
		return errEmptySigningKey
	}
	if c.Dashboard.RatePerKWh < 0 {
		return errNegativeRate
	}
	if !logger.ValidLevel(c.LogLevel) {
		return fmt.Errorf("unknown log.level %q", c.LogLevel)
	}
	switch c.Delivery.Provider {
	case "simulated":
	case "aws":
		if c.Delivery.Bucket == "" || c.Delivery.TopicARN == "" {
			return errors.New("delivery.provider=aws requires delivery.aws.bucket and delivery.aws.topic_arn")
		}
	default:
		return fmt.Errorf("unknown delivery.provider %q", c.Delivery.Provider)
	}
	return nil
}
