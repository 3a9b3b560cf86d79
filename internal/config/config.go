package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"BreakoutTrader/internal/errors"
)

// scheduleParser accepts six-field specs with seconds and descriptors such as "@every 30s".
var scheduleParser = cron.NewParser(
	cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// ParseSchedule parses a cron spec the way the scheduler interprets it.
func ParseSchedule(spec string) (cron.Schedule, error) {
	return scheduleParser.Parse(spec)
}

// Config holds all application configuration.
type Config struct {
	Trading struct {
		Symbols          []string `yaml:"symbols" validate:"required,min=1,dive,required"`
		NeighborhoodSize int      `yaml:"neighborhood_size" validate:"gte=2"`
		Threshold        float64  `yaml:"threshold" validate:"gt=0,lt=1"`
		StopLoss         float64  `yaml:"stop_loss" validate:"gt=0,lt=1"`
		StopMode         string   `yaml:"stop_mode" validate:"oneof=trailing trailing_with_entry_floor"`
		// Tick is a cron spec for the control loop cadence, e.g. "@every 30s".
		Tick            string `yaml:"tick" validate:"required"`
		DryRun          bool   `yaml:"dry_run"`
		SkipInitialWait bool   `yaml:"skip_initial_wait"`
	} `yaml:"trading"`
	Capital struct {
		Starting       float64 `yaml:"starting" validate:"gt=0"`
		CostRate       float64 `yaml:"cost_rate" validate:"gte=0,lt=1"`
		Policy         string  `yaml:"policy" validate:"oneof=global per_symbol"`
		GlobalLimit    float64 `yaml:"global_limit" validate:"gte=0"`
		SymbolFraction float64 `yaml:"symbol_fraction" validate:"gt=0,lte=1"`
	} `yaml:"capital"`
	Session struct {
		Timezone    string        `yaml:"timezone" validate:"required"`
		ClearBuffer time.Duration `yaml:"clear_buffer" validate:"gte=0"`
		HorizonDays int           `yaml:"horizon_days" validate:"gte=1,lte=30"`
		Recheck     time.Duration `yaml:"recheck" validate:"gte=0"`
		Holidays    []string      `yaml:"holidays"`
		// HoursSource picks the market hours provider: broker or static.
		HoursSource string `yaml:"hours_source" validate:"oneof=broker static"`
	} `yaml:"session"`
	Broker struct {
		BaseURL           string        `yaml:"base_url" validate:"required,url"`
		Timeout           time.Duration `yaml:"timeout" validate:"gt=0"`
		RetryCount        int           `yaml:"retry_count" validate:"gte=0,lte=10"`
		RetryWait         time.Duration `yaml:"retry_wait" validate:"gte=0"`
		RequestsPerSecond float64       `yaml:"requests_per_second" validate:"gte=0"`
	} `yaml:"broker"`
	Credentials struct {
		Source     string `yaml:"source" validate:"oneof=aws env"`
		SecretName string `yaml:"secret_name"`
		Region     string `yaml:"region"`
	} `yaml:"credentials"`
	Quotes struct {
		Source        string `yaml:"source" validate:"oneof=schwab yahoo polygon"`
		PolygonAPIKey string `yaml:"polygon_api_key"`
	} `yaml:"quotes"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Log struct {
		Level        string `yaml:"level" validate:"oneof=debug info warn error"`
		Dir          string `yaml:"dir"`
		MaxSizeMB    int    `yaml:"max_size_mb" validate:"gte=0"`
		MaxBackups   int    `yaml:"max_backups" validate:"gte=0"`
		DailyBackups int    `yaml:"daily_backups" validate:"gte=0"`
	} `yaml:"log"`
	Metrics struct {
		Addr string `yaml:"addr"`
	} `yaml:"metrics"`
	Housekeeping struct {
		RotateCron   string `yaml:"rotate_cron"`
		OptimizeCron string `yaml:"optimize_cron"`
	} `yaml:"housekeeping"`
	Proxy string `yaml:"proxy"`
}

// Load reads .env (if present), then the YAML file, then applies environment
// variable overrides and defaults.
func Load(path string) (*Config, error) {
	// Missing .env is fine.
	_ = godotenv.Load()

	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		c.Telegram.ChatID = v
	}
	if v := os.Getenv("POLYGON_API_KEY"); v != "" {
		c.Quotes.PolygonAPIKey = v
	}
	if v := os.Getenv("SCHWAB_BASE_URL"); v != "" {
		c.Broker.BaseURL = v
	}
	if v := os.Getenv("SECRET_NAME"); v != "" {
		c.Credentials.SecretName = v
	}
	if v := os.Getenv("AWS_REGION"); v != "" {
		c.Credentials.Region = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		c.Database.SQLitePath = v
	}
	if v := os.Getenv("METRICS_ADDR"); v != "" {
		c.Metrics.Addr = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		c.Proxy = v
	}
	if v := os.Getenv("TRADER_SYMBOLS"); v != "" {
		var symbols []string
		for _, s := range strings.Split(v, ",") {
			if s = strings.ToUpper(strings.TrimSpace(s)); s != "" {
				symbols = append(symbols, s)
			}
		}
		c.Trading.Symbols = symbols
	}
	if v := os.Getenv("TRADER_DRY_RUN"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Trading.DryRun = b
		}
	}
}

func (c *Config) applyDefaults() {
	if len(c.Trading.Symbols) == 0 {
		c.Trading.Symbols = []string{"RGTI", "QBTS"}
	}
	if c.Trading.NeighborhoodSize == 0 {
		c.Trading.NeighborhoodSize = 20
	}
	if c.Trading.Threshold == 0 {
		c.Trading.Threshold = 0.02
	}
	if c.Trading.StopLoss == 0 {
		c.Trading.StopLoss = 0.01
	}
	if c.Trading.StopMode == "" {
		c.Trading.StopMode = "trailing_with_entry_floor"
	}
	if c.Trading.Tick == "" {
		c.Trading.Tick = "@every 30s"
	}

	if c.Capital.Starting == 0 {
		c.Capital.Starting = 4000
	}
	if c.Capital.CostRate == 0 {
		c.Capital.CostRate = 0.0005
	}
	if c.Capital.Policy == "" {
		c.Capital.Policy = "per_symbol"
	}
	if c.Capital.SymbolFraction == 0 {
		c.Capital.SymbolFraction = 0.5
	}
	if c.Capital.Policy == "global" && c.Capital.GlobalLimit == 0 {
		c.Capital.GlobalLimit = c.Capital.Starting
	}

	if c.Session.Timezone == "" {
		c.Session.Timezone = "America/New_York"
	}
	if c.Session.ClearBuffer == 0 {
		c.Session.ClearBuffer = 5 * time.Minute
	}
	if c.Session.HorizonDays == 0 {
		c.Session.HorizonDays = 5
	}
	if c.Session.Recheck == 0 {
		c.Session.Recheck = 5 * time.Minute
	}
	if c.Session.HoursSource == "" {
		c.Session.HoursSource = "broker"
	}

	if c.Broker.BaseURL == "" {
		c.Broker.BaseURL = "https://api.schwabapi.com"
	}
	if c.Broker.Timeout == 0 {
		c.Broker.Timeout = 15 * time.Second
	}
	if c.Broker.RetryCount == 0 {
		c.Broker.RetryCount = 3
	}
	if c.Broker.RetryWait == 0 {
		c.Broker.RetryWait = 5 * time.Second
	}
	if c.Broker.RequestsPerSecond == 0 {
		c.Broker.RequestsPerSecond = 2
	}

	if c.Credentials.Source == "" {
		c.Credentials.Source = "aws"
	}
	if c.Credentials.SecretName == "" {
		c.Credentials.SecretName = "SchwabAPI_Credentials"
	}
	if c.Credentials.Region == "" {
		c.Credentials.Region = "us-east-2"
	}
	if c.Quotes.Source == "" {
		c.Quotes.Source = "schwab"
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.MaxSizeMB == 0 {
		c.Log.MaxSizeMB = 5
	}
	if c.Log.MaxBackups == 0 {
		c.Log.MaxBackups = 3
	}
	if c.Log.DailyBackups == 0 {
		c.Log.DailyBackups = 7
	}
	if c.Housekeeping.RotateCron == "" {
		c.Housekeeping.RotateCron = "0 0 0 * * *"
	}
	if c.Housekeeping.OptimizeCron == "" {
		c.Housekeeping.OptimizeCron = "0 30 2 * * *"
	}
}

// Validate checks field ranges and the rules that span fields.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid config", err)
	}

	if c.Capital.Policy == "global" && c.Capital.GlobalLimit <= 0 {
		return errors.New(errors.ErrCodeInvalidConfiguration, "capital.global_limit must be positive for the global policy")
	}
	if c.Quotes.Source == "polygon" && c.Quotes.PolygonAPIKey == "" {
		return errors.New(errors.ErrCodeInvalidConfiguration, "quotes.polygon_api_key is required for the polygon source")
	}
	if c.Credentials.Source == "aws" && c.Credentials.SecretName == "" {
		return errors.New(errors.ErrCodeInvalidConfiguration, "credentials.secret_name is required for the aws source")
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return errors.New(errors.ErrCodeInvalidConfiguration, "telegram.bot_token and telegram.chat_id must be set together")
	}
	for _, spec := range []string{c.Trading.Tick, c.Housekeeping.RotateCron, c.Housekeeping.OptimizeCron} {
		if _, err := ParseSchedule(spec); err != nil {
			return errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "bad cron spec %q", spec)
		}
	}
	if _, err := time.LoadLocation(c.Session.Timezone); err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "bad timezone %q", c.Session.Timezone)
	}
	seen := make(map[string]bool, len(c.Trading.Symbols))
	for _, s := range c.Trading.Symbols {
		if seen[s] {
			return errors.Newf(errors.ErrCodeInvalidConfiguration, "duplicate symbol %s", s)
		}
		seen[s] = true
	}
	return nil
}

// TelegramEnabled reports whether alerts should be sent.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}
