package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"` // minutes
	} `yaml:"jwt"`

	Email struct {
		SMTPHost     string  `yaml:"smtp_host"`
		SMTPPort     int     `yaml:"smtp_port"`
		SMTPUsername string  `yaml:"smtp_user"`
		SMTPPassword string  `yaml:"smtp_password"`
		FromEmail    string  `yaml:"from_email"`
		FromName     string  `yaml:"from_name"`
		Simulate     bool    `yaml:"simulate"`     // log instead of real SMTP
		SuccessRate  float64 `yaml:"success_rate"` // simulated delivery probability
		SendDelayMS  int     `yaml:"send_delay_ms"`
		DashboardURL string  `yaml:"dashboard_url"`
	} `yaml:"email"`

	Alerts struct {
		CriticalLevel float64 `yaml:"critical_level"` // meters
	} `yaml:"alerts"`

	Workers struct {
		MaintenanceEnabled   bool          `yaml:"maintenance_enabled"`
		MaintenanceInterval  time.Duration `yaml:"maintenance_interval"`
		WeeklyReportEnabled  bool          `yaml:"weekly_report_enabled"`
		WeeklyReportInterval time.Duration `yaml:"weekly_report_interval"`
	} `yaml:"workers"`
}

var AppConfig *Config

// LoadConfig loads configuration. When DATABASE_URL is present in the
// environment (test/CI mode) the config is assembled from env vars;
// otherwise it is read from config/config.yaml (or CONFIG_PATH).
func LoadConfig() {
	var cfg Config

	// .env is optional; ignore a missing file.
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	log.Println("Loading configuration from environment variables (test mode)")

	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	cfg.JWT.TTL = 60

	cfg.Email.SMTPHost = "smtp.test.com"
	cfg.Email.SMTPPort = 587
	cfg.Email.FromEmail = "noreply@floodguard.app"
	cfg.Email.FromName = "FloodGuard"
	cfg.Email.Simulate = true

	applyDefaults(&cfg)
	AppConfig = &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Email.SuccessRate == 0 {
		cfg.Email.SuccessRate = 0.95
	}
	if cfg.Email.SendDelayMS == 0 {
		cfg.Email.SendDelayMS = 1000
	}
	if cfg.Email.DashboardURL == "" {
		cfg.Email.DashboardURL = "https://floodguard.vercel.app"
	}
	if cfg.Alerts.CriticalLevel == 0 {
		cfg.Alerts.CriticalLevel = 2.5
	}
	if cfg.Workers.MaintenanceInterval == 0 {
		cfg.Workers.MaintenanceInterval = 6 * time.Hour
	}
	if cfg.Workers.WeeklyReportInterval == 0 {
		cfg.Workers.WeeklyReportInterval = 7 * 24 * time.Hour
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
