package config

import (
	"fmt"
	"log"
	"net"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type DBConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

// DSN is the gorm/pgx connection string.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Host, c.Port, c.User, c.Password, c.Name,
	)
}

// URL is the same database in URL form, as golang-migrate expects it.
func (c DBConfig) URL() string {
	u := url.URL{
		Scheme:   "pgx5",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, c.Port),
		Path:     "/" + c.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type MQConfig struct {
	URL string `yaml:"url"`
}

type JWTConfig struct {
	Secret      string `yaml:"secret"`
	ExpiryHours int    `yaml:"expiry_hours"`
}

func (c JWTConfig) Expiry() time.Duration {
	return time.Duration(c.ExpiryHours) * time.Hour
}

type LoginConfig struct {
	MaxAttempts    int `yaml:"max_attempts"`
	LockoutMinutes int `yaml:"lockout_minutes"`
}

func (c LoginConfig) Lockout() time.Duration {
	return time.Duration(c.LockoutMinutes) * time.Minute
}

type Config struct {
	DB          DBConfig    `yaml:"db"`
	Redis       RedisConfig `yaml:"redis"`
	MQ          MQConfig    `yaml:"mq"`
	JWT         JWTConfig   `yaml:"jwt"`
	Login       LoginConfig `yaml:"login"`
	ServerPort  string      `yaml:"server_port"`
	LogLevel    string      `yaml:"log_level"`
	AutoMigrate bool        `yaml:"auto_migrate"`
}

func defaults() Config {
	return Config{
		DB: DBConfig{
			Host:     "localhost",
			Port:     "5432",
			User:     "kraken_user",
			Password: "kraken_pass",
			Name:     "kraken_db",
		},
		JWT:        JWTConfig{Secret: "supersecretkey", ExpiryHours: 24},
		Login:      LoginConfig{MaxAttempts: 5, LockoutMinutes: 15},
		ServerPort: "8080",
		LogLevel:   "info",
	}
}

// Load reads .env, then the YAML file named by CONFIG_FILE if set, then
// environment variables. Later sources win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return nil, err
		}
	}
	if err := overrideFromEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("failed to decode config file %s: %w", path, err)
	}
	return nil
}

func overrideFromEnv(cfg *Config) error {
	setString("DB_HOST", &cfg.DB.Host)
	setString("DB_PORT", &cfg.DB.Port)
	setString("DB_USER", &cfg.DB.User)
	setString("DB_PASSWORD", &cfg.DB.Password)
	setString("DB_NAME", &cfg.DB.Name)
	setString("SERVER_PORT", &cfg.ServerPort)
	setString("JWT_SECRET", &cfg.JWT.Secret)
	setString("LOG_LEVEL", &cfg.LogLevel)
	setString("REDIS_ADDR", &cfg.Redis.Addr)
	setString("REDIS_PASSWORD", &cfg.Redis.Password)
	setString("MQ_URL", &cfg.MQ.URL)

	ints := map[string]*int{
		"JWT_EXPIRY_HOURS":      &cfg.JWT.ExpiryHours,
		"REDIS_DB":              &cfg.Redis.DB,
		"LOGIN_MAX_ATTEMPTS":    &cfg.Login.MaxAttempts,
		"LOGIN_LOCKOUT_MINUTES": &cfg.Login.LockoutMinutes,
	}
	for key, dst := range ints {
		if err := setInt(key, dst); err != nil {
			return err
		}
	}

	if value, ok := os.LookupEnv("AUTO_MIGRATE"); ok {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid AUTO_MIGRATE %q: %w", value, err)
		}
		cfg.AutoMigrate = b
	}
	return nil
}

func setString(key string, dst *string) {
	if value, ok := os.LookupEnv(key); ok {
		*dst = value
	}
}

func setInt(key string, dst *int) error {
	value, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	*dst = n
	return nil
}
