package config

import (
	"fmt"
	"os"
)

// Storage drivers.
const (
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

// Mail providers.
const (
	MailSMTP   = "smtp"
	MailResend = "resend"
	MailLog    = "log"
)

// Config holds runtime settings for the invoicer CLI.
//
// Exactly one storage backend and one document sink are used: the sink is
// S3 when S3Bucket is set, otherwise the ExportDir directory.
type Config struct {
	StorageDriver string
	DatabasePath  string
	RedisURL      string
	RedisPrefix   string

	ExportDir   string
	S3Bucket    string
	S3Prefix    string
	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	RowsPerPage int

	MailProvider string
	SMTPAddr     string
	ResendAPIKey string

	LogLevel string
	LogFile  string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.StorageDriver = DriverSQLite
	c.DatabasePath = "invoicer.db"
	c.RedisURL = "redis://localhost:6379/0"
	c.RedisPrefix = "invoicer:"
	c.ExportDir = "exports"
	c.S3Region = "us-east-1"
	c.RowsPerPage = 20
	c.MailProvider = MailLog
	c.SMTPAddr = "smtp.gmail.com:587"
	c.LogLevel = "info"
}

// Validate rejects values no component can run with.
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case DriverSQLite, DriverRedis, DriverMemory:
	default:
		return fmt.Errorf("unknown storage driver %q", c.StorageDriver)
	}
	switch c.MailProvider {
	case MailSMTP, MailLog:
	case MailResend:
		if c.ResendAPIKey == "" {
			return fmt.Errorf("mail provider %q needs a resend api key", c.MailProvider)
		}
	default:
		return fmt.Errorf("unknown mail provider %q", c.MailProvider)
	}
	if c.RowsPerPage <= 0 {
		return fmt.Errorf("rows per page must be positive, got %d", c.RowsPerPage)
	}
	return nil
}

// LoadConfig constructs a Config from args (usually os.Args[1:]): defaults,
// then the JSON file named by -c/-config, then INVOICER_* variables from the
// environment and the .env file, then flags. Later sources take precedence.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, envFileName, os.LookupEnv); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
