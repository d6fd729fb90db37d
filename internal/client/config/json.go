package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/easyinvoice/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields tell "absent" apart from zero values, so a file only overrides
// what it mentions.
type JsonConfig struct {
	StorageDriver *string `json:"storage_driver"`
	DatabasePath  *string `json:"database_path"`
	RedisURL      *string `json:"redis_url"`
	RedisPrefix   *string `json:"redis_prefix"`

	ExportDir   *string `json:"export_dir"`
	S3Bucket    *string `json:"s3_bucket"`
	S3Prefix    *string `json:"s3_prefix"`
	S3Region    *string `json:"s3_region"`
	S3Endpoint  *string `json:"s3_endpoint"`
	S3AccessKey *string `json:"s3_access_key"`
	S3SecretKey *string `json:"s3_secret_key"`
	RowsPerPage *int    `json:"rows_per_page"`

	MailProvider *string `json:"mail_provider"`
	SMTPAddr     *string `json:"smtp_addr"`
	ResendAPIKey *string `json:"resend_api_key"`

	LogLevel *string `json:"log_level"`
	LogFile  *string `json:"log_file"`
}

// parseJson overlays cfg with values from the JSON file named by -c or
// -config in args. Without either flag it does nothing.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	set(&cfg.StorageDriver, jc.StorageDriver)
	set(&cfg.DatabasePath, jc.DatabasePath)
	set(&cfg.RedisURL, jc.RedisURL)
	set(&cfg.RedisPrefix, jc.RedisPrefix)
	set(&cfg.ExportDir, jc.ExportDir)
	set(&cfg.S3Bucket, jc.S3Bucket)
	set(&cfg.S3Prefix, jc.S3Prefix)
	set(&cfg.S3Region, jc.S3Region)
	set(&cfg.S3Endpoint, jc.S3Endpoint)
	set(&cfg.S3AccessKey, jc.S3AccessKey)
	set(&cfg.S3SecretKey, jc.S3SecretKey)
	set(&cfg.RowsPerPage, jc.RowsPerPage)
	set(&cfg.MailProvider, jc.MailProvider)
	set(&cfg.SMTPAddr, jc.SMTPAddr)
	set(&cfg.ResendAPIKey, jc.ResendAPIKey)
	set(&cfg.LogLevel, jc.LogLevel)
	set(&cfg.LogFile, jc.LogFile)
	return nil
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
