package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	envPrefix   = "INVOICER_"
	envFileName = ".env"
)

// parseEnv overlays cfg with INVOICER_* variables. Values from the process
// environment win over the same keys in envFile; a missing envFile is not
// an error.
func parseEnv(cfg *Config, envFile string, lookup func(string) (string, bool)) error {
	fileVars := map[string]string{}
	if envFile != "" {
		vars, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			fileVars = vars
		case errors.Is(err, fs.ErrNotExist):
		default:
			return fmt.Errorf("failed to read %s: %w", envFile, err)
		}
	}

	get := func(name string) (string, bool) {
		key := envPrefix + name
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := fileVars[key]
		return v, ok
	}

	strs := map[string]*string{
		"STORAGE_DRIVER": &cfg.StorageDriver,
		"DATABASE_PATH":  &cfg.DatabasePath,
		"REDIS_URL":      &cfg.RedisURL,
		"REDIS_PREFIX":   &cfg.RedisPrefix,
		"EXPORT_DIR":     &cfg.ExportDir,
		"S3_BUCKET":      &cfg.S3Bucket,
		"S3_PREFIX":      &cfg.S3Prefix,
		"S3_REGION":      &cfg.S3Region,
		"S3_ENDPOINT":    &cfg.S3Endpoint,
		"S3_ACCESS_KEY":  &cfg.S3AccessKey,
		"S3_SECRET_KEY":  &cfg.S3SecretKey,
		"MAIL_PROVIDER":  &cfg.MailProvider,
		"SMTP_ADDR":      &cfg.SMTPAddr,
		"RESEND_API_KEY": &cfg.ResendAPIKey,
		"LOG_LEVEL":      &cfg.LogLevel,
		"LOG_FILE":       &cfg.LogFile,
	}
	for name, dst := range strs {
		if v, ok := get(name); ok {
			*dst = v
		}
	}

	if v, ok := get("ROWS_PER_PAGE"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %sROWS_PER_PAGE %q: %w", envPrefix, v, err)
		}
		cfg.RowsPerPage = n
	}
	return nil
}
