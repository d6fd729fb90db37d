package config

import (
	"flag"
	"fmt"
	"io"
)

// parseFlags populates Config fields from command-line flags. -c/-config
// are accepted here too but were already consumed by parseJson.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("invoicer", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var ignored string
	fs.StringVar(&ignored, "c", "", "path to JSON config file")
	fs.StringVar(&ignored, "config", "", "path to JSON config file")

	fs.StringVar(&cfg.StorageDriver, "driver", cfg.StorageDriver, "storage driver: sqlite, redis or memory")
	fs.StringVar(&cfg.DatabasePath, "db", cfg.DatabasePath, "sqlite database file")
	fs.StringVar(&cfg.RedisURL, "redis", cfg.RedisURL, "redis url")
	fs.StringVar(&cfg.ExportDir, "export-dir", cfg.ExportDir, "directory for exported PDFs")
	fs.StringVar(&cfg.S3Bucket, "s3-bucket", cfg.S3Bucket, "upload exported PDFs to this S3 bucket instead")
	fs.IntVar(&cfg.RowsPerPage, "rows", cfg.RowsPerPage, "invoice rows per PDF page")
	fs.StringVar(&cfg.MailProvider, "mail", cfg.MailProvider, "mail provider: smtp, resend or log")
	fs.StringVar(&cfg.SMTPAddr, "smtp", cfg.SMTPAddr, "smtp server host:port")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "console log level")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "also write JSON logs to this file")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}
	return nil
}
