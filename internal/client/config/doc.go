// Package config loads runtime configuration for the invoicer CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via flags: -c or -config.
//  3. INVOICER_* environment variables; a .env file in the working
//     directory supplies values the process environment does not set.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-driver string      sqlite, redis or memory
//	-db string          sqlite database file
//	-redis string       redis url
//	-export-dir string  directory for exported PDFs
//	-s3-bucket string   upload exported PDFs to S3 instead
//	-rows int           invoice rows per PDF page
//	-mail string        smtp, resend or log
//	-smtp string        smtp host:port
//	-log-level string   debug, info, warn or error
//	-log-file string    JSON log file
//
// # JSON schema
//
// Keys are snake_case versions of the Config fields; absent keys keep
// their previous value:
//
//	{
//	  "storage_driver": "redis",
//	  "redis_url": "redis://localhost:6379/0",
//	  "s3_bucket": "invoices",
//	  "s3_endpoint": "http://localhost:9000",
//	  "mail_provider": "smtp",
//	  "rows_per_page": 25
//	}
//
// Environment keys are the upper-case JSON keys with the INVOICER_ prefix,
// e.g. INVOICER_STORAGE_DRIVER or INVOICER_RESEND_API_KEY.
package config
