package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/easyinvoice/internal/client/client"
	"github.com/dmitrijs2005/easyinvoice/internal/client/config"
	"github.com/dmitrijs2005/easyinvoice/internal/client/docsink"
	"github.com/dmitrijs2005/easyinvoice/internal/client/export"
	"github.com/dmitrijs2005/easyinvoice/internal/client/mailer"
	"github.com/dmitrijs2005/easyinvoice/internal/client/pdf"
	"github.com/dmitrijs2005/easyinvoice/internal/client/repositories/kv"
	"github.com/dmitrijs2005/easyinvoice/internal/client/repositories/records"
	"github.com/dmitrijs2005/easyinvoice/internal/client/services"
	"github.com/dmitrijs2005/easyinvoice/internal/logging"
)

// Renderer encodes an exported document.
type Renderer interface {
	Render(w io.Writer, doc *export.Document) error
}

type App struct {
	config         *config.Config
	authService    services.AuthService
	invoiceService services.InvoiceService
	renderer       Renderer
	sink           docsink.Sink
	mailer         mailer.Mailer
	log            logging.Logger
	reader         *bufio.Reader
	out            io.Writer
	closers        []func() error
}

// NewApp opens the configured store and wires the services and
// collaborators. Close releases what it opened.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	a := &App{
		config:   c,
		renderer: pdf.NewRenderer(),
		log:      log,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}

	store, err := a.openStore(ctx)
	if err != nil {
		return nil, err
	}
	recs := records.New(store, log)
	a.authService = services.NewAuthService(recs, log)
	a.invoiceService = services.NewInvoiceService(recs, log)

	if a.sink, err = newSink(ctx, c); err != nil {
		_ = a.Close()
		return nil, err
	}
	a.mailer = newMailer(c, log)
	return a, nil
}

func (a *App) openStore(ctx context.Context) (kv.Store, error) {
	switch a.config.StorageDriver {
	case config.DriverSQLite:
		db, err := client.InitDatabase(ctx, a.config.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("error initializing database: %w", err)
		}
		a.closers = append(a.closers, db.Close)
		a.log.Debug(ctx, "using sqlite store", "path", a.config.DatabasePath)
		return kv.NewSQLiteStore(db), nil

	case config.DriverRedis:
		rdb, err := client.InitRedis(ctx, a.config.RedisURL)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, rdb.Close)
		a.log.Debug(ctx, "using redis store", "prefix", a.config.RedisPrefix)
		return kv.NewRedisStore(rdb, a.config.RedisPrefix), nil

	case config.DriverMemory:
		a.log.Warn(ctx, "using in-memory store, nothing will be saved")
		return kv.NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", a.config.StorageDriver)
}

func newSink(ctx context.Context, c *config.Config) (docsink.Sink, error) {
	if c.S3Bucket == "" {
		return docsink.NewFileSink(c.ExportDir), nil
	}
	s3c, err := docsink.NewS3Client(ctx, docsink.S3Config{
		Bucket:    c.S3Bucket,
		Prefix:    c.S3Prefix,
		Region:    c.S3Region,
		Endpoint:  c.S3Endpoint,
		AccessKey: c.S3AccessKey,
		SecretKey: c.S3SecretKey,
	})
	if err != nil {
		return nil, err
	}
	return docsink.NewS3Sink(s3c, c.S3Bucket, c.S3Prefix), nil
}

func newMailer(c *config.Config, log logging.Logger) mailer.Mailer {
	switch c.MailProvider {
	case config.MailSMTP:
		return mailer.NewSMTPMailer(c.SMTPAddr)
	case config.MailResend:
		return mailer.NewResendMailer(c.ResendAPIKey)
	default:
		return mailer.NewLogMailer(log)
	}
}

// Run starts the REPL on a.reader and blocks until the user exits or
// input ends.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to easyinvoice (type 'help' for commands)")
	runREPL(ctx, a, func() string { return a.getStatus(ctx) }, a.reader)
}

// Close releases the store connection.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	u, err := a.authService.CurrentUser(ctx)
	return err == nil && u != nil
}

func (a *App) getStatus(ctx context.Context) string {
	u, err := a.authService.CurrentUser(ctx)
	if err != nil || u == nil {
		return ""
	}
	return fmt.Sprintf("(%s)", u.Email)
}
