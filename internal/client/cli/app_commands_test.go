package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/easyinvoice/internal/client/config"
	"github.com/dmitrijs2005/easyinvoice/internal/client/export"
	"github.com/dmitrijs2005/easyinvoice/internal/client/mailer"
	"github.com/dmitrijs2005/easyinvoice/internal/client/models"
	"github.com/dmitrijs2005/easyinvoice/internal/client/repositories/kv"
	"github.com/dmitrijs2005/easyinvoice/internal/client/repositories/records"
	"github.com/dmitrijs2005/easyinvoice/internal/client/services"
	"github.com/dmitrijs2005/easyinvoice/internal/common"
	"github.com/dmitrijs2005/easyinvoice/internal/logging"
)

// ------------ helpers ------------

func readerFromLines(lines ...string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n"))
}

type fakeRenderer struct {
	err  error
	docs []*export.Document
}

func (f *fakeRenderer) Render(w io.Writer, doc *export.Document) error {
	f.docs = append(f.docs, doc)
	if f.err != nil {
		return f.err
	}
	_, err := io.WriteString(w, "%PDF-fake "+doc.TotalLine)
	return err
}

type fakeSink struct {
	err   error
	names []string
	body  string
}

func (f *fakeSink) Save(_ context.Context, name string, r io.Reader) (string, error) {
	f.names = append(f.names, name)
	b, _ := io.ReadAll(r)
	f.body = string(b)
	if f.err != nil {
		return "", f.err
	}
	return "/exports/" + name, nil
}

type fakeMailer struct {
	err  error
	sent []mailer.Reminder
	cfgs []models.EmailConfig
}

func (f *fakeMailer) SendReminder(_ context.Context, r mailer.Reminder, cfg models.EmailConfig) error {
	f.sent = append(f.sent, r)
	f.cfgs = append(f.cfgs, cfg)
	return f.err
}

type testApp struct {
	*App
	recs     *records.Records
	out      *bytes.Buffer
	renderer *fakeRenderer
	sink     *fakeSink
	mailer   *fakeMailer
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	recs := records.New(kv.NewMemoryStore(), logging.Discard())
	cfg := &config.Config{}
	cfg.LoadDefaults()

	ta := &testApp{
		recs:     recs,
		out:      &bytes.Buffer{},
		renderer: &fakeRenderer{},
		sink:     &fakeSink{},
		mailer:   &fakeMailer{},
	}
	ta.App = &App{
		config:         cfg,
		authService:    services.NewAuthService(recs, logging.Discard()),
		invoiceService: services.NewInvoiceService(recs, logging.Discard()),
		renderer:       ta.renderer,
		sink:           ta.sink,
		mailer:         ta.mailer,
		log:            logging.Discard(),
		reader:         readerFromLines(),
		out:            ta.out,
	}
	return ta
}

// feed replaces the input; passwords are read from the same lines because
// stdin is not a terminal under test.
func (ta *testApp) feed(lines ...string) {
	ta.reader = readerFromLines(lines...)
}

func stubNotTerminal(t *testing.T) {
	t.Helper()
	old := isTerminal
	isTerminal = func(int) bool { return false }
	t.Cleanup(func() { isTerminal = old })
}

func loggedIn(t *testing.T) *testApp {
	t.Helper()
	stubNotTerminal(t)
	ta := newTestApp(t)
	ctx := context.Background()

	ta.feed("Ann", "ann@example.com", "secret1")
	require.NoError(t, ta.Register(ctx))
	ta.feed("ann@example.com", "secret1")
	require.NoError(t, ta.Login(ctx))
	ta.out.Reset()
	return ta
}

func createInvoice(t *testing.T, ta *testApp) *models.Invoice {
	t.Helper()
	ctx := context.Background()
	ta.feed(
		"Acme", "billing@acme.com", "1 Road", "555-0100",
		"Widget; 2; 10.00",
		"Gadget; 1; 5.50",
		"",
		"2026-04-01",
	)
	require.NoError(t, ta.NewInvoice(ctx))

	user, err := ta.authService.CurrentUser(ctx)
	require.NoError(t, err)
	invs, err := ta.invoiceService.ListInvoicesForUser(ctx, user.ID)
	require.NoError(t, err)
	require.NotEmpty(t, invs)
	return &invs[len(invs)-1]
}

// ------------ tests ------------

func TestRegisterAndLogin(t *testing.T) {
	stubNotTerminal(t)
	ta := newTestApp(t)
	ctx := context.Background()

	ta.feed("Ann", "ann@example.com", "secret1")
	require.NoError(t, ta.Register(ctx))
	assert.Contains(t, ta.out.String(), "Registration successful")
	assert.False(t, ta.isLoggedIn(ctx))

	ta.feed("Ann", "ann@example.com", "another1")
	require.ErrorIs(t, ta.Register(ctx), common.ErrDuplicateEmail)

	ta.feed("ann@example.com", "wrong-pass")
	require.ErrorIs(t, ta.Login(ctx), common.ErrInvalidCredentials)
	assert.False(t, ta.isLoggedIn(ctx))

	ta.feed("ann@example.com", "secret1")
	require.NoError(t, ta.Login(ctx))
	assert.Contains(t, ta.out.String(), "Welcome, Ann!")
	assert.True(t, ta.isLoggedIn(ctx))
	assert.Equal(t, "(ann@example.com)", ta.getStatus(ctx))

	require.NoError(t, ta.Logout(ctx))
	assert.False(t, ta.isLoggedIn(ctx))
	assert.Empty(t, ta.getStatus(ctx))
}

func TestRegister_InputError(t *testing.T) {
	ta := newTestApp(t)
	orig := getSimpleText
	getSimpleText = func(*bufio.Reader, string, io.Writer) (string, error) { return "", io.ErrUnexpectedEOF }
	t.Cleanup(func() { getSimpleText = orig })

	require.ErrorIs(t, ta.Register(context.Background()), io.ErrUnexpectedEOF)
}

func TestNewInvoice_RunningTotalAndCreate(t *testing.T) {
	ta := loggedIn(t)

	inv := createInvoice(t, ta)

	out := ta.out.String()
	assert.Contains(t, out, "running total: $20.00")
	assert.Contains(t, out, "running total: $25.50")
	assert.Contains(t, out, "Invoice created successfully: "+inv.ID+", total $25.50")
	assert.Equal(t, 25.50, inv.Total)
	assert.Equal(t, "2026-04-01", inv.DueDate)
}

func TestNewInvoice_BadItemLineIsSkipped(t *testing.T) {
	ta := loggedIn(t)
	ctx := context.Background()

	ta.feed("Acme", "billing@acme.com", "", "",
		"just text",
		"Widget; two; 1",
		"Widget; 1; 3",
		"",
		"2026-04-01")
	require.NoError(t, ta.NewInvoice(ctx))

	assert.Contains(t, ta.out.String(), "expected: description; quantity; price")
	assert.Contains(t, ta.out.String(), "total $3.00")
}

func TestNewInvoice_ServiceErrors(t *testing.T) {
	ta := loggedIn(t)
	ctx := context.Background()

	ta.feed("Acme", "billing@acme.com", "", "", "", "2026-04-01")
	require.ErrorIs(t, ta.NewInvoice(ctx), common.ErrInvalidItem)

	ta.feed("Acme", "billing@acme.com", "", "", "x; 1; 1", "", "tomorrow")
	require.ErrorIs(t, ta.NewInvoice(ctx), common.ErrInvalidDueDate)

	ta.feed("Acme", "not-an-email", "", "", "x; 1; 1", "", "2026-04-01")
	require.ErrorIs(t, ta.NewInvoice(ctx), common.ErrInvalidEmail)
}

func TestNewInvoice_DefaultDueDate(t *testing.T) {
	ta := loggedIn(t)
	ctx := context.Background()

	ta.feed("Acme", "billing@acme.com", "", "", "x; 1; 1", "", "")
	require.NoError(t, ta.NewInvoice(ctx))
}

func TestListAndShow(t *testing.T) {
	ta := loggedIn(t)
	ctx := context.Background()

	require.NoError(t, ta.List(ctx))
	assert.Contains(t, ta.out.String(), "No invoices yet")

	inv := createInvoice(t, ta)
	ta.out.Reset()

	require.NoError(t, ta.List(ctx))
	out := ta.out.String()
	assert.Contains(t, out, inv.ID)
	assert.Contains(t, out, "Acme")
	assert.Contains(t, out, "$25.50")
	assert.Contains(t, out, "pending")

	ta.out.Reset()
	require.NoError(t, ta.Show(ctx, inv.ID))
	out = ta.out.String()
	assert.Contains(t, out, "Customer: Acme <billing@acme.com>")
	assert.Contains(t, out, "Due Date: 2026-04-01")
	assert.Contains(t, out, "Widget")
	assert.Contains(t, out, "$20.00")
	assert.Contains(t, out, "Total: $25.50")

	require.ErrorIs(t, ta.Show(ctx, "missing"), common.ErrRecordNotFound)

	ta.out.Reset()
	require.NoError(t, ta.Customers(ctx))
	assert.Contains(t, ta.out.String(), "billing@acme.com")
}

func TestOtherUsersInvoicesAreHidden(t *testing.T) {
	ta := loggedIn(t)
	ctx := context.Background()
	inv := createInvoice(t, ta)
	require.NoError(t, ta.Logout(ctx))

	ta.feed("Bob", "bob@example.com", "secret2")
	require.NoError(t, ta.Register(ctx))
	ta.feed("bob@example.com", "secret2")
	require.NoError(t, ta.Login(ctx))

	require.ErrorIs(t, ta.Show(ctx, inv.ID), common.ErrRecordNotFound)
	require.ErrorIs(t, ta.SetStatus(ctx, inv.ID, models.StatusPaid), common.ErrRecordNotFound)
	require.ErrorIs(t, ta.Export(ctx, inv.ID), common.ErrRecordNotFound)

	ta.out.Reset()
	require.NoError(t, ta.List(ctx))
	assert.NotContains(t, ta.out.String(), inv.ID)
}

func TestSetStatus(t *testing.T) {
	ta := loggedIn(t)
	ctx := context.Background()
	inv := createInvoice(t, ta)

	require.NoError(t, ta.SetStatus(ctx, inv.ID, models.StatusPaid))
	assert.Contains(t, ta.out.String(), "Invoice status updated")

	got, err := ta.invoiceService.FindInvoiceByID(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPaid, got.Status)
}

func TestExport(t *testing.T) {
	ta := loggedIn(t)
	ctx := context.Background()
	inv := createInvoice(t, ta)
	ta.out.Reset()

	require.NoError(t, ta.Export(ctx, inv.ID))

	require.Len(t, ta.renderer.docs, 1)
	doc := ta.renderer.docs[0]
	assert.Equal(t, "Total Amount: $25.50", doc.TotalLine)
	assert.Equal(t, "Digital Signature: Ann", doc.Signature)
	assert.Equal(t, []string{"Invoice_" + inv.ID + ".pdf"}, ta.sink.names)
	assert.Equal(t, "%PDF-fake Total Amount: $25.50", ta.sink.body)
	assert.Contains(t, ta.out.String(), "Invoice saved to /exports/Invoice_"+inv.ID+".pdf")
}

func TestExport_CollaboratorFailuresAreReported(t *testing.T) {
	ta := loggedIn(t)
	ctx := context.Background()
	inv := createInvoice(t, ta)

	ta.renderer.err = errors.New("font missing")
	ta.out.Reset()
	require.NoError(t, ta.Export(ctx, inv.ID))
	assert.Contains(t, ta.out.String(), "Failed to export invoice")
	assert.Empty(t, ta.sink.names)

	ta.renderer.err = nil
	ta.sink.err = errors.New("bucket gone")
	ta.out.Reset()
	require.NoError(t, ta.Export(ctx, inv.ID))
	assert.Contains(t, ta.out.String(), "Failed to export invoice")
}

func TestRemind(t *testing.T) {
	ta := loggedIn(t)
	ctx := context.Background()
	inv := createInvoice(t, ta)

	require.ErrorIs(t, ta.Remind(ctx, inv.ID), common.ErrEmailNotConfigured)

	ta.feed("ann@example.com", "app-pass")
	require.NoError(t, ta.EmailConfig(ctx))
	assert.Contains(t, ta.out.String(), "Email configuration saved.")

	ta.out.Reset()
	require.NoError(t, ta.Remind(ctx, inv.ID))
	assert.Contains(t, ta.out.String(), "Reminder email sent successfully to billing@acme.com")
	require.Len(t, ta.mailer.sent, 1)
	assert.Equal(t, 25.50, ta.mailer.sent[0].Amount)
	assert.Equal(t, models.EmailConfig{Email: "ann@example.com", AppPassword: "app-pass"}, ta.mailer.cfgs[0])

	ta.mailer.err = errors.New("535")
	ta.out.Reset()
	require.NoError(t, ta.Remind(ctx, inv.ID))
	assert.Contains(t, ta.out.String(), "Failed to send reminder email to billing@acme.com")

	require.NoError(t, ta.SetStatus(ctx, inv.ID, models.StatusPaid))
	require.ErrorIs(t, ta.Remind(ctx, inv.ID), errAlreadyPaid)
	assert.Len(t, ta.mailer.sent, 2)
}

func TestRemind_IncompleteEmailConfig(t *testing.T) {
	ta := loggedIn(t)
	ctx := context.Background()
	inv := createInvoice(t, ta)

	ta.feed("ann@example.com", "")
	require.ErrorIs(t, ta.EmailConfig(ctx), common.ErrEmptyAppPassword)

	// a snapshot written before app passwords were required
	cur, err := ta.recs.Session.Get(ctx)
	require.NoError(t, err)
	cur.EmailConfig = &models.EmailConfig{Email: "ann@example.com"}
	require.NoError(t, ta.recs.Session.Set(ctx, *cur))

	require.ErrorIs(t, ta.Remind(ctx, inv.ID), common.ErrEmailNotConfigured)
	assert.Empty(t, ta.mailer.sent)
}

func TestWhoAmIAndRefresh(t *testing.T) {
	ta := loggedIn(t)
	ctx := context.Background()

	require.NoError(t, ta.WhoAmI(ctx))
	assert.Contains(t, ta.out.String(), "Ann <ann@example.com>")
	assert.Contains(t, ta.out.String(), "not configured")

	require.NoError(t, ta.Refresh(ctx))
	assert.Contains(t, ta.out.String(), "Session refreshed for ann@example.com.")

	require.NoError(t, ta.Logout(ctx))
	require.ErrorIs(t, ta.WhoAmI(ctx), common.ErrUnauthorized)
	require.ErrorIs(t, ta.Refresh(ctx), common.ErrUnauthorized)
}

func TestCommandsRequireSession(t *testing.T) {
	ta := newTestApp(t)
	ctx := context.Background()

	require.ErrorIs(t, ta.NewInvoice(ctx), common.ErrUnauthorized)
	require.ErrorIs(t, ta.List(ctx), common.ErrUnauthorized)
	require.ErrorIs(t, ta.Show(ctx, "x"), common.ErrUnauthorized)
	require.ErrorIs(t, ta.Export(ctx, "x"), common.ErrUnauthorized)
	require.ErrorIs(t, ta.Remind(ctx, "x"), common.ErrUnauthorized)
}

func TestParseItem(t *testing.T) {
	it, err := parseItem(" Widget ; 2 ; 10.50 ")
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceItem{Description: "Widget", Quantity: 2, Price: 10.5}, it)

	for _, bad := range []string{"Widget", "a;b", "a; 1.5; 2", "a; 1; x", "a;1;2;3"} {
		_, err := parseItem(bad)
		require.ErrorIs(t, err, errItemFormat, bad)
	}
}

func TestClose_RunsClosersInReverse(t *testing.T) {
	var order []string
	a := &App{closers: []func() error{
		func() error { order = append(order, "first"); return nil },
		func() error { order = append(order, "second"); return errors.New("boom") },
	}}

	require.Error(t, a.Close())
	assert.Equal(t, []string{"second", "first"}, order)
	require.NoError(t, a.Close())
}
