package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/easyinvoice/internal/client/models"
	"github.com/dmitrijs2005/easyinvoice/internal/client/services"
	"github.com/dmitrijs2005/easyinvoice/internal/common"
)

var errItemFormat = errors.New("expected: description; quantity; price")

// parseItem reads "description; quantity; price".
func parseItem(line string) (models.InvoiceItem, error) {
	parts := strings.Split(line, ";")
	if len(parts) != 3 {
		return models.InvoiceItem{}, errItemFormat
	}
	desc := strings.TrimSpace(parts[0])
	qty, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return models.InvoiceItem{}, fmt.Errorf("%w: bad quantity %q", errItemFormat, strings.TrimSpace(parts[1]))
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
	if err != nil {
		return models.InvoiceItem{}, fmt.Errorf("%w: bad price %q", errItemFormat, strings.TrimSpace(parts[2]))
	}
	return models.InvoiceItem{Description: desc, Quantity: qty, Price: price}, nil
}

// NewInvoice walks through the customer, the items and the due date, then
// creates the invoice. A running total is printed after every item.
func (a *App) NewInvoice(ctx context.Context) error {
	user, err := a.currentUser(ctx)
	if err != nil {
		return err
	}

	var cust models.Customer
	for _, f := range []struct {
		prompt string
		dst    *string
	}{
		{"Customer name", &cust.Name},
		{"Customer email", &cust.Email},
		{"Customer address", &cust.Address},
		{"Customer phone", &cust.Phone},
	} {
		if *f.dst, err = getSimpleText(a.reader, f.prompt, a.out); err != nil {
			return err
		}
	}

	var items []models.InvoiceItem
	_, err = GetLines(a.reader, "Items, one per line as: description; quantity; price", a.out, func(line string) error {
		it, err := parseItem(line)
		if err != nil {
			return err
		}
		items = append(items, it)
		fmt.Fprintf(a.out, "  running total: $%s\n", models.FormatAmount(models.ItemsTotal(items)))
		return nil
	})
	if err != nil {
		return err
	}

	defaultDue := time.Now().AddDate(0, 0, 30).Format(services.DueDateLayout)
	due, err := getSimpleText(a.reader, fmt.Sprintf("Due date (YYYY-MM-DD, empty for %s)", defaultDue), a.out)
	if err != nil {
		return err
	}
	if due == "" {
		due = defaultDue
	}

	inv, err := a.invoiceService.CreateInvoice(ctx, cust, items, due, user)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Invoice created successfully: %s, total $%s\n", inv.ID, models.FormatAmount(inv.Total))
	return nil
}

func (a *App) List(ctx context.Context) error {
	user, err := a.currentUser(ctx)
	if err != nil {
		return err
	}
	invs, err := a.invoiceService.ListInvoicesForUser(ctx, user.ID)
	if err != nil {
		return err
	}
	if len(invs) == 0 {
		fmt.Fprintln(a.out, "No invoices yet. Create one with 'new'.")
		return nil
	}

	names, err := a.customerNames(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCUSTOMER\tTOTAL\tSTATUS\tDUE")
	for _, inv := range invs {
		name, ok := names[inv.CustomerID]
		if !ok {
			name = "Unknown"
		}
		fmt.Fprintf(tw, "%s\t%s\t$%s\t%s\t%s\n", inv.ID, name, models.FormatAmount(inv.Total), inv.Status, inv.DueDate)
	}
	return tw.Flush()
}

func (a *App) customerNames(ctx context.Context) (map[string]string, error) {
	custs, err := a.invoiceService.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(custs))
	for _, c := range custs {
		names[c.ID] = c.Name
	}
	return names, nil
}

// ownInvoice looks up id among the current user's invoices. Other users'
// invoices read as not found.
func (a *App) ownInvoice(ctx context.Context, id string) (*models.User, *models.Invoice, error) {
	user, err := a.currentUser(ctx)
	if err != nil {
		return nil, nil, err
	}
	inv, err := a.invoiceService.FindInvoiceByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if inv.UserID != user.ID {
		return nil, nil, common.ErrRecordNotFound
	}
	return user, inv, nil
}

func (a *App) Show(ctx context.Context, id string) error {
	_, inv, err := a.ownInvoice(ctx, id)
	if err != nil {
		return err
	}
	cust, err := a.invoiceService.FindCustomerByID(ctx, inv.CustomerID)
	if errors.Is(err, common.ErrRecordNotFound) {
		cust = &models.Customer{Name: "Unknown"}
	} else if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Invoice %s\n", inv.ID)
	fmt.Fprintf(a.out, "Customer: %s <%s>\n", cust.Name, cust.Email)
	if cust.Address != "" {
		fmt.Fprintf(a.out, "Address: %s\n", cust.Address)
	}
	if cust.Phone != "" {
		fmt.Fprintf(a.out, "Phone: %s\n", cust.Phone)
	}
	fmt.Fprintf(a.out, "Date: %s\n", inv.Date.Local().Format(time.DateOnly))
	fmt.Fprintf(a.out, "Due Date: %s\n", inv.DueDate)
	fmt.Fprintf(a.out, "Status: %s\n", inv.Status)

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Description\tQuantity\tUnit Price\tTotal\t")
	for _, it := range inv.Items {
		fmt.Fprintf(tw, "%s\t%d\t$%s\t$%s\t\n", it.Description, it.Quantity, models.FormatAmount(it.Price), models.FormatAmount(models.LineTotal(it)))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Total: $%s\n", models.FormatAmount(inv.Total))
	return nil
}

func (a *App) SetStatus(ctx context.Context, id string, status models.Status) error {
	if _, _, err := a.ownInvoice(ctx, id); err != nil {
		return err
	}
	if err := a.invoiceService.SetInvoiceStatus(ctx, id, status); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Invoice status updated")
	return nil
}

func (a *App) Customers(ctx context.Context) error {
	custs, err := a.invoiceService.ListCustomers(ctx)
	if err != nil {
		return err
	}
	if len(custs) == 0 {
		fmt.Fprintln(a.out, "No customers yet.")
		return nil
	}
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tEMAIL\tPHONE")
	for _, c := range custs {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", c.Name, c.Email, c.Phone)
	}
	return tw.Flush()
}
