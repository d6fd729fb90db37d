package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/easyinvoice/internal/client/models"
	"github.com/dmitrijs2005/easyinvoice/internal/client/repositories/records"
	"github.com/dmitrijs2005/easyinvoice/internal/common"
	"github.com/dmitrijs2005/easyinvoice/internal/logging"
	"github.com/dmitrijs2005/easyinvoice/internal/validation"
)

// DueDateLayout is the calendar-date format of Invoice.DueDate.
const DueDateLayout = "2006-01-02"

// InvoiceService defines the invoice lifecycle used by the CLI.
type InvoiceService interface {
	CreateInvoice(ctx context.Context, customer models.Customer, items []models.InvoiceItem, dueDate string, actingUser *models.User) (*models.Invoice, error)
	ListInvoicesForUser(ctx context.Context, userID string) ([]models.Invoice, error)
	FindInvoiceByID(ctx context.Context, id string) (*models.Invoice, error)
	FindCustomerByID(ctx context.Context, id string) (*models.Customer, error)
	SetInvoiceStatus(ctx context.Context, id string, status models.Status) error
	ListCustomers(ctx context.Context) ([]models.Customer, error)
}

type invoiceService struct {
	recs *records.Records
	log  logging.Logger
	now  func() time.Time
}

func NewInvoiceService(recs *records.Records, log logging.Logger) InvoiceService {
	return &invoiceService{
		recs: recs,
		log:  log.With("service", "invoice"),
		now:  time.Now,
	}
}

// CreateInvoice stores a pending invoice owned by actingUser.
//
// The customer is matched by email against stored customers. When one
// exists the invoice references it and the submitted customer details are
// dropped; otherwise the customer is appended after the invoice.
func (s *invoiceService) CreateInvoice(ctx context.Context, customer models.Customer, items []models.InvoiceItem, dueDate string, actingUser *models.User) (*models.Invoice, error) {
	if actingUser == nil {
		return nil, common.ErrUnauthorized
	}

	items, err := normalizeItems(items)
	if err != nil {
		return nil, err
	}
	if _, err := time.Parse(DueDateLayout, dueDate); err != nil {
		return nil, fmt.Errorf("%w: %q", common.ErrInvalidDueDate, dueDate)
	}
	if !validation.ValidateEmail(customer.Email) {
		return nil, common.ErrInvalidEmail
	}

	customers, err := s.recs.Customers.ReadAll(ctx)
	if err != nil {
		s.log.Error(ctx, "reading customers failed", "error", err)
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	var existing *models.Customer
	for i := range customers {
		if customers[i].Email == customer.Email {
			existing = &customers[i]
			break
		}
	}
	if existing != nil {
		customer = *existing
	} else if customer.ID == "" {
		customer.ID = uuid.NewString()
	}

	inv := models.Invoice{
		ID:         uuid.NewString(),
		UserID:     actingUser.ID,
		CustomerID: customer.ID,
		Items:      items,
		Total:      models.ItemsTotal(items),
		Status:     models.StatusPending,
		Date:       s.now().UTC(),
		DueDate:    dueDate,
	}

	if err := s.recs.Invoices.AppendOne(ctx, inv); err != nil {
		s.log.Error(ctx, "saving invoice failed", "error", err)
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}
	if existing == nil {
		if err := s.recs.Customers.AppendOne(ctx, customer); err != nil {
			s.log.Error(ctx, "saving customer failed", "invoice_id", inv.ID, "error", err)
			return nil, fmt.Errorf("failed to save customer: %w", err)
		}
	}

	s.log.Info(ctx, "invoice created", "invoice_id", inv.ID, "customer_id", customer.ID, "total", inv.Total)
	return &inv, nil
}

// normalizeItems checks every line and assigns ids to lines without one.
// The input slice is not modified.
func normalizeItems(items []models.InvoiceItem) ([]models.InvoiceItem, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: at least one item is required", common.ErrInvalidItem)
	}

	out := make([]models.InvoiceItem, len(items))
	seen := make(map[string]struct{}, len(items))
	for i, it := range items {
		if it.Quantity < 1 {
			return nil, fmt.Errorf("%w: item %d: quantity must be at least 1", common.ErrInvalidItem, i+1)
		}
		if it.Price < 0 || math.IsNaN(it.Price) || math.IsInf(it.Price, 0) {
			return nil, fmt.Errorf("%w: item %d: price must be a non-negative number", common.ErrInvalidItem, i+1)
		}
		if it.ID == "" {
			it.ID = uuid.NewString()
		}
		if _, dup := seen[it.ID]; dup {
			return nil, fmt.Errorf("%w: item %d: duplicate id %q", common.ErrInvalidItem, i+1, it.ID)
		}
		seen[it.ID] = struct{}{}
		out[i] = it
	}
	return out, nil
}

// ListInvoicesForUser returns the user's invoices in insertion order.
func (s *invoiceService) ListInvoicesForUser(ctx context.Context, userID string) ([]models.Invoice, error) {
	all, err := s.recs.Invoices.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	out := make([]models.Invoice, 0, len(all))
	for _, inv := range all {
		if inv.UserID == userID {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (s *invoiceService) FindInvoiceByID(ctx context.Context, id string) (*models.Invoice, error) {
	all, err := s.recs.Invoices.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to find invoice: %w", err)
	}
	for i := range all {
		if all[i].ID == id {
			return &all[i], nil
		}
	}
	return nil, common.ErrRecordNotFound
}

func (s *invoiceService) FindCustomerByID(ctx context.Context, id string) (*models.Customer, error) {
	all, err := s.recs.Customers.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to find customer: %w", err)
	}
	for i := range all {
		if all[i].ID == id {
			return &all[i], nil
		}
	}
	return nil, common.ErrRecordNotFound
}

// SetInvoiceStatus changes only the target invoice's status and writes
// back every invoice, including those of other users.
func (s *invoiceService) SetInvoiceStatus(ctx context.Context, id string, status models.Status) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", common.ErrInvalidStatus, status)
	}

	all, err := s.recs.Invoices.ReadAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to update invoice: %w", err)
	}

	found := false
	for i := range all {
		if all[i].ID == id {
			all[i].Status = status
			found = true
			break
		}
	}
	if !found {
		return common.ErrRecordNotFound
	}

	if err := s.recs.Invoices.ReplaceAll(ctx, all); err != nil {
		s.log.Error(ctx, "saving invoices failed", "invoice_id", id, "error", err)
		return fmt.Errorf("failed to update invoice: %w", err)
	}
	s.log.Info(ctx, "invoice status changed", "invoice_id", id, "status", string(status))
	return nil
}

func (s *invoiceService) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	all, err := s.recs.Customers.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return all, nil
}
