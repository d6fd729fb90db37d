package models

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Status is the payment state of an invoice.
type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	return s == StatusPending || s == StatusPaid
}

// InvoiceItem is a line of an invoice, embedded by value.
type InvoiceItem struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

// Invoice belongs to a user and references a customer.
//
// Total is derived from Items at creation and stored redundantly; code that
// changes Items must recompute it with ItemsTotal.
type Invoice struct {
	ID         string        `json:"id"`
	UserID     string        `json:"userId"`
	CustomerID string        `json:"customerId"`
	Items      []InvoiceItem `json:"items"`
	Total      float64       `json:"total"`
	Status     Status        `json:"status"`
	Date       time.Time     `json:"date"`
	DueDate    string        `json:"dueDate"`
}

func (inv Invoice) Validate() error {
	if inv.ID == "" {
		return errors.New("invoice: empty id")
	}
	if inv.UserID == "" {
		return errors.New("invoice: empty user id")
	}
	if inv.CustomerID == "" {
		return errors.New("invoice: empty customer id")
	}
	if !inv.Status.Valid() {
		return fmt.Errorf("invoice: unknown status %q", inv.Status)
	}
	if math.IsNaN(inv.Total) || math.IsInf(inv.Total, 0) {
		return errors.New("invoice: total is not a number")
	}
	return nil
}
