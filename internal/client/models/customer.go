package models

import "errors"

// Customer is referenced by invoices. Email is soft-unique: creation checks
// for an existing customer with the same email before appending.
type Customer struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

func (c Customer) Validate() error {
	if c.ID == "" {
		return errors.New("customer: empty id")
	}
	return nil
}
