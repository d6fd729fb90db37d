// Package records is the typed record store of easyinvoice. It keeps each
// namespace (users, customers, invoices) as a JSON array in a kv.Store and
// the logged-in user as a single JSON object under currentUser.
package records

import (
	"github.com/dmitrijs2005/easyinvoice/internal/client/models"
	"github.com/dmitrijs2005/easyinvoice/internal/client/repositories/kv"
	"github.com/dmitrijs2005/easyinvoice/internal/logging"
)

// Namespace keys.
const (
	KeyUsers       = "users"
	KeyCustomers   = "customers"
	KeyInvoices    = "invoices"
	KeyCurrentUser = "currentUser"
)

// Records bundles every namespace over one backing store.
type Records struct {
	Users     *Collection[models.User]
	Customers *Collection[models.Customer]
	Invoices  *Collection[models.Invoice]
	Session   *Session
}

func New(store kv.Store, log logging.Logger) *Records {
	return &Records{
		Users:     NewCollection[models.User](store, KeyUsers, log),
		Customers: NewCollection[models.Customer](store, KeyCustomers, log),
		Invoices:  NewCollection[models.Invoice](store, KeyInvoices, log),
		Session:   NewSession(store, log),
	}
}
