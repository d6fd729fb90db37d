// Package export turns a stored invoice and its customer into a paginated,
// renderer-independent document model. Byte-level encoding lives in the
// pdf package.
package export

import (
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/easyinvoice/internal/client/models"
	"github.com/dmitrijs2005/easyinvoice/internal/common"
)

// DefaultRowsPerPage is used when Options.RowsPerPage is not positive.
const DefaultRowsPerPage = 20

// NoUser is the attribution name when no user is logged in.
const NoUser = "No User"

// Columns of the item table, in order.
var Columns = []string{"Description", "Quantity", "Unit Price", "Total"}

type Options struct {
	RowsPerPage int
}

// Field is one labelled header line, e.g. "Email: a@b.co".
type Field struct {
	Label string
	Value string
}

func (f Field) String() string {
	return f.Label + ": " + f.Value
}

type Header struct {
	Title  string
	Fields []Field
}

// Row is one item line with every cell already formatted.
type Row struct {
	Description string
	Quantity    string
	UnitPrice   string
	Total       string
}

// Cells returns the row in Columns order.
func (r Row) Cells() []string {
	return []string{r.Description, r.Quantity, r.UnitPrice, r.Total}
}

type Page struct {
	Number int
	Rows   []Row
}

// Document is the structured form of an exported invoice. The header
// belongs on the first page; the summary lines and the signature follow
// the table on the last page.
type Document struct {
	FileName    string
	Header      Header
	Columns     []string
	Pages       []Page
	Total       string
	TotalLine   string
	DueDateLine string
	StatusLine  string
	Signature   string
}

// Build assembles the document for inv. actingUser may be nil.
//
// The total is recomputed from the items with the same formula used at
// creation. A disagreement with the stored total at two decimals returns
// ErrTotalMismatch rather than printing either figure.
func Build(inv models.Invoice, cust models.Customer, actingUser *models.User, opts Options) (*Document, error) {
	perPage := opts.RowsPerPage
	if perPage <= 0 {
		perPage = DefaultRowsPerPage
	}

	total := models.FormatAmount(models.ItemsTotal(inv.Items))
	if stored := models.FormatAmount(inv.Total); stored != total {
		return nil, fmt.Errorf("%w: items sum to %s, invoice says %s", common.ErrTotalMismatch, total, stored)
	}

	rows := make([]Row, 0, len(inv.Items))
	for _, it := range inv.Items {
		rows = append(rows, Row{
			Description: it.Description,
			Quantity:    strconv.Itoa(it.Quantity),
			UnitPrice:   "$" + models.FormatAmount(it.Price),
			Total:       "$" + models.FormatAmount(models.LineTotal(it)),
		})
	}

	signer := NoUser
	if actingUser != nil && actingUser.Name != "" {
		signer = actingUser.Name
	}

	return &Document{
		FileName: fmt.Sprintf("Invoice_%s.pdf", inv.ID),
		Header: Header{
			Title: "Invoice for " + cust.Name,
			Fields: []Field{
				{Label: "Customer", Value: cust.Name},
				{Label: "Email", Value: cust.Email},
				{Label: "Address", Value: cust.Address},
				{Label: "Phone", Value: cust.Phone},
				{Label: "Invoice Number", Value: inv.ID},
			},
		},
		Columns:     append([]string(nil), Columns...),
		Pages:       paginate(rows, perPage),
		Total:       total,
		TotalLine:   "Total Amount: $" + total,
		DueDateLine: "Due Date: " + inv.DueDate,
		StatusLine:  "Status: " + string(inv.Status),
		Signature:   "Digital Signature: " + signer,
	}, nil
}

// paginate always yields at least one page so the header and summary have
// somewhere to go.
func paginate(rows []Row, perPage int) []Page {
	if len(rows) == 0 {
		return []Page{{Number: 1}}
	}
	pages := make([]Page, 0, (len(rows)+perPage-1)/perPage)
	for start := 0; start < len(rows); start += perPage {
		end := min(start+perPage, len(rows))
		pages = append(pages, Page{Number: len(pages) + 1, Rows: rows[start:end]})
	}
	return pages
}
