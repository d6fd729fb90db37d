package export

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/easyinvoice/internal/client/models"
	"github.com/dmitrijs2005/easyinvoice/internal/common"
)

var customer = models.Customer{ID: "c1", Name: "Acme", Email: "billing@acme.com", Address: "1 Road", Phone: "555-0100"}

func invoice() models.Invoice {
	items := []models.InvoiceItem{
		{ID: "1", Description: "Widget", Quantity: 2, Price: 10.00},
		{ID: "2", Description: "Gadget", Quantity: 1, Price: 5.50},
	}
	return models.Invoice{
		ID: "inv-1", UserID: "u1", CustomerID: "c1",
		Items: items, Total: models.ItemsTotal(items),
		Status: models.StatusPending, DueDate: "2026-04-01",
	}
}

func TestBuild_Layout(t *testing.T) {
	doc, err := Build(invoice(), customer, &models.User{Name: "Ann"}, Options{})
	require.NoError(t, err)

	assert.Equal(t, "Invoice_inv-1.pdf", doc.FileName)
	assert.Equal(t, "Invoice for Acme", doc.Header.Title)
	var fields []string
	for _, f := range doc.Header.Fields {
		fields = append(fields, f.String())
	}
	assert.Equal(t, []string{
		"Customer: Acme",
		"Email: billing@acme.com",
		"Address: 1 Road",
		"Phone: 555-0100",
		"Invoice Number: inv-1",
	}, fields)

	assert.Equal(t, []string{"Description", "Quantity", "Unit Price", "Total"}, doc.Columns)
	require.Len(t, doc.Pages, 1)
	assert.Equal(t, []string{"Widget", "2", "$10.00", "$20.00"}, doc.Pages[0].Rows[0].Cells())
	assert.Equal(t, []string{"Gadget", "1", "$5.50", "$5.50"}, doc.Pages[0].Rows[1].Cells())

	assert.Equal(t, "25.50", doc.Total)
	assert.Equal(t, "Total Amount: $25.50", doc.TotalLine)
	assert.Equal(t, "Due Date: 2026-04-01", doc.DueDateLine)
	assert.Equal(t, "Status: pending", doc.StatusLine)
	assert.Equal(t, "Digital Signature: Ann", doc.Signature)
}

func TestBuild_SignatureFallback(t *testing.T) {
	doc, err := Build(invoice(), customer, nil, Options{})
	require.NoError(t, err)
	assert.Equal(t, "Digital Signature: No User", doc.Signature)

	doc, err = Build(invoice(), customer, &models.User{ID: "u1"}, Options{})
	require.NoError(t, err)
	assert.Equal(t, "Digital Signature: No User", doc.Signature)
}

func TestBuild_TotalMismatch(t *testing.T) {
	inv := invoice()
	inv.Total = 30

	_, err := Build(inv, customer, nil, Options{})
	require.ErrorIs(t, err, common.ErrTotalMismatch)
}

func TestBuild_ToleratesSubCentDrift(t *testing.T) {
	inv := invoice()
	inv.Items = []models.InvoiceItem{{ID: "1", Description: "x", Quantity: 3, Price: 0.1}}
	inv.Total = 0.3

	doc, err := Build(inv, customer, nil, Options{})
	require.NoError(t, err)
	assert.Equal(t, "0.30", doc.Total)
}

func TestBuild_Paginates(t *testing.T) {
	tests := []struct {
		items     int
		perPage   int
		wantPages []int
	}{
		{0, 5, []int{0}},
		{1, 5, []int{1}},
		{5, 5, []int{5}},
		{6, 5, []int{5, 1}},
		{45, 0, []int{20, 20, 5}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d_per_%d", tt.items, tt.perPage), func(t *testing.T) {
			inv := invoice()
			inv.Items = nil
			for i := 0; i < tt.items; i++ {
				inv.Items = append(inv.Items, models.InvoiceItem{ID: fmt.Sprint(i), Description: "row", Quantity: 1, Price: 1})
			}
			inv.Total = models.ItemsTotal(inv.Items)

			doc, err := Build(inv, customer, nil, Options{RowsPerPage: tt.perPage})
			require.NoError(t, err)

			var got []int
			for i, p := range doc.Pages {
				assert.Equal(t, i+1, p.Number)
				got = append(got, len(p.Rows))
			}
			assert.Equal(t, tt.wantPages, got)
		})
	}
}
