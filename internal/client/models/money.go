package models

import "strconv"

// LineTotal is quantity × unit price of one item.
func LineTotal(item InvoiceItem) float64 {
	return float64(item.Quantity) * item.Price
}

// ItemsTotal is the invoice total formula: the sum of LineTotal over items,
// in order, without rounding. Creation, the form preview and the exported
// document all go through this function.
func ItemsTotal(items []InvoiceItem) float64 {
	var sum float64
	for _, item := range items {
		sum += LineTotal(item)
	}
	return sum
}

// FormatAmount renders an amount with two decimals. Rounding happens here
// and nowhere else.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
