package models

import (
	"fmt"
	"strings"
)

// Share is a plain-text summary handed to whatever sharing channel the
// caller uses.
type Share struct {
	Subject string
	Text    string
}

// ShareSummary builds the share text. Supplier contacts are included only
// when hideSensitive is false, and only the non-empty ones.
func (i Item) ShareSummary(hideSensitive bool) Share {
	var b strings.Builder
	b.WriteString("Item information:\n")
	fmt.Fprintf(&b, "Name: %s\n", i.Name)
	fmt.Fprintf(&b, "Price: %s\n", i.FormattedPrice())
	fmt.Fprintf(&b, "Quantity: %d\n", i.Quantity)
	fmt.Fprintf(&b, "Source: %s\n", i.ProvenanceLabel())

	if hideSensitive {
		b.WriteString("Supplier details: hidden\n")
	} else {
		if i.SupplierName != "" {
			fmt.Fprintf(&b, "Supplier: %s\n", i.SupplierName)
		}
		if i.SupplierEmail != "" {
			fmt.Fprintf(&b, "Supplier email: %s\n", i.SupplierEmail)
		}
		if i.SupplierPhone != "" {
			fmt.Fprintf(&b, "Supplier phone: %s\n", i.SupplierPhone)
		}
	}

	return Share{
		Subject: "Item information: " + i.Name,
		Text:    b.String(),
	}
}
