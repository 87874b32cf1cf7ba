// Package models defines the inventory item, its editable form, the share
// summary and the persisted preferences.
package models

import (
	"fmt"
	"strings"
	"time"
)

// Provenance records where an item came from. The string values are the
// ones written into envelope JSON, so they must not change.
type Provenance string

const (
	// ProvenanceManual marks items entered by the user.
	ProvenanceManual Provenance = "MANUAL"
	// ProvenanceImported marks items materialized from a decrypted envelope.
	ProvenanceImported Provenance = "FILE"
)

// UnsavedID is the identifier of an item the store has not assigned yet.
const UnsavedID int64 = 0

// Item is one stock record. The JSON tags define the envelope payload.
type Item struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	Price         float64    `json:"price"`
	Quantity      int        `json:"quantity"`
	SupplierName  string     `json:"supplierName"`
	SupplierEmail string     `json:"supplierEmail"`
	SupplierPhone string     `json:"supplierPhone"`
	Provenance    Provenance `json:"dataSource"`
}

// OutOfStock reports whether nothing is left to sell.
func (i Item) OutOfStock() bool {
	return i.Quantity <= 0
}

// FormattedPrice renders the price with two decimals.
func (i Item) FormattedPrice() string {
	return fmt.Sprintf("%.2f", i.Price)
}

// ProvenanceLabel is the human-readable source of the item.
func (i Item) ProvenanceLabel() string {
	if i.Provenance == ProvenanceImported {
		return "Imported from file"
	}
	return "Manual entry"
}

const hiddenValue = "***"

// Masked returns a copy with every supplier field replaced by a placeholder.
func (i Item) Masked() Item {
	i.SupplierName = hiddenValue
	i.SupplierEmail = hiddenValue
	i.SupplierPhone = hiddenValue
	return i
}

var fileNameReplacer = strings.NewReplacer(" ", "_", "/", "_", `\`, "_")

// ExportFileName is the conventional name of an exported envelope file:
// item_<unix millis>_<name>.enc, with spaces and path separators in the
// name replaced by underscores.
func (i Item) ExportFileName(now time.Time) string {
	return fmt.Sprintf("item_%d_%s.enc", now.UnixMilli(), fileNameReplacer.Replace(i.Name))
}
