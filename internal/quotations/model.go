// Package quotations implements quotation lifecycle: creation with atomic
// per-company reference allocation, decimal pricing, and document generation.
package quotations

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItem is an immutable snapshot of one quoted line. Catalogue fields are
// copied from the item at creation time so later catalogue edits never change
// an issued quotation. Money figures are stored alongside the inputs.
type LineItem struct {
	ItemID          *int64          `json:"item_id,omitempty"`
	CatalogueID     string          `json:"catalogue_id,omitempty"`
	Description     string          `json:"description"`
	PackSize        string          `json:"pack_size,omitempty"`
	HSNCode         string          `json:"hsn_code,omitempty"`
	Brand           string          `json:"brand,omitempty"`
	LeadTime        string          `json:"lead_time,omitempty"`
	Quantity        float64         `json:"quantity"`
	UnitRate        decimal.Decimal `json:"unit_rate"`
	DiscountPercent float64         `json:"discount_percent"`
	GSTPercent      float64         `json:"gst_percent"`
	DiscountedPrice decimal.Decimal `json:"discounted_price"`
	ExpandedPrice   decimal.Decimal `json:"expanded_price"`
	GSTAmount       decimal.Decimal `json:"gst_amount"`
	TotalValue      decimal.Decimal `json:"total_value"`
}

// Quotation is the persisted record. Items are stored as a jsonb snapshot,
// not as foreign keys into the catalogue.
type Quotation struct {
	ID         int64           `json:"id" db:"id"`
	CompanyID  int64           `json:"company_id" db:"company_id"`
	ClientID   int64           `json:"client_id" db:"client_id"`
	EmployeeID *int64          `json:"employee_id,omitempty" db:"employee_id"`
	RefNumber  string          `json:"ref_number" db:"ref_number"`
	QuoteDate  time.Time       `json:"quote_date" db:"quote_date"`
	Items      []LineItem      `json:"items" db:"items"`
	SubTotal   decimal.Decimal `json:"sub_total" db:"sub_total"`
	TotalGST   decimal.Decimal `json:"total_gst" db:"total_gst"`
	GrandTotal decimal.Decimal `json:"grand_total" db:"grand_total"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at" db:"updated_at"`
}
