package items

import "time"

// Item is a priced catalogue entry. Quotations copy item fields into line-item
// snapshots, so editing an item never changes historical quotations.
type Item struct {
	ID            int64    `json:"id" db:"id"`
	CatalogueID   string   `json:"catalogue_id" db:"catalogue_id"`
	Description   string   `json:"description" db:"description"`
	PackSize      *string  `json:"pack_size,omitempty" db:"pack_size"`
	CASNumber     *string  `json:"cas_number,omitempty" db:"cas_number"`
	HSNCode       *string  `json:"hsn_code,omitempty" db:"hsn_code"`
	Brand         *string  `json:"brand,omitempty" db:"brand"`
	Price         *float64 `json:"price,omitempty" db:"price"`
	GSTPercentage *float64 `json:"gst_percentage,omitempty" db:"gst_percentage"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
