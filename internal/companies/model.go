package companies

import "time"

// Company is the root aggregate: clients and quotations belong to a company
// and are removed with it.
type Company struct {
	ID              int64     `json:"id" db:"id"`
	Name            string    `json:"name" db:"name"`
	Email           *string   `json:"email,omitempty" db:"email"`
	Phone           *string   `json:"phone,omitempty" db:"phone"`
	Address         *string   `json:"address,omitempty" db:"address"`
	PANNumber       *string   `json:"pan_number,omitempty" db:"pan_number"`
	GSTNumber       *string   `json:"gst_number,omitempty" db:"gst_number"`
	BankName        *string   `json:"bank_name,omitempty" db:"bank_name"`
	AccountNumber   *string   `json:"account_number,omitempty" db:"account_number"`
	IFSCCode        *string   `json:"ifsc_code,omitempty" db:"ifsc_code"`
	BranchCode      *string   `json:"branch_code,omitempty" db:"branch_code"`
	MICRCode        *string   `json:"micr_code,omitempty" db:"micr_code"`
	AccountType     string    `json:"account_type" db:"account_type"`
	SealImageURL    *string   `json:"seal_image_url,omitempty" db:"seal_image_url"`
	RefFormat       string    `json:"ref_format" db:"ref_format"`
	LastQuoteNumber int       `json:"last_quote_number" db:"last_quote_number"`
	PaymentTerms    *string   `json:"payment_terms,omitempty" db:"payment_terms"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}
