package companies

type CreateCompanyRequest struct {
	Name          string  `json:"name" validate:"required,max=200"`
	Email         *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone         *string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Address       *string `json:"address,omitempty"`
	PANNumber     *string `json:"pan_number,omitempty" validate:"omitempty,max=10"`
	GSTNumber     *string `json:"gst_number,omitempty" validate:"omitempty,max=15"`
	BankName      *string `json:"bank_name,omitempty"`
	AccountNumber *string `json:"account_number,omitempty"`
	IFSCCode      *string `json:"ifsc_code,omitempty" validate:"omitempty,max=11"`
	BranchCode    *string `json:"branch_code,omitempty"`
	MICRCode      *string `json:"micr_code,omitempty"`
	AccountType   *string `json:"account_type,omitempty"`
	SealImageURL  *string `json:"seal_image_url,omitempty"`
	RefFormat     *string `json:"ref_format,omitempty"`
	PaymentTerms  *string `json:"payment_terms,omitempty"`
}

type UpdateCompanyRequest struct {
	Name          *string `json:"name,omitempty" validate:"omitempty,max=200"`
	Email         *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone         *string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Address       *string `json:"address,omitempty"`
	PANNumber     *string `json:"pan_number,omitempty" validate:"omitempty,max=10"`
	GSTNumber     *string `json:"gst_number,omitempty" validate:"omitempty,max=15"`
	BankName      *string `json:"bank_name,omitempty"`
	AccountNumber *string `json:"account_number,omitempty"`
	IFSCCode      *string `json:"ifsc_code,omitempty" validate:"omitempty,max=11"`
	BranchCode    *string `json:"branch_code,omitempty"`
	MICRCode      *string `json:"micr_code,omitempty"`
	AccountType   *string `json:"account_type,omitempty"`
	SealImageURL  *string `json:"seal_image_url,omitempty"`
	RefFormat     *string `json:"ref_format,omitempty"`
	PaymentTerms  *string `json:"payment_terms,omitempty"`
}
