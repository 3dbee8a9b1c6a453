package items

type CreateItemRequest struct {
	CatalogueID   string   `json:"catalogue_id" validate:"required,max=100"`
	Description   string   `json:"description" validate:"required"`
	PackSize      *string  `json:"pack_size,omitempty" validate:"omitempty,max=50"`
	CASNumber     *string  `json:"cas_number,omitempty" validate:"omitempty,max=20"`
	HSNCode       *string  `json:"hsn_code,omitempty" validate:"omitempty,max=8"`
	Brand         *string  `json:"brand,omitempty" validate:"omitempty,max=100"`
	Price         *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	GSTPercentage *float64 `json:"gst_percentage,omitempty" validate:"omitempty,gte=0,lte=100"`
}

type UpdateItemRequest struct {
	CatalogueID   *string  `json:"catalogue_id,omitempty" validate:"omitempty,max=100"`
	Description   *string  `json:"description,omitempty"`
	PackSize      *string  `json:"pack_size,omitempty" validate:"omitempty,max=50"`
	CASNumber     *string  `json:"cas_number,omitempty" validate:"omitempty,max=20"`
	HSNCode       *string  `json:"hsn_code,omitempty" validate:"omitempty,max=8"`
	Brand         *string  `json:"brand,omitempty" validate:"omitempty,max=100"`
	Price         *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	GSTPercentage *float64 `json:"gst_percentage,omitempty" validate:"omitempty,gte=0,lte=100"`
}
