package quotations

type LineItemRequest struct {
	ItemID          *int64  `json:"item_id" validate:"omitempty,gt=0"`
	CatalogueID     string  `json:"catalogue_id"`
	Description     string  `json:"description" validate:"required"`
	PackSize        string  `json:"pack_size"`
	HSNCode         string  `json:"hsn_code"`
	Brand           string  `json:"brand"`
	LeadTime        string  `json:"lead_time"`
	Quantity        float64 `json:"quantity" validate:"gte=0"`
	UnitRate        float64 `json:"unit_rate" validate:"gte=0"`
	DiscountPercent float64 `json:"discount_percent" validate:"gte=0,lte=100"`
	GSTPercent      float64 `json:"gst_percent" validate:"gte=0,lte=100"`
}

type CreateQuotationRequest struct {
	CompanyID  int64             `json:"company_id" validate:"required,gt=0"`
	ClientID   int64             `json:"client_id" validate:"required,gt=0"`
	EmployeeID *int64            `json:"employee_id" validate:"omitempty,gt=0"`
	QuoteDate  *string           `json:"quote_date" validate:"omitempty,datetime=2006-01-02"`
	Items      []LineItemRequest `json:"items" validate:"required,min=1,dive"`
}
