package clients

type CreateClientRequest struct {
	CompanyID    int64   `json:"company_id" validate:"required,gt=0"`
	Name         string  `json:"name" validate:"required,max=200"`
	BusinessName *string `json:"business_name,omitempty" validate:"omitempty,max=200"`
	Email        *string `json:"email,omitempty" validate:"omitempty,email"`
	Mobile       *string `json:"mobile,omitempty" validate:"omitempty,max=20"`
	Address      *string `json:"address,omitempty"`
}

type UpdateClientRequest struct {
	Name         *string `json:"name,omitempty" validate:"omitempty,max=200"`
	BusinessName *string `json:"business_name,omitempty" validate:"omitempty,max=200"`
	Email        *string `json:"email,omitempty" validate:"omitempty,email"`
	Mobile       *string `json:"mobile,omitempty" validate:"omitempty,max=20"`
	Address      *string `json:"address,omitempty"`
}

type ListClientsRequest struct {
	CompanyID *int64 `json:"company_id,omitempty"`
}
