package employees

type CreateEmployeeRequest struct {
	Name  string  `json:"name" validate:"required,max=200"`
	Phone *string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
}

type UpdateEmployeeRequest struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,max=200"`
	Phone *string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
}
