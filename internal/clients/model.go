package clients

import "time"

// Client is a quotation recipient. Clients belong to exactly one company and
// are removed when the company is deleted.
type Client struct {
	ID           int64     `json:"id" db:"id"`
	CompanyID    int64     `json:"company_id" db:"company_id"`
	Name         string    `json:"name" db:"name"`
	BusinessName *string   `json:"business_name,omitempty" db:"business_name"`
	Email        *string   `json:"email,omitempty" db:"email"`
	Mobile       *string   `json:"mobile,omitempty" db:"mobile"`
	Address      *string   `json:"address,omitempty" db:"address"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
