package dto

import "time"

// CreateCustomerRequest alta de un titular de cuenta municipal.
type CreateCustomerRequest struct {
	AccountNumber string `json:"account_number" validate:"required,min=3,max=30"`
	Name          string `json:"name" validate:"required,min=1,max=200"`
	Email         string `json:"email" validate:"omitempty,email"`
	Phone         string `json:"phone" validate:"omitempty,max=20"`
	Address       string `json:"address" validate:"omitempty,max=300"`
	Ward          string `json:"ward" validate:"omitempty,max=50"`
}

// UpdateCustomerRequest actualización de datos de contacto.
type UpdateCustomerRequest struct {
	Name    string `json:"name" validate:"omitempty,min=1,max=200"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone" validate:"omitempty,max=20"`
	Address string `json:"address" validate:"omitempty,max=300"`
	Ward    string `json:"ward" validate:"omitempty,max=50"`
	Status  string `json:"status" validate:"omitempty,oneof=active suspended closed"`
}

// CustomerResponse salida de un titular.
type CustomerResponse struct {
	AccountNumber string    `json:"account_number"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Address       string    `json:"address"`
	Ward          string    `json:"ward"`
	Status        string    `json:"status"`
	Balance       string    `json:"balance"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CustomerListResponse página de titulares con cursor para la siguiente.
type CustomerListResponse struct {
	Items      []CustomerResponse `json:"items"`
	NextCursor string             `json:"next_cursor,omitempty"`
}
