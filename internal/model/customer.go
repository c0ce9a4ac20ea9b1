package model

import "time"

// Customer represents a customer and the ordered list of products bought on
// credit. Products grow append-only; individual products are never removed,
// only the whole customer is.
type Customer struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	Products  []Product `json:"products" db:"products"`
}

// NewCustomer builds a customer record with a server-assigned creation time
// and the mandatory first product. The ID is assigned by the store on insert.
func NewCustomer(name string, first Product) *Customer {
	return &Customer{
		Name:      name,
		CreatedAt: time.Now().UTC(),
		Products:  []Product{first},
	}
}

// CreateCustomerRequest carries the fields of a customer creation request.
// Price and Status arrive as raw form values and are normalised by the model.
type CreateCustomerRequest struct {
	CustomerName string
	ProductName  string
	Price        string
	Status       string
	Image        *ImageUpload
}

// AddProductRequest carries the fields of an add-product request.
type AddProductRequest struct {
	ProductName string
	Price       string
	Status      string
	Image       *ImageUpload
}

// ImageUpload is an in-memory uploaded image file.
type ImageUpload struct {
	Filename string
	Data     []byte
}
