package bank

// RegisterInput represents the request body for registering a cooperative bank.
type RegisterInput struct {
	Code    string `json:"code" validate:"required,min=2,max=20"`
	Name    string `json:"name" validate:"required,min=3,max=100"`
	Address string `json:"address" validate:"max=255"`
}
