package user

// RegisterInput represents the request body for member registration.
type RegisterInput struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	BankID   string `json:"bank_id" validate:"required,uuid4"`
}
