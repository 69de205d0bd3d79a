package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Users ---

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=10,max=72"`
	Role     string `json:"role"     validate:"omitempty,oneof=customer admin"`
}

// updateUserRequest is checked by the service so that a missing user is
// reported before a bad role.
type updateUserRequest struct {
	Role string `json:"role"`
}

// --- Products ---

type createProductRequest struct {
	Name        string  `json:"name"        validate:"required"`
	Price       float64 `json:"price"       validate:"gt=0"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
}

// updateProductRequest is a partial update; absent fields keep their value.
type updateProductRequest struct {
	Name        *string  `json:"name"`
	Price       *float64 `json:"price"`
	Image       *string  `json:"image"`
	Description *string  `json:"description"`
}

// --- Orders ---

type orderProductRequest struct {
	ID          string  `json:"_id"         validate:"required"`
	Name        string  `json:"name"        validate:"required"`
	Price       float64 `json:"price"       validate:"gt=0"`
	Description string  `json:"description"`
}

type orderItemRequest struct {
	Product  orderProductRequest `json:"product"`
	Quantity int                 `json:"quantity" validate:"gt=0"`
}

type createOrderRequest struct {
	Items []orderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// --- Tokens ---

type tokenResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"tokenType"`
}
