package pat

type CreateTokenRequest struct {
	Name          string `json:"name" validate:"required,max=100"`
	ExpiresInDays *int   `json:"expires_in_days" validate:"omitempty,min=0,max=3650"`
}
