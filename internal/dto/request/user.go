package request

type UpdateProfileRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=3,max=100"`
	PhotoURL *string `json:"photo_url,omitempty" validate:"omitempty,url"`
}
