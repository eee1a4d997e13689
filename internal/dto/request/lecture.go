package request

type CreateLectureRequest struct {
	Title       string  `json:"title" validate:"required,min=3,max=200"`
	Description *string `json:"description,omitempty"`
	VideoURL    *string `json:"video_url,omitempty" validate:"omitempty,url"`
	Preview     bool    `json:"preview"`
}

type UpdateLectureRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=3,max=200"`
	Description *string `json:"description,omitempty"`
	VideoURL    *string `json:"video_url,omitempty" validate:"omitempty,url"`
	Preview     *bool   `json:"preview,omitempty"`
}
