package request

type CreateCourseRequest struct {
	Title        string  `json:"title" validate:"required,min=3,max=200"`
	Subtitle     *string `json:"subtitle,omitempty" validate:"omitempty,max=300"`
	Description  *string `json:"description,omitempty"`
	Category     string  `json:"category" validate:"required,min=2,max=100"`
	Level        string  `json:"level" validate:"required,oneof=beginner intermediate advanced"`
	Price        float64 `json:"price" validate:"min=0"`
	Currency     string  `json:"currency,omitempty" validate:"omitempty,len=3"`
	ThumbnailURL *string `json:"thumbnail_url,omitempty" validate:"omitempty,url"`
}

type UpdateCourseRequest struct {
	Title        *string  `json:"title,omitempty" validate:"omitempty,min=3,max=200"`
	Subtitle     *string  `json:"subtitle,omitempty" validate:"omitempty,max=300"`
	Description  *string  `json:"description,omitempty"`
	Category     *string  `json:"category,omitempty" validate:"omitempty,min=2,max=100"`
	Level        *string  `json:"level,omitempty" validate:"omitempty,oneof=beginner intermediate advanced"`
	Price        *float64 `json:"price,omitempty" validate:"omitempty,min=0"`
	Currency     *string  `json:"currency,omitempty" validate:"omitempty,len=3"`
	ThumbnailURL *string  `json:"thumbnail_url,omitempty" validate:"omitempty,url"`
}

// SearchCoursesRequest is filled from query parameters
type SearchCoursesRequest struct {
	Query    string `json:"q"`
	Category string `json:"category" validate:"omitempty,max=100"`
	Level    string `json:"level" validate:"omitempty,oneof=beginner intermediate advanced"`
	SortBy   string `json:"sort" validate:"omitempty,oneof=price_asc price_desc newest"`
}
