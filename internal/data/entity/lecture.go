package entity

import (
	"github.com/google/uuid"
)

type Lecture struct {
	Base
	CourseID    uuid.UUID `db:"course_id"`
	Title       string    `db:"title"`
	Description *string   `db:"description"`
	VideoURL    *string   `db:"video_url"`
	Position    int       `db:"position"`
	Preview     bool      `db:"preview"`
}
