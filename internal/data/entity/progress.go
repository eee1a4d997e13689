package entity

import (
	"github.com/google/uuid"
)

type CourseProgress struct {
	BaseNoDelete
	UserID    uuid.UUID `db:"user_id"`
	CourseID  uuid.UUID `db:"course_id"`
	Completed bool      `db:"completed"`
}

type LectureProgress struct {
	BaseNoDelete
	CourseProgressID uuid.UUID `db:"course_progress_id"`
	LectureID        uuid.UUID `db:"lecture_id"`
	Viewed           bool      `db:"viewed"`
}
