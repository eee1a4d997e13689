package entity

import (
	"time"

	"github.com/google/uuid"
)

type Enrollment struct {
	UserID     uuid.UUID `db:"user_id"`
	CourseID   uuid.UUID `db:"course_id"`
	EnrolledAt time.Time `db:"enrolled_at"`
}
