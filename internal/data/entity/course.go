package entity

import (
	"github.com/google/uuid"
)

type CourseLevel string

const (
	LevelBeginner     CourseLevel = "beginner"
	LevelIntermediate CourseLevel = "intermediate"
	LevelAdvanced     CourseLevel = "advanced"
)

type Course struct {
	Base
	InstructorID uuid.UUID   `db:"instructor_id"`
	Title        string      `db:"title"`
	Subtitle     *string     `db:"subtitle"`
	Description  *string     `db:"description"`
	Category     string      `db:"category"`
	Level        CourseLevel `db:"level"`
	Price        float64     `db:"price"`
	Currency     string      `db:"currency"`
	ThumbnailURL *string     `db:"thumbnail_url"`
	Published    bool        `db:"published"`
}
