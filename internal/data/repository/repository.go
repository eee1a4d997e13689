package repository

import (
	"course-platform/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User          UserRepository
	Session       SessionRepository
	PasswordReset PasswordResetRepository
	Course        CourseRepository
	Lecture       LectureRepository
	Enrollment    EnrollmentRepository
	Purchase      PurchaseRepository
	Progress      ProgressRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:          NewUserRepository(db, log),
		Session:       NewSessionRepository(db, log),
		PasswordReset: NewPasswordResetRepository(db, log),
		Course:        NewCourseRepository(db, log),
		Lecture:       NewLectureRepository(db, log),
		Enrollment:    NewEnrollmentRepository(db, log),
		Purchase:      NewPurchaseRepository(db, log),
		Progress:      NewProgressRepository(db, log),
	}
}
