package repository

import (
	"context"
	"fmt"

	"course-platform/internal/data/entity"
	"course-platform/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *entity.Enrollment) error
	Exists(ctx context.Context, userID, courseID uuid.UUID) (bool, error)
	FindCoursesByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Course, error)
}

type enrollmentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewEnrollmentRepository(db database.PgxIface, log *zap.Logger) EnrollmentRepository {
	return &enrollmentRepository{
		db:  db,
		log: log.With(zap.String("repository", "enrollment")),
	}
}

func (r *enrollmentRepository) Create(ctx context.Context, enrollment *entity.Enrollment) error {
	// ON CONFLICT keeps a replayed webhook from failing on the unique pair
	query := `
		INSERT INTO enrollments (user_id, course_id, enrolled_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, course_id) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query,
		enrollment.UserID,
		enrollment.CourseID,
		enrollment.EnrolledAt,
	)

	if err != nil {
		r.log.Error("Failed to create enrollment",
			zap.Error(err),
			zap.String("user_id", enrollment.UserID.String()),
			zap.String("course_id", enrollment.CourseID.String()),
		)
		return fmt.Errorf("create enrollment for user %s: %w", enrollment.UserID.String(), err)
	}

	return nil
}

func (r *enrollmentRepository) Exists(ctx context.Context, userID, courseID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM enrollments WHERE user_id = $1 AND course_id = $2
		)
	`

	var exists bool
	err := r.db.QueryRow(ctx, query, userID, courseID).Scan(&exists)
	if err != nil {
		r.log.Error("Failed to check enrollment",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("course_id", courseID.String()),
		)
		return false, fmt.Errorf("check enrollment for user %s: %w", userID.String(), err)
	}

	return exists, nil
}

func (r *enrollmentRepository) FindCoursesByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Course, error) {
	query := `
		SELECT c.id, c.instructor_id, c.title, c.subtitle, c.description,
		       c.category, c.level, c.price, c.currency, c.thumbnail_url,
		       c.published, c.created_at, c.updated_at
		FROM enrollments e
		JOIN courses c ON c.id = e.course_id AND c.deleted_at IS NULL
		WHERE e.user_id = $1
		ORDER BY e.enrolled_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find enrolled courses",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find enrolled courses for user %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var courses []*entity.Course
	for rows.Next() {
		var course entity.Course
		err := rows.Scan(
			&course.ID,
			&course.InstructorID,
			&course.Title,
			&course.Subtitle,
			&course.Description,
			&course.Category,
			&course.Level,
			&course.Price,
			&course.Currency,
			&course.ThumbnailURL,
			&course.Published,
			&course.CreatedAt,
			&course.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan enrolled course row", zap.Error(err))
			return nil, fmt.Errorf("scan enrolled course row: %w", err)
		}
		courses = append(courses, &course)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate enrolled course rows: %w", err)
	}

	return courses, nil
}
