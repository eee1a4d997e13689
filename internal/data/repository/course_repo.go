package repository

import (
	"context"
	"fmt"
	"strings"

	"course-platform/internal/data/entity"
	"course-platform/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// CourseFilter holds the optional search parameters
type CourseFilter struct {
	Query    string
	Category string
	Level    string
	SortBy   string // "price_asc", "price_desc", defaults to newest first
}

type CourseRepository interface {
	// CRUD
	Create(ctx context.Context, course *entity.Course) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Course, error)
	Update(ctx context.Context, course *entity.Course) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Catalog queries
	FindPublished(ctx context.Context, filter CourseFilter, offset, limit int) ([]*entity.Course, error)
	CountPublished(ctx context.Context, filter CourseFilter) (int64, error)
	FindByInstructor(ctx context.Context, instructorID uuid.UUID) ([]*entity.Course, error)
	SetPublished(ctx context.Context, id uuid.UUID, published bool) error
}

type courseRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCourseRepository(db database.PgxIface, log *zap.Logger) CourseRepository {
	return &courseRepository{
		db:  db,
		log: log.With(zap.String("repository", "course")),
	}
}

func (r *courseRepository) Create(ctx context.Context, course *entity.Course) error {
	query := `
		INSERT INTO courses (id, instructor_id, title, subtitle, description,
		                     category, level, price, currency, thumbnail_url,
		                     published, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.Exec(ctx, query,
		course.ID,
		course.InstructorID,
		course.Title,
		course.Subtitle,
		course.Description,
		course.Category,
		course.Level,
		course.Price,
		course.Currency,
		course.ThumbnailURL,
		course.Published,
		course.CreatedAt,
		course.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create course",
			zap.Error(err),
			zap.String("title", course.Title),
			zap.String("instructor_id", course.InstructorID.String()),
		)
		return fmt.Errorf("create course %s: %w", course.Title, err)
	}

	return nil
}

func (r *courseRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Course, error) {
	query := `
		SELECT id, instructor_id, title, subtitle, description, category, level,
		       price, currency, thumbnail_url, published, created_at, updated_at
		FROM courses
		WHERE id = $1 AND deleted_at IS NULL
	`

	var course entity.Course
	err := r.db.QueryRow(ctx, query, id).Scan(
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

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find course by ID",
			zap.Error(err),
			zap.String("course_id", id.String()),
		)
		return nil, fmt.Errorf("find course by ID %s: %w", id.String(), err)
	}

	return &course, nil
}

func (r *courseRepository) Update(ctx context.Context, course *entity.Course) error {
	query := `
		UPDATE courses
		SET title = $2, subtitle = $3, description = $4, category = $5,
		    level = $6, price = $7, currency = $8, thumbnail_url = $9,
		    updated_at = $10
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query,
		course.ID,
		course.Title,
		course.Subtitle,
		course.Description,
		course.Category,
		course.Level,
		course.Price,
		course.Currency,
		course.ThumbnailURL,
		course.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update course",
			zap.Error(err),
			zap.String("course_id", course.ID.String()),
		)
		return fmt.Errorf("update course %s: %w", course.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("course %s not found", course.ID.String())
	}

	return nil
}

func (r *courseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE courses SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete course",
			zap.Error(err),
			zap.String("course_id", id.String()),
		)
		return fmt.Errorf("delete course %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("course %s not found", id.String())
	}

	r.log.Info("Course deleted", zap.String("course_id", id.String()))
	return nil
}

// buildPublishedFilter appends the shared WHERE clauses for catalog queries
func buildPublishedFilter(queryBuilder *strings.Builder, filter CourseFilter, args []interface{}) []interface{} {
	argCount := len(args) + 1

	if filter.Query != "" {
		queryBuilder.WriteString(fmt.Sprintf(
			" AND (title ILIKE $%d OR subtitle ILIKE $%d OR description ILIKE $%d)",
			argCount, argCount, argCount))
		args = append(args, "%"+filter.Query+"%")
		argCount++
	}

	if filter.Category != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND category = $%d", argCount))
		args = append(args, filter.Category)
		argCount++
	}

	if filter.Level != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND level = $%d", argCount))
		args = append(args, filter.Level)
		argCount++
	}

	return args
}

func (r *courseRepository) FindPublished(ctx context.Context, filter CourseFilter, offset, limit int) ([]*entity.Course, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT id, instructor_id, title, subtitle, description, category, level,
		       price, currency, thumbnail_url, published, created_at, updated_at
		FROM courses
		WHERE published = true AND deleted_at IS NULL
	`)

	args := []interface{}{}
	args = buildPublishedFilter(&queryBuilder, filter, args)

	switch filter.SortBy {
	case "price_asc":
		queryBuilder.WriteString(" ORDER BY price ASC")
	case "price_desc":
		queryBuilder.WriteString(" ORDER BY price DESC")
	default:
		queryBuilder.WriteString(" ORDER BY created_at DESC")
	}

	argCount := len(args) + 1
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCount, argCount+1))
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.log.Error("Failed to find published courses",
			zap.Error(err),
			zap.String("query", filter.Query),
			zap.Int("offset", offset),
			zap.Int("limit", limit),
		)
		return nil, fmt.Errorf("find published courses: %w", err)
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
			r.log.Error("Failed to scan course row", zap.Error(err))
			return nil, fmt.Errorf("scan course row: %w", err)
		}
		courses = append(courses, &course)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate course rows: %w", err)
	}

	return courses, nil
}

func (r *courseRepository) CountPublished(ctx context.Context, filter CourseFilter) (int64, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT COUNT(*)
		FROM courses
		WHERE published = true AND deleted_at IS NULL
	`)

	args := []interface{}{}
	args = buildPublishedFilter(&queryBuilder, filter, args)

	var count int64
	err := r.db.QueryRow(ctx, queryBuilder.String(), args...).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count published courses", zap.Error(err))
		return 0, fmt.Errorf("count published courses: %w", err)
	}

	return count, nil
}

func (r *courseRepository) FindByInstructor(ctx context.Context, instructorID uuid.UUID) ([]*entity.Course, error) {
	query := `
		SELECT id, instructor_id, title, subtitle, description, category, level,
		       price, currency, thumbnail_url, published, created_at, updated_at
		FROM courses
		WHERE instructor_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, instructorID)
	if err != nil {
		r.log.Error("Failed to find instructor courses",
			zap.Error(err),
			zap.String("instructor_id", instructorID.String()),
		)
		return nil, fmt.Errorf("find courses for instructor %s: %w", instructorID.String(), err)
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
			r.log.Error("Failed to scan course row", zap.Error(err))
			return nil, fmt.Errorf("scan course row: %w", err)
		}
		courses = append(courses, &course)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate course rows: %w", err)
	}

	return courses, nil
}

func (r *courseRepository) SetPublished(ctx context.Context, id uuid.UUID, published bool) error {
	query := `
		UPDATE courses
		SET published = $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query, id, published)
	if err != nil {
		r.log.Error("Failed to set course published flag",
			zap.Error(err),
			zap.String("course_id", id.String()),
			zap.Bool("published", published),
		)
		return fmt.Errorf("set course %s published to %t: %w", id.String(), published, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("course %s not found", id.String())
	}

	return nil
}
