package repository

import (
	"context"
	"fmt"

	"course-platform/internal/data/entity"
	"course-platform/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ProgressRepository interface {
	Create(ctx context.Context, progress *entity.CourseProgress) error
	FindByUserAndCourse(ctx context.Context, userID, courseID uuid.UUID) (*entity.CourseProgress, error)
	FindLectureProgress(ctx context.Context, courseProgressID uuid.UUID) ([]*entity.LectureProgress, error)
	UpsertLectureViewed(ctx context.Context, courseProgressID, lectureID uuid.UUID, viewed bool) error
	ResetLectures(ctx context.Context, courseProgressID uuid.UUID) error
	SetCompleted(ctx context.Context, courseProgressID uuid.UUID, completed bool) error
}

type progressRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewProgressRepository(db database.PgxIface, log *zap.Logger) ProgressRepository {
	return &progressRepository{
		db:  db,
		log: log.With(zap.String("repository", "progress")),
	}
}

func (r *progressRepository) Create(ctx context.Context, progress *entity.CourseProgress) error {
	query := `
		INSERT INTO course_progress (id, user_id, course_id, completed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, course_id) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query,
		progress.ID,
		progress.UserID,
		progress.CourseID,
		progress.Completed,
		progress.CreatedAt,
		progress.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create course progress",
			zap.Error(err),
			zap.String("user_id", progress.UserID.String()),
			zap.String("course_id", progress.CourseID.String()),
		)
		return fmt.Errorf("create course progress for user %s: %w", progress.UserID.String(), err)
	}

	return nil
}

func (r *progressRepository) FindByUserAndCourse(ctx context.Context, userID, courseID uuid.UUID) (*entity.CourseProgress, error) {
	query := `
		SELECT id, user_id, course_id, completed, created_at, updated_at
		FROM course_progress
		WHERE user_id = $1 AND course_id = $2
	`

	var progress entity.CourseProgress
	err := r.db.QueryRow(ctx, query, userID, courseID).Scan(
		&progress.ID,
		&progress.UserID,
		&progress.CourseID,
		&progress.Completed,
		&progress.CreatedAt,
		&progress.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find course progress",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("course_id", courseID.String()),
		)
		return nil, fmt.Errorf("find course progress for user %s: %w", userID.String(), err)
	}

	return &progress, nil
}

func (r *progressRepository) FindLectureProgress(ctx context.Context, courseProgressID uuid.UUID) ([]*entity.LectureProgress, error) {
	query := `
		SELECT id, course_progress_id, lecture_id, viewed, created_at, updated_at
		FROM lecture_progress
		WHERE course_progress_id = $1
	`

	rows, err := r.db.Query(ctx, query, courseProgressID)
	if err != nil {
		r.log.Error("Failed to find lecture progress",
			zap.Error(err),
			zap.String("course_progress_id", courseProgressID.String()),
		)
		return nil, fmt.Errorf("find lecture progress %s: %w", courseProgressID.String(), err)
	}
	defer rows.Close()

	var items []*entity.LectureProgress
	for rows.Next() {
		var item entity.LectureProgress
		err := rows.Scan(
			&item.ID,
			&item.CourseProgressID,
			&item.LectureID,
			&item.Viewed,
			&item.CreatedAt,
			&item.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan lecture progress row", zap.Error(err))
			return nil, fmt.Errorf("scan lecture progress row: %w", err)
		}
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate lecture progress rows: %w", err)
	}

	return items, nil
}

func (r *progressRepository) UpsertLectureViewed(ctx context.Context, courseProgressID, lectureID uuid.UUID, viewed bool) error {
	query := `
		INSERT INTO lecture_progress (id, course_progress_id, lecture_id, viewed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (course_progress_id, lecture_id)
		DO UPDATE SET viewed = $4, updated_at = NOW()
	`

	_, err := r.db.Exec(ctx, query, uuid.New(), courseProgressID, lectureID, viewed)
	if err != nil {
		r.log.Error("Failed to upsert lecture progress",
			zap.Error(err),
			zap.String("course_progress_id", courseProgressID.String()),
			zap.String("lecture_id", lectureID.String()),
		)
		return fmt.Errorf("upsert lecture progress %s: %w", lectureID.String(), err)
	}

	return nil
}

func (r *progressRepository) ResetLectures(ctx context.Context, courseProgressID uuid.UUID) error {
	query := `
		UPDATE lecture_progress
		SET viewed = false, updated_at = NOW()
		WHERE course_progress_id = $1
	`

	_, err := r.db.Exec(ctx, query, courseProgressID)
	if err != nil {
		r.log.Error("Failed to reset lecture progress",
			zap.Error(err),
			zap.String("course_progress_id", courseProgressID.String()),
		)
		return fmt.Errorf("reset lecture progress %s: %w", courseProgressID.String(), err)
	}

	return nil
}

func (r *progressRepository) SetCompleted(ctx context.Context, courseProgressID uuid.UUID, completed bool) error {
	query := `
		UPDATE course_progress
		SET completed = $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, courseProgressID, completed)
	if err != nil {
		r.log.Error("Failed to set course progress completed",
			zap.Error(err),
			zap.String("course_progress_id", courseProgressID.String()),
			zap.Bool("completed", completed),
		)
		return fmt.Errorf("set course progress %s completed: %w", courseProgressID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("course progress %s not found", courseProgressID.String())
	}

	return nil
}
