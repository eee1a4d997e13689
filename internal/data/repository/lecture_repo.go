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

type LectureRepository interface {
	Create(ctx context.Context, lecture *entity.Lecture) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Lecture, error)
	FindByCourse(ctx context.Context, courseID uuid.UUID) ([]*entity.Lecture, error)
	CountByCourse(ctx context.Context, courseID uuid.UUID) (int64, error)
	MaxPosition(ctx context.Context, courseID uuid.UUID) (int, error)
	Update(ctx context.Context, lecture *entity.Lecture) error
	Delete(ctx context.Context, id uuid.UUID) error
	ShiftPositionsAfter(ctx context.Context, courseID uuid.UUID, position int) error
}

type lectureRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewLectureRepository(db database.PgxIface, log *zap.Logger) LectureRepository {
	return &lectureRepository{
		db:  db,
		log: log.With(zap.String("repository", "lecture")),
	}
}

func (r *lectureRepository) Create(ctx context.Context, lecture *entity.Lecture) error {
	query := `
		INSERT INTO lectures (id, course_id, title, description, video_url,
		                      position, preview, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		lecture.ID,
		lecture.CourseID,
		lecture.Title,
		lecture.Description,
		lecture.VideoURL,
		lecture.Position,
		lecture.Preview,
		lecture.CreatedAt,
		lecture.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create lecture",
			zap.Error(err),
			zap.String("course_id", lecture.CourseID.String()),
			zap.String("title", lecture.Title),
		)
		return fmt.Errorf("create lecture %s: %w", lecture.Title, err)
	}

	return nil
}

func (r *lectureRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Lecture, error) {
	query := `
		SELECT id, course_id, title, description, video_url, position, preview,
		       created_at, updated_at
		FROM lectures
		WHERE id = $1 AND deleted_at IS NULL
	`

	var lecture entity.Lecture
	err := r.db.QueryRow(ctx, query, id).Scan(
		&lecture.ID,
		&lecture.CourseID,
		&lecture.Title,
		&lecture.Description,
		&lecture.VideoURL,
		&lecture.Position,
		&lecture.Preview,
		&lecture.CreatedAt,
		&lecture.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find lecture by ID",
			zap.Error(err),
			zap.String("lecture_id", id.String()),
		)
		return nil, fmt.Errorf("find lecture by ID %s: %w", id.String(), err)
	}

	return &lecture, nil
}

func (r *lectureRepository) FindByCourse(ctx context.Context, courseID uuid.UUID) ([]*entity.Lecture, error) {
	query := `
		SELECT id, course_id, title, description, video_url, position, preview,
		       created_at, updated_at
		FROM lectures
		WHERE course_id = $1 AND deleted_at IS NULL
		ORDER BY position ASC
	`

	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		r.log.Error("Failed to find lectures by course",
			zap.Error(err),
			zap.String("course_id", courseID.String()),
		)
		return nil, fmt.Errorf("find lectures for course %s: %w", courseID.String(), err)
	}
	defer rows.Close()

	var lectures []*entity.Lecture
	for rows.Next() {
		var lecture entity.Lecture
		err := rows.Scan(
			&lecture.ID,
			&lecture.CourseID,
			&lecture.Title,
			&lecture.Description,
			&lecture.VideoURL,
			&lecture.Position,
			&lecture.Preview,
			&lecture.CreatedAt,
			&lecture.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan lecture row", zap.Error(err))
			return nil, fmt.Errorf("scan lecture row: %w", err)
		}
		lectures = append(lectures, &lecture)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate lecture rows: %w", err)
	}

	return lectures, nil
}

func (r *lectureRepository) CountByCourse(ctx context.Context, courseID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM lectures WHERE course_id = $1 AND deleted_at IS NULL`

	var count int64
	err := r.db.QueryRow(ctx, query, courseID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count lectures",
			zap.Error(err),
			zap.String("course_id", courseID.String()),
		)
		return 0, fmt.Errorf("count lectures for course %s: %w", courseID.String(), err)
	}

	return count, nil
}

func (r *lectureRepository) MaxPosition(ctx context.Context, courseID uuid.UUID) (int, error) {
	query := `
		SELECT COALESCE(MAX(position), 0)
		FROM lectures
		WHERE course_id = $1 AND deleted_at IS NULL
	`

	var max int
	err := r.db.QueryRow(ctx, query, courseID).Scan(&max)
	if err != nil {
		r.log.Error("Failed to get max lecture position",
			zap.Error(err),
			zap.String("course_id", courseID.String()),
		)
		return 0, fmt.Errorf("max lecture position for course %s: %w", courseID.String(), err)
	}

	return max, nil
}

func (r *lectureRepository) Update(ctx context.Context, lecture *entity.Lecture) error {
	query := `
		UPDATE lectures
		SET title = $2, description = $3, video_url = $4, preview = $5,
		    updated_at = $6
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query,
		lecture.ID,
		lecture.Title,
		lecture.Description,
		lecture.VideoURL,
		lecture.Preview,
		lecture.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update lecture",
			zap.Error(err),
			zap.String("lecture_id", lecture.ID.String()),
		)
		return fmt.Errorf("update lecture %s: %w", lecture.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("lecture %s not found", lecture.ID.String())
	}

	return nil
}

func (r *lectureRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE lectures SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete lecture",
			zap.Error(err),
			zap.String("lecture_id", id.String()),
		)
		return fmt.Errorf("delete lecture %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("lecture %s not found", id.String())
	}

	return nil
}

// ShiftPositionsAfter closes the position gap left by a deleted lecture
func (r *lectureRepository) ShiftPositionsAfter(ctx context.Context, courseID uuid.UUID, position int) error {
	query := `
		UPDATE lectures
		SET position = position - 1, updated_at = NOW()
		WHERE course_id = $1 AND position > $2 AND deleted_at IS NULL
	`

	_, err := r.db.Exec(ctx, query, courseID, position)
	if err != nil {
		r.log.Error("Failed to shift lecture positions",
			zap.Error(err),
			zap.String("course_id", courseID.String()),
			zap.Int("position", position),
		)
		return fmt.Errorf("shift lecture positions for course %s: %w", courseID.String(), err)
	}

	return nil
}
