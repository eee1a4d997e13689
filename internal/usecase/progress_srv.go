package usecase

import (
	"context"
	"fmt"
	"time"

	"course-platform/internal/data/entity"
	"course-platform/internal/data/repository"
	"course-platform/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProgressService interface {
	GetProgress(ctx context.Context, userID uuid.UUID, courseID string) (*response.ProgressResponse, error)
	MarkLectureViewed(ctx context.Context, userID uuid.UUID, courseID, lectureID string) (*response.ProgressResponse, error)
	MarkCompleted(ctx context.Context, userID uuid.UUID, courseID string) error
	MarkIncomplete(ctx context.Context, userID uuid.UUID, courseID string) error
}

type progressService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewProgressService(repo *repository.Repository, log *zap.Logger) ProgressService {
	return &progressService{
		repo: repo,
		log:  log.With(zap.String("service", "progress")),
	}
}

func (s *progressService) GetProgress(ctx context.Context, userID uuid.UUID, courseID string) (*response.ProgressResponse, error) {
	courseUUID, progress, err := s.loadProgress(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}

	return s.buildResponse(ctx, courseUUID, progress)
}

func (s *progressService) MarkLectureViewed(ctx context.Context, userID uuid.UUID, courseID, lectureID string) (*response.ProgressResponse, error) {
	courseUUID, progress, err := s.loadProgress(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}

	lectureUUID, err := uuid.Parse(lectureID)
	if err != nil {
		return nil, fmt.Errorf("invalid lecture ID format %s: %w", lectureID, err)
	}

	lecture, err := s.repo.Lecture.FindByID(ctx, lectureUUID)
	if err != nil {
		s.log.Error("Failed to find lecture", zap.Error(err), zap.String("lecture_id", lectureID))
		return nil, fmt.Errorf("failed to find lecture")
	}
	if lecture == nil || lecture.CourseID != courseUUID {
		return nil, fmt.Errorf("lecture %s not found", lectureID)
	}

	if err := s.repo.Progress.UpsertLectureViewed(ctx, progress.ID, lectureUUID, true); err != nil {
		s.log.Error("Failed to mark lecture viewed",
			zap.Error(err),
			zap.String("lecture_id", lectureID))
		return nil, fmt.Errorf("failed to update progress")
	}

	// Flip course completion once every lecture has been viewed
	resp, err := s.buildResponse(ctx, courseUUID, progress)
	if err != nil {
		return nil, err
	}

	if resp.Total > 0 && resp.Viewed == resp.Total && !progress.Completed {
		if err := s.repo.Progress.SetCompleted(ctx, progress.ID, true); err != nil {
			s.log.Warn("Failed to set course completed",
				zap.Error(err),
				zap.String("course_id", courseID))
		} else {
			resp.Completed = true
			s.log.Info("Course completed",
				zap.String("user_id", userID.String()),
				zap.String("course_id", courseID))
		}
	}

	return resp, nil
}

func (s *progressService) MarkCompleted(ctx context.Context, userID uuid.UUID, courseID string) error {
	courseUUID, progress, err := s.loadProgress(ctx, userID, courseID)
	if err != nil {
		return err
	}

	lectures, err := s.repo.Lecture.FindByCourse(ctx, courseUUID)
	if err != nil {
		s.log.Error("Failed to get lectures", zap.Error(err), zap.String("course_id", courseID))
		return fmt.Errorf("failed to get lectures")
	}

	for _, lecture := range lectures {
		if err := s.repo.Progress.UpsertLectureViewed(ctx, progress.ID, lecture.ID, true); err != nil {
			s.log.Error("Failed to mark lecture viewed",
				zap.Error(err),
				zap.String("lecture_id", lecture.ID.String()))
			return fmt.Errorf("failed to update progress")
		}
	}

	if err := s.repo.Progress.SetCompleted(ctx, progress.ID, true); err != nil {
		s.log.Error("Failed to set course completed", zap.Error(err), zap.String("course_id", courseID))
		return fmt.Errorf("failed to update progress")
	}

	s.log.Info("Course marked completed",
		zap.String("user_id", userID.String()),
		zap.String("course_id", courseID))

	return nil
}

func (s *progressService) MarkIncomplete(ctx context.Context, userID uuid.UUID, courseID string) error {
	_, progress, err := s.loadProgress(ctx, userID, courseID)
	if err != nil {
		return err
	}

	if err := s.repo.Progress.ResetLectures(ctx, progress.ID); err != nil {
		s.log.Error("Failed to reset lectures", zap.Error(err), zap.String("course_id", courseID))
		return fmt.Errorf("failed to update progress")
	}

	if err := s.repo.Progress.SetCompleted(ctx, progress.ID, false); err != nil {
		s.log.Error("Failed to clear course completed", zap.Error(err), zap.String("course_id", courseID))
		return fmt.Errorf("failed to update progress")
	}

	s.log.Info("Course progress reset",
		zap.String("user_id", userID.String()),
		zap.String("course_id", courseID))

	return nil
}

// ==================== HELPER METHODS ====================

// loadProgress checks enrollment and lazily creates the progress record
func (s *progressService) loadProgress(ctx context.Context, userID uuid.UUID, courseID string) (uuid.UUID, *entity.CourseProgress, error) {
	courseUUID, err := uuid.Parse(courseID)
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("invalid course ID format %s: %w", courseID, err)
	}

	enrolled, err := s.repo.Enrollment.Exists(ctx, userID, courseUUID)
	if err != nil {
		s.log.Error("Failed to check enrollment",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("course_id", courseID))
		return uuid.Nil, nil, fmt.Errorf("failed to check enrollment")
	}
	if !enrolled {
		return uuid.Nil, nil, fmt.Errorf("not enrolled in this course")
	}

	progress, err := s.repo.Progress.FindByUserAndCourse(ctx, userID, courseUUID)
	if err != nil {
		s.log.Error("Failed to get progress", zap.Error(err), zap.String("course_id", courseID))
		return uuid.Nil, nil, fmt.Errorf("failed to get progress")
	}

	if progress == nil {
		now := time.Now()
		progress = &entity.CourseProgress{
			BaseNoDelete: entity.BaseNoDelete{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			UserID:    userID,
			CourseID:  courseUUID,
			Completed: false,
		}

		if err := s.repo.Progress.Create(ctx, progress); err != nil {
			s.log.Error("Failed to create progress", zap.Error(err), zap.String("course_id", courseID))
			return uuid.Nil, nil, fmt.Errorf("failed to create progress")
		}

		// A concurrent request may have inserted first; reload to get its row
		existing, err := s.repo.Progress.FindByUserAndCourse(ctx, userID, courseUUID)
		if err == nil && existing != nil {
			progress = existing
		}
	}

	return courseUUID, progress, nil
}

func (s *progressService) buildResponse(ctx context.Context, courseID uuid.UUID, progress *entity.CourseProgress) (*response.ProgressResponse, error) {
	lectures, err := s.repo.Lecture.FindByCourse(ctx, courseID)
	if err != nil {
		s.log.Error("Failed to get lectures", zap.Error(err), zap.String("course_id", courseID.String()))
		return nil, fmt.Errorf("failed to get lectures")
	}

	items, err := s.repo.Progress.FindLectureProgress(ctx, progress.ID)
	if err != nil {
		s.log.Error("Failed to get lecture progress", zap.Error(err))
		return nil, fmt.Errorf("failed to get progress")
	}

	viewedSet := make(map[uuid.UUID]bool, len(items))
	for _, item := range items {
		if item.Viewed {
			viewedSet[item.LectureID] = true
		}
	}

	resp := &response.ProgressResponse{
		CourseID:  courseID.String(),
		Completed: progress.Completed,
		Total:     len(lectures),
		Lectures:  make([]response.LectureProgressResponse, 0, len(lectures)),
	}

	for _, lecture := range lectures {
		viewed := viewedSet[lecture.ID]
		if viewed {
			resp.Viewed++
		}
		resp.Lectures = append(resp.Lectures, response.LectureProgressResponse{
			LectureID: lecture.ID.String(),
			Title:     lecture.Title,
			Position:  lecture.Position,
			Viewed:    viewed,
		})
	}

	return resp, nil
}
