package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"course-platform/internal/data/entity"
	"course-platform/internal/data/repository"
	"course-platform/internal/dto/request"
	"course-platform/internal/dto/response"
	"course-platform/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CourseService interface {
	// Catalog
	CreateCourse(ctx context.Context, instructorID string, req *request.CreateCourseRequest) (*response.CourseResponse, error)
	GetCourses(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CourseResponse], error)
	SearchCourses(ctx context.Context, search *request.SearchCoursesRequest, page *request.PaginatedRequest) (*response.PaginatedResponse[response.CourseResponse], error)
	GetCourseDetail(ctx context.Context, courseID string, viewerID uuid.UUID) (*response.CourseDetailResponse, error)
	UpdateCourse(ctx context.Context, instructorID, courseID string, req *request.UpdateCourseRequest) (*response.CourseResponse, error)
	DeleteCourse(ctx context.Context, instructorID, courseID string) error
	SetPublished(ctx context.Context, instructorID, courseID string, published bool) error
	GetInstructorCourses(ctx context.Context, instructorID string) ([]response.CourseResponse, error)

	// Lectures
	AddLecture(ctx context.Context, instructorID, courseID string, req *request.CreateLectureRequest) (*response.LectureResponse, error)
	GetLectures(ctx context.Context, courseID string, viewerID uuid.UUID) ([]response.LectureResponse, error)
	UpdateLecture(ctx context.Context, instructorID, courseID, lectureID string, req *request.UpdateLectureRequest) (*response.LectureResponse, error)
	RemoveLecture(ctx context.Context, instructorID, courseID, lectureID string) error
}

type courseService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewCourseService(repo *repository.Repository, config *utils.Config, log *zap.Logger) CourseService {
	return &courseService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "course")),
	}
}

func (s *courseService) CreateCourse(ctx context.Context, instructorID string, req *request.CreateCourseRequest) (*response.CourseResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create course validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	instructorUUID, err := uuid.Parse(instructorID)
	if err != nil {
		return nil, fmt.Errorf("invalid instructor ID format %s: %w", instructorID, err)
	}

	currency := strings.ToLower(req.Currency)
	if currency == "" {
		currency = s.config.App.Currency
	}

	now := time.Now()
	course := &entity.Course{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		InstructorID: instructorUUID,
		Title:        req.Title,
		Subtitle:     req.Subtitle,
		Description:  req.Description,
		Category:     req.Category,
		Level:        entity.CourseLevel(req.Level),
		Price:        req.Price,
		Currency:     currency,
		ThumbnailURL: req.ThumbnailURL,
		Published:    false,
	}

	if err := s.repo.Course.Create(ctx, course); err != nil {
		s.log.Error("Failed to create course", zap.Error(err), zap.String("title", req.Title))
		return nil, fmt.Errorf("failed to create course")
	}

	s.log.Info("Course created",
		zap.String("course_id", course.ID.String()),
		zap.String("instructor_id", instructorID))

	resp := response.CourseToResponse(course)
	return &resp, nil
}

func (s *courseService) GetCourses(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CourseResponse], error) {
	filter := repository.CourseFilter{}

	courses, err := s.repo.Course.FindPublished(ctx, filter, req.Offset(), req.Limit())
	if err != nil {
		s.log.Error("Failed to get courses", zap.Error(err))
		return nil, fmt.Errorf("failed to get courses")
	}

	total, err := s.repo.Course.CountPublished(ctx, filter)
	if err != nil {
		s.log.Error("Failed to count courses", zap.Error(err))
		return nil, fmt.Errorf("failed to count courses")
	}

	items := make([]response.CourseResponse, 0, len(courses))
	for _, course := range courses {
		items = append(items, response.CourseToResponse(course))
	}

	return response.NewPaginatedResponse(items, req.Page, req.Limit(), total), nil
}

func (s *courseService) SearchCourses(ctx context.Context, search *request.SearchCoursesRequest, page *request.PaginatedRequest) (*response.PaginatedResponse[response.CourseResponse], error) {
	if errs := utils.ValidateStruct(search); len(errs) > 0 {
		s.log.Warn("Search courses validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	filter := repository.CourseFilter{
		Query:    search.Query,
		Category: search.Category,
		Level:    search.Level,
		SortBy:   search.SortBy,
	}

	courses, err := s.repo.Course.FindPublished(ctx, filter, page.Offset(), page.Limit())
	if err != nil {
		s.log.Error("Failed to search courses", zap.Error(err), zap.String("query", search.Query))
		return nil, fmt.Errorf("failed to search courses")
	}

	total, err := s.repo.Course.CountPublished(ctx, filter)
	if err != nil {
		s.log.Error("Failed to count search results", zap.Error(err))
		return nil, fmt.Errorf("failed to count search results")
	}

	items := make([]response.CourseResponse, 0, len(courses))
	for _, course := range courses {
		items = append(items, response.CourseToResponse(course))
	}

	return response.NewPaginatedResponse(items, page.Page, page.Limit(), total), nil
}

func (s *courseService) GetCourseDetail(ctx context.Context, courseID string, viewerID uuid.UUID) (*response.CourseDetailResponse, error) {
	course, err := s.findVisibleCourse(ctx, courseID, viewerID)
	if err != nil {
		return nil, err
	}

	lectures, err := s.repo.Lecture.FindByCourse(ctx, course.ID)
	if err != nil {
		s.log.Error("Failed to get lectures", zap.Error(err), zap.String("course_id", courseID))
		return nil, fmt.Errorf("failed to get lectures")
	}

	enrolled := false
	if viewerID != uuid.Nil {
		enrolled, err = s.repo.Enrollment.Exists(ctx, viewerID, course.ID)
		if err != nil {
			s.log.Error("Failed to check enrollment", zap.Error(err), zap.String("course_id", courseID))
			return nil, fmt.Errorf("failed to check enrollment")
		}
	}

	withVideo := enrolled || course.InstructorID == viewerID

	items := make([]response.LectureResponse, 0, len(lectures))
	for _, lecture := range lectures {
		items = append(items, response.LectureToResponse(lecture, withVideo))
	}

	return &response.CourseDetailResponse{
		CourseResponse: response.CourseToResponse(course),
		Lectures:       items,
		Enrolled:       enrolled,
	}, nil
}

func (s *courseService) UpdateCourse(ctx context.Context, instructorID, courseID string, req *request.UpdateCourseRequest) (*response.CourseResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update course validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	course, err := s.findOwnedCourse(ctx, instructorID, courseID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Subtitle != nil {
		course.Subtitle = req.Subtitle
	}
	if req.Description != nil {
		course.Description = req.Description
	}
	if req.Category != nil {
		course.Category = *req.Category
	}
	if req.Level != nil {
		course.Level = entity.CourseLevel(*req.Level)
	}
	if req.Price != nil {
		course.Price = *req.Price
	}
	if req.Currency != nil {
		course.Currency = strings.ToLower(*req.Currency)
	}
	if req.ThumbnailURL != nil {
		course.ThumbnailURL = req.ThumbnailURL
	}
	course.UpdatedAt = time.Now()

	if err := s.repo.Course.Update(ctx, course); err != nil {
		s.log.Error("Failed to update course", zap.Error(err), zap.String("course_id", courseID))
		return nil, fmt.Errorf("failed to update course")
	}

	s.log.Info("Course updated", zap.String("course_id", courseID))

	resp := response.CourseToResponse(course)
	return &resp, nil
}

func (s *courseService) DeleteCourse(ctx context.Context, instructorID, courseID string) error {
	course, err := s.findOwnedCourse(ctx, instructorID, courseID)
	if err != nil {
		return err
	}

	if err := s.repo.Course.Delete(ctx, course.ID); err != nil {
		s.log.Error("Failed to delete course", zap.Error(err), zap.String("course_id", courseID))
		return fmt.Errorf("failed to delete course")
	}

	return nil
}

func (s *courseService) SetPublished(ctx context.Context, instructorID, courseID string, published bool) error {
	course, err := s.findOwnedCourse(ctx, instructorID, courseID)
	if err != nil {
		return err
	}

	// A course without content cannot go live
	if published {
		count, err := s.repo.Lecture.CountByCourse(ctx, course.ID)
		if err != nil {
			s.log.Error("Failed to count lectures", zap.Error(err), zap.String("course_id", courseID))
			return fmt.Errorf("failed to count lectures")
		}
		if count == 0 {
			return fmt.Errorf("cannot publish course without lectures")
		}
	}

	if err := s.repo.Course.SetPublished(ctx, course.ID, published); err != nil {
		s.log.Error("Failed to set published", zap.Error(err), zap.String("course_id", courseID))
		return fmt.Errorf("failed to update course")
	}

	s.log.Info("Course publish state changed",
		zap.String("course_id", courseID),
		zap.Bool("published", published))

	return nil
}

func (s *courseService) GetInstructorCourses(ctx context.Context, instructorID string) ([]response.CourseResponse, error) {
	instructorUUID, err := uuid.Parse(instructorID)
	if err != nil {
		return nil, fmt.Errorf("invalid instructor ID format %s: %w", instructorID, err)
	}

	courses, err := s.repo.Course.FindByInstructor(ctx, instructorUUID)
	if err != nil {
		s.log.Error("Failed to get instructor courses", zap.Error(err), zap.String("instructor_id", instructorID))
		return nil, fmt.Errorf("failed to get courses")
	}

	items := make([]response.CourseResponse, 0, len(courses))
	for _, course := range courses {
		items = append(items, response.CourseToResponse(course))
	}

	return items, nil
}

// ==================== LECTURES ====================

func (s *courseService) AddLecture(ctx context.Context, instructorID, courseID string, req *request.CreateLectureRequest) (*response.LectureResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Add lecture validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	course, err := s.findOwnedCourse(ctx, instructorID, courseID)
	if err != nil {
		return nil, err
	}

	maxPos, err := s.repo.Lecture.MaxPosition(ctx, course.ID)
	if err != nil {
		s.log.Error("Failed to get lecture position", zap.Error(err), zap.String("course_id", courseID))
		return nil, fmt.Errorf("failed to add lecture")
	}

	now := time.Now()
	lecture := &entity.Lecture{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		CourseID:    course.ID,
		Title:       req.Title,
		Description: req.Description,
		VideoURL:    req.VideoURL,
		Position:    maxPos + 1,
		Preview:     req.Preview,
	}

	if err := s.repo.Lecture.Create(ctx, lecture); err != nil {
		s.log.Error("Failed to create lecture", zap.Error(err), zap.String("course_id", courseID))
		return nil, fmt.Errorf("failed to add lecture")
	}

	s.log.Info("Lecture added",
		zap.String("lecture_id", lecture.ID.String()),
		zap.String("course_id", courseID))

	resp := response.LectureToResponse(lecture, true)
	return &resp, nil
}

func (s *courseService) GetLectures(ctx context.Context, courseID string, viewerID uuid.UUID) ([]response.LectureResponse, error) {
	course, err := s.findVisibleCourse(ctx, courseID, viewerID)
	if err != nil {
		return nil, err
	}

	lectures, err := s.repo.Lecture.FindByCourse(ctx, course.ID)
	if err != nil {
		s.log.Error("Failed to get lectures", zap.Error(err), zap.String("course_id", courseID))
		return nil, fmt.Errorf("failed to get lectures")
	}

	withVideo := course.InstructorID == viewerID
	if !withVideo && viewerID != uuid.Nil {
		withVideo, err = s.repo.Enrollment.Exists(ctx, viewerID, course.ID)
		if err != nil {
			s.log.Error("Failed to check enrollment", zap.Error(err), zap.String("course_id", courseID))
			return nil, fmt.Errorf("failed to check enrollment")
		}
	}

	items := make([]response.LectureResponse, 0, len(lectures))
	for _, lecture := range lectures {
		items = append(items, response.LectureToResponse(lecture, withVideo))
	}

	return items, nil
}

func (s *courseService) UpdateLecture(ctx context.Context, instructorID, courseID, lectureID string, req *request.UpdateLectureRequest) (*response.LectureResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update lecture validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	course, err := s.findOwnedCourse(ctx, instructorID, courseID)
	if err != nil {
		return nil, err
	}

	lecture, err := s.findCourseLecture(ctx, course.ID, lectureID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		lecture.Title = *req.Title
	}
	if req.Description != nil {
		lecture.Description = req.Description
	}
	if req.VideoURL != nil {
		lecture.VideoURL = req.VideoURL
	}
	if req.Preview != nil {
		lecture.Preview = *req.Preview
	}
	lecture.UpdatedAt = time.Now()

	if err := s.repo.Lecture.Update(ctx, lecture); err != nil {
		s.log.Error("Failed to update lecture", zap.Error(err), zap.String("lecture_id", lectureID))
		return nil, fmt.Errorf("failed to update lecture")
	}

	resp := response.LectureToResponse(lecture, true)
	return &resp, nil
}

func (s *courseService) RemoveLecture(ctx context.Context, instructorID, courseID, lectureID string) error {
	course, err := s.findOwnedCourse(ctx, instructorID, courseID)
	if err != nil {
		return err
	}

	lecture, err := s.findCourseLecture(ctx, course.ID, lectureID)
	if err != nil {
		return err
	}

	if err := s.repo.Lecture.Delete(ctx, lecture.ID); err != nil {
		s.log.Error("Failed to delete lecture", zap.Error(err), zap.String("lecture_id", lectureID))
		return fmt.Errorf("failed to remove lecture")
	}

	if err := s.repo.Lecture.ShiftPositionsAfter(ctx, course.ID, lecture.Position); err != nil {
		s.log.Warn("Failed to compact lecture positions",
			zap.Error(err), zap.String("course_id", courseID))
	}

	s.log.Info("Lecture removed",
		zap.String("lecture_id", lectureID),
		zap.String("course_id", courseID))

	return nil
}

// ==================== HELPER METHODS ====================

// findOwnedCourse loads a course and checks the caller owns it
func (s *courseService) findOwnedCourse(ctx context.Context, instructorID, courseID string) (*entity.Course, error) {
	instructorUUID, err := uuid.Parse(instructorID)
	if err != nil {
		return nil, fmt.Errorf("invalid instructor ID format %s: %w", instructorID, err)
	}

	courseUUID, err := uuid.Parse(courseID)
	if err != nil {
		return nil, fmt.Errorf("invalid course ID format %s: %w", courseID, err)
	}

	course, err := s.repo.Course.FindByID(ctx, courseUUID)
	if err != nil {
		s.log.Error("Failed to find course", zap.Error(err), zap.String("course_id", courseID))
		return nil, fmt.Errorf("failed to find course")
	}
	if course == nil {
		return nil, fmt.Errorf("course %s not found", courseID)
	}

	if course.InstructorID != instructorUUID {
		s.log.Warn("Course ownership check failed",
			zap.String("course_id", courseID),
			zap.String("instructor_id", instructorID))
		return nil, fmt.Errorf("not allowed to manage this course")
	}

	return course, nil
}

// findVisibleCourse loads a course the viewer is allowed to see.
// Unpublished courses stay hidden from everyone but their owner.
func (s *courseService) findVisibleCourse(ctx context.Context, courseID string, viewerID uuid.UUID) (*entity.Course, error) {
	courseUUID, err := uuid.Parse(courseID)
	if err != nil {
		return nil, fmt.Errorf("invalid course ID format %s: %w", courseID, err)
	}

	course, err := s.repo.Course.FindByID(ctx, courseUUID)
	if err != nil {
		s.log.Error("Failed to find course", zap.Error(err), zap.String("course_id", courseID))
		return nil, fmt.Errorf("failed to find course")
	}
	if course == nil {
		return nil, fmt.Errorf("course %s not found", courseID)
	}

	if !course.Published && course.InstructorID != viewerID {
		return nil, fmt.Errorf("course %s not found", courseID)
	}

	return course, nil
}

func (s *courseService) findCourseLecture(ctx context.Context, courseID uuid.UUID, lectureID string) (*entity.Lecture, error) {
	lectureUUID, err := uuid.Parse(lectureID)
	if err != nil {
		return nil, fmt.Errorf("invalid lecture ID format %s: %w", lectureID, err)
	}

	lecture, err := s.repo.Lecture.FindByID(ctx, lectureUUID)
	if err != nil {
		s.log.Error("Failed to find lecture", zap.Error(err), zap.String("lecture_id", lectureID))
		return nil, fmt.Errorf("failed to find lecture")
	}
	if lecture == nil || lecture.CourseID != courseID {
		return nil, fmt.Errorf("lecture %s not found", lectureID)
	}

	return lecture, nil
}
