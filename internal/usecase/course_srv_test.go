package usecase

import (
	"context"
	"testing"

	"course-platform/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func strPtr(s string) *string { return &s }

func seedCourse(t *testing.T, service CourseService, instructorID string) string {
	t.Helper()

	resp, err := service.CreateCourse(context.Background(), instructorID, &request.CreateCourseRequest{
		Title:    "Intro to Databases",
		Category: "engineering",
		Level:    "beginner",
		Price:    49.99,
	})
	require.NoError(t, err)
	return resp.ID
}

func seedLecture(t *testing.T, service CourseService, instructorID, courseID string) string {
	t.Helper()

	resp, err := service.AddLecture(context.Background(), instructorID, courseID, &request.CreateLectureRequest{
		Title:    "Relational model",
		VideoURL: strPtr("https://cdn.example.com/v/1"),
	})
	require.NoError(t, err)
	return resp.ID
}

func TestCreateCourseStartsUnpublished(t *testing.T) {
	repo := newTestRepository()
	service := NewCourseService(repo, newTestConfig(), zaptest.NewLogger(t))
	instructorID := uuid.New().String()

	resp, err := service.CreateCourse(context.Background(), instructorID, &request.CreateCourseRequest{
		Title:    "Intro to Databases",
		Category: "engineering",
		Level:    "beginner",
		Price:    49.99,
	})
	require.NoError(t, err)

	assert.False(t, resp.Published)
	assert.Equal(t, "usd", resp.Currency, "currency falls back to the configured default")
}

func TestPublishRequiresLectures(t *testing.T) {
	repo := newTestRepository()
	service := NewCourseService(repo, newTestConfig(), zaptest.NewLogger(t))
	instructorID := uuid.New().String()
	courseID := seedCourse(t, service, instructorID)

	err := service.SetPublished(context.Background(), instructorID, courseID, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot publish")

	seedLecture(t, service, instructorID, courseID)

	require.NoError(t, service.SetPublished(context.Background(), instructorID, courseID, true))
}

func TestUnpublishedCourseHiddenFromOthers(t *testing.T) {
	repo := newTestRepository()
	service := NewCourseService(repo, newTestConfig(), zaptest.NewLogger(t))
	instructorID := uuid.New().String()
	courseID := seedCourse(t, service, instructorID)

	// Owner can see their draft
	ownerUUID := uuid.MustParse(instructorID)
	detail, err := service.GetCourseDetail(context.Background(), courseID, ownerUUID)
	require.NoError(t, err)
	assert.False(t, detail.Published)

	// Everyone else gets not found, including anonymous viewers
	_, err = service.GetCourseDetail(context.Background(), courseID, uuid.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	_, err = service.GetCourseDetail(context.Background(), courseID, uuid.Nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestCourseOwnershipEnforced(t *testing.T) {
	repo := newTestRepository()
	service := NewCourseService(repo, newTestConfig(), zaptest.NewLogger(t))
	instructorID := uuid.New().String()
	courseID := seedCourse(t, service, instructorID)

	otherInstructor := uuid.New().String()

	_, err := service.UpdateCourse(context.Background(), otherInstructor, courseID, &request.UpdateCourseRequest{
		Title: strPtr("Hijacked"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not allowed")

	err = service.DeleteCourse(context.Background(), otherInstructor, courseID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not allowed")
}

func TestLectureVideoGating(t *testing.T) {
	repo := newTestRepository()
	service := NewCourseService(repo, newTestConfig(), zaptest.NewLogger(t))
	instructorID := uuid.New().String()
	courseID := seedCourse(t, service, instructorID)
	seedLecture(t, service, instructorID, courseID)

	// A free preview lecture keeps its video visible to everyone
	_, err := service.AddLecture(context.Background(), instructorID, courseID, &request.CreateLectureRequest{
		Title:    "Course trailer",
		VideoURL: strPtr("https://cdn.example.com/v/trailer"),
		Preview:  true,
	})
	require.NoError(t, err)

	require.NoError(t, service.SetPublished(context.Background(), instructorID, courseID, true))

	// Anonymous viewer: only the preview carries a video URL
	lectures, err := service.GetLectures(context.Background(), courseID, uuid.Nil)
	require.NoError(t, err)
	require.Len(t, lectures, 2)
	assert.Nil(t, lectures[0].VideoURL)
	assert.NotNil(t, lectures[1].VideoURL)

	// The owner sees everything
	lectures, err = service.GetLectures(context.Background(), courseID, uuid.MustParse(instructorID))
	require.NoError(t, err)
	assert.NotNil(t, lectures[0].VideoURL)
}

func TestSearchCoursesFilters(t *testing.T) {
	repo := newTestRepository()
	service := NewCourseService(repo, newTestConfig(), zaptest.NewLogger(t))
	instructorID := uuid.New().String()

	first := seedCourse(t, service, instructorID)
	seedLecture(t, service, instructorID, first)
	require.NoError(t, service.SetPublished(context.Background(), instructorID, first, true))

	second, err := service.CreateCourse(context.Background(), instructorID, &request.CreateCourseRequest{
		Title:    "Watercolor Painting",
		Category: "art",
		Level:    "intermediate",
		Price:    19.99,
	})
	require.NoError(t, err)
	seedLecture(t, service, instructorID, second.ID)
	require.NoError(t, service.SetPublished(context.Background(), instructorID, second.ID, true))

	page := &request.PaginatedRequest{Page: 1, PerPage: 10}

	results, err := service.SearchCourses(context.Background(), &request.SearchCoursesRequest{
		Query: "databases",
	}, page)
	require.NoError(t, err)
	require.Len(t, results.Data, 1)
	assert.Equal(t, "Intro to Databases", results.Data[0].Title)

	results, err = service.SearchCourses(context.Background(), &request.SearchCoursesRequest{
		Category: "art",
	}, page)
	require.NoError(t, err)
	require.Len(t, results.Data, 1)
	assert.Equal(t, "Watercolor Painting", results.Data[0].Title)

	results, err = service.SearchCourses(context.Background(), &request.SearchCoursesRequest{
		SortBy: "price_asc",
	}, page)
	require.NoError(t, err)
	require.Len(t, results.Data, 2)
	assert.Equal(t, "Watercolor Painting", results.Data[0].Title)
}

func TestRemoveLectureCompactsPositions(t *testing.T) {
	repo := newTestRepository()
	service := NewCourseService(repo, newTestConfig(), zaptest.NewLogger(t))
	instructorID := uuid.New().String()
	courseID := seedCourse(t, service, instructorID)

	firstID := seedLecture(t, service, instructorID, courseID)
	seedLecture(t, service, instructorID, courseID)
	seedLecture(t, service, instructorID, courseID)

	require.NoError(t, service.RemoveLecture(context.Background(), instructorID, courseID, firstID))

	lectures, err := service.GetLectures(context.Background(), courseID, uuid.MustParse(instructorID))
	require.NoError(t, err)
	require.Len(t, lectures, 2)
	assert.Equal(t, 1, lectures[0].Position)
	assert.Equal(t, 2, lectures[1].Position)
}

func TestGetCoursesShowsOnlyPublished(t *testing.T) {
	repo := newTestRepository()
	service := NewCourseService(repo, newTestConfig(), zaptest.NewLogger(t))
	instructorID := uuid.New().String()

	seedCourse(t, service, instructorID)

	live, err := service.CreateCourse(context.Background(), instructorID, &request.CreateCourseRequest{
		Title:    "Published Course",
		Category: "engineering",
		Level:    "beginner",
		Price:    9.99,
	})
	require.NoError(t, err)
	seedLecture(t, service, instructorID, live.ID)
	require.NoError(t, service.SetPublished(context.Background(), instructorID, live.ID, true))

	page := &request.PaginatedRequest{Page: 1, PerPage: 10}
	results, err := service.GetCourses(context.Background(), page)
	require.NoError(t, err)
	require.Len(t, results.Data, 1)
	assert.Equal(t, "Published Course", results.Data[0].Title)
	assert.Equal(t, int64(1), results.Pagination.Total)
}
