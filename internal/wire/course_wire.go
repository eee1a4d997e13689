package wire

import (
	"course-platform/internal/adaptor"
	"course-platform/internal/data/repository"
	"course-platform/pkg/middleware"
	"course-platform/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCourse(
	r chi.Router,
	courseHandler *adaptor.CourseHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// Catalog browsing is public; a bearer token, when present, unlocks
	// enrollment-aware details such as video URLs.
	r.Group(func(r chi.Router) {
		r.Use(middleware.OptionalAuthSession(repo.Session, log))

		r.Get("/api/courses", courseHandler.GetCourses)
		r.Get("/api/courses/search", courseHandler.SearchCourses)
		r.Get("/api/courses/{id}", courseHandler.GetCourseDetail)
		r.Get("/api/courses/{id}/lectures", courseHandler.GetLectures)
	})

	// ==================== INSTRUCTOR ROUTES ====================
	// Course management shares the /api/courses paths but is gated on the
	// instructor role; ownership is checked per course in the service.
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))
		r.Use(middleware.Instructor(repo.User, log))

		r.Post("/api/courses", courseHandler.CreateCourse)
		r.Put("/api/courses/{id}", courseHandler.UpdateCourse)
		r.Delete("/api/courses/{id}", courseHandler.DeleteCourse)
		r.Patch("/api/courses/{id}/publish", courseHandler.TogglePublish)

		r.Post("/api/courses/{id}/lectures", courseHandler.AddLecture)
		r.Put("/api/courses/{id}/lectures/{lectureID}", courseHandler.UpdateLecture)
		r.Delete("/api/courses/{id}/lectures/{lectureID}", courseHandler.RemoveLecture)

		r.Get("/api/instructor/courses", courseHandler.GetInstructorCourses)
	})
}
