package wire

import (
	"course-platform/internal/adaptor"
	"course-platform/internal/data/repository"
	"course-platform/pkg/middleware"
	"course-platform/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireProgress(
	r chi.Router,
	progressHandler *adaptor.ProgressHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES ====================
	r.Route("/api/progress/{courseId}", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		r.Get("/", progressHandler.GetProgress)
		r.Post("/lectures/{lectureId}/view", progressHandler.MarkLectureViewed)
		r.Patch("/complete", progressHandler.MarkCompleted)
		r.Patch("/incomplete", progressHandler.MarkIncomplete)
	})
}
