package adaptor

import (
	"net/http"

	"course-platform/internal/usecase"
	"course-platform/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ProgressHandler struct {
	service usecase.ProgressService
	log     *zap.Logger
}

func NewProgressHandler(service usecase.ProgressService, log *zap.Logger) *ProgressHandler {
	return &ProgressHandler{
		service: service,
		log:     log,
	}
}

// GetProgress handles GET /api/progress/{courseId}
func (h *ProgressHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	courseID := chi.URLParam(r, "courseId")

	response, err := h.service.GetProgress(r.Context(), userID, courseID)
	if err != nil {
		handleServiceError(w, h.log, err, "get progress")
		return
	}

	utils.ResponseSuccess(w, "Progress retrieved", response)
}

// MarkLectureViewed handles POST /api/progress/{courseId}/lectures/{lectureId}/view
func (h *ProgressHandler) MarkLectureViewed(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	courseID := chi.URLParam(r, "courseId")
	lectureID := chi.URLParam(r, "lectureId")

	response, err := h.service.MarkLectureViewed(r.Context(), userID, courseID, lectureID)
	if err != nil {
		handleServiceError(w, h.log, err, "mark lecture viewed")
		return
	}

	utils.ResponseSuccess(w, "Lecture marked as viewed", response)
}

// MarkCompleted handles PATCH /api/progress/{courseId}/complete
func (h *ProgressHandler) MarkCompleted(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	courseID := chi.URLParam(r, "courseId")

	if err := h.service.MarkCompleted(r.Context(), userID, courseID); err != nil {
		handleServiceError(w, h.log, err, "mark course completed")
		return
	}

	utils.ResponseSuccess(w, "Course marked as completed", nil)
}

// MarkIncomplete handles PATCH /api/progress/{courseId}/incomplete
func (h *ProgressHandler) MarkIncomplete(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	courseID := chi.URLParam(r, "courseId")

	if err := h.service.MarkIncomplete(r.Context(), userID, courseID); err != nil {
		handleServiceError(w, h.log, err, "mark course incomplete")
		return
	}

	utils.ResponseSuccess(w, "Course progress reset", nil)
}
