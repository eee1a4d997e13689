package adaptor

import (
	"encoding/json"
	"net/http"
	"strconv"

	"course-platform/internal/dto/request"
	"course-platform/internal/usecase"
	"course-platform/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CourseHandler struct {
	service usecase.CourseService
	log     *zap.Logger
}

func NewCourseHandler(service usecase.CourseService, log *zap.Logger) *CourseHandler {
	return &CourseHandler{
		service: service,
		log:     log,
	}
}

// CreateCourse handles POST /api/courses
func (h *CourseHandler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	response, err := h.service.CreateCourse(r.Context(), userID.String(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create course")
		return
	}

	utils.ResponseCreated(w, "Course created", response)
}

// GetCourses handles GET /api/courses
func (h *CourseHandler) GetCourses(w http.ResponseWriter, r *http.Request) {
	page := paginationFromQuery(r)

	response, err := h.service.GetCourses(r.Context(), &page)
	if err != nil {
		handleServiceError(w, h.log, err, "get courses")
		return
	}

	utils.ResponseSuccess(w, "Courses retrieved", response)
}

// SearchCourses handles GET /api/courses/search
func (h *CourseHandler) SearchCourses(w http.ResponseWriter, r *http.Request) {
	page := paginationFromQuery(r)

	search := request.SearchCoursesRequest{
		Query:    r.URL.Query().Get("q"),
		Category: r.URL.Query().Get("category"),
		Level:    r.URL.Query().Get("level"),
		SortBy:   r.URL.Query().Get("sort"),
	}

	response, err := h.service.SearchCourses(r.Context(), &search, &page)
	if err != nil {
		handleServiceError(w, h.log, err, "search courses")
		return
	}

	utils.ResponseSuccess(w, "Search results", response)
}

// GetCourseDetail handles GET /api/courses/{id}
func (h *CourseHandler) GetCourseDetail(w http.ResponseWriter, r *http.Request) {
	courseID := chi.URLParam(r, "id")

	// Viewer may be anonymous on this public route
	viewerID, _ := utils.GetUserIDFromContext(r.Context())

	response, err := h.service.GetCourseDetail(r.Context(), courseID, viewerID)
	if err != nil {
		handleServiceError(w, h.log, err, "get course")
		return
	}

	utils.ResponseSuccess(w, "Course retrieved", response)
}

// UpdateCourse handles PUT /api/courses/{id}
func (h *CourseHandler) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	courseID := chi.URLParam(r, "id")

	var req request.UpdateCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	response, err := h.service.UpdateCourse(r.Context(), userID.String(), courseID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update course")
		return
	}

	utils.ResponseSuccess(w, "Course updated", response)
}

// DeleteCourse handles DELETE /api/courses/{id}
func (h *CourseHandler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	courseID := chi.URLParam(r, "id")

	if err := h.service.DeleteCourse(r.Context(), userID.String(), courseID); err != nil {
		handleServiceError(w, h.log, err, "delete course")
		return
	}

	utils.ResponseSuccess(w, "Course deleted", nil)
}

// TogglePublish handles PATCH /api/courses/{id}/publish?publish=true
func (h *CourseHandler) TogglePublish(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	courseID := chi.URLParam(r, "id")

	publish, err := strconv.ParseBool(r.URL.Query().Get("publish"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid publish query parameter", nil)
		return
	}

	if err := h.service.SetPublished(r.Context(), userID.String(), courseID, publish); err != nil {
		handleServiceError(w, h.log, err, "publish course")
		return
	}

	if publish {
		utils.ResponseSuccess(w, "Course published", nil)
		return
	}
	utils.ResponseSuccess(w, "Course unpublished", nil)
}

// GetInstructorCourses handles GET /api/instructor/courses
func (h *CourseHandler) GetInstructorCourses(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	response, err := h.service.GetInstructorCourses(r.Context(), userID.String())
	if err != nil {
		handleServiceError(w, h.log, err, "get instructor courses")
		return
	}

	utils.ResponseSuccess(w, "Courses retrieved", response)
}

// AddLecture handles POST /api/courses/{id}/lectures
func (h *CourseHandler) AddLecture(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	courseID := chi.URLParam(r, "id")

	var req request.CreateLectureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	response, err := h.service.AddLecture(r.Context(), userID.String(), courseID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "add lecture")
		return
	}

	utils.ResponseCreated(w, "Lecture added", response)
}

// GetLectures handles GET /api/courses/{id}/lectures
func (h *CourseHandler) GetLectures(w http.ResponseWriter, r *http.Request) {
	courseID := chi.URLParam(r, "id")

	viewerID, _ := utils.GetUserIDFromContext(r.Context())

	response, err := h.service.GetLectures(r.Context(), courseID, viewerID)
	if err != nil {
		handleServiceError(w, h.log, err, "get lectures")
		return
	}

	utils.ResponseSuccess(w, "Lectures retrieved", response)
}

// UpdateLecture handles PUT /api/courses/{id}/lectures/{lectureID}
func (h *CourseHandler) UpdateLecture(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	courseID := chi.URLParam(r, "id")
	lectureID := chi.URLParam(r, "lectureID")

	var req request.UpdateLectureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	response, err := h.service.UpdateLecture(r.Context(), userID.String(), courseID, lectureID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update lecture")
		return
	}

	utils.ResponseSuccess(w, "Lecture updated", response)
}

// RemoveLecture handles DELETE /api/courses/{id}/lectures/{lectureID}
func (h *CourseHandler) RemoveLecture(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	courseID := chi.URLParam(r, "id")
	lectureID := chi.URLParam(r, "lectureID")

	if err := h.service.RemoveLecture(r.Context(), userID.String(), courseID, lectureID); err != nil {
		handleServiceError(w, h.log, err, "remove lecture")
		return
	}

	utils.ResponseSuccess(w, "Lecture removed", nil)
}

// paginationFromQuery reads page/per_page query parameters with defaults
func paginationFromQuery(r *http.Request) request.PaginatedRequest {
	return request.PaginatedRequest{
		Page:    utils.ParseInt(r.URL.Query().Get("page"), 1),
		PerPage: utils.ParseInt(r.URL.Query().Get("per_page"), 10),
	}
}
