package adaptor

import (
	"course-platform/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth     *AuthHandler
	User     *UserHandler
	Course   *CourseHandler
	Progress *ProgressHandler
	Checkout *CheckoutHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(service.Auth, log),
		User:     NewUserHandler(service.User, log),
		Course:   NewCourseHandler(service.Course, log),
		Progress: NewProgressHandler(service.Progress, log),
		Checkout: NewCheckoutHandler(service.Checkout, log),
	}
}
