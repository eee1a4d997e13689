package usecase

import (
	"course-platform/internal/data/repository"
	"course-platform/internal/payment"
	"course-platform/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth     AuthService
	User     UserService
	Course   CourseService
	Progress ProgressService
	Checkout CheckoutService
}

func NewService(
	repo *repository.Repository,
	config *utils.Config,
	stripeGw payment.StripeGateway,
	razorpayGw payment.RazorpayGateway,
	log *zap.Logger,
) *Service {
	return &Service{
		Auth:     NewAuthService(repo, config, log),
		User:     NewUserService(repo, log),
		Course:   NewCourseService(repo, config, log),
		Progress: NewProgressService(repo, log),
		Checkout: NewCheckoutService(repo, config, stripeGw, razorpayGw, log),
	}
}
