package wire

import (
	"context"
	"net/http"
	"time"

	"course-platform/internal/adaptor"
	"course-platform/internal/data/repository"
	"course-platform/internal/payment"
	"course-platform/internal/usecase"
	"course-platform/pkg/database"
	"course-platform/pkg/middleware"
	"course-platform/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired application dependencies
type App struct {
	Router *chi.Mux
}

// Wiring initializes payment gateways, services, handlers and routes
func Wiring(db database.PgxIface, repo *repository.Repository, config *utils.Config, logger *zap.Logger) *App {
	stripeGateway := payment.NewStripeGateway(config.Stripe)
	razorpayGateway := payment.NewRazorpayGateway(config.Razorpay)

	service := usecase.NewService(repo, config, stripeGateway, razorpayGateway, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, db, repo, config, logger)

	return &App{
		Router: router,
	}
}

// setupRouter configures the Chi router
func setupRouter(
	handler *adaptor.Handler,
	db database.PgxIface,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Apply routes
	wireAuth(r, handler.Auth, repo, config, logger)
	wireUser(r, handler.User, repo, config, logger)
	wireCourse(r, handler.Course, repo, config, logger)
	wireProgress(r, handler.Progress, repo, config, logger)
	wireCheckout(r, handler.Checkout, repo, config, logger)

	// Health check endpoint with database ping
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		dbStatus := "up"
		if err := db.Ping(ctx); err != nil {
			logger.Error("Health check: database unreachable", zap.Error(err))
			dbStatus = "down"
		}

		data := map[string]string{"database": dbStatus}
		if dbStatus == "down" {
			utils.ResponseJSON(w, http.StatusServiceUnavailable, false, "Service unhealthy", data, nil)
			return
		}
		utils.ResponseSuccess(w, "Service healthy", data)
	})

	return r
}
