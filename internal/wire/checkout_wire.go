package wire

import (
	"course-platform/internal/adaptor"
	"course-platform/internal/data/repository"
	"course-platform/pkg/middleware"
	"course-platform/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCheckout(
	r chi.Router,
	checkoutHandler *adaptor.CheckoutHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// Stripe calls this endpoint directly; authentication happens via the
	// signed payload, not a session token.
	r.Post("/api/webhooks/stripe", checkoutHandler.StripeWebhook)

	// ==================== PROTECTED ROUTES ====================
	r.Route("/api/checkout", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		r.Post("/stripe", checkoutHandler.StripeCheckout)
		r.Post("/razorpay", checkoutHandler.RazorpayOrder)
		r.Post("/razorpay/verify", checkoutHandler.RazorpayVerify)
	})

	r.With(middleware.AuthSession(repo.Session, log)).Get("/api/purchases", checkoutHandler.GetPurchases)
}
