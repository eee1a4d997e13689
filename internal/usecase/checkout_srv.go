package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"course-platform/internal/data/entity"
	"course-platform/internal/data/repository"
	"course-platform/internal/dto/request"
	"course-platform/internal/dto/response"
	"course-platform/internal/payment"
	"course-platform/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CheckoutService interface {
	CreateStripeCheckout(ctx context.Context, userID string, req *request.CheckoutRequest) (*response.StripeCheckoutResponse, error)
	HandleStripeWebhook(ctx context.Context, payload []byte, sigHeader string) error
	CreateRazorpayOrder(ctx context.Context, userID string, req *request.CheckoutRequest) (*response.RazorpayOrderResponse, error)
	VerifyRazorpayPayment(ctx context.Context, userID string, req *request.RazorpayVerifyRequest) (*response.PurchaseResponse, error)
	GetUserPurchases(ctx context.Context, userID uuid.UUID) ([]response.PurchaseResponse, error)
}

type checkoutService struct {
	repo     *repository.Repository
	config   *utils.Config
	stripe   payment.StripeGateway
	razorpay payment.RazorpayGateway
	log      *zap.Logger
}

func NewCheckoutService(
	repo *repository.Repository,
	config *utils.Config,
	stripeGw payment.StripeGateway,
	razorpayGw payment.RazorpayGateway,
	log *zap.Logger,
) CheckoutService {
	return &checkoutService{
		repo:     repo,
		config:   config,
		stripe:   stripeGw,
		razorpay: razorpayGw,
		log:      log.With(zap.String("service", "checkout")),
	}
}

func (s *checkoutService) CreateStripeCheckout(ctx context.Context, userID string, req *request.CheckoutRequest) (*response.StripeCheckoutResponse, error) {
	userUUID, course, err := s.prepareCheckout(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	purchaseID := uuid.New()

	session, err := s.stripe.CreateCheckoutSession(ctx, payment.CheckoutParams{
		PurchaseID:  purchaseID.String(),
		CourseTitle: course.Title,
		AmountMinor: toMinorUnits(course.Price),
		Currency:    course.Currency,
	})
	if err != nil {
		s.log.Error("Failed to create checkout session",
			zap.Error(err),
			zap.String("course_id", course.ID.String()))
		return nil, fmt.Errorf("failed to create checkout session")
	}

	purchase := s.newPendingPurchase(purchaseID, userUUID, course, entity.ProviderStripe, session.SessionID)
	if err := s.repo.Purchase.Create(ctx, purchase); err != nil {
		s.log.Error("Failed to create purchase",
			zap.Error(err),
			zap.String("session_id", session.SessionID))
		return nil, fmt.Errorf("failed to create purchase")
	}

	s.log.Info("Stripe checkout created",
		zap.String("purchase_id", purchaseID.String()),
		zap.String("session_id", session.SessionID))

	return &response.StripeCheckoutResponse{
		PurchaseID:  purchaseID.String(),
		SessionID:   session.SessionID,
		CheckoutURL: session.URL,
	}, nil
}

func (s *checkoutService) HandleStripeWebhook(ctx context.Context, payload []byte, sigHeader string) error {
	event, err := s.stripe.ConstructWebhookEvent(payload, sigHeader)
	if err != nil {
		s.log.Warn("Stripe webhook signature verification failed", zap.Error(err))
		return fmt.Errorf("invalid webhook signature")
	}

	switch event.Type {
	case "checkout.session.completed":
		sessionID, _ := event.Data.Object["id"].(string)
		if sessionID == "" {
			s.log.Warn("Stripe webhook missing session id", zap.String("event_id", event.ID))
			return nil
		}

		paymentIntent, _ := event.Data.Object["payment_intent"].(string)

		purchase, err := s.repo.Purchase.FindPendingByOrderID(ctx, entity.ProviderStripe, sessionID)
		if err != nil {
			return fmt.Errorf("failed to process webhook")
		}
		if purchase == nil {
			// Already handled or unknown session; acknowledge and move on
			s.log.Info("No pending purchase for session",
				zap.String("session_id", sessionID),
				zap.String("event_id", event.ID))
			return nil
		}

		return s.completePurchase(ctx, purchase, paymentIntent)

	case "checkout.session.expired":
		sessionID, _ := event.Data.Object["id"].(string)
		if sessionID == "" {
			return nil
		}

		purchase, err := s.repo.Purchase.FindPendingByOrderID(ctx, entity.ProviderStripe, sessionID)
		if err != nil {
			return fmt.Errorf("failed to process webhook")
		}
		if purchase == nil {
			return nil
		}

		if err := s.repo.Purchase.MarkFailed(ctx, purchase.ID); err != nil {
			return fmt.Errorf("failed to process webhook")
		}

		s.log.Info("Purchase marked failed on expired session",
			zap.String("purchase_id", purchase.ID.String()))
		return nil

	default:
		s.log.Debug("Ignoring stripe event", zap.String("type", string(event.Type)))
		return nil
	}
}

func (s *checkoutService) CreateRazorpayOrder(ctx context.Context, userID string, req *request.CheckoutRequest) (*response.RazorpayOrderResponse, error) {
	userUUID, course, err := s.prepareCheckout(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	purchaseID := uuid.New()

	orderID, err := s.razorpay.CreateOrder(ctx, payment.OrderParams{
		PurchaseID:  purchaseID.String(),
		Receipt:     utils.GenerateReceiptID(),
		AmountMinor: toMinorUnits(course.Price),
		Currency:    course.Currency,
	})
	if err != nil {
		s.log.Error("Failed to create razorpay order",
			zap.Error(err),
			zap.String("course_id", course.ID.String()))
		return nil, fmt.Errorf("failed to create payment order")
	}

	purchase := s.newPendingPurchase(purchaseID, userUUID, course, entity.ProviderRazorpay, orderID)
	if err := s.repo.Purchase.Create(ctx, purchase); err != nil {
		s.log.Error("Failed to create purchase",
			zap.Error(err),
			zap.String("order_id", orderID))
		return nil, fmt.Errorf("failed to create purchase")
	}

	s.log.Info("Razorpay order created",
		zap.String("purchase_id", purchaseID.String()),
		zap.String("order_id", orderID))

	return &response.RazorpayOrderResponse{
		PurchaseID: purchaseID.String(),
		OrderID:    orderID,
		Amount:     course.Price,
		Currency:   course.Currency,
		KeyID:      s.config.Razorpay.KeyID,
	}, nil
}

func (s *checkoutService) VerifyRazorpayPayment(ctx context.Context, userID string, req *request.RazorpayVerifyRequest) (*response.PurchaseResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Verify payment validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	purchase, err := s.repo.Purchase.FindPendingByOrderID(ctx, entity.ProviderRazorpay, req.OrderID)
	if err != nil {
		return nil, fmt.Errorf("failed to verify payment")
	}
	if purchase == nil {
		return nil, fmt.Errorf("pending purchase not found for order %s", req.OrderID)
	}

	if purchase.UserID != userUUID {
		s.log.Warn("Payment verification by wrong user",
			zap.String("purchase_id", purchase.ID.String()),
			zap.String("user_id", userID))
		return nil, fmt.Errorf("pending purchase not found for order %s", req.OrderID)
	}

	if !s.razorpay.VerifyPaymentSignature(req.OrderID, req.PaymentID, req.Signature) {
		if err := s.repo.Purchase.MarkFailed(ctx, purchase.ID); err != nil {
			s.log.Error("Failed to mark purchase failed",
				zap.Error(err),
				zap.String("purchase_id", purchase.ID.String()))
		}

		s.log.Warn("Razorpay signature mismatch",
			zap.String("purchase_id", purchase.ID.String()),
			zap.String("order_id", req.OrderID))
		return nil, fmt.Errorf("invalid payment signature")
	}

	if err := s.completePurchase(ctx, purchase, req.PaymentID); err != nil {
		return nil, fmt.Errorf("failed to complete purchase")
	}

	purchase.Status = entity.PurchaseStatusCompleted
	purchase.ProviderPaymentID = &req.PaymentID

	resp := response.PurchaseToResponse(purchase)
	return &resp, nil
}

func (s *checkoutService) GetUserPurchases(ctx context.Context, userID uuid.UUID) ([]response.PurchaseResponse, error) {
	purchases, err := s.repo.Purchase.FindByUser(ctx, userID)
	if err != nil {
		s.log.Error("Failed to get purchases", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to get purchases")
	}

	items := make([]response.PurchaseResponse, 0, len(purchases))
	for _, purchase := range purchases {
		items = append(items, response.PurchaseToResponse(purchase))
	}

	return items, nil
}

// ==================== HELPER METHODS ====================

// prepareCheckout validates the request and loads the purchasable course
func (s *checkoutService) prepareCheckout(ctx context.Context, userID string, req *request.CheckoutRequest) (uuid.UUID, *entity.Course, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Checkout validation failed", zap.Any("errors", errs))
		return uuid.Nil, nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	courseUUID, err := uuid.Parse(req.CourseID)
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("invalid course ID format %s: %w", req.CourseID, err)
	}

	course, err := s.repo.Course.FindByID(ctx, courseUUID)
	if err != nil {
		s.log.Error("Failed to find course", zap.Error(err), zap.String("course_id", req.CourseID))
		return uuid.Nil, nil, fmt.Errorf("failed to find course")
	}
	if course == nil || !course.Published {
		return uuid.Nil, nil, fmt.Errorf("course %s not found", req.CourseID)
	}

	enrolled, err := s.repo.Enrollment.Exists(ctx, userUUID, courseUUID)
	if err != nil {
		s.log.Error("Failed to check enrollment", zap.Error(err), zap.String("course_id", req.CourseID))
		return uuid.Nil, nil, fmt.Errorf("failed to check enrollment")
	}
	if enrolled {
		return uuid.Nil, nil, fmt.Errorf("already enrolled in this course")
	}

	return userUUID, course, nil
}

func (s *checkoutService) newPendingPurchase(id, userID uuid.UUID, course *entity.Course, provider entity.PaymentProvider, orderID string) *entity.Purchase {
	now := time.Now()
	return &entity.Purchase{
		Base: entity.Base{
			ID:        id,
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:          userID,
		CourseID:        course.ID,
		Provider:        provider,
		Amount:          course.Price,
		Currency:        course.Currency,
		Status:          entity.PurchaseStatusPending,
		ProviderOrderID: orderID,
	}
}

// completePurchase finishes the pending purchase and grants access.
// The completion update is guarded on pending status, so a duplicate
// delivery for the same order affects zero rows and writes nothing else.
func (s *checkoutService) completePurchase(ctx context.Context, purchase *entity.Purchase, paymentID string) error {
	completed, err := s.repo.Purchase.MarkCompleted(ctx, purchase.ID, paymentID)
	if err != nil {
		return err
	}
	if !completed {
		s.log.Info("Purchase already settled",
			zap.String("purchase_id", purchase.ID.String()))
		return nil
	}

	// Enrollment and progress are separate writes; both are idempotent inserts
	enrollment := &entity.Enrollment{
		UserID:     purchase.UserID,
		CourseID:   purchase.CourseID,
		EnrolledAt: time.Now(),
	}
	if err := s.repo.Enrollment.Create(ctx, enrollment); err != nil {
		s.log.Error("Failed to enroll after purchase",
			zap.Error(err),
			zap.String("purchase_id", purchase.ID.String()))
		return err
	}

	now := time.Now()
	progress := &entity.CourseProgress{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:   purchase.UserID,
		CourseID: purchase.CourseID,
	}
	if err := s.repo.Progress.Create(ctx, progress); err != nil {
		s.log.Warn("Failed to seed course progress",
			zap.Error(err),
			zap.String("purchase_id", purchase.ID.String()))
	}

	s.log.Info("Purchase completed",
		zap.String("purchase_id", purchase.ID.String()),
		zap.String("user_id", purchase.UserID.String()),
		zap.String("course_id", purchase.CourseID.String()))

	return nil
}

// toMinorUnits converts a decimal price to the smallest currency unit
func toMinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}
