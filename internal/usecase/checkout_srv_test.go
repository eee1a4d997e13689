package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"course-platform/internal/data/entity"
	"course-platform/internal/dto/request"
	"course-platform/internal/payment"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v75"
	"go.uber.org/zap/zaptest"
)

func seedPublishedCourse(t *testing.T, repo interface {
	Create(ctx context.Context, course *entity.Course) error
}) *entity.Course {
	t.Helper()

	now := time.Now()
	course := &entity.Course{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		InstructorID: uuid.New(),
		Title:        "Intro to Databases",
		Category:     "engineering",
		Level:        entity.LevelBeginner,
		Price:        49.99,
		Currency:     "usd",
		Published:    true,
	}
	require.NoError(t, repo.Create(context.Background(), course))
	return course
}

func TestCreateRazorpayOrder(t *testing.T) {
	repo := newTestRepository()
	config := newTestConfig()
	course := seedPublishedCourse(t, repo.Course)
	userID := uuid.New()

	razorpayGw := &fakeRazorpayGateway{orderID: "order_abc123", keySecret: config.Razorpay.KeySecret}
	service := NewCheckoutService(repo, config, &fakeStripeGateway{}, razorpayGw, zaptest.NewLogger(t))

	resp, err := service.CreateRazorpayOrder(context.Background(), userID.String(), &request.CheckoutRequest{
		CourseID: course.ID.String(),
	})
	require.NoError(t, err)

	assert.Equal(t, "order_abc123", resp.OrderID)
	assert.Equal(t, 49.99, resp.Amount)
	assert.Equal(t, "rzp_test_key", resp.KeyID)

	purchase, err := repo.Purchase.FindPendingByOrderID(context.Background(), entity.ProviderRazorpay, "order_abc123")
	require.NoError(t, err)
	require.NotNil(t, purchase)
	assert.Equal(t, entity.PurchaseStatusPending, purchase.Status)
}

func TestVerifyRazorpayPayment(t *testing.T) {
	repo := newTestRepository()
	config := newTestConfig()
	course := seedPublishedCourse(t, repo.Course)
	userID := uuid.New()

	razorpayGw := &fakeRazorpayGateway{orderID: "order_abc123", keySecret: config.Razorpay.KeySecret}
	service := NewCheckoutService(repo, config, &fakeStripeGateway{}, razorpayGw, zaptest.NewLogger(t))

	_, err := service.CreateRazorpayOrder(context.Background(), userID.String(), &request.CheckoutRequest{
		CourseID: course.ID.String(),
	})
	require.NoError(t, err)

	signature := signRazorpay(config.Razorpay.KeySecret, "order_abc123", "pay_xyz789")

	resp, err := service.VerifyRazorpayPayment(context.Background(), userID.String(), &request.RazorpayVerifyRequest{
		OrderID:   "order_abc123",
		PaymentID: "pay_xyz789",
		Signature: signature,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseStatusCompleted, resp.Status)

	// Payment grants enrollment
	enrolled, err := repo.Enrollment.Exists(context.Background(), userID, course.ID)
	require.NoError(t, err)
	assert.True(t, enrolled)

	// And seeds a progress record
	progress, err := repo.Progress.FindByUserAndCourse(context.Background(), userID, course.ID)
	require.NoError(t, err)
	assert.NotNil(t, progress)
}

func TestVerifyRazorpayPaymentTamperedSignature(t *testing.T) {
	repo := newTestRepository()
	config := newTestConfig()
	course := seedPublishedCourse(t, repo.Course)
	userID := uuid.New()

	razorpayGw := &fakeRazorpayGateway{orderID: "order_abc123", keySecret: config.Razorpay.KeySecret}
	service := NewCheckoutService(repo, config, &fakeStripeGateway{}, razorpayGw, zaptest.NewLogger(t))

	_, err := service.CreateRazorpayOrder(context.Background(), userID.String(), &request.CheckoutRequest{
		CourseID: course.ID.String(),
	})
	require.NoError(t, err)

	// Signature computed over a different payment id
	tampered := signRazorpay(config.Razorpay.KeySecret, "order_abc123", "pay_other")

	_, err = service.VerifyRazorpayPayment(context.Background(), userID.String(), &request.RazorpayVerifyRequest{
		OrderID:   "order_abc123",
		PaymentID: "pay_xyz789",
		Signature: tampered,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid payment signature")

	// Purchase is marked failed and no enrollment was granted
	memPurchases := repo.Purchase.(*memPurchaseRepo)
	for _, purchase := range memPurchases.purchases {
		assert.Equal(t, entity.PurchaseStatusFailed, purchase.Status)
	}

	enrolled, err := repo.Enrollment.Exists(context.Background(), userID, course.ID)
	require.NoError(t, err)
	assert.False(t, enrolled)
}

func TestCheckoutRejectsEnrolledUser(t *testing.T) {
	repo := newTestRepository()
	config := newTestConfig()
	course := seedPublishedCourse(t, repo.Course)
	userID := uuid.New()

	require.NoError(t, repo.Enrollment.Create(context.Background(), &entity.Enrollment{
		UserID:     userID,
		CourseID:   course.ID,
		EnrolledAt: time.Now(),
	}))

	razorpayGw := &fakeRazorpayGateway{orderID: "order_abc123", keySecret: config.Razorpay.KeySecret}
	service := NewCheckoutService(repo, config, &fakeStripeGateway{}, razorpayGw, zaptest.NewLogger(t))

	_, err := service.CreateRazorpayOrder(context.Background(), userID.String(), &request.CheckoutRequest{
		CourseID: course.ID.String(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already enrolled")
}

func TestCheckoutRejectsUnpublishedCourse(t *testing.T) {
	repo := newTestRepository()
	config := newTestConfig()
	course := seedPublishedCourse(t, repo.Course)
	require.NoError(t, repo.Course.SetPublished(context.Background(), course.ID, false))

	service := NewCheckoutService(repo, config, &fakeStripeGateway{},
		&fakeRazorpayGateway{keySecret: config.Razorpay.KeySecret}, zaptest.NewLogger(t))

	_, err := service.CreateRazorpayOrder(context.Background(), uuid.New().String(), &request.CheckoutRequest{
		CourseID: course.ID.String(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestCreateStripeCheckout(t *testing.T) {
	repo := newTestRepository()
	config := newTestConfig()
	course := seedPublishedCourse(t, repo.Course)
	userID := uuid.New()

	stripeGw := &fakeStripeGateway{
		session: payment.CheckoutSession{
			SessionID: "cs_test_123",
			URL:       "https://checkout.stripe.com/c/pay/cs_test_123",
		},
	}
	service := NewCheckoutService(repo, config, stripeGw,
		&fakeRazorpayGateway{keySecret: config.Razorpay.KeySecret}, zaptest.NewLogger(t))

	resp, err := service.CreateStripeCheckout(context.Background(), userID.String(), &request.CheckoutRequest{
		CourseID: course.ID.String(),
	})
	require.NoError(t, err)

	assert.Equal(t, "cs_test_123", resp.SessionID)
	assert.NotEmpty(t, resp.CheckoutURL)

	purchase, err := repo.Purchase.FindPendingByOrderID(context.Background(), entity.ProviderStripe, "cs_test_123")
	require.NoError(t, err)
	require.NotNil(t, purchase)
}

func TestStripeWebhookCompletesPurchase(t *testing.T) {
	repo := newTestRepository()
	config := newTestConfig()
	course := seedPublishedCourse(t, repo.Course)
	userID := uuid.New()

	stripeGw := &fakeStripeGateway{
		session: payment.CheckoutSession{SessionID: "cs_test_123", URL: "https://example.com"},
	}
	service := NewCheckoutService(repo, config, stripeGw,
		&fakeRazorpayGateway{keySecret: config.Razorpay.KeySecret}, zaptest.NewLogger(t))

	_, err := service.CreateStripeCheckout(context.Background(), userID.String(), &request.CheckoutRequest{
		CourseID: course.ID.String(),
	})
	require.NoError(t, err)

	stripeGw.event = stripe.Event{
		ID:   "evt_1",
		Type: "checkout.session.completed",
		Data: &stripe.EventData{
			Object: map[string]interface{}{
				"id":             "cs_test_123",
				"payment_intent": "pi_456",
			},
		},
	}

	require.NoError(t, service.HandleStripeWebhook(context.Background(), []byte("{}"), "sig"))

	enrolled, err := repo.Enrollment.Exists(context.Background(), userID, course.ID)
	require.NoError(t, err)
	assert.True(t, enrolled)

	// A duplicate delivery is acknowledged without side effects
	require.NoError(t, service.HandleStripeWebhook(context.Background(), []byte("{}"), "sig"))

	purchases, err := repo.Purchase.FindByUser(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, purchases, 1)
	assert.Equal(t, entity.PurchaseStatusCompleted, purchases[0].Status)
}

func TestStripeWebhookInvalidSignature(t *testing.T) {
	repo := newTestRepository()
	config := newTestConfig()

	stripeGw := &fakeStripeGateway{sigErr: fmt.Errorf("signature mismatch")}
	service := NewCheckoutService(repo, config, stripeGw,
		&fakeRazorpayGateway{keySecret: config.Razorpay.KeySecret}, zaptest.NewLogger(t))

	err := service.HandleStripeWebhook(context.Background(), []byte("{}"), "bad")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid webhook signature")
}

func TestStripeWebhookExpiredSession(t *testing.T) {
	repo := newTestRepository()
	config := newTestConfig()
	course := seedPublishedCourse(t, repo.Course)
	userID := uuid.New()

	stripeGw := &fakeStripeGateway{
		session: payment.CheckoutSession{SessionID: "cs_test_123", URL: "https://example.com"},
	}
	service := NewCheckoutService(repo, config, stripeGw,
		&fakeRazorpayGateway{keySecret: config.Razorpay.KeySecret}, zaptest.NewLogger(t))

	_, err := service.CreateStripeCheckout(context.Background(), userID.String(), &request.CheckoutRequest{
		CourseID: course.ID.String(),
	})
	require.NoError(t, err)

	stripeGw.event = stripe.Event{
		ID:   "evt_2",
		Type: "checkout.session.expired",
		Data: &stripe.EventData{
			Object: map[string]interface{}{"id": "cs_test_123"},
		},
	}

	require.NoError(t, service.HandleStripeWebhook(context.Background(), []byte("{}"), "sig"))

	purchases, err := repo.Purchase.FindByUser(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, purchases, 1)
	assert.Equal(t, entity.PurchaseStatusFailed, purchases[0].Status)

	enrolled, err := repo.Enrollment.Exists(context.Background(), userID, course.ID)
	require.NoError(t, err)
	assert.False(t, enrolled)
}

func TestVerifyRazorpayPaymentWrongUser(t *testing.T) {
	repo := newTestRepository()
	config := newTestConfig()
	course := seedPublishedCourse(t, repo.Course)
	buyerID := uuid.New()

	razorpayGw := &fakeRazorpayGateway{orderID: "order_abc123", keySecret: config.Razorpay.KeySecret}
	service := NewCheckoutService(repo, config, &fakeStripeGateway{}, razorpayGw, zaptest.NewLogger(t))

	_, err := service.CreateRazorpayOrder(context.Background(), buyerID.String(), &request.CheckoutRequest{
		CourseID: course.ID.String(),
	})
	require.NoError(t, err)

	signature := signRazorpay(config.Razorpay.KeySecret, "order_abc123", "pay_xyz789")

	// A different user cannot settle someone else's order
	_, err = service.VerifyRazorpayPayment(context.Background(), uuid.New().String(), &request.RazorpayVerifyRequest{
		OrderID:   "order_abc123",
		PaymentID: "pay_xyz789",
		Signature: signature,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
