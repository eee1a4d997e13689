package adaptor

import (
	"encoding/json"
	"io"
	"net/http"

	"course-platform/internal/dto/request"
	"course-platform/internal/usecase"
	"course-platform/pkg/utils"

	"go.uber.org/zap"
)

type CheckoutHandler struct {
	service usecase.CheckoutService
	log     *zap.Logger
}

func NewCheckoutHandler(service usecase.CheckoutService, log *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		log:     log,
	}
}

// StripeCheckout handles POST /api/checkout/stripe
func (h *CheckoutHandler) StripeCheckout(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	response, err := h.service.CreateStripeCheckout(r.Context(), userID.String(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create stripe checkout")
		return
	}

	utils.ResponseCreated(w, "Checkout session created", response)
}

// StripeWebhook handles POST /api/webhooks/stripe
//
// The raw body is needed for signature verification, so it is read
// before any decoding.
func (h *CheckoutHandler) StripeWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, 65536))
	if err != nil {
		utils.ResponseBadRequest(w, "Unable to read webhook payload", nil)
		return
	}

	sigHeader := r.Header.Get("Stripe-Signature")

	if err := h.service.HandleStripeWebhook(r.Context(), payload, sigHeader); err != nil {
		handleServiceError(w, h.log, err, "handle stripe webhook")
		return
	}

	utils.ResponseSuccess(w, "Webhook processed", nil)
}

// RazorpayOrder handles POST /api/checkout/razorpay
func (h *CheckoutHandler) RazorpayOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	response, err := h.service.CreateRazorpayOrder(r.Context(), userID.String(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create razorpay order")
		return
	}

	utils.ResponseCreated(w, "Order created", response)
}

// RazorpayVerify handles POST /api/checkout/razorpay/verify
func (h *CheckoutHandler) RazorpayVerify(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.RazorpayVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	response, err := h.service.VerifyRazorpayPayment(r.Context(), userID.String(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "verify razorpay payment")
		return
	}

	utils.ResponseSuccess(w, "Payment verified", response)
}

// GetPurchases handles GET /api/purchases
func (h *CheckoutHandler) GetPurchases(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	response, err := h.service.GetUserPurchases(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "get purchases")
		return
	}

	utils.ResponseSuccess(w, "Purchases retrieved", response)
}
