package response

import (
	"time"

	"course-platform/internal/data/entity"
)

type StripeCheckoutResponse struct {
	PurchaseID  string `json:"purchase_id"`
	SessionID   string `json:"session_id"`
	CheckoutURL string `json:"checkout_url"`
}

type RazorpayOrderResponse struct {
	PurchaseID string  `json:"purchase_id"`
	OrderID    string  `json:"order_id"`
	Amount     float64 `json:"amount"`
	Currency   string  `json:"currency"`
	KeyID      string  `json:"key_id"`
}

type PurchaseResponse struct {
	ID              string                 `json:"id"`
	CourseID        string                 `json:"course_id"`
	Provider        entity.PaymentProvider `json:"provider"`
	Amount          float64                `json:"amount"`
	Currency        string                 `json:"currency"`
	Status          entity.PurchaseStatus  `json:"status"`
	ProviderOrderID string                 `json:"provider_order_id"`
	CreatedAt       time.Time              `json:"created_at"`
}

func PurchaseToResponse(purchase *entity.Purchase) PurchaseResponse {
	return PurchaseResponse{
		ID:              purchase.ID.String(),
		CourseID:        purchase.CourseID.String(),
		Provider:        purchase.Provider,
		Amount:          purchase.Amount,
		Currency:        purchase.Currency,
		Status:          purchase.Status,
		ProviderOrderID: purchase.ProviderOrderID,
		CreatedAt:       purchase.CreatedAt,
	}
}
