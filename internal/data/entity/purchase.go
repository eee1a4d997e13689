package entity

import (
	"github.com/google/uuid"
)

type PurchaseStatus string

const (
	PurchaseStatusPending   PurchaseStatus = "pending"
	PurchaseStatusCompleted PurchaseStatus = "completed"
	PurchaseStatusFailed    PurchaseStatus = "failed"
	PurchaseStatusRefunded  PurchaseStatus = "refunded"
)

type PaymentProvider string

const (
	ProviderStripe   PaymentProvider = "stripe"
	ProviderRazorpay PaymentProvider = "razorpay"
)

type Purchase struct {
	Base
	UserID            uuid.UUID       `db:"user_id"`
	CourseID          uuid.UUID       `db:"course_id"`
	Provider          PaymentProvider `db:"provider"`
	Amount            float64         `db:"amount"`
	Currency          string          `db:"currency"`
	Status            PurchaseStatus  `db:"status"`
	ProviderOrderID   string          `db:"provider_order_id"`
	ProviderPaymentID *string         `db:"provider_payment_id"`
}
