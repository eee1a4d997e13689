package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"course-platform/pkg/utils"

	razorpay "github.com/razorpay/razorpay-go"
)

// OrderParams describes the Razorpay order being created
type OrderParams struct {
	PurchaseID  string
	Receipt     string
	AmountMinor int64 // paise for INR
	Currency    string
}

type RazorpayGateway interface {
	CreateOrder(ctx context.Context, params OrderParams) (string, error)
	VerifyPaymentSignature(orderID, paymentID, signature string) bool
}

type razorpayGateway struct {
	client    *razorpay.Client
	keySecret string
}

func NewRazorpayGateway(config utils.RazorpayConfig) RazorpayGateway {
	return &razorpayGateway{
		client:    razorpay.NewClient(config.KeyID, config.KeySecret),
		keySecret: config.KeySecret,
	}
}

func (g *razorpayGateway) CreateOrder(ctx context.Context, p OrderParams) (string, error) {
	data := map[string]interface{}{
		"amount":   p.AmountMinor,
		"currency": strings.ToUpper(p.Currency),
		"receipt":  p.Receipt,
		"notes": map[string]interface{}{
			"purchase_id": p.PurchaseID,
		},
	}

	order, err := g.client.Order.Create(data, nil)
	if err != nil {
		return "", fmt.Errorf("create razorpay order: %w", err)
	}

	orderID, ok := order["id"].(string)
	if !ok || orderID == "" {
		return "", fmt.Errorf("razorpay order response missing id")
	}

	return orderID, nil
}

// VerifyPaymentSignature recomputes the HMAC-SHA256 of "order_id|payment_id"
// with the key secret and compares it to the provider-supplied signature.
func (g *razorpayGateway) VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(g.keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
