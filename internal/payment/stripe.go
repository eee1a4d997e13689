package payment

import (
	"context"

	"course-platform/pkg/utils"

	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/checkout/session"
	"github.com/stripe/stripe-go/v75/webhook"
)

// CheckoutParams describes the single-course checkout being created
type CheckoutParams struct {
	PurchaseID  string
	CourseTitle string
	AmountMinor int64 // smallest currency unit
	Currency    string
}

// CheckoutSession is the provider-side handle returned to the client
type CheckoutSession struct {
	SessionID string
	URL       string
}

type StripeGateway interface {
	CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*CheckoutSession, error)
	ConstructWebhookEvent(payload []byte, sigHeader string) (stripe.Event, error)
}

type stripeGateway struct {
	config utils.StripeConfig
}

func NewStripeGateway(config utils.StripeConfig) StripeGateway {
	return &stripeGateway{config: config}
}

func (g *stripeGateway) CreateCheckoutSession(ctx context.Context, p CheckoutParams) (*CheckoutSession, error) {
	stripe.Key = g.config.SecretKey

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(g.config.SuccessURL),
		CancelURL:  stripe.String(g.config.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(p.Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(p.CourseTitle),
					},
					UnitAmount: stripe.Int64(p.AmountMinor),
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.AddMetadata("purchase_id", p.PurchaseID)
	params.Context = ctx

	s, err := session.New(params)
	if err != nil {
		return nil, err
	}

	return &CheckoutSession{
		SessionID: s.ID,
		URL:       s.URL,
	}, nil
}

func (g *stripeGateway) ConstructWebhookEvent(payload []byte, sigHeader string) (stripe.Event, error) {
	return webhook.ConstructEvent(payload, sigHeader, g.config.WebhookSecret)
}
