package request

type CheckoutRequest struct {
	CourseID string `json:"course_id" validate:"required,uuid"`
}

type RazorpayVerifyRequest struct {
	OrderID   string `json:"razorpay_order_id" validate:"required"`
	PaymentID string `json:"razorpay_payment_id" validate:"required"`
	Signature string `json:"razorpay_signature" validate:"required"`
}
