package domain

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentInit    PaymentStatus = "init"
	PaymentSuccess PaymentStatus = "success"
	PaymentFailed  PaymentStatus = "failed"
	PaymentWaived  PaymentStatus = "waived"
)

// Payment is an append-only record of one gateway transaction. A waived
// payment carries amount 0 and bypasses the gate without a real charge.
type Payment struct {
	ID         uuid.UUID              `json:"id"`
	UserID     uuid.UUID              `json:"user_id"`
	JobID      *uuid.UUID             `json:"job_id,omitempty"`
	Provider   string                 `json:"provider"`
	AmountKobo int64                  `json:"amount"`
	Currency   string                 `json:"currency"`
	Status     PaymentStatus          `json:"status"`
	Reference  string                 `json:"reference"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	RawWebhook []byte                 `json:"-"`
	CreatedAt  time.Time              `json:"created_at"`
}

func NewWaivedPayment(userID uuid.UUID, role, reference string) *Payment {
	if reference == "" {
		reference = "waived-" + uuid.NewString()
	}
	return &Payment{
		ID:         uuid.New(),
		UserID:     userID,
		Provider:   "paystack",
		AmountKobo: 0,
		Currency:   "NGN",
		Status:     PaymentWaived,
		Reference:  reference,
		Metadata:   map[string]interface{}{"role": role, "note": "waived"},
		CreatedAt:  time.Now(),
	}
}
