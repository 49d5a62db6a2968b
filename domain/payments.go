package domain

import "time"

const PaymentStatusPaid = "paid"

type Payment struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	TransactionID string    `gorm:"column:transaction_id;uniqueIndex;not null" json:"transactionId"`
	Amount        float64   `gorm:"column:amount;not null" json:"amount"`
	Currency      string    `gorm:"column:currency;not null" json:"currency"`
	DonorEmail    string    `gorm:"column:donor_email;index" json:"donorEmail"`
	DonorName     string    `gorm:"column:donor_name" json:"donorName"`
	PaymentStatus string    `gorm:"column:payment_status;not null" json:"payment_status"`
	PaidAt        time.Time `gorm:"column:paid_at;not null" json:"paidAt"`
}

func (Payment) TableName() string {
	return "payments"
}

// CheckoutRequest asks for a single line item session. AmountMinor is in
// minor currency units.
type CheckoutRequest struct {
	AmountMinor int64
	DonorEmail  string
	DonorName   string
}

// CheckoutSession is the provider-neutral view of a hosted checkout session.
// AmountTotal is in minor currency units.
type CheckoutSession struct {
	ID              string
	URL             string
	PaymentStatus   string
	PaymentIntentID string
	AmountTotal     int64
	Currency        string
	CustomerEmail   string
	DonorName       string
}

type FinalizeResult struct {
	AlreadyExists bool     `json:"alreadyExists"`
	TransactionID string   `json:"transactionId"`
	Payment       *Payment `json:"payment,omitempty"`
}
