package payments

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"roktoSheba/domain"
	"roktoSheba/pkg/logger"
	"roktoSheba/pkg/metrics"
	"roktoSheba/pkg/mq"
)

type PaymentsRepository interface {
	FindByTransactionID(ctx context.Context, transactionID string) (domain.Payment, error)
	CreateIfAbsent(ctx context.Context, payment *domain.Payment) (bool, error)
	TotalAmount(ctx context.Context) (float64, error)
}

type CheckoutGateway interface {
	CreateSession(ctx context.Context, req domain.CheckoutRequest) (domain.CheckoutSession, error)
	GetSession(ctx context.Context, sessionID string) (domain.CheckoutSession, error)
}

type NotificationRepository interface {
	SendEmail(ctx context.Context, toName, toEmail, subject, message string) error
}

type EventPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

var (
	ErrInvalidAmount    = errors.New("amount must be greater than zero")
	ErrMissingSessionID = errors.New("session_id is required")
	ErrMissingIntent    = errors.New("checkout session has no payment intent")
)

type PaymentsService struct {
	paymentRepo  PaymentsRepository
	checkout     CheckoutGateway
	notification NotificationRepository
	events       EventPublisher
	now          func() time.Time
}

func NewPaymentsService(paymentRepo PaymentsRepository, checkout CheckoutGateway, notification NotificationRepository, events EventPublisher) *PaymentsService {
	return &PaymentsService{
		paymentRepo:  paymentRepo,
		checkout:     checkout,
		notification: notification,
		events:       events,
		now:          time.Now,
	}
}

type DonationRecordedEvent struct {
	TransactionID string    `json:"transactionId"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	DonorEmail    string    `json:"donorEmail"`
	DonorName     string    `json:"donorName"`
	PaidAt        time.Time `json:"paidAt"`
}

// ToMinorUnits converts a major currency amount to minor units, rounding
// to the nearest unit.
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func FromMinorUnits(amount int64) float64 {
	return float64(amount) / 100
}

// CreateCheckout opens a hosted checkout session and returns its redirect url.
func (s *PaymentsService) CreateCheckout(ctx context.Context, amount float64, donorEmail, donorName string) (string, error) {
	minor := ToMinorUnits(amount)
	if minor <= 0 {
		return "", ErrInvalidAmount
	}

	session, err := s.checkout.CreateSession(ctx, domain.CheckoutRequest{
		AmountMinor: minor,
		DonorEmail:  donorEmail,
		DonorName:   donorName,
	})
	if err != nil {
		logger.Error("Failed to create checkout session", "donor", donorEmail, "error", err)
		return "", err
	}
	metrics.CheckoutSessionsCreated.Inc()

	return session.URL, nil
}

// FinalizePayment records the payment behind a completed checkout session.
// Each payment intent is recorded at most once.
func (s *PaymentsService) FinalizePayment(ctx context.Context, sessionID string) (domain.FinalizeResult, error) {
	if sessionID == "" {
		return domain.FinalizeResult{}, ErrMissingSessionID
	}

	session, err := s.checkout.GetSession(ctx, sessionID)
	if err != nil {
		logger.Error("Failed to retrieve checkout session", "session", sessionID, "error", err)
		metrics.PaymentsRecorded.WithLabelValues("error").Inc()
		return domain.FinalizeResult{}, err
	}

	transactionID := session.PaymentIntentID

	if transactionID != "" {
		existing, err := s.paymentRepo.FindByTransactionID(ctx, transactionID)
		switch {
		case err == nil:
			metrics.PaymentsRecorded.WithLabelValues("duplicate").Inc()
			return domain.FinalizeResult{AlreadyExists: true, TransactionID: transactionID, Payment: &existing}, nil
		case !errors.Is(err, domain.ErrNotFound):
			logger.Error("Failed to look up payment", "transaction", transactionID, "error", err)
			metrics.PaymentsRecorded.WithLabelValues("error").Inc()
			return domain.FinalizeResult{}, err
		}
	}

	if session.PaymentStatus != domain.PaymentStatusPaid {
		metrics.PaymentsRecorded.WithLabelValues("unpaid").Inc()
		return domain.FinalizeResult{TransactionID: transactionID}, domain.ErrPaymentNotCompleted
	}

	if transactionID == "" {
		metrics.PaymentsRecorded.WithLabelValues("error").Inc()
		return domain.FinalizeResult{}, fmt.Errorf("session %s: %w", sessionID, ErrMissingIntent)
	}

	payment := domain.Payment{
		TransactionID: transactionID,
		Amount:        FromMinorUnits(session.AmountTotal),
		Currency:      session.Currency,
		DonorEmail:    session.CustomerEmail,
		DonorName:     session.DonorName,
		PaymentStatus: session.PaymentStatus,
		PaidAt:        s.now(),
	}

	created, err := s.paymentRepo.CreateIfAbsent(ctx, &payment)
	if err != nil {
		logger.Error("Failed to record payment", "transaction", transactionID, "error", err)
		metrics.PaymentsRecorded.WithLabelValues("error").Inc()
		return domain.FinalizeResult{}, err
	}
	if !created {
		metrics.PaymentsRecorded.WithLabelValues("duplicate").Inc()
		return domain.FinalizeResult{AlreadyExists: true, TransactionID: transactionID}, nil
	}

	metrics.PaymentsRecorded.WithLabelValues("recorded").Inc()
	logger.Info("Payment recorded", "transaction", transactionID, "amount", payment.Amount, "currency", payment.Currency)

	s.afterRecorded(ctx, payment)

	return domain.FinalizeResult{TransactionID: transactionID, Payment: &payment}, nil
}

// afterRecorded sends the receipt and the donation event. Failures are only logged.
func (s *PaymentsService) afterRecorded(ctx context.Context, payment domain.Payment) {
	if payment.DonorEmail != "" {
		subject := "Thank you for your donation"
		message := fmt.Sprintf("Dear %s, we received your donation of %.2f %s. Transaction: %s",
			donorGreeting(payment.DonorName), payment.Amount, payment.Currency, payment.TransactionID)
		if err := s.notification.SendEmail(ctx, payment.DonorName, payment.DonorEmail, subject, message); err != nil {
			logger.Warn("Failed to send donation receipt", "transaction", payment.TransactionID, "error", err)
		}
	}

	event := DonationRecordedEvent{
		TransactionID: payment.TransactionID,
		Amount:        payment.Amount,
		Currency:      payment.Currency,
		DonorEmail:    payment.DonorEmail,
		DonorName:     payment.DonorName,
		PaidAt:        payment.PaidAt,
	}
	if err := s.events.PublishJSON(ctx, mq.KeyDonationRecorded, event); err != nil {
		logger.Warn("Failed to publish donation event", "transaction", payment.TransactionID, "error", err)
	}
}

func donorGreeting(name string) string {
	if name == "" {
		return "donor"
	}
	return name
}
