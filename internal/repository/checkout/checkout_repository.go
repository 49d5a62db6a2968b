package checkout

import (
	"context"
	"fmt"

	"roktoSheba/domain"
	"roktoSheba/pkg/obs"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

const (
	lineItemName    = "Blood donation fund"
	metaDonorName   = "donorName"
	sessionIDMarker = "{CHECKOUT_SESSION_ID}"
)

type CheckoutConfig struct {
	SecretKey          string
	Currency           string
	SuccessRedirectUrl string
	CancelRedirectUrl  string
}

// RedirectURLs builds the success and cancel pages for a site domain. The
// success page receives the session id from the provider.
func RedirectURLs(siteDomain string) (success, cancel string) {
	return siteDomain + "/dashboard/payment-success?session_id=" + sessionIDMarker,
		siteDomain + "/dashboard/payment-cancelled"
}

type CheckoutRepository struct {
	checkoutConfig CheckoutConfig
	sc             *client.API
}

func NewCheckoutRepository(cfg CheckoutConfig) *CheckoutRepository {
	return &CheckoutRepository{
		checkoutConfig: cfg,
		sc:             client.New(cfg.SecretKey, nil),
	}
}

func (r *CheckoutRepository) CreateSession(ctx context.Context, req domain.CheckoutRequest) (domain.CheckoutSession, error) {
	ctx, span := obs.Start(ctx, "checkout.CreateSession")
	defer span.End()

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(r.checkoutConfig.Currency),
					UnitAmount: stripe.Int64(req.AmountMinor),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(lineItemName),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(r.checkoutConfig.SuccessRedirectUrl),
		CancelURL:  stripe.String(r.checkoutConfig.CancelRedirectUrl),
	}
	if req.DonorEmail != "" {
		params.CustomerEmail = stripe.String(req.DonorEmail)
	}
	params.AddMetadata(metaDonorName, req.DonorName)
	params.SetIdempotencyKey(uuid.NewString())
	params.Context = ctx

	s, err := r.sc.CheckoutSessions.New(params)
	if err != nil {
		span.RecordError(err)
		return domain.CheckoutSession{}, fmt.Errorf("failed to create checkout session: %w", err)
	}

	return toSession(s), nil
}

func (r *CheckoutRepository) GetSession(ctx context.Context, sessionID string) (domain.CheckoutSession, error) {
	ctx, span := obs.Start(ctx, "checkout.GetSession")
	defer span.End()

	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	s, err := r.sc.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		span.RecordError(err)
		return domain.CheckoutSession{}, fmt.Errorf("failed to retrieve checkout session: %w", err)
	}

	return toSession(s), nil
}

func toSession(s *stripe.CheckoutSession) domain.CheckoutSession {
	out := domain.CheckoutSession{
		ID:            s.ID,
		URL:           s.URL,
		PaymentStatus: string(s.PaymentStatus),
		AmountTotal:   s.AmountTotal,
		Currency:      string(s.Currency),
		CustomerEmail: s.CustomerEmail,
		DonorName:     s.Metadata[metaDonorName],
	}
	if s.PaymentIntent != nil {
		out.PaymentIntentID = s.PaymentIntent.ID
	}
	if out.CustomerEmail == "" && s.CustomerDetails != nil {
		out.CustomerEmail = s.CustomerDetails.Email
	}
	return out
}
