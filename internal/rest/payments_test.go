//go:build !integration

package rest

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"roktoSheba/business/payments"
	"roktoSheba/domain"
)

type fakePaymentsService struct {
	amount float64
	result domain.FinalizeResult
	err    error
}

func (f *fakePaymentsService) CreateCheckout(_ context.Context, amount float64, _, _ string) (string, error) {
	f.amount = amount
	return "https://checkout.example/cs_1", f.err
}

func (f *fakePaymentsService) FinalizePayment(context.Context, string) (domain.FinalizeResult, error) {
	return f.result, f.err
}

func TestCreateCheckoutHandler(t *testing.T) {
	svc := &fakePaymentsService{}
	c, rec := newContext(http.MethodPost, "/create-payment-checkout", `{"amount":25,"donorEmail":"d@x.com","donorName":"Karim"}`)

	if err := NewPaymentsHandler(svc).CreateCheckout(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusCreated || !strings.Contains(rec.Body.String(), `"url":"https://checkout.example/cs_1"`) {
		t.Fatalf("checkout: %d %s", rec.Code, rec.Body.String())
	}
	if svc.amount != 25 {
		t.Errorf("amount = %v", svc.amount)
	}

	c, rec = newContext(http.MethodPost, "/create-payment-checkout", `{"amount":0}`)
	if err := NewPaymentsHandler(&fakePaymentsService{}).CreateCheckout(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("zero amount status = %d", rec.Code)
	}

	c, rec = newContext(http.MethodPost, "/create-payment-checkout", `{"amount":10}`)
	if err := NewPaymentsHandler(&fakePaymentsService{err: errors.New("stripe down")}).CreateCheckout(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("provider failure status = %d", rec.Code)
	}
}

func TestSuccessPaymentHandler(t *testing.T) {
	cases := []struct {
		name   string
		target string
		svc    *fakePaymentsService
		want   int
	}{
		{"missing session", "/success-payment", &fakePaymentsService{}, http.StatusBadRequest},
		{"recorded", "/success-payment?session_id=cs_1", &fakePaymentsService{
			result: domain.FinalizeResult{TransactionID: "pi_1", Payment: &domain.Payment{TransactionID: "pi_1"}},
		}, http.StatusCreated},
		{"already exists", "/success-payment?session_id=cs_1", &fakePaymentsService{
			result: domain.FinalizeResult{AlreadyExists: true, TransactionID: "pi_1"},
		}, http.StatusOK},
		{"not paid", "/success-payment?session_id=cs_1", &fakePaymentsService{err: domain.ErrPaymentNotCompleted}, http.StatusBadRequest},
		{"missing intent", "/success-payment?session_id=cs_1", &fakePaymentsService{err: payments.ErrMissingIntent}, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newContext(http.MethodPost, tc.target, "")
			if err := NewPaymentsHandler(tc.svc).SuccessPayment(c); err != nil {
				t.Fatal(err)
			}
			if rec.Code != tc.want {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tc.want, rec.Body.String())
			}
		})
	}
}
