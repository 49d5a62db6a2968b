//go:build !integration

package router

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"roktoSheba/domain"
	"roktoSheba/internal/middleware"
	"roktoSheba/internal/rest"

	"github.com/labstack/echo/v4"
)

type stubVerifier struct{}

func (stubVerifier) VerifyIDToken(_ context.Context, token string) (domain.Identity, error) {
	if token != "valid" {
		return domain.Identity{}, domain.ErrInvalidToken
	}
	return domain.Identity{UID: "uid-1", Email: "me@x.com"}, nil
}

// countingStore backs every service and counts calls that reach it.
type countingStore struct {
	calls     int
	lastEmail string
}

func (s *countingStore) Register(context.Context, domain.User) (domain.InsertResult, error) {
	s.calls++
	return domain.InsertResult{Acknowledged: true, InsertedID: "1"}, nil
}

func (s *countingStore) GetAllUsers(context.Context) (domain.Page[domain.User], error) {
	s.calls++
	return domain.NewPage[domain.User](nil, 0, 1, 0), nil
}

func (s *countingStore) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	s.calls++
	s.lastEmail = email
	return nil, nil
}

func (s *countingStore) UpdateStatus(context.Context, string, string) (domain.UpdateResult, error) {
	s.calls++
	return domain.UpdateResult{}, nil
}

func (s *countingStore) UpdateProfile(context.Context, string, domain.UserProfile) (domain.UpdateResult, error) {
	s.calls++
	return domain.UpdateResult{}, nil
}

func (s *countingStore) CreateRequest(context.Context, string, domain.BloodRequest) (domain.InsertResult, error) {
	s.calls++
	return domain.InsertResult{}, nil
}

func (s *countingStore) GetRequest(context.Context, string) (*domain.BloodRequest, error) {
	s.calls++
	return nil, nil
}

func (s *countingStore) UpdateRequest(context.Context, string, domain.RequestPatch) (domain.UpdateResult, error) {
	s.calls++
	return domain.UpdateResult{}, nil
}

func (s *countingStore) DeleteRequest(context.Context, string) (domain.DeleteResult, error) {
	s.calls++
	return domain.DeleteResult{}, nil
}

func (s *countingStore) MyRequests(context.Context, string, int, int) (domain.Page[domain.BloodRequest], error) {
	s.calls++
	return domain.Page[domain.BloodRequest]{}, nil
}

func (s *countingStore) AllRequests(context.Context, domain.RequestQuery) (domain.Page[domain.BloodRequest], error) {
	s.calls++
	return domain.Page[domain.BloodRequest]{}, nil
}

func (s *countingStore) SearchRequests(context.Context, domain.SearchQuery) (domain.Page[domain.BloodRequest], error) {
	s.calls++
	return domain.NewPage[domain.BloodRequest](nil, 0, 1, 0), nil
}

func (s *countingStore) Stats(context.Context) (domain.Stats, error) {
	s.calls++
	return domain.Stats{}, nil
}

func (s *countingStore) RecentActivities(context.Context) ([]domain.Activity, error) {
	s.calls++
	return []domain.Activity{}, nil
}

func (s *countingStore) CreateCheckout(context.Context, float64, string, string) (string, error) {
	s.calls++
	return "", errors.New("not used")
}

func (s *countingStore) FinalizePayment(context.Context, string) (domain.FinalizeResult, error) {
	s.calls++
	return domain.FinalizeResult{}, errors.New("not used")
}

type denyAll struct{}

func (denyAll) IsAdmin(context.Context, string) (bool, error) { return false, nil }

func newServer(store *countingStore, enforceAdmin bool) *echo.Echo {
	e := echo.New()
	guards := Guards{
		AuthRequired: middleware.AuthMiddleware(stubVerifier{}),
		OwnerOnly:    middleware.OwnerOnly("email"),
	}
	if enforceAdmin {
		guards.AdminOnly = []echo.MiddlewareFunc{middleware.AdminOnly(denyAll{})}
	}

	api := e.Group("")
	SetupUserRoutes(api, rest.NewUserHandler(store), guards)
	SetupRequestRoutes(api, rest.NewRequestHandler(store), guards)
	SetupAdminRoutes(api, rest.NewAdminHandler(store), guards)
	SetPaymentsRoutes(api, rest.NewPaymentsHandler(store))
	SetHealthRoutes(api)
	return e
}

func do(e *echo.Echo, method, target, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestGatedRoutesRejectBeforeStore(t *testing.T) {
	gated := []struct{ method, target string }{
		{http.MethodGet, "/users"},
		{http.MethodGet, "/users/me@x.com"},
		{http.MethodPatch, "/users/me@x.com"},
		{http.MethodPatch, "/user/status?email=a@x.com&status=Blocked"},
		{http.MethodPost, "/request"},
		{http.MethodGet, "/my-requests"},
		{http.MethodGet, "/all-requests"},
		{http.MethodGet, "/requests/665f1c2e8a1b2c3d4e5f6a7b"},
		{http.MethodPatch, "/requests/665f1c2e8a1b2c3d4e5f6a7b"},
		{http.MethodDelete, "/requests/665f1c2e8a1b2c3d4e5f6a7b"},
		{http.MethodGet, "/admin/stats"},
		{http.MethodGet, "/admin/recent-activities"},
	}

	for _, route := range gated {
		for _, token := range []string{"", "forged"} {
			store := &countingStore{}
			rec := do(newServer(store, false), route.method, route.target, token)
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("%s %s token %q: status %d, want 401", route.method, route.target, token, rec.Code)
			}
			if store.calls != 0 {
				t.Errorf("%s %s token %q: store called %d times", route.method, route.target, token, store.calls)
			}
		}
	}
}

func TestOwnershipIsEnforced(t *testing.T) {
	store := &countingStore{}
	e := newServer(store, false)

	rec := do(e, http.MethodGet, "/users/other@x.com", "valid")
	if rec.Code != http.StatusForbidden || store.calls != 0 {
		t.Fatalf("status %d calls %d, want 403 and no store call", rec.Code, store.calls)
	}

	rec = do(e, http.MethodGet, "/users/me@x.com", "valid")
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "null" {
		t.Fatalf("own profile: %d %q", rec.Code, rec.Body.String())
	}
}

func TestEncodedPathEmail(t *testing.T) {
	store := &countingStore{}
	e := newServer(store, false)

	rec := do(e, http.MethodGet, "/users/me%40x.com", "valid")
	if rec.Code != http.StatusOK {
		t.Fatalf("encoded own profile: status %d, want 200", rec.Code)
	}
	if store.lastEmail != "me@x.com" {
		t.Errorf("looked up %q, want me@x.com", store.lastEmail)
	}

	rec = do(e, http.MethodGet, "/users/other%40x.com", "valid")
	if rec.Code != http.StatusForbidden {
		t.Errorf("encoded other profile: status %d, want 403", rec.Code)
	}

	rec = do(e, http.MethodGet, "/users/role/me%40x.com", "")
	if rec.Code != http.StatusOK || store.lastEmail != "me@x.com" {
		t.Errorf("encoded role lookup: status %d email %q", rec.Code, store.lastEmail)
	}
}

func TestPublicRoutes(t *testing.T) {
	store := &countingStore{}
	e := newServer(store, false)

	rec := do(e, http.MethodGet, "/users/role/nobody@x.com", "")
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "null" {
		t.Errorf("role lookup: %d %q", rec.Code, rec.Body.String())
	}

	for _, path := range []string{"/search-request?blood=A%2B", "/search-requests?district=dhaka"} {
		rec = do(e, http.MethodGet, path, "")
		if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"data":[]`) {
			t.Errorf("%s: %d %s", path, rec.Code, rec.Body.String())
		}
	}

	rec = do(e, http.MethodGet, "/", "")
	if rec.Code != http.StatusOK || rec.Body.String() != "Roktosheba server is running" {
		t.Errorf("liveness: %d %q", rec.Code, rec.Body.String())
	}
}

func TestAdminEnforcement(t *testing.T) {
	store := &countingStore{}
	rec := do(newServer(store, false), http.MethodGet, "/admin/stats", "valid")
	if rec.Code != http.StatusOK {
		t.Errorf("enforcement off: status %d", rec.Code)
	}

	store = &countingStore{}
	rec = do(newServer(store, true), http.MethodGet, "/admin/stats", "valid")
	if rec.Code != http.StatusForbidden || store.calls != 0 {
		t.Errorf("enforcement on: status %d calls %d", rec.Code, store.calls)
	}

	rec = do(newServer(store, true), http.MethodGet, "/my-requests", "valid")
	if rec.Code != http.StatusOK {
		t.Errorf("donor route under enforcement: status %d", rec.Code)
	}
}
