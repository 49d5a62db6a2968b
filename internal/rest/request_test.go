//go:build !integration

package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"roktoSheba/domain"
	"roktoSheba/internal/middleware"

	"github.com/labstack/echo/v4"
)

type fakeRequestService struct {
	createdBy  string
	created    domain.BloodRequest
	patch      domain.RequestPatch
	page       int
	limit      int
	allQuery   domain.RequestQuery
	search     domain.SearchQuery
	err        error
	getRequest *domain.BloodRequest
}

func (f *fakeRequestService) CreateRequest(_ context.Context, email string, req domain.BloodRequest) (domain.InsertResult, error) {
	f.createdBy, f.created = email, req
	return domain.InsertResult{Acknowledged: true, InsertedID: "665f1c2e8a1b2c3d4e5f6a7b"}, f.err
}

func (f *fakeRequestService) GetRequest(context.Context, string) (*domain.BloodRequest, error) {
	return f.getRequest, f.err
}

func (f *fakeRequestService) UpdateRequest(_ context.Context, _ string, patch domain.RequestPatch) (domain.UpdateResult, error) {
	f.patch = patch
	return domain.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, f.err
}

func (f *fakeRequestService) DeleteRequest(context.Context, string) (domain.DeleteResult, error) {
	return domain.DeleteResult{Acknowledged: true, DeletedCount: 1}, f.err
}

func (f *fakeRequestService) MyRequests(_ context.Context, _ string, page, limit int) (domain.Page[domain.BloodRequest], error) {
	f.page, f.limit = page, limit
	return domain.NewPage[domain.BloodRequest](nil, 0, page, limit), f.err
}

func (f *fakeRequestService) AllRequests(_ context.Context, q domain.RequestQuery) (domain.Page[domain.BloodRequest], error) {
	f.allQuery = q
	return domain.NewPage[domain.BloodRequest](nil, 0, q.Page, q.Limit), f.err
}

func (f *fakeRequestService) SearchRequests(_ context.Context, q domain.SearchQuery) (domain.Page[domain.BloodRequest], error) {
	f.search = q
	return domain.NewPage[domain.BloodRequest](nil, 0, q.Page, q.Limit), f.err
}

func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ContextEmail, "me@x.com")
	return c, rec
}

func TestCreateRequestUsesVerifiedEmail(t *testing.T) {
	svc := &fakeRequestService{}
	h := NewRequestHandler(svc)
	c, rec := newContext(http.MethodPost, "/request",
		`{"requesterEmail":"spoof@x.com","requesterName":"Rahim","bloodGroup":"AB-","district":"Dhaka"}`)

	if err := h.CreateRequest(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
	if svc.createdBy != "me@x.com" || svc.created.BloodGroup != "AB-" || svc.created.RequesterName != "Rahim" {
		t.Errorf("service got %q %+v", svc.createdBy, svc.created)
	}

	var res domain.InsertResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil || !res.Acknowledged || res.InsertedID == "" {
		t.Errorf("response = %s", rec.Body.String())
	}
}

func TestCreateRequestValidation(t *testing.T) {
	svc := &fakeRequestService{}
	h := NewRequestHandler(svc)
	c, rec := newContext(http.MethodPost, "/request", `{"bloodGroup":"Z+"}`)

	if err := h.CreateRequest(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusBadRequest || svc.createdBy != "" {
		t.Fatalf("status = %d, service called = %v", rec.Code, svc.createdBy != "")
	}
}

func TestMyRequestsPaginationDefaults(t *testing.T) {
	cases := []struct {
		query     string
		wantPage  int
		wantLimit int
	}{
		{"", 1, 5},
		{"?page=2&limit=5", 2, 5},
		{"?page=abc&limit=-3", 1, 5},
		{"?limit=1000", 1, 100},
	}
	for _, tc := range cases {
		svc := &fakeRequestService{}
		c, _ := newContext(http.MethodGet, "/my-requests"+tc.query, "")
		if err := NewRequestHandler(svc).MyRequests(c); err != nil {
			t.Fatal(err)
		}
		if svc.page != tc.wantPage || svc.limit != tc.wantLimit {
			t.Errorf("%q: page %d limit %d, want %d %d", tc.query, svc.page, svc.limit, tc.wantPage, tc.wantLimit)
		}
	}
}

func TestAllRequestsPassesFilters(t *testing.T) {
	svc := &fakeRequestService{}
	c, _ := newContext(http.MethodGet, "/all-requests?search=dha&status=pending", "")

	if err := NewRequestHandler(svc).AllRequests(c); err != nil {
		t.Fatal(err)
	}
	want := domain.RequestQuery{Search: "dha", Status: "pending", Page: 1, Limit: 10}
	if svc.allQuery != want {
		t.Errorf("query = %+v, want %+v", svc.allQuery, want)
	}
}

func TestSearchPaginatesOnlyWithLimit(t *testing.T) {
	svc := &fakeRequestService{}
	c, _ := newContext(http.MethodGet, "/search-request?blood=O-&page=3", "")
	if err := NewRequestHandler(svc).SearchRequests(c); err != nil {
		t.Fatal(err)
	}
	if svc.search.Limit != 0 || svc.search.Page != 1 || svc.search.BloodGroup != "O-" {
		t.Errorf("unpaginated search = %+v", svc.search)
	}

	c, _ = newContext(http.MethodGet, "/search-request?district=Dhaka&page=3&limit=4", "")
	if err := NewRequestHandler(svc).SearchRequests(c); err != nil {
		t.Fatal(err)
	}
	if svc.search.Limit != 4 || svc.search.Page != 3 || svc.search.District != "Dhaka" {
		t.Errorf("paginated search = %+v", svc.search)
	}
}

func TestSearchReadsBloodAndDistrict(t *testing.T) {
	svc := &fakeRequestService{}
	c, rec := newContext(http.MethodGet, "/search-request?blood=A%2B&district=Dhaka", "")

	if err := NewRequestHandler(svc).SearchRequests(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if svc.search.BloodGroup != "A+" || svc.search.District != "Dhaka" {
		t.Errorf("search = %+v, want blood A+ and district Dhaka", svc.search)
	}
}

func TestSearchBloodGroupForms(t *testing.T) {
	cases := []struct {
		query string
		want  string
	}{
		{"blood=A%2B", "A+"},
		{"blood=A+", "A+"},
		{"blood=AB+", "AB+"},
		{"blood=O-", "O-"},
		{"blood=+B-+", "B-"},
		{"bloodGroup=B%2B", "B+"},
		{"blood=AB-&bloodGroup=O%2B", "AB-"},
		{"district=Dhaka", ""},
	}

	for _, tc := range cases {
		svc := &fakeRequestService{}
		c, _ := newContext(http.MethodGet, "/search-request?"+tc.query, "")
		if err := NewRequestHandler(svc).SearchRequests(c); err != nil {
			t.Fatal(err)
		}
		if svc.search.BloodGroup != tc.want {
			t.Errorf("%s: blood group = %q, want %q", tc.query, svc.search.BloodGroup, tc.want)
		}
	}
}

func TestGetRequestResponses(t *testing.T) {
	c, rec := newContext(http.MethodGet, "/requests/x", "")
	if err := NewRequestHandler(&fakeRequestService{}).GetRequest(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "null" {
		t.Errorf("absent request: %d %q", rec.Code, rec.Body.String())
	}

	c, rec = newContext(http.MethodGet, "/requests/x", "")
	if err := NewRequestHandler(&fakeRequestService{err: domain.ErrInvalidID}).GetRequest(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "invalid request id") {
		t.Errorf("malformed id: %d %s", rec.Code, rec.Body.String())
	}
}

func TestUpdateRequest(t *testing.T) {
	svc := &fakeRequestService{}
	c, rec := newContext(http.MethodPatch, "/requests/x", `{"status":"done","donorName":"Karim"}`)
	if err := NewRequestHandler(svc).UpdateRequest(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"modifiedCount":1`) {
		t.Fatalf("update: %d %s", rec.Code, rec.Body.String())
	}
	if svc.patch.Status == nil || *svc.patch.Status != "done" || svc.patch.District != nil {
		t.Errorf("patch = %+v", svc.patch)
	}

	c, rec = newContext(http.MethodPatch, "/requests/x", `{"status":"done"}`)
	if err := NewRequestHandler(&fakeRequestService{err: errors.New("boom")}).UpdateRequest(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusInternalServerError || !strings.Contains(rec.Body.String(), "Update failed") {
		t.Errorf("failed update: %d %s", rec.Code, rec.Body.String())
	}
}
