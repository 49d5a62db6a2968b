package admin

import (
	"context"
	"errors"
	"testing"
	"time"

	"roktoSheba/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type counter int64

func (c counter) Count(context.Context) (int64, error) { return int64(c), nil }

type fakeRequests struct {
	count  int64
	recent []domain.BloodRequest
	n      int
}

func (f *fakeRequests) Count(context.Context) (int64, error) { return f.count, nil }

func (f *fakeRequests) Recent(_ context.Context, n int) ([]domain.BloodRequest, error) {
	f.n = n
	return f.recent, nil
}

type funding struct {
	total float64
	err   error
}

func (f funding) TotalAmount(context.Context) (float64, error) { return f.total, f.err }

func TestStats(t *testing.T) {
	svc := NewAdminService(counter(4), &fakeRequests{count: 9}, funding{total: 125.5})

	got, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	want := domain.Stats{TotalUsers: 4, TotalFunding: 125.5, TotalRequests: 9}
	if got != want {
		t.Fatalf("Stats() = %+v, want %+v", got, want)
	}
}

func TestStatsFundingFailure(t *testing.T) {
	svc := NewAdminService(counter(1), &fakeRequests{}, funding{err: errors.New("pg down")})

	if _, err := svc.Stats(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestRecentActivitiesShape(t *testing.T) {
	id := primitive.NewObjectID()
	reqs := &fakeRequests{recent: []domain.BloodRequest{
		{ID: id, RequesterName: "Rahim", Status: "done", CreatedAt: time.Date(2025, 1, 2, 15, 4, 5, 0, time.UTC)},
		{CreatedAt: time.Date(2025, 12, 25, 9, 0, 0, 0, time.UTC)},
	}}
	svc := NewAdminService(counter(0), reqs, funding{})
	svc.location = time.UTC

	got, err := svc.RecentActivities(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if reqs.n != 5 {
		t.Errorf("requested %d recent items, want 5", reqs.n)
	}
	if len(got) != 2 {
		t.Fatalf("got %d activities", len(got))
	}

	first := got[0]
	if first.ID != id || first.UserName != "Rahim" || first.Status != "done" {
		t.Errorf("first activity = %+v", first)
	}
	if first.Action != "Submitted a blood request" {
		t.Errorf("action = %q", first.Action)
	}
	if first.Date != "1/2/2025, 3:04:05 PM" {
		t.Errorf("date = %q", first.Date)
	}

	second := got[1]
	if second.UserName != "Unknown" || second.Status != "pending" {
		t.Errorf("defaults not applied: %+v", second)
	}
	if second.Date != "12/25/2025, 9:00:00 AM" {
		t.Errorf("date = %q", second.Date)
	}
}
