package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"evcharge/booking"
	"evcharge/timefmt"
)

// countingHandler records requests so tests can assert that local
// validation failures never reach the wire.
type countingHandler struct {
	mu       sync.Mutex
	requests []*http.Request
	handler  http.HandlerFunc
}

func (h *countingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	h.requests = append(h.requests, r.Clone(r.Context()))
	h.mu.Unlock()
	if h.handler != nil {
		h.handler(w, r)
	}
}

func (h *countingHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.requests)
}

func (h *countingHandler) last() *http.Request {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.requests) == 0 {
		return nil
	}
	return h.requests[len(h.requests)-1]
}

func newTestClient(t *testing.T, handler http.HandlerFunc, token TokenSource) (*Client, *countingHandler) {
	t.Helper()
	counting := &countingHandler{handler: handler}
	srv := httptest.NewServer(counting)
	t.Cleanup(srv.Close)
	return New(srv.URL, srv.Client(), token), counting
}

func TestLoginParsesTokenAndUser(t *testing.T) {
	c, counting := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/auth/login" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Email != "a@b.lk" || req.Password != "secret" {
			t.Errorf("unexpected credentials: %+v", req)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"token": "tok-1",
			"user": map[string]interface{}{
				"id":   "u1",
				"nic":  "199012345678",
				"role": booking.WireRoleOwner,
			},
		})
	}, nil)

	resp, err := c.Login(context.Background(), "a@b.lk", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.Token != "tok-1" || resp.User.NIC != "199012345678" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	role, ok := resp.User.ClientRole()
	if !ok || role != booking.RoleOwner {
		t.Fatalf("role = %q, %v", role, ok)
	}
	if counting.count() != 1 {
		t.Fatalf("request count = %d", counting.count())
	}
}

func TestLoginEmptyFieldsFailLocally(t *testing.T) {
	c, counting := newTestClient(t, nil, nil)

	var vErr *ValidationError
	if _, err := c.Login(context.Background(), "", "pw"); !errors.As(err, &vErr) {
		t.Fatalf("empty email: err = %v, want ValidationError", err)
	}
	if _, err := c.Login(context.Background(), "a@b.lk", "  "); !errors.As(err, &vErr) {
		t.Fatalf("blank password: err = %v, want ValidationError", err)
	}
	if counting.count() != 0 {
		t.Fatalf("local validation must not send requests, sent %d", counting.count())
	}
}

func TestAuthedCallAttachesBearerToken(t *testing.T) {
	c, counting := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("[]"))
	}, StaticToken("tok-9"))

	if _, err := c.MyBookings(context.Background()); err != nil {
		t.Fatalf("my bookings: %v", err)
	}
	got := counting.last().Header.Get("Authorization")
	if got != "Bearer tok-9" {
		t.Fatalf("authorization header = %q", got)
	}
}

func TestAuthedCallWithoutSessionFailsBeforeRequest(t *testing.T) {
	c, counting := newTestClient(t, nil, StaticToken(""))

	if _, err := c.MyBookings(context.Background()); !errors.Is(err, ErrNoSession) {
		t.Fatalf("err = %v, want ErrNoSession", err)
	}
	if counting.count() != 0 {
		t.Fatalf("no request should be sent without a session, sent %d", counting.count())
	}
}

func TestUnauthorizedResponseMapsToSentinel(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid token"}`, http.StatusUnauthorized)
	}, StaticToken("stale"))

	if _, err := c.Profile(context.Background()); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
}

func TestServerErrorBodySurfacedInAPIError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"booking window closed"}`))
	}, StaticToken("tok"))

	err := c.CancelBooking(context.Background(), "b1")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want APIError", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest || apiErr.Message != "booking window closed" {
		t.Fatalf("unexpected APIError: %+v", apiErr)
	}
}

func TestEmptyNotificationFeedIsNotAnError(t *testing.T) {
	c, counting := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("[]"))
	}, StaticToken("tok"))

	feed, err := c.Notifications(context.Background(), true, 10)
	if err != nil {
		t.Fatalf("notifications: %v", err)
	}
	if feed == nil {
		t.Fatal("empty feed must be a non-nil slice")
	}
	if len(feed) != 0 {
		t.Fatalf("feed length = %d", len(feed))
	}

	q := counting.last().URL.Query()
	if q.Get("includeRead") != "true" || q.Get("limit") != "10" {
		t.Fatalf("unexpected query: %v", q)
	}
}

func TestFailedNotificationFetchIsDistinctFromEmpty(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"storage unavailable"}`, http.StatusInternalServerError)
	}, StaticToken("tok"))

	feed, err := c.Notifications(context.Background(), false, 0)
	if err == nil {
		t.Fatal("expected an error")
	}
	if feed != nil {
		t.Fatalf("failed fetch must not return a feed, got %v", feed)
	}
}

func TestOperatorCancelRequiresReasonLocally(t *testing.T) {
	c, counting := newTestClient(t, nil, StaticToken("tok"))

	var vErr *ValidationError
	if err := c.CancelByOperator(context.Background(), "b1", "   "); !errors.As(err, &vErr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if counting.count() != 0 {
		t.Fatalf("empty reason must not reach the wire, sent %d requests", counting.count())
	}
}

func TestOperatorCancelSendsReason(t *testing.T) {
	c, counting := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Reason string `json:"reason"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode: %v", err)
		}
		if req.Reason != "charger fault" {
			t.Errorf("reason = %q", req.Reason)
		}
	}, StaticToken("tok"))

	if err := c.CancelByOperator(context.Background(), "b1", "charger fault"); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if counting.count() != 1 {
		t.Fatalf("request count = %d", counting.count())
	}
}

func TestUpdateBookingRequiresATimeLocally(t *testing.T) {
	c, counting := newTestClient(t, nil, StaticToken("tok"))

	var vErr *ValidationError
	if _, err := c.UpdateBooking(context.Background(), "b1", UpdateBookingRequest{}); !errors.As(err, &vErr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if counting.count() != 0 {
		t.Fatalf("empty window must not reach the wire, sent %d requests", counting.count())
	}
}

func TestUpdateBookingSendsNewWindow(t *testing.T) {
	start, err := timefmt.Parse("2026-09-02T10:00:00Z")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	c, counting := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/bookings/b1" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req struct {
			StartTime *string `json:"startTime"`
			EndTime   *string `json:"endTime"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode: %v", err)
		}
		if req.StartTime == nil || *req.StartTime != "2026-09-02T10:00:00Z" {
			t.Errorf("startTime = %v", req.StartTime)
		}
		if req.EndTime != nil {
			t.Errorf("omitted endTime should marshal as null, got %v", req.EndTime)
		}
		w.Write([]byte(`{
			"id": "b1",
			"stationId": "st-1",
			"startTime": "2026-09-02T10:00:00Z",
			"endTime": "2026-09-02T12:00:00Z",
			"status": 0,
			"totalAmount": 25
		}`))
	}, StaticToken("tok"))

	b, err := c.UpdateBooking(context.Background(), "b1", UpdateBookingRequest{StartTime: timefmt.New(start)})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if b.TotalAmount != 25 || b.StartTime.Hour() != 10 {
		t.Fatalf("unexpected booking: %+v", b)
	}
	if counting.count() != 1 {
		t.Fatalf("request count = %d", counting.count())
	}
}

func TestBookingTimestampsDecodeFromWireFormat(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"id": "b1",
			"stationId": "st-1",
			"startTime": "2026-09-01T10:00:00Z",
			"endTime": "2026-09-01T12:00:00Z",
			"status": 1,
			"totalAmount": 25.5,
			"createdAt": "2026-08-30T08:00:00Z",
			"updatedAt": "2026-08-30T08:05:00Z",
			"confirmedAt": "2026-08-30T08:05:00Z"
		}`))
	}, StaticToken("tok"))

	b, err := c.Booking(context.Background(), "b1")
	if err != nil {
		t.Fatalf("booking: %v", err)
	}
	if b.Status != booking.StatusConfirmed {
		t.Fatalf("status = %d", b.Status)
	}
	if b.StartTime.Hour() != 10 || b.EndTime.Hour() != 12 {
		t.Fatalf("times = %v .. %v", b.StartTime, b.EndTime)
	}
	if b.ConfirmedAt == nil || b.CancelledAt != nil {
		t.Fatalf("audit stamps: confirmed=%v cancelled=%v", b.ConfirmedAt, b.CancelledAt)
	}
}
