package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"evcharge/internal/http/middleware"
	"evcharge/internal/models"
	"evcharge/internal/service"
)

type fakeNotificationStore struct {
	mu      sync.Mutex
	feed    []models.Notification
	feedErr error
	marked  []string
}

func (f *fakeNotificationStore) Create(ctx context.Context, n *models.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.feed = append(f.feed, *n)
	return nil
}

func (f *fakeNotificationStore) GetByRecipient(ctx context.Context, nic string, includeRead bool, limit, offset int) ([]models.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.feedErr != nil {
		return nil, f.feedErr
	}
	var out []models.Notification
	for _, n := range f.feed {
		if n.RecipientNIC != nic {
			continue
		}
		if !includeRead && n.IsRead {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (f *fakeNotificationStore) GetByID(ctx context.Context, id string) (*models.Notification, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeNotificationStore) MarkRead(ctx context.Context, nic string, ids []string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.marked = append(f.marked, ids...)
	return len(ids), nil
}

func (f *fakeNotificationStore) ReminderExists(ctx context.Context, nic, bookingID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range f.feed {
		if n.RecipientNIC == nic && n.RelatedEntityID == bookingID && n.Type == models.NotifyBookingReminder {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeNotificationStore) DeleteExpired(ctx context.Context, before time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.feed[:0]
	removed := 0
	for _, n := range f.feed {
		if n.IsRead && n.CreatedAt.Before(before) {
			removed++
			continue
		}
		kept = append(kept, n)
	}
	f.feed = kept
	return removed, nil
}

func notificationTestServer(t *testing.T, store *fakeNotificationStore) (http.Handler, string) {
	t.Helper()
	logger := zap.NewNop()
	tokens := service.NewTokenService("test-secret", time.Hour)
	h := NewNotificationHandlers(service.NewNotificationService(store, nil, logger), logger)

	mux := http.NewServeMux()
	authed := middleware.AuthMiddleware(tokens)
	mux.Handle("GET /api/notifications/my-notifications", authed(http.HandlerFunc(h.MyNotifications)))
	mux.Handle("POST /api/notifications/mark-read", authed(http.HandlerFunc(h.MarkRead)))

	token, err := tokens.GenerateToken(&models.User{ID: "u1", NIC: "nic-1", Role: models.RoleEVOwner})
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return mux, token
}

func getFeed(t *testing.T, handler http.Handler, token, query string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/notifications/my-notifications"+query, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestFeedEmptyIsOKWithEmptyArray(t *testing.T) {
	handler, token := notificationTestServer(t, &fakeNotificationStore{})

	rec := getFeed(t, handler, token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Fatalf("body = %q, want empty array", got)
	}
}

func TestFeedStorageFailureIsAnError(t *testing.T) {
	store := &fakeNotificationStore{feedErr: errors.New("connection refused")}
	handler, token := notificationTestServer(t, store)

	rec := getFeed(t, handler, token, "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var payload map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload["error"] == "" {
		t.Fatal("error body should carry a message")
	}
	if strings.Contains(payload["error"], "connection refused") {
		t.Fatal("storage detail must not leak to the client")
	}
}

func TestFeedRejectsBadQueryParams(t *testing.T) {
	handler, token := notificationTestServer(t, &fakeNotificationStore{})

	for _, query := range []string{"?limit=abc", "?limit=-1", "?includeRead=maybe", "?offset=-2"} {
		rec := getFeed(t, handler, token, query)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", query, rec.Code)
		}
	}
}

func TestFeedRequiresToken(t *testing.T) {
	handler, _ := notificationTestServer(t, &fakeNotificationStore{})

	rec := getFeed(t, handler, "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	rec = getFeed(t, handler, "garbage", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad token: status = %d, want 401", rec.Code)
	}
}

func TestMarkReadScopedToCaller(t *testing.T) {
	store := &fakeNotificationStore{}
	handler, token := notificationTestServer(t, store)

	body := strings.NewReader(`{"notificationIds":["n1","n2"]}`)
	req := httptest.NewRequest(http.MethodPost, "/api/notifications/mark-read", body)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var payload map[string]int
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload["updated"] != 2 {
		t.Fatalf("updated = %d", payload["updated"])
	}
	if len(store.marked) != 2 {
		t.Fatalf("marked = %v", store.marked)
	}
}
