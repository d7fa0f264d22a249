package notifications

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"github.com/skyps2003/Freelancer/internal/auth"
	"github.com/skyps2003/Freelancer/internal/middleware"
	"github.com/skyps2003/Freelancer/internal/models"
	"github.com/skyps2003/Freelancer/internal/storage/memory"
)

const testSecret = "test-secret"

func newTestRouter(store *memory.NotificationStore) *mux.Router {
	r := mux.NewRouter()
	RegisterRoutes(r.PathPrefix("/api").Subrouter(), &Handler{Notifications: store}, middleware.Auth(testSecret))
	return r
}

func doRequest(t *testing.T, router *mux.Router, method, path, userID string) *httptest.ResponseRecorder {
	t.Helper()
	token, err := auth.GenerateToken(testSecret, userID, models.RoleUser, time.Hour)
	if err != nil {
		t.Fatalf("failed to mint token: %v", err)
	}
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestListScopedToRecipient(t *testing.T) {
	store := memory.NewNotificationStore()
	ctx := context.Background()
	seed := []*models.Notification{
		{Recipient: "bob", Type: models.NotifMessage, Message: "hola"},
		{Recipient: "carol", Type: models.NotifSale, Message: "venta"},
	}
	for _, n := range seed {
		if err := store.Create(ctx, n); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	router := newTestRouter(store)

	rr := doRequest(t, router, http.MethodGet, "/api/notifications", "bob")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var list []*models.Notification
	if err := json.Unmarshal(rr.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list) != 1 || list[0].Recipient != "bob" {
		t.Errorf("list = %+v, want only bob's notification", list)
	}

	// An empty inbox serializes as [], not null.
	rr = doRequest(t, router, http.MethodGet, "/api/notifications", "nobody")
	if body := rr.Body.String(); body != "[]\n" && body != "[]" {
		t.Errorf("empty inbox body = %q, want []", body)
	}
}

func TestUnreadCountAndMarkRead(t *testing.T) {
	store := memory.NewNotificationStore()
	ctx := context.Background()
	n := &models.Notification{Recipient: "bob", Type: models.NotifMessage, Message: "hola"}
	if err := store.Create(ctx, n); err != nil {
		t.Fatalf("seed: %v", err)
	}
	router := newTestRouter(store)

	count := func() int64 {
		t.Helper()
		rr := doRequest(t, router, http.MethodGet, "/api/notifications/unread-count", "bob")
		if rr.Code != http.StatusOK {
			t.Fatalf("unread-count status = %d", rr.Code)
		}
		var resp map[string]int64
		if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		return resp["count"]
	}

	if got := count(); got != 1 {
		t.Errorf("unread = %d, want 1", got)
	}

	rr := doRequest(t, router, http.MethodPut, "/api/notifications/"+n.ID+"/read", "bob")
	if rr.Code != http.StatusOK {
		t.Fatalf("mark read status = %d, body %s", rr.Code, rr.Body.String())
	}
	var updated models.Notification
	if err := json.Unmarshal(rr.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !updated.Read {
		t.Error("response notification not marked read")
	}
	if got := count(); got != 0 {
		t.Errorf("unread after read = %d, want 0", got)
	}

	// Repeat mark is a 200 no-op.
	rr = doRequest(t, router, http.MethodPut, "/api/notifications/"+n.ID+"/read", "bob")
	if rr.Code != http.StatusOK {
		t.Errorf("repeat mark read status = %d, want 200", rr.Code)
	}
}

func TestMarkReadForeignNotification(t *testing.T) {
	store := memory.NewNotificationStore()
	n := &models.Notification{Recipient: "bob", Type: models.NotifMessage}
	if err := store.Create(context.Background(), n); err != nil {
		t.Fatalf("seed: %v", err)
	}
	router := newTestRouter(store)

	rr := doRequest(t, router, http.MethodPut, "/api/notifications/"+n.ID+"/read", "mallory")
	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 for foreign notification", rr.Code)
	}
}
