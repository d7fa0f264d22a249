package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"github.com/skyps2003/Freelancer/internal/api/notifications"
	"github.com/skyps2003/Freelancer/internal/auth"
	"github.com/skyps2003/Freelancer/internal/middleware"
	"github.com/skyps2003/Freelancer/internal/models"
	"github.com/skyps2003/Freelancer/internal/storage/memory"
)

const testSecret = "test-secret"

type testEnv struct {
	router       *mux.Router
	users        *memory.UserStore
	products     *memory.ProductStore
	projects     *memory.ProjectStore
	transactions *memory.TransactionStore
	notifs       *memory.NotificationStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		users:        memory.NewUserStore(),
		products:     memory.NewProductStore(),
		projects:     memory.NewProjectStore(),
		transactions: memory.NewTransactionStore(),
		notifs:       memory.NewNotificationStore(),
	}
	h := &Handler{
		Transactions: env.transactions,
		Projects:     env.projects,
		Products:     env.products,
		Users:        env.users,
		Notifier:     &notifications.Notifier{Store: env.notifs},
	}
	env.router = mux.NewRouter()
	RegisterRoutes(env.router.PathPrefix("/api").Subrouter(), h, middleware.Auth(testSecret))
	return env
}

func (e *testEnv) post(t *testing.T, path, userID string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	token, err := auth.GenerateToken(testSecret, userID, models.RoleUser, time.Hour)
	if err != nil {
		t.Fatalf("failed to mint token: %v", err)
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		t.Fatalf("failed to encode body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func TestCardStatus(t *testing.T) {
	tests := []struct {
		card string
		want string
	}{
		{"4242424242424242", models.TxApproved},
		{"4000000000000000", models.TxDeclined},
		{"4111111111111111", models.TxError},
		{"", models.TxError},
	}
	for _, tt := range tests {
		if got := cardStatus(tt.card); got != tt.want {
			t.Errorf("cardStatus(%q) = %q, want %q", tt.card, got, tt.want)
		}
	}
}

func TestCheckoutProjectOutcomes(t *testing.T) {
	tests := []struct {
		name       string
		card       string
		wantStatus int
		wantFinal  bool
	}{
		{"approved finalizes project", "4242424242424242", http.StatusOK, true},
		{"declined leaves project open", "4000000000000000", http.StatusPaymentRequired, false},
		{"gateway error leaves project open", "4111111111111111", http.StatusBadRequest, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			ctx := context.Background()
			project := &models.Project{Title: "Website", CompanyID: "acme"}
			if err := env.projects.Create(ctx, project); err != nil {
				t.Fatalf("seed project: %v", err)
			}

			rr := env.post(t, "/api/payments/checkout", "buyer", map[string]interface{}{
				"projectId": project.ID, "amount": 500.0, "cardNumber": tt.card,
			})
			if rr.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d; body %s", rr.Code, tt.wantStatus, rr.Body.String())
			}

			got, err := env.projects.GetByID(ctx, project.ID)
			if err != nil {
				t.Fatalf("reload project: %v", err)
			}
			if finalized := got.Status == models.ProjectFinalizado; finalized != tt.wantFinal {
				t.Errorf("project status = %q, finalized = %v, want %v", got.Status, finalized, tt.wantFinal)
			}
		})
	}
}

func TestCheckoutDeclinedMessage(t *testing.T) {
	env := newTestEnv(t)
	rr := env.post(t, "/api/payments/checkout", "buyer", map[string]interface{}{
		"amount": 100.0, "cardNumber": "4000000000000000",
	})
	if rr.Code != http.StatusPaymentRequired {
		t.Fatalf("status = %d, want 402", rr.Code)
	}
	var resp struct {
		Status string `json:"status"`
		Msg    string `json:"msg"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != models.TxDeclined {
		t.Errorf("status = %q, want %q", resp.Status, models.TxDeclined)
	}
	if resp.Msg != "Fondos insuficientes" {
		t.Errorf("msg = %q, want \"Fondos insuficientes\"", resp.Msg)
	}
}

func TestCheckoutProductApproved(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	if err := env.users.Create(ctx, &models.User{ID: "sam", Name: "Sam", Email: "sam@example.com"}); err != nil {
		t.Fatalf("seed seller: %v", err)
	}
	product := &models.Product{
		ID: "p1", Title: "Ilustración", Seller: "sam", Price: 50, ShippingCost: 5,
	}
	if err := env.products.Create(ctx, product); err != nil {
		t.Fatalf("seed product: %v", err)
	}

	rr := env.post(t, "/api/payments/checkout/product", "buyer", map[string]string{
		"productId": "p1", "cardNumber": "4242424242424242",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Status      string              `json:"status"`
		Transaction *models.Transaction `json:"transaction"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != models.TxApproved {
		t.Errorf("status = %q, want APPROVED", resp.Status)
	}
	// Price plus shipping is charged; only the price reaches the wallet.
	if resp.Transaction.Amount != 55 {
		t.Errorf("charged %v, want 55", resp.Transaction.Amount)
	}
	if resp.Transaction.CardLast4 != "4242" {
		t.Errorf("card last4 = %q, want 4242", resp.Transaction.CardLast4)
	}

	got, err := env.products.GetByID(ctx, "p1")
	if err != nil {
		t.Fatalf("reload product: %v", err)
	}
	if got.Status != models.ProductSold {
		t.Errorf("product status = %q, want SOLD", got.Status)
	}

	seller, err := env.users.GetByID(ctx, "sam")
	if err != nil {
		t.Fatalf("reload seller: %v", err)
	}
	if seller.Wallet != 50 {
		t.Errorf("seller wallet = %v, want 50", seller.Wallet)
	}

	inbox, err := env.notifs.ListByRecipient(ctx, "sam")
	if err != nil {
		t.Fatalf("inbox: %v", err)
	}
	if len(inbox) != 1 {
		t.Fatalf("seller has %d notifications, want 1", len(inbox))
	}
	if inbox[0].Type != models.NotifSale {
		t.Errorf("notification type = %q, want SALE", inbox[0].Type)
	}
	if !strings.Contains(inbox[0].Message, "Ilustración") {
		t.Errorf("notification message %q does not name the product", inbox[0].Message)
	}
}

func TestCheckoutProductAlreadySold(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	if err := env.products.Create(ctx, &models.Product{
		ID: "p1", Title: "Ilustración", Seller: "sam", Price: 50, Status: models.ProductSold,
	}); err != nil {
		t.Fatalf("seed product: %v", err)
	}

	rr := env.post(t, "/api/payments/checkout/product", "buyer", map[string]string{
		"productId": "p1", "cardNumber": "4242424242424242",
	})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "ya ha sido vendido") {
		t.Errorf("body %q does not explain the product is sold", rr.Body.String())
	}
}

func TestCheckoutProductFailedPaymentLeavesListing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	if err := env.users.Create(ctx, &models.User{ID: "sam", Name: "Sam", Email: "sam@example.com"}); err != nil {
		t.Fatalf("seed seller: %v", err)
	}
	if err := env.products.Create(ctx, &models.Product{
		ID: "p1", Title: "Ilustración", Seller: "sam", Price: 50,
	}); err != nil {
		t.Fatalf("seed product: %v", err)
	}

	rr := env.post(t, "/api/payments/checkout/product", "buyer", map[string]string{
		"productId": "p1", "cardNumber": "4000000000000000",
	})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}

	got, _ := env.products.GetByID(ctx, "p1")
	if got.Status == models.ProductSold {
		t.Error("declined payment marked the product sold")
	}
	seller, _ := env.users.GetByID(ctx, "sam")
	if seller.Wallet != 0 {
		t.Errorf("seller wallet = %v after declined payment, want 0", seller.Wallet)
	}
	if inbox, _ := env.notifs.ListByRecipient(ctx, "sam"); len(inbox) != 0 {
		t.Errorf("seller got %d notifications for a declined payment", len(inbox))
	}
}

func TestCheckoutProductNotFound(t *testing.T) {
	env := newTestEnv(t)
	rr := env.post(t, "/api/payments/checkout/product", "buyer", map[string]string{
		"productId": "missing", "cardNumber": "4242424242424242",
	})
	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rr.Code)
	}
}
