package httpserver

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"storefront/internal/domain"
	"storefront/internal/gateway"
	"storefront/internal/session"
)

type stubCatalog struct {
	product     *domain.Product
	productErr  error
	products    []domain.Product
	collections []domain.Collection
	err         error
}

func (s *stubCatalog) Products(_ context.Context, _ int) ([]domain.Product, error) {
	return s.products, s.err
}

func (s *stubCatalog) ProductByHandle(_ context.Context, _ string) (*domain.Product, error) {
	if s.productErr != nil {
		return nil, s.productErr
	}
	return s.product, nil
}

func (s *stubCatalog) Collections(_ context.Context) ([]domain.Collection, error) {
	return s.collections, s.err
}

func (s *stubCatalog) CollectionProducts(_ context.Context, _ string) ([]domain.Product, error) {
	return s.products, s.err
}

type stubGateway struct {
	session *gateway.Session
	err     error
}

func (s *stubGateway) Products(_ context.Context, _ int) ([]domain.Product, error) {
	return nil, nil
}

func (s *stubGateway) ProductByHandle(_ context.Context, _ string) (*domain.Product, error) {
	return nil, domain.ErrNotFound
}

func (s *stubGateway) Collections(_ context.Context) ([]domain.Collection, error) {
	return nil, nil
}

func (s *stubGateway) CollectionProducts(_ context.Context, _ string) ([]domain.Product, error) {
	return nil, nil
}

func (s *stubGateway) CreateSession(_ context.Context) (*gateway.Session, error) {
	return s.session, s.err
}

func (s *stubGateway) FetchSession(_ context.Context, _ string) (*gateway.Session, error) {
	return s.session, s.err
}

func (s *stubGateway) AddLine(_ context.Context, _, _ string, _ int) (*gateway.Session, error) {
	return s.session, s.err
}

func (s *stubGateway) UpdateLine(_ context.Context, _, _ string, _ int) (*gateway.Session, error) {
	return s.session, s.err
}

func (s *stubGateway) RemoveLine(_ context.Context, _, _ string) (*gateway.Session, error) {
	return s.session, s.err
}

func testProduct() *domain.Product {
	return &domain.Product{
		ID:     "p1",
		Handle: "blue-vase",
		Title:  "Blue Vase",
		Variants: []domain.Variant{{
			ID:    "v1",
			Title: "Default",
			Price: domain.Money{Amount: decimal.RequireFromString("10.00"), Currency: "GBP"},
		}},
	}
}

func testRouter(t *testing.T, catalog catalogService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := log.New(io.Discard, "", 0)
	gw := &stubGateway{session: &gateway.Session{ID: "chk-1", RedirectURL: "https://pay.example/chk-1"}}
	carts := NewCartRegistry(logger, gw, session.NewMemory())
	router, err := buildRouter(logger, nil, Deps{Catalog: catalog, Carts: carts})
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body, deviceID string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if deviceID != "" {
		req.AddCookie(&http.Cookie{Name: deviceCookie, Value: deviceID})
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestGetCart_IssuesDeviceCookie(t *testing.T) {
	router := testRouter(t, &stubCatalog{})
	rec := doJSON(t, router, http.MethodGet, "/api/cart", "", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var found bool
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == deviceCookie && cookie.Value != "" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected %s cookie to be issued", deviceCookie)
	}
}

func TestAddItem_ReturnsUpdatedCart(t *testing.T) {
	router := testRouter(t, &stubCatalog{product: testProduct()})

	rec := doJSON(t, router, http.MethodPost, "/api/cart/items",
		`{"handle":"blue-vase","variantId":"v1","quantity":2}`, "dev-1")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp cartResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Count != 2 || len(resp.Items) != 1 {
		t.Fatalf("unexpected cart %+v", resp)
	}
	if resp.Total != "20.00" || resp.CurrencyCode != "GBP" {
		t.Fatalf("unexpected total %s %s", resp.Total, resp.CurrencyCode)
	}
	if resp.CheckoutURL != "https://pay.example/chk-1" {
		t.Fatalf("unexpected checkout url %q", resp.CheckoutURL)
	}
	if resp.SyncState != domain.StateSynced.String() {
		t.Fatalf("unexpected sync state %s", resp.SyncState)
	}
}

func TestAddItem_SameDeviceAccumulates(t *testing.T) {
	router := testRouter(t, &stubCatalog{product: testProduct()})
	body := `{"handle":"blue-vase","variantId":"v1","quantity":1}`

	doJSON(t, router, http.MethodPost, "/api/cart/items", body, "dev-1")
	doJSON(t, router, http.MethodPost, "/api/cart/items", body, "dev-1")
	rec := doJSON(t, router, http.MethodGet, "/api/cart", "", "dev-1")

	var resp cartResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Count != 2 || len(resp.Items) != 1 {
		t.Fatalf("expected one line with quantity 2, got %+v", resp)
	}
}

func TestAddItem_UnknownProduct(t *testing.T) {
	router := testRouter(t, &stubCatalog{productErr: domain.ErrNotFound})
	rec := doJSON(t, router, http.MethodPost, "/api/cart/items",
		`{"handle":"missing","variantId":"v1","quantity":1}`, "dev-1")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAddItem_UnknownVariant(t *testing.T) {
	router := testRouter(t, &stubCatalog{product: testProduct()})
	rec := doJSON(t, router, http.MethodPost, "/api/cart/items",
		`{"handle":"blue-vase","variantId":"nope","quantity":1}`, "dev-1")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAddItem_InvalidBody(t *testing.T) {
	router := testRouter(t, &stubCatalog{product: testProduct()})
	rec := doJSON(t, router, http.MethodPost, "/api/cart/items", `{"handle":"x"}`, "dev-1")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUpdateItem_ZeroRemovesLine(t *testing.T) {
	router := testRouter(t, &stubCatalog{product: testProduct()})
	doJSON(t, router, http.MethodPost, "/api/cart/items",
		`{"handle":"blue-vase","variantId":"v1","quantity":2}`, "dev-1")

	rec := doJSON(t, router, http.MethodPatch, "/api/cart/items/v1", `{"quantity":0}`, "dev-1")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp cartResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Count != 0 || len(resp.Items) != 0 {
		t.Fatalf("expected empty cart, got %+v", resp)
	}
}

func TestClearCart(t *testing.T) {
	router := testRouter(t, &stubCatalog{product: testProduct()})
	doJSON(t, router, http.MethodPost, "/api/cart/items",
		`{"handle":"blue-vase","variantId":"v1","quantity":2}`, "dev-1")

	rec := doJSON(t, router, http.MethodDelete, "/api/cart", "", "dev-1")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp cartResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Count != 0 || resp.Total != "0.00" || resp.CheckoutURL != "" {
		t.Fatalf("expected cleared cart, got %+v", resp)
	}
	if resp.SyncState != domain.StateEmptyLocal.String() {
		t.Fatalf("unexpected sync state %s", resp.SyncState)
	}
}
