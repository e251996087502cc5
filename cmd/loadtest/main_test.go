package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/vladislavdragonenkov/storefront/internal/auth"
	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

const testSecret = "loadtest-secret"

type fakeClient struct {
	mu        sync.Mutex
	addErr    error
	createErr error
	orderID   string
	advanced  []string
	keys      []string
	items     [][]domain.LineItem
	browsed   int32
}

func (f *fakeClient) AddToCart(_ context.Context, token, _ string, _ int) (int, error) {
	if token == "" {
		return http.StatusUnauthorized, errors.New("missing token")
	}
	if f.addErr != nil {
		return http.StatusNotFound, f.addErr
	}
	return http.StatusOK, nil
}

func (f *fakeClient) CreateOrder(_ context.Context, _, key string, items []domain.LineItem) (string, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return "", 0, f.createErr
	}
	f.keys = append(f.keys, key)
	f.items = append(f.items, items)
	return f.orderID, http.StatusCreated, nil
}

func (f *fakeClient) ListReviews(context.Context, string) (int, error) {
	atomic.AddInt32(&f.browsed, 1)
	return http.StatusOK, nil
}

func (f *fakeClient) CountOrders(context.Context) (int, error) {
	atomic.AddInt32(&f.browsed, 1)
	return http.StatusOK, nil
}

func (f *fakeClient) AdvanceOrder(_ context.Context, orderID string, to domain.OrderStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.advanced = append(f.advanced, orderID+":"+string(to))
	return nil
}

func noEnv(string) string { return "" }

func baseConfig(mode loadMode) config {
	return config{
		total:       4,
		concurrency: 2,
		timeout:     time.Second,
		mode:        mode,
		advanceRate: 100,
		productID:   "P1",
		quantity:    2,
		price:       decimal.RequireFromString("10.00"),
		users:       []string{"U1", "U2"},
	}
}

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := parseConfig([]string{"-auth-secret=s"}, noEnv)
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8080", cfg.httpAddr)
	require.Equal(t, modeCheckout, cfg.mode)
	require.Equal(t, 400, cfg.total)
	require.False(t, cfg.totalSet)
	require.Equal(t, []string{"U1"}, cfg.users)
	require.True(t, cfg.price.Equal(decimal.RequireFromString("10")))
}

func TestParseConfig_OverridesAndEnvSecret(t *testing.T) {
	cfg, err := parseConfig([]string{
		"-http-addr=http://shop:8080/",
		"-mode=checkout-advance",
		"-total=10",
		"-duration=1m",
		"-users=U1, U2,,U3",
		"-price=2.50",
		"-advance-rate=30",
	}, func(key string) string {
		if key == envAuthSecret {
			return "from-env"
		}
		return ""
	})
	require.NoError(t, err)
	require.Equal(t, "http://shop:8080", cfg.httpAddr)
	require.Equal(t, modeCheckoutAdvance, cfg.mode)
	require.True(t, cfg.totalSet)
	require.Equal(t, time.Minute, cfg.duration)
	require.Equal(t, []string{"U1", "U2", "U3"}, cfg.users)
	require.Equal(t, "from-env", cfg.authSecret)
	require.Equal(t, 30, cfg.advanceRate)
}

func TestParseConfig_Errors(t *testing.T) {
	cases := map[string][]string{
		"unsupported mode":    {"-auth-secret=s", "-mode=pay"},
		"parse price":         {"-auth-secret=s", "-price=abc"},
		"duration must be":    {"-auth-secret=s", "-duration=-1s"},
		"total must be > 0":   {"-auth-secret=s", "-total=0"},
		"concurrency":         {"-auth-secret=s", "-concurrency=0"},
		"timeout":             {"-auth-secret=s", "-timeout=0s"},
		"advance-rate":        {"-auth-secret=s", "-advance-rate=101"},
		"product is required": {"-auth-secret=s", "-product= "},
		"quantity":            {"-auth-secret=s", "-quantity=0"},
		"price must be > 0":   {"-auth-secret=s", "-price=0"},
		"users are required":  {"-auth-secret=s", "-users=,"},
		"auth secret":         {},
		"explicitly set":      {"-auth-secret=s", "-duration=1s", "-total=0"},
		"grpc-addr":           {"-auth-secret=s", "-mode=checkout-advance", "-grpc-addr="},
		"http-addr":           {"-auth-secret=s", "-http-addr= "},
	}
	for want, args := range cases {
		_, err := parseConfig(args, noEnv)
		require.ErrorContains(t, err, want, "args: %v", args)
	}

	_, err := parseConfig([]string{"-unknown"}, noEnv)
	require.Error(t, err)

	// browse не требует токенов
	_, err = parseConfig([]string{"-mode=browse"}, noEnv)
	require.NoError(t, err)
}

func TestIssueTokens(t *testing.T) {
	cfg := baseConfig(modeCheckout)
	cfg.authSecret = testSecret

	tokens, err := issueTokens(cfg)
	require.NoError(t, err)
	require.Len(t, tokens, 2)

	verifier, err := auth.NewVerifier(testSecret, 0)
	require.NoError(t, err)
	userID, err := verifier.Verify(tokens["U2"])
	require.NoError(t, err)
	require.Equal(t, "U2", userID)

	cfg.mode = modeBrowse
	tokens, err = issueTokens(cfg)
	require.NoError(t, err)
	require.Empty(t, tokens)
}

func TestRunScenario_Checkout(t *testing.T) {
	cfg := baseConfig(modeCheckout)
	client := &fakeClient{orderID: "order-1"}
	col := newCollector()
	tokens := map[string]string{"U1": "t1", "U2": "t2"}

	require.NoError(t, runScenario(client, cfg, tokens, 0, "run", col))
	require.NoError(t, runScenario(client, cfg, tokens, 1, "run", col))

	require.Equal(t, []string{"lt-run-0", "lt-run-1"}, client.keys)
	require.Equal(t, 2, client.items[0][0].Quantity)
	require.Empty(t, client.advanced)

	result := col.snapshot(cfg, time.Now(), time.Second)
	require.EqualValues(t, 2, result.Scenarios.OK)
	require.EqualValues(t, 2, result.Operations["AddToCart"].Codes["200"])
	require.EqualValues(t, 2, result.Operations["CreateOrder"].Codes["201"])
	require.InDelta(t, 2.0, result.Throughput, 0.001)
}

func TestRunScenario_CheckoutAdvance(t *testing.T) {
	cfg := baseConfig(modeCheckoutAdvance)
	cfg.advanceRate = 50
	client := &fakeClient{orderID: "order-7"}
	col := newCollector()
	tokens := map[string]string{"U1": "t1", "U2": "t2"}

	require.NoError(t, runScenario(client, cfg, tokens, 10, "run", col))
	require.NoError(t, runScenario(client, cfg, tokens, 60, "run", col))

	require.Equal(t, []string{"order-7:Processing"}, client.advanced)
	result := col.snapshot(cfg, time.Now(), time.Second)
	require.EqualValues(t, 1, result.Operations["AdvanceOrderStatus"].Codes[codes.OK.String()])
}

func TestRunScenario_Failures(t *testing.T) {
	cfg := baseConfig(modeCheckout)
	tokens := map[string]string{"U1": "t1", "U2": "t2"}

	col := newCollector()
	client := &fakeClient{addErr: errors.New("not found")}
	require.Error(t, runScenario(client, cfg, tokens, 0, "run", col))
	require.Empty(t, client.keys)

	client = &fakeClient{createErr: errors.New("dial tcp: refused")}
	require.Error(t, runScenario(client, cfg, tokens, 1, "run", col))

	client = &fakeClient{}
	require.ErrorContains(t, runScenario(client, cfg, tokens, 2, "run", col), "empty order id")

	result := col.snapshot(cfg, time.Now(), time.Second)
	require.EqualValues(t, 3, result.Scenarios.Errors)
	require.EqualValues(t, 1, result.Operations["CreateOrder"].Codes["transport_error"])
	require.EqualValues(t, 1, result.Operations["AddToCart"].Codes["404"])
}

func TestRunScenario_Browse(t *testing.T) {
	client := &fakeClient{}
	require.NoError(t, runScenario(client, baseConfig(modeBrowse), nil, 0, "run", newCollector()))
	require.EqualValues(t, 2, client.browsed)
}

func TestShouldAdvance(t *testing.T) {
	require.False(t, shouldAdvance(0, 0))
	require.True(t, shouldAdvance(99, 100))
	require.True(t, shouldAdvance(129, 30))
	require.False(t, shouldAdvance(130, 30))
}

func TestForEachJob(t *testing.T) {
	var got []int
	forEachJob(config{total: 3}, func(i int) { got = append(got, i) })
	require.Equal(t, []int{0, 1, 2}, got)

	got = nil
	forEachJob(config{total: 5, totalSet: true, duration: time.Minute}, func(i int) { got = append(got, i) })
	require.Len(t, got, 5)

	calls := 0
	forEachJob(config{duration: 30 * time.Millisecond}, func(int) {
		calls++
		time.Sleep(10 * time.Millisecond)
	})
	require.Positive(t, calls)
	require.Less(t, calls, 10)
}

func TestHTTPStorefrontClient(t *testing.T) {
	decimal.MarshalJSONWithoutQuotes = true

	var gotKey, gotToken string
	mux := http.NewServeMux()
	mux.HandleFunc("POST /cart/add/{productId}", func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get(tokenHeader)
		var body map[string]int
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["quantity"] != 2 || r.PathValue("productId") != "P1" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte(`[]`))
	})
	mux.HandleFunc("POST /order/create", func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get(idempotencyHeader)
		var body struct {
			Products []domain.LineItem `json:"products"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if len(body.Products) != 1 || !body.Products[0].Price.Equal(decimal.RequireFromString("10")) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"order-42","status":"Pending"}`))
	})
	mux.HandleFunc("GET /reviews/{productId}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"product not found"}`))
	})
	mux.HandleFunc("GET /order/count", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"totalOrders":1}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	cfg := baseConfig(modeCheckout)
	cfg.httpAddr = srv.URL
	client, closeFn, err := newStorefrontClient(cfg)
	require.NoError(t, err)
	defer closeFn()

	ctx := context.Background()
	code, err := client.AddToCart(ctx, "tok", "P1", 2)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "tok", gotToken)

	id, code, err := client.CreateOrder(ctx, "tok", "key-1", []domain.LineItem{{ProductID: "P1", Quantity: 1, Price: cfg.price}})
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, code)
	require.Equal(t, "order-42", id)
	require.Equal(t, "key-1", gotKey)

	code, err = client.ListReviews(ctx, "P9")
	require.ErrorContains(t, err, "product not found")
	require.Equal(t, http.StatusNotFound, code)

	code, err = client.CountOrders(ctx)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, code)

	require.Error(t, client.AdvanceOrder(ctx, "order-42", domain.OrderStatusProcessing))
}

func TestHTTPStorefrontClient_AdvanceOverGRPCError(t *testing.T) {
	cfg := baseConfig(modeCheckoutAdvance)
	cfg.httpAddr = "http://127.0.0.1:1"
	cfg.grpcAddr = "127.0.0.1:1"

	client, closeFn, err := newStorefrontClient(cfg)
	require.NoError(t, err)
	defer closeFn()

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	err = client.AdvanceOrder(ctx, "order-1", domain.OrderStatusProcessing)
	require.Error(t, err)
	require.NotEqual(t, codes.OK, status.Code(err))
}
