// Команда loadtest гоняет сценарии покупателя против запущенного storefront.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	"github.com/vladislavdragonenkov/storefront/internal/auth"
	"github.com/vladislavdragonenkov/storefront/internal/domain"
	storefrontv1 "github.com/vladislavdragonenkov/storefront/proto/storefront/v1"
)

const (
	envAuthSecret     = "STOREFRONT_AUTH_SECRET"
	idempotencyHeader = "Idempotency-Key"
	tokenHeader       = "auth-token"
	tokenTTL          = time.Hour
)

type loadMode string

const (
	modeCheckout        loadMode = "checkout"
	modeCheckoutAdvance loadMode = "checkout-advance"
	modeBrowse          loadMode = "browse"
)

type config struct {
	httpAddr    string
	grpcAddr    string
	total       int
	totalSet    bool
	duration    time.Duration
	concurrency int
	timeout     time.Duration
	mode        loadMode
	advanceRate int
	productID   string
	quantity    int
	price       decimal.Decimal
	users       []string
	authSecret  string
	outputPath  string
}

func parseConfig(args []string, getenv func(string) string) (config, error) {
	fs := flag.NewFlagSet("loadtest", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		cfg       config
		modeValue string
		price     string
		users     string
	)
	fs.StringVar(&cfg.httpAddr, "http-addr", "http://localhost:8080", "storefront HTTP API base URL")
	fs.StringVar(&cfg.grpcAddr, "grpc-addr", "localhost:50051", "admin gRPC address (checkout-advance mode)")
	fs.IntVar(&cfg.total, "total", 400, "total scenarios in count mode; in duration mode only used when explicitly set")
	fs.DurationVar(&cfg.duration, "duration", 0, "optional time-based run duration (e.g. 10m)")
	fs.IntVar(&cfg.concurrency, "concurrency", 40, "number of concurrent workers")
	fs.DurationVar(&cfg.timeout, "timeout", 5*time.Second, "per-request timeout")
	fs.StringVar(&modeValue, "mode", string(modeCheckout), "load mode: checkout | checkout-advance | browse")
	fs.IntVar(&cfg.advanceRate, "advance-rate", 100, "percent of orders moved to processing in checkout-advance mode (0..100)")
	fs.StringVar(&cfg.productID, "product", "P1", "product id used in scenarios")
	fs.IntVar(&cfg.quantity, "quantity", 1, "quantity per order line")
	fs.StringVar(&price, "price", "10.00", "catalog price of the product")
	fs.StringVar(&users, "users", "U1", "comma-separated user ids to act as")
	fs.StringVar(&cfg.authSecret, "auth-secret", "", "HMAC secret for issuing tokens (fallback: "+envAuthSecret+")")
	fs.StringVar(&cfg.outputPath, "output", "", "optional JSON report output file path")
	if err := fs.Parse(args); err != nil {
		return config{}, err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "total" {
			cfg.totalSet = true
		}
	})

	mode, err := parseMode(modeValue)
	if err != nil {
		return config{}, err
	}
	cfg.mode = mode

	cfg.price, err = decimal.NewFromString(strings.TrimSpace(price))
	if err != nil {
		return config{}, fmt.Errorf("parse price: %w", err)
	}
	cfg.users = splitList(users)
	if strings.TrimSpace(cfg.authSecret) == "" {
		cfg.authSecret = getenv(envAuthSecret)
	}
	cfg.httpAddr = strings.TrimRight(strings.TrimSpace(cfg.httpAddr), "/")

	switch {
	case cfg.duration < 0:
		return config{}, errors.New("duration must be >= 0")
	case cfg.duration == 0 && cfg.total <= 0:
		return config{}, errors.New("total must be > 0 when duration is not set")
	case cfg.duration > 0 && cfg.totalSet && cfg.total <= 0:
		return config{}, errors.New("total must be > 0 when explicitly set with duration")
	case cfg.concurrency <= 0:
		return config{}, errors.New("concurrency must be > 0")
	case cfg.timeout <= 0:
		return config{}, errors.New("timeout must be > 0")
	case cfg.advanceRate < 0 || cfg.advanceRate > 100:
		return config{}, errors.New("advance-rate must be between 0 and 100")
	case cfg.httpAddr == "":
		return config{}, errors.New("http-addr is required")
	case cfg.mode == modeCheckoutAdvance && strings.TrimSpace(cfg.grpcAddr) == "":
		return config{}, errors.New("grpc-addr is required in checkout-advance mode")
	case strings.TrimSpace(cfg.productID) == "":
		return config{}, errors.New("product is required")
	case cfg.quantity <= 0:
		return config{}, errors.New("quantity must be > 0")
	case !cfg.price.IsPositive():
		return config{}, errors.New("price must be > 0")
	case len(cfg.users) == 0:
		return config{}, errors.New("users are required")
	case cfg.mode != modeBrowse && strings.TrimSpace(cfg.authSecret) == "":
		return config{}, fmt.Errorf("auth secret is required (-auth-secret or %s)", envAuthSecret)
	}
	return cfg, nil
}

func parseMode(value string) (loadMode, error) {
	switch mode := loadMode(strings.TrimSpace(value)); mode {
	case modeCheckout, modeCheckoutAdvance, modeBrowse:
		return mode, nil
	default:
		return "", fmt.Errorf("unsupported mode: %s", value)
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func main() {
	decimal.MarshalJSONWithoutQuotes = true

	cfg, err := parseConfig(os.Args[1:], os.Getenv)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	client, closeFn, err := newStorefrontClient(cfg)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to create client: %v\n", err)
		os.Exit(1)
	}
	defer closeFn()

	tokens, err := issueTokens(cfg)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to issue tokens: %v\n", err)
		os.Exit(1)
	}

	startedAt := time.Now()
	runID := fmt.Sprintf("%d-%d", startedAt.UnixNano(), os.Getpid())
	col := newCollector()

	var pool errgroup.Group
	pool.SetLimit(cfg.concurrency)
	forEachJob(cfg, func(index int) {
		pool.Go(func() error {
			_ = runScenario(client, cfg, tokens, index, runID, col)
			return nil
		})
	})
	_ = pool.Wait()

	result := col.snapshot(cfg, startedAt, time.Since(startedAt))
	printReport(os.Stdout, result)
	if cfg.outputPath != "" {
		if err := writeReport(cfg.outputPath, result); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "failed to write report: %v\n", err)
			os.Exit(1)
		}
	}
	if result.Scenarios.Errors > 0 {
		os.Exit(1)
	}
}

// issueTokens подписывает по одному токену на пользователя.
func issueTokens(cfg config) (map[string]string, error) {
	tokens := make(map[string]string, len(cfg.users))
	if cfg.mode == modeBrowse {
		return tokens, nil
	}
	verifier, err := auth.NewVerifier(cfg.authSecret, 0)
	if err != nil {
		return nil, err
	}
	for _, user := range cfg.users {
		token, err := verifier.Issue(user, tokenTTL)
		if err != nil {
			return nil, fmt.Errorf("issue token for %s: %w", user, err)
		}
		tokens[user] = token
	}
	return tokens, nil
}

// forEachJob выдаёт номера сценариев: ровно total штук без duration,
// иначе до истечения duration (и не больше total, если он задан явно).
// start блокируется, пока пул занят, поэтому дедлайн проверяется перед каждым запуском.
func forEachJob(cfg config, start func(index int)) {
	if cfg.duration <= 0 {
		for i := 0; i < cfg.total; i++ {
			start(i)
		}
		return
	}

	deadline := time.Now().Add(cfg.duration)
	for i := 0; time.Now().Before(deadline); i++ {
		if cfg.totalSet && i >= cfg.total {
			return
		}
		start(i)
	}
}

type storefrontClient interface {
	AddToCart(ctx context.Context, token, productID string, quantity int) (int, error)
	CreateOrder(ctx context.Context, token, key string, items []domain.LineItem) (string, int, error)
	ListReviews(ctx context.Context, productID string) (int, error)
	CountOrders(ctx context.Context) (int, error)
	AdvanceOrder(ctx context.Context, orderID string, status domain.OrderStatus) error
}

func runScenario(client storefrontClient, cfg config, tokens map[string]string, index int, runID string, col *collector) (err error) {
	scenarioStart := time.Now()
	defer func() {
		code := "ok"
		if err != nil {
			code = "error"
		}
		col.observe(scenarioOp, time.Since(scenarioStart), code, err == nil)
	}()

	if cfg.mode == modeBrowse {
		if err := timed(col, "ListReviews", cfg.timeout, func(ctx context.Context) (int, error) {
			return client.ListReviews(ctx, cfg.productID)
		}); err != nil {
			return err
		}
		return timed(col, "CountOrders", cfg.timeout, client.CountOrders)
	}

	user := cfg.users[index%len(cfg.users)]
	token := tokens[user]

	if err := timed(col, "AddToCart", cfg.timeout, func(ctx context.Context) (int, error) {
		return client.AddToCart(ctx, token, cfg.productID, cfg.quantity)
	}); err != nil {
		return err
	}

	var orderID string
	key := fmt.Sprintf("lt-%s-%d", runID, index)
	items := []domain.LineItem{{ProductID: cfg.productID, Quantity: cfg.quantity, Price: cfg.price}}
	if err := timed(col, "CreateOrder", cfg.timeout, func(ctx context.Context) (int, error) {
		id, code, err := client.CreateOrder(ctx, token, key, items)
		orderID = id
		return code, err
	}); err != nil {
		return err
	}
	if orderID == "" {
		return errors.New("create response returned empty order id")
	}

	if cfg.mode != modeCheckoutAdvance || !shouldAdvance(index, cfg.advanceRate) {
		return nil
	}

	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), cfg.timeout)
	defer cancel()
	err = client.AdvanceOrder(ctx, orderID, domain.OrderStatusProcessing)
	col.observe("AdvanceOrderStatus", time.Since(start), status.Code(err).String(), err == nil)
	return err
}

// timed выполняет HTTP-вызов с таймаутом и пишет его статус в collector.
func timed(col *collector, method string, timeout time.Duration, call func(context.Context) (int, error)) error {
	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	code, err := call(ctx)
	label := strconv.Itoa(code)
	if code == 0 {
		label = "transport_error"
	}
	col.observe(method, time.Since(start), label, err == nil)
	return err
}

func shouldAdvance(index, rate int) bool {
	if rate <= 0 {
		return false
	}
	if rate >= 100 {
		return true
	}
	return index%100 < rate
}

type httpStorefrontClient struct {
	baseURL string
	http    *http.Client
	admin   storefrontv1.OrderAdminClient
}

func newStorefrontClient(cfg config) (*httpStorefrontClient, func(), error) {
	client := &httpStorefrontClient{
		baseURL: cfg.httpAddr,
		http: &http.Client{Transport: &http.Transport{
			MaxIdleConnsPerHost: cfg.concurrency,
		}},
	}
	if cfg.mode != modeCheckoutAdvance {
		return client, func() {}, nil
	}

	conn, err := grpc.NewClient(cfg.grpcAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, nil, fmt.Errorf("create grpc client connection: %w", err)
	}
	client.admin = storefrontv1.NewOrderAdminClient(conn)
	return client, func() { _ = conn.Close() }, nil
}

func (c *httpStorefrontClient) AddToCart(ctx context.Context, token, productID string, quantity int) (int, error) {
	code, _, err := c.do(ctx, http.MethodPost, "/cart/add/"+productID, token, nil, map[string]int{"quantity": quantity}, http.StatusOK)
	return code, err
}

func (c *httpStorefrontClient) CreateOrder(ctx context.Context, token, key string, items []domain.LineItem) (string, int, error) {
	headers := map[string]string{idempotencyHeader: key}
	body := map[string]any{"paymentMethod": "card", "orderNo": key, "products": items}
	code, raw, err := c.do(ctx, http.MethodPost, "/order/create", token, headers, body, http.StatusCreated)
	if err != nil {
		return "", code, err
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &created); err != nil {
		return "", code, fmt.Errorf("decode create response: %w", err)
	}
	return created.ID, code, nil
}

func (c *httpStorefrontClient) ListReviews(ctx context.Context, productID string) (int, error) {
	code, _, err := c.do(ctx, http.MethodGet, "/reviews/"+productID, "", nil, nil, http.StatusOK)
	return code, err
}

func (c *httpStorefrontClient) CountOrders(ctx context.Context) (int, error) {
	code, _, err := c.do(ctx, http.MethodGet, "/order/count", "", nil, nil, http.StatusOK)
	return code, err
}

func (c *httpStorefrontClient) AdvanceOrder(ctx context.Context, orderID string, to domain.OrderStatus) error {
	if c.admin == nil {
		return errors.New("admin client is not configured")
	}
	_, err := c.admin.AdvanceOrderStatus(ctx, &storefrontv1.AdvanceOrderStatusRequest{OrderId: orderID, Status: string(to)})
	return err
}

func (c *httpStorefrontClient) do(ctx context.Context, method, path, token string, headers map[string]string, payload any, want int) (int, []byte, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(tokenHeader, token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return resp.StatusCode, nil, err
	}
	if resp.StatusCode != want {
		return resp.StatusCode, raw, fmt.Errorf("%s %s: unexpected status %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	return resp.StatusCode, raw, nil
}
