//go:build integration

package e2e

// e2e_test.go
// End-to-end integration tests for StockWise using real Postgres + Redis via
// testcontainers. Run with: go test -tags integration ./tests/e2e/... -v
//
// These tests exercise the SQL-backed behaviors the unit suite can only
// stub: the ILIKE history search, the ORDER BY id DESC ledger ordering, and
// the counter bumps applied by the atomic stock UPDATE.

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/juanmiguelzamora/StockWise/internal/config"
	"github.com/juanmiguelzamora/StockWise/internal/dto"
	"github.com/juanmiguelzamora/StockWise/internal/infra"
	"github.com/juanmiguelzamora/StockWise/internal/router"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"golang.org/x/crypto/bcrypt"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, token string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Test Suite Setup ─────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	token  string // admin JWT
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	// Start Postgres container
	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("stockwise_test"),
		tcPostgres.WithUsername("stockwise"),
		tcPostgres.WithPassword("stockwise"),
		testcontainers.WithWaitStrategy(
			tcPostgres.BasicWaitStrategies()...,
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	// Start Redis container
	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:               8000,
		Env:                "test",
		WorkerPoolSize:     1,
		DatabaseURL:        pgURL,
		RedisURL:           rdURL,
		JWTSecret:          "test-secret-key",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
		ResetTokenMinutes:  30,
		LowStockThreshold:  5,
	}

	// Connect DB (runs AutoMigrate) + Redis
	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	// Seed admin user
	hash, err := bcrypt.GenerateFromPassword([]byte("stockwise2026"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, db.Exec(`INSERT INTO users (id, username, email, password_hash, role, active, created_at, updated_at)
		VALUES (gen_random_uuid(), 'admin', 'admin@e2e.test', ?, 'admin', true, NOW(), NOW())
		ON CONFLICT DO NOTHING`, string(hash)).Error)

	mailCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	r := router.New(cfg, db, rdb, mailCB)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	// Login as admin
	loginResp := do(t, srv, "POST", "/v1/auth/login",
		jsonBody(t, map[string]string{"username": "admin", "password": "stockwise2026"}),
		"",
	)
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	var loginBody struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, loginResp, &loginBody)
	require.NotEmpty(t, loginBody.AccessToken)

	return &testEnv{server: srv, token: loginBody.AccessToken}
}

func createProduct(t *testing.T, env *testEnv, name, sku, category string, quantity int) dto.ProductResponse {
	t.Helper()
	resp := do(t, env.server, "POST", "/v1/products",
		jsonBody(t, map[string]any{
			"name":     name,
			"sku":      sku,
			"category": category,
			"price":    "25.50",
			"quantity": quantity,
		}),
		env.token,
	)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var p dto.ProductResponse
	decodeJSON(t, resp, &p)
	return p
}

func adjustStock(t *testing.T, env *testEnv, id, change int) dto.MutationResponse {
	t.Helper()
	resp := do(t, env.server, "POST", fmt.Sprintf("/v1/products/%d/adjust_stock", id),
		jsonBody(t, map[string]any{"change": change}), env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var m dto.MutationResponse
	decodeJSON(t, resp, &m)
	return m
}

// ── Tests ────────────────────────────────────────────────────────────────────

// Full mutation cycle: create → adjust up → adjust down → read back. The
// quantity, stock_in and stock_out counters are all applied by the SQL-side
// UPDATE, so this is the real counter-bump path.
func TestE2E_StockCountersSurviveMutations(t *testing.T) {
	env := setupTestEnv(t)

	p := createProduct(t, env, "Wireless Headphones", "WH-001", "Electronics", 10)
	adjustStock(t, env, p.ID, 5)
	m := adjustStock(t, env, p.ID, -3)

	require.NotNil(t, m.Movement)
	assert.Equal(t, -3, m.Movement.Change)
	assert.Equal(t, 12, m.Movement.Quantity)

	detailResp := do(t, env.server, "GET", fmt.Sprintf("/v1/products/%d", p.ID), nil, env.token)
	require.Equal(t, http.StatusOK, detailResp.StatusCode)
	var detail dto.ProductResponse
	decodeJSON(t, detailResp, &detail)

	assert.Equal(t, 12, detail.Quantity)
	assert.Equal(t, 15, detail.StockIn) // 10 seed + 5 adjust
	assert.Equal(t, 3, detail.StockOut)
	assert.NotEqual(t, p.UpdatedAt, detail.UpdatedAt)
}

// A decrement at zero is fully clamped away: 200, no movement, no ledger row.
func TestE2E_ClampedDecrementRecordsNothing(t *testing.T) {
	env := setupTestEnv(t)

	p := createProduct(t, env, "USB Cable", "UC-002", "Accessories", 0)
	m := adjustStock(t, env, p.ID, -5)

	assert.Nil(t, m.Movement)
	assert.Equal(t, 0, m.Product.Quantity)

	histResp := do(t, env.server, "GET", "/v1/history", nil, env.token)
	require.Equal(t, http.StatusOK, histResp.StatusCode)
	var hist dto.MovementListResponse
	decodeJSON(t, histResp, &hist)
	assert.Equal(t, int64(0), hist.Total) // quantity 0 at create seeds nothing either
}

// The ledger lists most-recent-first via ORDER BY id DESC.
func TestE2E_HistoryOrderedByInsertionDesc(t *testing.T) {
	env := setupTestEnv(t)

	p := createProduct(t, env, "Desk Lamp", "DL-003", "Home", 4)
	adjustStock(t, env, p.ID, 2)
	adjustStock(t, env, p.ID, -1)
	adjustStock(t, env, p.ID, 3)

	histResp := do(t, env.server, "GET", "/v1/history", nil, env.token)
	require.Equal(t, http.StatusOK, histResp.StatusCode)
	var hist dto.MovementListResponse
	decodeJSON(t, histResp, &hist)

	require.Equal(t, int64(4), hist.Total) // seed + 3 adjusts
	for i := 1; i < len(hist.Data); i++ {
		assert.Greater(t, hist.Data[i-1].ID, hist.Data[i].ID)
	}
	assert.Equal(t, 3, hist.Data[0].Change) // the last adjust comes first
}

// ?search= filters the denormalized snapshot columns case-insensitively
// (ILIKE on product_name, sku and category).
func TestE2E_HistorySearchIsCaseInsensitive(t *testing.T) {
	env := setupTestEnv(t)

	headphones := createProduct(t, env, "Wireless Headphones", "WH-001", "Electronics", 10)
	cable := createProduct(t, env, "USB Cable", "UC-002", "Accessories", 8)
	adjustStock(t, env, headphones.ID, -2)
	adjustStock(t, env, cable.ID, -1)

	histResp := do(t, env.server, "GET", "/v1/history?search=HEAD", nil, env.token)
	require.Equal(t, http.StatusOK, histResp.StatusCode)
	var hist dto.MovementListResponse
	decodeJSON(t, histResp, &hist)

	require.Equal(t, int64(2), hist.Total) // seed + adjust for the headphones only
	for _, m := range hist.Data {
		assert.Equal(t, "Wireless Headphones", m.ProductName)
	}

	// Category snapshots are searchable too
	histResp = do(t, env.server, "GET", "/v1/history?search=accessor", nil, env.token)
	require.Equal(t, http.StatusOK, histResp.StatusCode)
	decodeJSON(t, histResp, &hist)
	assert.Equal(t, int64(2), hist.Total)
}

// An admin creates another admin in one request, who can then log in.
func TestE2E_AdminCreatesAdmin(t *testing.T) {
	env := setupTestEnv(t)

	createResp := do(t, env.server, "POST", "/v1/users",
		jsonBody(t, map[string]string{
			"username": "second.admin",
			"email":    "second@e2e.test",
			"password": "longenough1",
			"role":     "admin",
		}), env.token)
	require.Equal(t, http.StatusCreated, createResp.StatusCode)
	var created dto.UserResponse
	decodeJSON(t, createResp, &created)
	assert.Equal(t, "admin", created.Role)

	loginResp := do(t, env.server, "POST", "/v1/auth/login",
		jsonBody(t, map[string]string{"username": "second.admin", "password": "longenough1"}), "")
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	var login dto.LoginResponse
	decodeJSON(t, loginResp, &login)
	assert.Equal(t, "admin", login.User.Role)
}
