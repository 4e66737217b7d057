package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stocksim/internal/domain"
	"stocksim/internal/service"
)

func setupTestServer(t *testing.T) (*echo.Echo, *AccountHandler) {
	t.Helper()
	handler := NewAccountHandler(service.NewStaticPriceService(), zerolog.Nop())
	e := echo.New()
	SetupRoutes(e, &RouterConfig{AccountHandler: handler, Log: zerolog.Nop()})
	return e, handler
}

func doJSON(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func createFundedAccount(t *testing.T, e *echo.Echo) {
	t.Helper()
	rec := doJSON(e, http.MethodPost, "/api/account", `{"account_id":"acct-123","owner":"Alice","initial_deposit":10000}`)
	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestCreateAccount(t *testing.T) {
	e, _ := setupTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/account", `{"account_id":"acct-123","owner":"Alice","initial_deposit":10000}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	resp := decodeResponse(t, rec)
	assert.Equal(t, "success", resp.Status)

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "acct-123", data["account_id"])
	assert.Equal(t, "Alice", data["owner"])
	assert.Equal(t, 10000.0, data["cash_balance"])
	assert.Equal(t, 1.0, data["transaction_count"])
}

func TestCreateAccount_GeneratedID(t *testing.T) {
	e, handler := setupTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/account", `{"owner":"Bob"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	account := handler.Current()
	require.NotNil(t, account)
	assert.True(t, strings.HasPrefix(account.ID(), "acct-"))
}

func TestCreateAccount_NegativeDeposit(t *testing.T) {
	e, handler := setupTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/account", `{"initial_deposit":-5}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, handler.Current())
}

func TestNoAccountYet(t *testing.T) {
	e, _ := setupTestServer(t)

	for _, target := range []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodGet, "/api/account", ""},
		{http.MethodPost, "/api/account/deposit", `{"amount":10}`},
		{http.MethodPost, "/api/account/buy", `{"symbol":"AAPL","quantity":1}`},
		{http.MethodGet, "/api/account/holdings", ""},
		{http.MethodGet, "/api/account/transactions", ""},
	} {
		rec := doJSON(e, target.method, target.path, target.body)
		assert.Equal(t, http.StatusNotFound, rec.Code, "%s %s", target.method, target.path)
	}
}

func TestDeposit(t *testing.T) {
	e, handler := setupTestServer(t)
	createFundedAccount(t, e)

	rec := doJSON(e, http.MethodPost, "/api/account/deposit", `{"amount":500,"note":"bonus"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	resp := decodeResponse(t, rec)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "deposit", data["type"])
	assert.Equal(t, 500.0, data["cash_delta"])
	assert.Equal(t, "bonus", data["note"])

	assert.Equal(t, 10500.0, handler.Current().CashBalance())
}

func TestDeposit_InvalidAmount(t *testing.T) {
	e, _ := setupTestServer(t)
	createFundedAccount(t, e)

	rec := doJSON(e, http.MethodPost, "/api/account/deposit", `{"amount":0}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, "error", resp.Status)
}

func TestWithdraw_Insufficient(t *testing.T) {
	e, handler := setupTestServer(t)
	createFundedAccount(t, e)

	rec := doJSON(e, http.MethodPost, "/api/account/withdraw", `{"amount":999999}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, 10000.0, handler.Current().CashBalance())
}

func TestBuyAndSell(t *testing.T) {
	e, handler := setupTestServer(t)
	createFundedAccount(t, e)

	rec := doJSON(e, http.MethodPost, "/api/account/buy", `{"symbol":"AAPL","quantity":10}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	resp := decodeResponse(t, rec)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "buy", data["type"])
	assert.Equal(t, "AAPL", data["symbol"])
	assert.Equal(t, 150.0, data["price"])
	assert.Equal(t, -1500.0, data["cash_delta"])
	assert.Equal(t, 8500.0, handler.Current().CashBalance())

	rec = doJSON(e, http.MethodPost, "/api/account/sell", `{"symbol":"AAPL","quantity":5}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 9250.0, handler.Current().CashBalance())
}

func TestBuy_ExplicitPrice(t *testing.T) {
	e, handler := setupTestServer(t)
	createFundedAccount(t, e)

	rec := doJSON(e, http.MethodPost, "/api/account/buy", `{"symbol":"AAPL","quantity":10,"price":100,"note":"backtest"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 9000.0, handler.Current().CashBalance())
}

func TestBuy_Errors(t *testing.T) {
	e, _ := setupTestServer(t)
	createFundedAccount(t, e)

	tests := []struct {
		name string
		body string
		code int
	}{
		{"unknown symbol", `{"symbol":"MSFT","quantity":1}`, http.StatusBadRequest},
		{"missing symbol", `{"quantity":1}`, http.StatusBadRequest},
		{"zero quantity", `{"symbol":"AAPL","quantity":0}`, http.StatusBadRequest},
		{"negative price", `{"symbol":"AAPL","quantity":1,"price":-1}`, http.StatusBadRequest},
		{"insufficient funds", `{"symbol":"GOOGL","quantity":100}`, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(e, http.MethodPost, "/api/account/buy", tt.body)
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}

func TestSell_InsufficientShares(t *testing.T) {
	e, _ := setupTestServer(t)
	createFundedAccount(t, e)

	rec := doJSON(e, http.MethodPost, "/api/account/sell", `{"symbol":"AAPL","quantity":1}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestGetHoldings(t *testing.T) {
	e, _ := setupTestServer(t)
	createFundedAccount(t, e)
	doJSON(e, http.MethodPost, "/api/account/buy", `{"symbol":"AAPL","quantity":3}`)

	rec := doJSON(e, http.MethodGet, "/api/account/holdings", "")
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeResponse(t, rec)
	data := resp.Data.(map[string]interface{})
	holdings := data["holdings"].(map[string]interface{})
	assert.Equal(t, 3.0, holdings["AAPL"])
	assert.Equal(t, 1.0, data["count"])
}

func TestListTransactions(t *testing.T) {
	e, _ := setupTestServer(t)
	createFundedAccount(t, e)
	doJSON(e, http.MethodPost, "/api/account/buy", `{"symbol":"AAPL","quantity":1}`)
	doJSON(e, http.MethodPost, "/api/account/withdraw", `{"amount":100}`)

	rec := doJSON(e, http.MethodGet, "/api/account/transactions", "")
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, 3.0, data["count"])

	rec = doJSON(e, http.MethodGet, "/api/account/transactions?type=buy", "")
	require.Equal(t, http.StatusOK, rec.Code)
	resp = decodeResponse(t, rec)
	data = resp.Data.(map[string]interface{})
	assert.Equal(t, 1.0, data["count"])

	rec = doJSON(e, http.MethodGet, "/api/account/transactions?symbol=AAPL", "")
	resp = decodeResponse(t, rec)
	data = resp.Data.(map[string]interface{})
	assert.Equal(t, 1.0, data["count"])
}

func TestListTransactions_BadQueries(t *testing.T) {
	e, _ := setupTestServer(t)
	createFundedAccount(t, e)

	tests := []struct {
		name  string
		query string
	}{
		{"bad start", "?start=yesterday"},
		{"bad end", "?end=12345"},
		{"bad type", "?type=transfer"},
		{"inverted range", "?start=2024-06-01T00:00:00Z&end=2024-01-01T00:00:00Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(e, http.MethodGet, "/api/account/transactions"+tt.query, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestGetTransaction(t *testing.T) {
	e, handler := setupTestServer(t)
	createFundedAccount(t, e)

	txs, err := handler.Current().ListTransactions(domain.TransactionFilter{})
	require.NoError(t, err)
	require.NotEmpty(t, txs)

	rec := doJSON(e, http.MethodGet, "/api/account/transactions/"+txs[0].ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, txs[0].ID, data["id"])

	rec = doJSON(e, http.MethodGet, "/api/account/transactions/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealth(t *testing.T) {
	e, _ := setupTestServer(t)

	rec := doJSON(e, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "healthy", data["status"])
}
