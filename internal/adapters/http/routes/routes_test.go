package routes

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"expense-management/internal/adapters/persistence/repositories"
	"expense-management/internal/adapters/persistence/repositories/mocks"
	"expense-management/internal/config"
	"expense-management/internal/core/services"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Message string `json:"message"`
		Details string `json:"details"`
	} `json:"error"`
}

func testConfig() *config.Config {
	return &config.Config{
		AppMode:  "dev",
		Port:     "3000",
		Database: config.DatabaseConfig{Timeout: time.Second},
		OpenAI: config.OpenAIConfig{
			DeploymentName: "gpt-4o",
			Timeout:        time.Second,
			MaxRounds:      8,
		},
	}
}

func newTestApp(t *testing.T, gateway repositories.ExpenseGateway) *fiber.App {
	t.Helper()
	cfg := testConfig()
	app := NewApp(cfg)
	Setup(app, cfg, services.NewExpenseService(gateway, time.Second, zap.NewNop()), zap.NewNop())
	return app
}

func newDummyApp(t *testing.T) *fiber.App {
	return newTestApp(t, repositories.NewDummyGateway(zap.NewNop()))
}

func newMockApp(t *testing.T) (*fiber.App, *mocks.MockExpenseGateway) {
	ctrl := gomock.NewController(t)
	gateway := mocks.NewMockExpenseGateway(ctrl)
	gateway.EXPECT().Mode().Return(repositories.ModeDatabase).AnyTimes()
	return newTestApp(t, gateway), gateway
}

func do(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, string) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func doJSON(t *testing.T, app *fiber.App, method, target, body string) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, raw := do(t, app, req)
	var env envelope
	require.NoError(t, json.Unmarshal([]byte(raw), &env), raw)
	return resp.StatusCode, env
}

func TestAPI_ListExpensesFiltersByStatus(t *testing.T) {
	app := newDummyApp(t)

	status, env := doJSON(t, app, http.MethodGet, "/api/expenses?status=submitted", "")
	assert.Equal(t, http.StatusOK, status)
	require.True(t, env.Success)

	var expenses []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &expenses))
	require.Len(t, expenses, 2)
	assert.Equal(t, "Submitted", expenses[0]["statusName"])
	assert.Equal(t, "£120.00", expenses[0]["amountFormatted"])
}

func TestAPI_GetExpense(t *testing.T) {
	app := newDummyApp(t)

	status, env := doJSON(t, app, http.MethodGet, "/api/expenses/3", "")
	assert.Equal(t, http.StatusOK, status)
	require.True(t, env.Success)
	assert.Contains(t, string(env.Data), `"expenseId":3`)

	status, env = doJSON(t, app, http.MethodGet, "/api/expenses/42", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, "Expense with ID 42 not found", env.Error.Message)
}

func TestAPI_NonNumericIDIsNotFound(t *testing.T) {
	app := newDummyApp(t)

	status, env := doJSON(t, app, http.MethodGet, "/api/expenses/abc", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.False(t, env.Success)
}

func TestAPI_StoreFailureIsEnvelopedWith200(t *testing.T) {
	app, gateway := newMockApp(t)
	gateway.EXPECT().ListExpenses(gomock.Any(), "", "").Return(nil, errors.New("store down"))

	status, env := doJSON(t, app, http.MethodGet, "/api/expenses", "")
	assert.Equal(t, http.StatusOK, status)
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, "Failed to retrieve expenses", env.Error.Message)
	assert.Equal(t, "store down", env.Error.Details)
}

func TestAPI_CreateExpense(t *testing.T) {
	app, gateway := newMockApp(t)
	gateway.EXPECT().CreateExpense(gomock.Any(), gomock.Any()).Return(17, nil)

	status, env := doJSON(t, app, http.MethodPost, "/api/expenses",
		`{"userId":1,"categoryId":2,"amount":25.50,"expenseDate":"2024-03-01","description":"Lunch"}`)
	assert.Equal(t, http.StatusOK, status)
	require.True(t, env.Success)
	assert.Equal(t, "17", string(env.Data))
}

func TestAPI_CreateExpenseValidation(t *testing.T) {
	app := newDummyApp(t)

	status, env := doJSON(t, app, http.MethodPost, "/api/expenses",
		`{"userId":0,"categoryId":2,"amount":10,"expenseDate":"2024-03-01"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, "Failed to create expense", env.Error.Message)
	assert.Contains(t, env.Error.Details, "userId")

	status, env = doJSON(t, app, http.MethodPost, "/api/expenses", `{"userId":`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.False(t, env.Success)
}

func TestAPI_Transitions(t *testing.T) {
	app, gateway := newMockApp(t)
	gateway.EXPECT().SubmitExpense(gomock.Any(), 5).Return(false, nil)
	gateway.EXPECT().ApproveExpense(gomock.Any(), 1, 2).Return(true, nil)
	gateway.EXPECT().RejectExpense(gomock.Any(), 2, 2).Return(false, errors.New("deadlock"))

	_, env := doJSON(t, app, http.MethodPost, "/api/expenses/5/submit", "")
	require.True(t, env.Success)
	assert.Equal(t, "false", string(env.Data))

	_, env = doJSON(t, app, http.MethodPost, "/api/expenses/1/approve", `{"reviewerId":2}`)
	require.True(t, env.Success)
	assert.Equal(t, "true", string(env.Data))

	_, env = doJSON(t, app, http.MethodPost, "/api/expenses/2/reject", `{"reviewerId":2}`)
	assert.False(t, env.Success)
	assert.Equal(t, "Failed to reject expense", env.Error.Message)

	// no reviewer, never reaches the store
	_, env = doJSON(t, app, http.MethodPost, "/api/expenses/1/approve", `{}`)
	assert.False(t, env.Success)
	assert.Contains(t, env.Error.Details, "reviewerId is required")
}

func TestAPI_ReferenceDataIsCached(t *testing.T) {
	app := newDummyApp(t)

	resp, _ := do(t, app, httptest.NewRequest(http.MethodGet, "/api/expenses/categories", nil))
	assert.Equal(t, "public, max-age=3600", resp.Header.Get(fiber.HeaderCacheControl))

	resp, _ = do(t, app, httptest.NewRequest(http.MethodGet, "/api/expenses/pending", nil))
	assert.Empty(t, resp.Header.Get(fiber.HeaderCacheControl))
}

func TestAPI_Dashboard(t *testing.T) {
	app := newDummyApp(t)

	_, env := doJSON(t, app, http.MethodGet, "/api/dashboard", "")
	require.True(t, env.Success)

	var summary services.DashboardSummary
	require.NoError(t, json.Unmarshal(env.Data, &summary))
	assert.Equal(t, 4, summary.TotalExpenses)
	assert.Equal(t, 2, summary.PendingCount)
	assert.Equal(t, "£307.70", summary.TotalAmountFormatted)
}

func TestAPI_ChatUnconfigured(t *testing.T) {
	app := newDummyApp(t)

	_, raw := do(t, app, httptest.NewRequest(http.MethodGet, "/api/chat/status", nil))
	assert.JSONEq(t, `{"configured":false}`, raw)

	_, env := doJSON(t, app, http.MethodPost, "/api/chat", `{"message":"show me pending expenses"}`)
	require.True(t, env.Success)
	var reply string
	require.NoError(t, json.Unmarshal(env.Data, &reply))
	assert.Equal(t, services.NotConfiguredMessage, reply)

	_, env = doJSON(t, app, http.MethodPost, "/api/chat", `{"message":""}`)
	assert.False(t, env.Success)
}

func TestHealth_ReportsMode(t *testing.T) {
	app := newDummyApp(t)

	_, raw := do(t, app, httptest.NewRequest(http.MethodGet, "/health", nil))
	var health map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(raw), &health))
	assert.Equal(t, "ok", health["status"])
	assert.Equal(t, repositories.ModeDummy, health["mode"])
}

func TestPages_Dashboard(t *testing.T) {
	app := newDummyApp(t)

	resp, body := do(t, app, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "£307.70")
	assert.Contains(t, body, "Transport to conference")
	assert.NotContains(t, body, `class="alert alert-error"`)
}

func TestPages_FallBackToSampleData(t *testing.T) {
	app, gateway := newMockApp(t)
	gateway.EXPECT().ListExpenses(gomock.Any(), "", "").Return(nil, errors.New("login failed"))

	resp, body := do(t, app, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Showing dummy data")
	assert.Contains(t, body, "login failed")
	assert.Contains(t, body, "Taxi from airport to client site")
}

func TestPages_ApproveFilterAndReview(t *testing.T) {
	app := newDummyApp(t)

	resp, body := do(t, app, httptest.NewRequest(http.MethodGet, "/approve?filter=lunch", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Client lunch meeting")
	assert.NotContains(t, body, "Taxi from airport")
	assert.Contains(t, body, "Bob Manager")

	form := url.Values{"expenseId": {"1"}, "reviewerId": {"2"}}
	req := httptest.NewRequest(http.MethodPost, "/approve/approve", strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	_, body = do(t, app, req)
	assert.Contains(t, body, "Expense #1 approved successfully.")
}

func TestPages_AddExpense(t *testing.T) {
	app := newDummyApp(t)

	form := url.Values{
		"userId":      {"1"},
		"categoryId":  {"2"},
		"amount":      {"12.34"},
		"expenseDate": {"2024-03-01"},
		"description": {"Sandwich"},
	}
	req := httptest.NewRequest(http.MethodPost, "/expenses/add", strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	_, body := do(t, app, req)
	assert.Contains(t, body, "Expense created successfully with ID: 999")

	form.Set("amount", "lots")
	req = httptest.NewRequest(http.MethodPost, "/expenses/add", strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	_, body = do(t, app, req)
	assert.Contains(t, body, "Failed to create expense")
}

func TestPages_SubmitRedirects(t *testing.T) {
	app := newDummyApp(t)

	form := url.Values{"expenseId": {"1"}}
	req := httptest.NewRequest(http.MethodPost, "/expenses/submit", strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	resp, _ := do(t, app, req)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/expenses", resp.Header.Get(fiber.HeaderLocation))
}
