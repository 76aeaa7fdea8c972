package api_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/arunasjusas/invoicing/internal/api"
	"github.com/arunasjusas/invoicing/internal/entity"
	"github.com/arunasjusas/invoicing/internal/mocks"
	"github.com/arunasjusas/invoicing/internal/service"
	"github.com/arunasjusas/invoicing/pkg/config"
)

const testJWTSecret = "test-secret"

type testAPI struct {
	server   *httptest.Server
	token    string
	svc      *service.Service
	repo     *mocks.MockRepository
	producer *mocks.MockProducer
	msgCache *mocks.MockMessageCache
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	ctrl := gomock.NewController(t)

	repo := mocks.NewMockRepository(ctrl)
	producer := mocks.NewMockProducer(ctrl)
	mailer := mocks.NewMockMailer(ctrl)
	msgCache := mocks.NewMockMessageCache(ctrl)

	svc := service.New(repo, producer, mailer, msgCache, service.Topics{
		InvoicesChanged: "invoices.changed",
		ClientsChanged:  "clients.changed",
	})

	handler := api.NewHandler(svc)
	mw := api.NewMiddleware(config.Config{JWTSecret: testJWTSecret})

	server := httptest.NewServer(api.NewRouter(handler, mw))
	t.Cleanup(server.Close)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "tester",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)

	return &testAPI{
		server:   server,
		token:    token,
		svc:      svc,
		repo:     repo,
		producer: producer,
		msgCache: msgCache,
	}
}

func (a *testAPI) do(t *testing.T, method, path string, body io.Reader) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, a.server.URL+path, body)
	require.NoError(t, err)

	req.Header.Set("Authorization", "Bearer "+a.token)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.server.Client().Do(req)
	require.NoError(t, err)

	t.Cleanup(func() { _ = resp.Body.Close() })

	return resp
}

func TestHandler_Health(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)

	resp, err := http.Get(a.server.URL + "/api/health")
	require.NoError(t, err)

	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHandler_AuthRequired(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)

	resp, err := http.Get(a.server.URL + "/api/invoices")
	require.NoError(t, err)

	defer resp.Body.Close()

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHandler_AuthRejectsForgedToken(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "tester",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("wrong-secret"))
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodGet, a.server.URL+"/api/invoices", nil)
	require.NoError(t, err)

	req.Header.Set("Authorization", "Bearer "+forged)

	resp, err := a.server.Client().Do(req)
	require.NoError(t, err)

	defer resp.Body.Close()

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHandler_ListInvoices(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)

	active := entity.Invoice{
		ID:      uuid.Must(uuid.NewV4()),
		Number:  "SF-101",
		Date:    time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
		DueDate: time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC),
		Status:  entity.StatusUnpaid,
		Amount:  decimal.RequireFromString("150.00"),
	}
	binned := entity.Invoice{
		ID:      uuid.Must(uuid.NewV4()),
		Number:  "SF-102",
		Status:  entity.StatusPaid,
		Amount:  decimal.RequireFromString("80.00"),
		Deleted: true,
	}

	a.repo.EXPECT().Invoices(gomock.Any()).Return([]entity.Invoice{active, binned}, nil)
	require.NoError(t, a.svc.RefreshInvoices(context.Background()))

	resp := a.do(t, http.MethodGet, "/api/invoices", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got []api.InvoiceResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))

	require.Len(t, got, 1)
	require.Equal(t, "SF-101", got[0].Number)
	require.Equal(t, "2026-03-01", got[0].Date)
	require.False(t, got[0].Deleted)

	resp = a.do(t, http.MethodGet, "/api/invoices/deleted", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Len(t, got, 1)
	require.Equal(t, "SF-102", got[0].Number)
}

func TestHandler_GetInvoice(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)

	invoice := entity.Invoice{
		ID:     uuid.Must(uuid.NewV4()),
		Number: "SF-101",
		Status: entity.StatusPaid,
		Amount: decimal.RequireFromString("150.00"),
	}

	a.repo.EXPECT().Invoices(gomock.Any()).Return([]entity.Invoice{invoice}, nil)
	require.NoError(t, a.svc.RefreshInvoices(context.Background()))

	resp := a.do(t, http.MethodGet, "/api/invoices/"+invoice.ID.String(), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = a.do(t, http.MethodGet, "/api/invoices/"+uuid.Must(uuid.NewV4()).String(), nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = a.do(t, http.MethodGet, "/api/invoices/not-a-uuid", nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandler_CreateInvoice(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)

	a.repo.EXPECT().CreateInvoice(gomock.Any(), gomock.Any()).Return(nil)
	a.producer.EXPECT().SendRowChanged(gomock.Any(), "invoices.changed", "insert", gomock.Any())
	a.msgCache.EXPECT().Invalidate(gomock.Any()).Return(nil)
	a.repo.EXPECT().Invoices(gomock.Any()).Return(nil, nil)

	body := `{
		"date": "2026-03-01",
		"dueDate": "2026-03-15",
		"client": "UAB Statyba",
		"amount": "150.00",
		"status": "UNPAID"
	}`

	resp := a.do(t, http.MethodPost, "/api/invoices", strings.NewReader(body))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var got api.InvoiceResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))

	require.Equal(t, "SF-101", got.Number)
	require.Equal(t, "UAB Statyba", got.Client)
	require.NotEmpty(t, got.ID)
}

func TestHandler_CreateInvoice_ValidationError(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)

	body := `{
		"date": "2026-03-01",
		"dueDate": "2026-03-15",
		"client": "UAB Statyba",
		"amount": "-5",
		"status": "UNPAID"
	}`

	resp := a.do(t, http.MethodPost, "/api/invoices", strings.NewReader(body))
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandler_UpdateInvoice_EmptyPatch(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)

	resp := a.do(t, http.MethodPut, "/api/invoices/"+uuid.Must(uuid.NewV4()).String(), strings.NewReader(`{}`))
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandler_DeleteInvoice(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)

	id := uuid.Must(uuid.NewV4())

	a.repo.EXPECT().SoftDeleteInvoice(gomock.Any(), id, gomock.Any()).Return(nil)
	a.producer.EXPECT().SendRowChanged(gomock.Any(), "invoices.changed", "update", id)
	a.msgCache.EXPECT().Invalidate(gomock.Any()).Return(nil)
	a.repo.EXPECT().Invoices(gomock.Any()).Return(nil, nil)

	resp := a.do(t, http.MethodDelete, "/api/invoices/"+id.String(), nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestHandler_DeleteInvoice_NotFound(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)

	id := uuid.Must(uuid.NewV4())

	a.repo.EXPECT().SoftDeleteInvoice(gomock.Any(), id, gomock.Any()).Return(entity.ErrNotFound)

	resp := a.do(t, http.MethodDelete, "/api/invoices/"+id.String(), nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHandler_KPI(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)

	a.msgCache.EXPECT().Get(gomock.Any()).Return([]entity.Message{{ID: "msg-1"}}, true, nil)

	resp := a.do(t, http.MethodGet, "/api/dashboard/kpi", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got api.KPIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))

	require.Equal(t, 1, got.SentReminders)
	require.Equal(t, 0, got.TotalInvoices)
}

func TestHandler_Messages(t *testing.T) {
	t.Parallel()

	a := newTestAPI(t)

	cached := []entity.Message{{
		ID:     "msg-1",
		Step:   entity.StepOne,
		Client: "UAB Statyba",
		Status: entity.MessageSent,
	}}

	a.msgCache.EXPECT().Get(gomock.Any()).Return(cached, true, nil)

	resp := a.do(t, http.MethodGet, "/api/ai/messages", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got []entity.Message
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Equal(t, cached, got)
}
