package summary

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"assetdesk/pkg/response"
)

type mockSummaryService struct {
	mock.Mock
}

func (m *mockSummaryService) Summary(ctx context.Context) ([]Row, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]Row)
	return rows, args.Error(1)
}

func (m *mockSummaryService) ExportXLSX(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func (m *mockSummaryService) Healthy(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}

func setupSummaryRouter(service SummaryService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewSummaryHandler(service)
	h.RegisterRoutes(r)
	return r
}

func TestSummaryHandler_Summary_Success(t *testing.T) {
	svc := new(mockSummaryService)
	r := setupSummaryRouter(svc)

	svc.On("Summary", mock.Anything).Return([]Row{
		{AssetType: "Laptop", Department: "Engineering", Brand: "Acme", Model: "X1", Count: 3},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/summary", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp response.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)

	rows, ok := resp.Data.([]any)
	require.True(t, ok)
	require.Len(t, rows, 1)

	svc.AssertExpectations(t)
}

func TestSummaryHandler_Summary_Error(t *testing.T) {
	svc := new(mockSummaryService)
	r := setupSummaryRouter(svc)

	svc.On("Summary", mock.Anything).Return(nil, errors.New("store unavailable"))

	req := httptest.NewRequest(http.MethodGet, "/summary", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	svc.AssertExpectations(t)
}

func TestSummaryHandler_Export_Success(t *testing.T) {
	svc := new(mockSummaryService)
	r := setupSummaryRouter(svc)

	svc.On("ExportXLSX", mock.Anything).Return([]byte("workbook-bytes"), nil)

	req := httptest.NewRequest(http.MethodGet, "/summary/export", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		w.Header().Get("Content-Type"))
	require.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	require.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")
	require.Equal(t, "workbook-bytes", w.Body.String())

	svc.AssertExpectations(t)
}

func TestSummaryHandler_Health(t *testing.T) {
	svc := new(mockSummaryService)
	r := setupSummaryRouter(svc)

	svc.On("Healthy", mock.Anything).Return(true).Once()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "healthy", body["status"])
	require.Equal(t, "connected", body["database"])

	svc.On("Healthy", mock.Anything).Return(false).Once()

	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "disconnected", body["database"])

	svc.AssertExpectations(t)
}
