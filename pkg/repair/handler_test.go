package repair

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"assetdesk/pkg/response"
)

type mockRepairService struct {
	mock.Mock
}

func (m *mockRepairService) StartRepair(ctx context.Context, input StartRepairInput) (Record, error) {
	args := m.Called(ctx, input)
	record, _ := args.Get(0).(Record)
	return record, args.Error(1)
}

func (m *mockRepairService) EndRepair(ctx context.Context, assetID string) error {
	args := m.Called(ctx, assetID)
	return args.Error(0)
}

func (m *mockRepairService) ActiveRepair(ctx context.Context, assetID string) (Record, error) {
	args := m.Called(ctx, assetID)
	record, _ := args.Get(0).(Record)
	return record, args.Error(1)
}

func (m *mockRepairService) AvailableLoaners(ctx context.Context, assetType, excludeAssetID string) ([]Loaner, error) {
	args := m.Called(ctx, assetType, excludeAssetID)
	loaners, _ := args.Get(0).([]Loaner)
	return loaners, args.Error(1)
}

func setupRepairRouter(service RepairService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewRepairHandler(service)
	h.RegisterRoutes(r)
	return r
}

func TestRepairHandler_StartRepair_Success(t *testing.T) {
	svc := new(mockRepairService)
	r := setupRepairRouter(svc)

	svc.On("StartRepair", mock.Anything, mock.MatchedBy(func(in StartRepairInput) bool {
		return in.AssetID == "AST_1001" && in.Details == "screen flicker" &&
			in.LoanerAssetID != nil && *in.LoanerAssetID == "AST_1002"
	})).Return(Record{ID: 3, AssetID: "AST_1001", StartedAt: time.Now()}, nil)

	reqBody := `{"assetId":"AST_1001","repairDetails":"screen flicker","tempAssetId":"AST_1002"}`
	req := httptest.NewRequest(http.MethodPost, "/repairs/start", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp response.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.Equal(t, "repair started for AST_1001", resp.Message)

	svc.AssertExpectations(t)
}

func TestRepairHandler_StartRepair_MissingDetails(t *testing.T) {
	svc := new(mockRepairService)
	r := setupRepairRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/repairs/start", strings.NewReader(`{"assetId":"AST_1001"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "StartRepair", mock.Anything, mock.Anything)
}

func TestRepairHandler_StartRepair_AlreadyOpen(t *testing.T) {
	svc := new(mockRepairService)
	r := setupRepairRouter(svc)

	svc.On("StartRepair", mock.Anything, mock.Anything).Return(Record{}, ErrRepairAlreadyOpen)

	reqBody := `{"assetId":"AST_1001","repairDetails":"battery"}`
	req := httptest.NewRequest(http.MethodPost, "/repairs/start", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusConflict, w.Code)
	svc.AssertExpectations(t)
}

func TestRepairHandler_StartRepair_LoanerNotFound(t *testing.T) {
	svc := new(mockRepairService)
	r := setupRepairRouter(svc)

	svc.On("StartRepair", mock.Anything, mock.Anything).Return(Record{}, ErrLoanerNotFound)

	reqBody := `{"assetId":"AST_1001","repairDetails":"battery","tempAssetId":"AST_9999"}`
	req := httptest.NewRequest(http.MethodPost, "/repairs/start", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	var resp response.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "loaner asset not found", resp.Message)

	svc.AssertExpectations(t)
}

func TestRepairHandler_EndRepair_Success(t *testing.T) {
	svc := new(mockRepairService)
	r := setupRepairRouter(svc)

	svc.On("EndRepair", mock.Anything, "AST_1001").Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/repairs/end", strings.NewReader(`{"assetId":"AST_1001"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp response.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "repair ended for AST_1001", resp.Message)

	svc.AssertExpectations(t)
}

func TestRepairHandler_EndRepair_NoOpenRepair(t *testing.T) {
	svc := new(mockRepairService)
	r := setupRepairRouter(svc)

	svc.On("EndRepair", mock.Anything, "AST_1001").Return(ErrNoOpenRepair)

	req := httptest.NewRequest(http.MethodPost, "/repairs/end", strings.NewReader(`{"assetId":"AST_1001"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	svc.AssertExpectations(t)
}

func TestRepairHandler_ActiveRepair_NotFound(t *testing.T) {
	svc := new(mockRepairService)
	r := setupRepairRouter(svc)

	svc.On("ActiveRepair", mock.Anything, "AST_1001").Return(Record{}, ErrNoOpenRepair)

	req := httptest.NewRequest(http.MethodGet, "/repairs/active/AST_1001", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	svc.AssertExpectations(t)
}

func TestRepairHandler_AvailableLoaners_Success(t *testing.T) {
	svc := new(mockRepairService)
	r := setupRepairRouter(svc)

	loaners := []Loaner{{AssetID: "AST_1002", SerialNumber: "SN-2", Brand: "Acme", Model: "X1"}}
	svc.On("AvailableLoaners", mock.Anything, "Laptop", "AST_1001").Return(loaners, nil)

	req := httptest.NewRequest(http.MethodGet, "/repairs/loaners?type=Laptop&exclude=AST_1001", nil)
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

func TestRepairHandler_AvailableLoaners_MissingType(t *testing.T) {
	svc := new(mockRepairService)
	r := setupRepairRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/repairs/loaners", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "AvailableLoaners", mock.Anything, mock.Anything, mock.Anything)
}
