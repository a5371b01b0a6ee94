package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockAssetRepository struct {
	mock.Mock
}

func (m *mockAssetRepository) ListTypes(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	types, _ := args.Get(0).([]string)
	return types, args.Error(1)
}

func (m *mockAssetRepository) ListSpecSchemas(ctx context.Context) (map[string][]SpecField, error) {
	args := m.Called(ctx)
	schemas, _ := args.Get(0).(map[string][]SpecField)
	return schemas, args.Error(1)
}

func (m *mockAssetRepository) SpecSchemaFor(ctx context.Context, typeName string) ([]SpecField, error) {
	args := m.Called(ctx, typeName)
	fields, _ := args.Get(0).([]SpecField)
	return fields, args.Error(1)
}

func (m *mockAssetRepository) CreateAsset(ctx context.Context, input CreateAssetInput, specs map[string]string) (string, error) {
	args := m.Called(ctx, input, specs)
	return args.String(0), args.Error(1)
}

func (m *mockAssetRepository) GetAsset(ctx context.Context, assetID string) (AssetView, error) {
	args := m.Called(ctx, assetID)
	view, _ := args.Get(0).(AssetView)
	return view, args.Error(1)
}

func (m *mockAssetRepository) ListAssets(ctx context.Context) ([]AssetView, error) {
	args := m.Called(ctx)
	views, _ := args.Get(0).([]AssetView)
	return views, args.Error(1)
}

func (m *mockAssetRepository) DeleteAssets(ctx context.Context, assetIDs []string) (int64, error) {
	args := m.Called(ctx, assetIDs)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockAssetRepository) AssignmentHistory(ctx context.Context, assetID string) ([]HistoryEntry, error) {
	args := m.Called(ctx, assetID)
	history, _ := args.Get(0).([]HistoryEntry)
	return history, args.Error(1)
}

func (m *mockAssetRepository) AllAssignmentHistory(ctx context.Context) (map[string][]HistoryEntry, error) {
	args := m.Called(ctx)
	history, _ := args.Get(0).(map[string][]HistoryEntry)
	return history, args.Error(1)
}

func TestAssetService_ListTypes_FromStore(t *testing.T) {
	repo := new(mockAssetRepository)
	service := NewAssetService(repo, zap.NewNop())

	repo.On("ListTypes", mock.Anything).Return([]string{"Laptop", "Monitor"}, nil)

	types, fromFallback := service.ListTypes(context.Background())

	require.False(t, fromFallback)
	require.Equal(t, []string{"Laptop", "Monitor"}, types)
	repo.AssertExpectations(t)
}

func TestAssetService_ListTypes_FallbackOnError(t *testing.T) {
	repo := new(mockAssetRepository)
	service := NewAssetService(repo, zap.NewNop())

	repo.On("ListTypes", mock.Anything).Return(nil, errors.New("store unavailable"))

	types, fromFallback := service.ListTypes(context.Background())

	require.True(t, fromFallback)
	require.Equal(t, builtinTypes, types)
	repo.AssertExpectations(t)
}

func TestAssetService_ListTypes_FallbackOnEmpty(t *testing.T) {
	repo := new(mockAssetRepository)
	service := NewAssetService(repo, zap.NewNop())

	repo.On("ListTypes", mock.Anything).Return([]string{}, nil)

	types, fromFallback := service.ListTypes(context.Background())

	require.True(t, fromFallback)
	require.Equal(t, builtinTypes, types)
	repo.AssertExpectations(t)
}

func TestAssetService_CreateAsset_Delegates(t *testing.T) {
	repo := new(mockAssetRepository)
	service := NewAssetService(repo, zap.NewNop())

	input := CreateAssetInput{AssetType: "Laptop", SerialNumber: "SN-1", Brand: "Acme", Model: "X1"}
	specs := map[string]string{"ram": "16GB"}
	repo.On("CreateAsset", mock.Anything, input, specs).Return("AST_1001", nil)

	assetID, err := service.CreateAsset(context.Background(), input, specs)

	require.NoError(t, err)
	require.Equal(t, "AST_1001", assetID)
	repo.AssertExpectations(t)
}

func TestAssetService_GetAsset_NotFoundPassthrough(t *testing.T) {
	repo := new(mockAssetRepository)
	service := NewAssetService(repo, zap.NewNop())

	repo.On("GetAsset", mock.Anything, "AST_9999").Return(AssetView{}, ErrAssetNotFound)

	_, err := service.GetAsset(context.Background(), "AST_9999")

	require.ErrorIs(t, err, ErrAssetNotFound)
	repo.AssertExpectations(t)
}

func TestAssetService_DeleteAssets_Delegates(t *testing.T) {
	repo := new(mockAssetRepository)
	service := NewAssetService(repo, zap.NewNop())

	ids := []string{"AST_1001", "AST_1002", "AST_1001"}
	repo.On("DeleteAssets", mock.Anything, ids).Return(int64(2), nil)

	deleted, err := service.DeleteAssets(context.Background(), ids)

	require.NoError(t, err)
	require.EqualValues(t, 2, deleted)
	repo.AssertExpectations(t)
}
