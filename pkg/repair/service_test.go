package repair

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepairRepository struct {
	mock.Mock
}

func (m *mockRepairRepository) StartRepair(ctx context.Context, input StartRepairInput) (Record, error) {
	args := m.Called(ctx, input)
	record, _ := args.Get(0).(Record)
	return record, args.Error(1)
}

func (m *mockRepairRepository) EndRepair(ctx context.Context, assetID string) error {
	args := m.Called(ctx, assetID)
	return args.Error(0)
}

func (m *mockRepairRepository) ActiveRepair(ctx context.Context, assetID string) (Record, error) {
	args := m.Called(ctx, assetID)
	record, _ := args.Get(0).(Record)
	return record, args.Error(1)
}

func (m *mockRepairRepository) AvailableLoaners(ctx context.Context, assetType, excludeAssetID string) ([]Loaner, error) {
	args := m.Called(ctx, assetType, excludeAssetID)
	loaners, _ := args.Get(0).([]Loaner)
	return loaners, args.Error(1)
}

func TestRepairService_StartRepair_Delegates(t *testing.T) {
	repo := new(mockRepairRepository)
	service := NewRepairService(repo)

	input := StartRepairInput{AssetID: "AST_1001", Details: "screen flicker"}
	repo.On("StartRepair", mock.Anything, input).Return(Record{ID: 7, AssetID: "AST_1001"}, nil)

	record, err := service.StartRepair(context.Background(), input)

	require.NoError(t, err)
	require.EqualValues(t, 7, record.ID)
	repo.AssertExpectations(t)
}

func TestRepairService_EndRepair_ErrorPassthrough(t *testing.T) {
	repo := new(mockRepairRepository)
	service := NewRepairService(repo)

	repo.On("EndRepair", mock.Anything, "AST_1001").Return(ErrNoOpenRepair)

	err := service.EndRepair(context.Background(), "AST_1001")

	require.ErrorIs(t, err, ErrNoOpenRepair)
	repo.AssertExpectations(t)
}

func TestRepairService_AvailableLoaners_Delegates(t *testing.T) {
	repo := new(mockRepairRepository)
	service := NewRepairService(repo)

	expected := []Loaner{{AssetID: "AST_1002", SerialNumber: "SN-2", Brand: "Acme", Model: "X1"}}
	repo.On("AvailableLoaners", mock.Anything, "Laptop", "AST_1001").Return(expected, nil)

	loaners, err := service.AvailableLoaners(context.Background(), "Laptop", "AST_1001")

	require.NoError(t, err)
	require.Equal(t, expected, loaners)
	repo.AssertExpectations(t)
}
