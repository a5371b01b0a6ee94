package repair

import "context"

type RepairService interface {
	StartRepair(ctx context.Context, input StartRepairInput) (Record, error)
	EndRepair(ctx context.Context, assetID string) error
	ActiveRepair(ctx context.Context, assetID string) (Record, error)
	AvailableLoaners(ctx context.Context, assetType, excludeAssetID string) ([]Loaner, error)
}

type repairService struct {
	repo RepairRepository
}

func NewRepairService(repo RepairRepository) RepairService {
	return &repairService{repo: repo}
}

func (s *repairService) StartRepair(ctx context.Context, input StartRepairInput) (Record, error) {
	return s.repo.StartRepair(ctx, input)
}

func (s *repairService) EndRepair(ctx context.Context, assetID string) error {
	return s.repo.EndRepair(ctx, assetID)
}

func (s *repairService) ActiveRepair(ctx context.Context, assetID string) (Record, error) {
	return s.repo.ActiveRepair(ctx, assetID)
}

func (s *repairService) AvailableLoaners(ctx context.Context, assetType, excludeAssetID string) ([]Loaner, error) {
	return s.repo.AvailableLoaners(ctx, assetType, excludeAssetID)
}
