package catalog

import (
	"context"

	"go.uber.org/zap"
)

// builtinTypes is the degraded-mode type list served when the store has no
// asset types or cannot be reached.
var builtinTypes = []string{
	"Laptop", "Desktop", "Monitor", "Keyboard", "Mouse", "Printer",
	"Scanner", "Server", "Router", "Switch", "UPS", "Projector",
	"Tablet", "Mobile Phone", "Headset", "Webcam", "External Hard Drive", "Other",
}

type AssetService interface {
	// ListTypes returns all known asset types; fromFallback reports whether
	// the built-in list was served instead of store rows.
	ListTypes(ctx context.Context) (types []string, fromFallback bool)
	ListSpecSchemas(ctx context.Context) (map[string][]SpecField, error)
	SpecSchemaFor(ctx context.Context, typeName string) ([]SpecField, error)
	CreateAsset(ctx context.Context, input CreateAssetInput, specs map[string]string) (string, error)
	GetAsset(ctx context.Context, assetID string) (AssetView, error)
	ListAssets(ctx context.Context) ([]AssetView, error)
	DeleteAssets(ctx context.Context, assetIDs []string) (int64, error)
	AssignmentHistory(ctx context.Context, assetID string) ([]HistoryEntry, error)
	AllAssignmentHistory(ctx context.Context) (map[string][]HistoryEntry, error)
}

type assetService struct {
	repo   AssetRepository
	logger *zap.Logger
}

func NewAssetService(repo AssetRepository, logger *zap.Logger) AssetService {
	return &assetService{repo: repo, logger: logger}
}

func (s *assetService) ListTypes(ctx context.Context) ([]string, bool) {
	types, err := s.repo.ListTypes(ctx)
	if err != nil {
		s.logger.Warn("type list unavailable, serving built-in fallback", zap.Error(err))
		return builtinTypes, true
	}
	if len(types) == 0 {
		return builtinTypes, true
	}
	return types, false
}

func (s *assetService) ListSpecSchemas(ctx context.Context) (map[string][]SpecField, error) {
	return s.repo.ListSpecSchemas(ctx)
}

func (s *assetService) SpecSchemaFor(ctx context.Context, typeName string) ([]SpecField, error) {
	return s.repo.SpecSchemaFor(ctx, typeName)
}

func (s *assetService) CreateAsset(ctx context.Context, input CreateAssetInput, specs map[string]string) (string, error) {
	return s.repo.CreateAsset(ctx, input, specs)
}

func (s *assetService) GetAsset(ctx context.Context, assetID string) (AssetView, error) {
	return s.repo.GetAsset(ctx, assetID)
}

func (s *assetService) ListAssets(ctx context.Context) ([]AssetView, error) {
	return s.repo.ListAssets(ctx)
}

func (s *assetService) DeleteAssets(ctx context.Context, assetIDs []string) (int64, error) {
	return s.repo.DeleteAssets(ctx, assetIDs)
}

func (s *assetService) AssignmentHistory(ctx context.Context, assetID string) ([]HistoryEntry, error) {
	return s.repo.AssignmentHistory(ctx, assetID)
}

func (s *assetService) AllAssignmentHistory(ctx context.Context) (map[string][]HistoryEntry, error) {
	return s.repo.AllAssignmentHistory(ctx)
}
