package summary

import "context"

type SummaryService interface {
	Summary(ctx context.Context) ([]Row, error)
	ExportXLSX(ctx context.Context) ([]byte, error)
	Healthy(ctx context.Context) bool
}

type summaryService struct {
	repo SummaryRepository
}

func NewSummaryService(repo SummaryRepository) SummaryService {
	return &summaryService{repo: repo}
}

func (s *summaryService) Summary(ctx context.Context) ([]Row, error) {
	return s.repo.Summary(ctx)
}

func (s *summaryService) ExportXLSX(ctx context.Context) ([]byte, error) {
	rows, err := s.repo.Summary(ctx)
	if err != nil {
		return nil, err
	}
	return BuildWorkbook(rows)
}

func (s *summaryService) Healthy(ctx context.Context) bool {
	return s.repo.Ping(ctx) == nil
}
