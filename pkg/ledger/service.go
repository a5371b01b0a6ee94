package ledger

import "context"

type LedgerService interface {
	Reassign(ctx context.Context, input ReassignInput) error
}

type ledgerService struct {
	repo LedgerRepository
}

func NewLedgerService(repo LedgerRepository) LedgerService {
	return &ledgerService{repo: repo}
}

func (s *ledgerService) Reassign(ctx context.Context, input ReassignInput) error {
	return s.repo.Reassign(ctx, input)
}
