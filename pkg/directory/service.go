package directory

import (
	"context"

	"go.uber.org/zap"
)

type EmployeeService interface {
	GetEmployee(ctx context.Context, employeeID string) (Employee, error)
	// ListEmployees degrades to an empty list when the store is unreachable;
	// lookups in the read path never fail the caller.
	ListEmployees(ctx context.Context) []Employee
}

type employeeService struct {
	repo   EmployeeRepository
	logger *zap.Logger
}

func NewEmployeeService(repo EmployeeRepository, logger *zap.Logger) EmployeeService {
	return &employeeService{repo: repo, logger: logger}
}

func (s *employeeService) GetEmployee(ctx context.Context, employeeID string) (Employee, error) {
	return s.repo.GetEmployee(ctx, employeeID)
}

func (s *employeeService) ListEmployees(ctx context.Context) []Employee {
	employees, err := s.repo.ListEmployees(ctx)
	if err != nil {
		s.logger.Warn("employee list unavailable, serving empty result", zap.Error(err))
		return []Employee{}
	}
	return employees
}
