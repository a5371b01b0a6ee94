package directory

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var ErrEmployeeNotFound = errors.New("employee not found")

// EmployeeRepository is read-only: employee rows are owned by the HR import,
// this core only resolves them.
type EmployeeRepository interface {
	GetEmployee(ctx context.Context, employeeID string) (Employee, error)
	ListEmployees(ctx context.Context) ([]Employee, error)
}

type postgresEmployeeRepository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgresEmployeeRepository(pool *pgxpool.Pool, logger *zap.Logger) EmployeeRepository {
	return &postgresEmployeeRepository{pool: pool, logger: logger}
}

func (r *postgresEmployeeRepository) GetEmployee(ctx context.Context, employeeID string) (Employee, error) {
	query := `SELECT employee_id, COALESCE(name, ''), COALESCE(department, ''), COALESCE(email, '')
              FROM employees
              WHERE employee_id = $1`

	var e Employee
	err := r.pool.QueryRow(ctx, query, employeeID).Scan(&e.EmployeeID, &e.Name, &e.Department, &e.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Employee{}, ErrEmployeeNotFound
		}
		return Employee{}, err
	}
	return e, nil
}

func (r *postgresEmployeeRepository) ListEmployees(ctx context.Context) ([]Employee, error) {
	query := `SELECT employee_id, COALESCE(name, ''), COALESCE(department, ''), COALESCE(email, '')
              FROM employees
              ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make([]Employee, 0)
	for rows.Next() {
		var e Employee
		if err := rows.Scan(&e.EmployeeID, &e.Name, &e.Department, &e.Email); err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}
