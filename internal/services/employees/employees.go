package employees

import (
	"context"
	"log/slog"

	"github.com/UnknownOlympus/hestia/internal/lib/logger/sl"
	"github.com/UnknownOlympus/hestia/internal/models"
	"github.com/UnknownOlympus/hestia/internal/repository"
)

// Service is the set of operations offered on employee records.
type Service interface {
	CreateEmployee(ctx context.Context, employee models.Employee) (models.Employee, error)
	GetAllEmployees(ctx context.Context) ([]models.Employee, error)
	GetEmployeeByID(ctx context.Context, identifier string) (*models.Employee, error)
	GetEmployeesByDepartment(ctx context.Context, department string) ([]models.Employee, error)
	UpdateEmployee(ctx context.Context, identifier string, employee models.Employee) (*models.Employee, error)
	DeleteEmployee(ctx context.Context, identifier string) error
}

// Staff forwards every operation to the employee repository and returns its result unchanged.
type Staff struct {
	log  *slog.Logger
	repo repository.EmployeeRepoIface
}

var _ Service = (*Staff)(nil)

func NewStaff(log *slog.Logger, repo repository.EmployeeRepoIface) *Staff {
	return &Staff{log: log, repo: repo}
}

func (s *Staff) initLogger(opn string) *slog.Logger {
	return s.log.With(
		sl.Op(opn),
		slog.String("division", "employee"),
	)
}

func (s *Staff) CreateEmployee(ctx context.Context, employee models.Employee) (models.Employee, error) {
	s.initLogger("Employee.Create").DebugContext(ctx, "creating employee", "department", employee.Department)

	return s.repo.SaveEmployee(ctx, employee)
}

func (s *Staff) GetAllEmployees(ctx context.Context) ([]models.Employee, error) {
	return s.repo.GetAllEmployees(ctx)
}

// GetEmployeeByID returns nil without an error when the employee does not exist.
func (s *Staff) GetEmployeeByID(ctx context.Context, identifier string) (*models.Employee, error) {
	return s.repo.GetEmployeeByID(ctx, identifier)
}

func (s *Staff) GetEmployeesByDepartment(ctx context.Context, department string) ([]models.Employee, error) {
	return s.repo.GetEmployeesByDepartment(ctx, department)
}

// UpdateEmployee overwrites name, department and salary, then reads the record back by id.
// The returned record is whatever is stored at read time, so a concurrent update or delete
// may be observed instead of the values just written. A missing id yields nil.
func (s *Staff) UpdateEmployee(
	ctx context.Context,
	identifier string,
	employee models.Employee,
) (*models.Employee, error) {
	s.initLogger("Employee.Update").DebugContext(ctx, "updating employee", "id", identifier)

	if err := s.repo.UpdateEmployee(ctx, identifier, employee); err != nil {
		return nil, err
	}

	return s.repo.GetEmployeeByID(ctx, identifier)
}

func (s *Staff) DeleteEmployee(ctx context.Context, identifier string) error {
	s.initLogger("Employee.Delete").DebugContext(ctx, "deleting employee", "id", identifier)

	return s.repo.DeleteEmployee(ctx, identifier)
}
