package repository

import (
	"context"
	"time"

	"github.com/UnknownOlympus/hestia/internal/docstore"
	"github.com/UnknownOlympus/hestia/internal/metrics"
	"github.com/UnknownOlympus/hestia/internal/models"
)

// EmployeesCollection is the document table holding employee records.
const EmployeesCollection = "employees"

type Repository struct {
	employees *docstore.Collection
	metrics   *metrics.Metrics
}

// EmployeeRepoIface represents the interface for interacting with employee data in the repository.
type EmployeeRepoIface interface {
	SaveEmployee(ctx context.Context, employee models.Employee) (models.Employee, error)
	GetAllEmployees(ctx context.Context) ([]models.Employee, error)
	GetEmployeeByID(ctx context.Context, identifier string) (*models.Employee, error)
	GetEmployeesByDepartment(ctx context.Context, department string) ([]models.Employee, error)
	UpdateEmployee(ctx context.Context, identifier string, employee models.Employee) error
	DeleteEmployee(ctx context.Context, identifier string) error
}

func NewEmployeeRepository(db Database, metrics *metrics.Metrics) EmployeeRepoIface {
	return &Repository{
		employees: docstore.NewCollection(db, EmployeesCollection),
		metrics:   metrics,
	}
}

// observe records the duration of a query and counts it as failed when err is set.
func (r *Repository) observe(queryType string, startTime time.Time, err error) {
	if r.metrics == nil {
		return
	}

	r.metrics.DBQueryDuration.WithLabelValues(queryType).Observe(time.Since(startTime).Seconds())
	if err != nil {
		r.metrics.DBQueryErrors.WithLabelValues(queryType).Inc()
	}
}
