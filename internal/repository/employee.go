package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/UnknownOlympus/hestia/internal/docstore"
	"github.com/UnknownOlympus/hestia/internal/models"
)

// employeeDocument is the stored body of an employee; the id lives in the key column.
type employeeDocument struct {
	Name       string  `json:"name"`
	Department string  `json:"department"`
	Salary     float64 `json:"salary"`
}

func toDocument(employee models.Employee) employeeDocument {
	return employeeDocument{
		Name:       employee.Name,
		Department: employee.Department,
		Salary:     employee.Salary,
	}
}

func fromDocument(doc docstore.Document) (models.Employee, error) {
	var body employeeDocument
	if err := doc.Decode(&body); err != nil {
		return models.Employee{}, err
	}

	return models.Employee{
		ID:         doc.ID,
		Name:       body.Name,
		Department: body.Department,
		Salary:     body.Salary,
	}, nil
}

func fromDocuments(docs []docstore.Document) ([]models.Employee, error) {
	result := make([]models.Employee, 0, len(docs))
	for _, doc := range docs {
		employee, err := fromDocument(doc)
		if err != nil {
			return nil, err
		}
		result = append(result, employee)
	}

	return result, nil
}

// SaveEmployee inserts a new employee document. The store assigns the id unless the employee already carries one.
func (r *Repository) SaveEmployee(ctx context.Context, employee models.Employee) (saved models.Employee, err error) {
	startTime := time.Now()
	defer func() {
		r.observe("save_employee", startTime, err)
	}()

	doc, err := r.employees.Insert(ctx, employee.ID, toDocument(employee))
	if err != nil {
		return models.Employee{}, fmt.Errorf("failed to save employee: %w", err)
	}

	saved, err = fromDocument(doc)
	if err != nil {
		return models.Employee{}, fmt.Errorf("failed to save employee: %w", err)
	}

	return saved, nil
}

// GetAllEmployees returns every stored employee in no particular order.
func (r *Repository) GetAllEmployees(ctx context.Context) (employees []models.Employee, err error) {
	startTime := time.Now()
	defer func() {
		r.observe("get_all_employees", startTime, err)
	}()

	docs, err := r.employees.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get employees: %w", err)
	}

	employees, err = fromDocuments(docs)
	if err != nil {
		return nil, fmt.Errorf("failed to get employees: %w", err)
	}

	return employees, nil
}

// GetEmployeeByID retrieves an employee by id. A missing employee yields nil without an error.
func (r *Repository) GetEmployeeByID(ctx context.Context, identifier string) (result *models.Employee, err error) {
	startTime := time.Now()
	defer func() {
		r.observe("get_employee_by_id", startTime, err)
	}()

	doc, found, err := r.employees.FindByID(ctx, identifier)
	if err != nil {
		return nil, fmt.Errorf("failed to get employee by id: %w", err)
	}
	if !found {
		return nil, nil
	}

	employee, err := fromDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to get employee by id: %w", err)
	}

	return &employee, nil
}

// GetEmployeesByDepartment returns the employees whose department equals the given value.
func (r *Repository) GetEmployeesByDepartment(
	ctx context.Context,
	department string,
) (employees []models.Employee, err error) {
	startTime := time.Now()
	defer func() {
		r.observe("get_employees_by_department", startTime, err)
	}()

	docs, err := r.employees.Find(ctx, docstore.Where("department").Is(department))
	if err != nil {
		return nil, fmt.Errorf("failed to get employees by department: %w", err)
	}

	employees, err = fromDocuments(docs)
	if err != nil {
		return nil, fmt.Errorf("failed to get employees by department: %w", err)
	}

	return employees, nil
}

// UpdateEmployee overwrites name, department and salary of the employee with the given id.
// Updating an id that does not exist affects nothing and is not reported.
func (r *Repository) UpdateEmployee(ctx context.Context, identifier string, employee models.Employee) (err error) {
	startTime := time.Now()
	defer func() {
		r.observe("update_employee", startTime, err)
	}()

	update := docstore.Set("name", employee.Name).
		Set("department", employee.Department).
		Set("salary", employee.Salary)

	if _, err = r.employees.UpdateFirst(ctx, docstore.Where(docstore.IDField).Is(identifier), update); err != nil {
		return fmt.Errorf("failed to update employee data: %w", err)
	}

	return nil
}

// DeleteEmployee removes the employee with the given id. Deleting an absent id succeeds.
func (r *Repository) DeleteEmployee(ctx context.Context, identifier string) (err error) {
	startTime := time.Now()
	defer func() {
		r.observe("delete_employee", startTime, err)
	}()

	if _, err = r.employees.Remove(ctx, docstore.Where(docstore.IDField).Is(identifier)); err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	return nil
}
