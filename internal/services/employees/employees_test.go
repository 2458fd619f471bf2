package employees_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/UnknownOlympus/hestia/internal/models"
	"github.com/UnknownOlympus/hestia/internal/services/employees"
	mocks "github.com/UnknownOlympus/hestia/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newStaff(t *testing.T) (*employees.Staff, *mocks.EmployeeRepoIface) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := mocks.NewEmployeeRepoIface(t)

	return employees.NewStaff(logger, repo), repo
}

func TestNewStaff(t *testing.T) {
	t.Parallel()

	s := employees.NewStaff(slog.Default(), new(mocks.EmployeeRepoIface))

	assert.NotNil(t, s)
}

func TestCreateEmployee(t *testing.T) {
	t.Parallel()

	t.Run("returns the stored record", func(t *testing.T) {
		t.Parallel()

		staff, repo := newStaff(t)
		input := models.Employee{Name: "John Doe", Department: "IT", Salary: 30000}
		stored := models.Employee{ID: "1", Name: "John Doe", Department: "IT", Salary: 30000}
		repo.On("SaveEmployee", mock.Anything, input).Return(stored, nil).Once()

		got, err := staff.CreateEmployee(context.Background(), input)

		require.NoError(t, err)
		assert.Equal(t, stored, got)
	})

	t.Run("propagates the repository error unchanged", func(t *testing.T) {
		t.Parallel()

		staff, repo := newStaff(t)
		repo.On("SaveEmployee", mock.Anything, mock.Anything).Return(models.Employee{}, assert.AnError).Once()

		_, err := staff.CreateEmployee(context.Background(), models.Employee{})

		require.Equal(t, assert.AnError, err)
	})
}

func TestGetAllEmployees(t *testing.T) {
	t.Parallel()

	staff, repo := newStaff(t)
	all := []models.Employee{
		{ID: "1", Name: "John Doe", Department: "IT", Salary: 30000},
		{ID: "2", Name: "Jane Smith", Department: "HR", Salary: 28000},
	}
	repo.On("GetAllEmployees", mock.Anything).Return(all, nil).Once()

	got, err := staff.GetAllEmployees(context.Background())

	require.NoError(t, err)
	assert.Equal(t, all, got)
}

func TestGetEmployeeByID(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		t.Parallel()

		staff, repo := newStaff(t)
		employee := &models.Employee{ID: "1", Name: "John Doe", Department: "IT", Salary: 30000}
		repo.On("GetEmployeeByID", mock.Anything, "1").Return(employee, nil).Once()

		got, err := staff.GetEmployeeByID(context.Background(), "1")

		require.NoError(t, err)
		assert.Equal(t, employee, got)
	})

	t.Run("absent", func(t *testing.T) {
		t.Parallel()

		staff, repo := newStaff(t)
		repo.On("GetEmployeeByID", mock.Anything, "404").Return(nil, nil).Once()

		got, err := staff.GetEmployeeByID(context.Background(), "404")

		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestGetEmployeesByDepartment(t *testing.T) {
	t.Parallel()

	staff, repo := newStaff(t)
	itStaff := []models.Employee{
		{ID: "1", Name: "John", Department: "IT", Salary: 30000},
		{ID: "2", Name: "Jane", Department: "IT", Salary: 28000},
	}
	repo.On("GetEmployeesByDepartment", mock.Anything, "IT").Return(itStaff, nil).Once()

	got, err := staff.GetEmployeesByDepartment(context.Background(), "IT")

	require.NoError(t, err)
	assert.Equal(t, itStaff, got)
}

func TestUpdateEmployee(t *testing.T) {
	t.Parallel()

	t.Run("writes then reads back", func(t *testing.T) {
		t.Parallel()

		staff, repo := newStaff(t)
		payload := models.Employee{Name: "Jane Smith", Department: "IT", Salary: 30000}
		stored := &models.Employee{ID: "1", Name: "Jane Smith", Department: "IT", Salary: 30000}

		update := repo.On("UpdateEmployee", mock.Anything, "1", payload).Return(nil).Once()
		repo.On("GetEmployeeByID", mock.Anything, "1").Return(stored, nil).Once().NotBefore(update)

		got, err := staff.UpdateEmployee(context.Background(), "1", payload)

		require.NoError(t, err)
		assert.Equal(t, stored, got)
	})

	t.Run("returns what the re-read observes", func(t *testing.T) {
		t.Parallel()

		staff, repo := newStaff(t)
		payload := models.Employee{Name: "Jane Smith", Department: "IT", Salary: 30000}
		concurrent := &models.Employee{ID: "1", Name: "Someone Else", Department: "Ops", Salary: 1}

		repo.On("UpdateEmployee", mock.Anything, "1", payload).Return(nil).Once()
		repo.On("GetEmployeeByID", mock.Anything, "1").Return(concurrent, nil).Once()

		got, err := staff.UpdateEmployee(context.Background(), "1", payload)

		require.NoError(t, err)
		assert.Equal(t, concurrent, got)
	})

	t.Run("unknown id yields nil", func(t *testing.T) {
		t.Parallel()

		staff, repo := newStaff(t)
		repo.On("UpdateEmployee", mock.Anything, "missing", mock.Anything).Return(nil).Once()
		repo.On("GetEmployeeByID", mock.Anything, "missing").Return(nil, nil).Once()

		got, err := staff.UpdateEmployee(context.Background(), "missing", models.Employee{Name: "Ghost"})

		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("write failure skips the re-read", func(t *testing.T) {
		t.Parallel()

		staff, repo := newStaff(t)
		repo.On("UpdateEmployee", mock.Anything, "1", mock.Anything).Return(assert.AnError).Once()

		got, err := staff.UpdateEmployee(context.Background(), "1", models.Employee{})

		require.ErrorIs(t, err, assert.AnError)
		assert.Nil(t, got)
		repo.AssertNotCalled(t, "GetEmployeeByID", mock.Anything, mock.Anything)
	})
}

func TestDeleteEmployee(t *testing.T) {
	t.Parallel()

	staff, repo := newStaff(t)
	repo.On("DeleteEmployee", mock.Anything, "1").Return(nil).Twice()

	require.NoError(t, staff.DeleteEmployee(context.Background(), "1"))
	require.NoError(t, staff.DeleteEmployee(context.Background(), "1"))
}
