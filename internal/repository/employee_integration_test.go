//go:build integration

package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/UnknownOlympus/hestia/internal/models"
	"github.com/UnknownOlympus/hestia/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()

	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("hestia"),
		postgres.WithUsername("hestia"),
		postgres.WithPassword("hestia"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if termErr := container.Terminate(context.Background()); termErr != nil {
			t.Logf("failed to terminate container: %v", termErr)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	dtb := stdlib.OpenDBFromPool(pool)
	t.Cleanup(func() { _ = dtb.Close() })
	require.NoError(t, goose.SetDialect("postgres"))
	require.NoError(t, goose.Up(dtb, "../../migrations"))

	return pool
}

func TestEmployeeRepository_Integration(t *testing.T) {
	pool := startPostgres(t)
	repo := repository.NewEmployeeRepository(pool, nil)
	ctx := context.Background()

	john, err := repo.SaveEmployee(ctx, models.Employee{Name: "John Doe", Department: "IT"})
	require.NoError(t, err)
	require.NotEmpty(t, john.ID)
	assert.Equal(t, "John Doe", john.Name)
	assert.Equal(t, "IT", john.Department)
	assert.Zero(t, john.Salary)

	t.Run("read back after create", func(t *testing.T) {
		found, err := repo.GetEmployeeByID(ctx, john.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, john, *found)
	})

	t.Run("department lookup returns exactly the matching subset", func(t *testing.T) {
		_, err := repo.SaveEmployee(ctx, models.Employee{Name: "Mary", Department: "HR", Salary: 28000})
		require.NoError(t, err)
		ann, err := repo.SaveEmployee(ctx, models.Employee{Name: "Ann", Department: "IT", Salary: 31000})
		require.NoError(t, err)

		itStaff, err := repo.GetEmployeesByDepartment(ctx, "IT")
		require.NoError(t, err)
		assert.ElementsMatch(t, []models.Employee{john, ann}, itStaff)

		none, err := repo.GetEmployeesByDepartment(ctx, "Legal")
		require.NoError(t, err)
		assert.Empty(t, none)

		all, err := repo.GetAllEmployees(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})

	t.Run("update overwrites the fixed field set", func(t *testing.T) {
		require.NoError(t, repo.UpdateEmployee(ctx, john.ID,
			models.Employee{Name: "Jane Smith", Department: "IT", Salary: 30000}))

		found, err := repo.GetEmployeeByID(ctx, john.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, models.Employee{ID: john.ID, Name: "Jane Smith", Department: "IT", Salary: 30000}, *found)
	})

	t.Run("update of an unknown id is silent", func(t *testing.T) {
		require.NoError(t, repo.UpdateEmployee(ctx, "does-not-exist", models.Employee{Name: "Ghost"}))

		found, err := repo.GetEmployeeByID(ctx, "does-not-exist")
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		require.NoError(t, repo.DeleteEmployee(ctx, john.ID))
		require.NoError(t, repo.DeleteEmployee(ctx, john.ID))

		found, err := repo.GetEmployeeByID(ctx, john.ID)
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}
