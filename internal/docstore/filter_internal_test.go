package docstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterWhere(t *testing.T) {
	t.Parallel()

	t.Run("empty filter matches everything", func(t *testing.T) {
		t.Parallel()

		where, args, err := Filter{}.where(1)

		require.NoError(t, err)
		assert.Empty(t, where)
		assert.Empty(t, args)
		assert.True(t, Filter{}.IsEmpty())
	})

	t.Run("id field targets the key column", func(t *testing.T) {
		t.Parallel()

		where, args, err := Where(IDField).Is("42").where(1)

		require.NoError(t, err)
		assert.Equal(t, " WHERE id = $1", where)
		assert.Equal(t, []any{"42"}, args)
	})

	t.Run("body fields compile to containment", func(t *testing.T) {
		t.Parallel()

		where, args, err := Where("department").Is("IT").where(3)

		require.NoError(t, err)
		assert.Equal(t, " WHERE doc @> $3::jsonb", where)
		assert.Equal(t, []any{`{"department":"IT"}`}, args)
	})

	t.Run("combined filter", func(t *testing.T) {
		t.Parallel()

		filter := Where("department").Is("IT").And(Where(IDField).Is("7")).And(Where("name").Is("Jane"))
		where, args, err := filter.where(2)

		require.NoError(t, err)
		assert.Equal(t, " WHERE id = $2 AND doc @> $3::jsonb", where)
		assert.Equal(t, []any{"7", `{"department":"IT","name":"Jane"}`}, args)
	})

	t.Run("And does not mutate the receiver", func(t *testing.T) {
		t.Parallel()

		base := Where("department").Is("IT")
		_ = base.And(Where("department").Is("HR"))

		_, args, err := base.where(1)
		require.NoError(t, err)
		assert.Equal(t, []any{`{"department":"IT"}`}, args)
	})

	t.Run("unencodable value", func(t *testing.T) {
		t.Parallel()

		_, _, err := Where("bad").Is(make(chan int)).where(1)

		require.ErrorContains(t, err, "failed to encode filter")
	})
}

func TestUpdatePatch(t *testing.T) {
	t.Parallel()

	t.Run("fields are merged", func(t *testing.T) {
		t.Parallel()

		patch, err := Set("name", "Jane Smith").Set("department", "IT").Set("salary", 30000.0).patch()

		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"Jane Smith","department":"IT","salary":30000}`, patch)
	})

	t.Run("empty update is rejected", func(t *testing.T) {
		t.Parallel()

		_, err := Update{}.patch()

		require.ErrorIs(t, err, ErrEmptyUpdate)
	})

	t.Run("id cannot be set", func(t *testing.T) {
		t.Parallel()

		_, err := Set(IDField, "1").patch()

		require.ErrorIs(t, err, ErrImmutableID)
	})

	t.Run("Set does not mutate the receiver", func(t *testing.T) {
		t.Parallel()

		base := Set("name", "John")
		_ = base.Set("name", "Jane")

		patch, err := base.patch()
		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"John"}`, patch)
	})
}
