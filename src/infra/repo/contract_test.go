package repo

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resourcehub/src/core/domain"
	"resourcehub/src/core/ports"
)

// runRepositoryContract exercises the behaviour every ResourceRepository must share.
// newRepo must return an empty repository.
func runRepositoryContract(t *testing.T, newRepo func(t *testing.T) ports.ResourceRepository) {
	ctx := context.Background()

	insert := func(t *testing.T, repo ports.ResourceRepository, name string) *domain.Resource {
		t.Helper()
		res, err := repo.Insert(ctx, domain.Resource{
			Name:        name,
			Description: name + " description",
			Quantity:    3,
			UnitPrice:   decimal.RequireFromString("1.25"),
		})
		require.NoError(t, err)
		return res
	}

	t.Run("insert assigns id and timestamps", func(t *testing.T) {
		repo := newRepo(t)
		res := insert(t, repo, "alpha")

		assert.Positive(t, res.ID)
		assert.False(t, res.CreatedAt.IsZero())

		got, err := repo.FindByID(ctx, res.ID)
		require.NoError(t, err)
		assert.Equal(t, "alpha", got.Name)
		assert.Equal(t, 3, got.Quantity)
		assert.True(t, decimal.RequireFromString("1.25").Equal(got.UnitPrice))
	})

	t.Run("ids are monotonic and not reused after delete", func(t *testing.T) {
		repo := newRepo(t)
		a := insert(t, repo, "a")
		b := insert(t, repo, "b")
		require.Greater(t, b.ID, a.ID)

		require.NoError(t, repo.Delete(ctx, b.ID))
		c := insert(t, repo, "c")
		assert.Greater(t, c.ID, b.ID)
	})

	t.Run("find unknown id", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.FindByID(ctx, 987654321)
		assert.True(t, domain.IsNotFound(err))
	})

	t.Run("pages follow insertion order", func(t *testing.T) {
		repo := newRepo(t)
		for _, n := range []string{"one", "two", "three"} {
			insert(t, repo, n)
		}

		first, total, err := repo.FindPage(ctx, 1, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, first, 2)
		assert.Equal(t, "one", first[0].Name)
		assert.Equal(t, "two", first[1].Name)

		second, total, err := repo.FindPage(ctx, 2, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, second, 1)
		assert.Equal(t, "three", second[0].Name)

		beyond, total, err := repo.FindPage(ctx, 3, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.NotNil(t, beyond)
		assert.Empty(t, beyond)

		huge, total, err := repo.FindPage(ctx, math.MaxInt, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.NotNil(t, huge)
		assert.Empty(t, huge)
	})

	t.Run("replace keeps id and created_at", func(t *testing.T) {
		repo := newRepo(t)
		orig := insert(t, repo, "before")

		got, err := repo.Replace(ctx, orig.ID, domain.Resource{ID: 999, Name: "after"})
		require.NoError(t, err)
		assert.Equal(t, orig.ID, got.ID)
		assert.True(t, orig.CreatedAt.Equal(got.CreatedAt))
		assert.Equal(t, "after", got.Name)
		assert.Empty(t, got.Description)
		assert.Zero(t, got.Quantity)

		_, err = repo.Replace(ctx, orig.ID+1000, domain.Resource{Name: "x"})
		assert.True(t, domain.IsNotFound(err))
	})

	t.Run("update applies mutation", func(t *testing.T) {
		repo := newRepo(t)
		orig := insert(t, repo, "counter")

		got, err := repo.Update(ctx, orig.ID, func(cur domain.Resource) (domain.Resource, error) {
			cur.Quantity = 10
			return cur, nil
		})
		require.NoError(t, err)
		assert.Equal(t, 10, got.Quantity)
		assert.Equal(t, "counter", got.Name)
		assert.True(t, orig.CreatedAt.Equal(got.CreatedAt))
	})

	t.Run("update aborted by mutation error leaves record untouched", func(t *testing.T) {
		repo := newRepo(t)
		orig := insert(t, repo, "stable")
		boom := errors.New("boom")

		_, err := repo.Update(ctx, orig.ID, func(cur domain.Resource) (domain.Resource, error) {
			return domain.Resource{}, boom
		})
		assert.ErrorIs(t, err, boom)

		got, err := repo.FindByID(ctx, orig.ID)
		require.NoError(t, err)
		assert.Equal(t, "stable", got.Name)
		assert.Equal(t, 3, got.Quantity)
	})

	t.Run("update unknown id", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.Update(ctx, 424242, func(cur domain.Resource) (domain.Resource, error) {
			return cur, nil
		})
		assert.True(t, domain.IsNotFound(err))
	})

	t.Run("concurrent updates to one id do not lose writes", func(t *testing.T) {
		repo := newRepo(t)
		orig := insert(t, repo, "contended")

		const workers = 20
		var wg sync.WaitGroup
		for range workers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := repo.Update(ctx, orig.ID, func(cur domain.Resource) (domain.Resource, error) {
					cur.Quantity++
					return cur, nil
				})
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		got, err := repo.FindByID(ctx, orig.ID)
		require.NoError(t, err)
		assert.Equal(t, 3+workers, got.Quantity)
	})

	t.Run("delete twice", func(t *testing.T) {
		repo := newRepo(t)
		res := insert(t, repo, "gone")

		require.NoError(t, repo.Delete(ctx, res.ID))
		assert.True(t, domain.IsNotFound(repo.Delete(ctx, res.ID)))

		_, err := repo.FindByID(ctx, res.ID)
		assert.True(t, domain.IsNotFound(err))
	})
}
