// Package membertest provides a behavioural test suite shared by every
// member.Store implementation.
package membertest

import (
	"context"
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/member-pricing/internal/domain/member"
)

// CleanupFunc releases resources held by a store under test.
type CleanupFunc = func()

// StoreFactory returns a fresh, empty store.
type StoreFactory func(t *testing.T) (member.Store, CleanupFunc)

// RunStore runs the store contract against stores produced by newStore.
func RunStore(t *testing.T, newStore StoreFactory) {
	t.Helper()

	open := func(t *testing.T) member.Store {
		t.Helper()
		s, cleanup := newStore(t)
		if cleanup != nil {
			t.Cleanup(cleanup)
		}
		return s
	}

	t.Run("SaveThenFind", func(t *testing.T) {
		ctx := context.Background()
		s := open(t)
		m := member.New(1, "memberA", member.GradePriority)

		require.NoError(t, s.Save(ctx, m))

		got, err := s.FindByID(ctx, m.ID)
		require.NoError(t, err)
		assert.Equal(t, m, got)
	})

	t.Run("FindUnknownReturnsNotFound", func(t *testing.T) {
		ctx := context.Background()
		s := open(t)

		_, err := s.FindByID(ctx, 42)
		require.ErrorIs(t, err, member.ErrNotFound)

		var nf *member.NotFoundError
		require.True(t, errors.As(err, &nf))
		assert.Equal(t, member.ID(42), nf.ID)
	})

	t.Run("SaveTwiceIsIdempotent", func(t *testing.T) {
		ctx := context.Background()
		s := open(t)
		m := member.New(7, "memberB", member.GradeStandard)

		require.NoError(t, s.Save(ctx, m))
		require.NoError(t, s.Save(ctx, m))

		got, err := s.FindByID(ctx, m.ID)
		require.NoError(t, err)
		assert.Equal(t, m, got)
	})

	t.Run("LastSaveWins", func(t *testing.T) {
		ctx := context.Background()
		s := open(t)

		require.NoError(t, s.Save(ctx, member.New(3, "before", member.GradeStandard)))
		require.NoError(t, s.Save(ctx, member.New(3, "after", member.GradePriority)))

		got, err := s.FindByID(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, member.New(3, "after", member.GradePriority), got)
	})

	t.Run("IDsAreIndependent", func(t *testing.T) {
		ctx := context.Background()
		s := open(t)
		a := member.New(1, "A", member.GradePriority)
		b := member.New(2, "B", member.GradeStandard)

		require.NoError(t, s.Save(ctx, a))
		require.NoError(t, s.Save(ctx, b))

		got, err := s.FindByID(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, a, got)

		got, err = s.FindByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, b, got)
	})
}
