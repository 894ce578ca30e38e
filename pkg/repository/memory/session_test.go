package memory_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/types"
	"github.com/secmon-lab/themis/pkg/repository/memory"
)

func TestSessionRepository(t *testing.T) {
	t.Run("Create stamps timestamps", func(t *testing.T) {
		repo := memory.New()
		ctx := context.Background()

		created, err := repo.Session().Create(ctx, model.NewSession("s1"))
		gt.NoError(t, err).Required()

		gt.Value(t, created.ID).Equal("s1")
		gt.Bool(t, created.CreatedAt.IsZero()).False()
		gt.Bool(t, created.UpdatedAt.IsZero()).False()
	})

	t.Run("Create rejects empty ID", func(t *testing.T) {
		repo := memory.New()
		ctx := context.Background()

		_, err := repo.Session().Create(ctx, model.NewSession(""))
		gt.Error(t, err)
	})

	t.Run("Create rejects duplicate ID", func(t *testing.T) {
		repo := memory.New()
		ctx := context.Background()

		_, err := repo.Session().Create(ctx, model.NewSession("s1"))
		gt.NoError(t, err).Required()

		_, err = repo.Session().Create(ctx, model.NewSession("s1"))
		gt.Error(t, err)
	})

	t.Run("Get returns a copy", func(t *testing.T) {
		repo := memory.New()
		ctx := context.Background()

		_, err := repo.Session().Create(ctx, model.NewSession("s1"))
		gt.NoError(t, err).Required()

		first, err := repo.Session().Get(ctx, "s1")
		gt.NoError(t, err).Required()

		// Mutating the returned copy must not leak into the store.
		first.Responses[model.QuestionKey{Category: 0, Question: 0}] = types.RiskWeight(2)
		first.CurrentCategory = 3

		second, err := repo.Session().Get(ctx, "s1")
		gt.NoError(t, err).Required()
		gt.Value(t, second.TotalAnswered()).Equal(0)
		gt.Value(t, second.CurrentCategory).Equal(0)
	})

	t.Run("Get unknown session", func(t *testing.T) {
		repo := memory.New()
		ctx := context.Background()

		_, err := repo.Session().Get(ctx, "missing")
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, types.ErrSessionNotFound)).True()
	})

	t.Run("Put preserves CreatedAt and bumps UpdatedAt", func(t *testing.T) {
		repo := memory.New()
		ctx := context.Background()

		created, err := repo.Session().Create(ctx, model.NewSession("s1"))
		gt.NoError(t, err).Required()

		created.Responses[model.QuestionKey{Category: 0, Question: 0}] = types.RiskWeight(1)
		updated, err := repo.Session().Put(ctx, created)
		gt.NoError(t, err).Required()

		gt.Bool(t, updated.CreatedAt.Equal(created.CreatedAt)).True()
		gt.Bool(t, updated.UpdatedAt.Before(created.UpdatedAt)).False()
		gt.Value(t, updated.TotalAnswered()).Equal(1)
	})

	t.Run("Put unknown session", func(t *testing.T) {
		repo := memory.New()
		ctx := context.Background()

		_, err := repo.Session().Put(ctx, model.NewSession("missing"))
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, types.ErrSessionNotFound)).True()
	})

	t.Run("Delete removes the session", func(t *testing.T) {
		repo := memory.New()
		ctx := context.Background()

		_, err := repo.Session().Create(ctx, model.NewSession("s1"))
		gt.NoError(t, err).Required()

		gt.NoError(t, repo.Session().Delete(ctx, "s1"))

		_, err = repo.Session().Get(ctx, "s1")
		gt.Bool(t, errors.Is(err, types.ErrSessionNotFound)).True()

		gt.Bool(t, errors.Is(repo.Session().Delete(ctx, "s1"), types.ErrSessionNotFound)).True()
	})

	t.Run("List returns all sessions", func(t *testing.T) {
		repo := memory.New()
		ctx := context.Background()

		for _, id := range []string{"s1", "s2", "s3"} {
			_, err := repo.Session().Create(ctx, model.NewSession(id))
			gt.NoError(t, err).Required()
		}

		sessions, err := repo.Session().List(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, sessions).Length(3)
	})
}

func TestSessionRepositoryConcurrency(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	_, err := repo.Session().Create(ctx, model.NewSession("shared"))
	gt.NoError(t, err).Required()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			session, err := repo.Session().Get(ctx, "shared")
			gt.NoError(t, err)

			session.Responses[model.QuestionKey{Category: 0, Question: 0}] = types.RiskWeight(1)
			_, err = repo.Session().Put(ctx, session)
			gt.NoError(t, err)
		}()
	}
	wg.Wait()

	final, err := repo.Session().Get(ctx, "shared")
	gt.NoError(t, err).Required()
	gt.Value(t, final.TotalAnswered()).Equal(1)
}
