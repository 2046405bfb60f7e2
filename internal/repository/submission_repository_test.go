package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"candidature-api/internal/domain"
)

func TestSubmissionRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubmissionRepository(db)
	ctx := context.Background()

	candidatureID := uuid.New()
	other := uuid.New()
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		s := &domain.Submission{
			CandidatureID: candidatureID,
			Lang:          domain.LangAR,
			Answers:       []domain.Answer{{Field: "f1", Value: "answer"}},
		}
		s.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Create(ctx, s))
	}
	require.NoError(t, repo.Create(ctx, &domain.Submission{CandidatureID: other, Lang: domain.LangFR}))

	t.Run("paginated listing", func(t *testing.T) {
		items, total, err := repo.FindByCandidature(ctx, candidatureID, 0, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, items, 2)
		assert.True(t, items[0].CreatedAt.After(items[1].CreatedAt))
	})

	t.Run("find by id keeps answers", func(t *testing.T) {
		items, _, err := repo.FindByCandidature(ctx, candidatureID, 0, 1)
		require.NoError(t, err)
		found, err := repo.FindByID(ctx, items[0].ID)
		require.NoError(t, err)
		v, ok := found.AnswerFor("f1")
		assert.True(t, ok)
		assert.Equal(t, "answer", v)
		assert.Equal(t, domain.LangAR, found.Lang)
	})

	t.Run("each visits oldest first", func(t *testing.T) {
		var seen []time.Time
		err := repo.EachByCandidature(ctx, candidatureID, func(s *domain.Submission) error {
			seen = append(seen, s.CreatedAt)
			return nil
		})
		require.NoError(t, err)
		require.Len(t, seen, 3)
		assert.True(t, seen[0].Before(seen[2]))
	})

	t.Run("each stops on callback error", func(t *testing.T) {
		stop := errors.New("stop")
		calls := 0
		err := repo.EachByCandidature(ctx, candidatureID, func(*domain.Submission) error {
			calls++
			return stop
		})
		assert.ErrorIs(t, err, stop)
		assert.Equal(t, 1, calls)
	})
}
