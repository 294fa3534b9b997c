package db

import (
	"context"
	"testing"

	"nursethink/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryAttemptRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryAttemptRepository()

	require.NoError(t, repo.RecordAttempt(ctx, "s1", "Sepsis", models.AttemptRecord{StageNumber: 1, Score: 4}))
	require.NoError(t, repo.RecordAttempt(ctx, "s2", "DKA", models.AttemptRecord{StageNumber: 1, Score: 2}))
	require.NoError(t, repo.RecordAttempt(ctx, "s1", "Sepsis", models.AttemptRecord{StageNumber: 2, Score: 3}))

	got, err := repo.GetAttemptsBySession(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, 3, got[1].ID)
	assert.Equal(t, 3, got[1].Attempt.Score)

	got[0].Attempt.Score = 0
	again, err := repo.GetAttemptsBySession(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 4, again[0].Attempt.Score, "returned attempts are copies")

	none, err := repo.GetAttemptsBySession(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, none)
	assert.NoError(t, repo.Close())
}
