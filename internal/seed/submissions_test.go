package seed

import (
	"context"
	"errors"
	"testing"

	"sosintake/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memCreator struct {
	rows map[string]*types.Submission
	err  error
}

func (m *memCreator) CreateSubmission(_ context.Context, submission *types.Submission) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.rows[submission.ID]; ok {
		return types.ErrSubmissionNotInserted
	}
	m.rows[submission.ID] = submission
	return nil
}

func TestSeedSubmissionsIsRepeatable(t *testing.T) {
	repo := &memCreator{rows: make(map[string]*types.Submission)}
	ctx := context.Background()

	seeded, err := SeedSubmissions(ctx, repo)
	require.NoError(t, err)
	assert.Equal(t, len(fakeSubmissions), seeded)

	seeded, err = SeedSubmissions(ctx, repo)
	require.NoError(t, err)
	assert.Zero(t, seeded)

	noah := repo.rows["seed000000000000000004"]
	require.NotNil(t, noah)
	assert.Nil(t, noah.Latitude)
	assert.Nil(t, noah.Email)
	assert.True(t, repo.rows["seed000000000000000001"].HasLocation())
}

func TestSeedSubmissionsError(t *testing.T) {
	boom := errors.New("relation does not exist")

	seeded, err := SeedSubmissions(context.Background(), &memCreator{err: boom})
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, seeded)
}
