package match_test

import (
	"testing"
	"time"

	"freightmatch/internal/core/domain/model/kernel"
	"freightmatch/internal/core/domain/model/match"
	"freightmatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMatch(t *testing.T) *match.Match {
	t.Helper()

	m, err := match.NewMatch(
		kernel.NewUUID(),
		kernel.NewUUID(),
		kernel.NewUUID(),
		kernel.NewUUID(),
		match.KindDirect,
		87.5,
		map[string]float64{"deadhead": 0.2, "utilization": 0.8},
		1000,
	)
	require.NoError(t, err)
	return m
}

func TestNewMatch(t *testing.T) {
	t.Run("creates pending match", func(t *testing.T) {
		m := newTestMatch(t)

		assert.Equal(t, match.Pending, m.Status())
		assert.Equal(t, match.KindDirect, m.Kind())
		assert.InDelta(t, 87.5, m.Score(), 0.0001)
		assert.InDelta(t, 1000, m.ProposedRate(), 0.0001)
		assert.Nil(t, m.AcceptedRate())
		assert.Nil(t, m.ReservedUntil())
		assert.Empty(t, m.DeclineReason())
		assert.NoError(t, m.Validate())
		assert.False(t, m.CreatedAt().IsZero())
	})

	t.Run("requires load driver and vehicle identifiers", func(t *testing.T) {
		var zero kernel.UUID

		_, err := match.NewMatch(kernel.NewUUID(), zero, kernel.NewUUID(), kernel.NewUUID(),
			match.KindDirect, 50, nil, 900)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = match.NewMatch(kernel.NewUUID(), kernel.NewUUID(), zero, kernel.NewUUID(),
			match.KindDirect, 50, nil, 900)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = match.NewMatch(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), zero,
			match.KindDirect, 50, nil, 900)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects negative rate and score", func(t *testing.T) {
		_, err := match.NewMatch(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			match.KindDirect, -1, nil, 900)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

		_, err = match.NewMatch(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			match.KindDirect, 50, nil, -900)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("rejects relay kind", func(t *testing.T) {
		_, err := match.NewMatch(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			match.KindRelay, 50, nil, 900)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var m match.Match
		require.ErrorIs(t, m.Validate(), match.ErrMatchIsNotConstructed)
	})
}

func TestMatch_Lifecycle(t *testing.T) {
	t.Run("full happy path to accepted", func(t *testing.T) {
		m := newTestMatch(t)
		deadline := time.Now().Add(15 * time.Minute)

		require.NoError(t, m.Recommend())
		assert.Equal(t, match.Recommended, m.Status())

		require.NoError(t, m.Reserve(deadline))
		assert.Equal(t, match.Reserved, m.Status())
		require.NotNil(t, m.ReservedUntil())
		assert.WithinDuration(t, deadline, *m.ReservedUntil(), time.Second)

		require.NoError(t, m.Accept(1100))
		assert.Equal(t, match.Accepted, m.Status())
		require.NotNil(t, m.AcceptedRate())
		assert.InDelta(t, 1100, *m.AcceptedRate(), 0.0001)
		assert.Nil(t, m.ReservedUntil(), "deadline is cleared once the match leaves Reserved")
	})

	t.Run("accept requires reserved", func(t *testing.T) {
		m := newTestMatch(t)

		err := m.Accept(1100)
		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Equal(t, match.Pending, m.Status())
		assert.Nil(t, m.AcceptedRate())
	})

	t.Run("reserve rejects past deadline", func(t *testing.T) {
		m := newTestMatch(t)
		require.NoError(t, m.Recommend())

		err := m.Reserve(time.Now().Add(-time.Minute))
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, match.Recommended, m.Status())
		assert.Nil(t, m.ReservedUntil())
	})

	t.Run("decline records reason and notes", func(t *testing.T) {
		m := newTestMatch(t)
		require.NoError(t, m.Recommend())

		require.NoError(t, m.Decline("RATE_TOO_LOW", "too low"))
		assert.Equal(t, match.Declined, m.Status())
		assert.Equal(t, "RATE_TOO_LOW", m.DeclineReason())
		assert.Equal(t, "too low", m.DeclineNotes())
	})

	t.Run("decline requires a reason", func(t *testing.T) {
		m := newTestMatch(t)
		require.NoError(t, m.Recommend())

		err := m.Decline("", "")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Equal(t, match.Recommended, m.Status())
	})

	t.Run("expire from reserved clears deadline", func(t *testing.T) {
		m := newTestMatch(t)
		require.NoError(t, m.Recommend())
		require.NoError(t, m.Reserve(time.Now().Add(time.Minute)))

		require.NoError(t, m.Expire())
		assert.Equal(t, match.Expired, m.Status())
		assert.Nil(t, m.ReservedUntil())
	})

	t.Run("cancel from any non-terminal state", func(t *testing.T) {
		m := newTestMatch(t)
		require.NoError(t, m.Cancel())
		assert.Equal(t, match.Cancelled, m.Status())

		err := m.Cancel()
		require.ErrorIs(t, err, errs.ErrConflict)
	})
}

func TestMatch_Update(t *testing.T) {
	t.Run("updates proposed rate while live", func(t *testing.T) {
		m := newTestMatch(t)
		require.NoError(t, m.UpdateProposedRate(1250))
		assert.InDelta(t, 1250, m.ProposedRate(), 0.0001)
	})

	t.Run("rejects updates on terminal matches", func(t *testing.T) {
		m := newTestMatch(t)
		require.NoError(t, m.Cancel())

		require.ErrorIs(t, m.UpdateProposedRate(1250), errs.ErrConflict)
		require.ErrorIs(t, m.UpdateScore(10, nil), errs.ErrConflict)
	})
}

func TestMatch_ScoreFactorsAreCopied(t *testing.T) {
	factors := map[string]float64{"deadhead": 0.2}
	m, err := match.NewMatch(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		match.KindDirect, 50, factors, 900)
	require.NoError(t, err)

	factors["deadhead"] = 0.9
	assert.InDelta(t, 0.2, m.ScoreFactors()["deadhead"], 0.0001)

	got := m.ScoreFactors()
	got["deadhead"] = 0.7
	assert.InDelta(t, 0.2, m.ScoreFactors()["deadhead"], 0.0001)
}

func TestRestoreMatch(t *testing.T) {
	t.Run("restores reserved match", func(t *testing.T) {
		id := kernel.NewUUID()
		until := time.Now().Add(10 * time.Minute).UTC()

		m, err := match.RestoreMatch(
			id, kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			match.KindDirect, match.Reserved,
			70, map[string]float64{"deadhead": 0.1}, 800,
			nil, &until, "", "", nil,
			time.Now().Add(-time.Hour), time.Now(),
		)

		require.NoError(t, err)
		assert.True(t, m.ID().IsEqual(id))
		assert.Equal(t, match.Reserved, m.Status())
		require.NotNil(t, m.ReservedUntil())
	})

	t.Run("rejects invalid status", func(t *testing.T) {
		_, err := match.RestoreMatch(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			match.KindDirect, match.Unknown,
			70, nil, 800, nil, nil, "", "", nil,
			time.Now(), time.Now(),
		)
		require.Error(t, err)
	})
}
