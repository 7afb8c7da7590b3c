package match_test

import (
	"testing"

	"freightmatch/internal/core/domain/model/kernel"
	"freightmatch/internal/core/domain/model/match"
	"freightmatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRelay(t *testing.T, segmentCount int) *match.Match {
	t.Helper()

	segments := make([]match.Segment, 0, segmentCount)
	cities := []string{"Chicago", "Columbus", "Pittsburgh", "Philadelphia", "Newark"}
	for i := range segmentCount {
		s, err := match.NewSegment(i, kernel.NewUUID(), cities[i], cities[i+1], 400)
		require.NoError(t, err)
		segments = append(segments, s)
	}

	m, err := match.NewRelayMatch(kernel.NewUUID(), kernel.NewUUID(), 72, nil, segments)
	require.NoError(t, err)
	return m
}

func TestNewSegment(t *testing.T) {
	t.Run("creates pending segment", func(t *testing.T) {
		s, err := match.NewSegment(0, kernel.NewUUID(), "Chicago", "Columbus", 400)

		require.NoError(t, err)
		assert.Equal(t, 0, s.Index())
		assert.Equal(t, match.Pending, s.Status())
		assert.Equal(t, "Chicago", s.Origin())
		assert.Equal(t, "Columbus", s.Destination())
		assert.InDelta(t, 400, s.Rate(), 0.0001)
	})

	t.Run("validates inputs", func(t *testing.T) {
		var zero kernel.UUID

		_, err := match.NewSegment(-1, kernel.NewUUID(), "A", "B", 400)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = match.NewSegment(0, zero, "A", "B", 400)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = match.NewSegment(0, kernel.NewUUID(), "", "B", 400)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = match.NewSegment(0, kernel.NewUUID(), "A", "B", -400)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestNewRelayMatch(t *testing.T) {
	t.Run("creates pending relay with summed rate", func(t *testing.T) {
		m := newTestRelay(t, 3)

		assert.Equal(t, match.KindRelay, m.Kind())
		assert.Equal(t, match.Pending, m.Status())
		assert.Len(t, m.Segments(), 3)
		assert.InDelta(t, 1200, m.ProposedRate(), 0.0001)
		assert.True(t, m.DriverID().IsZero(), "relay matches have no top-level driver")
	})

	t.Run("requires at least two segments", func(t *testing.T) {
		s, err := match.NewSegment(0, kernel.NewUUID(), "A", "B", 400)
		require.NoError(t, err)

		_, err = match.NewRelayMatch(kernel.NewUUID(), kernel.NewUUID(), 72, nil, []match.Segment{s})
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects non-contiguous segment order", func(t *testing.T) {
		s0, err := match.NewSegment(0, kernel.NewUUID(), "A", "B", 400)
		require.NoError(t, err)
		s2, err := match.NewSegment(2, kernel.NewUUID(), "B", "C", 400)
		require.NoError(t, err)

		_, err = match.NewRelayMatch(kernel.NewUUID(), kernel.NewUUID(), 72, nil, []match.Segment{s0, s2})
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestMatch_SegmentRollup(t *testing.T) {
	t.Run("all segments accepted rolls relay up to accepted", func(t *testing.T) {
		m := newTestRelay(t, 2)

		require.NoError(t, m.AcceptSegment(0))
		assert.Equal(t, match.Pending, m.Status(), "partial acceptance leaves the relay coordinating")

		require.NoError(t, m.AcceptSegment(1))
		assert.Equal(t, match.Accepted, m.Status())
		require.NotNil(t, m.AcceptedRate())
		assert.InDelta(t, 800, *m.AcceptedRate(), 0.0001)
	})

	t.Run("any declined segment cancels the relay", func(t *testing.T) {
		m := newTestRelay(t, 3)

		require.NoError(t, m.AcceptSegment(0))
		require.NoError(t, m.DeclineSegment(1))

		assert.Equal(t, match.Cancelled, m.Status())
	})

	t.Run("expired segment cancels the relay", func(t *testing.T) {
		m := newTestRelay(t, 2)

		require.NoError(t, m.ExpireSegment(0))
		assert.Equal(t, match.Cancelled, m.Status())
	})

	t.Run("terminal segment cannot transition again", func(t *testing.T) {
		m := newTestRelay(t, 2)

		require.NoError(t, m.AcceptSegment(0))
		err := m.AcceptSegment(0)
		require.ErrorIs(t, err, errs.ErrConflict)
	})

	t.Run("unknown segment index", func(t *testing.T) {
		m := newTestRelay(t, 2)

		err := m.AcceptSegment(7)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("segments on a direct match are rejected", func(t *testing.T) {
		m := newTestMatch(t)

		err := m.AcceptSegment(0)
		require.ErrorIs(t, err, errs.ErrConflict)
	})
}
