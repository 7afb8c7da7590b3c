package commands_test

import (
	"testing"
	"time"

	"freightmatch/internal/core/domain/model/kernel"
	"freightmatch/internal/core/domain/model/match"
	"freightmatch/internal/core/domain/model/recommendation"
	"freightmatch/internal/core/domain/model/reservation"

	"github.com/stretchr/testify/require"
)

func newPendingMatch(t *testing.T) *match.Match {
	t.Helper()

	m, err := match.NewMatch(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		match.KindDirect, 87.5, map[string]float64{"deadhead": 0.2}, 1250,
	)
	require.NoError(t, err)
	return m
}

func newRecommendedMatch(t *testing.T) *match.Match {
	t.Helper()

	m := newPendingMatch(t)
	require.NoError(t, m.Recommend())
	return m
}

func newReservedMatch(t *testing.T) *match.Match {
	t.Helper()

	m := newRecommendedMatch(t)
	require.NoError(t, m.Reserve(time.Now().Add(15*time.Minute)))
	return m
}

func newPendingRelayMatch(t *testing.T) *match.Match {
	t.Helper()

	m, err := match.NewRelayMatch(
		kernel.NewUUID(), kernel.NewUUID(), 80, map[string]float64{"relay": 1}, relaySegments(t),
	)
	require.NoError(t, err)
	return m
}

func newActiveReservation(t *testing.T, m *match.Match, driverID kernel.UUID) *reservation.Reservation {
	t.Helper()

	res, err := reservation.NewReservation(
		kernel.NewUUID(), m.ID(), driverID, m.LoadID(), time.Now().Add(15*time.Minute),
	)
	require.NoError(t, err)
	return res
}

func newActiveRecommendation(t *testing.T, m *match.Match) *recommendation.Recommendation {
	t.Helper()

	rec, err := recommendation.NewRecommendation(
		kernel.NewUUID(), m.ID(), m.LoadID(), m.DriverID(),
		m.Score(), m.ScoreFactors(), m.ProposedRate(),
		recommendation.LoadSummary{Origin: "Chicago, IL", Destination: "Dallas, TX"},
		60, 340, time.Hour,
	)
	require.NoError(t, err)
	return rec
}
